package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of one render input.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string

	// AssetKey identifies the bytes behind a resolved asset URL.
	AssetKey(url string) string
}

// ArtifactKeyOpts holds the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width,omitempty"`
	Fullscreen bool    `json:"fullscreen,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces hashed keys with a short type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256(inputHash, opts)>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// AssetKey returns "asset:<sha256(url)>".
func (DefaultKeyer) AssetKey(url string) string {
	return hashKey("asset", url)
}
