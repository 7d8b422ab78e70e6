package asset

// Source hands renderers the href to embed for a resolved URL. Image must
// not block; ok == false means "render without the image for now".
type Source interface {
	Image(url string) (href string, ok bool)
}

// None is a Source that never has an image.
type None struct{}

// Image always reports no image.
func (None) Image(string) (string, bool) { return "", false }

// Passthrough embeds resolved URLs as-is and leaves loading to the viewer.
// Used when the artifact is displayed by a browser that can fetch assets
// itself. Unfetchable blob: handles are still reported as unavailable.
type Passthrough struct{}

// Image returns url unchanged.
func (Passthrough) Image(url string) (string, bool) {
	if url == "" || hasPrefixFold(url, "blob:") {
		return "", false
	}
	return url, true
}

// Static is a fixed url -> href table, handy for tests and pre-embedded
// assets.
type Static map[string]string

// Image looks url up in the table.
func (s Static) Image(url string) (string, bool) {
	href, ok := s[url]
	return href, ok && href != ""
}
