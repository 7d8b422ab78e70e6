package asset

import "strings"

// Kind classifies a reference.
type Kind int

const (
	KindNone     Kind = iota // empty reference
	KindPreview              // blob: or data: handle
	KindAbsolute             // http(s) URL
	KindRelative             // path joined to the base
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindPreview:
		return "preview"
	case KindAbsolute:
		return "absolute"
	case KindRelative:
		return "relative"
	}
	return "none"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Ref is a resolved reference.
type Ref struct {
	Raw  string `json:"raw,omitempty"`
	URL  string `json:"url,omitempty"`
	Kind Kind   `json:"kind"`
}

// IsZero reports whether the reference names no image.
func (r Ref) IsZero() bool { return r.Kind == KindNone }

// Resolver resolves references against an explicitly configured base URL.
type Resolver struct {
	Base string
}

// NewResolver creates a resolver for base. Trailing slashes are ignored.
func NewResolver(base string) Resolver {
	return Resolver{Base: strings.TrimRight(strings.TrimSpace(base), "/")}
}

// Resolve classifies ref and returns its loadable URL.
func (r Resolver) Resolve(ref string) Ref {
	raw := ref
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return Ref{Raw: raw}
	case hasPrefixFold(ref, "blob:"), hasPrefixFold(ref, "data:"):
		return Ref{Raw: raw, URL: ref, Kind: KindPreview}
	case hasPrefixFold(ref, "http://"), hasPrefixFold(ref, "https://"):
		return Ref{Raw: raw, URL: ref, Kind: KindAbsolute}
	}

	base := strings.TrimRight(r.Base, "/")
	if base == "" {
		return Ref{Raw: raw, URL: ref, Kind: KindRelative}
	}
	return Ref{Raw: raw, URL: base + "/" + strings.TrimLeft(ref, "/"), Kind: KindRelative}
}

// URL is shorthand for Resolve(ref).URL.
func (r Resolver) URL(ref string) string {
	return r.Resolve(ref).URL
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
