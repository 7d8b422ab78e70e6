package asset

import "testing"

func TestResolve(t *testing.T) {
	r := NewResolver("https://api.example.com/")

	tests := []struct {
		name string
		ref  string
		url  string
		kind Kind
	}{
		{"empty", "", "", KindNone},
		{"blank", "   ", "", KindNone},
		{"blob", "blob:http://localhost:5173/7c1e", "blob:http://localhost:5173/7c1e", KindPreview},
		{"data", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA", KindPreview},
		{"https", "https://cdn.example.com/logo.png", "https://cdn.example.com/logo.png", KindAbsolute},
		{"http upper", "HTTP://cdn.example.com/a.png", "HTTP://cdn.example.com/a.png", KindAbsolute},
		{"relative slash", "/uploads/logo.png", "https://api.example.com/uploads/logo.png", KindRelative},
		{"relative bare", "uploads/logo.png", "https://api.example.com/uploads/logo.png", KindRelative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.ref)
			if got.URL != tt.url || got.Kind != tt.kind {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.ref, got.URL, got.Kind, tt.url, tt.kind)
			}
			if got.Raw != tt.ref {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.ref)
			}
		})
	}
}

func TestResolveWithoutBase(t *testing.T) {
	r := NewResolver("")
	if got := r.URL("/uploads/bg.jpg"); got != "/uploads/bg.jpg" {
		t.Errorf("URL = %q, want unchanged path", got)
	}
}

func TestResolveIsPure(t *testing.T) {
	a := NewResolver("https://a.example.com")
	b := NewResolver("https://b.example.com")
	if a.URL("x.png") == b.URL("x.png") {
		t.Error("resolvers with different bases must not share state")
	}
}

func TestSources(t *testing.T) {
	if _, ok := (None{}).Image("https://x"); ok {
		t.Error("None should never report an image")
	}

	if href, ok := (Passthrough{}).Image("https://x/a.png"); !ok || href != "https://x/a.png" {
		t.Errorf("Passthrough = %q, %v", href, ok)
	}
	if _, ok := (Passthrough{}).Image("blob:http://x/1"); ok {
		t.Error("Passthrough must not embed blob handles")
	}

	s := Static{"a": "data:image/png;base64,AA", "b": ""}
	if _, ok := s.Image("a"); !ok {
		t.Error("Static should find a")
	}
	if _, ok := s.Image("b"); ok {
		t.Error("Static should ignore empty hrefs")
	}
}
