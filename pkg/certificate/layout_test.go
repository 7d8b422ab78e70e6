package certificate

import "testing"

func TestParseLayoutKind(t *testing.T) {
	tests := []struct {
		in    string
		want  LayoutKind
		known bool
	}{
		{"classic", LayoutClassic, true},
		{"Modern", LayoutModern, true},
		{" receipt ", LayoutReceipt, true},
		{"achievement_star", LayoutAchievementStar, true},
		{"freeform", LayoutFreeform, true},
		{"visual", LayoutFreeform, true},
		{"", LayoutClassic, true},
		{"holographic", LayoutClassic, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, known := ParseLayoutKind(tt.in)
			if got != tt.want || known != tt.known {
				t.Errorf("ParseLayoutKind(%q) = (%q, %v), want (%q, %v)", tt.in, got, known, tt.want, tt.known)
			}
		})
	}
}

func TestPresetKinds(t *testing.T) {
	if len(PresetKinds) != 13 {
		t.Fatalf("len(PresetKinds) = %d, want 13", len(PresetKinds))
	}
	seen := map[LayoutKind]bool{}
	for _, k := range PresetKinds {
		if seen[k] {
			t.Errorf("duplicate preset %q", k)
		}
		seen[k] = true
		if k.IsFreeform() {
			t.Errorf("preset %q must not be freeform", k)
		}
	}
}

func TestLayoutKindTitle(t *testing.T) {
	if got := LayoutModernLandscape.Title(); got != "Modern Landscape" {
		t.Errorf("Title() = %q", got)
	}
}

func TestTemplateKind(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  *Template
		want  LayoutKind
		known bool
	}{
		{"nil", nil, LayoutClassic, true},
		{"layout_kind", &Template{LayoutKind: "tech_dark"}, LayoutTechDark, true},
		{"layout_style alias", &Template{LayoutStyle: "visual"}, LayoutFreeform, true},
		{"kind wins", &Template{LayoutKind: "modern", LayoutStyle: "receipt"}, LayoutModern, true},
		{"unknown", &Template{LayoutKind: "neon"}, LayoutClassic, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := tt.tmpl.Kind()
			if got != tt.want || known != tt.known {
				t.Errorf("Kind() = (%q, %v), want (%q, %v)", got, known, tt.want, tt.known)
			}
		})
	}
}

func TestCanvasSize(t *testing.T) {
	w, h := Canvas{}.Size()
	if w != 842 || h != 595 {
		t.Errorf("default size = %vx%v, want 842x595", w, h)
	}
	w, h = Canvas{Width: 595, Height: 842}.Size()
	if w != 595 || h != 842 {
		t.Errorf("portrait size = %vx%v", w, h)
	}
}

func TestElementIsBadge(t *testing.T) {
	if !(Element{Type: ElementQR}).IsBadge() {
		t.Error("qr element should be a badge")
	}
	if !(Element{Type: ElementShape, IsQR: true}).IsBadge() {
		t.Error("isQr element should be a badge")
	}
	if (Element{Type: ElementText}).IsBadge() {
		t.Error("text element should not be a badge")
	}
}
