package certificate

import "strings"

// LayoutKind names a rendering strategy.
type LayoutKind string

// Preset layouts of the parametric catalog, plus the free-form mode.
const (
	LayoutClassic         LayoutKind = "classic"
	LayoutModern          LayoutKind = "modern"
	LayoutReceipt         LayoutKind = "receipt"
	LayoutModernLandscape LayoutKind = "modern_landscape"
	LayoutElegantSerif    LayoutKind = "elegant_serif"
	LayoutMinimalistBold  LayoutKind = "minimalist_bold"
	LayoutCorporateBlue   LayoutKind = "corporate_blue"
	LayoutTechDark        LayoutKind = "tech_dark"
	LayoutCreativeArt     LayoutKind = "creative_art"
	LayoutBadgeCert       LayoutKind = "badge_cert"
	LayoutAwardGold       LayoutKind = "award_gold"
	LayoutDiplomaClassic  LayoutKind = "diploma_classic"
	LayoutAchievementStar LayoutKind = "achievement_star"
	LayoutFreeform        LayoutKind = "freeform"
)

// layoutVisualAlias is the name the template editor stores for free-form
// templates.
const layoutVisualAlias = "visual"

// PresetKinds lists the catalog layouts in display order.
var PresetKinds = []LayoutKind{
	LayoutClassic,
	LayoutModern,
	LayoutReceipt,
	LayoutModernLandscape,
	LayoutElegantSerif,
	LayoutMinimalistBold,
	LayoutCorporateBlue,
	LayoutTechDark,
	LayoutCreativeArt,
	LayoutBadgeCert,
	LayoutAwardGold,
	LayoutDiplomaClassic,
	LayoutAchievementStar,
}

var knownKinds = func() map[LayoutKind]bool {
	m := make(map[LayoutKind]bool, len(PresetKinds)+1)
	for _, k := range PresetKinds {
		m[k] = true
	}
	m[LayoutFreeform] = true
	return m
}()

// ParseLayoutKind normalizes a stored layout name. The second result is
// false when the name is unknown, in which case the classic layout is
// returned. An empty name is not reported as unknown.
func ParseLayoutKind(s string) (LayoutKind, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LayoutClassic, true
	}
	if name == layoutVisualAlias {
		return LayoutFreeform, true
	}
	k := LayoutKind(name)
	if knownKinds[k] {
		return k, true
	}
	return LayoutClassic, false
}

// IsFreeform reports whether k is the free-form scene-graph mode.
func (k LayoutKind) IsFreeform() bool { return k == LayoutFreeform }

// Title returns a human-readable name ("modern_landscape" -> "Modern Landscape").
func (k LayoutKind) Title() string {
	parts := strings.Split(string(k), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
