// Package presets is the parametric layout catalog: thirteen fixed page
// designs that lay out the canonical record.
//
// The catalog is a table. Each [Preset] names its page size, whether it
// draws its own container, and a compose function built from shared
// sub-renderers (frames, text flows, custom-field grids, signature blocks,
// seals and the verification badge). Every preset lists the record's
// custom fields, and every preset except elegant_serif carries the badge.
package presets

import (
	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// Preset is one catalog entry.
type Preset struct {
	Kind certificate.LayoutKind
	Page visual.Size
	// OwnsContainer is set for designs that draw their own page instead of
	// the shared card wrapper.
	OwnsContainer bool
	// Badge reports whether the design carries the verification badge.
	Badge bool
	// Paper is the page color under the background image.
	Paper string

	compose func(p *page)
}

var catalog = map[certificate.LayoutKind]Preset{
	certificate.LayoutClassic:         {Page: visual.DefaultSize, Badge: true, Paper: white, compose: classic},
	certificate.LayoutModern:          {Page: visual.DefaultSize, Badge: true, Paper: white, compose: modern},
	certificate.LayoutReceipt:         {Page: visual.DefaultSize, Badge: true, Paper: white, OwnsContainer: true, compose: receipt},
	certificate.LayoutModernLandscape: {Page: visual.DefaultSize, Badge: true, Paper: white, compose: modernLandscape},
	certificate.LayoutElegantSerif:    {Page: visual.PortraitSize, Paper: "#FAFAFA", OwnsContainer: true, compose: elegantSerif},
	certificate.LayoutMinimalistBold:  {Page: visual.DefaultSize, Badge: true, Paper: white, compose: minimalistBold},
	certificate.LayoutCorporateBlue:   {Page: visual.DefaultSize, Badge: true, Paper: white, compose: corporateBlue},
	certificate.LayoutTechDark:        {Page: visual.DefaultSize, Badge: true, Paper: gray900, compose: techDark},
	certificate.LayoutCreativeArt:     {Page: visual.DefaultSize, Badge: true, Paper: "#FFFBF0", compose: creativeArt},
	certificate.LayoutBadgeCert:       {Page: visual.DefaultSize, Badge: true, Paper: "#F8FAFC", compose: badgeCert},
	certificate.LayoutAwardGold:       {Page: visual.DefaultSize, Badge: true, Paper: white, compose: awardGold},
	certificate.LayoutDiplomaClassic:  {Page: visual.DefaultSize, Badge: true, Paper: "#FDFBF7", compose: diplomaClassic},
	certificate.LayoutAchievementStar: {Page: visual.DefaultSize, Badge: true, Paper: "#312E81", compose: achievementStar},
}

func init() {
	for k, p := range catalog {
		p.Kind = k
		catalog[k] = p
	}
}

// Lookup returns the preset for kind. Unknown kinds, the free-form kind
// included, return classic with ok == false.
func Lookup(kind certificate.LayoutKind) (Preset, bool) {
	p, ok := catalog[kind]
	if !ok {
		return catalog[certificate.LayoutClassic], false
	}
	return p, true
}

// Kinds lists the catalog in display order.
func Kinds() []certificate.LayoutKind {
	return append([]certificate.LayoutKind(nil), certificate.PresetKinds...)
}

// Render draws rec with the preset for kind. images supplies loaded
// images; nil means none are available.
func Render(kind certificate.LayoutKind, rec merge.Record, images asset.Source, origin string) *visual.Tree {
	preset, _ := Lookup(kind)
	return preset.Render(rec, images, origin)
}

// Render draws rec with this preset.
func (pr Preset) Render(rec merge.Record, images asset.Source, origin string) *visual.Tree {
	if images == nil {
		images = asset.None{}
	}
	p := &page{
		t:      visual.New(string(pr.Kind), pr.Page),
		rec:    rec,
		images: images,
		origin: origin,
		w:      pr.Page.Width,
		h:      pr.Page.Height,
	}
	if !pr.OwnsContainer {
		p.card(pr.Paper)
	}
	pr.compose(p)
	return p.t
}
