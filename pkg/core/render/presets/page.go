package presets

import (
	"strings"

	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/badge"
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// Roles of the nodes presets emit.
const (
	RoleCard            = "card"
	RoleBackgroundImage = "background-image"
	RoleDecoration      = "decoration"
	RoleLogo            = "logo"
	RoleTitle           = "title"
	RoleHeading         = "heading"
	RoleLabel           = "label"
	RoleRecipient       = "recipient"
	RoleBody            = "body"
	RoleCourse          = "course"
	RoleDate            = "date"
	RoleSignature       = "signature"
	RoleIssuer          = "issuer"
	RoleFieldKey        = "field-key"
	RoleFieldValue      = "field-value"
	RoleAmount          = "amount"
	RoleTotal           = "total"
	RoleReference       = "reference"
	RoleVerificationID  = "verification-id"
	RoleEmail           = "email"
	RoleSeal            = "seal"
)

// Common palette.
const (
	white   = "#FFFFFF"
	black   = "#000000"
	gray100 = "#F3F4F6"
	gray200 = "#E5E7EB"
	gray300 = "#D1D5DB"
	gray400 = "#9CA3AF"
	gray500 = "#6B7280"
	gray600 = "#4B5563"
	gray700 = "#374151"
	gray800 = "#1F2937"
	gray900 = "#111827"
)

// starPath is a five-pointed star on a 24x24 grid.
const starPath = "M12 2l2.4 7.2h7.6l-6 4.8 2.4 7.2-6-4.8-6 4.8 2.4-7.2-6-4.8h7.6z"

// page is the drawing context of one preset render.
type page struct {
	t      *visual.Tree
	rec    merge.Record
	images asset.Source
	origin string
	w, h   float64
}

func (p *page) add(nodes ...visual.Node) { p.t.Add(nodes...) }

// =============================================================================
// Text styles
// =============================================================================

type styleOpt func(*visual.TextStyle)

var (
	bold       styleOpt = func(s *visual.TextStyle) { s.Bold = true }
	italic     styleOpt = func(s *visual.TextStyle) { s.Italic = true }
	upper      styleOpt = func(s *visual.TextStyle) { s.Upper = true }
	center     styleOpt = func(s *visual.TextStyle) { s.Align = visual.AlignCenter }
	alignRight styleOpt = func(s *visual.TextStyle) { s.Align = visual.AlignRight }
)

func spaced(v float64) styleOpt { return func(s *visual.TextStyle) { s.Spacing = v } }
func family(f string) styleOpt  { return func(s *visual.TextStyle) { s.Family = f } }

const (
	serif = "Georgia"
	sans  = "Helvetica"
	mono  = "Courier New"
)

// style builds a text style in the template's font family.
func (p *page) style(size float64, color string, opts ...styleOpt) visual.TextStyle {
	s := visual.TextStyle{Size: size, Family: p.rec.Style.FontFamily, Color: color, Align: visual.AlignLeft}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// recipientStyle applies the template's body color, as every preset does
// for the recipient line.
func (p *page) recipientStyle(size float64, opts ...styleOpt) visual.TextStyle {
	return p.style(size, p.rec.Style.BodyFontColor, append([]styleOpt{bold}, opts...)...)
}

// =============================================================================
// Container and images
// =============================================================================

// card draws the shared page wrapper: a paper-colored card with a shadow,
// covered by the template background image when it is loaded.
func (p *page) card(paper string) {
	p.add(&visual.Rect{
		Base:   visual.Base{Role: RoleCard},
		Width:  p.w,
		Height: p.h,
		Fill:   paper,
		Shadow: true,
	})
	p.backgroundImage(0, 0, p.w, p.h)
}

func (p *page) backgroundImage(x, y, w, h float64) {
	if img := p.image(p.rec.Background, x, y, w, h, visual.FitCover); img != nil {
		img.Role = RoleBackgroundImage
		p.add(img)
	}
}

// image returns an image node for ref, or nil when it is not loaded.
func (p *page) image(ref asset.Ref, x, y, w, h float64, fit visual.Fit) *visual.Image {
	if ref.IsZero() {
		return nil
	}
	href, ok := p.images.Image(ref.URL)
	if !ok {
		return nil
	}
	return &visual.Image{X: x, Y: y, Width: w, Height: h, Href: href, Fit: fit}
}

// logo returns the logo fitted into the box, or nil.
func (p *page) logo(x, y, w, h float64) *visual.Image {
	img := p.image(p.rec.Logo, x, y, w, h, visual.FitContain)
	if img != nil {
		img.Role = RoleLogo
	}
	return img
}

// hasLogo reports whether the logo is available to draw.
func (p *page) hasLogo() bool { return p.loaded(p.rec.Logo) }

func (p *page) loaded(ref asset.Ref) bool {
	if ref.IsZero() {
		return false
	}
	_, ok := p.images.Image(ref.URL)
	return ok
}

// badge places the verification badge.
func (p *page) badge(x, y, size float64) {
	p.add(badge.Node(p.origin, p.rec.VerificationID, x, y, size))
}

// badgePanel places the badge on a padded panel.
func (p *page) badgePanel(x, y, size, pad float64, fill string, radius float64) {
	p.add(&visual.Rect{
		Base:   visual.Base{Role: RoleDecoration},
		X:      x - pad,
		Y:      y - pad,
		Width:  size + 2*pad,
		Height: size + 2*pad,
		Radius: radius,
		Fill:   fill,
	})
	p.badge(x, y, size)
}

// =============================================================================
// Decoration
// =============================================================================

func frame(x, y, w, h, strokeWidth float64, color string) *visual.Rect {
	return &visual.Rect{
		Base:        visual.Base{Role: RoleDecoration},
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
		Stroke:      color,
		StrokeWidth: strokeWidth,
	}
}

func fill(x, y, w, h float64, color string) *visual.Rect {
	return &visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: x, Y: y, Width: w, Height: h, Fill: color}
}

func hline(x1, x2, y, width float64, color string) *visual.Line {
	return &visual.Line{Base: visual.Base{Role: RoleDecoration}, X1: x1, Y1: y, X2: x2, Y2: y, Stroke: color, StrokeWidth: width}
}

func vline(x, y1, y2, width float64, color string) *visual.Line {
	return &visual.Line{Base: visual.Base{Role: RoleDecoration}, X1: x, Y1: y1, X2: x, Y2: y2, Stroke: color, StrokeWidth: width}
}

func faded(n visual.Node, opacity float64) visual.Node {
	n.Meta().Opacity = opacity
	return n
}

// polygon returns a closed path through the given points.
func polygon(color string, pts ...[2]float64) *visual.Path {
	var b strings.Builder
	for i, pt := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(pt[0]) + " " + num(pt[1]))
	}
	b.WriteString(" Z")
	return &visual.Path{Base: visual.Base{Role: RoleDecoration}, D: b.String(), Fill: color}
}

// star draws the five-pointed star scaled into a size x size box.
func star(x, y, size float64, color string) *visual.Path {
	return &visual.Path{Base: visual.Base{Role: RoleSeal}, D: starPath, X: x, Y: y, Scale: size / 24, Fill: color}
}

// seal draws a round seal with a centered label.
func (p *page) seal(cx, cy, r float64, ring, inner string, dashed bool, label string, st visual.TextStyle) {
	outer := &visual.Circle{Base: visual.Base{Role: RoleSeal}, CX: cx, CY: cy, R: r, Stroke: ring, StrokeWidth: 2}
	if dashed {
		outer.Dash = "4 3"
	}
	p.add(outer)
	if inner != "" {
		p.add(&visual.Circle{Base: visual.Base{Role: RoleSeal}, CX: cx, CY: cy, R: r - 8, Fill: inner})
	}
	st.Align = visual.AlignCenter
	txt := visual.NewText(RoleSeal, label, cx-r+6, 0, 2*r-12, st)
	txt.Y = cy - txt.Height()/2
	p.add(txt)
}
