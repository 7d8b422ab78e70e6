package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/certifyme/certrender/pkg/core/render/visual"
	"github.com/certifyme/certrender/pkg/fonts"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width float64
	clips int
}

// WithWidth sets the surface width. The height follows the design aspect
// ratio; the viewBox stays in design units. Zero keeps the design size.
func WithWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
			r.width = w
		}
	}
}

// RenderSVG serializes the tree as a standalone SVG document.
func RenderSVG(t *visual.Tree, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	size := t.Size
	if !size.Valid() {
		size = visual.DefaultSize
	}
	w, h := size.Width, size.Height
	if r.width > 0 {
		w, h = r.width, size.Height*r.width/size.Width
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" data-layout="%s">`+"\n",
		num(size.Width), num(size.Height), num(w), num(h), escape(t.Layout))

	r.renderDefs(&buf, t)
	if t.Root != nil {
		for _, n := range t.Root.Children {
			r.renderNode(&buf, n, 1)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// =============================================================================
// Definitions
// =============================================================================

const (
	shadowFilterID    = "shadow"
	grayscaleFilterID = "grayscale"
)

func (r *svgRenderer) renderDefs(buf *bytes.Buffer, t *visual.Tree) {
	var shadow, gray bool
	t.Walk(func(n visual.Node) bool {
		switch v := n.(type) {
		case *visual.Rect:
			shadow = shadow || v.Shadow
		case *visual.Image:
			gray = gray || v.Grayscale
		}
		return true
	})
	if len(t.Gradients) == 0 && !shadow && !gray {
		return
	}

	buf.WriteString("  <defs>\n")
	for _, g := range t.Gradients {
		renderGradient(buf, g)
	}
	if shadow {
		fmt.Fprintf(buf, `    <filter id="%s" x="-5%%" y="-5%%" width="110%%" height="115%%">`+
			`<feDropShadow dx="0" dy="4" stdDeviation="6" flood-color="#000000" flood-opacity="0.15"/></filter>`+"\n", shadowFilterID)
	}
	if gray {
		fmt.Fprintf(buf, `    <filter id="%s"><feColorMatrix type="saturate" values="0"/></filter>`+"\n", grayscaleFilterID)
	}
	buf.WriteString("  </defs>\n")
}

func renderGradient(buf *bytes.Buffer, g visual.Gradient) {
	if g.Radial {
		fmt.Fprintf(buf, `    <radialGradient id="%s" cx="%s" cy="%s" r="%s">`+"\n",
			escape(g.ID), num(g.X1), num(g.Y1), num(g.X2))
	} else {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			escape(g.ID), num(g.X1), num(g.Y1), num(g.X2), num(g.Y2))
	}
	fades := fadesStops(g)
	for _, s := range g.Stops {
		fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"`, num(s.Offset), escape(s.Color))
		if fades {
			fmt.Fprintf(buf, ` stop-opacity="%s"`, num(math.Min(math.Max(s.Opacity, 0), 1)))
		}
		buf.WriteString("/>\n")
	}
	if g.Radial {
		buf.WriteString("    </radialGradient>\n")
	} else {
		buf.WriteString("    </linearGradient>\n")
	}
}

// fadesStops reports whether the ramp sets stop opacities. When any stop
// does, an unset opacity on another stop means transparent.
func fadesStops(g visual.Gradient) bool {
	for _, s := range g.Stops {
		if s.Opacity > 0 {
			return true
		}
	}
	return false
}

// =============================================================================
// Nodes
// =============================================================================

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n visual.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *visual.Group:
		r.renderGroup(buf, v, depth)
	case *visual.Rect:
		fmt.Fprintf(buf, `%s<rect%s x="%s" y="%s" width="%s" height="%s"`, indent, attrs(v.Meta()),
			num(v.X), num(v.Y), num(math.Max(v.Width, 0)), num(math.Max(v.Height, 0)))
		if v.Radius > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(v.Radius))
		}
		paint(buf, v.Fill, v.Stroke, v.StrokeWidth, v.Dash)
		if v.Shadow {
			fmt.Fprintf(buf, ` filter="url(#%s)"`, shadowFilterID)
		}
		buf.WriteString("/>\n")
	case *visual.Circle:
		fmt.Fprintf(buf, `%s<circle%s cx="%s" cy="%s" r="%s"`, indent, attrs(v.Meta()), num(v.CX), num(v.CY), num(math.Max(v.R, 0)))
		paint(buf, v.Fill, v.Stroke, v.StrokeWidth, v.Dash)
		buf.WriteString("/>\n")
	case *visual.Line:
		fmt.Fprintf(buf, `%s<line%s x1="%s" y1="%s" x2="%s" y2="%s"`, indent, attrs(v.Meta()), num(v.X1), num(v.Y1), num(v.X2), num(v.Y2))
		paint(buf, "", v.Stroke, v.StrokeWidth, v.Dash)
		buf.WriteString("/>\n")
	case *visual.Path:
		fmt.Fprintf(buf, `%s<path%s d="%s"`, indent, attrs(v.Meta()), escape(v.D))
		if tr := transform(v.X, v.Y, 0, v.Scale); tr != "" {
			fmt.Fprintf(buf, ` transform="%s"`, tr)
		}
		paint(buf, v.Fill, v.Stroke, v.StrokeWidth, "")
		buf.WriteString("/>\n")
	case *visual.Image:
		r.renderImage(buf, v, indent)
	case *visual.Code:
		renderCode(buf, v, indent)
	case *visual.Text:
		renderText(buf, v, indent)
	}
}

func (r *svgRenderer) renderGroup(buf *bytes.Buffer, g *visual.Group, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(buf, "%s<g%s", indent, attrs(g.Meta()))
	if tr := transform(g.X, g.Y, g.Rotate, 0); tr != "" {
		fmt.Fprintf(buf, ` transform="%s"`, tr)
	}
	buf.WriteString(">\n")
	for _, c := range g.Children {
		r.renderNode(buf, c, depth+1)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

func (r *svgRenderer) renderImage(buf *bytes.Buffer, img *visual.Image, indent string) {
	if img.Href == "" || img.Width <= 0 || img.Height <= 0 {
		return
	}
	var clip string
	if img.Round {
		r.clips++
		clip = "clip-" + strconv.Itoa(r.clips)
		rad := math.Min(img.Width, img.Height) / 2
		fmt.Fprintf(buf, `%s<clipPath id="%s"><circle cx="%s" cy="%s" r="%s"/></clipPath>`+"\n",
			indent, clip, num(img.X+img.Width/2), num(img.Y+img.Height/2), num(rad))
	}
	fmt.Fprintf(buf, `%s<image%s x="%s" y="%s" width="%s" height="%s" href="%s" preserveAspectRatio="%s"`,
		indent, attrs(img.Meta()), num(img.X), num(img.Y), num(img.Width), num(img.Height), escape(img.Href), aspect(img.Fit))
	if clip != "" {
		fmt.Fprintf(buf, ` clip-path="url(#%s)"`, clip)
	}
	if img.Grayscale {
		fmt.Fprintf(buf, ` filter="url(#%s)"`, grayscaleFilterID)
	}
	buf.WriteString("/>\n")
}

func aspect(f visual.Fit) string {
	switch f {
	case visual.FitCover:
		return "xMidYMid slice"
	case visual.FitContain:
		return "xMidYMid meet"
	}
	return "none"
}

// renderCode draws the dark modules as one path in module units, scaled
// into the slot.
func renderCode(buf *bytes.Buffer, c *visual.Code, indent string) {
	if c.Size <= 0 {
		return
	}
	bg := c.Background
	if bg == "" {
		bg = "#FFFFFF"
	}
	fg := c.Color
	if fg == "" {
		fg = "#000000"
	}
	fmt.Fprintf(buf, `%s<g%s data-payload="%s">`+"\n", indent, attrs(c.Meta()), escape(c.Payload))
	fmt.Fprintf(buf, `%s  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		indent, num(c.X), num(c.Y), num(c.Size), num(c.Size), escape(bg))

	n := len(c.Modules)
	if n == 0 {
		fmt.Fprintf(buf, `%s  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#D1D5DB" stroke-width="1"/>`+"\n",
			indent, num(c.X), num(c.Y), num(c.Size), num(c.Size))
		if c.Label != "" {
			fmt.Fprintf(buf, `%s  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="12" fill="#6B7280">%s</text>`+"\n",
				indent, num(c.X+c.Size/2), num(c.Y+c.Size/2), escape(fonts.Stack("")), escape(c.Label))
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
		return
	}

	var d strings.Builder
	for y, row := range c.Modules {
		for x := 0; x < len(row); x++ {
			if !row[x] {
				continue
			}
			// Merge horizontal runs of dark modules into one rectangle.
			run := 1
			for x+run < len(row) && row[x+run] {
				run++
			}
			fmt.Fprintf(&d, "M%d %dh%dv1h-%dz", x, y, run, run)
			x += run - 1
		}
	}
	fmt.Fprintf(buf, `%s  <path d="%s" fill="%s" transform="%s" shape-rendering="crispEdges"/>`+"\n",
		indent, d.String(), escape(fg), transform(c.X, c.Y, 0, c.Size/float64(n)))
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

func renderText(buf *bytes.Buffer, t *visual.Text, indent string) {
	if len(t.Lines) == 0 {
		return
	}
	st := t.Style
	anchor := "start"
	switch st.Align {
	case visual.AlignCenter:
		anchor = "middle"
	case visual.AlignRight:
		anchor = "end"
	}
	color := st.Color
	if color == "" {
		color = "#000000"
	}
	fmt.Fprintf(buf, `%s<text%s font-family="%s" font-size="%s" fill="%s" text-anchor="%s"`,
		indent, attrs(t.Meta()), escape(fonts.Stack(st.Family)), num(st.Size), escape(color), anchor)
	if st.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if st.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	if st.Spacing != 0 {
		fmt.Fprintf(buf, ` letter-spacing="%s"`, num(st.Spacing))
	}
	buf.WriteString(` xml:space="preserve">`)
	x := t.AnchorX()
	for i, line := range t.Lines {
		fmt.Fprintf(buf, `<tspan x="%s" y="%s">%s</tspan>`, num(x), num(t.Baseline(i)), escape(line))
	}
	buf.WriteString("</text>\n")
}

// =============================================================================
// Attribute helpers
// =============================================================================

func attrs(b *visual.Base) string {
	var s strings.Builder
	if b.ID != "" {
		fmt.Fprintf(&s, ` id="%s"`, escape(b.ID))
	}
	if b.Role != "" {
		fmt.Fprintf(&s, ` class="%s"`, escape(b.Role))
	}
	if b.Faded() {
		fmt.Fprintf(&s, ` opacity="%s"`, num(b.Opacity))
	}
	return s.String()
}

func paint(buf *bytes.Buffer, fill, stroke string, width float64, dash string) {
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(buf, ` fill="%s"`, escape(fill))
	if stroke == "" || width <= 0 {
		return
	}
	fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, escape(stroke), num(width))
	if dash != "" {
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, escape(dash))
	}
}

func transform(x, y, rotate, scale float64) string {
	var parts []string
	if x != 0 || y != 0 {
		parts = append(parts, "translate("+num(x)+" "+num(y)+")")
	}
	if rotate != 0 {
		parts = append(parts, "rotate("+num(rotate)+")")
	}
	if scale != 0 && scale != 1 {
		parts = append(parts, "scale("+num(scale)+")")
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
