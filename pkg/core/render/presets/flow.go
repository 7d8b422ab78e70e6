package presets

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// flow stacks content top to bottom inside a column. Content is collected
// in its own group so a finished flow can be moved as a whole, e.g. to
// center it vertically.
type flow struct {
	g    *visual.Group
	x, w float64
	y    float64
}

func newFlow(x, w float64) *flow {
	return &flow{g: &visual.Group{}, x: x, w: w}
}

// height returns the extent of the content so far.
func (f *flow) height() float64 { return f.y }

// place moves the flow to top and adds it to the page.
func (f *flow) place(p *page, top float64) {
	f.g.Y = top
	p.add(f.g)
}

// center adds the flow to the page, centered vertically in [top, top+h).
func (f *flow) center(p *page, top, h float64) {
	f.place(p, top+math.Max(0, (h-f.y)/2))
}

func (f *flow) space(d float64) { f.y += d }

func (f *flow) text(role, s string, st visual.TextStyle, gap float64) *visual.Text {
	t := visual.NewText(role, s, f.x, f.y, f.w, st)
	f.g.Add(t)
	f.y = t.Bottom() + gap
	return t
}

// rule draws a filled bar of the given size, aligned in the column.
func (f *flow) rule(w, h float64, color string, align visual.Align, gap float64) {
	f.g.Add(fill(f.alignX(w, align), f.y, w, h, color))
	f.y += h + gap
}

// logo adds the logo in a box of the given size when it is loaded.
func (f *flow) logo(p *page, w, h float64, align visual.Align, gap float64) *visual.Image {
	img := p.logo(f.alignX(w, align), f.y, w, h)
	if img == nil {
		return nil
	}
	f.g.Add(img)
	f.y += h + gap
	return img
}

func (f *flow) alignX(w float64, align visual.Align) float64 {
	switch align {
	case visual.AlignCenter:
		return f.x + (f.w-w)/2
	case visual.AlignRight:
		return f.x + f.w - w
	}
	return f.x
}

// =============================================================================
// Inline runs
// =============================================================================

// run is a span of text with its own style inside a paragraph.
type run struct {
	role string
	text string
	st   visual.TextStyle
}

// runs sets a paragraph of mixed-style spans, wrapping across span
// boundaries. Spans are joined by a space unless the next one starts with
// punctuation.
func (f *flow) runs(align visual.Align, gap float64, spans ...run) {
	nodes, h := layoutRuns(f.x, f.y, f.w, align, spans)
	f.g.Add(nodes...)
	f.y += h + gap
}

type fragment struct {
	span int
	text string
	x    float64
}

func layoutRuns(x, y, width float64, align visual.Align, spans []run) ([]visual.Node, float64) {
	var lineH float64
	for i := range spans {
		if spans[i].st.Upper {
			spans[i].text = strings.ToUpper(spans[i].text)
		}
		lineH = math.Max(lineH, spans[i].st.LineHeight())
	}

	var (
		lines  [][]fragment
		widths []float64
		line   []fragment
		lineW  float64
	)
	flush := func() {
		lines = append(lines, line)
		widths = append(widths, lineW)
		line, lineW = nil, 0
	}

	for si, sp := range spans {
		words := strings.Fields(sp.text)
		for wi, word := range words {
			joined := wi == 0 && si > 0 && startsWithPunct(word)
			gapW := 0.0
			if len(line) > 0 && !joined {
				gapW = sp.st.Measure(" ")
			}
			ww := sp.st.Measure(word)
			if len(line) > 0 && !joined && lineW+gapW+ww > width {
				flush()
				gapW = 0
			}
			if n := len(line); n > 0 && line[n-1].span == si {
				sep := " "
				if gapW == 0 {
					sep = ""
				}
				line[n-1].text += sep + word
			} else {
				line = append(line, fragment{span: si, text: word, x: lineW + gapW})
			}
			lineW += gapW + ww
		}
	}
	if len(line) > 0 {
		flush()
	}

	var nodes []visual.Node
	for li, frags := range lines {
		offset := 0.0
		switch align {
		case visual.AlignCenter:
			offset = (width - widths[li]) / 2
		case visual.AlignRight:
			offset = width - widths[li]
		}
		for _, fr := range frags {
			st := spans[fr.span].st
			st.Align = visual.AlignLeft
			st.Upper = false
			ty := y + float64(li)*lineH + (lineH-st.LineHeight())/2
			nodes = append(nodes, visual.NewText(spans[fr.span].role, fr.text, x+offset+fr.x, ty, 0, st))
		}
	}
	return nodes, float64(len(lines)) * lineH
}

func startsWithPunct(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsPunct(r)
}

// =============================================================================
// Custom fields
// =============================================================================

// grid describes how a preset lays out custom fields.
type grid struct {
	cols   int
	colGap float64
	rowGap float64
	// inline puts key and value on one row. With keyWidth set the value
	// starts after a fixed key column; otherwise it is pushed to the right
	// edge of the cell.
	inline   bool
	keyWidth float64
	align    visual.Align
	key      visual.TextStyle
	value    visual.TextStyle
	// rule, when set, underlines each cell.
	rule   string
	suffix string
	prefix string
	width  float64
}

// fields lays out the custom fields. Nothing is drawn when there are none.
func (f *flow) fields(fs certificate.Fields, g grid, gap float64) {
	if len(fs) == 0 {
		return
	}
	if g.cols < 1 {
		g.cols = 1
	}
	width := f.w
	if g.width > 0 && g.width < width {
		width = g.width
	}
	left := f.x
	if g.align == visual.AlignCenter {
		left = f.alignX(width, visual.AlignCenter)
	}
	cellW := (width - g.colGap*float64(g.cols-1)) / float64(g.cols)

	for start := 0; start < len(fs); start += g.cols {
		rowH := 0.0
		for c := 0; c < g.cols && start+c < len(fs); c++ {
			cx := left + float64(c)*(cellW+g.colGap)
			h := g.cell(f.g, fs[start+c], cx, f.y, cellW)
			rowH = math.Max(rowH, h)
		}
		f.y += rowH + g.rowGap
	}
	f.y += gap - g.rowGap
}

// cell draws one field and returns its height.
func (g grid) cell(parent *visual.Group, fld certificate.Field, x, y, w float64) float64 {
	key := g.prefix + fld.Key + g.suffix
	var h float64
	if g.inline {
		var k, v *visual.Text
		if g.keyWidth > 0 {
			k = visual.NewText(RoleFieldKey, key, x, y, g.keyWidth, g.key)
			v = visual.NewText(RoleFieldValue, fld.Value, x+g.keyWidth, y, w-g.keyWidth, g.value)
		} else {
			vs := g.value
			vs.Align = visual.AlignRight
			k = visual.NewText(RoleFieldKey, key, x, y, w/2, g.key)
			v = visual.NewText(RoleFieldValue, fld.Value, x+w/2, y, w/2, vs)
		}
		lineH := math.Max(g.key.LineHeight(), g.value.LineHeight())
		k.Y += (lineH - g.key.LineHeight()) / 2
		v.Y += (lineH - g.value.LineHeight()) / 2
		parent.Add(k, v)
		h = math.Max(k.Bottom(), v.Bottom()) - y
	} else {
		ks, vs := g.key, g.value
		ks.Align, vs.Align = g.align, g.align
		k := visual.NewText(RoleFieldKey, key, x, y, w, ks)
		v := visual.NewText(RoleFieldValue, fld.Value, x, k.Bottom()+2, w, vs)
		parent.Add(k, v)
		h = v.Bottom() - y
	}
	if g.rule != "" {
		h += 4
		parent.Add(hline(x, x+w, y+h, 1, g.rule))
		h += 1
	}
	return h
}

// =============================================================================
// Signature blocks
// =============================================================================

// sigBlock is a value set over a rule with a caption below it.
type sigBlock struct {
	role    string
	value   string
	label   string
	valueSt visual.TextStyle
	labelSt visual.TextStyle
	rule    string
	align   visual.Align
}

// draw places the block with its rule at ruleY, spanning [x, x+w). It
// returns the bottom of the caption.
func (b sigBlock) draw(parent *visual.Group, x, ruleY, w float64) float64 {
	if b.align == "" {
		b.align = visual.AlignCenter
	}
	vs, ls := b.valueSt, b.labelSt
	vs.Align, ls.Align = b.align, b.align

	v := visual.NewText(b.role, b.value, x, 0, w, vs)
	v.Y = ruleY - 4 - v.Height()
	parent.Add(v)
	if b.rule != "" {
		parent.Add(hline(x, x+w, ruleY, 1, b.rule))
	}
	l := visual.NewText(RoleLabel, b.label, x, ruleY+4, w, ls)
	parent.Add(l)
	return l.Bottom()
}

// num formats a coordinate for path data.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
