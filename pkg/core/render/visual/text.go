package visual

import (
	"math"
	"strings"

	"github.com/certifyme/certrender/pkg/fonts"
)

// Align is horizontal text alignment within a text box.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign maps a stored alignment name, defaulting to left.
func ParseAlign(s string) Align {
	switch Align(strings.ToLower(strings.TrimSpace(s))) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	}
	return AlignLeft
}

// TextStyle describes how a run of text is set.
type TextStyle struct {
	Size    float64 `json:"size"`
	Family  string  `json:"family,omitempty"`
	Color   string  `json:"color,omitempty"`
	Bold    bool    `json:"bold,omitempty"`
	Italic  bool    `json:"italic,omitempty"`
	Align   Align   `json:"align,omitempty"`
	Spacing float64 `json:"spacing,omitempty"`
	// Upper sets the text in capitals. It is applied when the node is
	// built so that measurement sees the final glyphs.
	Upper bool `json:"-"`
}

func (s TextStyle) face() fonts.Style {
	if fonts.IsMono(s.Family) {
		return fonts.Mono
	}
	return fonts.StyleFor(s.Bold, s.Italic)
}

// Measure returns the width of one line of text in style s.
func (s TextStyle) Measure(text string) float64 {
	w := fonts.Measure(text, s.Size, s.face())
	if n := len([]rune(text)); n > 1 && s.Spacing != 0 {
		w += s.Spacing * float64(n-1)
	}
	return w
}

// LineHeight is the distance between baselines.
func (s TextStyle) LineHeight() float64 {
	return s.Size * fonts.LineHeight
}

// Text is a block of pre-wrapped lines. (X, Y) is the top-left corner of
// the text box; Width is the box width, zero for an unbounded box.
type Text struct {
	Base
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Width float64   `json:"width,omitempty"`
	Lines []string  `json:"lines"`
	Style TextStyle `json:"style"`
}

// NewText builds a text node, wrapping text to width. Explicit newlines
// are kept. A width of zero disables wrapping.
func NewText(role, text string, x, y, width float64, style TextStyle) *Text {
	if style.Upper {
		text = strings.ToUpper(text)
	}
	if style.Align == "" {
		style.Align = AlignLeft
	}
	var lines []string
	if style.Spacing == 0 {
		lines = fonts.Wrap(text, width, style.Size, style.face())
	} else {
		lines = wrapSpaced(text, width, style)
	}
	return &Text{
		Base:  Base{Role: role},
		X:     x,
		Y:     y,
		Width: width,
		Lines: lines,
		Style: style,
	}
}

// wrapSpaced wraps with letter spacing included in the measure.
func wrapSpaced(text string, width float64, style TextStyle) []string {
	if text == "" {
		return nil
	}
	paragraphs := strings.Split(text, "\n")
	if width <= 0 {
		return paragraphs
	}
	var lines []string
	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if style.Measure(cur+" "+w) <= width {
				cur += " " + w
				continue
			}
			lines = append(lines, cur)
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}

// Height returns the height of the text box.
func (t *Text) Height() float64 {
	return float64(len(t.Lines)) * t.Style.LineHeight()
}

// Bottom returns Y + Height.
func (t *Text) Bottom() float64 {
	return t.Y + t.Height()
}

// Baseline returns the baseline of line i.
func (t *Text) Baseline(i int) float64 {
	lh := t.Style.LineHeight()
	return t.Y + float64(i)*lh + (lh-t.Style.Size)/2 + t.Style.Size*0.8
}

// AnchorX returns the x coordinate lines are aligned on.
func (t *Text) AnchorX() float64 {
	switch t.Style.Align {
	case AlignCenter:
		return t.X + t.Width/2
	case AlignRight:
		return t.X + t.Width
	}
	return t.X
}

// MaxLineWidth returns the width of the widest line.
func (t *Text) MaxLineWidth() float64 {
	var w float64
	for _, l := range t.Lines {
		w = math.Max(w, t.Style.Measure(l))
	}
	return w
}
