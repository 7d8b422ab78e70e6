// Package fonts provides text metrics and CSS font stacks for certificate
// rendering.
//
// Width measurement uses the Go font family (embedded in golang.org/x/image)
// parsed with freetype, so wrapping is identical on every machine and in
// every sink. Certificates name arbitrary families (Lato, Georgia, Playfair
// Display); those families only appear in the emitted CSS stack, while line
// breaks are always computed with the Go fonts as a stand-in.
package fonts

import (
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects a weight/slant variant for measurement.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
	Mono
)

// StyleFor maps weight and slant flags onto a Style.
func StyleFor(bold, italic bool) Style {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	}
	return Regular
}

// baseSize is the point size faces are created at; other sizes scale
// linearly because hinting is disabled.
const baseSize = 64.0

// LineHeight is the line box multiplier used for wrapped text.
const LineHeight = 1.25

var ttf = map[Style][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
	Mono:       gomono.TTF,
}

// truetype faces keep a glyph cache and are not safe for concurrent use.
type face struct {
	mu   sync.Mutex
	face font.Face
}

var (
	facesOnce sync.Once
	faces     map[Style]*face
)

func loadFaces() {
	faces = make(map[Style]*face, len(ttf))
	for s, data := range ttf {
		ft, err := truetype.Parse(data)
		if err != nil {
			// The embedded fonts always parse; skip the style otherwise.
			continue
		}
		faces[s] = &face{face: truetype.NewFace(ft, &truetype.Options{
			Size:    baseSize,
			DPI:     72,
			Hinting: font.HintingNone,
		})}
	}
}

// Measure returns the advance width of text set at size in the given style.
// Sizes are in design units (1pt == 1 unit).
func Measure(text string, size float64, style Style) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	facesOnce.Do(loadFaces)

	f, ok := faces[style]
	if !ok {
		f, ok = faces[Regular]
		if !ok {
			return float64(len([]rune(text))) * size * 0.5
		}
	}

	f.mu.Lock()
	adv := font.MeasureString(f.face, text)
	f.mu.Unlock()

	return float64(adv) / 64 * size / baseSize
}

// Wrap breaks text into lines no wider than width. Explicit newlines are
// kept. A single word wider than width occupies its own line unbroken.
// A non-positive width disables wrapping.
func Wrap(text string, width, size float64, style Style) []string {
	if text == "" {
		return nil
	}
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if width <= 0 {
		return paragraphs
	}

	space := Measure(" ", size, style)
	var lines []string
	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		curW := Measure(cur, size, style)
		for _, w := range words[1:] {
			ww := Measure(w, size, style)
			if curW+space+ww <= width {
				cur += " " + w
				curW += space + ww
				continue
			}
			lines = append(lines, cur)
			cur, curW = w, ww
		}
		lines = append(lines, cur)
	}
	return lines
}

// =============================================================================
// CSS Font Stacks
// =============================================================================

// DefaultFamily is used when a template names no font.
const DefaultFamily = "Lato"

var serifFamilies = map[string]bool{
	"georgia":          true,
	"times new roman":  true,
	"playfair display": true,
	"merriweather":     true,
	"garamond":         true,
	"cinzel":           true,
	"serif":            true,
}

var monoFamilies = map[string]bool{
	"courier new": true,
	"monospace":   true,
	"fira code":   true,
}

// IsSerif reports whether family names a serif face.
func IsSerif(family string) bool {
	return serifFamilies[strings.ToLower(strings.TrimSpace(family))]
}

// IsMono reports whether family names a monospace face.
func IsMono(family string) bool {
	return monoFamilies[strings.ToLower(strings.TrimSpace(family))]
}

// Stack returns a CSS font-family value that starts with family and falls
// back to a generic family of the same kind.
func Stack(family string) string {
	family = strings.TrimSpace(family)
	if family == "" {
		family = DefaultFamily
	}
	key := strings.ToLower(family)
	var fallback string
	switch {
	case monoFamilies[key]:
		fallback = `'Courier New', monospace`
	case serifFamilies[key]:
		fallback = `Georgia, 'Times New Roman', serif`
	default:
		fallback = `'Helvetica Neue', Arial, sans-serif`
	}
	if key == "serif" || key == "sans-serif" || key == "monospace" {
		return family
	}
	return "'" + strings.ReplaceAll(family, "'", "") + "', " + fallback
}
