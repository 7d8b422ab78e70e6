package visual

import "math"

// Node is an element of the visual tree.
type Node interface {
	Meta() *Base
}

// Base holds the attributes every node shares.
type Base struct {
	ID   string `json:"id,omitempty"`
	Role string `json:"role,omitempty"`
	// Opacity in (0, 1) fades the node; any other value draws it opaque.
	Opacity float64 `json:"opacity,omitempty"`
}

// Meta returns the shared attributes.
func (b *Base) Meta() *Base { return b }

// Faded reports whether Opacity should be emitted.
func (b *Base) Faded() bool { return b.Opacity > 0 && b.Opacity < 1 }

// Group positions its children. Children are drawn translated by (X, Y),
// then rotated by Rotate degrees about that point.
type Group struct {
	Base
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Rotate   float64 `json:"rotate,omitempty"`
	Children []Node  `json:"children,omitempty"`
}

// Add appends children, skipping nil nodes.
func (g *Group) Add(nodes ...Node) {
	for _, n := range nodes {
		if n == nil || isNilNode(n) {
			continue
		}
		g.Children = append(g.Children, n)
	}
}

// isNilNode catches typed nil pointers wrapped in the interface.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Group:
		return v == nil
	case *Rect:
		return v == nil
	case *Circle:
		return v == nil
	case *Line:
		return v == nil
	case *Path:
		return v == nil
	case *Text:
		return v == nil
	case *Image:
		return v == nil
	case *Code:
		return v == nil
	}
	return false
}

// Rect is a rectangle with optional rounded corners.
type Rect struct {
	Base
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Radius      float64 `json:"radius,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dash        string  `json:"dash,omitempty"`
	Shadow      bool    `json:"shadow,omitempty"`
}

// Circle is a circle.
type Circle struct {
	Base
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dash        string  `json:"dash,omitempty"`
}

// Line is a straight segment.
type Line struct {
	Base
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	Dash        string  `json:"dash,omitempty"`
}

// Path is an SVG path drawn at (X, Y) and scaled by Scale.
type Path struct {
	Base
	D           string  `json:"d"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
}

// Fit controls how an image fills its box.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
	FitStretch Fit = "stretch"
)

// Image is a raster or vector image embedded by reference.
type Image struct {
	Base
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Href   string  `json:"href"`
	Fit    Fit     `json:"fit,omitempty"`
	// Round clips the image to the inscribed circle.
	Round     bool `json:"round,omitempty"`
	Grayscale bool `json:"grayscale,omitempty"`
}

// Code is a square two-dimensional barcode. Modules is the dark/light
// matrix, row-major; a nil matrix draws Label in an empty box instead.
type Code struct {
	Base
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Size       float64  `json:"size"`
	Payload    string   `json:"payload"`
	Modules    [][]bool `json:"-"`
	Color      string   `json:"color,omitempty"`
	Background string   `json:"background,omitempty"`
	Label      string   `json:"label,omitempty"`
}

// Gradient is a linear or radial color ramp. Coordinates are fractions of
// the filled shape's bounding box; a radial gradient is centered on
// (X1, Y1) with radius X2.
type Gradient struct {
	ID     string  `json:"id"`
	Radial bool    `json:"radial,omitempty"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Stops  []Stop  `json:"stops"`
}

// Stop is one gradient color stop.
type Stop struct {
	Offset  float64 `json:"offset"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Linear returns a linear gradient running at the given CSS angle
// (0 = bottom to top, 90 = left to right).
func Linear(id string, angle float64, stops ...Stop) Gradient {
	x1, y1, x2, y2 := angleVector(angle)
	return Gradient{ID: id, X1: x1, Y1: y1, X2: x2, Y2: y2, Stops: stops}
}

// Radial returns a centered radial gradient.
func Radial(id string, stops ...Stop) Gradient {
	return Gradient{ID: id, Radial: true, X1: 0.5, Y1: 0.5, X2: 0.5, Stops: stops}
}

func angleVector(deg float64) (x1, y1, x2, y2 float64) {
	rad := deg * math.Pi / 180
	dx, dy := math.Sin(rad)/2, -math.Cos(rad)/2
	return round3(0.5 - dx), round3(0.5 - dy), round3(0.5 + dx), round3(0.5 + dy)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
