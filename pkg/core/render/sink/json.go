package sink

import (
	"encoding/json"
	"strings"

	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width   float64
	modules bool
}

// WithJSONWidth records the surface the tree is shown at. The height and
// scale follow from the design size.
func WithJSONWidth(w float64) JSONOption {
	return func(r *jsonRenderer) { r.width = w }
}

// WithModules includes the badge module matrix, one string of '1' and '0'
// per row.
func WithModules() JSONOption { return func(r *jsonRenderer) { r.modules = true } }

type jsonOutput struct {
	Layout    string            `json:"layout"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Surface   *jsonSurface      `json:"surface,omitempty"`
	Gradients []visual.Gradient `json:"gradients,omitempty"`
	Nodes     []jsonNode        `json:"nodes"`
}

type jsonSurface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// jsonNode flattens every node type into one shape. Type selects which
// fields apply.
type jsonNode struct {
	Type    string  `json:"type"`
	ID      string  `json:"id,omitempty"`
	Role    string  `json:"role,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Rotate float64 `json:"rotate,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dash        string  `json:"dash,omitempty"`
	Shadow      bool    `json:"shadow,omitempty"`

	D     string  `json:"d,omitempty"`
	Scale float64 `json:"scale,omitempty"`

	Href      string `json:"href,omitempty"`
	Fit       string `json:"fit,omitempty"`
	Round     bool   `json:"round,omitempty"`
	Grayscale bool   `json:"grayscale,omitempty"`

	Lines []string          `json:"lines,omitempty"`
	Style *visual.TextStyle `json:"style,omitempty"`

	Payload string   `json:"payload,omitempty"`
	Label   string   `json:"label,omitempty"`
	Modules []string `json:"modules,omitempty"`

	Children []jsonNode `json:"children,omitempty"`
}

// RenderJSON serializes the tree with a "type" on every node.
func RenderJSON(t *visual.Tree, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Layout:    t.Layout,
		Width:     t.Size.Width,
		Height:    t.Size.Height,
		Gradients: t.Gradients,
		Nodes:     []jsonNode{},
	}
	if r.width > 0 && t.Size.Valid() {
		s := r.width / t.Size.Width
		out.Surface = &jsonSurface{Width: r.width, Height: t.Size.Height * s, Scale: s}
	}
	if t.Root != nil {
		for _, n := range t.Root.Children {
			out.Nodes = append(out.Nodes, r.node(n))
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func (r *jsonRenderer) node(n visual.Node) jsonNode {
	b := n.Meta()
	out := jsonNode{ID: b.ID, Role: b.Role}
	if b.Faded() {
		out.Opacity = b.Opacity
	}

	switch v := n.(type) {
	case *visual.Group:
		out.Type = "group"
		out.X, out.Y, out.Rotate = v.X, v.Y, v.Rotate
		for _, c := range v.Children {
			out.Children = append(out.Children, r.node(c))
		}
	case *visual.Rect:
		out.Type = "rect"
		out.X, out.Y, out.Width, out.Height, out.Radius = v.X, v.Y, v.Width, v.Height, v.Radius
		out.Fill, out.Stroke, out.StrokeWidth, out.Dash, out.Shadow = v.Fill, v.Stroke, v.StrokeWidth, v.Dash, v.Shadow
	case *visual.Circle:
		out.Type = "circle"
		out.X, out.Y, out.Radius = v.CX, v.CY, v.R
		out.Fill, out.Stroke, out.StrokeWidth, out.Dash = v.Fill, v.Stroke, v.StrokeWidth, v.Dash
	case *visual.Line:
		out.Type = "line"
		out.X, out.Y, out.X2, out.Y2 = v.X1, v.Y1, v.X2, v.Y2
		out.Stroke, out.StrokeWidth, out.Dash = v.Stroke, v.StrokeWidth, v.Dash
	case *visual.Path:
		out.Type = "path"
		out.D, out.X, out.Y, out.Scale = v.D, v.X, v.Y, v.Scale
		out.Fill, out.Stroke, out.StrokeWidth = v.Fill, v.Stroke, v.StrokeWidth
	case *visual.Image:
		out.Type = "image"
		out.X, out.Y, out.Width, out.Height = v.X, v.Y, v.Width, v.Height
		out.Href, out.Fit, out.Round, out.Grayscale = v.Href, string(v.Fit), v.Round, v.Grayscale
	case *visual.Text:
		out.Type = "text"
		out.X, out.Y, out.Width, out.Height = v.X, v.Y, v.Width, v.Height()
		out.Lines = v.Lines
		st := v.Style
		out.Style = &st
	case *visual.Code:
		out.Type = "code"
		out.X, out.Y, out.Width, out.Height = v.X, v.Y, v.Size, v.Size
		out.Payload, out.Label = v.Payload, v.Label
		out.Fill, out.Stroke = v.Background, v.Color
		if r.modules {
			out.Modules = moduleRows(v.Modules)
		}
	}
	return out
}

func moduleRows(m [][]bool) []string {
	rows := make([]string, len(m))
	for i, row := range m {
		var b strings.Builder
		for _, dark := range row {
			if dark {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		rows[i] = b.String()
	}
	return rows
}
