package certificate

// Default free-form canvas, an A4 landscape page in points.
const (
	DefaultCanvasWidth  = 842.0
	DefaultCanvasHeight = 595.0
)

// LayoutData is the free-form scene: a canvas, a background and an ordered
// element list. List order is paint order.
type LayoutData struct {
	Canvas     Canvas     `json:"canvas" yaml:"canvas"`
	Background Background `json:"background" yaml:"background"`
	Elements   []Element  `json:"elements" yaml:"elements"`
}

// Canvas is the design surface size in design units.
type Canvas struct {
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// Size returns the canvas size with defaults applied to missing axes.
func (c Canvas) Size() (w, h float64) {
	w, h = c.Width, c.Height
	if w <= 0 {
		w = DefaultCanvasWidth
	}
	if h <= 0 {
		h = DefaultCanvasHeight
	}
	return w, h
}

// Background paints beneath every element.
type Background struct {
	Fill  string `json:"fill,omitempty" yaml:"fill,omitempty"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// ElementType classifies a free-form element.
type ElementType string

const (
	ElementText        ElementType = "text"
	ElementPlaceholder ElementType = "placeholder"
	ElementImage       ElementType = "image"
	ElementShape       ElementType = "shape"
	ElementQR          ElementType = "qr"
)

// ShapeType selects the outline of a shape element.
type ShapeType string

const (
	ShapeRect   ShapeType = "rect"
	ShapeCircle ShapeType = "circle"
	ShapeLine   ShapeType = "line"
)

// Element is one positioned item of a free-form scene. Geometry is in
// design units; rotation is in degrees around the element's top-left corner.
type Element struct {
	ID   string      `json:"id,omitempty" yaml:"id,omitempty"`
	Type ElementType `json:"type" yaml:"type"`

	X        float64  `json:"x" yaml:"x"`
	Y        float64  `json:"y" yaml:"y"`
	Width    float64  `json:"width,omitempty" yaml:"width,omitempty"`
	Height   float64  `json:"height,omitempty" yaml:"height,omitempty"`
	Rotation float64  `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`

	// Text and placeholder elements.
	Text       string  `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontStyle  string  `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty"`
	Align      string  `json:"align,omitempty" yaml:"align,omitempty"`

	// Shape elements. Fill also colors text.
	ShapeType    ShapeType `json:"shapeType,omitempty" yaml:"shapeType,omitempty"`
	Fill         string    `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke       string    `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth  float64   `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	CornerRadius float64   `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`

	// Image elements.
	Src string `json:"src,omitempty" yaml:"src,omitempty"`

	// IsQR turns any element into the verification badge slot.
	IsQR bool `json:"isQr,omitempty" yaml:"isQr,omitempty"`
}

// IsBadge reports whether the element renders the verification badge.
func (e Element) IsBadge() bool {
	return e.IsQR || e.Type == ElementQR
}
