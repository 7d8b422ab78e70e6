package certificate

// Template is a stored certificate design.
type Template struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// LayoutKind selects the strategy. LayoutStyle is the older key for the
	// same value and is consulted only when LayoutKind is empty.
	LayoutKind  string `json:"layout_kind,omitempty" yaml:"layout_kind,omitempty"`
	LayoutStyle string `json:"layout_style,omitempty" yaml:"layout_style,omitempty"`

	PrimaryColor   string `json:"primary_color,omitempty" yaml:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty" yaml:"secondary_color,omitempty"`
	BodyFontColor  string `json:"body_font_color,omitempty" yaml:"body_font_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty" yaml:"font_family,omitempty"`

	BackgroundURL string `json:"background_url,omitempty" yaml:"background_url,omitempty"`
	LogoURL       string `json:"logo_url,omitempty" yaml:"logo_url,omitempty"`

	CustomText *CustomText `json:"custom_text,omitempty" yaml:"custom_text,omitempty"`

	// LayoutData is only meaningful for free-form templates.
	LayoutData *LayoutData `json:"layout_data,omitempty" yaml:"layout_data,omitempty"`
}

// CustomText holds template-level text defaults.
type CustomText struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Body  string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Kind resolves the layout strategy. Unknown names map to classic with
// known == false so callers can log the fallback.
func (t *Template) Kind() (kind LayoutKind, known bool) {
	if t == nil {
		return LayoutClassic, true
	}
	name := t.LayoutKind
	if name == "" {
		name = t.LayoutStyle
	}
	return ParseLayoutKind(name)
}

// RequestedKind returns the raw layout name as stored.
func (t *Template) RequestedKind() string {
	if t == nil {
		return ""
	}
	if t.LayoutKind != "" {
		return t.LayoutKind
	}
	return t.LayoutStyle
}
