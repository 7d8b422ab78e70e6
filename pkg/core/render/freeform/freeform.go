// Package freeform renders free-form scenes: an ordered list of positioned
// elements on a fixed design canvas.
//
// Elements are drawn in list order, so later elements paint over earlier
// ones. Each element is placed at its design coordinates and rotated about
// its top-left corner. Text runs through token substitution and is wrapped
// to the element width. Images that are not loaded yet are left out; the
// caller re-renders when they arrive.
package freeform

import (
	"fmt"
	"math"
	"strings"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/badge"
	"github.com/certifyme/certrender/pkg/core/render/visual"
	"github.com/certifyme/certrender/pkg/core/tokens"
)

// Element defaults.
const (
	DefaultFontSize   = 20.0
	DefaultFontFamily = "Arial"
	DefaultFill       = "#000"
	DefaultBadgeSize  = 80.0
)

// NoLayoutMessage is shown for a free-form template without scene data.
const NoLayoutMessage = "No visual template data available."

// Roles of the nodes the renderer emits.
const (
	RoleBackground      = "background"
	RoleBackgroundImage = "background-image"
	RoleText            = "text"
	RolePlaceholder     = "placeholder"
	RoleImage           = "image"
	RoleShape           = "shape"

	// RoleElement marks the group that positions one element; the drawn
	// child carries the content role.
	RoleElement = "element"
)

// Render draws layout with the values of rec. images supplies loaded
// images; nil means none are available.
func Render(layout *certificate.LayoutData, rec merge.Record, images asset.Source, origin string) *visual.Tree {
	if images == nil {
		images = asset.None{}
	}
	if layout == nil {
		return visual.Placeholder(string(certificate.LayoutFreeform), visual.DefaultSize, NoLayoutMessage)
	}

	w, h := layout.Canvas.Size()
	t := visual.New(string(certificate.LayoutFreeform), visual.Size{Width: w, Height: h})

	fill := strings.TrimSpace(layout.Background.Fill)
	if fill == "" {
		fill = "#FFFFFF"
	}
	t.Add(&visual.Rect{Base: visual.Base{Role: RoleBackground}, Width: w, Height: h, Fill: fill})

	if ref := rec.Resolver.Resolve(layout.Background.Image); !ref.IsZero() {
		if href, ok := images.Image(ref.URL); ok {
			t.Add(&visual.Image{
				Base:   visual.Base{Role: RoleBackgroundImage},
				Width:  w,
				Height: h,
				Href:   href,
				Fit:    visual.FitCover,
			})
		}
	}

	for i, el := range layout.Elements {
		if n := element(el, i, rec, images, origin); n != nil {
			t.Add(n)
		}
	}
	return t
}

// element places one element. It returns nil for elements that draw
// nothing.
func element(el certificate.Element, index int, rec merge.Record, images asset.Source, origin string) visual.Node {
	opacity := 1.0
	if el.Opacity != nil {
		opacity = *el.Opacity
		if opacity <= 0 {
			return nil
		}
	}

	var child visual.Node
	switch {
	case el.IsBadge():
		child = badgeSlot(el, rec, origin)
	case el.Type == certificate.ElementText:
		child = text(el, RoleText, rec.Tokens)
	case el.Type == certificate.ElementPlaceholder:
		child = text(el, RolePlaceholder, rec.Tokens)
	case el.Type == certificate.ElementImage:
		child = image(el, rec.Resolver, images)
	case el.Type == certificate.ElementShape:
		child = shape(el)
	}
	if child == nil {
		return nil
	}

	id := el.ID
	if id == "" {
		id = fmt.Sprintf("el-%d", index)
	}
	g := &visual.Group{
		Base:   visual.Base{ID: id, Role: RoleElement, Opacity: opacity},
		X:      el.X,
		Y:      el.Y,
		Rotate: el.Rotation,
	}
	g.Add(child)
	return g
}

func text(el certificate.Element, role string, fields tokens.Fields) visual.Node {
	content := tokens.Substitute(el.Text, fields)
	if content == "" {
		return nil
	}
	bold, italic := parseFontStyle(el.FontStyle)
	st := visual.TextStyle{
		Size:   orDefault(el.FontSize, DefaultFontSize),
		Family: orString(el.FontFamily, DefaultFontFamily),
		Color:  orString(el.Fill, DefaultFill),
		Bold:   bold,
		Italic: italic,
		Align:  visual.ParseAlign(el.Align),
	}
	return visual.NewText(role, content, 0, 0, math.Max(el.Width, 0), st)
}

func image(el certificate.Element, r asset.Resolver, images asset.Source) visual.Node {
	if el.Width <= 0 || el.Height <= 0 {
		return nil
	}
	ref := r.Resolve(el.Src)
	if ref.IsZero() {
		return nil
	}
	href, ok := images.Image(ref.URL)
	if !ok {
		return nil
	}
	return &visual.Image{Base: visual.Base{Role: RoleImage}, Width: el.Width, Height: el.Height, Href: href, Fit: visual.FitStretch}
}

func shape(el certificate.Element) visual.Node {
	fill := strings.TrimSpace(el.Fill)
	switch el.ShapeType {
	case certificate.ShapeCircle:
		r := math.Min(el.Width, el.Height) / 2
		if r <= 0 {
			return nil
		}
		return &visual.Circle{Base: visual.Base{Role: RoleShape}, CX: el.Width / 2, CY: el.Height / 2, R: r, Fill: fill, Stroke: el.Stroke, StrokeWidth: el.StrokeWidth}
	case certificate.ShapeLine:
		stroke := orString(el.Stroke, orString(fill, DefaultFill))
		return &visual.Line{Base: visual.Base{Role: RoleShape}, X2: el.Width, Y2: el.Height, Stroke: stroke, StrokeWidth: orDefault(el.StrokeWidth, 1)}
	}
	if el.Width <= 0 || el.Height <= 0 {
		return nil
	}
	if fill == "" && el.Stroke == "" {
		fill = DefaultFill
	}
	return &visual.Rect{
		Base:        visual.Base{Role: RoleShape},
		Width:       el.Width,
		Height:      el.Height,
		Radius:      math.Max(el.CornerRadius, 0),
		Fill:        fill,
		Stroke:      el.Stroke,
		StrokeWidth: el.StrokeWidth,
	}
}

func badgeSlot(el certificate.Element, rec merge.Record, origin string) visual.Node {
	size := math.Min(el.Width, el.Height)
	if size <= 0 {
		size = math.Max(el.Width, el.Height)
	}
	if size <= 0 {
		size = DefaultBadgeSize
	}
	return badge.Node(origin, rec.VerificationID, 0, 0, size)
}

// parseFontStyle reads the editor's font style ("bold", "italic",
// "bold italic", "normal").
func parseFontStyle(s string) (bold, italic bool) {
	for _, part := range strings.Fields(strings.ToLower(s)) {
		switch part {
		case "bold", "700", "800", "900":
			bold = true
		case "italic", "oblique":
			italic = true
		}
	}
	return bold, italic
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func orString(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
