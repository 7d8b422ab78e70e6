package visual

import (
	"math"
	"strings"
)

// Size is a width and height in design units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSize is the landscape A4 page at 72 units per inch.
var DefaultSize = Size{Width: 842, Height: 595}

// PortraitSize is DefaultSize rotated.
var PortraitSize = Size{Width: 595, Height: 842}

// Valid reports whether both sides are positive and finite.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Aspect returns width / height.
func (s Size) Aspect() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// Tree is one rendered page.
type Tree struct {
	// Layout names the strategy that produced the tree.
	Layout string `json:"layout"`
	// Size is the design size; sinks scale it uniformly.
	Size      Size       `json:"size"`
	Gradients []Gradient `json:"gradients,omitempty"`
	Root      *Group     `json:"root"`
}

// New creates an empty tree.
func New(layout string, size Size) *Tree {
	return &Tree{Layout: layout, Size: size, Root: &Group{}}
}

// Add appends nodes to the root group.
func (t *Tree) Add(nodes ...Node) {
	t.Root.Add(nodes...)
}

// AddGradient registers a gradient and returns its fill reference.
func (t *Tree) AddGradient(g Gradient) string {
	for _, existing := range t.Gradients {
		if existing.ID == g.ID {
			return "url(#" + g.ID + ")"
		}
	}
	t.Gradients = append(t.Gradients, g)
	return "url(#" + g.ID + ")"
}

// Walk visits every node depth-first in drawing order. Returning false
// from fn skips the children of a group.
func (t *Tree) Walk(fn func(Node) bool) {
	if t == nil || t.Root == nil {
		return
	}
	walk(t.Root, fn)
}

func walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			walk(c, fn)
		}
	}
}

// Find returns every node with the given role, in drawing order.
func (t *Tree) Find(role string) []Node {
	var out []Node
	t.Walk(func(n Node) bool {
		if n.Meta().Role == role {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Text returns the text of every text node with the given role, joined by
// a space. It returns "" when there is none.
func (t *Tree) Text(role string) string {
	return strings.Join(t.Texts(role), " ")
}

// Texts returns the text of every text node with the given role.
func (t *Tree) Texts(role string) []string {
	var out []string
	for _, n := range t.Find(role) {
		if txt, ok := n.(*Text); ok {
			out = append(out, strings.Join(txt.Lines, " "))
		}
	}
	return out
}

// Count returns the number of nodes in the tree, the root included.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func(Node) bool { n++; return true })
	return n
}

// Placeholder returns a page that shows only message, centered on a light
// dashed panel. Renderers use it for empty states.
func Placeholder(layout string, size Size, message string) *Tree {
	if !size.Valid() {
		size = DefaultSize
	}
	t := New(layout, size)
	t.Add(&Rect{
		Base:        Base{Role: "empty"},
		X:           8,
		Y:           8,
		Width:       size.Width - 16,
		Height:      size.Height - 16,
		Radius:      12,
		Fill:        "#F9FAFB",
		Stroke:      "#E5E7EB",
		StrokeWidth: 2,
		Dash:        "8 6",
	})
	st := TextStyle{Size: 16, Color: "#9CA3AF", Bold: true, Align: AlignCenter}
	msg := NewText(RoleMessage, message, 0, 0, size.Width-64, st)
	msg.X = 32
	msg.Y = (size.Height - msg.Height()) / 2
	t.Add(msg)
	return t
}

// RoleMessage is the role of the text on a placeholder page.
const RoleMessage = "message"
