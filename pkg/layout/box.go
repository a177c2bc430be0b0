package layout

import (
	"l14lite/pkg/html"
	"l14lite/pkg/text"
)

type BoxKind int

const (
	DocumentBox BoxKind = iota
	BlockBox
	LineBox
	TextBox
)

func (k BoxKind) String() string {
	switch k {
	case DocumentBox:
		return "document"
	case BlockBox:
		return "block"
	case LineBox:
		return "line"
	case TextBox:
		return "text"
	}
	return "unknown"
}

// Box is one node of the geometry tree. Children are owned; Parent and
// Previous are non-owning back references valid for one layout pass.
type Box struct {
	Kind BoxKind
	Node html.NodeID
	Tag  string // element tag, empty for line and text boxes

	X      float64
	Y      float64
	Width  float64
	Height float64

	Children []*Box
	Parent   *Box
	Previous *Box

	// TextBox only
	Text  string
	Font  text.FontKey
	Color string

	// BlockBox only, raw background-color value
	Background string
}

func (b *Box) Right() float64 {
	return b.X + b.Width
}

func (b *Box) Bottom() float64 {
	return b.Y + b.Height
}

// Walk visits b and its descendants in document order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

func (b *Box) appendChild(c *Box) {
	c.Parent = b
	if n := len(b.Children); n > 0 {
		c.Previous = b.Children[n-1]
	}
	b.Children = append(b.Children, c)
}
