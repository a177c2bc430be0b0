package paint

import (
	"l14lite/pkg/css"
	"l14lite/pkg/layout"
	"l14lite/pkg/text"
)

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Command is a single paint primitive: DrawText or DrawRect.
type Command interface {
	Bounds() Rect
	command()
}

// DrawText draws Text with its top-left corner at (X, Y).
type DrawText struct {
	X, Y   float64
	Text   string
	Font   text.FontKey
	Color  string
	Right  float64
	Bottom float64
}

func (c DrawText) Bounds() Rect {
	return Rect{X1: c.X, Y1: c.Y, X2: c.Right, Y2: c.Bottom}
}

func (DrawText) command() {}

// DrawRect fills a rectangle.
type DrawRect struct {
	X1, Y1, X2, Y2 float64
	Color          string
}

func (c DrawRect) Bounds() Rect {
	return Rect{X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2}
}

func (DrawRect) command() {}

// DisplayList flattens the geometry tree into paint commands in document
// order. A block's background is emitted before anything inside it.
func DisplayList(root *layout.Box) []Command {
	var cmds []Command
	if root != nil {
		paintBox(root, &cmds)
	}
	return cmds
}

func paintBox(b *layout.Box, cmds *[]Command) {
	switch b.Kind {
	case layout.BlockBox:
		if !css.IsTransparent(b.Background) {
			*cmds = append(*cmds, DrawRect{
				X1:    b.X,
				Y1:    b.Y,
				X2:    b.Right(),
				Y2:    b.Bottom(),
				Color: b.Background,
			})
		}
	case layout.TextBox:
		*cmds = append(*cmds, DrawText{
			X:      b.X,
			Y:      b.Y,
			Text:   b.Text,
			Font:   b.Font,
			Color:  b.Color,
			Right:  b.Right(),
			Bottom: b.Bottom(),
		})
	}
	for _, c := range b.Children {
		paintBox(c, cmds)
	}
}

// Visible reports whether cmd intersects the viewport [scrollY, scrollY+height].
func Visible(cmd Command, scrollY, height float64) bool {
	b := cmd.Bounds()
	return b.Y2 >= scrollY && b.Y1 <= scrollY+height
}
