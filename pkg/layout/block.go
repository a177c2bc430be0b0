package layout

import "l14lite/pkg/html"

// layoutBlock fills in b.Children and b.Height. b.X, b.Y and b.Width are
// set by the caller.
func (e *Engine) layoutBlock(tree *html.Tree, b *Box) {
	n := tree.Node(b.Node)
	if n.Type == html.ElementNode {
		b.Background = n.Style["background-color"]
	}

	if ModeOf(tree, b.Node) == InlineMode {
		lb := newLineBuilder(e, tree, b)
		lb.layout(b.Node)
		lb.flush()
		b.Height = lb.cursorY - b.Y
		return
	}

	y := b.Y
	for _, id := range n.Children {
		cn := tree.Node(id)
		if hidden(cn) {
			continue
		}
		child := &Box{
			Kind:  BlockBox,
			Node:  id,
			Tag:   cn.TagName,
			X:     b.X,
			Y:     y,
			Width: b.Width,
		}
		b.appendChild(child)
		e.layoutBlock(tree, child)
		y = child.Y + child.Height
	}
	b.Height = y - b.Y
}
