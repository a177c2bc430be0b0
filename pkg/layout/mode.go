package layout

import "l14lite/pkg/html"

type Mode int

const (
	BlockMode Mode = iota
	InlineMode
)

func (m Mode) String() string {
	if m == BlockMode {
		return "block"
	}
	return "inline"
}

// ModeOf decides how the node lays out its children. Elements with a
// block-level element child stack their children; childless elements are
// blocks too; everything else flows inline.
func ModeOf(tree *html.Tree, id html.NodeID) Mode {
	n := tree.Node(id)
	if n == nil || n.Type == html.TextNode {
		return InlineMode
	}
	if len(n.Children) == 0 {
		return BlockMode
	}
	for _, c := range n.Children {
		child := tree.Node(c)
		if child.Type == html.ElementNode && html.IsBlockElement(child.TagName) {
			return BlockMode
		}
	}
	return InlineMode
}

func hidden(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Style["display"] == "none"
}
