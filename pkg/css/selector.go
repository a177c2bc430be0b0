package css

import "l14lite/pkg/html"

// Selector is a closed set: TagSelector and DescendantSelector.
type Selector interface {
	// Matches reports whether the element id in tree matches.
	Matches(tree *html.Tree, id html.NodeID) bool
	Specificity() int
	String() string

	selector()
}

// TagSelector matches elements by tag name.
type TagSelector struct {
	Tag string
}

func (s TagSelector) Matches(tree *html.Tree, id html.NodeID) bool {
	n := tree.Node(id)
	return n != nil && n.Type == html.ElementNode && n.TagName == s.Tag
}

func (TagSelector) Specificity() int { return 1 }

func (s TagSelector) String() string { return s.Tag }

func (TagSelector) selector() {}

// DescendantSelector matches a node matched by Descendant that has a strict
// ancestor matched by Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant Selector
}

func (s DescendantSelector) Matches(tree *html.Tree, id html.NodeID) bool {
	if !s.Descendant.Matches(tree, id) {
		return false
	}
	for p := tree.Parent(id); p != html.NoNode; p = tree.Parent(p) {
		if s.Ancestor.Matches(tree, p) {
			return true
		}
	}
	return false
}

func (s DescendantSelector) Specificity() int {
	return s.Ancestor.Specificity() + s.Descendant.Specificity()
}

func (s DescendantSelector) String() string {
	return s.Ancestor.String() + " " + s.Descendant.String()
}

func (DescendantSelector) selector() {}
