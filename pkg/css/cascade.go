package css

import (
	"errors"
	"sort"

	"l14lite/pkg/html"
)

// ErrNoCascade is returned by Resolve when called without a rule list.
var ErrNoCascade = errors.New("css: resolve called without a cascade")

// InheritedProperties are copied from the parent before rules apply.
// Roots get these defaults.
var InheritedProperties = map[string]string{
	"font-size":   "16px",
	"font-style":  "normal",
	"font-weight": "normal",
	"color":       "black",
}

// SortRules orders rules by ascending specificity. The sort is stable so
// that later rules still win ties.
func SortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Selector.Specificity() < sorted[j].Selector.Specificity()
	})
	return sorted
}

// Resolve computes the style of every node under tree.Root in place.
// An empty (non-nil) rule list is allowed and yields inherited defaults.
func Resolve(tree *html.Tree, rules []Rule) error {
	if rules == nil {
		return ErrNoCascade
	}
	if tree == nil || tree.Root == html.NoNode {
		return nil
	}
	resolveNode(tree, tree.Root, SortRules(rules))
	return nil
}

func resolveNode(tree *html.Tree, id html.NodeID, rules []Rule) {
	n := tree.Node(id)
	var parentStyle map[string]string
	if p := tree.Node(n.Parent); p != nil {
		parentStyle = p.Style
	}

	style := make(map[string]string, len(InheritedProperties))
	for prop, def := range InheritedProperties {
		if v, ok := parentStyle[prop]; ok {
			style[prop] = v
		} else {
			style[prop] = def
		}
	}

	if n.Type == html.ElementNode {
		for _, rule := range rules {
			if !rule.Selector.Matches(tree, id) {
				continue
			}
			apply(style, rule.Declarations, parentStyle)
		}
		if inline, ok := n.Attributes["style"]; ok {
			apply(style, ParseDeclarations(inline), parentStyle)
		}
	}
	n.Style = style

	for _, child := range tree.Children(id) {
		resolveNode(tree, child, rules)
	}
}

func apply(style, decls, parentStyle map[string]string) {
	for prop, val := range decls {
		if computed, ok := ComputeValue(prop, val, parentStyle); ok {
			style[prop] = computed
		}
	}
}

// ComputeValue turns a declared value into the value stored in a node's
// style. font-size percentages resolve against the parent's pixel size and
// any non-pixel font-size is dropped. Other properties pass through.
func ComputeValue(prop, val string, parentStyle map[string]string) (string, bool) {
	if prop != "font-size" {
		return val, true
	}
	l, ok := ParseLength(val)
	if !ok {
		return "", false
	}
	switch l.Unit {
	case "px":
		return val, true
	case "%":
		parentSize := InheritedProperties["font-size"]
		if v, ok := parentStyle["font-size"]; ok {
			parentSize = v
		}
		px, ok := ParsePixels(parentSize)
		if !ok {
			return "", false
		}
		return FormatPixels(l.Value / 100 * px), true
	}
	return "", false
}
