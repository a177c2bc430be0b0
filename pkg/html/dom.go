package html

import (
	"sort"
	"strings"
)

// NodeID addresses a node inside a Tree. IDs are stable for the lifetime of
// the tree; nodes are never removed from the arena.
type NodeID int32

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	}
	return "unknown"
}

// Node is either an element (TagName, Attributes) or a text run (Text).
// Children lists the owned child handles in document order. Parent is only
// a lookup handle and never implies ownership.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Style      map[string]string // resolved by css.Resolve
	Parent     NodeID
	Children   []NodeID
}

// Tree is an arena of nodes with a single root.
type Tree struct {
	nodes []Node
	Root  NodeID
}

// NewTree returns an empty tree. Root is NoNode until SetRoot is called.
func NewTree() *Tree {
	return &Tree{Root: NoNode}
}

// Len returns the number of nodes allocated in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for id. The pointer is valid until the next
// allocation in the tree.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// NewElement allocates a detached element node.
func (t *Tree) NewElement(tag string, attrs map[string]string) NodeID {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	t.nodes = append(t.nodes, Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attrs,
		Parent:     NoNode,
	})
	return NodeID(len(t.nodes) - 1)
}

// NewText allocates a detached text node.
func (t *Tree) NewText(text string) NodeID {
	t.nodes = append(t.nodes, Node{
		Type:   TextNode,
		Text:   text,
		Parent: NoNode,
	})
	return NodeID(len(t.nodes) - 1)
}

// AppendChild attaches child as the last child of parent. A child that is
// already attached elsewhere is detached first so that no node is ever owned
// twice.
func (t *Tree) AppendChild(parent, child NodeID) {
	c := t.Node(child)
	p := t.Node(parent)
	if c == nil || p == nil || parent == child {
		return
	}
	if c.Parent != NoNode {
		t.removeChild(c.Parent, child)
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

func (t *Tree) removeChild(parent, child NodeID) {
	p := t.Node(parent)
	for i, c := range p.Children {
		if c == child {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}
	t.nodes[child].Parent = NoNode
}

// GetAttribute returns the value of an attribute on an element node.
func (t *Tree) GetAttribute(id NodeID, name string) (string, bool) {
	n := t.Node(id)
	if n == nil || n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// SetAttribute sets an attribute on an element node. It does not restyle;
// callers re-run the cascade afterwards.
func (t *Tree) SetAttribute(id NodeID, name, value string) {
	n := t.Node(id)
	if n == nil || n.Type != ElementNode {
		return
	}
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// Ancestors returns the strict ancestors of id, nearest first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Walk visits id and its descendants in document order. Returning false
// from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if t.Node(id) == nil {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.Walk(c, fn)
	}
}

// Find returns the first element with the given tag in document order.
func (t *Tree) Find(tag string) NodeID {
	found := NoNode
	t.Walk(t.Root, func(id NodeID) bool {
		if found != NoNode {
			return false
		}
		n := t.Node(id)
		if n.Type == ElementNode && n.TagName == tag {
			found = id
			return false
		}
		return true
	})
	return found
}

// Serialize returns the outer HTML of id.
func (t *Tree) Serialize(id NodeID) string {
	var sb strings.Builder
	t.serializeNode(&sb, id)
	return sb.String()
}

func (t *Tree) serializeNode(sb *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			if v := n.Attributes[k]; v != "" {
				sb.WriteString(`="`)
				sb.WriteString(escapeAttr(v))
				sb.WriteByte('"')
			}
		}
	}
	sb.WriteByte('>')
	if isSelfClosing(n.TagName) {
		return
	}
	for _, child := range n.Children {
		t.serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
