package html

import "strings"

// StyleSource is one stylesheet referenced by the document, either inline
// text from a <style> element or the href of a <link rel="stylesheet">.
type StyleSource struct {
	Node NodeID
	Href string // empty for inline sources
	Text string
}

func (s StyleSource) Linked() bool {
	return s.Href != ""
}

// StyleSources returns every stylesheet source in document order.
func (t *Tree) StyleSources() []StyleSource {
	var out []StyleSource
	t.Walk(t.Root, func(id NodeID) bool {
		n := t.Node(id)
		if n.Type != ElementNode {
			return true
		}
		switch n.TagName {
		case "style":
			out = append(out, StyleSource{Node: id, Text: t.TextContent(id)})
			return false
		case "link":
			if rel, _ := t.GetAttribute(id, "rel"); hasToken(rel, "stylesheet") {
				href, _ := t.GetAttribute(id, "href")
				if href = strings.TrimSpace(href); href != "" {
					out = append(out, StyleSource{Node: id, Href: href})
				}
			}
		}
		return true
	})
	return out
}

// Title returns the text of the first <title> element.
func (t *Tree) Title() string {
	id := t.Find("title")
	if id == NoNode {
		return ""
	}
	return strings.Join(strings.Fields(t.TextContent(id)), " ")
}

// TextContent concatenates the text of all descendants of id.
func (t *Tree) TextContent(id NodeID) string {
	var sb strings.Builder
	t.Walk(id, func(c NodeID) bool {
		if n := t.Node(c); n.Type == TextNode {
			sb.WriteString(n.Text)
		}
		return true
	})
	return sb.String()
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}

// asciiSpace is the HTML whitespace set. U+00A0 is not part of it.
const asciiSpace = " \t\n\r\f"

// IsASCIISpace reports whether s holds only HTML whitespace.
func IsASCIISpace(s string) bool {
	return strings.Trim(s, asciiSpace) == ""
}

// Words splits text on HTML whitespace, keeping non-breaking spaces
// inside words.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < 0x80 && strings.ContainsRune(asciiSpace, r)
	})
}
