package html

import "golang.org/x/net/html/atom"

// Tag sets are keyed by atom so lookups avoid string hashing of the
// (already lower-cased) tag name.

var selfClosingTags = atomSet(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track,
	atom.Wbr,
)

var headTags = atomSet(
	atom.Base, atom.Basefont, atom.Bgsound, atom.Noscript, atom.Link,
	atom.Meta, atom.Title, atom.Style, atom.Script,
)

var blockElements = atomSet(
	atom.Html, atom.Body, atom.Article, atom.Section, atom.Nav, atom.Aside,
	atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Hgroup,
	atom.Header, atom.Footer, atom.Address, atom.P, atom.Hr, atom.Pre,
	atom.Blockquote, atom.Ol, atom.Ul, atom.Menu, atom.Li, atom.Dl, atom.Dt,
	atom.Dd, atom.Figure, atom.Figcaption, atom.Main, atom.Div, atom.Table,
	atom.Form, atom.Fieldset, atom.Legend, atom.Details, atom.Summary,
)

// rawTextTags hold content that is not scanned for markup.
var rawTextTags = atomSet(atom.Script, atom.Style)

func atomSet(atoms ...atom.Atom) map[atom.Atom]bool {
	m := make(map[atom.Atom]bool, len(atoms))
	for _, a := range atoms {
		m[a] = true
	}
	return m
}

func lookup(tag string) atom.Atom {
	return atom.Lookup([]byte(tag))
}

func isSelfClosing(tag string) bool {
	return selfClosingTags[lookup(tag)]
}

func isHeadTag(tag string) bool {
	return headTags[lookup(tag)]
}

func isRawText(tag string) bool {
	return rawTextTags[lookup(tag)]
}

// IsBlockElement reports whether tag belongs to the fixed set of elements
// that force block layout on their parent.
func IsBlockElement(tag string) bool {
	return blockElements[lookup(tag)]
}
