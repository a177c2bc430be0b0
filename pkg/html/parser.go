package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// Parser builds a Tree from markup. It never fails: malformed input is
// repaired with implicit tags and stack rewriting.
type Parser struct {
	input      string
	tree       *Tree
	unfinished []NodeID // open-element stack
}

func NewParser(text string) *Parser {
	return &Parser{
		input: text,
		tree:  NewTree(),
	}
}

// Parse returns a tree rooted at an html element.
func Parse(text string) *Tree {
	return NewParser(text).Parse()
}

func (p *Parser) Parse() *Tree {
	var (
		buf   strings.Builder
		inTag bool
		quote byte
	)
	for i := 0; i < len(p.input); i++ {
		c := p.input[i]
		switch {
		case inTag && quote != 0:
			buf.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case inTag && (c == '"' || c == '\'') && opensQuote(buf.String()):
			quote = c
			buf.WriteByte(c)
		case c == '<' && !inTag:
			if buf.Len() > 0 {
				p.addText(buf.String())
			}
			buf.Reset()
			inTag = true
		case c == '>' && inTag:
			body := buf.String()
			if isOpenComment(body) {
				buf.WriteByte(c)
				continue
			}
			buf.Reset()
			inTag = false
			if name := p.addTag(body); name != "" && isRawText(name) {
				i = p.consumeRawText(name, i+1) - 1
			}
		default:
			buf.WriteByte(c)
		}
	}
	if !inTag && buf.Len() > 0 {
		p.addText(buf.String())
	}
	return p.finish()
}

// isOpenComment reports whether the tag body is a comment whose closing
// "--" has not been seen yet.
func isOpenComment(body string) bool {
	if !strings.HasPrefix(body, "!--") {
		return false
	}
	return len(body) < 5 || !strings.HasSuffix(body, "--")
}

// consumeRawText attaches everything from start up to the matching close tag
// as a single text child of the element just opened and returns the index
// where scanning should resume.
func (p *Parser) consumeRawText(name string, start int) int {
	rest := p.input[start:]
	end := indexCloseTag(rest, name)
	if end < 0 {
		end = len(rest)
	}
	if content := rest[:end]; strings.TrimSpace(content) != "" {
		text := p.tree.NewText(content)
		p.tree.AppendChild(p.top(), text)
	}
	return start + end
}

func (p *Parser) addText(text string) {
	// entities such as &nbsp; are content, so test the raw text
	if IsASCIISpace(text) {
		return
	}
	p.implicitTags("")
	node := p.tree.NewText(xhtml.UnescapeString(text))
	p.tree.AppendChild(p.top(), node)
}

// addTag handles one tag body and returns the tag name if an element was
// opened (pushed), otherwise "".
func (p *Parser) addTag(body string) string {
	tag, attrs := splitTagBody(body)
	switch {
	case tag == "" || strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "?"):
		return ""
	case strings.HasPrefix(tag, "/"):
		// never pop the root
		if len(p.unfinished) <= 1 {
			return ""
		}
		p.closeTop()
		return ""
	}

	p.implicitTags(tag)
	if isSelfClosing(tag) {
		node := p.tree.NewElement(tag, attrs)
		p.tree.AppendChild(p.top(), node)
		return ""
	}
	if tag == "p" {
		p.closeParagraph()
	}
	p.push(p.tree.NewElement(tag, attrs))
	return tag
}

// implicitTags synthesizes the html, head and body structure the incoming
// tag expects. tag is "" for text.
func (p *Parser) implicitTags(tag string) {
	for {
		open := p.openTags()
		switch {
		case len(open) == 0 && tag != "html":
			p.push(p.tree.NewElement("html", nil))
		case len(open) == 1 && open[0] == "html" &&
			tag != "head" && tag != "body" && tag != "/html":
			if isHeadTag(tag) {
				p.push(p.tree.NewElement("head", nil))
			} else {
				p.push(p.tree.NewElement("body", nil))
			}
		case len(open) == 2 && open[0] == "html" && open[1] == "head" &&
			tag != "/head" && !isHeadTag(tag):
			p.closeTop()
		default:
			return
		}
	}
}

// closeParagraph closes an open p together with everything opened inside it,
// then reopens the inner elements as fresh siblings following that p.
func (p *Parser) closeParagraph() {
	k := -1
	for i := len(p.unfinished) - 1; i >= 1; i-- {
		if p.tree.Node(p.unfinished[i]).TagName == "p" {
			k = i
			break
		}
	}
	if k < 1 {
		return
	}

	type reopen struct {
		tag   string
		attrs map[string]string
	}
	var again []reopen
	for _, id := range p.unfinished[k+1:] {
		n := p.tree.Node(id)
		if n.TagName == "p" {
			continue
		}
		again = append(again, reopen{tag: n.TagName, attrs: copyAttrs(n.Attributes)})
	}
	for len(p.unfinished) > k {
		p.closeTop()
	}
	for _, r := range again {
		p.push(p.tree.NewElement(r.tag, r.attrs))
	}
}

func (p *Parser) finish() *Tree {
	if len(p.unfinished) == 0 {
		p.tree.Root = p.tree.NewElement("html", nil)
		return p.tree
	}
	for len(p.unfinished) > 1 {
		p.closeTop()
	}
	p.tree.Root = p.pop()
	return p.tree
}

func (p *Parser) openTags() []string {
	tags := make([]string, len(p.unfinished))
	for i, id := range p.unfinished {
		tags[i] = p.tree.Node(id).TagName
	}
	return tags
}

func (p *Parser) top() NodeID {
	if len(p.unfinished) == 0 {
		return NoNode
	}
	return p.unfinished[len(p.unfinished)-1]
}

func (p *Parser) push(id NodeID) {
	p.unfinished = append(p.unfinished, id)
}

func (p *Parser) pop() NodeID {
	if len(p.unfinished) == 0 {
		return NoNode
	}
	id := p.unfinished[len(p.unfinished)-1]
	p.unfinished = p.unfinished[:len(p.unfinished)-1]
	return id
}

// closeTop pops the top element and appends it to its new parent.
func (p *Parser) closeTop() {
	node := p.pop()
	p.tree.AppendChild(p.top(), node)
}

func copyAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
