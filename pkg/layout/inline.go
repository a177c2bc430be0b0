package layout

import (
	"strings"

	"l14lite/pkg/html"
	"l14lite/pkg/text"
)

const (
	softHyphen = "\u00ad"
	lineFactor = 1.25
)

type placedWord struct {
	node  html.NodeID
	text  string
	x     float64
	width float64
	key   text.FontKey
	face  text.Face
	color string
}

// lineBuilder flows the inline content of one block into line boxes. Each
// block gets its own builder, so nothing carries over between siblings.
type lineBuilder struct {
	e     *Engine
	tree  *html.Tree
	block *Box

	cursorX float64
	cursorY float64
	words   []placedWord

	strut    text.Metrics
	hasStrut bool
}

func newLineBuilder(e *Engine, tree *html.Tree, block *Box) *lineBuilder {
	return &lineBuilder{
		e:       e,
		tree:    tree,
		block:   block,
		cursorY: block.Y,
	}
}

func (lb *lineBuilder) layout(id html.NodeID) {
	n := lb.tree.Node(id)
	switch {
	case n.Type == html.TextNode:
		for _, w := range html.Words(n.Text) {
			lb.word(id, w, n.Style)
		}
	case hidden(n):
	case n.TagName == "br":
		lb.lineBreak(n.Style)
	default:
		for _, c := range n.Children {
			lb.layout(c)
		}
	}
}

// word places one word, breaking the line first when it does not fit.
func (lb *lineBuilder) word(id html.NodeID, word string, style map[string]string) {
	key := FontFor(style)
	face := lb.e.fonts.Font(key)
	color := style["color"]

	for {
		display := strings.ReplaceAll(word, softHyphen, "")
		w := face.Measure(display)
		if lb.cursorX+w <= lb.block.Width {
			lb.place(id, display, w, key, face, color)
			return
		}
		if head, tail, ok := lb.hyphenate(word, face); ok {
			lb.place(id, head, face.Measure(head), key, face, color)
			lb.flush()
			word = tail
			continue
		}
		if lb.cursorX == 0 {
			// too wide for an empty line, let it overflow
			lb.place(id, display, w, key, face, color)
			return
		}
		lb.flush()
	}
}

// hyphenate splits word at the last soft hyphen whose prefix plus "-" fits
// on the current line.
func (lb *lineBuilder) hyphenate(word string, face text.Face) (string, string, bool) {
	for i := strings.LastIndex(word, softHyphen); i > 0; i = strings.LastIndex(word[:i], softHyphen) {
		tail := word[i+len(softHyphen):]
		if tail == "" {
			continue
		}
		head := strings.ReplaceAll(word[:i], softHyphen, "") + "-"
		if lb.cursorX+face.Measure(head) <= lb.block.Width {
			return head, tail, true
		}
	}
	return "", "", false
}

func (lb *lineBuilder) place(id html.NodeID, word string, w float64, key text.FontKey, face text.Face, color string) {
	lb.words = append(lb.words, placedWord{
		node:  id,
		text:  word,
		x:     lb.cursorX,
		width: w,
		key:   key,
		face:  face,
		color: color,
	})
	lb.cursorX += w + face.Measure(" ")
}

// lineBreak ends the current line. The strut keeps an empty line as tall as
// the break's font.
func (lb *lineBuilder) lineBreak(style map[string]string) {
	m := lb.e.fonts.Font(FontFor(style)).Metrics()
	lb.strut.Ascent = max(lb.strut.Ascent, m.Ascent)
	lb.strut.Descent = max(lb.strut.Descent, m.Descent)
	lb.hasStrut = true
	lb.flush()
}

// flush turns the pending words into a line box and advances the cursor.
func (lb *lineBuilder) flush() {
	if len(lb.words) == 0 && !lb.hasStrut {
		lb.cursorX = 0
		return
	}

	maxAscent, maxDescent := lb.strut.Ascent, lb.strut.Descent
	for _, w := range lb.words {
		m := w.face.Metrics()
		maxAscent = max(maxAscent, m.Ascent)
		maxDescent = max(maxDescent, m.Descent)
	}

	line := &Box{
		Kind:   LineBox,
		Node:   lb.block.Node,
		X:      lb.block.X,
		Y:      lb.cursorY,
		Width:  lb.block.Width,
		Height: lineFactor * (maxAscent + maxDescent),
	}
	baseline := line.Y + lineFactor*maxAscent
	for _, w := range lb.words {
		m := w.face.Metrics()
		line.appendChild(&Box{
			Kind:   TextBox,
			Node:   w.node,
			X:      line.X + w.x,
			Y:      baseline - m.Ascent,
			Width:  w.width,
			Height: m.Linespace,
			Text:   w.text,
			Font:   w.key,
			Color:  w.color,
		})
	}
	lb.block.appendChild(line)

	lb.cursorY += line.Height
	lb.cursorX = 0
	lb.words = nil
	lb.strut = text.Metrics{}
	lb.hasStrut = false
}
