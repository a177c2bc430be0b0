package layout

import (
	"errors"

	"go.uber.org/zap"

	"l14lite/pkg/html"
	"l14lite/pkg/text"
)

// Default page margins.
const (
	HStep = 13
	VStep = 18
)

// ErrNotStyled is returned when Layout runs before style resolution.
var ErrNotStyled = errors.New("layout: tree has no resolved style")

// Engine turns a styled tree into geometry. It owns the font cache used
// for measuring, so faces live as long as the engine.
type Engine struct {
	fonts *text.Cache
	hstep float64
	vstep float64
	log   *zap.Logger
}

type Option func(*Engine)

// WithMargins overrides the horizontal and vertical page margins.
func WithMargins(h, v float64) Option {
	return func(e *Engine) {
		e.hstep = h
		e.vstep = v
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func NewEngine(metrics text.FontMetrics, opts ...Option) *Engine {
	e := &Engine{
		fonts: text.NewCache(metrics),
		hstep: HStep,
		vstep: VStep,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("layout")
	return e
}

// Layout builds a fresh geometry tree for tree at the given viewport width.
// The same styled tree and width always give the same geometry.
func (e *Engine) Layout(tree *html.Tree, viewportWidth float64) (*Box, error) {
	if tree == nil {
		return nil, ErrNotStyled
	}
	root := tree.Node(tree.Root)
	if root == nil || root.Style == nil {
		return nil, ErrNotStyled
	}

	doc := &Box{Kind: DocumentBox, Node: tree.Root, Width: viewportWidth}
	child := &Box{
		Kind:  BlockBox,
		Node:  tree.Root,
		Tag:   root.TagName,
		X:     e.hstep,
		Y:     e.vstep,
		Width: max(viewportWidth-2*e.hstep, 0),
	}
	doc.appendChild(child)
	e.layoutBlock(tree, child)
	doc.Height = child.Height + 2*e.vstep

	e.log.Debug("Layout complete",
		zap.Float64("width", viewportWidth),
		zap.Float64("height", doc.Height),
		zap.Int("fonts", e.fonts.Len()))
	return doc, nil
}
