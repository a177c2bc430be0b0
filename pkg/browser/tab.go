package browser

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"l14lite/pkg/css"
	"l14lite/pkg/html"
	"l14lite/pkg/layout"
	"l14lite/pkg/paint"
	"l14lite/pkg/resource"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultFetchLimit = 4
)

// Tab holds one loaded page and runs the style, layout and paint pipeline
// over it. A Tab is not safe for concurrent use.
type Tab struct {
	fetcher    resource.Fetcher
	engine     *layout.Engine
	parser     *css.Parser
	width      float64
	height     float64
	fetchLimit int
	log        *zap.Logger

	url         string
	tree        *html.Tree
	rules       []css.Rule
	styleErrs   error
	document    *layout.Box
	displayList []paint.Command
}

type Option func(*Tab)

// WithViewport sets the viewport size in pixels.
func WithViewport(width, height float64) Option {
	return func(t *Tab) {
		t.width = width
		t.height = height
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(t *Tab) {
		if log != nil {
			t.log = log
		}
	}
}

// WithFetchLimit bounds how many linked stylesheets are fetched at once.
func WithFetchLimit(n int) Option {
	return func(t *Tab) {
		if n > 0 {
			t.fetchLimit = n
		}
	}
}

func NewTab(fetcher resource.Fetcher, engine *layout.Engine, opts ...Option) *Tab {
	t := &Tab{
		fetcher:    fetcher,
		engine:     engine,
		width:      DefaultWidth,
		height:     DefaultHeight,
		fetchLimit: DefaultFetchLimit,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.Named("tab")
	t.parser = css.NewParser(t.log)
	return t
}

// Load fetches url and renders it.
func (t *Tab) Load(ctx context.Context, url string) error {
	resp, err := t.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}
	return t.LoadHTML(ctx, resp.Body, url)
}

// LoadHTML renders body as if it was fetched from baseURL. Linked
// stylesheets that cannot be fetched are skipped; see StyleSheetErrors.
func (t *Tab) LoadHTML(ctx context.Context, body, baseURL string) error {
	tree := html.Parse(body)
	rules, errs := t.collectRules(ctx, tree, baseURL)
	if err := ctx.Err(); err != nil {
		return err
	}

	t.url = baseURL
	t.tree = tree
	t.rules = rules
	t.styleErrs = errs
	if err := t.Restyle(); err != nil {
		return err
	}
	t.log.Info("Loaded page",
		zap.String("url", baseURL),
		zap.Int("rules", len(rules)),
		zap.Int("commands", len(t.displayList)),
		zap.Float64("height", t.Height()))
	return nil
}

// collectRules returns the default rules followed by every page stylesheet
// in document order.
func (t *Tab) collectRules(ctx context.Context, tree *html.Tree, baseURL string) ([]css.Rule, error) {
	sources := tree.StyleSources()
	sheets := make([][]css.Rule, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(t.fetchLimit)
	for i, src := range sources {
		if !src.Linked() {
			sheets[i] = t.parser.Parse(src.Text, "<style>")
			continue
		}
		href := resource.ResolveURL(src.Href, baseURL)
		g.Go(func() error {
			text, err := resource.FetchStyleSheet(ctx, t.fetcher, href)
			if err != nil {
				t.log.Warn("Skipping stylesheet", zap.String("href", href), zap.Error(err))
				errs[i] = fmt.Errorf("stylesheet %s: %w", href, err)
				return nil
			}
			sheets[i] = t.parser.Parse(text, href)
			return nil
		})
	}
	_ = g.Wait()

	rules := append([]css.Rule(nil), css.DefaultStyleSheet()...)
	for _, sheet := range sheets {
		rules = append(rules, sheet...)
	}
	return rules, multierr.Combine(errs...)
}

// Restyle re-runs style resolution, layout and paint, picking up DOM edits.
func (t *Tab) Restyle() error {
	if t.tree == nil {
		return nil
	}
	if err := css.Resolve(t.tree, t.rules); err != nil {
		return fmt.Errorf("resolving styles: %w", err)
	}
	return t.relayout()
}

// Resize lays the page out again at a new viewport width.
func (t *Tab) Resize(width float64) error {
	t.width = width
	if t.tree == nil {
		return nil
	}
	return t.relayout()
}

func (t *Tab) relayout() error {
	doc, err := t.engine.Layout(t.tree, t.width)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	t.document = doc
	t.displayList = paint.DisplayList(doc)
	return nil
}

// SetAttribute changes an attribute and restyles the page.
func (t *Tab) SetAttribute(id html.NodeID, name, value string) error {
	if t.tree == nil || t.tree.Node(id) == nil {
		return fmt.Errorf("no node %d", id)
	}
	t.tree.SetAttribute(id, name, value)
	return t.Restyle()
}

// StyleSheetErrors reports the linked stylesheets skipped by the last load.
func (t *Tab) StyleSheetErrors() error {
	return t.styleErrs
}

func (t *Tab) DisplayList() []paint.Command {
	return t.displayList
}

// Height is the document height, zero before the first load.
func (t *Tab) Height() float64 {
	if t.document == nil {
		return 0
	}
	return t.document.Height
}

func (t *Tab) Document() *layout.Box {
	return t.document
}

func (t *Tab) Tree() *html.Tree {
	return t.tree
}

func (t *Tab) URL() string {
	return t.url
}

func (t *Tab) Title() string {
	if t.tree == nil {
		return ""
	}
	return t.tree.Title()
}

// Viewport returns the viewport size.
func (t *Tab) Viewport() (float64, float64) {
	return t.width, t.height
}

// ClampScroll limits y to the scrollable range [0, height-viewportHeight].
func (t *Tab) ClampScroll(y float64) float64 {
	limit := max(t.Height()-t.height, 0)
	return min(max(y, 0), limit)
}
