package state

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"l14lite/pkg/browser"
	"l14lite/pkg/layout"
	"l14lite/pkg/resource"
	"l14lite/pkg/text"
)

// Pipeline is a tab together with the fonts its layout engine measures
// with, so that callers can rasterize with the same faces.
type Pipeline struct {
	Tab   *browser.Tab
	Fonts *text.TrueType
}

// NewPipeline builds fetcher, fonts, layout engine and tab from the
// loaded configuration.
func (e *LocalEnv) NewPipeline() (*Pipeline, error) {
	if e.Cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	fonts, err := text.NewTrueType(e.Cfg.Fonts.FontConfig())
	if err != nil {
		return nil, fmt.Errorf("unable to load fonts: %w", err)
	}
	fetcher := resource.NewFetcher(
		resource.WithTimeout(e.Cfg.Fetch.Timeout),
		resource.WithUserAgent(e.Cfg.Fetch.UserAgent),
		resource.WithMaxRedirects(e.Cfg.Fetch.MaxRedirects),
		resource.WithLogger(log),
	)
	engine := layout.NewEngine(fonts,
		layout.WithMargins(e.Cfg.Layout.HStep, e.Cfg.Layout.VStep),
		layout.WithLogger(log),
	)
	tab := browser.NewTab(fetcher, engine,
		browser.WithViewport(float64(e.Cfg.Viewport.Width), float64(e.Cfg.Viewport.Height)),
		browser.WithFetchLimit(e.Cfg.Fetch.Parallel),
		browser.WithLogger(log),
	)
	return &Pipeline{Tab: tab, Fonts: fonts}, nil
}
