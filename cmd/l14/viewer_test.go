package main

import (
	"context"
	"image"
	"strings"
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap/zaptest"

	"l14lite/pkg/config"
	"l14lite/pkg/state"
)

func newTestViewer(t *testing.T, body string) *viewer {
	t.Helper()
	test.NewTempApp(t)

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	pipe, err := env.NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if err := pipe.Tab.LoadHTML(context.Background(), body, "file:///test.html"); err != nil {
		t.Fatalf("LoadHTML() error = %v", err)
	}

	target := image.NewRGBA(image.Rect(0, 0, cfg.Viewport.Width, cfg.Viewport.Height))
	return &viewer{
		pipe:   pipe,
		target: target,
		log:    zaptest.NewLogger(t),
		img:    canvas.NewImageFromImage(target),
		status: widget.NewLabel(""),
	}
}

func TestViewer_Scroll(t *testing.T) {
	v := newTestViewer(t, strings.Repeat("<p>line</p>", 200))

	v.scrollBy(250)
	if v.scroll != 250 {
		t.Fatalf("scroll = %v, want 250", v.scroll)
	}
	v.scrollBy(-1000)
	if v.scroll != 0 {
		t.Errorf("scroll = %v, want clamped to 0", v.scroll)
	}

	v.scrollTo(1e9)
	if want := v.pipe.Tab.ClampScroll(1e9); v.scroll != want {
		t.Errorf("scroll = %v, want clamped to %v", v.scroll, want)
	}
	v.scrollTo(0)
	if v.scroll != 0 {
		t.Errorf("scrollTo(0) left scroll at %v", v.scroll)
	}
}

func TestViewer_ScrollIgnoredWhileLoading(t *testing.T) {
	v := newTestViewer(t, strings.Repeat("<p>line</p>", 200))

	v.mu.Lock()
	v.scrollTo(300)
	v.mu.Unlock()
	if v.scroll != 0 {
		t.Errorf("scroll changed to %v while the page was locked", v.scroll)
	}
}
