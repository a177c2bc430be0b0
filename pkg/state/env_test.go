package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"l14lite/pkg/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
}

func TestEnvFromContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	// no logger, both are no-ops
	env.RedirectStdLog()
	env.RestoreStdLog()

	env.Log = zaptest.NewLogger(t)
	env.RedirectStdLog()
	if env.restoreStdLog == nil {
		t.Fatal("RedirectStdLog() did not install restore function")
	}
	env.RestoreStdLog()
}

func TestNewPipelineNeedsConfig(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if _, err := env.NewPipeline(); err == nil {
		t.Error("NewPipeline() without configuration should fail")
	}
}

func TestNewPipeline(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)

	p, err := env.NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	w, h := p.Tab.Viewport()
	if w != float64(cfg.Viewport.Width) || h != float64(cfg.Viewport.Height) {
		t.Errorf("Viewport() = %vx%v, want %dx%d", w, h, cfg.Viewport.Width, cfg.Viewport.Height)
	}

	if err := p.Tab.LoadHTML(context.Background(), "<p>hello world</p>", "about:blank"); err != nil {
		t.Fatalf("LoadHTML() error = %v", err)
	}
	if len(p.Tab.DisplayList()) != 2 {
		t.Errorf("DisplayList() has %d commands, want 2", len(p.Tab.DisplayList()))
	}
}
