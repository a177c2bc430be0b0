package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"l14lite/pkg/config"
	"l14lite/pkg/layout"
	"l14lite/pkg/paint"
	"l14lite/pkg/render"
	"l14lite/pkg/state"
)

const (
	dumpDOM         = "dom"
	dumpBoxes       = "boxes"
	dumpDisplayList = "display-list"
)

// sourceURL turns a command line argument into a URL the fetcher
// understands. Anything without a scheme is a local file path.
func sourceURL(arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("no source specified")
	}
	if strings.Contains(arg, "://") || strings.HasPrefix(arg, "data:") {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("unable to resolve path '%s': %w", arg, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// loadPage builds a pipeline and loads the page named by the first
// argument. width overrides the configured viewport when positive.
func loadPage(ctx context.Context, cmd *cli.Command, width int) (*state.Pipeline, error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	src, err := sourceURL(cmd.Args().Get(0))
	if err != nil {
		return nil, err
	}
	if width > 0 {
		env.Cfg.Viewport.Width = width
	}

	p, err := env.NewPipeline()
	if err != nil {
		return nil, err
	}
	if err := p.Tab.Load(ctx, src); err != nil {
		return nil, err
	}
	for _, e := range multierr.Errors(p.Tab.StyleSheetErrors()) {
		env.Log.Warn("Stylesheet skipped", zap.Error(e))
	}
	return p, nil
}

func renderPage(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	p, err := loadPage(ctx, cmd, cmd.Int("width"))
	if err != nil {
		return err
	}
	w, h := p.Tab.Viewport()
	if cmd.Int("height") > 0 {
		h = float64(cmd.Int("height"))
	}
	scroll := p.Tab.ClampScroll(cmd.Float("scroll"))
	if cmd.Bool("full") {
		h, scroll = math.Max(p.Tab.Height(), 1), 0
	}

	canvas := render.NewCanvas(int(w), int(math.Ceil(h)), p.Fonts)
	canvas.SetScroll(scroll)
	canvas.Render(p.Tab.DisplayList())

	out := cmd.String("output")
	if err := canvas.SavePNG(out); err != nil {
		return fmt.Errorf("unable to save image '%s': %w", out, err)
	}
	env.Log.Info("Rendered page",
		zap.String("url", p.Tab.URL()),
		zap.String("title", p.Tab.Title()),
		zap.String("file", out),
		zap.Float64("width", w), zap.Float64("height", h), zap.Float64("scroll", scroll))

	if ref := cmd.String("expect"); ref != "" {
		return checkReference(env.Log, canvas, ref, cmd.Int("tolerance"), cmd.String("diff"))
	}
	return nil
}

// checkReference fails when the rendered image differs from the PNG at ref.
func checkReference(log *zap.Logger, canvas *render.Canvas, ref string, tolerance int, diffPath string) error {
	opts := render.DefaultCompareOptions()
	opts.Tolerance = tolerance
	opts.WithDiff = diffPath != ""

	res, err := render.CompareWithFile(canvas.Image(), ref, opts)
	if err != nil {
		return err
	}
	log.Info("Compared with reference", zap.String("file", ref), zap.Bool("match", res.Match),
		zap.Int("different", res.DifferentPixels), zap.Int("total", res.TotalPixels), zap.Int("max difference", res.MaxDifference))
	if res.Match {
		return nil
	}
	if res.Diff != nil {
		if err := savePNG(res.Diff, diffPath); err != nil {
			return fmt.Errorf("unable to save diff image '%s': %w", diffPath, err)
		}
	}
	return fmt.Errorf("image differs from '%s' in %d of %d pixels", ref, res.DifferentPixels, res.TotalPixels)
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dumpPage(ctx context.Context, cmd *cli.Command) error {
	what := cmd.String("what")
	switch what {
	case dumpDOM, dumpBoxes, dumpDisplayList:
	default:
		return fmt.Errorf("unknown dump kind '%s'", what)
	}

	p, err := loadPage(ctx, cmd, cmd.Int("width"))
	if err != nil {
		return err
	}
	return writeDump(os.Stdout, what, p)
}

func writeDump(w io.Writer, what string, p *state.Pipeline) error {
	var err error
	switch what {
	case dumpDOM:
		tree := p.Tab.Tree()
		_, err = fmt.Fprintln(w, tree.Serialize(tree.Root))
	case dumpBoxes:
		_, err = io.WriteString(w, layout.Dump(p.Tab.Document()))
	case dumpDisplayList:
		for _, c := range p.Tab.DisplayList() {
			if _, err = fmt.Fprintln(w, formatCommand(c)); err != nil {
				break
			}
		}
	}
	if err != nil {
		return fmt.Errorf("unable to write dump: %w", err)
	}
	return nil
}

func formatCommand(c paint.Command) string {
	switch c := c.(type) {
	case paint.DrawText:
		return fmt.Sprintf("DrawText(%g, %g) %q %s %s", c.X, c.Y, c.Text, c.Font, c.Color)
	case paint.DrawRect:
		return fmt.Sprintf("DrawRect(%g, %g, %g, %g) %s", c.X1, c.Y1, c.X2, c.Y2, c.Color)
	}
	return fmt.Sprintf("%T", c)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
		kind string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
