package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"l14lite/pkg/config"
	"l14lite/pkg/render"
	"l14lite/pkg/state"
)

// scrollStep is how far one arrow key press moves the page.
const scrollStep = 100

type viewer struct {
	mu     sync.Mutex
	pipe   *state.Pipeline
	scroll float64
	target *image.RGBA
	log    *zap.Logger

	win    fyne.Window
	img    *canvas.Image
	status *widget.Label
}

// load fetches and lays out url off the UI goroutine.
func (v *viewer) load(url string) {
	v.status.SetText("Loading " + url + "...")
	go func() {
		v.mu.Lock()
		err := v.pipe.Tab.Load(context.Background(), url)
		if err == nil {
			v.scroll = 0
		}
		title := v.pipe.Tab.Title()
		v.mu.Unlock()

		fyne.Do(func() {
			if err != nil {
				v.log.Warn("Load failed", zap.String("url", url), zap.Error(err))
				v.status.SetText("Error: " + err.Error())
				return
			}
			if title == "" {
				title = url
			}
			v.win.SetTitle("louis14 - " + title)
			v.status.SetText(url)
			v.redraw()
		})
	}()
}

// scrollBy moves the page by dy and redraws.
func (v *viewer) scrollBy(dy float64) {
	v.scrollWith(func(cur float64) float64 { return cur + dy })
}

// scrollTo moves the page top to y and redraws.
func (v *viewer) scrollTo(y float64) {
	v.scrollWith(func(float64) float64 { return y })
}

// scrollWith computes the new offset from the current one under the lock
// and clamps it to the document. Scrolling is ignored while a page is
// loading.
func (v *viewer) scrollWith(next func(cur float64) float64) {
	if !v.mu.TryLock() {
		return
	}
	v.scroll = v.pipe.Tab.ClampScroll(next(v.scroll))
	v.mu.Unlock()
	v.redraw()
}

func (v *viewer) redraw() {
	v.mu.Lock()
	c := render.NewCanvasForImage(v.target, v.pipe.Fonts)
	c.SetScroll(v.scroll)
	c.Render(v.pipe.Tab.DisplayList())
	v.mu.Unlock()
	v.img.Refresh()
}

func (v *viewer) typedKey(ev *fyne.KeyEvent) {
	_, height := v.pipe.Tab.Viewport()
	switch ev.Name {
	case fyne.KeyDown:
		v.scrollBy(scrollStep)
	case fyne.KeyUp:
		v.scrollBy(-scrollStep)
	case fyne.KeyPageDown, fyne.KeySpace:
		v.scrollBy(height)
	case fyne.KeyPageUp:
		v.scrollBy(-height)
	case fyne.KeyHome:
		v.scrollTo(0)
	}
}

func main() {
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))

	var err error
	if env.Cfg, err = config.LoadConfiguration(os.Getenv("L14_CONFIG")); err != nil {
		fmt.Fprintf(os.Stderr, "unable to prepare configuration: %v\n", err)
		os.Exit(1)
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to prepare logs: %v\n", err)
		os.Exit(1)
	}
	defer env.RestoreStdLog()

	pipe, err := env.NewPipeline()
	if err != nil {
		env.Log.Error("Unable to start", zap.Error(err))
		return
	}

	width, height := env.Cfg.Viewport.Width, env.Cfg.Viewport.Height
	a := app.New()
	w := a.NewWindow("louis14")

	v := &viewer{
		pipe:   pipe,
		target: image.NewRGBA(image.Rect(0, 0, width, height)),
		log:    env.Log.Named("viewer"),
		win:    w,
		status: widget.NewLabel("Enter a URL and press Enter"),
	}
	v.img = canvas.NewImageFromImage(v.target)
	v.img.FillMode = canvas.ImageFillOriginal
	v.redraw()

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com")
	urlEntry.OnSubmitted = func(url string) {
		if src, err := sourceURL(url); err == nil {
			v.load(src)
		}
	}
	up := widget.NewButton("Up", func() { v.scrollBy(-scrollStep) })
	down := widget.NewButton("Down", func() { v.scrollBy(scrollStep) })

	topBar := container.NewBorder(nil, nil, nil, container.NewHBox(up, down), urlEntry)
	w.SetContent(container.NewBorder(topBar, v.status, nil, nil, v.img))
	w.Canvas().SetOnTypedKey(v.typedKey)
	w.Resize(fyne.NewSize(float32(width), float32(height)+80))

	if len(os.Args) > 1 {
		urlEntry.SetText(os.Args[1])
		urlEntry.OnSubmitted(os.Args[1])
	}
	w.ShowAndRun()
}
