package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// DPI makes truetype point sizes equal to CSS pixels.
const DPI = 72

// FontConfig holds optional paths to TrueType files. Empty paths fall back
// to the bundled Go fonts.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// FontPath returns the configured path for the given style combination.
func (fc FontConfig) FontPath(bold, italic bool) string {
	switch {
	case bold && italic && fc.BoldItalic != "":
		return fc.BoldItalic
	case bold && fc.Bold != "":
		return fc.Bold
	case italic && fc.Italic != "":
		return fc.Italic
	}
	return fc.Regular
}

// TrueType measures text with real glyph outlines.
type TrueType struct {
	fonts [4]*truetype.Font // indexed by variant()

	mu    sync.Mutex
	faces map[FontKey]font.Face
}

// NewTrueType parses the configured fonts, using the Go fonts for variants
// without a path.
func NewTrueType(cfg FontConfig) (*TrueType, error) {
	builtin := [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}
	paths := [4]string{cfg.Regular, cfg.Bold, cfg.Italic, cfg.BoldItalic}

	tt := &TrueType{faces: make(map[FontKey]font.Face)}
	for i := range builtin {
		data := builtin[i]
		if paths[i] != "" {
			b, err := os.ReadFile(paths[i])
			if err != nil {
				return nil, fmt.Errorf("reading font: %w", err)
			}
			data = b
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font %q: %w", paths[i], err)
		}
		tt.fonts[i] = f
	}
	return tt, nil
}

func variant(key FontKey) int {
	v := 0
	if key.Bold() {
		v |= 1
	}
	if key.Italic() {
		v |= 2
	}
	return v
}

// FontFace returns the rasterizer face for key. The returned face is shared
// and must only be used from one goroutine at a time.
func (tt *TrueType) FontFace(key FontKey) font.Face {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if f, ok := tt.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(tt.fonts[variant(key)], &truetype.Options{
		Size:    key.Size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	tt.faces[key] = f
	return f
}

func (tt *TrueType) Font(key FontKey) Face {
	// measuring gets its own face so it never races with a rasterizer
	f := truetype.NewFace(tt.fonts[variant(key)], &truetype.Options{
		Size: key.Size,
		DPI:  DPI,
	})
	return &ttFace{face: f}
}

type ttFace struct {
	mu   sync.Mutex
	face font.Face
}

func (f *ttFace) Measure(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(font.MeasureString(f.face, s)) / 64
}

func (f *ttFace) Metrics() Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.face.Metrics()
	return Metrics{
		Ascent:    float64(m.Ascent) / 64,
		Descent:   float64(m.Descent) / 64,
		Linespace: float64(m.Height) / 64,
	}
}
