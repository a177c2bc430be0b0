package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"l14lite/pkg/paint"
	"l14lite/pkg/text"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestCompare_Identical(t *testing.T) {
	a := solid(10, 10, color.RGBA{10, 20, 30, 255})
	res, err := Compare(a, solid(10, 10, color.RGBA{11, 20, 30, 255}), DefaultCompareOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Match || res.DifferentPixels != 0 || res.MaxDifference != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.TotalPixels != 100 {
		t.Errorf("TotalPixels = %d, want 100", res.TotalPixels)
	}
}

func TestCompare_Differences(t *testing.T) {
	a := solid(10, 10, color.RGBA{255, 255, 255, 255})
	b := solid(10, 10, color.RGBA{255, 255, 255, 255})
	b.Set(3, 3, color.RGBA{0, 0, 0, 255})

	res, err := Compare(a, b, CompareOptions{WithDiff: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Match || res.DifferentPixels != 1 {
		t.Errorf("expected exactly one different pixel, got %+v", res)
	}
	if got := res.Diff.RGBAAt(3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("diff pixel = %v, want red", got)
	}

	res, _ = Compare(a, b, CompareOptions{MaxDifferentPercent: 1})
	if !res.Match {
		t.Error("one pixel in a hundred should be within 1%")
	}
}

func TestCompare_Fuzzy(t *testing.T) {
	a := solid(10, 10, color.RGBA{255, 255, 255, 255})
	b := solid(10, 10, color.RGBA{255, 255, 255, 255})
	a.Set(4, 4, color.RGBA{0, 0, 0, 255})
	b.Set(5, 4, color.RGBA{0, 0, 0, 255})

	if res, _ := Compare(a, b, CompareOptions{}); res.Match {
		t.Error("shifted pixel should not match exactly")
	}
	if res, _ := Compare(a, b, CompareOptions{FuzzyRadius: 1}); !res.Match {
		t.Errorf("shifted pixel should match with radius 1: %+v", res)
	}
}

func TestCompare_SizeMismatch(t *testing.T) {
	if _, err := Compare(solid(2, 2, color.RGBA{}), solid(3, 2, color.RGBA{}), CompareOptions{}); err == nil {
		t.Error("expected error for different sizes")
	}
}

// A scrolled viewport must show the same pixels as the matching slice of
// the whole page.
func TestCompare_ScrollMatchesFullPage(t *testing.T) {
	fonts, err := text.NewTrueType(text.FontConfig{})
	if err != nil {
		t.Fatal(err)
	}
	cmds := []paint.Command{
		paint.DrawRect{X1: 0, Y1: 40, X2: 60, Y2: 120, Color: "navy"},
		paint.DrawText{X: 5, Y: 90, Text: "Go", Font: text.FontKey{Size: 16, Weight: "normal", Style: "normal"}, Color: "white", Right: 30, Bottom: 110},
	}

	full := NewCanvas(60, 200, fonts)
	full.Render(cmds)
	view := NewCanvas(60, 100, fonts)
	view.SetScroll(50)
	view.Render(cmds)

	slice := full.Image().(*image.RGBA).SubImage(image.Rect(0, 50, 60, 150))
	res, err := Compare(view.Image(), slice, DefaultCompareOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Match {
		t.Errorf("scrolled render differs from page slice: %+v", res)
	}
}

func TestCompareWithFile(t *testing.T) {
	img := solid(4, 4, color.RGBA{1, 2, 3, 255})
	path := filepath.Join(t.TempDir(), "ref.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	res, err := CompareWithFile(img, path, CompareOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Match {
		t.Errorf("image should match its own PNG: %+v", res)
	}
	if _, err := CompareWithFile(img, filepath.Join(t.TempDir(), "missing.png"), CompareOptions{}); err == nil {
		t.Error("expected error for missing reference")
	}
}
