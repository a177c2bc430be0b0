package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference found
	Diff            *image.RGBA
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still
	// counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this
	// distance, absorbing small glyph shifts.
	FuzzyRadius int

	// MaxDifferentPercent passes the comparison when at most this share of
	// pixels differ.
	MaxDifferentPercent float64

	// WithDiff asks for a diff image: differences in red over a gray copy
	// of the actual image.
	WithDiff bool
}

// DefaultCompareOptions tolerates antialiasing noise only.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// Compare compares two rendered images pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if eb := expected.Bounds(); eb.Size() != bounds.Size() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds.Size(), eb.Size())
	}
	offset := expected.Bounds().Min.Sub(bounds.Min)

	result := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.WithDiff {
		result.Diff = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			diff := channelDiff(a, expected.At(x+offset.X, y+offset.Y))
			result.MaxDifference = max(result.MaxDifference, diff)

			same := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(a, expected, x+offset.X, y+offset.Y, opts))
			if !same {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				dx, dy := x-bounds.Min.X, y-bounds.Min.Y
				if same {
					g := color.GrayModel.Convert(a).(color.Gray).Y
					result.Diff.Set(dx, dy, color.RGBA{g, g, g, 255})
				} else {
					result.Diff.Set(dx, dy, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}
	return result, nil
}

// CompareWithFile compares img against a PNG reference on disk.
func CompareWithFile(img image.Image, path string, opts CompareOptions) (*CompareResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference image: %w", err)
	}
	defer f.Close()

	expected, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reference image: %w", err)
	}
	return Compare(img, expected, opts)
}

func fuzzyMatch(a color.Color, expected image.Image, x, y int, opts CompareOptions) bool {
	bounds := expected.Bounds()
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, expected.At(p.X, p.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// channelDiff is the largest 8-bit channel difference between a and b.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar>>8, br>>8),
		absDiff(ag>>8, bg>>8),
		absDiff(ab>>8, bb>>8),
		absDiff(aa>>8, ba>>8),
	)
}

func absDiff(a, b uint32) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
