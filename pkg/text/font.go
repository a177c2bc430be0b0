package text

import "fmt"

// FontKey identifies a font by pixel size, weight ("normal", "bold") and
// style ("normal", "italic").
type FontKey struct {
	Size   float64
	Weight string
	Style  string
}

func (k FontKey) Bold() bool {
	return k.Weight == "bold"
}

func (k FontKey) Italic() bool {
	return k.Style == "italic"
}

func (k FontKey) String() string {
	return fmt.Sprintf("%gpx/%s/%s", k.Size, k.Weight, k.Style)
}

// Metrics are the vertical measurements of a face in pixels.
type Metrics struct {
	Ascent    float64
	Descent   float64
	Linespace float64
}

// Face measures text set in one font.
type Face interface {
	Measure(s string) float64
	Metrics() Metrics
}

// FontMetrics hands out faces by key. Implementations may be slow to
// construct a face; wrap them in a Cache.
type FontMetrics interface {
	Font(key FontKey) Face
}
