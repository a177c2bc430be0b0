package text

import "unicode/utf8"

// Fixed is a deterministic FontMetrics: every rune advances Advance×size
// pixels. Used for headless runs and tests.
type Fixed struct {
	Advance float64 // em fraction per rune, 0.5 when zero
}

func (f Fixed) Font(key FontKey) Face {
	adv := f.Advance
	if adv == 0 {
		adv = 0.5
	}
	return fixedFace{size: key.Size, advance: adv}
}

type fixedFace struct {
	size    float64
	advance float64
}

func (f fixedFace) Measure(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.advance * f.size
}

func (f fixedFace) Metrics() Metrics {
	return Metrics{
		Ascent:    0.8 * f.size,
		Descent:   0.2 * f.size,
		Linespace: f.size,
	}
}
