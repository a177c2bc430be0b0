package css

import (
	"image/color"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"golang.org/x/image/colornames"
)

// Length is a number with an optional unit ("px", "%", "em", ...).
type Length struct {
	Value float64
	Unit  string
}

// ParseLength parses values like "12px", "50%" or "1.5em". The whole value
// must be consumed.
func ParseLength(val string) (Length, bool) {
	b := []byte(strings.TrimSpace(val))
	num, unit := parse.Dimension(b)
	if num == 0 || num+unit != len(b) {
		return Length{}, false
	}
	f, err := strconv.ParseFloat(string(b[:num]), 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: strings.ToLower(string(b[num:]))}, true
}

// ParsePixels parses an absolute pixel length such as "16px".
func ParsePixels(val string) (float64, bool) {
	l, ok := ParseLength(val)
	if !ok || l.Unit != "px" {
		return 0, false
	}
	return l.Value, true
}

// FormatPixels renders a pixel value in the canonical "NNpx" form.
func FormatPixels(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

// ParseColor parses hex (#rgb, #rrggbb, #rrggbbaa), "transparent" and the
// CSS named colors.
func ParseColor(val string) (color.RGBA, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "transparent" {
		return color.RGBA{}, true
	}
	if strings.HasPrefix(val, "#") {
		return parseHexColor(val[1:])
	}
	c, ok := colornames.Map[val]
	return c, ok
}

func parseHexColor(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// IsTransparent reports whether a color value paints nothing. Unparsable
// values are treated as transparent.
func IsTransparent(val string) bool {
	c, ok := ParseColor(val)
	return !ok || c.A == 0
}
