package css

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"16px", Length{16, "px"}, true},
		{" 12.5PX ", Length{12.5, "px"}, true},
		{"50%", Length{50, "%"}, true},
		{"2em", Length{2, "em"}, true},
		{"0", Length{0, ""}, true},
		{"px", Length{}, false},
		{"12px solid", Length{}, false},
		{"", Length{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLength(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePixels(t *testing.T) {
	px, ok := ParsePixels("16px")
	assert.True(t, ok)
	assert.Equal(t, 16.0, px)

	_, ok = ParsePixels("50%")
	assert.False(t, ok)
}

func TestFormatPixels(t *testing.T) {
	assert.Equal(t, "8px", FormatPixels(8))
	assert.Equal(t, "17.6px", FormatPixels(17.6))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{0xff, 0, 0, 0xff}, true},
		{"Blue", color.RGBA{0, 0, 0xff, 0xff}, true},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 0xff}, true},
		{"#10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}, true},
		{"transparent", color.RGBA{}, true},
		{"#12", color.RGBA{}, false},
		{"#zzz", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsTransparent(t *testing.T) {
	assert.True(t, IsTransparent("transparent"))
	assert.True(t, IsTransparent(""))
	assert.True(t, IsTransparent("#00000000"))
	assert.False(t, IsTransparent("gray"))
}
