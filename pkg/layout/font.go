package layout

import (
	"strconv"

	"l14lite/pkg/css"
	"l14lite/pkg/text"
)

const defaultFontSize = 16

// FontFor derives the font key from a resolved style.
func FontFor(style map[string]string) text.FontKey {
	size, ok := css.ParsePixels(style["font-size"])
	if !ok || size <= 0 {
		size = defaultFontSize
	}
	return text.FontKey{
		Size:   size,
		Weight: fontWeight(style["font-weight"]),
		Style:  fontStyle(style["font-style"]),
	}
}

func fontWeight(v string) string {
	switch v {
	case "bold", "bolder":
		return "bold"
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 600 {
		return "bold"
	}
	return "normal"
}

func fontStyle(v string) string {
	switch v {
	case "italic", "oblique":
		return "italic"
	}
	return "normal"
}
