package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"l14lite/pkg/css"
	"l14lite/pkg/paint"
	"l14lite/pkg/text"
)

// Canvas rasterizes display lists with gg.
type Canvas struct {
	context *gg.Context
	fonts   *text.TrueType
	scrollY float64
}

func NewCanvas(width, height int, fonts *text.TrueType) *Canvas {
	return &Canvas{context: gg.NewContext(width, height), fonts: fonts}
}

// NewCanvasForImage draws directly into target.
func NewCanvasForImage(target *image.RGBA, fonts *text.TrueType) *Canvas {
	return &Canvas{context: gg.NewContextForRGBA(target), fonts: fonts}
}

// SetScroll sets the page offset of the top edge of the canvas.
func (c *Canvas) SetScroll(y float64) {
	c.scrollY = y
}

// Render clears the canvas to white and draws the visible commands.
func (c *Canvas) Render(cmds []paint.Command) {
	c.context.SetRGB(1, 1, 1)
	c.context.Clear()

	height := float64(c.context.Height())
	for _, cmd := range cmds {
		if !paint.Visible(cmd, c.scrollY, height) {
			continue
		}
		switch cmd := cmd.(type) {
		case paint.DrawRect:
			c.drawRect(cmd)
		case paint.DrawText:
			c.drawText(cmd)
		}
	}
}

func (c *Canvas) drawRect(cmd paint.DrawRect) {
	col, ok := css.ParseColor(cmd.Color)
	if !ok || col.A == 0 {
		return
	}
	w, h := cmd.X2-cmd.X1, cmd.Y2-cmd.Y1
	if w <= 0 || h <= 0 {
		return
	}
	c.context.SetColor(col)
	c.context.DrawRectangle(cmd.X1, cmd.Y1-c.scrollY, w, h)
	c.context.Fill()
}

func (c *Canvas) drawText(cmd paint.DrawText) {
	col, ok := css.ParseColor(cmd.Color)
	if !ok {
		col = color.RGBA{A: 0xff}
	}
	face := c.fonts.FontFace(cmd.Font)
	c.context.SetFontFace(face)
	c.context.SetColor(col)

	// gg draws at the baseline, commands carry the top edge
	ascent := float64(face.Metrics().Ascent) / 64
	c.context.DrawString(cmd.Text, cmd.X, cmd.Y-c.scrollY+ascent)
}

func (c *Canvas) Image() image.Image {
	return c.context.Image()
}

func (c *Canvas) SavePNG(filename string) error {
	return c.context.SavePNG(filename)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.context.EncodePNG(w)
}
