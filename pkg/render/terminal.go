package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"
)

// Draw paints the bitmap onto area using upper half blocks: each cell shows
// two pixel rows, the top one as foreground and the bottom one as
// background. The bitmap is resampled when it does not match 1 column by 2
// rows per cell.
func (b *Bitmap) Draw(scr uv.Screen, area uv.Rectangle) {
	cols, rows := area.Dx(), area.Dy()
	if cols <= 0 || rows <= 0 || b.Width == 0 || b.Height == 0 {
		return
	}

	src := b
	if b.Width != cols || b.Height != rows*2 {
		src = b.Resample(cols, rows*2)
	}

	for row := range rows {
		topY := row * 2
		for col := range cols {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: src.GetPixel(col, topY),
					Bg: src.GetPixel(col, topY+1),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}

// Resample returns a bilinear resized copy of the bitmap.
func (b *Bitmap) Resample(width, height int) *Bitmap {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), b.ToImage(), image.Rect(0, 0, b.Width, b.Height), draw.Src, nil)
	return BitmapFromImage(dst)
}

// Common colours for overlays.
var (
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorRed    = color.RGBA{255, 0, 0, 255}
	ColorGreen  = color.RGBA{0, 255, 0, 255}
	ColorBlue   = color.RGBA{0, 0, 255, 255}
	ColorYellow = color.RGBA{255, 255, 0, 255}
)
