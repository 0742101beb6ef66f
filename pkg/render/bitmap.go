package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

// Bitmap is a row-major pixel buffer, 4 bytes per pixel in A, B, G, R order.
// Alpha is always 0xFF.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// NewBitmap creates a bitmap cleared to opaque black.
func NewBitmap(width, height int) *Bitmap {
	b := &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
	b.Clear(color.RGBA{A: 255})
	return b
}

// Clear fills the bitmap with a solid color.
func (b *Bitmap) Clear(c color.RGBA) {
	if len(b.Pix) == 0 {
		return
	}
	b.Pix[0], b.Pix[1], b.Pix[2], b.Pix[3] = 0xFF, c.B, c.G, c.R
	for filled := 4; filled < len(b.Pix); filled *= 2 {
		copy(b.Pix[filled:], b.Pix[:filled])
	}
}

func (b *Bitmap) setRGB(i int, r, g, bl uint8) {
	o := i * 4
	b.Pix[o] = 0xFF
	b.Pix[o+1] = bl
	b.Pix[o+2] = g
	b.Pix[o+3] = r
}

func (b *Bitmap) rgb(i int) color.RGBA {
	o := i * 4
	return color.RGBA{R: b.Pix[o+3], G: b.Pix[o+2], B: b.Pix[o+1], A: 0xFF}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (b *Bitmap) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.setRGB(y*b.Width+x, c.R, c.G, c.B)
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (b *Bitmap) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return color.RGBA{}
	}
	return b.rgb(y*b.Width + x)
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (b *Bitmap) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		b.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the bitmap to a standard Go image.RGBA.
func (b *Bitmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i := range b.Width * b.Height {
		o := i * 4
		img.Pix[o] = b.Pix[o+3]
		img.Pix[o+1] = b.Pix[o+2]
		img.Pix[o+2] = b.Pix[o+1]
		img.Pix[o+3] = 0xFF
	}
	return img
}

// BitmapFromImage copies any image into a new bitmap, dropping alpha.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := NewBitmap(bounds.Dx(), bounds.Dy())
	for y := range b.Height {
		for x := range b.Width {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			b.setRGB(y*b.Width+x, c.R, c.G, c.B)
		}
	}
	return b
}

// Encode writes the bitmap in the named format: "png", "webp" or "bmp".
func (b *Bitmap) Encode(w io.Writer, format string) error {
	img := b.ToImage()
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the bitmap to path, choosing the format from the extension.
func (b *Bitmap) Save(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := b.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
