package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/taigrr/scanline/pkg/math3d"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapClamp  WrapMode = iota // Clamp to edge
	WrapRepeat                 // Tile the texture
)

// Texture holds a 2D image for texture mapping. V=0 is the top row.
type Texture struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
	Wrap   WrapMode
}

// NewTexture creates an opaque black texture with the given dimensions.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyTexture, width, height)
	}
	t := &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
	for i := range t.Pixels {
		t.Pixels[i].A = 255
	}
	return t, nil
}

// LoadTexture loads a texture from a PNG, JPEG, BMP, TGA or WebP file. The
// format follows the extension; files without a known one are sniffed.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f, ImageFormat(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img)
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	tex, err := NewTexture(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := range tex.Height {
		for x := range tex.Width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			tex.Pixels[y*tex.Width+x] = color.RGBAModel.Convert(c).(color.RGBA)
		}
	}
	return tex, nil
}

// SolidTexture returns a 1x1 texture of color c.
func SolidTexture(c color.RGBA) *Texture {
	return &Texture{Width: 1, Height: 1, Pixels: []color.RGBA{c}}
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 color.RGBA) (*Texture, error) {
	tex, err := NewTexture(width, height)
	if err != nil {
		return nil, err
	}
	checkSize = max(checkSize, 1)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = c1
			} else {
				tex.Pixels[y*width+x] = c2
			}
		}
	}
	return tex, nil
}

// Validate returns ErrEmptyTexture if the texture has no texels.
func (t *Texture) Validate() error {
	if t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return ErrEmptyTexture
	}
	return nil
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return color.RGBA{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the nearest texel to (u, v).
func (t *Texture) Sample(u, v float64) color.RGBA {
	if t.Wrap == WrapRepeat {
		u -= math.Floor(u)
		v -= math.Floor(v)
	}
	x := texelIndex(u, t.Width)
	y := texelIndex(v, t.Height)
	return t.Pixels[y*t.Width+x]
}

func texelIndex(c float64, size int) int {
	return math3d.Clamp(int(c*float64(size-1)+0.5), 0, size-1)
}
