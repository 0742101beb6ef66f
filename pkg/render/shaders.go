package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

const (
	// depthShadeBias is the gray level of a surface infinitely far away.
	depthShadeBias = 40
	// depthFalloff controls how fast the depth shade darkens with distance.
	depthFalloff = 0.1
)

var (
	depthAttrs    = []int{AttrDepth}
	depthWAttrs   = []int{AttrDepth, AttrOneOverW}
	noAttrs       = []int{}
	normalAttrs   = []int{AttrDepth, AttrNormalX, AttrNormalY, AttrNormalZ}
	diffuseAttrs  = []int{AttrDepth, AttrOneOverW, AttrUOverW, AttrVOverW}
	litAttrs      = []int{AttrDepth, AttrOneOverW, AttrUOverW, AttrVOverW, AttrNormalX, AttrNormalY, AttrNormalZ}
	wireframeInk  = color.RGBA{255, 255, 255, 255}
	positiveDepth = math.Inf(1)
)

// frame is the colour and depth target of one render call.
type frame struct {
	bitmap *Bitmap
	depth  []float64
}

func newFrame(b *Bitmap) *frame {
	depth := make([]float64, b.Width*b.Height)
	clearDepth(depth)
	return &frame{bitmap: b, depth: depth}
}

// clearDepth resets a depth buffer to +Inf, doubling the copied prefix.
func clearDepth(buf []float64) {
	if len(buf) == 0 {
		return
	}
	buf[0] = positiveDepth
	for filled := 1; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}

// depthTest stores z at pixel i when it is closer than what is there.
func (f *frame) depthTest(i int, z float64) bool {
	if z < f.depth[i] {
		f.depth[i] = z
		return true
	}
	return false
}

// depthShade maps a view distance to a gray level in [depthShadeBias, 255].
// It shades by the reconstructed view distance w instead of a linear map of
// the interpolated depth value, which packs most of the scene into a few
// gray levels near the far plane.
func depthShade(w float64) uint8 {
	shade := depthShadeBias + (255-depthShadeBias)/(1+math.Max(w, 0)*depthFalloff)
	return uint8(math3d.Clamp(shade, 0, 255))
}

// normalChannel maps a normal component from [-1, 1] to [0, 255].
func normalChannel(n float64) uint8 {
	return uint8(math3d.Clamp((n+1)*127.5, 0, 255))
}

// depthMapShader fills a light's depth map.
type depthMapShader struct {
	buf []float64
	res int
}

func (s *depthMapShader) attributes() []int { return depthAttrs }

func (s *depthMapShader) shade(x, y int, v *[attrCount]float64, _ bool) {
	i := y*s.res + x
	if z := v[AttrDepth]; z < s.buf[i] {
		s.buf[i] = z
	}
}

type depthShader struct{ f *frame }

func (s *depthShader) attributes() []int { return depthWAttrs }

func (s *depthShader) shade(x, y int, v *[attrCount]float64, _ bool) {
	i := y*s.f.bitmap.Width + x
	if !s.f.depthTest(i, v[AttrDepth]) {
		return
	}
	g := depthShade(1 / v[AttrOneOverW])
	s.f.bitmap.setRGB(i, g, g, g)
}

// wireframeShader draws span end points only, without a depth test.
type wireframeShader struct{ f *frame }

func (s *wireframeShader) attributes() []int { return noAttrs }

func (s *wireframeShader) shade(x, y int, _ *[attrCount]float64, edge bool) {
	if !edge {
		return
	}
	s.f.bitmap.setRGB(y*s.f.bitmap.Width+x, wireframeInk.R, wireframeInk.G, wireframeInk.B)
}

type normalShader struct{ f *frame }

func (s *normalShader) attributes() []int { return normalAttrs }

func (s *normalShader) shade(x, y int, v *[attrCount]float64, _ bool) {
	i := y*s.f.bitmap.Width + x
	if !s.f.depthTest(i, v[AttrDepth]) {
		return
	}
	s.f.bitmap.setRGB(i,
		normalChannel(v[AttrNormalX]),
		normalChannel(v[AttrNormalY]),
		normalChannel(v[AttrNormalZ]),
	)
}

// sampleAt returns the perspective-correct texel for the interpolated
// u/w, v/w and 1/w.
func sampleAt(t *Texture, v *[attrCount]float64) color.RGBA {
	w := 1 / v[AttrOneOverW]
	return t.Sample(v[AttrUOverW]*w, v[AttrVOverW]*w)
}

type diffuseShader struct {
	f   *frame
	tex *Texture
}

func (s *diffuseShader) attributes() []int { return diffuseAttrs }

func (s *diffuseShader) bindTexture(t *Texture) { s.tex = t }

func (s *diffuseShader) shade(x, y int, v *[attrCount]float64, _ bool) {
	i := y*s.f.bitmap.Width + x
	if !s.f.depthTest(i, v[AttrDepth]) {
		return
	}
	c := sampleAt(s.tex, v)
	s.f.bitmap.setRGB(i, c.R, c.G, c.B)
}

// gbuffer keeps what the lighting resolve needs for every covered pixel.
type gbuffer struct {
	albedo []color.RGBA
	w      []float64
	normal []math3d.Vec3
}

func newGBuffer(n int) *gbuffer {
	return &gbuffer{
		albedo: make([]color.RGBA, n),
		w:      make([]float64, n),
		normal: make([]math3d.Vec3, n),
	}
}

// litShader is the colour pass of the lit modes: it writes the unlit texel
// and records w and the surface normal for the resolve sweep.
type litShader struct {
	f   *frame
	g   *gbuffer
	tex *Texture
}

func (s *litShader) attributes() []int { return litAttrs }

func (s *litShader) bindTexture(t *Texture) { s.tex = t }

func (s *litShader) shade(x, y int, v *[attrCount]float64, _ bool) {
	i := y*s.f.bitmap.Width + x
	if !s.f.depthTest(i, v[AttrDepth]) {
		return
	}
	c := sampleAt(s.tex, v)
	s.f.bitmap.setRGB(i, c.R, c.G, c.B)
	s.g.albedo[i] = c
	s.g.w[i] = 1 / v[AttrOneOverW]
	s.g.normal[i] = math3d.V3(v[AttrNormalX], v[AttrNormalY], v[AttrNormalZ]).Normalize()
}
