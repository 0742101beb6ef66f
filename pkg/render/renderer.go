// Package render is a CPU scanline rasterizer. It clips, sets up and fills
// world-space triangles into a Bitmap with depth, wireframe, normal, diffuse
// and shadow-mapped lighting modes.
package render

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/math3d"
)

var (
	ErrDepthBufferSize   = errors.New("light depth buffer does not match its resolution")
	ErrEmptyTexture      = errors.New("texture has no texels")
	ErrInvalidResolution = errors.New("resolution must be positive")
	ErrUnknownMode       = errors.New("unknown render mode")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// FrameStats counts the work done by the last Render call.
type FrameStats struct {
	MeshesSubmitted    int
	MeshesCulled       int
	TrianglesSubmitted int
	TrianglesClipped   int // rejected entirely by the clipper
	TrianglesCulled    int // back-facing or degenerate after clipping
	TrianglesDrawn     int

	LightMapsRefreshed int
	ShadowTriangles    int // triangles drawn into light depth maps
}

func (s *FrameStats) add(o FrameStats) {
	s.MeshesSubmitted += o.MeshesSubmitted
	s.MeshesCulled += o.MeshesCulled
	s.TrianglesSubmitted += o.TrianglesSubmitted
	s.TrianglesClipped += o.TrianglesClipped
	s.TrianglesCulled += o.TrianglesCulled
	s.TrianglesDrawn += o.TrianglesDrawn
}

// Renderer turns a camera, lights and meshes into a Bitmap. It remembers
// light-map state between calls for the static lit mode. A Renderer is not
// safe for concurrent use.
type Renderer struct {
	width     int
	height    int
	screen    math3d.Mat4
	invScreen math3d.Mat4

	lightMapsDirty bool
	shadowRes      int
	lightIDs       []uuid.UUID

	// ParallelLights refreshes light depth maps concurrently.
	ParallelLights bool
	// Stats describes the last frame.
	Stats FrameStats
}

// NewRenderer creates a renderer for a width x height target.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{lightMapsDirty: true}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize changes the target size. The screen transforms are rebuilt before
// the next frame.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, width, height)
	}
	r.width, r.height = width, height
	hw, hh := float64(width)/2, float64(height)/2
	r.screen = math3d.ScreenSpace(hw, hh)
	r.invScreen = math3d.InverseScreenSpace(hw, hh)
	return nil
}

// Size returns the target size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// InvalidateLightMaps makes the next static lit frame rebuild every light
// depth map. Call it after moving geometry or lights.
func (r *Renderer) InvalidateLightMaps() {
	r.lightMapsDirty = true
}

// Render draws one frame. Meshes are world-space; lights are only used by
// the lit modes, which also write the lights' depth maps.
func (r *Renderer) Render(cam Projector, lights []*Light, meshes []MeshInstance, mode Mode, illum Illumination) (*Bitmap, error) {
	r.Stats = FrameStats{}
	for _, m := range meshes {
		if t := m.Texture(); t != nil {
			if err := t.Validate(); err != nil {
				return nil, err
			}
		}
	}

	bitmap := NewBitmap(r.width, r.height)
	bitmap.Clear(illum.Zenith)
	f := newFrame(bitmap)

	var sh spanShader
	var g *gbuffer
	switch mode {
	case ModeDepth:
		sh = &depthShader{f: f}
	case ModeWireframe:
		sh = &wireframeShader{f: f}
	case ModeNormal:
		sh = &normalShader{f: f}
	case ModeDiffuse:
		sh = &diffuseShader{f: f}
	case ModeLitStatic, ModeLitDynamic:
		if err := r.prepareLightMaps(lights, meshes, mode, illum.ShadowResolution); err != nil {
			return nil, err
		}
		g = newGBuffer(r.width * r.height)
		sh = &litShader{f: f, g: g}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	p := newPass(cam.ViewProjection(), r.screen, r.width, r.height, sh)
	for _, m := range meshes {
		p.drawMesh(m)
	}
	r.Stats.add(p.stats)

	if g != nil {
		if err := r.resolveLighting(f, g, cam.InverseViewProjection(), lights, illum); err != nil {
			return nil, err
		}
	}

	logging.Logger().Debug("frame",
		"mode", mode,
		"drawn", r.Stats.TrianglesDrawn,
		"culled", r.Stats.TrianglesCulled,
		"clipped", r.Stats.TrianglesClipped,
		"meshes_culled", r.Stats.MeshesCulled,
	)
	return bitmap, nil
}

// needsRefresh reports whether the static light maps are stale.
func (r *Renderer) needsRefresh(lights []*Light, res int) bool {
	if r.lightMapsDirty || res != r.shadowRes || len(lights) != len(r.lightIDs) {
		return true
	}
	for i, l := range lights {
		if l.ID != r.lightIDs[i] || l.DepthBuffer() == nil || l.Resolution() != res {
			return true
		}
	}
	return false
}

func (r *Renderer) prepareLightMaps(lights []*Light, meshes []MeshInstance, mode Mode, res int) error {
	if res <= 0 {
		return fmt.Errorf("%w: shadow resolution %d", ErrInvalidResolution, res)
	}
	if mode == ModeLitStatic && !r.needsRefresh(lights, res) {
		return nil
	}

	stats := make([]FrameStats, len(lights))
	refresh := func(i int) error {
		var err error
		stats[i], err = refreshLightMap(lights[i], meshes, res)
		return err
	}

	if r.ParallelLights && len(lights) > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range lights {
			g.Go(func() error { return refresh(i) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i := range lights {
			if err := refresh(i); err != nil {
				return err
			}
		}
	}

	for _, s := range stats {
		r.Stats.ShadowTriangles += s.TrianglesDrawn
	}
	r.Stats.LightMapsRefreshed = len(lights)
	r.lightIDs = r.lightIDs[:0]
	for _, l := range lights {
		r.lightIDs = append(r.lightIDs, l.ID)
	}
	r.shadowRes = res
	r.lightMapsDirty = false
	return nil
}

// refreshLightMap re-renders l's depth map from scratch, reusing its buffer
// when the size still fits.
func refreshLightMap(l *Light, meshes []MeshInstance, res int) (FrameStats, error) {
	start := time.Now()
	buf := l.DepthBuffer()
	if len(buf) != res*res {
		buf = make([]float64, res*res)
	}
	clearDepth(buf)

	half := float64(res) / 2
	p := newPass(l.ViewProjection(), math3d.ScreenSpace(half, half), res, res,
		&depthMapShader{buf: buf, res: res})
	for _, m := range meshes {
		p.drawMesh(m)
	}
	if err := l.SetDepthBuffer(buf, res); err != nil {
		return FrameStats{}, err
	}

	logging.Logger().Debug("light map refreshed",
		"light", l.ID,
		"name", l.Name,
		"res", res,
		"triangles", p.stats.TrianglesDrawn,
		"duration", time.Since(start),
	)
	return p.stats, nil
}

// resolveLighting multiplies every covered pixel by the light reaching it.
func (r *Renderer) resolveLighting(f *frame, g *gbuffer, invViewProj math3d.Mat4, lights []*Light, illum Illumination) error {
	samples := make([]lightSample, 0, len(lights))
	for _, l := range lights {
		if len(l.DepthBuffer()) != l.Resolution()*l.Resolution() || l.Resolution() == 0 {
			return fmt.Errorf("%w: light %s", ErrDepthBufferSize, l.ID)
		}
		samples = append(samples, l.sample())
	}

	ambient := illum.Ambient.Scale(illum.AmbientIntensity)
	unproject := invViewProj.Mul(r.invScreen)

	for y := range r.height {
		for x := range r.width {
			i := y*r.width + x
			if math.IsInf(f.depth[i], 1) {
				continue
			}

			w := g.w[i]
			screen := math3d.V4(float64(x), float64(y), f.depth[i], w).PerspectiveUndivide()
			world := unproject.MulVec4(screen)
			p := world.Vec3().Scale(1 / world.W)
			n := g.normal[i]

			light := math3d.Zero3()
			for s := range samples {
				ls := &samples[s]
				if !ls.lit(p) {
					continue
				}
				light = light.Add(ls.radiance.Scale(math.Max(0, ls.towards.Dot(n))))
			}
			light = light.Add(ambient)

			c := g.albedo[i]
			f.bitmap.setRGB(i,
				modulate(c.R, light.X),
				modulate(c.G, light.Y),
				modulate(c.B, light.Z),
			)
		}
	}
	return nil
}

func modulate(c uint8, light float64) uint8 {
	return uint8(float64(c)*math3d.Clamp(light, 0, 1) + 0.5)
}
