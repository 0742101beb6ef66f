package render

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/taigrr/scanline/pkg/math3d"
)

const (
	lightNear = 0.1
	// shadowBias is subtracted from the receiver depth before the shadow
	// comparison to avoid self shadowing.
	shadowBias = 0.001
)

// Light is a spot light that casts shadows. It projects like a camera with
// a square frustum: Angle is the full cone angle in degrees and Distance is
// the far plane. The light shines along its forward (-Z) axis.
type Light struct {
	ID        uuid.UUID
	Name      string
	Transform math3d.Transform
	Angle     float64
	Distance  float64
	Color     math3d.Vec3 // linear, 0..1 per channel
	Intensity float64

	depth []float64
	res   int
}

// NewLight creates a white light with a 90 degree cone reaching 100 units.
func NewLight(name string) *Light {
	return &Light{
		ID:        uuid.New(),
		Name:      name,
		Transform: math3d.NewTransform(),
		Angle:     90,
		Distance:  100,
		Color:     math3d.V3(1, 1, 1),
		Intensity: 1,
	}
}

func (l *Light) projection() (vp, inv math3d.Mat4) {
	fov := l.Angle * math.Pi / 180
	return perspectiveProjector(l.Transform.Position, l.Transform.Rotation, fov, 1, lightNear, l.Distance)
}

// ViewProjection returns the light's view-projection matrix.
func (l *Light) ViewProjection() math3d.Mat4 {
	vp, _ := l.projection()
	return vp
}

// InverseViewProjection maps light clip coordinates back to world space.
func (l *Light) InverseViewProjection() math3d.Mat4 {
	_, inv := l.projection()
	return inv
}

// Towards returns the unit vector from a lit surface back to the light.
func (l *Light) Towards() math3d.Vec3 {
	return l.Transform.Rotation.Back()
}

// DepthBuffer returns the light's shadow depth map, row-major with
// Resolution() texels per side. It is nil until the first refresh and must
// not be modified.
func (l *Light) DepthBuffer() []float64 {
	return l.depth
}

// Resolution returns the side length of the depth map.
func (l *Light) Resolution() int {
	return l.res
}

// SetDepthBuffer installs buf as the depth map. buf must hold res*res
// values.
func (l *Light) SetDepthBuffer(buf []float64, res int) error {
	if res <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	if len(buf) != res*res {
		return fmt.Errorf("%w: light %s has %d values for resolution %d",
			ErrDepthBufferSize, l.ID, len(buf), res)
	}
	l.depth = buf
	l.res = res
	return nil
}

// lightSample is the per-frame state the resolve sweep reads for one light.
type lightSample struct {
	viewProj math3d.Mat4
	screen   math3d.Mat4
	depth    []float64
	res      int
	towards  math3d.Vec3
	radiance math3d.Vec3 // color * intensity
}

func (l *Light) sample() lightSample {
	half := float64(l.res) / 2
	return lightSample{
		viewProj: l.ViewProjection(),
		screen:   math3d.ScreenSpace(half, half),
		depth:    l.depth,
		res:      l.res,
		towards:  l.Towards(),
		radiance: l.Color.Scale(l.Intensity),
	}
}

// lit reports whether world point p is inside the light frustum and not
// occluded in the depth map.
func (s *lightSample) lit(p math3d.Vec3) bool {
	clip := s.viewProj.MulVec4(math3d.Point(p))
	if !clip.InsideClipVolume() || clip.W <= 0 {
		return false
	}
	tex := s.screen.MulVec4(clip).PerspectiveDivide()
	tx := math3d.Clamp(int(math.Floor(tex.X+0.5)), 0, s.res-1)
	ty := math3d.Clamp(int(math.Floor(tex.Y+0.5)), 0, s.res-1)
	return s.depth[ty*s.res+tx] > tex.Z-shadowBias
}
