package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Overlay draws unshaded 3D lines on top of a rendered bitmap.
type Overlay struct {
	viewProj math3d.Mat4
	bitmap   *Bitmap
}

// NewOverlay creates an overlay that projects through p onto b.
func NewOverlay(p Projector, b *Bitmap) *Overlay {
	return &Overlay{viewProj: p.ViewProjection(), bitmap: b}
}

// DrawLine3D draws a line in 3D space. Lines are dropped unless at least
// one end is visible.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, c color.RGBA) {
	x1, y1, _, vis1 := projectToScreen(o.viewProj, p1, o.bitmap.Width, o.bitmap.Height)
	x2, y2, _, vis2 := projectToScreen(o.viewProj, p2, o.bitmap.Width, o.bitmap.Height)
	if !vis1 && !vis2 {
		return
	}
	o.bitmap.DrawLine(round(x1), round(y1), round(x2), round(y2), c)
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

// DrawPoint draws a point as a small axis-aligned cross.
func (o *Overlay) DrawPoint(pos math3d.Vec3, size float64, c color.RGBA) {
	h := size / 2
	o.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), c)
	o.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), c)
	o.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), c)
}

// DrawAxes draws the world axes at the origin.
func (o *Overlay) DrawAxes(length float64) {
	origin := math3d.Zero3()
	o.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	o.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	o.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawLight marks a light's position and draws its forward direction and
// the four edges of its cone, size units long.
func (o *Overlay) DrawLight(l *Light, size float64) {
	c := lightColor(l)
	pos := l.Transform.Position
	rot := l.Transform.Rotation
	o.DrawPoint(pos, size*0.25, c)
	o.DrawLine3D(pos, pos.Add(rot.Forward().Scale(size)), ColorYellow)

	spread := math.Tan(l.Angle * math.Pi / 360)
	for _, corner := range [4][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}} {
		dir := rot.Forward().
			Add(rot.Right().Scale(corner[0] * spread)).
			Add(rot.Up().Scale(corner[1] * spread))
		o.DrawLine3D(pos, pos.Add(dir.Scale(size)), c)
	}
}

// DrawGizmos draws the world axes, one unit long, and every light.
func (o *Overlay) DrawGizmos(lights []*Light, size float64) {
	o.DrawAxes(1)
	o.DrawLights(lights, size)
}

// DrawLights draws every light.
func (o *Overlay) DrawLights(lights []*Light, size float64) {
	for _, l := range lights {
		o.DrawLight(l, size)
	}
}

func lightColor(l *Light) color.RGBA {
	return color.RGBA{
		R: uint8(math3d.Clamp(l.Color.X, 0, 1) * 255),
		G: uint8(math3d.Clamp(l.Color.Y, 0, 1) * 255),
		B: uint8(math3d.Clamp(l.Color.Z, 0, 1) * 255),
		A: 255,
	}
}
