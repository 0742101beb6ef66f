package render

import "github.com/taigrr/scanline/pkg/math3d"

// Vertex is one triangle corner as it travels through the pipeline. Pos is
// in world, clip or screen space depending on the stage.
type Vertex struct {
	Pos    math3d.Vec4
	UV     math3d.Vec2
	Normal math3d.Vec3
}

// NewVertex builds a world-space vertex (W=1).
func NewVertex(pos math3d.Vec3, uv math3d.Vec2, normal math3d.Vec3) Vertex {
	return Vertex{Pos: math3d.Point(pos), UV: uv, Normal: normal}
}

// Transform applies m to the position and normalM to the normal, which is
// re-normalized.
func (v Vertex) Transform(m, normalM math3d.Mat4) Vertex {
	return Vertex{
		Pos:    m.MulVec4(v.Pos),
		UV:     v.UV,
		Normal: normalM.MulVec3Dir(v.Normal).Normalize(),
	}
}

// PerspectiveDivide divides the position by W, keeping W.
func (v Vertex) PerspectiveDivide() Vertex {
	v.Pos = v.Pos.PerspectiveDivide()
	return v
}

// PerspectiveUndivide reverses PerspectiveDivide.
func (v Vertex) PerspectiveUndivide() Vertex {
	v.Pos = v.Pos.PerspectiveUndivide()
	return v
}

// Lerp interpolates position, UV and normal.
func (v Vertex) Lerp(o Vertex, t float64) Vertex {
	return Vertex{
		Pos:    v.Pos.Lerp(o.Pos, t),
		UV:     v.UV.Lerp(o.UV, t),
		Normal: v.Normal.Lerp(o.Normal, t),
	}
}

// InsideViewFrustum reports whether the clip-space position lies inside the
// canonical view volume.
func (v Vertex) InsideViewFrustum() bool {
	return v.Pos.InsideClipVolume()
}

// TriangleArea returns the signed area of (v, b, c) in the XY plane. In
// screen space (Y down) a triangle that is counter-clockwise in NDC has a
// negative area.
func (v Vertex) TriangleArea(b, c Vertex) float64 {
	x1 := b.Pos.X - v.Pos.X
	y1 := b.Pos.Y - v.Pos.Y
	x2 := c.Pos.X - v.Pos.X
	y2 := c.Pos.Y - v.Pos.Y
	return (x1*y2 - x2*y1) / 2
}
