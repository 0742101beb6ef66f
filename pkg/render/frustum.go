package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0. Distance is positive
// on the side the normal faces.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

func (p Plane) normalized() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Scale(1 / l), D: p.D / l}
}

// Distance returns the signed distance from the plane to q.
func (p Plane) Distance(q math3d.Vec3) float64 {
	return p.Normal.Dot(q) + p.D
}

// Frustum holds the six inward-facing planes of a projector's view volume
// in the order left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the planes of a view-projection matrix.
// Row i, column j of m is m[i+j*4].
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) math3d.Vec4 {
		return math3d.V4(m[i], m[i+4], m[i+8], m[i+12])
	}
	plane := func(v math3d.Vec4) Plane {
		return Plane{Normal: math3d.V3(v.X, v.Y, v.Z), D: v.W}.normalized()
	}

	var f Frustum
	w := row(3)
	for axis := range 3 {
		r := row(axis)
		// -w <= c keeps w + c; c <= w keeps w - c.
		f.Planes[axis*2] = plane(w.Add(r))
		f.Planes[axis*2+1] = plane(w.Sub(r))
	}
	return f
}

// IntersectAABB reports whether box may overlap the frustum. Each plane
// is tested against the box corner furthest along its normal, so a box
// just outside a frustum corner can still pass.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, p := range f.Planes {
		far := box.corner(p.Normal.X >= 0, p.Normal.Y >= 0, p.Normal.Z >= 0)
		if p.Distance(far) < 0 {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

func (b AABB) corner(maxX, maxY, maxZ bool) math3d.Vec3 {
	c := b.Min
	if maxX {
		c.X = b.Max.X
	}
	if maxY {
		c.Y = b.Max.Y
	}
	if maxZ {
		c.Z = b.Max.Z
	}
	return c
}

// Transform returns the box enclosing the eight corners of b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	p := m.MulVec3(b.Min)
	out := AABB{Min: p, Max: p}
	for i := 1; i < 8; i++ {
		p = m.MulVec3(b.corner(i&1 != 0, i&2 != 0, i&4 != 0))
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
