package math3d

import "math"

// Vec4 is a homogeneous 3D point or direction.
//
// Points carry W=1 in world space. After a projection W holds the view depth
// and must be non-zero before PerspectiveDivide.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point returns v as a homogeneous point (W=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// V4FromV3 creates a Vec4 from a Vec3 with the given W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 returns X, Y and Z, ignoring W.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide divides X, Y and Z by W and keeps W so the divide can be
// undone later.
func (v Vec4) PerspectiveDivide() Vec4 {
	return Vec4{v.X / v.W, v.Y / v.W, v.Z / v.W, v.W}
}

// PerspectiveUndivide multiplies X, Y and Z by W. It is the inverse of
// PerspectiveDivide.
func (v Vec4) PerspectiveUndivide() Vec4 {
	return Vec4{v.X * v.W, v.Y * v.W, v.Z * v.W, v.W}
}

// InsideClipVolume reports whether |x|, |y| and |z| are all within |w|.
func (v Vec4) InsideClipVolume() bool {
	w := math.Abs(v.W)
	return math.Abs(v.X) <= w && math.Abs(v.Y) <= w && math.Abs(v.Z) <= w
}

// Component returns X, Y, Z or W for axis 0, 1, 2 or 3.
func (v Vec4) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return v.W
	}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot returns the four component dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the four component length.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return Vec4{}
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between a and b by t.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Vec4) ApproxEqual(b Vec4, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps &&
		math.Abs(a.W-b.W) <= eps
}
