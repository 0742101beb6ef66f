package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order. Vectors are columns and
// transforms compose right to left: (A.Mul(B)).MulVec4(v) applies B first.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// Every constructor returns a fresh value; there are no in-place builders.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale returns a non-uniform scale by v.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotate returns a rotation of angle radians around an arbitrary axis.
func Rotate(axis Vec3, angle float64) Mat4 {
	return QuatAxisAngle(axis, angle).Mat4()
}

// LookAt returns a right-handed view matrix looking from eye towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective returns an OpenGL style projection: view space looks down -Z,
// clip W equals the distance in front of the eye and NDC Z spans [-1, 1]
// from near to far.
// fovy is the vertical field of view in radians, aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// InversePerspective returns the exact inverse of Perspective for the same
// arguments. It maps clip coordinates back to view space.
func InversePerspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	c := (far + near) / (near - far)
	d := 2 * far * near / (near - far)

	return Mat4{
		aspect / f, 0, 0, 0,
		0, 1 / f, 0, 0,
		0, 0, 0, 1 / d,
		0, 0, -1, c / d,
	}
}

// Orthographic returns an orthographic projection.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// ScreenSpace maps NDC to pixel coordinates for a target of 2*halfW by
// 2*halfH pixels. X grows to the right, Y grows downwards, pixel centers sit
// on integer coordinates and Z passes through unchanged.
func ScreenSpace(halfW, halfH float64) Mat4 {
	return Mat4{
		halfW, 0, 0, 0,
		0, -halfH, 0, 0,
		0, 0, 1, 0,
		halfW - 0.5, halfH - 0.5, 0, 1,
	}
}

// InverseScreenSpace is the inverse of ScreenSpace.
func InverseScreenSpace(halfW, halfH float64) Mat4 {
	return Mat4{
		1 / halfW, 0, 0, 0,
		0, -1 / halfH, 0, 0,
		0, 0, 1, 0,
		-(halfW - 0.5) / halfW, (halfH - 0.5) / halfH, 0, 1,
	}
}

// Mul returns a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 applies the full homogeneous transform to v; W is not assumed to be 1.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms v as a point (W=1) and divides by the resulting W.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	p := m.MulVec4(Point(v))
	if p.W == 0 || p.W == 1 {
		return p.Vec3()
	}
	return p.PerspectiveDivide().Vec3()
}

// MulVec3Dir transforms v as a direction (W=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// minors holds the twelve 2x2 determinants shared by Determinant and Inverse.
type minors struct {
	s0, s1, s2, s3, s4, s5 float64 // top two rows
	c0, c1, c2, c3, c4, c5 float64 // bottom two rows
}

func (m Mat4) minors() minors {
	a := func(row, col int) float64 { return m[row+col*4] }
	return minors{
		s0: a(0, 0)*a(1, 1) - a(1, 0)*a(0, 1),
		s1: a(0, 0)*a(1, 2) - a(1, 0)*a(0, 2),
		s2: a(0, 0)*a(1, 3) - a(1, 0)*a(0, 3),
		s3: a(0, 1)*a(1, 2) - a(1, 1)*a(0, 2),
		s4: a(0, 1)*a(1, 3) - a(1, 1)*a(0, 3),
		s5: a(0, 2)*a(1, 3) - a(1, 2)*a(0, 3),
		c0: a(2, 0)*a(3, 1) - a(3, 0)*a(2, 1),
		c1: a(2, 0)*a(3, 2) - a(3, 0)*a(2, 2),
		c2: a(2, 0)*a(3, 3) - a(3, 0)*a(2, 3),
		c3: a(2, 1)*a(3, 2) - a(3, 1)*a(2, 2),
		c4: a(2, 1)*a(3, 3) - a(3, 1)*a(2, 3),
		c5: a(2, 2)*a(3, 3) - a(3, 2)*a(2, 3),
	}
}

func (n minors) det() float64 {
	return n.s0*n.c5 - n.s1*n.c4 + n.s2*n.c3 + n.s3*n.c2 - n.s4*n.c1 + n.s5*n.c0
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	return m.minors().det()
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular (det=0).
func (m Mat4) Inverse() Mat4 {
	n := m.minors()
	det := n.det()
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	a := func(row, col int) float64 { return m[row+col*4] }

	var r Mat4
	r.Set(0, 0, (a(1, 1)*n.c5-a(1, 2)*n.c4+a(1, 3)*n.c3)*inv)
	r.Set(0, 1, (-a(0, 1)*n.c5+a(0, 2)*n.c4-a(0, 3)*n.c3)*inv)
	r.Set(0, 2, (a(3, 1)*n.s5-a(3, 2)*n.s4+a(3, 3)*n.s3)*inv)
	r.Set(0, 3, (-a(2, 1)*n.s5+a(2, 2)*n.s4-a(2, 3)*n.s3)*inv)

	r.Set(1, 0, (-a(1, 0)*n.c5+a(1, 2)*n.c2-a(1, 3)*n.c1)*inv)
	r.Set(1, 1, (a(0, 0)*n.c5-a(0, 2)*n.c2+a(0, 3)*n.c1)*inv)
	r.Set(1, 2, (-a(3, 0)*n.s5+a(3, 2)*n.s2-a(3, 3)*n.s1)*inv)
	r.Set(1, 3, (a(2, 0)*n.s5-a(2, 2)*n.s2+a(2, 3)*n.s1)*inv)

	r.Set(2, 0, (a(1, 0)*n.c4-a(1, 1)*n.c2+a(1, 3)*n.c0)*inv)
	r.Set(2, 1, (-a(0, 0)*n.c4+a(0, 1)*n.c2-a(0, 3)*n.c0)*inv)
	r.Set(2, 2, (a(3, 0)*n.s4-a(3, 1)*n.s2+a(3, 3)*n.s0)*inv)
	r.Set(2, 3, (-a(2, 0)*n.s4+a(2, 1)*n.s2-a(2, 3)*n.s0)*inv)

	r.Set(3, 0, (-a(1, 0)*n.c3+a(1, 1)*n.c1-a(1, 2)*n.c0)*inv)
	r.Set(3, 1, (a(0, 0)*n.c3-a(0, 1)*n.c1+a(0, 2)*n.c0)*inv)
	r.Set(3, 2, (-a(3, 0)*n.s3+a(3, 1)*n.s1-a(3, 2)*n.s0)*inv)
	r.Set(3, 3, (a(2, 0)*n.s3-a(2, 1)*n.s1+a(2, 2)*n.s0)*inv)
	return r
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// ApproxEqual reports whether all elements differ by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}
