package math3d

import "math"

// Quat is a rotation quaternion. Rotations are only meaningful for unit
// quaternions; constructors return normalized values.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatAxisAngle returns the rotation of angle radians around axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// QuatFromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z)
// angles in radians, applied roll first, then pitch, then yaw.
func QuatFromEuler(pitch, yaw, roll float64) Quat {
	qx := QuatAxisAngle(Right(), pitch)
	qy := QuatAxisAngle(Up(), yaw)
	qz := QuatAxisAngle(V3(0, 0, 1), roll)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatFromMat4 extracts the rotation held in the upper 3x3 block of m.
//
// The largest of the trace and the diagonal terms picks the formula so the
// square root never operates on a value close to zero.
func QuatFromMat4(m Mat4) Quat {
	r00, r01, r02 := m.Get(0, 0), m.Get(0, 1), m.Get(0, 2)
	r10, r11, r12 := m.Get(1, 0), m.Get(1, 1), m.Get(1, 2)
	r20, r21, r22 := m.Get(2, 0), m.Get(2, 1), m.Get(2, 2)

	var q Quat
	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{
			X: (r21 - r12) * s,
			Y: (r02 - r20) * s,
			Z: (r10 - r01) * s,
			W: 0.25 / s,
		}
	case r00 > r11 && r00 > r22:
		s := 2 * math.Sqrt(1+r00-r11-r22)
		q = Quat{
			X: 0.25 * s,
			Y: (r01 + r10) / s,
			Z: (r02 + r20) / s,
			W: (r21 - r12) / s,
		}
	case r11 > r22:
		s := 2 * math.Sqrt(1+r11-r00-r22)
		q = Quat{
			X: (r01 + r10) / s,
			Y: 0.25 * s,
			Z: (r12 + r21) / s,
			W: (r02 - r20) / s,
		}
	default:
		s := 2 * math.Sqrt(1+r22-r00-r11)
		q = Quat{
			X: (r02 + r20) / s,
			Y: (r12 + r21) / s,
			Z: 0.25 * s,
			W: (r10 - r01) / s,
		}
	}
	return q.Normalize()
}

// QuatLookRotation returns the rotation whose Forward is the given direction.
// When forward is parallel to up another reference axis is used.
func QuatLookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f.LenSq() == 0 {
		return QuatIdentity()
	}
	if f.Cross(up.Normalize()).LenSq() < 1e-12 {
		up = V3(0, 0, -1)
		if math.Abs(f.Z) > 0.99 {
			up = Up()
		}
	}
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Mat4{
		s.X, s.Y, s.Z, 0,
		u.X, u.Y, u.Z, 0,
		-f.X, -f.Y, -f.Z, 0,
		0, 0, 0, 1,
	}
	return QuatFromMat4(m)
}

// Len returns the quaternion norm.
func (q Quat) Len() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q scaled to unit length.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Mul returns the Hamilton product q * r: the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Dot returns the four component dot product.
func (q Quat) Dot(r Quat) float64 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := V3(q.X, q.Y, q.Z)
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 returns the rotation as a matrix.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0,
		2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0,
		2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// Forward returns the rotated (0, 0, -1) axis.
func (q Quat) Forward() Vec3 { return q.Rotate(V3(0, 0, -1)) }

// Back returns the rotated (0, 0, 1) axis.
func (q Quat) Back() Vec3 { return q.Rotate(V3(0, 0, 1)) }

// Up returns the rotated (0, 1, 0) axis.
func (q Quat) Up() Vec3 { return q.Rotate(V3(0, 1, 0)) }

// Right returns the rotated (1, 0, 0) axis.
func (q Quat) Right() Vec3 { return q.Rotate(V3(1, 0, 0)) }
