package math3d

// Transform is a position, rotation and scale triple. It is immutable: every
// method returns a new Transform.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// NewTransform returns a transform at the origin with no rotation and unit scale.
func NewTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    V3(1, 1, 1),
	}
}

// WithPosition returns a copy of t moved to p.
func (t Transform) WithPosition(p Vec3) Transform {
	t.Position = p
	return t
}

// WithRotation returns a copy of t with rotation q.
func (t Transform) WithRotation(q Quat) Transform {
	t.Rotation = q.Normalize()
	return t
}

// WithScale returns a copy of t with scale s.
func (t Transform) WithScale(s Vec3) Transform {
	t.Scale = s
	return t
}

// Translate returns a copy of t offset by d.
func (t Transform) Translate(d Vec3) Transform {
	t.Position = t.Position.Add(d)
	return t
}

// Rotate returns a copy of t rotated by q after its current rotation.
func (t Transform) Rotate(q Quat) Transform {
	t.Rotation = q.Mul(t.Rotation).Normalize()
	return t
}

// LookAt returns a copy of t rotated so that its forward axis points at target.
func (t Transform) LookAt(target, up Vec3) Transform {
	t.Rotation = QuatLookRotation(target.Sub(t.Position), up)
	return t
}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() Mat4 {
	return Translate(t.Position).Mul(t.Rotation.Mat4()).Mul(Scale(t.Scale))
}

// NormalMatrix returns the matrix used to carry normals through Matrix: the
// inverse transpose of the linear part.
func (t Transform) NormalMatrix() Mat4 {
	inv := V3(safeInv(t.Scale.X), safeInv(t.Scale.Y), safeInv(t.Scale.Z))
	return t.Rotation.Mat4().Mul(Scale(inv))
}

func safeInv(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}
