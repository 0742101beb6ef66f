package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkQuatRotate(b *testing.B) {
	q := QuatAxisAngle(V3(1, 2, 3), 0.8)
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = q.Rotate(v)
	}
}

func BenchmarkQuatMat4(b *testing.B) {
	q := QuatAxisAngle(V3(1, 2, 3), 0.8)

	for b.Loop() {
		_ = q.Mat4()
	}
}

func BenchmarkTransformMatrix(b *testing.B) {
	tr := NewTransform().WithPosition(V3(1, 2, 3)).WithRotation(QuatAxisAngle(Up(), 1))

	for b.Loop() {
		_ = tr.Matrix()
	}
}

func BenchmarkViewProjection(b *testing.B) {
	// Camera view-projection as the renderer builds it each frame.
	rot := QuatLookRotation(V3(0, 0, -1), Up())
	pos := V3(0, 0, 10)
	proj := Perspective(math.Pi/3, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(rot.Conjugate().Mat4()).Mul(Translate(pos.Negate()))
	}
}

func BenchmarkPerspectiveDivide(b *testing.B) {
	v := V4(1, 2, 3, 4)

	for b.Loop() {
		_ = v.PerspectiveDivide()
	}
}
