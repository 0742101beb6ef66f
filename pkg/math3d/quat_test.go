package math3d

import (
	"math"
	"math/rand"
	"testing"
)

func randomUnitQuat(r *rand.Rand) Quat {
	axis := V3(r.Float64()*2-1, r.Float64()*2-1, r.Float64()*2-1)
	if axis.LenSq() < 1e-6 {
		axis = Up()
	}
	return QuatAxisAngle(axis, (r.Float64()*2-1)*math.Pi)
}

func TestQuatMatrixMatchesRotate(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := range 200 {
		q := randomUnitQuat(r)
		v := V3(r.Float64()*10-5, r.Float64()*10-5, r.Float64()*10-5)

		byQuat := q.Rotate(v)
		byMatrix := q.Mat4().MulVec3Dir(v)
		if !byQuat.ApproxEqual(byMatrix, 1e-9) {
			t.Fatalf("case %d: Rotate = %v, Mat4 = %v", i, byQuat, byMatrix)
		}
	}
}

func TestQuatFromMat4RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
	}{
		{"identity", Up(), 0},
		{"yaw 90", Up(), math.Pi / 2},
		{"pitch -90", Right(), -math.Pi / 2},
		{"near 180 x", Right(), math.Pi - 1e-3},
		{"near 180 y", Up(), math.Pi - 1e-3},
		{"near 180 z", V3(0, 0, 1), math.Pi - 1e-3},
		{"oblique", V3(1, 2, 3), 2.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := QuatAxisAngle(tc.axis, tc.angle)
			got := QuatFromMat4(q.Mat4())

			// q and -q are the same rotation.
			if math.Abs(math.Abs(got.Dot(q))-1) > 1e-9 {
				t.Errorf("QuatFromMat4 = %v, want ±%v", got, q)
			}
			if math.Abs(got.Len()-1) > 1e-12 {
				t.Errorf("result not normalized: len = %v", got.Len())
			}
		})
	}
}

func TestQuatAxisAngle(t *testing.T) {
	q := QuatAxisAngle(Up(), math.Pi/2)
	got := q.Rotate(V3(1, 0, 0))
	want := V3(0, 0, -1)
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("rotate x by 90 around y = %v, want %v", got, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatAxisAngle(Up(), 0.7)
	b := QuatAxisAngle(Right(), -0.3)
	v := V3(0.2, -1, 3)

	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("(a*b)v = %v, want a(b(v)) = %v", got, want)
	}

	back := a.Conjugate().Rotate(a.Rotate(v))
	if !back.ApproxEqual(v, 1e-12) {
		t.Errorf("conjugate did not undo rotation: %v", back)
	}
}

func TestQuatLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
	}{
		{"towards +z", V3(0, 0, 1)},
		{"towards -z", V3(0, 0, -1)},
		{"oblique", V3(1, -2, 0.5)},
		{"straight down", V3(0, -1, 0)},
		{"straight up", V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := QuatLookRotation(tc.forward, Up())
			got := q.Forward()
			want := tc.forward.Normalize()
			if !got.ApproxEqual(want, 1e-9) {
				t.Errorf("Forward() = %v, want %v", got, want)
			}
			if math.Abs(q.Right().Dot(got)) > 1e-9 {
				t.Errorf("right axis not orthogonal to forward")
			}
		})
	}
}

func TestQuatStraightDownBasis(t *testing.T) {
	q := QuatLookRotation(V3(0, -1, 0), Up())
	if !q.Right().ApproxEqual(V3(1, 0, 0), 1e-9) {
		t.Errorf("Right() = %v, want (1, 0, 0)", q.Right())
	}
	if !q.Up().ApproxEqual(V3(0, 0, -1), 1e-9) {
		t.Errorf("Up() = %v, want (0, 0, -1)", q.Up())
	}
}
