package math3d

import (
	"math"
	"testing"
)

func TestMat4Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"translate", Translate(V3(1, -2, 3))},
		{"trs", Translate(V3(4, 5, 6)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 3, 0.5)))},
		{"perspective", Perspective(math.Pi/3, 1.5, 0.1, 100)},
		{"view projection", Perspective(math.Pi/2, 1, 0.5, 20).Mul(LookAt(V3(1, 2, 3), Zero3(), Up()))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.Mul(tc.m.Inverse())
			if !got.ApproxEqual(Identity(), 1e-9) {
				t.Errorf("m * m^-1 = %v, want identity", got)
			}
		})
	}
}

func TestMat4InverseSingular(t *testing.T) {
	if got := Scale(V3(1, 0, 1)).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestMat4Determinant(t *testing.T) {
	m := Scale(V3(2, 3, 4))
	if d := m.Determinant(); math.Abs(d-24) > 1e-12 {
		t.Errorf("det = %v, want 24", d)
	}
	if d := RotateZ(1.2).Determinant(); math.Abs(d-1) > 1e-12 {
		t.Errorf("rotation det = %v, want 1", d)
	}
}

func TestInversePerspective(t *testing.T) {
	fov, aspect, near, far := math.Pi/3, 4.0/3.0, 0.1, 50.0
	p := Perspective(fov, aspect, near, far)
	inv := InversePerspective(fov, aspect, near, far)

	if got := inv.Mul(p); !got.ApproxEqual(Identity(), 1e-9) {
		t.Errorf("InversePerspective * Perspective = %v", got)
	}
	if got := inv; !got.ApproxEqual(p.Inverse(), 1e-9) {
		t.Errorf("InversePerspective differs from general inverse")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := 0.5, 10.0
	p := Perspective(math.Pi/2, 1, near, far)

	n := p.MulVec4(V4(0, 0, -near, 1)).PerspectiveDivide()
	if math.Abs(n.Z+1) > 1e-12 || math.Abs(n.W-near) > 1e-12 {
		t.Errorf("near plane maps to %v, want z=-1 w=%v", n, near)
	}
	f := p.MulVec4(V4(0, 0, -far, 1)).PerspectiveDivide()
	if math.Abs(f.Z-1) > 1e-12 || math.Abs(f.W-far) > 1e-12 {
		t.Errorf("far plane maps to %v, want z=1 w=%v", f, far)
	}
}

func TestOrthographic(t *testing.T) {
	o := Orthographic(-2, 2, -1, 1, 1, 11)
	tests := []struct {
		name string
		in   Vec3
		want Vec4
	}{
		{"near top right", V3(2, 1, -1), V4(1, 1, -1, 1)},
		{"far bottom left", V3(-2, -1, -11), V4(-1, -1, 1, 1)},
		{"centre", V3(0, 0, -6), V4(0, 0, 0, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := o.MulVec4(Point(tc.in)); !got.ApproxEqual(tc.want, 1e-12) {
				t.Errorf("Orthographic maps %v to %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestScreenSpace(t *testing.T) {
	s := ScreenSpace(32, 24)

	tests := []struct {
		name   string
		ndc    Vec4
		wantXY [2]float64
	}{
		{"top left", V4(-1, 1, 0, 1), [2]float64{-0.5, -0.5}},
		{"bottom right", V4(1, -1, 0, 1), [2]float64{63.5, 47.5}},
		{"center", V4(0, 0, 0.3, 1), [2]float64{31.5, 23.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.MulVec4(tc.ndc)
			if math.Abs(got.X-tc.wantXY[0]) > 1e-12 || math.Abs(got.Y-tc.wantXY[1]) > 1e-12 {
				t.Errorf("screen = (%v, %v), want %v", got.X, got.Y, tc.wantXY)
			}
			if got.Z != tc.ndc.Z {
				t.Errorf("z changed: %v", got.Z)
			}
		})
	}

	if got := InverseScreenSpace(32, 24).Mul(s); !got.ApproxEqual(Identity(), 1e-12) {
		t.Errorf("InverseScreenSpace * ScreenSpace = %v", got)
	}
}

func TestPerspectiveDivideRoundTrip(t *testing.T) {
	tests := []Vec4{
		V4(1, 2, 3, 4),
		V4(-0.5, 0.25, 0.9, 0.1),
		V4(100, -300, 12, 250),
	}

	for _, v := range tests {
		got := v.PerspectiveDivide().PerspectiveUndivide()
		if !got.ApproxEqual(v, 1e-9) {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}

func TestInsideClipVolume(t *testing.T) {
	tests := []struct {
		v    Vec4
		want bool
	}{
		{V4(0, 0, 0, 1), true},
		{V4(1, -1, 1, 1), true},
		{V4(1.01, 0, 0, 1), false},
		{V4(0, 0, -2, 1.5), false},
		{V4(-1, 1, 0.5, -1), true},
	}

	for _, tc := range tests {
		if got := tc.v.InsideClipVolume(); got != tc.want {
			t.Errorf("InsideClipVolume(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform().
		WithPosition(V3(1, 2, 3)).
		WithRotation(QuatAxisAngle(Up(), math.Pi/2)).
		WithScale(V3(2, 2, 2))

	got := tr.Matrix().MulVec3(V3(1, 0, 0))
	want := V3(1, 2, 1) // scaled to 2, rotated to -z, translated
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Matrix() * (1,0,0) = %v, want %v", got, want)
	}

	moved := tr.Translate(V3(1, 0, 0))
	if tr.Position != V3(1, 2, 3) {
		t.Errorf("Translate mutated the receiver")
	}
	if moved.Position != V3(2, 2, 3) {
		t.Errorf("Translate position = %v", moved.Position)
	}
}

func TestTransformNormalMatrix(t *testing.T) {
	tr := NewTransform().WithScale(V3(4, 1, 1))
	// A 45 degree surface in XY has normal (1, 1, 0)/√2; squashing X by 4
	// must tilt it towards X.
	n := tr.NormalMatrix().MulVec3Dir(V3(1, 1, 0).Normalize()).Normalize()
	if n.X >= n.Y {
		t.Errorf("normal = %v, want Y dominant after X stretch", n)
	}
}

func TestTransformLookAt(t *testing.T) {
	tr := NewTransform().WithPosition(V3(0, 0, -5)).LookAt(Zero3(), Up())
	if got := tr.Rotation.Forward(); !got.ApproxEqual(V3(0, 0, 1), 1e-12) {
		t.Errorf("forward = %v, want (0, 0, 1)", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %v", got)
	}
	if got := Clamp(-0.5, 0.0, 1.0); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %v", got)
	}
	if got := Clamp(0.25, 0.0, 1.0); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %v", got)
	}
}
