package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestLightSetDepthBuffer(t *testing.T) {
	tests := []struct {
		name string
		len  int
		res  int
		want error
	}{
		{"matching", 16, 4, nil},
		{"too short", 10, 4, ErrDepthBufferSize},
		{"too long", 17, 4, ErrDepthBufferSize},
		{"zero resolution", 0, 0, ErrInvalidResolution},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLight("key")
			err := l.SetDepthBuffer(make([]float64, tc.len), tc.res)
			if !errors.Is(err, tc.want) {
				t.Fatalf("SetDepthBuffer error = %v, want %v", err, tc.want)
			}
			if tc.want == nil && l.Resolution() != tc.res {
				t.Errorf("Resolution = %d, want %d", l.Resolution(), tc.res)
			}
			if tc.want != nil && l.DepthBuffer() != nil {
				t.Error("a rejected buffer must not be installed")
			}
		})
	}
}

func TestLightProjection(t *testing.T) {
	l := NewLight("spot")
	l.Transform = l.Transform.
		WithPosition(math3d.V3(0, 5, 0)).
		WithRotation(math3d.QuatAxisAngle(math3d.V3(1, 0, 0), -math.Pi/2))
	l.Angle = 90
	l.Distance = 20

	if got := l.Towards(); !got.ApproxEqual(math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("Towards = %v, want +Y", got)
	}

	vp := l.ViewProjection()
	tests := []struct {
		name   string
		p      math3d.Vec3
		inside bool
	}{
		{"below", math3d.V3(0, 0, 0), true},
		{"cone edge", math3d.V3(4.9, 0, 0), true},
		{"outside cone", math3d.V3(5.5, 0, 0), false},
		{"above light", math3d.V3(0, 6, 0), false},
		{"beyond distance", math3d.V3(0, -16, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := vp.MulVec4(math3d.Point(tc.p))
			if got := clip.InsideClipVolume() && clip.W > 0; got != tc.inside {
				t.Errorf("inside = %v, want %v (clip %v)", got, tc.inside, clip)
			}
		})
	}

	inv := l.InverseViewProjection()
	if !inv.Mul(vp).ApproxEqual(math3d.Identity(), 1e-9) {
		t.Error("InverseViewProjection is not the inverse of ViewProjection")
	}
}

func TestLightIDsAreUnique(t *testing.T) {
	a, b := NewLight("a"), NewLight("b")
	if a.ID == b.ID {
		t.Error("two lights share an ID")
	}
}
