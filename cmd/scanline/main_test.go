package main

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

func TestOrbitFromCamera(t *testing.T) {
	cam := render.NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())

	o := newOrbit(cam, 60)
	if !o.Pivot.ApproxEqual(math3d.Zero3(), 1e-9) {
		t.Fatalf("pivot = %v, want origin", o.Pivot)
	}
	o.Apply(cam)
	if got := cam.Position(); !got.ApproxEqual(math3d.V3(0, 0, 5), 1e-9) {
		t.Errorf("home position = %v, want (0,0,5)", got)
	}

	o.Impulse(0.1, 0)
	for range 30 {
		o.Step(cam)
	}
	pos := cam.Position()
	if math.Abs(pos.Len()-5) > 1e-9 {
		t.Errorf("orbit left the sphere: |pos| = %v", pos.Len())
	}
	if pos.X <= 0 {
		t.Errorf("positive yaw should swing towards +X, got %v", pos)
	}
	if o.Yaw.Velocity >= 0.1 {
		t.Errorf("velocity did not decay: %v", o.Yaw.Velocity)
	}
	if got := cam.Forward(); !got.ApproxEqual(pos.Negate().Normalize(), 1e-9) {
		t.Errorf("camera no longer faces the pivot: forward %v", got)
	}

	o.Reset()
	o.Apply(cam)
	if got := cam.Position(); !got.ApproxEqual(math3d.V3(0, 0, 5), 1e-9) {
		t.Errorf("position after Reset = %v", got)
	}
}

func TestOrbitLimits(t *testing.T) {
	cam := render.NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 2))
	o := newOrbit(cam, 60)

	o.Impulse(0, 10)
	for range 10 {
		o.Step(cam)
	}
	if o.Pitch.Position > maxPitch {
		t.Errorf("pitch %v exceeds %v", o.Pitch.Position, maxPitch)
	}

	for range 50 {
		o.Zoom(0.5)
	}
	if o.Distance != minDistance {
		t.Errorf("distance = %v, want %v", o.Distance, minDistance)
	}
}

func TestOverrides(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(s *scene.Scene) bool
		wantErr error
	}{
		{"none", nil, func(s *scene.Scene) bool {
			return s.Mode == render.ModeLitStatic && s.Width == 320 && s.Illumination.ShadowResolution == 2000
		}, nil},
		{"mode and size", []string{"--mode", "depth", "--width", "64", "--height", "32"}, func(s *scene.Scene) bool {
			return s.Mode == render.ModeDepth && s.Width == 64 && s.Height == 32
		}, nil},
		{"shadow and parallel", []string{"--shadow-res", "512", "--parallel-lights"}, func(s *scene.Scene) bool {
			return s.Illumination.ShadowResolution == 512 && s.ParallelLights
		}, nil},
		{"bad mode", []string{"--mode", "phong"}, nil, render.ErrUnknownMode},
		{"zero width", []string{"--width", "0"}, nil, render.ErrInvalidResolution},
		{"zero shadow", []string{"--shadow-res", "0"}, nil, render.ErrInvalidResolution},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var o overrides
			cmd := &cobra.Command{Use: "test"}
			o.register(cmd)
			if err := cmd.ParseFlags(tc.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}

			s, err := scene.Build(&scene.Config{}, t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			err = o.apply(cmd, s)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if !tc.want(s) {
				t.Errorf("scene after overrides: mode %v %dx%d shadow %d parallel %v",
					s.Mode, s.Width, s.Height, s.Illumination.ShadowResolution, s.ParallelLights)
			}
		})
	}
}

func TestRenderFrame(t *testing.T) {
	s, err := scene.Build(&scene.Config{
		Render: scene.RenderConfig{Width: 32, Height: 24, Mode: "normal"},
		Camera: scene.CameraConfig{Position: []float64{0, 0, 4}},
		Objects: []scene.ObjectConfig{{Shape: "cube"}},
	}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "frame.bmp")
	if err := renderFrame(s, out, true); err != nil {
		t.Fatalf("renderFrame: %v", err)
	}
	tex, err := render.LoadTexture(out)
	if err != nil {
		t.Fatalf("reading back %s: %v", out, err)
	}
	if tex.Width != 32 || tex.Height != 24 {
		t.Errorf("image = %dx%d, want 32x24", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(16, 12); got.B != 255 {
		t.Errorf("centre = %v, want the +Z normal colour", got)
	}
}
