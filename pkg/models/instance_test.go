package models

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestInstanceTriangles(t *testing.T) {
	in := NewInstance("floor", NewPlane(2))
	in.Transform = in.Transform.
		WithPosition(math3d.V3(5, 0, 0)).
		WithScale(math3d.V3(2, 1, 2))

	tris := in.Triangles()
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	first := tris[0][0]
	if got := first.Pos.Vec3(); !got.ApproxEqual(math3d.V3(3, 0, 2), 1e-12) {
		t.Errorf("corner = %v, want (3,0,2)", got)
	}
	if first.Pos.W != 1 {
		t.Errorf("W = %v, want 1", first.Pos.W)
	}
	if !first.Normal.ApproxEqual(math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("normal = %v, want +Y", first.Normal)
	}

	if again := in.Triangles(); &again[0] != &tris[0] {
		t.Error("unchanged transform rebuilt the triangles")
	}
	in.Transform = in.Transform.Translate(math3d.V3(0, 1, 0))
	if moved := in.Triangles(); moved[0][0].Pos.Y != 1 {
		t.Errorf("moved Y = %v, want 1", moved[0][0].Pos.Y)
	}
}

func TestInstanceInvalidate(t *testing.T) {
	in := NewInstance("cube", NewCube(1))
	before := in.Triangles()
	in.Mesh.Vertices[0].Position = math3d.V3(7, 7, 7)
	in.Invalidate()
	after := in.Triangles()
	if after[0][0].Pos.X != 7 {
		t.Errorf("Invalidate kept stale geometry: %v", after[0][0].Pos)
	}
	if before[0][0].Pos.X == 7 {
		t.Error("old triangles were mutated in place")
	}
}

func TestInstanceBounds(t *testing.T) {
	in := NewInstance("cube", NewCube(2))
	in.Transform = in.Transform.
		WithPosition(math3d.V3(0, 0, -10)).
		WithRotation(math3d.QuatAxisAngle(math3d.V3(0, 1, 0), math.Pi/4))

	b := in.Bounds()
	r := math.Sqrt2
	if !b.Min.ApproxEqual(math3d.V3(-r, -1, -10-r), 1e-9) || !b.Max.ApproxEqual(math3d.V3(r, 1, -10+r), 1e-9) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
}

func TestInstanceRenders(t *testing.T) {
	r, err := render.NewRenderer(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	cam := render.NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))

	in := NewInstance("cube", NewCube(2))
	bm, err := r.Render(cam, nil, []render.MeshInstance{in}, render.ModeNormal, render.DefaultIllumination())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// The camera sees the +Z face head on.
	if got := bm.GetPixel(16, 16); got.R != 127 || got.G != 127 || got.B != 255 {
		t.Errorf("centre = %v, want the +Z normal colour", got)
	}
	if r.Stats.TrianglesDrawn == 0 || r.Stats.TrianglesCulled == 0 {
		t.Errorf("stats = %+v, want drawn front faces and culled back faces", r.Stats)
	}
}
