package models

import (
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestPrimitiveWinding(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		vertices  int
		faces     int
		boundsMin math3d.Vec3
		boundsMax math3d.Vec3
	}{
		{"plane", NewPlane(4), 4, 2, math3d.V3(-2, 0, -2), math3d.V3(2, 0, 2)},
		{"cube", NewCube(2), 24, 12, math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.mesh
			if m.VertexCount() != tc.vertices || m.TriangleCount() != tc.faces {
				t.Fatalf("got %d vertices / %d faces, want %d / %d",
					m.VertexCount(), m.TriangleCount(), tc.vertices, tc.faces)
			}
			if !m.Bounds.Min.ApproxEqual(tc.boundsMin, 1e-12) || !m.Bounds.Max.ApproxEqual(tc.boundsMax, 1e-12) {
				t.Errorf("bounds = %v..%v, want %v..%v", m.Bounds.Min, m.Bounds.Max, tc.boundsMin, tc.boundsMax)
			}
			// Counter-clockwise faces have a geometric normal that agrees
			// with the stored one.
			for i, f := range m.Faces {
				geo := m.faceNormal(f).Normalize()
				stored := m.Vertices[f.V[0]].Normal
				if !geo.ApproxEqual(stored, 1e-9) {
					t.Errorf("face %d: winding normal %v, stored %v", i, geo, stored)
				}
			}
		})
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	m := NewCube(1)
	for i, f := range m.Faces {
		v := m.Vertices[f.V[0]]
		if v.Position.Dot(v.Normal) <= 0 {
			t.Errorf("face %d normal %v points inward", i, v.Normal)
		}
	}
}

func TestCalculateNormals(t *testing.T) {
	m := NewPlane(2)
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}
	if m.hasNormals() {
		t.Fatal("hasNormals after clearing")
	}

	m.CalculateNormals()
	for i, v := range m.Vertices {
		if !v.Normal.ApproxEqual(math3d.V3(0, 1, 0), 1e-12) {
			t.Errorf("flat normal %d = %v, want +Y", i, v.Normal)
		}
	}

	m.CalculateSmoothNormals()
	for i, v := range m.Vertices {
		if !v.Normal.ApproxEqual(math3d.V3(0, 1, 0), 1e-12) {
			t.Errorf("smooth normal %d = %v, want +Y", i, v.Normal)
		}
	}
}

func TestMeshTransform(t *testing.T) {
	m := NewPlane(2)
	m.Transform(math3d.NewTransform().
		WithPosition(math3d.V3(0, 3, 0)).
		WithRotation(math3d.QuatAxisAngle(math3d.V3(1, 0, 0), 3.141592653589793)))

	if got := m.Center(); !got.ApproxEqual(math3d.V3(0, 3, 0), 1e-9) {
		t.Errorf("center = %v, want (0,3,0)", got)
	}
	if got := m.Vertices[0].Normal; !got.ApproxEqual(math3d.V3(0, -1, 0), 1e-9) {
		t.Errorf("normal = %v, want -Y", got)
	}
}

func TestMeshClone(t *testing.T) {
	m := NewCube(1)
	c := m.Clone()
	c.Vertices[0].Position = math3d.V3(9, 9, 9)
	c.Faces[0].V[0] = 5
	if m.Vertices[0].Position.X == 9 || m.Faces[0].V[0] == 5 {
		t.Error("Clone shares storage with the original")
	}
	if c.Size() != m.Size() {
		t.Errorf("clone size = %v, want %v", c.Size(), m.Size())
	}
}
