// Package models holds indexed triangle meshes, the primitive shapes a scene
// can be built from, glTF loading, and placed mesh instances.
package models

import (
	"slices"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Mesh is an indexed triangle mesh in model space. Faces wind
// counter-clockwise when seen from the front.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounds encloses every vertex; refreshed by CalculateBounds.
	Bounds render.AABB
}

type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle given as indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes Bounds. An empty mesh keeps a zero box.
func (m *Mesh) CalculateBounds() {
	m.Bounds = render.AABB{}
	for i, v := range m.Vertices {
		if i == 0 {
			m.Bounds = render.NewAABB(v.Position, v.Position)
			continue
		}
		m.Bounds.Min = m.Bounds.Min.Min(v.Position)
		m.Bounds.Max = m.Bounds.Max.Max(v.Position)
	}
}

// Center is the midpoint of Bounds.
func (m *Mesh) Center() math3d.Vec3 {
	return m.Bounds.Min.Lerp(m.Bounds.Max, 0.5)
}

// Size is the extent of Bounds along each axis.
func (m *Mesh) Size() math3d.Vec3 {
	return m.Bounds.Max.Sub(m.Bounds.Min)
}

func (m *Mesh) TriangleCount() int { return len(m.Faces) }

func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// AddQuad appends the quad a, b, c, d (counter-clockwise around normal) as
// two triangles. UVs put a at the bottom-left and d at the top-left of the
// texture.
func (m *Mesh) AddQuad(a, b, c, d, normal math3d.Vec3) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices,
		MeshVertex{Position: a, Normal: normal, UV: math3d.V2(0, 1)},
		MeshVertex{Position: b, Normal: normal, UV: math3d.V2(1, 1)},
		MeshVertex{Position: c, Normal: normal, UV: math3d.V2(1, 0)},
		MeshVertex{Position: d, Normal: normal, UV: math3d.V2(0, 0)},
	)
	m.Faces = append(m.Faces,
		Face{V: [3]int{base, base + 1, base + 2}},
		Face{V: [3]int{base, base + 2, base + 3}},
	)
}

// faceNormal is the cross product of two edges of f; its length is twice
// the face area.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	a, b, c := m.Vertices[f.V[0]].Position, m.Vertices[f.V[1]].Position, m.Vertices[f.V[2]].Position
	return b.Sub(a).Cross(c.Sub(a))
}

// CalculateNormals gives every vertex the normal of a face that uses it.
// Vertices shared between faces keep the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		for _, i := range f.V {
			m.Vertices[i].Normal = n
		}
	}
}

// CalculateSmoothNormals averages the normals of the faces around each
// vertex, weighted by face area.
func (m *Mesh) CalculateSmoothNormals() {
	sums := make([]math3d.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, i := range f.V {
			sums[i] = sums[i].Add(n)
		}
	}
	for i, n := range sums {
		m.Vertices[i].Normal = n.Normalize()
	}
}

func (m *Mesh) hasNormals() bool {
	return slices.ContainsFunc(m.Vertices, func(v MeshVertex) bool {
		return v.Normal.LenSq() > 1e-6
	})
}

// Transform bakes t into the vertex positions and normals.
func (m *Mesh) Transform(t math3d.Transform) {
	pos, dir := t.Matrix(), t.NormalMatrix()
	for i, v := range m.Vertices {
		m.Vertices[i].Position = pos.MulVec3(v.Position)
		m.Vertices[i].Normal = dir.MulVec3Dir(v.Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone returns a deep copy that shares no slices with m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:     m.Name,
		Vertices: slices.Clone(m.Vertices),
		Faces:    slices.Clone(m.Faces),
		Bounds:   m.Bounds,
	}
}

// NewPlane returns a size x size square in the XZ plane facing +Y.
func NewPlane(size float64) *Mesh {
	h := size / 2
	m := NewMesh("plane")
	m.AddQuad(
		math3d.V3(-h, 0, h),
		math3d.V3(h, 0, h),
		math3d.V3(h, 0, -h),
		math3d.V3(-h, 0, -h),
		math3d.V3(0, 1, 0),
	)
	m.CalculateBounds()
	return m
}

// cubeFaces lists each face as normal, then two tangents u and v with
// u x v = normal so the corners come out counter-clockwise.
var cubeFaces = [6][3]math3d.Vec3{
	{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
	{{X: 0, Y: 0, Z: -1}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
	{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0}},
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},
	{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}},
	{{X: 0, Y: -1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},
}

// NewCube returns an axis-aligned cube of edge length size centred on the
// origin, with flat normals and a full texture on every face.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1].Scale(h), f[2].Scale(h)
		c := n.Scale(h)
		m.AddQuad(
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
			n,
		)
	}
	m.CalculateBounds()
	return m
}
