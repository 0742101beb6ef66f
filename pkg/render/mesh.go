package render

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// MeshInstance is what the renderer draws: world-space triangles plus the
// texture they sample. Triangles are counter-clockwise when seen from the
// front.
type MeshInstance interface {
	Triangles() [][3]Vertex
	Texture() *Texture
}

// BoundedMesh is a MeshInstance that can be culled as a whole.
type BoundedMesh interface {
	MeshInstance
	Bounds() AABB
}

var whiteTexture = SolidTexture(color.RGBA{255, 255, 255, 255})

// meshTexture returns m's texture, or plain white when it has none.
func meshTexture(m MeshInstance) *Texture {
	if t := m.Texture(); t != nil {
		return t
	}
	return whiteTexture
}

// TriangleList is the simplest MeshInstance.
type TriangleList struct {
	Tris []([3]Vertex)
	Tex  *Texture
}

func (l *TriangleList) Triangles() [][3]Vertex { return l.Tris }

func (l *TriangleList) Texture() *Texture { return l.Tex }

// Bounds returns the box around every vertex.
func (l *TriangleList) Bounds() AABB {
	var b AABB
	for i, tri := range l.Tris {
		for j, v := range tri {
			p := v.Pos.Vec3()
			if i == 0 && j == 0 {
				b = AABB{Min: p, Max: p}
				continue
			}
			b.Min = b.Min.Min(p)
			b.Max = b.Max.Max(p)
		}
	}
	return b
}

// Quad appends the two counter-clockwise triangles of the quad a, b, c, d
// (in counter-clockwise order) with UVs spanning the full texture.
func (l *TriangleList) Quad(a, b, c, d, normal math3d.Vec3) {
	va := NewVertex(a, math3d.V2(0, 1), normal)
	vb := NewVertex(b, math3d.V2(1, 1), normal)
	vc := NewVertex(c, math3d.V2(1, 0), normal)
	vd := NewVertex(d, math3d.V2(0, 0), normal)
	l.Tris = append(l.Tris, [3]Vertex{va, vb, vc}, [3]Vertex{va, vc, vd})
}
