package models

import (
	"sync"

	"github.com/google/uuid"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Instance places a Mesh in the world. Several instances may share one Mesh.
// It satisfies render.BoundedMesh.
type Instance struct {
	ID        uuid.UUID
	Name      string
	Mesh      *Mesh
	Transform math3d.Transform
	Tex       *render.Texture

	mu     sync.Mutex
	cached math3d.Transform
	tris   [][3]render.Vertex
}

// NewInstance places mesh at the origin.
func NewInstance(name string, mesh *Mesh) *Instance {
	return &Instance{
		ID:        uuid.New(),
		Name:      name,
		Mesh:      mesh,
		Transform: math3d.NewTransform(),
	}
}

// Triangles returns the mesh in world space. The result is rebuilt only when
// the transform changes; call Invalidate after editing the mesh itself.
func (in *Instance) Triangles() [][3]render.Vertex {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.tris != nil && in.cached == in.Transform {
		return in.tris
	}

	mat := in.Transform.Matrix()
	normalM := in.Transform.NormalMatrix()
	world := make([]render.Vertex, len(in.Mesh.Vertices))
	for i, v := range in.Mesh.Vertices {
		world[i] = render.NewVertex(v.Position, v.UV, v.Normal).Transform(mat, normalM)
	}

	tris := make([][3]render.Vertex, len(in.Mesh.Faces))
	for i, f := range in.Mesh.Faces {
		tris[i] = [3]render.Vertex{world[f.V[0]], world[f.V[1]], world[f.V[2]]}
	}
	in.tris = tris
	in.cached = in.Transform
	return tris
}

// Invalidate drops the cached world-space triangles.
func (in *Instance) Invalidate() {
	in.mu.Lock()
	in.tris = nil
	in.mu.Unlock()
}

func (in *Instance) Texture() *render.Texture { return in.Tex }

// Bounds returns the world-space box around the transformed mesh bounds.
func (in *Instance) Bounds() render.AABB {
	return in.Mesh.Bounds.Transform(in.Transform.Matrix())
}
