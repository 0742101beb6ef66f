package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// BenchmarkAABBIntersection benchmarks AABB vs frustum intersection test.
func BenchmarkAABBIntersection(b *testing.B) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	frustum := NewFrustumFromMatrix(proj)

	visibleBounds := NewAABB(math3d.V3(-1, -1, -15), math3d.V3(1, 1, -5))
	b.Run("visible", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectAABB(visibleBounds)
		}
	})

	culledBounds := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 15))
	b.Run("culled", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectAABB(culledBounds)
		}
	})
}

// scatteredQuads places count floor tiles around the origin; about half lie
// behind a camera at (0,10,20) looking at the origin.
func scatteredQuads(count int) []MeshInstance {
	rng := rand.New(rand.NewSource(42))
	meshes := make([]MeshInstance, count)
	for i := range meshes {
		var z float64
		if i%2 == 0 {
			z = rng.Float64()*30 - 40
		} else {
			z = rng.Float64()*20 + 25
		}
		x := rng.Float64()*40 - 20
		meshes[i] = upQuad(math3d.V3(x, 0, z), 1)
	}
	return meshes
}

// unbounded hides Bounds so the renderer cannot cull the mesh as a whole.
type unbounded struct{ MeshInstance }

// BenchmarkMeshCulling compares frames with and without whole-mesh culling.
func BenchmarkMeshCulling(b *testing.B) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 10, 20))
	cam.LookAt(math3d.Zero3())
	r, _ := NewRenderer(160, 120)

	meshes := scatteredQuads(100)
	plain := make([]MeshInstance, len(meshes))
	for i, m := range meshes {
		plain[i] = unbounded{m}
	}

	b.Run("with_culling", func(b *testing.B) {
		for b.Loop() {
			_, _ = r.Render(cam, nil, meshes, ModeDepth, Illumination{})
		}
	})
	b.Run("without_culling", func(b *testing.B) {
		for b.Loop() {
			_, _ = r.Render(cam, nil, plain, ModeDepth, Illumination{})
		}
	})
}
