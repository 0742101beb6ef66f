package render

import "github.com/taigrr/scanline/pkg/math3d"

// pass runs every triangle of a set of meshes through transform, clipping,
// triangle setup and the span walker for one target and one shader.
type pass struct {
	viewProj math3d.Mat4
	normalM  math3d.Mat4
	screen   math3d.Mat4
	frustum  Frustum
	width    int
	height   int
	shader   spanShader
	stats    FrameStats
}

func newPass(viewProj, screen math3d.Mat4, width, height int, sh spanShader) *pass {
	return &pass{
		viewProj: viewProj,
		normalM:  math3d.Identity(),
		screen:   screen,
		frustum:  NewFrustumFromMatrix(viewProj),
		width:    width,
		height:   height,
		shader:   sh,
	}
}

// drawMesh submits every triangle of m, unless its bounds lie entirely
// outside the frustum.
func (p *pass) drawMesh(m MeshInstance) {
	p.stats.MeshesSubmitted++
	if b, ok := m.(BoundedMesh); ok && !p.frustum.IntersectAABB(b.Bounds()) {
		p.stats.MeshesCulled++
		return
	}
	if ts, ok := p.shader.(texturedShader); ok {
		ts.bindTexture(meshTexture(m))
	}
	for _, tri := range m.Triangles() {
		p.drawTriangle(tri[0], tri[1], tri[2])
	}
}

func (p *pass) drawTriangle(a, b, c Vertex) {
	p.stats.TrianglesSubmitted++

	a = a.Transform(p.viewProj, p.normalM)
	b = b.Transform(p.viewProj, p.normalM)
	c = c.Transform(p.viewProj, p.normalM)

	poly := ClipTriangle(a, b, c)
	if len(poly) == 0 {
		p.stats.TrianglesClipped++
		return
	}
	for i := 1; i+1 < len(poly); i++ {
		p.fillTriangle(poly[0], poly[i], poly[i+1])
	}
}

func (p *pass) toScreen(v Vertex) Vertex {
	v.Pos = p.screen.MulVec4(v.Pos).PerspectiveDivide()
	return v
}

// fillTriangle rejects back-facing and degenerate triangles, splits the rest
// at the middle vertex and walks both halves. Front faces wind counter-clockwise
// in NDC, so after the Y-down screen transform they have a negative area and
// anything with area >= 0 is culled.
func (p *pass) fillTriangle(v1, v2, v3 Vertex) {
	v1, v2, v3 = p.toScreen(v1), p.toScreen(v2), p.toScreen(v3)

	if v1.TriangleArea(v2, v3) >= 0 {
		p.stats.TrianglesCulled++
		return
	}
	p.stats.TrianglesDrawn++

	minY, midY, maxY := v1, v2, v3
	if maxY.Pos.Y < midY.Pos.Y {
		maxY, midY = midY, maxY
	}
	if midY.Pos.Y < minY.Pos.Y {
		midY, minY = minY, midY
	}
	if maxY.Pos.Y < midY.Pos.Y {
		maxY, midY = midY, maxY
	}

	g := NewGradients(minY, midY, maxY)
	topToBottom := NewEdge(g, minY, maxY, 0)
	topToMiddle := NewEdge(g, minY, midY, 0)
	middleToBottom := NewEdge(g, midY, maxY, 1)

	// The long edge is shared by both halves and keeps stepping across them.
	if minY.TriangleArea(maxY, midY) >= 0 {
		p.scanHalf(topToMiddle, topToBottom, topToMiddle)
		p.scanHalf(middleToBottom, topToBottom, middleToBottom)
	} else {
		p.scanHalf(topToBottom, topToMiddle, topToMiddle)
		p.scanHalf(topToBottom, middleToBottom, middleToBottom)
	}
}
