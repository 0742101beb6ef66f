package render

import "math"

// spanShader is the per-pixel half of a shading mode. The span walker owns
// scanline bounds and attribute stepping; the shader decides what a covered
// pixel writes.
type spanShader interface {
	// attributes lists the attributes the shader reads; only these are
	// interpolated across a span.
	attributes() []int
	// shade is called for every covered pixel. edge is true for the first
	// and last pixel of the span.
	shade(x, y int, v *[attrCount]float64, edge bool)
}

// texturedShader is implemented by shaders that sample the mesh texture.
type texturedShader interface {
	bindTexture(t *Texture)
}

// scanHalf fills the rows covered by yRange between the left and right edges,
// stepping both edges once per row.
func (p *pass) scanHalf(left, right, yRange *Edge) {
	for y := yRange.YStart; y < yRange.YEnd; y++ {
		if y >= 0 && y < p.height {
			p.span(left, right, y)
		}
		left.Step()
		right.Step()
	}
}

// span walks the pixels [ceil(left.X), ceil(right.X)) of row y.
func (p *pass) span(left, right *Edge, y int) {
	xMin := int(math.Ceil(left.X))
	xMax := int(math.Ceil(right.X))
	xDist := right.X - left.X
	if xMax <= xMin || xDist <= 0 {
		return
	}

	attrs := p.shader.attributes()
	var values, steps [attrCount]float64
	for _, a := range attrs {
		steps[a] = (right.Value(a) - left.Value(a)) / xDist
	}

	start := max(xMin, 0)
	end := min(xMax, p.width)
	xPrestep := float64(start) - left.X
	for _, a := range attrs {
		values[a] = left.Value(a) + steps[a]*xPrestep
	}

	for x := start; x < end; x++ {
		p.shader.shade(x, y, &values, x == xMin || x == xMax-1)
		for _, a := range attrs {
			values[a] += steps[a]
		}
	}
}
