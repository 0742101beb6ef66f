package render

// ClipTriangle clips a clip-space triangle against the view volume and
// returns the resulting convex polygon as a triangle fan (0, i, i+1).
//
// A triangle fully inside is returned unchanged. A triangle whose polygon
// becomes empty on any plane yields nil.
func ClipTriangle(a, b, c Vertex) []Vertex {
	if a.InsideViewFrustum() && b.InsideViewFrustum() && c.InsideViewFrustum() {
		return []Vertex{a, b, c}
	}

	poly := make([]Vertex, 0, 9)
	poly = append(poly, a, b, c)
	scratch := make([]Vertex, 0, 9)

	for axis := range 3 {
		for _, factor := range [2]float64{1, -1} {
			poly, scratch = clipPolygonAxis(poly, scratch[:0], axis, factor), poly
			if len(poly) == 0 {
				return nil
			}
		}
	}
	return poly
}

// clipPolygonAxis keeps the part of in where factor*component(axis) <= w and
// appends it to out. in and out must not share storage.
func clipPolygonAxis(in, out []Vertex, axis int, factor float64) []Vertex {
	prev := in[len(in)-1]
	prevComp := prev.Pos.Component(axis) * factor
	prevInside := prevComp <= prev.Pos.W

	for _, cur := range in {
		curComp := cur.Pos.Component(axis) * factor
		curInside := curComp <= cur.Pos.W

		if curInside != prevInside {
			t := (prev.Pos.W - prevComp) / ((prev.Pos.W - prevComp) - (cur.Pos.W - curComp))
			out = append(out, prev.Lerp(cur, t))
		}
		if curInside {
			out = append(out, cur)
		}

		prev, prevComp, prevInside = cur, curComp, curInside
	}
	return out
}
