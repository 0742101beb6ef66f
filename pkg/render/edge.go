package render

import "math"

// Edge walks one triangle side one scanline at a time, carrying the current
// X position and every interpolated attribute.
//
// An Edge is created and consumed inside a single triangle fill; it is never
// shared between goroutines.
type Edge struct {
	X      float64
	YStart int // first covered scanline
	YEnd   int // one past the last covered scanline

	xStep  float64
	values [attrCount]float64
	steps  [attrCount]float64
}

// NewEdge builds the edge from start to end (start.Y <= end.Y). index selects
// which corner of g start is, so the attribute values can be pre-stepped from
// it to the first scanline centre.
func NewEdge(g *Gradients, start, end Vertex, index int) *Edge {
	e := &Edge{
		YStart: int(math.Ceil(start.Pos.Y)),
		YEnd:   int(math.Ceil(end.Pos.Y)),
	}

	yDist := end.Pos.Y - start.Pos.Y
	xDist := end.Pos.X - start.Pos.X
	yPrestep := float64(e.YStart) - start.Pos.Y
	if yDist != 0 {
		e.xStep = xDist / yDist
	}
	e.X = start.Pos.X + yPrestep*e.xStep
	xPrestep := e.X - start.Pos.X

	for a := range attrCount {
		e.values[a] = g.Value(a, index) + g.XStep(a)*xPrestep + g.YStep(a)*yPrestep
		e.steps[a] = g.YStep(a) + g.XStep(a)*e.xStep
	}
	return e
}

// Value returns the current value of attribute a.
func (e *Edge) Value(a int) float64 {
	return e.values[a]
}

// Step advances the edge to the next scanline.
func (e *Edge) Step() {
	e.X += e.xStep
	for a := range attrCount {
		e.values[a] += e.steps[a]
	}
}
