package render

// Interpolated attributes carried across a triangle.
const (
	AttrDepth    = iota // NDC depth, linear in screen space
	AttrOneOverW        // 1/w
	AttrUOverW          // u/w
	AttrVOverW          // v/w
	AttrNormalX
	AttrNormalY
	AttrNormalZ
	AttrW // clip w, screen-linear approximation

	attrCount
)

// Gradients holds, for every attribute, its value at the three corners of a
// screen-space triangle and its derivative along screen X and Y. Vertices
// must already be perspective divided and sorted by Y.
type Gradients struct {
	values [attrCount][3]float64
	xStep  [attrCount]float64
	yStep  [attrCount]float64
}

// NewGradients computes the attribute planes of the triangle (minY, midY, maxY).
func NewGradients(minY, midY, maxY Vertex) *Gradients {
	g := &Gradients{}
	for i, v := range [3]Vertex{minY, midY, maxY} {
		oneOverW := 1 / v.Pos.W
		g.values[AttrDepth][i] = v.Pos.Z
		g.values[AttrOneOverW][i] = oneOverW
		g.values[AttrUOverW][i] = v.UV.X * oneOverW
		g.values[AttrVOverW][i] = v.UV.Y * oneOverW
		g.values[AttrNormalX][i] = v.Normal.X
		g.values[AttrNormalY][i] = v.Normal.Y
		g.values[AttrNormalZ][i] = v.Normal.Z
		g.values[AttrW][i] = v.Pos.W
	}

	// Cramer's rule on the plane through the three samples.
	dx1 := midY.Pos.X - maxY.Pos.X
	dy1 := midY.Pos.Y - maxY.Pos.Y
	dx0 := minY.Pos.X - maxY.Pos.X
	dy0 := minY.Pos.Y - maxY.Pos.Y
	oneOverDX := 1 / (dx1*dy0 - dx0*dy1)
	oneOverDY := -oneOverDX

	for a := range attrCount {
		v := g.values[a]
		g.xStep[a] = ((v[1]-v[2])*dy0 - (v[0]-v[2])*dy1) * oneOverDX
		g.yStep[a] = ((v[1]-v[2])*dx0 - (v[0]-v[2])*dx1) * oneOverDY
	}
	return g
}

// Value returns attribute a at corner i (0 = min Y, 1 = mid Y, 2 = max Y).
func (g *Gradients) Value(a, i int) float64 {
	return g.values[a][i]
}

// XStep returns d(attribute)/dx.
func (g *Gradients) XStep(a int) float64 {
	return g.xStep[a]
}

// YStep returns d(attribute)/dy.
func (g *Gradients) YStep(a int) float64 {
	return g.yStep[a]
}
