package tabledraw

// CoordGrid holds the absolute positions of every row and column boundary.
// x grows rightwards from the origin, rows extend towards negative y.
type CoordGrid struct {
	xs []float64 // len cols+1
	ys []float64 // len rows+1
}

// NewCoordGrid prefix-sums colWidths rightwards from origin.X and rowHeights
// downwards from origin.Y.
func NewCoordGrid(origin Point, rowHeights, colWidths []float64) *CoordGrid {
	return &CoordGrid{
		xs: prefixSum(origin.X, colWidths, 1),
		ys: prefixSum(origin.Y, rowHeights, -1),
	}
}

func prefixSum(start float64, steps []float64, sign float64) []float64 {
	out := make([]float64, 0, len(steps)+1)
	pos := start
	out = append(out, pos)
	for _, s := range steps {
		pos += s * sign
		out = append(out, pos)
	}
	return out
}

// X returns the x position of the boundary left of col, col in [0, cols].
func (g *CoordGrid) X(col int) float64 { return g.xs[col] }

// Y returns the y position of the boundary above row, row in [0, rows].
func (g *CoordGrid) Y(row int) float64 { return g.ys[row] }

// CellBox returns the rectangle covered by a cell anchored at row, col.
func (g *CoordGrid) CellBox(row, col int, span Span) Box {
	return Box{
		Left:   g.xs[col],
		Right:  g.xs[col+span.Cols],
		Top:    g.ys[row],
		Bottom: g.ys[row+span.Rows],
	}
}
