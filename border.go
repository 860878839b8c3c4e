package tabledraw

import "math"

// noBorder erases grid lines inside a spanning cell. Its priority is the
// largest possible, so nothing applied later in the same pass covers it
// except another suppression.
var noBorder = BorderStyle{Visible: false, Color: ByBlock, Priority: math.MaxInt}

// BorderGrid keeps, for every grid line segment, the border style with the
// highest priority applied so far.
//
// Horizontal segments are addressed by (row, col) with row in [0, rows] and
// col in [0, cols): the segment above row spanning column col. Vertical
// segments are addressed by (row, col) with row in [0, rows) and col in
// [0, cols]: the segment left of col spanning row row. Both arrays share the
// index row*(cols+1)+col and are sized (rows+1)*(cols+1); the unused tail
// entries of each array are never read.
type BorderGrid struct {
	rows, cols int
	h, v       []BorderStyle
}

func newBorderGrid(rows, cols int, h, v BorderStyle) *BorderGrid {
	n := (rows + 1) * (cols + 1)
	g := &BorderGrid{rows: rows, cols: cols, h: make([]BorderStyle, n), v: make([]BorderStyle, n)}
	for i := 0; i < n; i++ {
		g.h[i] = h
		g.v[i] = v
	}
	return g
}

func (g *BorderGrid) index(row, col int) int { return row*(g.cols+1) + col }

// set stores b unless the slot already holds a strictly higher priority.
// Equal priorities let the later writer win.
func set(slots []BorderStyle, i int, b BorderStyle) {
	if b.Priority >= slots[i].Priority {
		slots[i] = b
	}
}

// SetH applies b to the horizontal segment above row, col.
func (g *BorderGrid) SetH(row, col int, b BorderStyle) { set(g.h, g.index(row, col), b) }

// SetV applies b to the vertical segment left of col, row.
func (g *BorderGrid) SetV(row, col int, b BorderStyle) { set(g.v, g.index(row, col), b) }

// H returns the horizontal segment above row, col.
func (g *BorderGrid) H(row, col int) BorderStyle { return g.h[g.index(row, col)] }

// V returns the vertical segment left of col, row.
func (g *BorderGrid) V(row, col int) BorderStyle { return g.v[g.index(row, col)] }

// ApplyRect applies the four borders of s to the outline of the rectangle
// spanning rows [top, bottom) and columns [left, right).
func (g *BorderGrid) ApplyRect(top, bottom, left, right int, s Style) {
	for col := left; col < right; col++ {
		g.SetH(top, col, s.Top)
		g.SetH(bottom, col, s.Bottom)
	}
	for row := top; row < bottom; row++ {
		g.SetV(row, left, s.Left)
		g.SetV(row, right, s.Right)
	}
}

// SuppressInner hides every segment strictly inside the rectangle spanning
// rows [top, bottom) and columns [left, right).
func (g *BorderGrid) SuppressInner(top, bottom, left, right int) {
	for row := top + 1; row < bottom; row++ {
		for col := left; col < right; col++ {
			g.SetH(row, col, noBorder)
		}
	}
	for row := top; row < bottom; row++ {
		for col := left + 1; col < right; col++ {
			g.SetV(row, col, noBorder)
		}
	}
}

// lines emits one Line per visible segment: horizontal segments row by row,
// then vertical segments column by column.
func (g *BorderGrid) lines(cg *CoordGrid, layer string, emit func(Line)) {
	line := func(start, end Point, b BorderStyle) {
		if !b.Visible {
			return
		}
		emit(Line{Start: start, End: end, Color: b.Color, Layer: layer, LineType: b.LineType})
	}
	for row := 0; row <= g.rows; row++ {
		y := cg.Y(row)
		for col := 0; col < g.cols; col++ {
			line(Point{cg.X(col), y}, Point{cg.X(col + 1), y}, g.H(row, col))
		}
	}
	for col := 0; col <= g.cols; col++ {
		x := cg.X(col)
		for row := 0; row < g.rows; row++ {
			line(Point{x, cg.Y(row)}, Point{x, cg.Y(row + 1)}, g.V(row, col))
		}
	}
}
