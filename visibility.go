package tabledraw

// Pos is a grid position.
type Pos struct {
	Row, Col int
}

// VisibilityMap records which grid positions are primary (drawn) and which
// are covered by a spanning cell.
type VisibilityMap struct {
	rows, cols int
	hidden     []bool // row-major
}

// placement is a registered cell anchor with its clipped span.
type placement struct {
	pos  Pos
	span Span
}

// newVisibilityMap marks each placement's span rectangle hidden and then its
// anchor visible, in the given order. A later anchor therefore stays visible
// even when an earlier span covers it, and can hide an earlier anchor.
func newVisibilityMap(rows, cols int, placements []placement) *VisibilityMap {
	m := &VisibilityMap{rows: rows, cols: cols, hidden: make([]bool, rows*cols)}
	for _, p := range placements {
		for r := p.pos.Row; r < p.pos.Row+p.span.Rows; r++ {
			for c := p.pos.Col; c < p.pos.Col+p.span.Cols; c++ {
				m.hidden[r*cols+c] = true
			}
		}
		m.hidden[p.pos.Row*cols+p.pos.Col] = false
	}
	return m
}

// Visible reports whether row, col is a primary position.
func (m *VisibilityMap) Visible(row, col int) bool {
	return !m.hidden[row*m.cols+col]
}

// Positions returns the visible positions in row-major order.
func (m *VisibilityMap) Positions() []Pos {
	var out []Pos
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if !m.hidden[r*m.cols+c] {
				out = append(out, Pos{r, c})
			}
		}
	}
	return out
}
