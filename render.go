package tabledraw

// State is the render lifecycle stage of a table.
type State uint8

const (
	// Unbuilt: no layout state exists. Tables rest here between renders.
	Unbuilt State = iota
	// Built: visibility map and border grid exist, grid lines are emitted.
	Built
	// Rendered: all primitives are emitted, layout state is about to be dropped.
	Rendered
)

func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case Rendered:
		return "rendered"
	}
	return "unbuilt"
}

// State returns the current lifecycle stage. Outside of a render pass it is
// always Unbuilt. Like the other render-time accessors it does not lock and
// is meant for custom cell content.
func (t *Table) State() State { return t.state }

// PlacedCell is a primary cell together with its anchor and effective span.
type PlacedCell struct {
	Pos  Pos
	Span Span
	Cell *Cell
}

// Render lays out the table and returns its primitives in drawing order:
// grid lines first, then for every primary cell in row-major order its
// background fill followed by its content. Rendering an unmodified table
// twice yields identical sequences.
//
// On error the partial output is discarded and the table is left Unbuilt.
func (t *Table) Render() ([]Primitive, error) {
	var rec Recorder
	if err := t.RenderTo(&rec); err != nil {
		return nil, err
	}
	return rec.Primitives(), nil
}

// RenderTo renders the table into s. Primitives are buffered and only
// played into s when the render pass succeeds.
func (t *Table) RenderTo(s Sink) error {
	if !t.mu.TryLock() {
		return ErrRenderInProgress
	}
	defer t.mu.Unlock()
	defer t.cleanup()

	var rec Recorder
	if err := t.build(&rec); err != nil {
		return err
	}
	if err := t.drawCells(&rec); err != nil {
		return err
	}
	t.state = Rendered

	Logger().Debug("tabledraw: table rendered",
		"rows", t.rows, "cols", t.cols, "cells", len(t.cells), "primitives", rec.Len())
	Playback(rec.Primitives(), s)
	return nil
}

// build resolves visibility, applies frame and cell borders and emits the
// grid lines.
func (t *Table) build(rec *Recorder) error {
	t.coords = NewCoordGrid(t.origin, t.rowHeights, t.colWidths)
	t.spans = make(map[Pos]Span, len(t.order))

	placements := make([]placement, 0, len(t.order))
	for _, p := range t.order {
		c := t.cellAt(p)
		span := t.clip(p, c.span, "cell")
		t.spans[p] = span
		placements = append(placements, placement{pos: p, span: span})
	}
	t.vis = newVisibilityMap(t.rows, t.cols, placements)

	def, err := t.styles.Get("default")
	if err != nil {
		return err
	}
	t.borders = newBorderGrid(t.rows, t.cols, def.Top, def.Left)

	for _, f := range t.frames {
		s, err := t.styles.Get(f.Style)
		if err != nil {
			return err
		}
		span := t.clip(f.Pos, f.Span, "frame")
		t.borders.ApplyRect(f.Pos.Row, f.Pos.Row+span.Rows, f.Pos.Col, f.Pos.Col+span.Cols, s)
	}

	for _, pc := range t.visibleCells() {
		s, err := t.styles.Get(pc.Cell.style)
		if err != nil {
			return err
		}
		bottom, right := pc.Pos.Row+pc.Span.Rows, pc.Pos.Col+pc.Span.Cols
		t.borders.ApplyRect(pc.Pos.Row, bottom, pc.Pos.Col, right, s)
		t.borders.SuppressInner(pc.Pos.Row, bottom, pc.Pos.Col, right)
	}

	t.state = Built
	t.borders.lines(t.coords, t.layers.Grid, rec.AddLine)
	return nil
}

// drawCells emits background and content of every primary cell.
func (t *Table) drawCells(rec *Recorder) error {
	for _, pc := range t.visibleCells() {
		s, err := t.styles.Get(pc.Cell.style)
		if err != nil {
			return err
		}
		box := t.coords.CellBox(pc.Pos.Row, pc.Pos.Col, pc.Span)
		if s.BgColor.IsSet() {
			rec.AddSolid(Solid{
				Points: []Point{
					{box.Left, box.Top},
					{box.Left, box.Bottom},
					{box.Right, box.Bottom},
					{box.Right, box.Top},
				},
				Color: s.BgColor,
				Layer: t.layers.Background,
			})
		}
		prims, err := Place(pc.Cell, box, s, t.layers.Content)
		if err != nil {
			return err
		}
		Playback(prims, rec)
	}
	return nil
}

// clip shortens span so it ends at the table edge.
func (t *Table) clip(p Pos, span Span, what string) Span {
	clipped := Span{min(span.Rows, t.rows-p.Row), min(span.Cols, t.cols-p.Col)}
	if clipped != span {
		Logger().Warn("tabledraw: span clipped at table edge",
			"what", what, "row", p.Row, "col", p.Col, "span", span.String(), "clipped", clipped.String())
	}
	return clipped
}

func (t *Table) visibleCells() []PlacedCell {
	positions := t.vis.Positions()
	out := make([]PlacedCell, 0, len(positions))
	for _, p := range positions {
		span, ok := t.spans[p]
		if !ok {
			span = One
		}
		out = append(out, PlacedCell{Pos: p, Span: span, Cell: t.cellAt(p)})
	}
	return out
}

func (t *Table) cleanup() {
	t.state = Unbuilt
	t.coords = nil
	t.vis = nil
	t.borders = nil
	t.spans = nil
}

// VisibleCells returns the primary cells in row-major order. It is only
// available while a render pass is running, e.g. from custom cell content.
func (t *Table) VisibleCells() ([]PlacedCell, error) {
	if t.vis == nil {
		return nil, ErrNotBuilt
	}
	return t.visibleCells(), nil
}

// Visible reports whether row, col is a primary position of the current
// render pass.
func (t *Table) Visible(row, col int) (bool, error) {
	if t.vis == nil {
		return false, ErrNotBuilt
	}
	if err := t.validate(row, col); err != nil {
		return false, err
	}
	return t.vis.Visible(row, col), nil
}

// HBorder returns the border style in effect for the horizontal segment
// above row, col (row in [0, rows], col in [0, cols)).
func (t *Table) HBorder(row, col int) (BorderStyle, error) {
	if t.borders == nil {
		return BorderStyle{}, ErrNotBuilt
	}
	if row < 0 || row > t.rows || col < 0 || col >= t.cols {
		return BorderStyle{}, ErrIndexOutOfRange
	}
	return t.borders.H(row, col), nil
}

// VBorder returns the border style in effect for the vertical segment left
// of col, row (row in [0, rows), col in [0, cols]).
func (t *Table) VBorder(row, col int) (BorderStyle, error) {
	if t.borders == nil {
		return BorderStyle{}, ErrNotBuilt
	}
	if row < 0 || row >= t.rows || col < 0 || col > t.cols {
		return BorderStyle{}, ErrIndexOutOfRange
	}
	return t.borders.V(row, col), nil
}
