package tabledraw

import (
	"fmt"
	"slices"
	"sync"
)

// Default layer names of a new table.
const (
	DefaultBackgroundLayer = "TABLEBACKGROUND"
	DefaultContentLayer    = "TABLECONTENT"
	DefaultGridLayer       = "TABLEGRID"
)

// Layers names the layers a table draws on.
type Layers struct {
	Background string // cell fills
	Content    string // text and block references
	Grid       string // border lines
}

// Frame draws the border of a Style around a block of cells, independent of
// the cells occupying it.
type Frame struct {
	Pos   Pos
	Span  Span
	Style string
}

func (f Frame) String() string {
	return fmt.Sprintf("Pos: %d/%d, Span: %s, Style: %s", f.Pos.Row, f.Pos.Col, f.Span, f.Style)
}

// Table is an HTML-table like grid of cells that renders to lines, fills,
// text and block references.
//
// A table is reusable across renders and safe for concurrent use.
// Registration methods, the read accessors and Render exclude each other,
// and Render fails with ErrRenderInProgress instead of waiting. The style
// registry carries its own lock. Custom cell content is produced while the
// table is held: it may call Style and the render-time accessors (State,
// Visible, VisibleCells, HBorder, VBorder) but no other Table method.
type Table struct {
	mu sync.Mutex

	origin     Point
	rows, cols int
	rowHeights []float64
	colWidths  []float64
	layers     Layers
	styles     *Styles

	arena  []Cell         // cells by CellID
	cells  map[Pos]CellID // occupied positions
	order  []Pos          // registration order of cells
	frames []Frame

	// transient render state, nil outside a render pass
	state   State
	coords  *CoordGrid
	vis     *VisibilityMap
	borders *BorderGrid
	spans   map[Pos]Span
}

// New returns a table of rows x cols cells with its top-left corner at
// origin. With defaultGrid false the default style's borders are hidden, so
// only explicitly declared borders are drawn.
func New(origin Point, rows, cols int, defaultGrid bool) *Table {
	rows, cols = max(0, rows), max(0, cols)
	t := &Table{
		origin:     origin,
		rows:       rows,
		cols:       cols,
		rowHeights: make([]float64, rows),
		colWidths:  make([]float64, cols),
		layers: Layers{
			Background: DefaultBackgroundLayer,
			Content:    DefaultContentLayer,
			Grid:       DefaultGridLayer,
		},
		styles: NewStyles(),
		cells:  make(map[Pos]CellID),
	}
	for i := range t.rowHeights {
		t.rowHeights[i] = DefaultRowHeight
	}
	for i := range t.colWidths {
		t.colWidths[i] = DefaultColWidth
	}
	if !defaultGrid {
		// cannot fail, "default" always exists
		_ = t.styles.Update("default", func(s *Style) { s.SetBorderStatus(false, false, false, false) })
	}
	return t
}

func (t *Table) Rows() int     { return t.rows }
func (t *Table) Cols() int     { return t.cols }
func (t *Table) Origin() Point { return t.origin }

// Styles returns the table's style registry. The registry is shared, not
// copied; a style changed while a render runs may or may not be seen by it.
func (t *Table) Styles() *Styles { return t.styles }

// Layers returns the layer names used by the table.
func (t *Table) Layers() Layers {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layers
}

// SetLayers replaces the layer names used by the table.
func (t *Table) SetLayers(l Layers) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.layers = l
}

func (t *Table) validRow(row int) error {
	if row < 0 || row >= t.rows {
		return fmt.Errorf("%w: row %d not in [0, %d)", ErrIndexOutOfRange, row, t.rows)
	}
	return nil
}

func (t *Table) validCol(col int) error {
	if col < 0 || col >= t.cols {
		return fmt.Errorf("%w: column %d not in [0, %d)", ErrIndexOutOfRange, col, t.cols)
	}
	return nil
}

func (t *Table) validate(row, col int) error {
	if err := t.validRow(row); err != nil {
		return err
	}
	return t.validCol(col)
}

// SetRowHeight sets the height of row in drawing units.
func (t *Table) SetRowHeight(row int, height float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.validRow(row); err != nil {
		return err
	}
	t.rowHeights[row] = height
	return nil
}

// SetColWidth sets the width of col in drawing units.
func (t *Table) SetColWidth(col int, width float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.validCol(col); err != nil {
		return err
	}
	t.colWidths[col] = width
	return nil
}

// RowHeights returns a copy of the row heights.
func (t *Table) RowHeights() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.rowHeights)
}

// ColWidths returns a copy of the column widths.
func (t *Table) ColWidths() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.colWidths)
}

// DefineStyle creates style name as a copy of base ("" means "default") with
// opts applied.
func (t *Table) DefineStyle(name, base string, opts ...StyleOption) (Style, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.styles.Define(name, base, opts...)
}

// UpdateStyle applies opts to the existing style name.
func (t *Table) UpdateStyle(name string, opts ...StyleOption) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.styles.Update(name, opts...)
}

// Style returns a copy of the named style. It only takes the registry lock,
// so custom cell content may call it during a render.
func (t *Table) Style(name string) (Style, error) {
	return t.styles.Get(name)
}

// AddCell stores c without placing it and returns its handle.
func (t *Table) AddCell(c Cell) CellID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addCell(c)
}

func (t *Table) addCell(c Cell) CellID {
	t.arena = append(t.arena, c)
	return CellID(len(t.arena) - 1)
}

// PlaceCell puts the stored cell id at row, col, replacing any cell there.
func (t *Table) PlaceCell(row, col int, id CellID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) < 0 || int(id) >= len(t.arena) {
		return fmt.Errorf("%w: %d", ErrUnknownCell, id)
	}
	if err := t.validate(row, col); err != nil {
		return err
	}
	t.place(Pos{row, col}, id)
	return nil
}

func (t *Table) place(p Pos, id CellID) {
	if _, ok := t.cells[p]; ok {
		t.order = slices.DeleteFunc(t.order, func(q Pos) bool { return q == p })
	}
	t.cells[p] = id
	t.order = append(t.order, p)
}

// SetCell stores c and places it at row, col.
func (t *Table) SetCell(row, col int, c Cell) (CellID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.validate(row, col); err != nil {
		return 0, err
	}
	id := t.addCell(c)
	t.place(Pos{row, col}, id)
	return id, nil
}

// TextCell places a text cell at row, col. text may hold several lines
// separated by '\n'.
func (t *Table) TextCell(row, col int, text string, span Span, style string) (CellID, error) {
	return t.SetCell(row, col, NewTextCell(text, span, style))
}

// BlockCell places a block reference cell at row, col. def must not be nil.
func (t *Table) BlockCell(row, col int, def *BlockDef, attribs map[string]any, span Span, style string) (CellID, error) {
	if def == nil {
		return 0, fmt.Errorf("%w: block cell without definition", ErrUnsupportedContent)
	}
	return t.SetCell(row, col, NewBlockCell(def, attribs, span, style))
}

// CustomCell places a cell whose primitives come from content.
func (t *Table) CustomCell(row, col int, content Content, span Span, style string) (CellID, error) {
	return t.SetCell(row, col, NewCustomCell(content, span, style))
}

// Cell returns the cell at row, col, or the shared empty cell if the
// position is unoccupied.
func (t *Table) Cell(row, col int) (*Cell, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.validate(row, col); err != nil {
		return nil, err
	}
	return t.cellAt(Pos{row, col}), nil
}

func (t *Table) cellAt(p Pos) *Cell {
	if id, ok := t.cells[p]; ok {
		return &t.arena[id]
	}
	return emptyCell
}

// Frame declares a border frame of style around the block starting at
// row, col covering height rows and width columns.
func (t *Table) Frame(row, col, height, width int, style string) (Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.validate(row, col); err != nil {
		return Frame{}, err
	}
	if style == "" {
		style = "default"
	}
	f := Frame{Pos: Pos{row, col}, Span: Span{height, width}.normalized(), Style: style}
	t.frames = append(t.frames, f)
	return f, nil
}

// Frames returns the declared frames in application order.
func (t *Table) Frames() []Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.frames)
}

func (t *Table) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("Rows: %d, Cols: %d, Origin: %s, Cells: %d, Frames: %d, Styles: %v",
		t.rows, t.cols, t.origin, len(t.cells), len(t.frames), t.styles.Names())
}
