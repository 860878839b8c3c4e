package docx

import (
	"fmt"
)

// Intermediate representation (IR) for the tables of a DOCX document.
//
// All colours are expressed as 6-character RGB hex strings without the leading
// "#" (e.g. "FF0000" for red).

// Vertical merge states of a table cell (w:vMerge).
const (
	MergeNone     = ""
	MergeRestart  = "restart"
	MergeContinue = "continue"
)

// TableCellStyle represents the cell properties a table layout can express.
type TableCellStyle struct {
	BackgroundColor string // fill colour - "RRGGBB"
	VerticalAlign   string // "top" | "middle" | "bottom"
	Alignment       string // paragraph justification of the first paragraph
}

func (s TableCellStyle) String() string {
	return fmt.Sprintf("BackgroundColor: %s, VerticalAlign: %s, Alignment: %s", s.BackgroundColor, s.VerticalAlign, s.Alignment)
}

// RenderTableCell is the IR for a single table cell.
type RenderTableCell struct {
	Col     int    // first grid column the cell occupies
	Text    string // paragraphs joined by newlines
	ColSpan int    // 1 if not horizontally merged
	VMerge  string // MergeNone, MergeRestart or MergeContinue
	Style   TableCellStyle
}

func (c RenderTableCell) String() string {
	return fmt.Sprintf("Col: %d, Text: %q, ColSpan: %d, VMerge: %q, Style: [%s]", c.Col, c.Text, c.ColSpan, c.VMerge, c.Style.String())
}

// RenderTableRow represents a row within a table.
type RenderTableRow struct {
	Cells []RenderTableCell
}

func (r RenderTableRow) String() string {
	return fmt.Sprintf("Cells: %d", len(r.Cells))
}

// RenderTable is the IR for a table - rows in order.
type RenderTable struct {
	Rows []RenderTableRow
}

// Cols returns the number of grid columns the widest row covers.
func (t RenderTable) Cols() int {
	n := 0
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			n = max(n, c.Col+max(c.ColSpan, 1))
		}
	}
	return n
}

func (t RenderTable) String() string {
	return fmt.Sprintf("Rows: %d, Cols: %d", len(t.Rows), t.Cols())
}

// DocumentModel holds the body tables in document order.
type DocumentModel struct {
	Tables []RenderTable
}

func (d DocumentModel) String() string {
	return fmt.Sprintf("Tables: %d", len(d.Tables))
}
