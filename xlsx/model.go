package xlsx

import (
	"fmt"
)

// Intermediate representation for XLSX.

// Pixel values are floats to allow fractional widths/heights.

// Edge is one side of a cell border as Excel stores it.
type Edge struct {
	Style string // Excel border style, e.g. "thin", "dashed"; empty or "none" for no border
	Color string // "RRGGBB"
}

// Present reports whether the edge draws anything.
func (e Edge) Present() bool { return e.Style != "" && e.Style != "none" }

// CellStyle captures the subset of Excel cell formatting a table can express.
// It is comparable so it can key a style map.
type CellStyle struct {
	FontFamily      string  // e.g. "Calibri"
	FontSizePt      float64 // original size in points
	FontColor       string  // "RRGGBB"
	BackgroundColor string  // "RRGGBB"
	HorizontalAlign string  // left|center|right|justify|...
	VerticalAlign   string  // top|middle|bottom
	WrapText        bool
	IndentPx        float64 // computed indent in pixels

	Left, Right, Top, Bottom Edge
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %f, FontColor: %s, BackgroundColor: %s, HorizontalAlign: %s, VerticalAlign: %s, WrapText: %t, IndentPx: %f, Borders: %v/%v/%v/%v",
		s.FontFamily, s.FontSizePt, s.FontColor, s.BackgroundColor, s.HorizontalAlign, s.VerticalAlign, s.WrapText, s.IndentPx, s.Left, s.Right, s.Top, s.Bottom)
}

// RenderCell is the IR for a single cell (or merged master).
type RenderCell struct {
	Ref     string    // e.g. "A1"
	Value   string    // already formatted value
	ColSpan int       // 1 if not merged
	RowSpan int       // 1 if not merged
	Style   CellStyle // resolved style
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %s, ColSpan: %d, RowSpan: %d, Style: %s", c.Ref, c.Value, c.ColSpan, c.RowSpan, c.Style.String())
}

// RenderRow represents one logical row in a sheet.
type RenderRow struct {
	HeightPx float64 // resolved height in px, 0 for rows absent from the sheet
	Hidden   bool
	Cells    []*RenderCell // length == column count of parent sheet; nil for blank cells
}

func (r RenderRow) String() string {
	return fmt.Sprintf("HeightPx: %f, Hidden: %t, Cells: %d", r.HeightPx, r.Hidden, len(r.Cells))
}

// RenderSheet is the intermediate representation of a worksheet.
type RenderSheet struct {
	Name      string
	ColWidths []float64   // per column pixel widths
	ColHidden []bool      // true if column hidden
	Rows      []RenderRow // in order
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, ColWidths: %v, ColHidden: %v, Rows: %d", s.Name, s.ColWidths, s.ColHidden, len(s.Rows))
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}
