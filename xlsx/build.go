package xlsx

import (
	"fmt"
	"io"

	"github.com/aerissecure/tabledraw"
)

// DefaultUnitsPerPx scales an Excel default cell (64x20 px) to roughly
// 3.2x1.0 drawing units.
const DefaultUnitsPerPx = 0.05

type options struct {
	origin     tabledraw.Point
	unitsPerPx float64
	grid       bool
}

// Option configures how sheets are laid out as tables.
type Option func(*options)

// WithOrigin sets the top-left corner of every generated table.
func WithOrigin(p tabledraw.Point) Option {
	return func(o *options) { o.origin = p }
}

// WithUnitsPerPx sets the pixel to drawing unit scale.
func WithUnitsPerPx(f float64) Option {
	return func(o *options) { o.unitsPerPx = f }
}

// WithGrid draws the default grid under the sheet's own borders. Excel
// gridlines are not printed, so it is off by default.
func WithGrid(on bool) Option {
	return func(o *options) { o.grid = on }
}

func newOptions(opts []Option) options {
	o := options{unitsPerPx: DefaultUnitsPerPx}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tables parses the workbook in r and returns one table per worksheet.
func Tables(r io.ReaderAt, size int64, opts ...Option) ([]*tabledraw.Table, error) {
	m, err := ParseWorkbookModel(r, size)
	if err != nil {
		return nil, err
	}
	tables := make([]*tabledraw.Table, 0, len(m.Sheets))
	for _, sheet := range m.Sheets {
		t, err := BuildTable(sheet, opts...)
		if err != nil {
			return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet.Name, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// BuildTable lays out one sheet as a table. Merged ranges become spans,
// hidden rows and columns collapse to zero size and each distinct cell
// format becomes one named style.
func BuildTable(sheet RenderSheet, opts ...Option) (*tabledraw.Table, error) {
	o := newOptions(opts)
	t := tabledraw.New(o.origin, len(sheet.Rows), len(sheet.ColWidths), o.grid)

	for c, w := range sheet.ColWidths {
		if c < len(sheet.ColHidden) && sheet.ColHidden[c] {
			w = 0
		}
		if err := t.SetColWidth(c, w*o.unitsPerPx); err != nil {
			return nil, err
		}
	}

	styleMap := make(map[CellStyle]string) // CellStyle -> style name
	for r, row := range sheet.Rows {
		h := row.HeightPx
		switch {
		case row.Hidden:
			h = 0
		case h == 0:
			h = defaultRowPt * pxPerPt
		}
		if err := t.SetRowHeight(r, h*o.unitsPerPx); err != nil {
			return nil, err
		}

		for c, cell := range row.Cells {
			if cell == nil {
				continue
			}
			name, ok := styleMap[cell.Style]
			if !ok {
				name = fmt.Sprintf("cellstyle%d", len(styleMap)+1)
				if _, err := t.DefineStyle(name, "default", styleOptions(cell.Style, o.unitsPerPx)...); err != nil {
					return nil, err
				}
				styleMap[cell.Style] = name
			}
			span := tabledraw.Span{Rows: max(cell.RowSpan, 1), Cols: max(cell.ColSpan, 1)}
			if _, err := t.TextCell(r, c, cell.Value, span, name); err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell.Ref, err)
			}
		}
	}

	tabledraw.Logger().Debug("xlsx: sheet laid out",
		"sheet", sheet.Name, "rows", len(sheet.Rows), "cols", len(sheet.ColWidths), "styles", len(styleMap))
	return t, nil
}

func styleOptions(s CellStyle, unitsPerPx float64) []tabledraw.StyleOption {
	opts := []tabledraw.StyleOption{
		tabledraw.WithAlign(hAlign(s.HorizontalAlign), vAlign(s.VerticalAlign)),
	}
	if s.IndentPx > 0 {
		opts = append(opts, tabledraw.WithMargins(tabledraw.DefaultMargin+s.IndentPx*unitsPerPx, tabledraw.DefaultMargin))
	}

	height := tabledraw.DefaultTextHeight
	if s.FontSizePt > 0 {
		height = s.FontSizePt * pxPerPt * unitsPerPx
	}
	color := tabledraw.ByLayer
	if c, ok := tabledraw.NearestColor(s.FontColor); ok {
		color = c
	}
	opts = append(opts, tabledraw.WithText(height, tabledraw.DefaultLineSpacing, color))

	if c, ok := tabledraw.NearestColor(s.BackgroundColor); ok {
		opts = append(opts, tabledraw.WithBackground(c))
	}

	for _, e := range []struct {
		edge                     Edge
		left, right, top, bottom bool
	}{
		{s.Left, true, false, false, false},
		{s.Right, false, true, false, false},
		{s.Top, false, false, true, false},
		{s.Bottom, false, false, false, true},
	} {
		if b, ok := borderStyle(e.edge); ok {
			opts = append(opts, tabledraw.WithBorder(b, e.left, e.right, e.top, e.bottom))
		}
	}
	return opts
}

func hAlign(s string) tabledraw.HAlign {
	switch s {
	case "center", "centerContinuous", "distributed":
		return tabledraw.AlignCenter
	case "right":
		return tabledraw.AlignRight
	default:
		return tabledraw.AlignLeft
	}
}

func vAlign(s string) tabledraw.VAlign {
	switch s {
	case "top":
		return tabledraw.AlignTop
	case "middle":
		return tabledraw.AlignMiddle
	default:
		return tabledraw.AlignBottom
	}
}

// borderStyle maps an Excel edge to a border that covers the default grid.
func borderStyle(e Edge) (tabledraw.BorderStyle, bool) {
	if !e.Present() {
		return tabledraw.BorderStyle{}, false
	}
	color := tabledraw.White
	if c, ok := tabledraw.NearestColor(e.Color); ok {
		color = c
	}
	var lineType string
	switch e.Style {
	case "dashed", "mediumDashed":
		lineType = "DASHED"
	case "dotted", "hair":
		lineType = "DOT"
	case "dashDot", "mediumDashDot", "slantDashDot":
		lineType = "DASHDOT"
	case "dashDotDot", "mediumDashDotDot":
		lineType = "DIVIDE"
	}
	return tabledraw.NewBorderStyle(color, true, tabledraw.DefaultNewBorderPriority, lineType), true
}
