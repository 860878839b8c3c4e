package docx

import (
	"fmt"

	"github.com/aerissecure/tabledraw"
)

// BuildTable lays out one document table. Horizontal merges (gridSpan)
// become column spans and vertical merge chains become row spans.
func BuildTable(rt RenderTable, opts ...Option) (*tabledraw.Table, error) {
	o := newOptions(opts)
	rows, cols := len(rt.Rows), rt.Cols()
	t := tabledraw.New(o.origin, rows, cols, o.grid)
	for r := 0; r < rows; r++ {
		if err := t.SetRowHeight(r, o.rowHeight); err != nil {
			return nil, err
		}
	}
	for c := 0; c < cols; c++ {
		if err := t.SetColWidth(c, o.colWidth); err != nil {
			return nil, err
		}
	}

	covered := make(map[tabledraw.Pos]bool)
	styleMap := make(map[TableCellStyle]string)
	for r, row := range rt.Rows {
		for _, cell := range row.Cells {
			pos := tabledraw.Pos{Row: r, Col: cell.Col}
			if covered[pos] {
				continue
			}
			span := tabledraw.Span{Rows: 1, Cols: max(cell.ColSpan, 1)}
			if cell.VMerge == MergeRestart {
				span.Rows = mergeDepth(rt, r, cell.Col)
				for below := r + 1; below < r+span.Rows; below++ {
					covered[tabledraw.Pos{Row: below, Col: cell.Col}] = true
				}
			}

			name, ok := styleMap[cell.Style]
			if !ok {
				name = fmt.Sprintf("cellstyle%d", len(styleMap)+1)
				if _, err := t.DefineStyle(name, "default", styleOptions(cell.Style)...); err != nil {
					return nil, err
				}
				styleMap[cell.Style] = name
			}
			if _, err := t.TextCell(r, cell.Col, cell.Text, span, name); err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, cell.Col, err)
			}
		}
	}

	tabledraw.Logger().Debug("docx: table laid out", "rows", rows, "cols", cols, "styles", len(styleMap))
	return t, nil
}

// mergeDepth counts the rows of the vertical merge starting at (row, col).
func mergeDepth(rt RenderTable, row, col int) int {
	n := 1
	for r := row + 1; r < len(rt.Rows); r++ {
		if !continues(rt.Rows[r], col) {
			break
		}
		n++
	}
	return n
}

func continues(row RenderTableRow, col int) bool {
	for _, c := range row.Cells {
		if c.Col == col {
			return c.VMerge == MergeContinue
		}
	}
	return false
}

func styleOptions(s TableCellStyle) []tabledraw.StyleOption {
	h := tabledraw.AlignLeft
	switch s.Alignment {
	case "center":
		h = tabledraw.AlignCenter
	case "right", "end":
		h = tabledraw.AlignRight
	}
	v := tabledraw.AlignTop
	switch s.VerticalAlign {
	case "middle":
		v = tabledraw.AlignMiddle
	case "bottom":
		v = tabledraw.AlignBottom
	}
	opts := []tabledraw.StyleOption{tabledraw.WithAlign(h, v)}
	if c, ok := tabledraw.NearestColor(s.BackgroundColor); ok {
		opts = append(opts, tabledraw.WithBackground(c))
	}
	return opts
}
