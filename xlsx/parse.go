package xlsx

import (
	"fmt"
	"io"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

const (
	pxPerWidthUnit  = 8.3   // column width characters -> px
	defaultColWidth = 8.43  // Excel default column width in characters
	pxPerPt         = 1.333 // row height points -> px
	defaultRowPt    = 15.0  // Excel default row height
)

type mergeSpan struct{ rowSpan, colSpan int }

// ParseWorkbookModel reads an XLSX from r/size and returns the intermediate representation.
func ParseWorkbookModel(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, fmt.Errorf("xlsx: read workbook: %w", err)
	}

	styles := newStyleResolver(wb)
	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		model.Sheets = append(model.Sheets, parseSheet(sheet, styles))
	}
	return model, nil
}

func parseSheet(sheet spreadsheet.Sheet, styles *styleResolver) RenderSheet {
	// --- merges: master -> span, covered cells skipped ---
	masters := make(map[[2]int]mergeSpan)
	skip := make(map[[2]int]bool)
	maxCols := 0
	if mc := sheet.X().MergeCells; mc != nil {
		for _, m := range mc.MergeCell {
			from, to, err := reference.ParseRangeReference(m.RefAttr)
			if err != nil {
				continue
			}
			fromRow, fromCol := int(from.RowIdx-1), int(from.ColumnIdx)
			toRow, toCol := int(to.RowIdx-1), int(to.ColumnIdx)
			masters[[2]int{fromRow, fromCol}] = mergeSpan{toRow - fromRow + 1, toCol - fromCol + 1}
			for r := fromRow; r <= toRow; r++ {
				for c := fromCol; c <= toCol; c++ {
					if r != fromRow || c != fromCol {
						skip[[2]int{r, c}] = true
					}
				}
			}
			maxCols = max(maxCols, toCol+1)
		}
	}

	// --- find max column, rows can be sparse ---
	for _, row := range sheet.Rows() {
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			maxCols = max(maxCols, int(reference.ColumnToIndex(colName))+1)
		}
	}

	rs := RenderSheet{
		Name:      sheet.Name(),
		ColWidths: make([]float64, maxCols),
		ColHidden: make([]bool, maxCols),
	}
	for c := 0; c < maxCols; c++ {
		col := sheet.Column(uint32(c + 1)).X()
		if col.CustomWidthAttr != nil && *col.CustomWidthAttr && col.WidthAttr != nil {
			rs.ColWidths[c] = *col.WidthAttr * pxPerWidthUnit
		} else {
			rs.ColWidths[c] = defaultColWidth * pxPerWidthUnit
		}
		if col.HiddenAttr != nil {
			rs.ColHidden[c] = *col.HiddenAttr
		}
	}

	// --- rows ---
	covered := make(map[[2]int]CellStyle)
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		if rowIdx >= len(rs.Rows) {
			rs.Rows = append(rs.Rows, make([]RenderRow, rowIdx-len(rs.Rows)+1)...)
		}

		rr := &rs.Rows[rowIdx]
		rr.Cells = make([]*RenderCell, maxCols)
		rr.Hidden = row.IsHidden()
		if x := row.X(); x.CustomHeightAttr != nil && *x.CustomHeightAttr && x.HtAttr != nil {
			rr.HeightPx = *x.HtAttr * pxPerPt
		} else {
			rr.HeightPx = defaultRowPt * pxPerPt
		}

		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			if skip[[2]int{rowIdx, colIdx}] {
				if id := cell.X().SAttr; id != nil {
					covered[[2]int{rowIdx, colIdx}] = styles.resolve(*id)
				}
				continue
			}
			rc := &RenderCell{
				Ref:     fmt.Sprintf("%s%d", colName, rowIdx+1),
				Value:   cell.GetFormattedValue(),
				ColSpan: 1,
				RowSpan: 1,
			}
			if id := cell.X().SAttr; id != nil {
				rc.Style = styles.resolve(*id)
			}
			if span, ok := masters[[2]int{rowIdx, colIdx}]; ok {
				rc.RowSpan = span.rowSpan
				rc.ColSpan = span.colSpan
			}
			rr.Cells[colIdx] = rc
		}
	}

	// fill cells slices of rows the sheet never mentions
	for i := range rs.Rows {
		if rs.Rows[i].Cells == nil {
			rs.Rows[i].Cells = make([]*RenderCell, maxCols)
		}
	}
	foldMergedEdges(&rs, masters, covered)
	return rs
}

// foldMergedEdges copies the right and bottom borders of a merged range onto
// its master cell. Excel keeps them on the covered cells along the range's
// last column and last row, which the importer otherwise drops.
func foldMergedEdges(rs *RenderSheet, masters map[[2]int]mergeSpan, covered map[[2]int]CellStyle) {
	for pos, span := range masters {
		if pos[0] >= len(rs.Rows) || pos[1] >= len(rs.Rows[pos[0]].Cells) {
			continue
		}
		master := rs.Rows[pos[0]].Cells[pos[1]]
		if master == nil {
			continue
		}
		lastRow, lastCol := pos[0]+span.rowSpan-1, pos[1]+span.colSpan-1
		if !master.Style.Right.Present() && lastCol > pos[1] {
			for r := pos[0]; r <= lastRow; r++ {
				if s, ok := covered[[2]int{r, lastCol}]; ok && s.Right.Present() {
					master.Style.Right = s.Right
					break
				}
			}
		}
		if !master.Style.Bottom.Present() && lastRow > pos[0] {
			for c := pos[1]; c <= lastCol; c++ {
				if s, ok := covered[[2]int{lastRow, c}]; ok && s.Bottom.Present() {
					master.Style.Bottom = s.Bottom
					break
				}
			}
		}
	}
}
