package docx

import (
	"fmt"
	"io"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// ParseDocumentModel reads a DOCX document from the provided reader and size
// and collects its top-level tables in body order.
func ParseDocumentModel(r io.ReaderAt, size int64) (DocumentModel, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return DocumentModel{}, fmt.Errorf("docx: read document: %w", err)
	}

	var mdl DocumentModel

	// ---- lookup from underlying XML ptr -> high-level wrapper ----
	tMap := make(map[*wml.CT_Tbl]document.Table)
	for _, tbl := range doc.Tables() {
		tMap[tbl.X()] = tbl
	}

	body := doc.X().Body
	if body == nil {
		// Empty document
		return mdl, nil
	}
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, ct := range c.Tbl {
				if tbl, ok := tMap[ct]; ok {
					mdl.Tables = append(mdl.Tables, convertTable(tbl))
				}
			}
		}
	}
	return mdl, nil
}

// convertTable converts a unioffice Table into the RenderTable IR.
func convertTable(t document.Table) RenderTable {
	rt := RenderTable{}
	for _, row := range t.Rows() {
		rr := RenderTableRow{}
		col := 0
		for _, cell := range row.Cells() {
			rc := convertCell(cell)
			rc.Col = col
			col += rc.ColSpan
			rr.Cells = append(rr.Cells, rc)
		}
		rt.Rows = append(rt.Rows, rr)
	}
	return rt
}

func convertCell(cell document.Cell) RenderTableCell {
	rc := RenderTableCell{ColSpan: 1}

	var lines []string
	for i, p := range cell.Paragraphs() {
		var sb strings.Builder
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		lines = append(lines, sb.String())
		if i == 0 {
			if ppr := p.X().PPr; ppr != nil && ppr.Jc != nil {
				rc.Style.Alignment = ppr.Jc.ValAttr.String()
			}
		}
	}
	rc.Text = strings.Join(lines, "\n")

	pr := cell.X().TcPr
	if pr == nil {
		return rc
	}
	if pr.GridSpan != nil && pr.GridSpan.ValAttr > 1 {
		rc.ColSpan = int(pr.GridSpan.ValAttr)
	}
	if pr.VMerge != nil {
		// a bare <w:vMerge/> continues the merge above
		if pr.VMerge.ValAttr == wml.ST_MergeRestart {
			rc.VMerge = MergeRestart
		} else {
			rc.VMerge = MergeContinue
		}
	}
	if pr.Shd != nil && pr.Shd.FillAttr != nil && pr.Shd.FillAttr.ST_HexColorRGB != nil {
		rc.Style.BackgroundColor = *pr.Shd.FillAttr.ST_HexColorRGB
	}
	if pr.VAlign != nil {
		switch pr.VAlign.ValAttr.String() {
		case "center":
			rc.Style.VerticalAlign = "middle"
		case "bottom":
			rc.Style.VerticalAlign = "bottom"
		default:
			rc.Style.VerticalAlign = "top"
		}
	}
	return rc
}
