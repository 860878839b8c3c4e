// Package tabledraw lays out HTML-table like grids as flat 2D drawing
// primitives: border lines, background fills, text blocks and block
// references, ready to be written by a vector format sink such as a DXF or
// SVG writer.
//
// A Table has a fixed number of rows and columns with individually sized
// rows and columns. Cells hold text, a block reference or custom content and
// may span several rows and columns; positions covered by a spanning cell are
// not drawn. Cells refer to named styles that set alignment, margins, text
// attributes, background and the four borders. When two borders meet on the
// same grid segment the one with the higher priority wins, equal priorities
// go to the one applied later. Frames add borders around blocks of cells
// independent of the cells inside.
//
//	t := tabledraw.New(tabledraw.Point{X: 0, Y: 10}, 3, 2, true)
//	t.DefineStyle("head", "", tabledraw.WithAlign(tabledraw.AlignCenter, tabledraw.AlignMiddle))
//	t.TextCell(0, 0, "Title", tabledraw.Span{Rows: 1, Cols: 2}, "head")
//	prims, err := t.Render()
//
// Coordinates are drawing units. Row 0 starts at the origin and rows extend
// towards negative y.
package tabledraw
