package tabledraw

import (
	"fmt"
	"maps"
)

// Span is the number of rows and columns a cell covers.
type Span struct {
	Rows, Cols int
}

// One is the span of a single grid position.
var One = Span{1, 1}

// normalized clamps both components to at least 1.
func (s Span) normalized() Span {
	return Span{max(1, s.Rows), max(1, s.Cols)}
}

func (s Span) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// CellKind tags the content variant of a Cell.
type CellKind uint8

const (
	EmptyCell CellKind = iota
	TextCell
	BlockCell
	CustomCell
)

func (k CellKind) String() string {
	switch k {
	case TextCell:
		return "text"
	case BlockCell:
		return "block"
	case CustomCell:
		return "custom"
	}
	return "empty"
}

// Content produces the primitives of a custom cell. box is the cell
// rectangle before margins are applied; MarginBox gives the reduced one.
type Content interface {
	Place(box Box, style Style, layer string) ([]Primitive, error)
}

// ContentFunc adapts a function to Content.
type ContentFunc func(box Box, style Style, layer string) ([]Primitive, error)

// Place implements Content.
func (f ContentFunc) Place(box Box, style Style, layer string) ([]Primitive, error) {
	return f(box, style, layer)
}

// AttDef declares an attribute slot in a block definition. Insert is
// relative to the block base point.
type AttDef struct {
	Tag      string
	Insert   Point
	Height   float64
	Rotation float64
	Color    Color
}

// BlockDef is the part of a block definition the table needs: its name and
// attribute declarations.
type BlockDef struct {
	Name    string
	AttDefs []AttDef
}

// FindAttDef returns the attribute definition with the given tag.
func (b *BlockDef) FindAttDef(tag string) (AttDef, bool) {
	for _, a := range b.AttDefs {
		if a.Tag == tag {
			return a, true
		}
	}
	return AttDef{}, false
}

// Cell is the content of one or more grid positions. A cell does not know
// where it is placed; the same cell may sit at several positions or in
// several tables. Cells are immutable once created.
type Cell struct {
	kind  CellKind
	span  Span
	style string

	text    string
	block   *BlockDef
	attribs map[string]any
	content Content
}

// emptyCell stands in for every unoccupied grid position.
var emptyCell = &Cell{kind: EmptyCell, span: One, style: "default"}

func newCell(kind CellKind, span Span, style string) Cell {
	if style == "" {
		style = "default"
	}
	return Cell{kind: kind, span: span.normalized(), style: style}
}

// NewTextCell returns a cell holding multi-line text ('\n' separated).
func NewTextCell(text string, span Span, style string) Cell {
	c := newCell(TextCell, span, style)
	c.text = text
	return c
}

// NewBlockCell returns a cell placing block def. Each attribs key is matched
// against the definition's attribute tags at render time; keys without a
// matching AttDef are dropped. A nil def fails with ErrUnsupportedContent
// when rendered.
func NewBlockCell(def *BlockDef, attribs map[string]any, span Span, style string) Cell {
	c := newCell(BlockCell, span, style)
	c.block = def
	c.attribs = maps.Clone(attribs)
	return c
}

// NewCustomCell returns a cell whose primitives come from content. A nil
// content fails with ErrUnsupportedContent when rendered.
func NewCustomCell(content Content, span Span, style string) Cell {
	c := newCell(CustomCell, span, style)
	c.content = content
	return c
}

func (c *Cell) Kind() CellKind    { return c.kind }
func (c *Cell) Span() Span        { return c.span }
func (c *Cell) StyleName() string { return c.style }
func (c *Cell) Text() string      { return c.text }
func (c *Cell) Block() *BlockDef  { return c.block }

func (c *Cell) String() string {
	return fmt.Sprintf("Kind: %s, Span: %s, Style: %s, Text: %q", c.kind, c.span, c.style, c.text)
}

// CellID is a handle to a cell stored in a table.
type CellID int
