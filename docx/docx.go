package docx

import (
	"fmt"
	"io"

	"github.com/aerissecure/tabledraw"
)

type options struct {
	origin    tabledraw.Point
	colWidth  float64
	rowHeight float64
	grid      bool
}

// Option configures how document tables are laid out.
type Option func(*options)

// WithOrigin sets the top-left corner of every generated table.
func WithOrigin(p tabledraw.Point) Option {
	return func(o *options) { o.origin = p }
}

// WithCellSize sets the width of every grid column and the height of every
// row in drawing units.
func WithCellSize(colWidth, rowHeight float64) Option {
	return func(o *options) {
		o.colWidth = colWidth
		o.rowHeight = rowHeight
	}
}

// WithGrid toggles the default grid. Word tables are usually ruled, so it is
// on by default.
func WithGrid(on bool) Option {
	return func(o *options) { o.grid = on }
}

func newOptions(opts []Option) options {
	o := options{
		colWidth:  tabledraw.DefaultColWidth,
		rowHeight: tabledraw.DefaultRowHeight,
		grid:      true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tables reads a DOCX file and lays out each top-level table it contains.
func Tables(r io.ReaderAt, size int64, opts ...Option) ([]*tabledraw.Table, error) {
	m, err := ParseDocumentModel(r, size)
	if err != nil {
		return nil, err
	}
	out := make([]*tabledraw.Table, 0, len(m.Tables))
	for i, rt := range m.Tables {
		t, err := BuildTable(rt, opts...)
		if err != nil {
			return nil, fmt.Errorf("docx: table %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}
