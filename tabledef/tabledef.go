// Package tabledef builds tables from YAML descriptions.
//
// A minimal description:
//
//	rows: 2
//	cols: 2
//	styles:
//	  - name: head
//	    halign: center
//	    background: yellow
//	cells:
//	  - {row: 0, col: 0, span: [1, 2], style: head, text: Title}
//	  - {row: 1, col: 0, text: a}
package tabledef

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aerissecure/tabledraw"
)

// Decode reads a strict YAML table description. Unknown keys are errors.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("tabledef: empty document")
		}
		return nil, fmt.Errorf("tabledef: %w", err)
	}
	return &def, nil
}

// Load decodes a description and builds its table.
func Load(r io.Reader) (*tabledraw.Table, error) {
	def, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(def)
}

// Build creates the table described by def.
func Build(def *Definition) (*tabledraw.Table, error) {
	if def.Rows <= 0 || def.Cols <= 0 {
		return nil, fmt.Errorf("tabledef: table must have rows and cols, got %dx%d", def.Rows, def.Cols)
	}
	grid := def.DefaultGrid == nil || *def.DefaultGrid
	t := tabledraw.New(tabledraw.Point{X: def.Origin[0], Y: def.Origin[1]}, def.Rows, def.Cols, grid)

	if l := def.Layers; l != nil {
		layers := t.Layers()
		if l.Background != "" {
			layers.Background = l.Background
		}
		if l.Content != "" {
			layers.Content = l.Content
		}
		if l.Grid != "" {
			layers.Grid = l.Grid
		}
		t.SetLayers(layers)
	}

	for row, h := range def.RowHeights {
		if err := t.SetRowHeight(row, h); err != nil {
			return nil, fmt.Errorf("tabledef: row_heights: %w", err)
		}
	}
	for col, w := range def.ColWidths {
		if err := t.SetColWidth(col, w); err != nil {
			return nil, fmt.Errorf("tabledef: col_widths: %w", err)
		}
	}

	for _, sd := range def.Styles {
		if sd.Name == "" {
			return nil, errors.New("tabledef: style without name")
		}
		opts, err := styleOptions(sd)
		if err != nil {
			return nil, fmt.Errorf("tabledef: style %q: %w", sd.Name, err)
		}
		if _, err := t.DefineStyle(sd.Name, sd.Base, opts...); err != nil {
			return nil, fmt.Errorf("tabledef: style %q: %w", sd.Name, err)
		}
	}

	blocks := make(map[string]*tabledraw.BlockDef, len(def.Blocks))
	for _, bd := range def.Blocks {
		b := &tabledraw.BlockDef{Name: bd.Name}
		for _, ad := range bd.AttDefs {
			color := tabledraw.ByLayer
			if ad.Color != nil {
				color = tabledraw.Color(*ad.Color)
			}
			b.AttDefs = append(b.AttDefs, tabledraw.AttDef{
				Tag:      ad.Tag,
				Insert:   tabledraw.Point{X: ad.Insert[0], Y: ad.Insert[1]},
				Height:   ad.Height,
				Rotation: ad.Rotation,
				Color:    color,
			})
		}
		blocks[bd.Name] = b
	}

	for _, fd := range def.Frames {
		style := fd.Style
		if style == "" {
			style = "default"
		}
		if _, err := t.Frame(fd.Row, fd.Col, max(fd.Height, 1), max(fd.Width, 1), style); err != nil {
			return nil, fmt.Errorf("tabledef: frame at %d,%d: %w", fd.Row, fd.Col, err)
		}
	}

	for _, cd := range def.Cells {
		if err := addCell(t, cd, blocks); err != nil {
			return nil, fmt.Errorf("tabledef: cell at %d,%d: %w", cd.Row, cd.Col, err)
		}
	}
	return t, nil
}

func addCell(t *tabledraw.Table, cd CellDef, blocks map[string]*tabledraw.BlockDef) error {
	span := tabledraw.One
	if cd.Span != nil {
		span = tabledraw.Span{Rows: cd.Span[0], Cols: cd.Span[1]}
	}
	style := cd.Style
	if style == "" {
		style = "default"
	}
	if _, err := t.Style(style); err != nil {
		return err
	}

	if cd.Block == "" {
		text := ""
		if cd.Text != nil {
			text = *cd.Text
		}
		if cd.Attribs != nil {
			return errors.New("attribs without block")
		}
		_, err := t.TextCell(cd.Row, cd.Col, text, span, style)
		return err
	}
	if cd.Text != nil {
		return errors.New("cell has both text and block")
	}
	b, ok := blocks[cd.Block]
	if !ok {
		return fmt.Errorf("unknown block %q", cd.Block)
	}
	_, err := t.BlockCell(cd.Row, cd.Col, b, cd.Attribs, span, style)
	return err
}

func styleOptions(sd StyleDef) ([]tabledraw.StyleOption, error) {
	var opts []tabledraw.StyleOption
	set := func(f func(*tabledraw.Style)) { opts = append(opts, f) }

	if sd.HAlign != nil {
		h, err := tabledraw.ParseHAlign(*sd.HAlign)
		if err != nil {
			return nil, err
		}
		set(func(s *tabledraw.Style) { s.HAlign = h })
	}
	if sd.VAlign != nil {
		v, err := tabledraw.ParseVAlign(*sd.VAlign)
		if err != nil {
			return nil, err
		}
		set(func(s *tabledraw.Style) { s.VAlign = v })
	}
	if sd.HMargin != nil {
		set(func(s *tabledraw.Style) { s.HMargin = *sd.HMargin })
	}
	if sd.VMargin != nil {
		set(func(s *tabledraw.Style) { s.VMargin = *sd.VMargin })
	}
	if sd.TextStyle != nil {
		opts = append(opts, tabledraw.WithTextStyle(*sd.TextStyle))
	}
	if sd.TextHeight != nil {
		set(func(s *tabledraw.Style) { s.TextHeight = *sd.TextHeight })
	}
	if sd.LineSpacing != nil {
		set(func(s *tabledraw.Style) { s.LineSpacing = *sd.LineSpacing })
	}
	if sd.TextColor != nil {
		set(func(s *tabledraw.Style) { s.TextColor = tabledraw.Color(*sd.TextColor) })
	}
	if sd.XScale != nil {
		set(func(s *tabledraw.Style) { s.XScale = *sd.XScale })
	}
	if sd.YScale != nil {
		set(func(s *tabledraw.Style) { s.YScale = *sd.YScale })
	}
	if sd.Rotation != nil {
		opts = append(opts, tabledraw.WithRotation(*sd.Rotation))
	}
	if sd.Stacked != nil {
		opts = append(opts, tabledraw.WithStacked(*sd.Stacked))
	}
	if sd.Background != nil {
		opts = append(opts, tabledraw.WithBackground(tabledraw.Color(*sd.Background)))
	}
	if b := sd.Borders; b != nil {
		set(func(s *tabledraw.Style) {
			if b.All != nil {
				for _, edge := range []*tabledraw.BorderStyle{&s.Left, &s.Right, &s.Top, &s.Bottom} {
					b.All.apply(edge)
				}
			}
			b.Left.apply(&s.Left)
			b.Right.apply(&s.Right)
			b.Top.apply(&s.Top)
			b.Bottom.apply(&s.Bottom)
		})
	}
	return opts, nil
}

// apply overrides the fields of b that d sets. A nil d is a no-op.
func (d *BorderDef) apply(b *tabledraw.BorderStyle) {
	if d == nil {
		return
	}
	if d.Visible != nil {
		b.Visible = *d.Visible
	}
	if d.Color != nil {
		b.Color = tabledraw.Color(*d.Color)
	}
	if d.LineType != nil {
		b.LineType = *d.LineType
	}
	if d.Priority != nil {
		b.Priority = *d.Priority
	}
}
