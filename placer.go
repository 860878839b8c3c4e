package tabledraw

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MarginBox shrinks box by the style margins. Margins larger than half the
// box simply invert it.
func MarginBox(box Box, s Style) Box {
	return Box{
		Left:   box.Left + s.HMargin,
		Right:  box.Right - s.HMargin,
		Top:    box.Top - s.VMargin,
		Bottom: box.Bottom + s.VMargin,
	}
}

// Anchor returns the content insertion point for box (already margin
// reduced) according to the style alignment.
func Anchor(box Box, s Style) Point {
	var p Point
	switch s.HAlign {
	case AlignCenter:
		p.X = (box.Left + box.Right) / 2
	case AlignRight:
		p.X = box.Right
	default:
		p.X = box.Left
	}
	switch s.VAlign {
	case AlignMiddle:
		p.Y = (box.Top + box.Bottom) / 2
	case AlignBottom:
		p.Y = box.Bottom
	default:
		p.Y = box.Top
	}
	return p
}

// Place produces the content primitives of c inside box. Empty cells and
// empty text produce nothing.
func Place(c *Cell, box Box, s Style, layer string) ([]Primitive, error) {
	switch c.kind {
	case TextCell:
		if t, ok := placeText(c.text, box, s, layer); ok {
			return []Primitive{t}, nil
		}
		return nil, nil
	case BlockCell:
		if c.block == nil {
			return nil, fmt.Errorf("%w: block cell without definition", ErrUnsupportedContent)
		}
		return []Primitive{placeBlock(c, box, s, layer)}, nil
	case CustomCell:
		if c.content == nil {
			return nil, fmt.Errorf("%w: custom cell without content producer", ErrUnsupportedContent)
		}
		return c.content.Place(box, s, layer)
	}
	return nil, nil
}

func placeText(text string, box Box, s Style, layer string) (Text, bool) {
	if len(text) == 0 {
		return Text{}, false
	}
	rotation := s.Rotation
	if s.Stacked {
		rotation = 0
		text = stack(text)
	}
	return Text{
		Content:     text,
		Insert:      Anchor(MarginBox(box, s), s),
		Height:      s.TextHeight,
		Rotation:    rotation,
		HAlign:      s.HAlign,
		VAlign:      s.VAlign,
		Color:       s.TextColor,
		Layer:       layer,
		LineSpacing: s.LineSpacing,
		XScale:      s.XScale,
		TextStyle:   s.TextStyle,
	}, true
}

// stack turns line breaks into spaces and puts every character on its own
// line. Combining marks stay with their base character.
func stack(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	var it norm.Iter
	it.InitString(norm.NFC, text)
	var chars []string
	for !it.Done() {
		chars = append(chars, string(it.Next()))
	}
	return strings.Join(chars, "\n")
}

func placeBlock(c *Cell, box Box, s Style, layer string) BlockRef {
	ref := BlockRef{
		Name:     c.block.Name,
		Insert:   Anchor(MarginBox(box, s), s),
		XScale:   s.XScale,
		YScale:   s.YScale,
		Rotation: s.Rotation,
		Layer:    layer,
	}

	// sorted for a stable primitive order across renders
	keys := make([]string, 0, len(c.attribs))
	for k := range c.attribs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		def, ok := c.block.FindAttDef(key)
		if !ok {
			Logger().Debug("tabledraw: dropping attribute without definition", "block", c.block.Name, "tag", key)
			continue
		}
		ref.Attribs = append(ref.Attribs, newAttrib(def, fmt.Sprint(c.attribs[key]), ref))
	}
	return ref
}

// newAttrib positions def relative to the block placement ref.
func newAttrib(def AttDef, text string, ref BlockRef) Attrib {
	x, y := def.Insert.X*ref.XScale, def.Insert.Y*ref.YScale
	sin, cos := math.Sincos(ref.Rotation * math.Pi / 180)
	return Attrib{
		Tag:  def.Tag,
		Text: text,
		Insert: Point{
			X: ref.Insert.X + x*cos - y*sin,
			Y: ref.Insert.Y + x*sin + y*cos,
		},
		Height:   def.Height * ref.YScale,
		Rotation: def.Rotation + ref.Rotation,
		Color:    def.Color,
		Layer:    ref.Layer,
	}
}
