package tabledraw

import (
	"fmt"
	"strings"
)

// Point is a position in drawing units.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Box is an axis-aligned cell rectangle in drawing units. Rows grow towards
// negative y, so Top is normally greater than Bottom.
type Box struct {
	Left, Right, Top, Bottom float64
}

func (b Box) String() string {
	return fmt.Sprintf("Left: %g, Right: %g, Top: %g, Bottom: %g", b.Left, b.Right, b.Top, b.Bottom)
}

// Kind identifies the type of a drawing primitive.
type Kind uint8

const (
	KindLine     Kind = iota // straight line segment
	KindSolid                // filled quadrilateral
	KindText                 // multi-line text block
	KindBlockRef             // block placement with attributes
)

var kindNames = [...]string{
	KindLine:     "Line",
	KindSolid:    "Solid",
	KindText:     "Text",
	KindBlockRef: "BlockRef",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Primitive is implemented by every drawing primitive a table emits.
type Primitive interface {
	Kind() Kind
}

// Line is a grid line segment.
type Line struct {
	Start, End Point
	Color      Color
	Layer      string
	LineType   string // empty means by layer
}

// Kind implements Primitive.
func (Line) Kind() Kind { return KindLine }

func (l Line) String() string {
	return fmt.Sprintf("Line %s-%s, Color: %s, Layer: %s, LineType: %q", l.Start, l.End, l.Color, l.Layer, l.LineType)
}

// Solid is a filled polygon, used for cell backgrounds. Points are ordered
// left-top, left-bottom, right-bottom, right-top.
type Solid struct {
	Points []Point
	Color  Color
	Layer  string
}

// Kind implements Primitive.
func (Solid) Kind() Kind { return KindSolid }

func (s Solid) String() string {
	pts := make([]string, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.String()
	}
	return fmt.Sprintf("Solid [%s], Color: %s, Layer: %s", strings.Join(pts, " "), s.Color, s.Layer)
}

// Text is a multi-line text block anchored at Insert. Lines are separated
// by '\n'.
type Text struct {
	Content     string
	Insert      Point
	Height      float64
	Rotation    float64 // degrees
	HAlign      HAlign
	VAlign      VAlign
	Color       Color
	Layer       string
	LineSpacing float64
	XScale      float64
	TextStyle   string
}

// Kind implements Primitive.
func (Text) Kind() Kind { return KindText }

func (t Text) String() string {
	return fmt.Sprintf("Text %q at %s, Height: %g, Rotation: %g, Align: %s/%s, Color: %s, Layer: %s",
		t.Content, t.Insert, t.Height, t.Rotation, t.HAlign, t.VAlign, t.Color, t.Layer)
}

// Attrib is an attribute value attached to a block placement.
type Attrib struct {
	Tag      string
	Text     string
	Insert   Point
	Height   float64
	Rotation float64
	Color    Color
	Layer    string
}

func (a Attrib) String() string {
	return fmt.Sprintf("%s=%q at %s", a.Tag, a.Text, a.Insert)
}

// BlockRef places a named block definition.
type BlockRef struct {
	Name     string
	Insert   Point
	XScale   float64
	YScale   float64
	Rotation float64
	Layer    string
	Attribs  []Attrib
}

// Kind implements Primitive.
func (BlockRef) Kind() Kind { return KindBlockRef }

func (b BlockRef) String() string {
	return fmt.Sprintf("BlockRef %q at %s, Scale: %g/%g, Rotation: %g, Layer: %s, Attribs: %d",
		b.Name, b.Insert, b.XScale, b.YScale, b.Rotation, b.Layer, len(b.Attribs))
}
