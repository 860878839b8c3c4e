// Package svg renders table primitives as an SVG preview.
//
// Importing the package registers the sink under the name "svg":
//
//	import _ "github.com/aerissecure/tabledraw/svg"
//
//	s, _ := tabledraw.NewSink("svg")
//	_ = table.RenderTo(s)
//	_, _ = s.WriteTo(os.Stdout)
package svg

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/aerissecure/tabledraw"
)

func init() {
	tabledraw.RegisterSink("svg", func() tabledraw.WriterSink { return New() })
}

// DefaultScale is the number of SVG user units per drawing unit.
const DefaultScale = 20.0

// dash patterns in drawing units, scaled on output
var dashes = map[string][]float64{
	"DASHED":  {0.5, 0.25},
	"DOT":     {0.05, 0.2},
	"DASHDOT": {0.5, 0.2, 0.05, 0.2},
	"DIVIDE":  {0.5, 0.2, 0.05, 0.2, 0.05, 0.2},
}

// Sink collects primitives and writes them as one SVG document. Drawing
// coordinates grow upwards, so y is flipped on output.
type Sink struct {
	scale float64
	body  strings.Builder

	minX, minY, maxX, maxY float64
	seen                   bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithScale sets the SVG units per drawing unit.
func WithScale(f float64) Option {
	return func(s *Sink) { s.scale = f }
}

// New returns an empty SVG sink. Use New rather than a zero Sink.
func New(opts ...Option) *Sink {
	s := &Sink{scale: DefaultScale}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) extend(p tabledraw.Point) {
	if !s.seen {
		s.minX, s.maxX, s.minY, s.maxY = p.X, p.X, p.Y, p.Y
		s.seen = true
		return
	}
	s.minX = math.Min(s.minX, p.X)
	s.maxX = math.Max(s.maxX, p.X)
	s.minY = math.Min(s.minY, p.Y)
	s.maxY = math.Max(s.maxY, p.Y)
}

// px maps a drawing point to SVG coordinates.
func (s *Sink) px(p tabledraw.Point) (float64, float64) {
	return p.X * s.scale, -p.Y * s.scale
}

func color(c tabledraw.Color) string { return "#" + c.Hex() }

func layer(name string) string { return html.EscapeString(name) }

func (s *Sink) AddLine(l tabledraw.Line) {
	s.extend(l.Start)
	s.extend(l.End)
	x1, y1 := s.px(l.Start)
	x2, y2 := s.px(l.End)
	fmt.Fprintf(&s.body, `<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"%s/>`+"\n",
		layer(l.Layer), num(x1), num(y1), num(x2), num(y2), color(l.Color), s.dash(l.LineType))
}

func (s *Sink) dash(lineType string) string {
	pattern, ok := dashes[strings.ToUpper(lineType)]
	if !ok {
		return ""
	}
	parts := make([]string, len(pattern))
	for i, d := range pattern {
		parts[i] = num(d * s.scale)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
}

func (s *Sink) AddSolid(f tabledraw.Solid) {
	pts := make([]string, len(f.Points))
	for i, p := range f.Points {
		s.extend(p)
		x, y := s.px(p)
		pts[i] = num(x) + "," + num(y)
	}
	fmt.Fprintf(&s.body, `<polygon class="%s" points="%s" fill="%s"/>`+"\n",
		layer(f.Layer), strings.Join(pts, " "), color(f.Color))
}

func anchor(h tabledraw.HAlign) string {
	switch h {
	case tabledraw.AlignCenter:
		return "middle"
	case tabledraw.AlignRight:
		return "end"
	}
	return "start"
}

func (s *Sink) AddText(t tabledraw.Text) {
	s.extend(t.Insert)
	lines := strings.Split(t.Content, "\n")
	step := t.Height * t.LineSpacing
	total := t.Height + float64(len(lines)-1)*step

	// baseline of the first line below the insertion point, in drawing units
	first := t.Height
	switch t.VAlign {
	case tabledraw.AlignMiddle:
		first = t.Height - total/2
	case tabledraw.AlignBottom:
		first = t.Height - total
	}

	x, y := s.px(t.Insert)
	fmt.Fprintf(&s.body, `<text class="%s" x="%s" y="%s" font-size="%s" text-anchor="%s" fill="%s"%s>`,
		layer(t.Layer), num(x), num(y), num(t.Height*s.scale), anchor(t.HAlign), color(t.Color), rotate(t.Rotation, x, y))
	for i, line := range lines {
		dy := step
		if i == 0 {
			dy = first
		}
		fmt.Fprintf(&s.body, `<tspan x="%s" dy="%s">%s</tspan>`, num(x), num(dy*s.scale), html.EscapeString(line))
	}
	s.body.WriteString("</text>\n")
}

// rotate returns a transform attribute for a counter-clockwise rotation in
// drawing space, which is clockwise-negative in SVG.
func rotate(deg, x, y float64) string {
	if deg == 0 {
		return ""
	}
	return fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(-deg), num(x), num(y))
}

func (s *Sink) AddBlockRef(b tabledraw.BlockRef) {
	s.extend(b.Insert)
	x, y := s.px(b.Insert)
	fmt.Fprintf(&s.body, `<use class="%s" href="#%s" transform="translate(%s %s) rotate(%s) scale(%s %s)"/>`+"\n",
		layer(b.Layer), html.EscapeString(b.Name), num(x), num(y), num(-b.Rotation), num(b.XScale), num(b.YScale))
	for _, a := range b.Attribs {
		s.extend(a.Insert)
		ax, ay := s.px(a.Insert)
		fmt.Fprintf(&s.body, `<text class="%s" data-tag="%s" x="%s" y="%s" font-size="%s" fill="%s"%s>%s</text>`+"\n",
			layer(a.Layer), html.EscapeString(a.Tag), num(ax), num(ay), num(a.Height*s.scale), color(a.Color),
			rotate(a.Rotation, ax, ay), html.EscapeString(a.Text))
	}
}

// WriteTo writes the SVG document. The view box covers every point seen.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	x, y, width, height := 0.0, 0.0, 0.0, 0.0
	if s.seen {
		x, y = s.minX*s.scale, -s.maxY*s.scale
		width, height = (s.maxX-s.minX)*s.scale, (s.maxY-s.minY)*s.scale
	}
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(x), num(y), num(width), num(height), num(width), num(height))
	b.WriteString(s.body.String())
	b.WriteString("</svg>\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// num formats coordinates compactly.
func num(f float64) string {
	out := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
	if out == "-0" {
		return "0"
	}
	return out
}
