package tabledraw

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// HAlign is the horizontal alignment of cell content.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// ParseHAlign parses "left", "center" or "right" (case-insensitive).
func ParseHAlign(s string) (HAlign, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("tabledraw: invalid horizontal alignment %q", s)
}

// VAlign is the vertical alignment of cell content.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

func (a VAlign) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return "top"
}

// ParseVAlign parses "top", "middle" or "bottom" (case-insensitive).
func ParseVAlign(s string) (VAlign, error) {
	switch strings.ToLower(s) {
	case "top", "":
		return AlignTop, nil
	case "middle", "center":
		return AlignMiddle, nil
	case "bottom":
		return AlignBottom, nil
	}
	return AlignTop, fmt.Errorf("tabledraw: invalid vertical alignment %q", s)
}

// Defaults of the "default" style and of new tables.
const (
	DefaultRowHeight   = 1.0
	DefaultColWidth    = 2.5
	DefaultTextStyle   = "STANDARD"
	DefaultTextHeight  = 0.7
	DefaultLineSpacing = 1.5
	DefaultMargin      = 0.1

	DefaultBorderColor       = Blue
	DefaultBorderPriority    = 50
	DefaultNewBorderPriority = 100
)

// BorderStyle describes one edge of a cell or frame.
type BorderStyle struct {
	Visible  bool
	Color    Color
	LineType string // empty means by layer
	Priority int    // higher values cover lower values
}

func (b BorderStyle) String() string {
	return fmt.Sprintf("Visible: %t, Color: %s, LineType: %q, Priority: %d", b.Visible, b.Color, b.LineType, b.Priority)
}

// NewBorderStyle returns a border style. Use DefaultNewBorderPriority when
// the border should cover the default grid.
func NewBorderStyle(color Color, visible bool, priority int, lineType string) BorderStyle {
	return BorderStyle{
		Visible:  visible,
		Color:    color,
		LineType: lineType,
		Priority: priority,
	}
}

func defaultBorderStyle() BorderStyle {
	return NewBorderStyle(DefaultBorderColor, true, DefaultBorderPriority, "")
}

// Style is the flat set of visual attributes a cell or frame refers to by
// name. Styles are values: copying one never aliases another.
type Style struct {
	Name string

	TextStyle   string  // text font style, ignored by block cells
	TextHeight  float64 // ignored by block cells
	LineSpacing float64 // factor of TextHeight, ignored by block cells
	XScale      float64 // text stretch or block x scale
	YScale      float64 // block y scale, ignored by text cells
	TextColor   Color
	Rotation    float64 // degrees
	Stacked     bool    // letters stacked top to bottom, not rotated

	HAlign  HAlign
	VAlign  VAlign
	HMargin float64
	VMargin float64

	BgColor Color // NoColor for no background

	Left, Top, Right, Bottom BorderStyle
}

func (s Style) String() string {
	return fmt.Sprintf("Name: %s, TextHeight: %g, Align: %s/%s, Margins: %g/%g, BgColor: %s, Stacked: %t",
		s.Name, s.TextHeight, s.HAlign, s.VAlign, s.HMargin, s.VMargin, s.BgColor, s.Stacked)
}

// DefaultStyle returns the attributes of the "default" style.
func DefaultStyle() Style {
	b := defaultBorderStyle()
	return Style{
		Name:        "default",
		TextStyle:   DefaultTextStyle,
		TextHeight:  DefaultTextHeight,
		LineSpacing: DefaultLineSpacing,
		XScale:      1,
		YScale:      1,
		TextColor:   ByLayer,
		HAlign:      AlignLeft,
		VAlign:      AlignTop,
		HMargin:     DefaultMargin,
		VMargin:     DefaultMargin,
		BgColor:     NoColor,
		Left:        b,
		Top:         b,
		Right:       b,
		Bottom:      b,
	}
}

// SetBorderStatus sets the visibility of all four borders at once.
func (s *Style) SetBorderStatus(left, right, top, bottom bool) {
	s.Left.Visible = left
	s.Right.Visible = right
	s.Top.Visible = top
	s.Bottom.Visible = bottom
}

// SetBorderStyle assigns b to every border whose flag is true.
func (s *Style) SetBorderStyle(b BorderStyle, left, right, top, bottom bool) {
	if left {
		s.Left = b
	}
	if right {
		s.Right = b
	}
	if top {
		s.Top = b
	}
	if bottom {
		s.Bottom = b
	}
}

// StyleOption overrides attributes of a style derived from a base.
type StyleOption func(*Style)

// WithAlign sets horizontal and vertical alignment.
func WithAlign(h HAlign, v VAlign) StyleOption {
	return func(s *Style) {
		s.HAlign = h
		s.VAlign = v
	}
}

// WithMargins sets the horizontal and vertical cell margins.
func WithMargins(h, v float64) StyleOption {
	return func(s *Style) {
		s.HMargin = h
		s.VMargin = v
	}
}

// WithText sets text height, line spacing and color.
func WithText(height, lineSpacing float64, color Color) StyleOption {
	return func(s *Style) {
		s.TextHeight = height
		s.LineSpacing = lineSpacing
		s.TextColor = color
	}
}

// WithTextStyle sets the font style name.
func WithTextStyle(name string) StyleOption {
	return func(s *Style) { s.TextStyle = name }
}

// WithScale sets the x and y scale factors.
func WithScale(x, y float64) StyleOption {
	return func(s *Style) {
		s.XScale = x
		s.YScale = y
	}
}

// WithRotation sets the content rotation in degrees.
func WithRotation(deg float64) StyleOption {
	return func(s *Style) { s.Rotation = deg }
}

// WithStacked enables or disables letter stacking.
func WithStacked(stacked bool) StyleOption {
	return func(s *Style) { s.Stacked = stacked }
}

// WithBackground sets the background fill color. NoColor removes it.
func WithBackground(c Color) StyleOption {
	return func(s *Style) { s.BgColor = c }
}

// WithBorders assigns b to all four borders.
func WithBorders(b BorderStyle) StyleOption {
	return func(s *Style) { s.SetBorderStyle(b, true, true, true, true) }
}

// WithBorder assigns b to the borders whose flag is true.
func WithBorder(b BorderStyle, left, right, top, bottom bool) StyleOption {
	return func(s *Style) { s.SetBorderStyle(b, left, right, top, bottom) }
}

// Styles is a registry of named styles. It always holds "default" and is
// safe for concurrent use.
type Styles struct {
	mu sync.RWMutex
	m  map[string]Style
}

// NewStyles returns a registry holding only the default style.
func NewStyles() *Styles {
	return &Styles{m: map[string]Style{"default": DefaultStyle()}}
}

// Get returns a copy of the named style.
func (r *Styles) Get(name string) (Style, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(name)
}

func (r *Styles) get(name string) (Style, error) {
	s, ok := r.m[name]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return s, nil
}

// Define creates (or replaces) style name as a copy of base with opts
// applied. An empty base means "default".
func (r *Styles) Define(name, base string, opts ...StyleOption) (Style, error) {
	if base == "" {
		base = "default"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(base)
	if err != nil {
		return Style{}, err
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.Name = name
	r.m[name] = s
	return s, nil
}

// Set stores s under name, replacing any existing entry.
func (r *Styles) Set(name string, s Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Name = name
	r.m[name] = s
}

// Update applies opts to an existing style in place.
func (r *Styles) Update(name string, opts ...StyleOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(name)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		opt(&s)
	}
	r.m[name] = s
	return nil
}

// Names returns the sorted style names.
func (r *Styles) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
