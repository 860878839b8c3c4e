package tabledef

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aerissecure/tabledraw"
)

// Definition is the YAML description of one table.
type Definition struct {
	Origin      [2]float64      `yaml:"origin"`
	Rows        int             `yaml:"rows"`
	Cols        int             `yaml:"cols"`
	DefaultGrid *bool           `yaml:"default_grid"` // defaults to true
	RowHeights  map[int]float64 `yaml:"row_heights"`
	ColWidths   map[int]float64 `yaml:"col_widths"`
	Layers      *Layers         `yaml:"layers"`
	Styles      []StyleDef      `yaml:"styles"` // defined in order, so a style may derive from an earlier one
	Blocks      []BlockDef      `yaml:"blocks"`
	Frames      []FrameDef      `yaml:"frames"`
	Cells       []CellDef       `yaml:"cells"`
}

// Layers overrides the table's layer names. Empty fields keep the default.
type Layers struct {
	Background string `yaml:"background"`
	Content    string `yaml:"content"`
	Grid       string `yaml:"grid"`
}

// StyleDef derives a named style. Only the fields present are overridden.
type StyleDef struct {
	Name        string      `yaml:"name"`
	Base        string      `yaml:"base"`
	HAlign      *string     `yaml:"halign"`
	VAlign      *string     `yaml:"valign"`
	HMargin     *float64    `yaml:"hmargin"`
	VMargin     *float64    `yaml:"vmargin"`
	TextStyle   *string     `yaml:"text_style"`
	TextHeight  *float64    `yaml:"text_height"`
	LineSpacing *float64    `yaml:"line_spacing"`
	TextColor   *Color      `yaml:"text_color"`
	XScale      *float64    `yaml:"xscale"`
	YScale      *float64    `yaml:"yscale"`
	Rotation    *float64    `yaml:"rotation"`
	Stacked     *bool       `yaml:"stacked"`
	Background  *Color      `yaml:"background"`
	Borders     *BordersDef `yaml:"borders"`
}

// BordersDef sets borders: All first, then the individual edges.
type BordersDef struct {
	All    *BorderDef `yaml:"all"`
	Left   *BorderDef `yaml:"left"`
	Right  *BorderDef `yaml:"right"`
	Top    *BorderDef `yaml:"top"`
	Bottom *BorderDef `yaml:"bottom"`
}

// BorderDef overrides parts of one border.
type BorderDef struct {
	Visible  *bool   `yaml:"visible"`
	Color    *Color  `yaml:"color"`
	LineType *string `yaml:"linetype"`
	Priority *int    `yaml:"priority"`
}

// BlockDef describes a block and its attribute definitions.
type BlockDef struct {
	Name    string      `yaml:"name"`
	AttDefs []AttDefDef `yaml:"attdefs"`
}

// AttDefDef is one attribute definition of a block.
type AttDefDef struct {
	Tag      string     `yaml:"tag"`
	Insert   [2]float64 `yaml:"insert"`
	Height   float64    `yaml:"height"`
	Rotation float64    `yaml:"rotation"`
	Color    *Color     `yaml:"color"` // defaults to by layer
}

// FrameDef is a styled rectangle over a cell range.
type FrameDef struct {
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
	Height int    `yaml:"height"`
	Width  int    `yaml:"width"`
	Style  string `yaml:"style"`
}

// CellDef is a text cell, or a block cell when Block is set.
type CellDef struct {
	Row     int            `yaml:"row"`
	Col     int            `yaml:"col"`
	Span    *[2]int        `yaml:"span"` // rows, cols
	Style   string         `yaml:"style"`
	Text    *string        `yaml:"text"`
	Block   string         `yaml:"block"`
	Attribs map[string]any `yaml:"attribs"`
}

var colorNames = map[string]tabledraw.Color{
	"byblock": tabledraw.ByBlock,
	"bylayer": tabledraw.ByLayer,
	"none":    tabledraw.NoColor,
	"red":     tabledraw.Red,
	"yellow":  tabledraw.Yellow,
	"green":   tabledraw.Green,
	"cyan":    tabledraw.Cyan,
	"blue":    tabledraw.Blue,
	"magenta": tabledraw.Magenta,
	"white":   tabledraw.White,
	"black":   tabledraw.White,
	"gray":    tabledraw.Gray,
	"silver":  tabledraw.Silver,
}

// Color is a color index written as a number (5), a name ("blue",
// "bylayer", "none") or a hex RGB string ("#0000FF") mapped to the
// nearest standard color.
type Color tabledraw.Color

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", value.Line)
	}
	s := strings.TrimSpace(value.Value)
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(tabledraw.NoColor) || n > int(tabledraw.ByLayer) {
			return fmt.Errorf("line %d: color index %d out of range", value.Line, n)
		}
		*c = Color(n)
		return nil
	}
	if named, ok := colorNames[strings.ToLower(s)]; ok {
		*c = Color(named)
		return nil
	}
	if strings.HasPrefix(s, "#") {
		if near, ok := tabledraw.NearestColor(s); ok {
			*c = Color(near)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown color %q", value.Line, s)
}
