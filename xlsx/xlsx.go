package xlsx

import (
	"strings"

	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// styleResolver turns cell style IDs into CellStyle values.
type styleResolver struct {
	ss    *sml.StyleSheet
	theme []string // theme colors by Excel theme index, "" if unresolved
	cache map[uint32]CellStyle
}

func newStyleResolver(wb *spreadsheet.Workbook) *styleResolver {
	return &styleResolver{
		ss:    wb.StyleSheet.X(),
		theme: themeColors(wb),
		cache: make(map[uint32]CellStyle),
	}
}

func (r *styleResolver) xf(styleID uint32) *sml.CT_Xf {
	if r.ss == nil || r.ss.CellXfs == nil || int(styleID) >= len(r.ss.CellXfs.Xf) {
		return nil
	}
	return r.ss.CellXfs.Xf[styleID]
}

func (r *styleResolver) font(xf *sml.CT_Xf) *sml.CT_Font {
	if xf.FontIdAttr == nil || r.ss.Fonts == nil {
		return nil
	}
	idx := int(*xf.FontIdAttr)
	if idx >= len(r.ss.Fonts.Font) {
		return nil
	}
	return r.ss.Fonts.Font[idx]
}

func (r *styleResolver) fill(xf *sml.CT_Xf) *sml.CT_Fill {
	if xf.FillIdAttr == nil || r.ss.Fills == nil {
		return nil
	}
	idx := int(*xf.FillIdAttr)
	if idx >= len(r.ss.Fills.Fill) {
		return nil
	}
	return r.ss.Fills.Fill[idx]
}

func (r *styleResolver) border(xf *sml.CT_Xf) *sml.CT_Border {
	if xf.BorderIdAttr == nil || r.ss.Borders == nil {
		return nil
	}
	idx := int(*xf.BorderIdAttr)
	if idx >= len(r.ss.Borders.Border) {
		return nil
	}
	return r.ss.Borders.Border[idx]
}

// color resolves an explicit or theme color. Tint is not applied.
func (r *styleResolver) color(c *sml.CT_Color) string {
	if c == nil {
		return ""
	}
	if c.RgbAttr != nil {
		return normalizeColor(*c.RgbAttr)
	}
	if c.ThemeAttr != nil && int(*c.ThemeAttr) < len(r.theme) {
		return r.theme[*c.ThemeAttr]
	}
	return ""
}

func (r *styleResolver) edge(pr *sml.CT_BorderPr) Edge {
	if pr == nil {
		return Edge{}
	}
	return Edge{Style: pr.StyleAttr.String(), Color: r.color(pr.Color)}
}

// resolve returns the style of the given cell format index.
func (r *styleResolver) resolve(styleID uint32) CellStyle {
	if st, ok := r.cache[styleID]; ok {
		return st
	}
	var st CellStyle
	xf := r.xf(styleID)
	if xf == nil {
		return st
	}

	if font := r.font(xf); font != nil {
		if len(font.Name) > 0 {
			st.FontFamily = font.Name[0].ValAttr
		}
		if len(font.Sz) > 0 {
			st.FontSizePt = font.Sz[0].ValAttr
		}
		if len(font.Color) > 0 {
			st.FontColor = r.color(font.Color[0])
		}
	}
	if fill := r.fill(xf); fill != nil && fill.PatternFill != nil {
		st.BackgroundColor = r.color(fill.PatternFill.FgColor)
	}
	if b := r.border(xf); b != nil {
		st.Left = r.edge(b.Left)
		st.Right = r.edge(b.Right)
		st.Top = r.edge(b.Top)
		st.Bottom = r.edge(b.Bottom)
	}
	if a := xf.Alignment; a != nil {
		st.HorizontalAlign = a.HorizontalAttr.String()
		switch a.VerticalAttr.String() {
		case "top":
			st.VerticalAlign = "top"
		case "center":
			st.VerticalAlign = "middle"
		default:
			st.VerticalAlign = "bottom"
		}
		if a.WrapTextAttr != nil {
			st.WrapText = *a.WrapTextAttr
		}
		if a.IndentAttr != nil {
			st.IndentPx = float64(*a.IndentAttr) * 8.0
		}
	}
	r.cache[styleID] = st
	return st
}

// themeColors lists the first theme's scheme colors in Excel theme index
// order. Excel swaps the dark/light pairs relative to the scheme element order.
func themeColors(wb *spreadsheet.Workbook) []string {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil || themes[0].ThemeElements.ClrScheme == nil {
		return nil
	}
	cs := themes[0].ThemeElements.ClrScheme
	scheme := []*dml.CT_Color{
		cs.Lt1, cs.Dk1, cs.Lt2, cs.Dk2,
		cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6,
		cs.Hlink, cs.FolHlink,
	}
	out := make([]string, len(scheme))
	for i, clr := range scheme {
		switch {
		case clr == nil:
		case clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "":
			out[i] = clr.SrgbClr.ValAttr
		case clr.SysClr != nil && clr.SysClr.LastClrAttr != nil:
			out[i] = *clr.SysClr.LastClrAttr
		}
	}
	return out
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
// Any other length is returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
