package tabledraw

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an AutoCAD Color Index (ACI). 1..255 are palette entries, 0 means
// "by block" and 256 means "by layer".
type Color int

const (
	ByBlock Color = 0
	Red     Color = 1
	Yellow  Color = 2
	Green   Color = 3
	Cyan    Color = 4
	Blue    Color = 5
	Magenta Color = 6
	White   Color = 7 // drawn black on light backgrounds
	Gray    Color = 8
	Silver  Color = 9
	ByLayer Color = 256

	// NoColor marks an unset optional color, e.g. a style without background.
	NoColor Color = -1
)

// standard palette entries 1..9 as RGB.
var aciRGB = [...][3]uint8{
	Red:     {0xFF, 0x00, 0x00},
	Yellow:  {0xFF, 0xFF, 0x00},
	Green:   {0x00, 0xFF, 0x00},
	Cyan:    {0x00, 0xFF, 0xFF},
	Blue:    {0x00, 0x00, 0xFF},
	Magenta: {0xFF, 0x00, 0xFF},
	White:   {0x00, 0x00, 0x00},
	Gray:    {0x80, 0x80, 0x80},
	Silver:  {0xC0, 0xC0, 0xC0},
}

// IsSet reports whether c is a real color rather than NoColor.
func (c Color) IsSet() bool { return c != NoColor }

func (c Color) String() string {
	switch c {
	case NoColor:
		return "none"
	case ByBlock:
		return "byblock"
	case ByLayer:
		return "bylayer"
	}
	return strconv.Itoa(int(c))
}

// Hex returns c as a 6-digit RGB hex string. Only the nine standard entries
// have a defined RGB value; everything else renders as black.
func (c Color) Hex() string {
	rgb := [3]uint8{}
	if c > 0 && int(c) < len(aciRGB) {
		rgb = aciRGB[c]
	}
	return fmt.Sprintf("%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

// NearestColor maps a "RRGGBB" (or "AARRGGBB") hex string to the closest of
// the nine standard palette entries. ok is false for malformed input.
func NearestColor(hex string) (c Color, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		hex = hex[2:]
	}
	if len(hex) != 6 {
		return NoColor, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return NoColor, false
	}
	r, g, b := int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF)

	best, bestDist := White, -1
	for i := Red; i <= Silver; i++ {
		p := aciRGB[i]
		dr, dg, db := r-int(p[0]), g-int(p[1]), b-int(p[2])
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}
