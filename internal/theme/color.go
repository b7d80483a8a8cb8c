package theme

import (
	"strconv"
	"strings"

	"github.com/mdshow/mdshow/internal/style"
)

// ParseRawColor turns a theme-source color string into a style.RawColor: a
// leading "#" is a literal RGB hex value, anything else is a reference
// into the active style.Palette by class name. An empty string yields the
// zero RawColor, which Palette.Resolve rejects, matching "unset" colors
// falling through TextStyle.Merge instead of resolving to black.
func ParseRawColor(s string) style.RawColor {
	if s == "" {
		return style.RawColor{}
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHexColor(s); ok {
			return style.RGBColor(c.R, c.G, c.B)
		}
	}
	return style.NamedColorRef(style.NamedColorClass(s))
}

func parseHexColor(s string) (style.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return style.Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return style.Color{}, false
	}
	return style.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// StylePalette resolves t's palette section into a style.Palette, failing
// on the first unparseable entry.
func (t *Theme) StylePalette() (style.Palette, error) {
	out := make(style.Palette, len(t.Palette))
	for name, hex := range t.Palette {
		c, ok := parseHexColor(hex)
		if !ok {
			return nil, &InvalidPaletteColorError{Class: name, Raw: hex}
		}
		out[style.NamedColorClass(name)] = c
	}
	return out, nil
}

// InvalidPaletteColorError reports a palette entry that isn't a valid
// "#rrggbb" literal.
type InvalidPaletteColorError struct {
	Class string
	Raw   string
}

func (e *InvalidPaletteColorError) Error() string {
	return "invalid palette color " + strconv.Quote(e.Raw) + " for class " + strconv.Quote(e.Class)
}
