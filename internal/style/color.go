// Package style implements the text and color data model shared by the
// presentation builder and the render engine: colors, text styles, lines,
// and the weighted-width line representation used for word-wrap.
package style

import (
	"fmt"
	"image/color"
)

// Color is a resolved, concrete color ready to hand to a terminal backend.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color so a Color can flow into the same APIs the
// teacher package uses for its own cell colors.
func (c Color) RGBA() (r, g, b, a uint32) {
	rgba := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	return rgba.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// sixteenColorPalette mirrors the standard ANSI 16-color table; named colors
// resolve against it directly, and it seeds the low 16 entries of the 8-bit
// indexed palette below.
var sixteenColorPalette = [16]Color{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

// eightBitPalette is the full 256-color indexed palette: the 16 named
// colors, a 6x6x6 color cube, and a 24-step grayscale ramp.
var eightBitPalette [256]Color

func init() {
	copy(eightBitPalette[:16], sixteenColorPalette[:])

	i := 16
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				eightBitPalette[i] = Color{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		eightBitPalette[232+j] = Color{gray, gray, gray}
	}
}

// From8Bit resolves an indexed color 0..=255 to an RGB color. It is total:
// every byte value maps to a stable color.
func From8Bit(index uint8) Color {
	return eightBitPalette[index]
}

// NamedColorClass is a symbolic color role a theme assigns a concrete color
// to, e.g. "text", "heading", "code_background".
type NamedColorClass string

// RawColor is how a color is expressed in markdown/theme source before
// resolution: a literal RGB value, an 8-bit index, or a reference into the
// active palette by class name.
type RawColor struct {
	RGB     *Color
	Indexed *uint8
	Named   NamedColorClass
}

// RGBColor builds a RawColor from concrete RGB components.
func RGBColor(r, g, b uint8) RawColor {
	c := Color{r, g, b}
	return RawColor{RGB: &c}
}

// IndexedColor builds a RawColor from an 8-bit palette index.
func IndexedColor(index uint8) RawColor {
	return RawColor{Indexed: &index}
}

// NamedColorRef builds a RawColor that defers to a palette class.
func NamedColorRef(class NamedColorClass) RawColor {
	return RawColor{Named: class}
}

// Palette maps symbolic color classes to concrete colors, as loaded from a
// theme. Resolution is a pure function over this map.
type Palette map[NamedColorClass]Color

// UndefinedPaletteColorError is returned when a RawColor names a palette
// class the active theme never defined.
type UndefinedPaletteColorError struct {
	Class NamedColorClass
}

func (e *UndefinedPaletteColorError) Error() string {
	return fmt.Sprintf("undefined palette color class %q", e.Class)
}

// Resolve turns a RawColor into a concrete Color against this palette.
func (p Palette) Resolve(raw RawColor) (Color, error) {
	switch {
	case raw.RGB != nil:
		return *raw.RGB, nil
	case raw.Indexed != nil:
		return From8Bit(*raw.Indexed), nil
	case raw.Named != "":
		c, ok := p[raw.Named]
		if !ok {
			return Color{}, &UndefinedPaletteColorError{Class: raw.Named}
		}
		return c, nil
	default:
		return Color{}, fmt.Errorf("empty RawColor")
	}
}
