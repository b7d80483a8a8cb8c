package imageproto

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"io"

	"golang.org/x/image/draw"

	"github.com/mdshow/mdshow/internal/termproto"
)

const (
	sixelPxPerCol = 8
	sixelPxPerRow = 16
)

// writeSixel rasterizes h to opts' cell extent, quantizes it to a 256-color
// palette with Floyd-Steinberg dithering, and emits a DCS sixel sequence
// band by band (six pixel rows per band, per the Sixel format).
func writeSixel(out io.Writer, h *Handle, opts termproto.ImageRenderOptions) error {
	width := opts.Columns * sixelPxPerCol
	height := opts.Rows * sixelPxPerRow
	if width <= 0 {
		width = h.PixelWidth()
	}
	if height <= 0 {
		height = h.PixelHeight()
	}
	if height%6 != 0 {
		height += 6 - height%6
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), h.Source, h.Source.Bounds(), draw.Over, nil)

	indexed := image.NewPaletted(scaled.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(indexed, scaled.Bounds(), scaled, image.Point{})

	used := usedPaletteIndices(indexed)

	var buf bytes.Buffer
	buf.WriteString("\x1bPq")
	for _, idx := range used {
		r, g, b := toSixelScale(indexed.Palette[idx])
		fmt.Fprintf(&buf, "#%d;2;%d;%d;%d", idx, r, g, b)
	}

	for bandStart := 0; bandStart < height; bandStart += 6 {
		for _, idx := range used {
			buf.WriteByte('#')
			fmt.Fprintf(&buf, "%d", idx)
			writeSixelBandRow(&buf, indexed, bandStart, width, idx)
			buf.WriteByte('$')
		}
		buf.WriteByte('-')
	}
	buf.WriteString("\x1b\\")

	_, err := out.Write(buf.Bytes())
	return err
}

func writeSixelBandRow(buf *bytes.Buffer, img *image.Paletted, bandStart, width int, idx int) {
	col := 0
	for col < width {
		ch := sixelChar(img, bandStart, col, idx)
		run := 1
		for col+run < width && sixelChar(img, bandStart, col+run, idx) == ch {
			run++
		}
		if run > 3 {
			fmt.Fprintf(buf, "!%d%c", run, ch)
		} else {
			for i := 0; i < run; i++ {
				buf.WriteByte(ch)
			}
		}
		col += run
	}
}

func sixelChar(img *image.Paletted, bandStart, col, idx int) byte {
	bits := 0
	bounds := img.Bounds()
	for bit := 0; bit < 6; bit++ {
		y := bandStart + bit
		if y < bounds.Dy() && int(img.ColorIndexAt(col, y)) == idx {
			bits |= 1 << uint(bit)
		}
	}
	return byte(63 + bits)
}

func usedPaletteIndices(img *image.Paletted) []int {
	var seen [256]bool
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			seen[img.ColorIndexAt(x, y)] = true
		}
	}
	var out []int
	for i, s := range seen {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// toSixelScale converts an 8-bit RGB color to sixel's 0-100 component scale.
func toSixelScale(c color.Color) (r, g, b int) {
	cr, cg, cb, _ := c.RGBA()
	return int(cr * 100 / 0xffff), int(cg * 100 / 0xffff), int(cb * 100 / 0xffff)
}
