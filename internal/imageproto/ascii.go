package imageproto

import (
	"fmt"
	"image"
	"io"

	"golang.org/x/image/draw"

	"github.com/mdshow/mdshow/internal/termproto"
)

// writeASCII renders h as a grid of upper-half-block characters, each cell
// carrying two vertically stacked pixels as its foreground/background
// color. This is the protocol every terminal supports, used when
// DetectTerminalEmulator finds none of the richer ones (spec.md §4.6).
func writeASCII(out io.Writer, h *Handle, opts termproto.ImageRenderOptions) error {
	cols, rows := opts.Columns, opts.Rows
	if cols <= 0 || rows <= 0 {
		return nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), h.Source, h.Source.Bounds(), draw.Over, nil)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tr, tg, tb, _ := scaled.At(col, row*2).RGBA()
			br, bg, bb, _ := scaled.At(col, row*2+1).RGBA()
			fmt.Fprintf(out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				tr>>8, tg>>8, tb>>8, br>>8, bg>>8, bb>>8)
		}
		out.Write([]byte("\x1b[0m"))
		if row < rows-1 {
			out.Write([]byte("\r\n"))
		}
	}
	return nil
}
