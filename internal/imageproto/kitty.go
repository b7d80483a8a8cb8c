package imageproto

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/mdshow/mdshow/internal/termproto"
)

// kittyChunkSize is the maximum base64 payload per APC command the Kitty
// graphics protocol allows (4096 bytes).
const kittyChunkSize = 4096

// writeKitty transmits h once (memoized by id in registry) and issues a
// placement command sized to opts on every call, matching Kitty's
// transmit-once/display-many model (spec.md §4.6).
func writeKitty(out io.Writer, registry *Registry, h *Handle, opts termproto.ImageRenderOptions, tmux bool) error {
	var buf bytes.Buffer

	if !registry.markTransmitted(h.id) {
		payload, err := encodePNG(h.Source)
		if err != nil {
			return err
		}
		writeKittyTransmit(&buf, h.id, payload)
	}

	writeKittyPlacement(&buf, h.id, opts)

	return emitEscapes(out, buf.Bytes(), tmux)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeKittyTransmit emits the image data in <=kittyChunkSize base64 chunks,
// each its own APC command, with m=1 on every chunk but the last.
func writeKittyTransmit(buf *bytes.Buffer, id uint64, payload []byte) {
	encoded := base64.StdEncoding.EncodeToString(payload)

	for len(encoded) > 0 {
		chunk := encoded
		more := 0
		if len(chunk) > kittyChunkSize {
			chunk = encoded[:kittyChunkSize]
			more = 1
		}
		encoded = encoded[len(chunk):]

		fmt.Fprintf(buf, "\x1b_Ga=t,f=100,i=%d,m=%d;%s\x1b\\", id, more, chunk)
	}
}

// writeKittyPlacement emits the "put" command referencing an already
// transmitted image, sized in cells.
func writeKittyPlacement(buf *bytes.Buffer, id uint64, opts termproto.ImageRenderOptions) {
	fmt.Fprintf(buf, "\x1b_Ga=p,i=%d,c=%d,r=%d,z=%d", id, opts.Columns, opts.Rows, opts.ZIndex)
	if opts.RestoreCursor {
		buf.WriteString(",C=1")
	}
	buf.WriteString("\x1b\\")
}

// emitEscapes writes seq to out, wrapped in a tmux DCS passthrough
// (doubling every ESC inside the payload) whenever tmux is true, per
// spec.md §4.6.
func emitEscapes(out io.Writer, seq []byte, tmux bool) error {
	if !tmux {
		_, err := out.Write(seq)
		return err
	}

	var wrapped bytes.Buffer
	wrapped.WriteString("\x1bPtmux;")
	for _, b := range seq {
		if b == 0x1b {
			wrapped.WriteByte(0x1b)
		}
		wrapped.WriteByte(b)
	}
	wrapped.WriteString("\x1b\\")
	_, err := out.Write(wrapped.Bytes())
	return err
}
