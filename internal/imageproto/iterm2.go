package imageproto

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/mdshow/mdshow/internal/termproto"
)

// writeITerm2 emits an OSC 1337 inline image, sized in terminal cells. Unlike
// Kitty, iTerm2's protocol has no separate transmit phase: the full payload
// is resent on every placement.
func writeITerm2(out io.Writer, h *Handle, opts termproto.ImageRenderOptions) error {
	payload, err := encodePNG(h.Source)
	if err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(payload)

	_, err = fmt.Fprintf(out, "\x1b]1337;File=inline=1;width=%dcells;height=%dcells;preserveAspectRatio=0:%s\a",
		opts.Columns, opts.Rows, encoded)
	return err
}
