package termproto

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Real is the terminal backend that writes ANSI sequences to an actual
// terminal. It enters the alternate screen and raw mode on construction
// and restores both on Close, mirroring the scoped-guard pattern
// SPEC_FULL.md's Design Notes ask for around raw-mode acquisition.
type Real struct {
	out         *bufio.Writer
	fd          int
	priorState  *term.State
	cursorRow   int
	hideCursor  bool
	imageWriter ImageWriter
}

// ImageWriter encodes img for opts and writes the resulting protocol bytes
// (Kitty APC, iTerm2 OSC 1337, Sixel DCS, or an ASCII half-block run) to w.
// internal/imageproto supplies the concrete implementation so termproto
// never has to import the protocol encoders themselves.
type ImageWriter interface {
	WriteImage(w io.Writer, img Image, opts ImageRenderOptions) error
}

// SetImageWriter installs the protocol encoder used for KindPrintImage.
// Presentations with no images never need to call this.
func (r *Real) SetImageWriter(iw ImageWriter) { r.imageWriter = iw }

// NewReal wraps w (normally os.Stdout) as a Real backend. If w is a
// terminal file descriptor, raw mode and the alternate screen are engaged
// immediately; when hideCursor is true the cursor is hidden until Close.
// NewReal does no terminal or OS detection of its own.
func NewReal(w *os.File, hideCursor bool) (*Real, error) {
	r := &Real{out: bufio.NewWriter(w), fd: int(w.Fd()), hideCursor: hideCursor}

	if term.IsTerminal(r.fd) {
		state, err := term.MakeRaw(r.fd)
		if err != nil {
			return nil, fmt.Errorf("enabling raw mode: %w", err)
		}
		r.priorState = state
	}

	fmt.Fprint(r.out, "\x1b[?1049h") // alternate screen
	if hideCursor {
		fmt.Fprint(r.out, "\x1b[?25l")
	}
	return r, nil
}

// Close restores the terminal to its pre-presentation state: shows the
// cursor, leaves the alternate screen, disables raw mode, and resets the
// background color. It is safe to call multiple times.
func (r *Real) Close() error {
	if r.hideCursor {
		fmt.Fprint(r.out, "\x1b[?25h")
	}
	fmt.Fprint(r.out, "\x1b]111\x07")  // OSC 111: reset background color
	fmt.Fprint(r.out, "\x1b[?1049l") // leave alternate screen
	r.out.Flush()

	if r.priorState != nil {
		err := term.Restore(r.fd, r.priorState)
		r.priorState = nil
		return err
	}
	return nil
}

func (r *Real) CursorRow() uint16 { return uint16(r.cursorRow) }

// Suspend temporarily hands the real terminal back to its normal mode so a
// child process (an interactive shell, an editor) can use it directly, for
// the "acquire_terminal" snippet execution mode (spec.md §5.3). Resume
// undoes it. Suspend/Resume pairs may not be nested.
func (r *Real) Suspend() error {
	if r.hideCursor {
		fmt.Fprint(r.out, "\x1b[?25h")
	}
	fmt.Fprint(r.out, "\x1b[?1049l")
	r.out.Flush()
	if r.priorState != nil {
		return term.Restore(r.fd, r.priorState)
	}
	return nil
}

// Resume re-engages raw mode and the alternate screen after Suspend.
func (r *Real) Resume() error {
	if term.IsTerminal(r.fd) {
		state, err := term.MakeRaw(r.fd)
		if err != nil {
			return fmt.Errorf("re-enabling raw mode: %w", err)
		}
		r.priorState = state
	}
	fmt.Fprint(r.out, "\x1b[?1049h")
	if r.hideCursor {
		fmt.Fprint(r.out, "\x1b[?25l")
	}
	return r.out.Flush()
}

// Execute writes cmd's ANSI encoding to the underlying writer.
func (r *Real) Execute(cmd Command) error {
	switch cmd.Kind {
	case KindBeginUpdate:
		_, err := io.WriteString(r.out, "\x1b[?2026h")
		return err
	case KindEndUpdate:
		_, err := io.WriteString(r.out, "\x1b[?2026l")
		return err
	case KindMoveTo:
		r.cursorRow = cmd.Row
		_, err := fmt.Fprintf(r.out, "\x1b[%d;%dH", cmd.Row+1, cmd.Col+1)
		return err
	case KindMoveToRow:
		r.cursorRow = cmd.Row
		_, err := fmt.Fprintf(r.out, "\x1b[%d;1H", cmd.Row+1)
		return err
	case KindMoveToColumn:
		_, err := fmt.Fprintf(r.out, "\x1b[%dG", cmd.Col+1)
		return err
	case KindMoveDown:
		r.cursorRow += cmd.N
		_, err := fmt.Fprintf(r.out, "\x1b[%dB", cmd.N)
		return err
	case KindMoveRight:
		_, err := fmt.Fprintf(r.out, "\x1b[%dC", cmd.N)
		return err
	case KindMoveLeft:
		_, err := fmt.Fprintf(r.out, "\x1b[%dD", cmd.N)
		return err
	case KindMoveToNextLine:
		r.cursorRow++
		_, err := io.WriteString(r.out, "\r\n")
		return err
	case KindPrintText:
		return r.printText(cmd)
	case KindClearScreen:
		_, err := io.WriteString(r.out, "\x1b[2J\x1b[H")
		return err
	case KindSetColors:
		return r.setColors(cmd)
	case KindSetBackgroundColor:
		c := cmd.Color
		_, err := fmt.Fprintf(r.out, "\x1b]11;rgb:%02x/%02x/%02x\x1b\\", c.R, c.G, c.B)
		return err
	case KindFlush:
		return r.out.Flush()
	case KindPrintImage:
		if r.imageWriter == nil {
			return fmt.Errorf("termproto.Real: no image writer installed, call SetImageWriter")
		}
		if err := r.imageWriter.WriteImage(r.out, cmd.Image, cmd.ImageOptions); err != nil {
			return err
		}
		if !cmd.ImageOptions.RestoreCursor {
			r.cursorRow += cmd.ImageOptions.Rows
		}
		return nil
	default:
		return fmt.Errorf("termproto.Real: unknown command kind %d", cmd.Kind)
	}
}

func (r *Real) printText(cmd Command) error {
	sgr := sgrSequence(cmd.Style)
	if sgr != "" {
		if _, err := io.WriteString(r.out, sgr); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(r.out, cmd.Text); err != nil {
		return err
	}
	if sgr != "" {
		_, err := io.WriteString(r.out, "\x1b[0m")
		return err
	}
	return nil
}

func (r *Real) setColors(cmd Command) error {
	if cmd.Colors.Fg != nil {
		c := *cmd.Colors.Fg
		if _, err := fmt.Fprintf(r.out, "\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B); err != nil {
			return err
		}
	}
	if cmd.Colors.Bg != nil {
		c := *cmd.Colors.Bg
		if _, err := fmt.Fprintf(r.out, "\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B); err != nil {
			return err
		}
	}
	return nil
}
