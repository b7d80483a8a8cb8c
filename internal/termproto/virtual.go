package termproto

import "github.com/mdshow/mdshow/internal/style"

// gridCell mirrors the attribute set of the teacher package's vtparse.Cell,
// adapted here for a grid that is written to directly by Command.Execute
// rather than parsed out of an ANSI byte stream.
type gridCell struct {
	Char  rune
	Style style.TextStyle
}

// placedImage records an image drawn at a cell position (the cursor's
// column and row when it was printed) so the
// virtual terminal can report it back in a Snapshot for the transition
// engine and the export renderer.
type placedImage struct {
	Col, Row int
	Image    Image
	Options  ImageRenderOptions
}

// Virtual is an in-memory terminal grid: a fixed-size matrix of styled
// characters plus a list of image placements, used by the export renderer,
// the transition engine, and the overflow validator (spec.md §4.5).
type Virtual struct {
	rows, cols int
	cells      [][]gridCell
	images     []placedImage

	cursorCol, cursorRow int
	rowHeight            int // extra rows a wide-size char advances on MoveToNextLine

	background *style.Color
	maxRowUsed int
}

// NewVirtual creates a blank rows x cols grid.
func NewVirtual(rows, cols int) *Virtual {
	v := &Virtual{rows: rows, cols: cols, rowHeight: 1}
	v.cells = make([][]gridCell, rows)
	for i := range v.cells {
		v.cells[i] = make([]gridCell, cols)
		for j := range v.cells[i] {
			v.cells[i][j].Char = ' '
		}
	}
	return v
}

func (v *Virtual) Rows() int { return v.rows }
func (v *Virtual) Cols() int { return v.cols }

// Cell returns the character and style at (row, col), or (' ', zero style)
// if out of bounds.
func (v *Virtual) Cell(row, col int) (rune, style.TextStyle) {
	if row < 0 || row >= v.rows || col < 0 || col >= v.cols {
		return ' ', style.Default()
	}
	c := v.cells[row][col]
	return c.Char, c.Style
}

// Images returns the placements drawn on this grid.
func (v *Virtual) Images() []Image {
	out := make([]Image, len(v.images))
	for i, p := range v.images {
		out[i] = p.Image
	}
	return out
}

// MaxRowUsed reports the highest row index written to, for overflow
// validation (spec.md §4.2 "validate_overflows").
func (v *Virtual) MaxRowUsed() int { return v.maxRowUsed }

func (v *Virtual) CursorRow() uint16 { return uint16(v.cursorRow) }

// Background returns the grid's last-set background color, or nil if none
// was ever set.
func (v *Virtual) Background() *style.Color { return v.background }

// Execute implements Backend by writing into the grid instead of emitting
// bytes to a real terminal.
func (v *Virtual) Execute(cmd Command) error {
	switch cmd.Kind {
	case KindBeginUpdate, KindEndUpdate, KindFlush:
		// No-op: the virtual grid has no tearing to guard against.
	case KindMoveTo:
		v.cursorCol, v.cursorRow = cmd.Col, cmd.Row
	case KindMoveToRow:
		v.cursorRow = cmd.Row
	case KindMoveToColumn:
		v.cursorCol = cmd.Col
	case KindMoveDown:
		v.cursorRow += cmd.N
	case KindMoveRight:
		v.cursorCol += cmd.N
	case KindMoveLeft:
		v.cursorCol -= cmd.N
		if v.cursorCol < 0 {
			v.cursorCol = 0
		}
	case KindMoveToNextLine:
		v.cursorRow += v.rowHeight
		v.cursorCol = 0
		v.rowHeight = 1
	case KindClearScreen:
		for r := range v.cells {
			for c := range v.cells[r] {
				v.cells[r][c] = gridCell{Char: ' '}
			}
		}
		v.images = nil
	case KindSetColors, KindSetBackgroundColor:
		if cmd.Kind == KindSetBackgroundColor {
			bg := cmd.Color
			v.background = &bg
		}
	case KindPrintText:
		v.printText(cmd.Text, cmd.Style)
	case KindPrintImage:
		v.images = append(v.images, placedImage{Col: v.cursorCol, Row: v.cursorRow, Image: cmd.Image, Options: cmd.ImageOptions})
		if !cmd.ImageOptions.RestoreCursor {
			v.cursorRow += cmd.ImageOptions.Rows
		}
	}

	if v.cursorRow > v.maxRowUsed {
		v.maxRowUsed = v.cursorRow
	}
	return nil
}

func (v *Virtual) printText(text string, s style.TextStyle) {
	size := int(s.Size())
	if size > v.rowHeight {
		v.rowHeight = size
	}
	for _, r := range text {
		if v.cursorRow >= 0 && v.cursorRow < v.rows && v.cursorCol >= 0 && v.cursorCol < v.cols {
			v.cells[v.cursorRow][v.cursorCol] = gridCell{Char: r, Style: s}
		}
		v.cursorCol++
	}
}
