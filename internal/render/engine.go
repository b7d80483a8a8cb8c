package render

import (
	"github.com/mdshow/mdshow/internal/async"
	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/termproto"
)

// columnLayout tracks an open InitColumnLayout/EnterColumn/ExitLayout
// block. Each column remembers its own cursor row so content drawn in one
// column doesn't disturb the others (spec.md §4.2).
type columnLayout struct {
	widths      []uint8
	current     int // -1 when no column is entered
	columnRects []rect
	savedRows   []uint16
}

// Engine interprets an ordered stream of Operations against a Backend
// under an evolving window rect and layout state (spec.md §4.2).
type Engine struct {
	backend          termproto.Backend
	window           WindowSize
	validateOverflow bool
	poller           *async.Poller

	margins []rect // margins[0] is the default screen rect; depth 1 = can't pop
	layout  *columnLayout

	lastMaxWidth  int // maxWidth passed to the most recent Split call
	lastLineWidth int // widest produced sub-line from that Split, for HorizontalOverflow checks

	registered map[async.Pollable]struct{} // Automatic RenderAsync pollables handed to poller, by identity
}

// New creates an Engine bound to backend with the given window size.
// poller may be nil, in which case RenderAsync operations are expanded
// once (their first poll step never runs) and fall back to static content.
func New(backend termproto.Backend, window WindowSize, validateOverflow bool, poller *async.Poller) *Engine {
	full := rect{cols: window.Columns, rows: window.Rows}
	return &Engine{
		backend:          backend,
		window:           window,
		validateOverflow: validateOverflow,
		poller:           poller,
		margins:          []rect{full},
		registered:       make(map[async.Pollable]struct{}),
	}
}

func (e *Engine) current() rect { return e.margins[len(e.margins)-1] }

// Render executes ops in order, wrapping the whole frame in a
// BeginUpdate/EndUpdate bracket so a reader never observes a torn frame
// (spec.md §4.2, §5).
func (e *Engine) Render(ops []Operation) error {
	if err := e.backend.Execute(termproto.BeginUpdate()); err != nil {
		return err
	}

	for _, op := range ops {
		if err := e.apply(op); err != nil {
			return err
		}
	}

	if err := e.backend.Execute(termproto.EndUpdate()); err != nil {
		return err
	}
	return e.backend.Execute(termproto.Flush())
}

func (e *Engine) apply(op Operation) error {
	switch op.Kind {
	case KindClearScreen:
		return e.backend.Execute(termproto.ClearScreen())
	case KindSetColors:
		return e.backend.Execute(termproto.SetColors(op.Colors))
	case KindApplyMargin:
		next := e.current().shrinkColumns(2 * op.Margin.Horizontal).shrinkRows(op.Margin.Top, op.Margin.Bottom)
		e.margins = append(e.margins, next)
		return nil
	case KindPopMargin:
		if len(e.margins) <= 1 {
			return mdserr.ErrMarginUnderflow
		}
		e.margins = e.margins[:len(e.margins)-1]
		return nil
	case KindJumpToVerticalCenter:
		r := e.current()
		return e.backend.Execute(termproto.MoveToRow(int(r.startRow + r.rows/2)))
	case KindJumpToRow:
		r := e.current()
		return e.backend.Execute(termproto.MoveToRow(int(r.startRow + op.Index)))
	case KindJumpToBottomRow:
		r := e.current()
		row := int(r.startRow+r.rows) - int(op.Index) - 1
		return e.backend.Execute(termproto.MoveToRow(row))
	case KindJumpToColumn:
		r := e.current()
		return e.backend.Execute(termproto.MoveToColumn(int(r.startCol + op.Index)))
	case KindRenderText:
		return e.renderText(op.Line, op.TextProps)
	case KindRenderLineBreak:
		return e.backend.Execute(termproto.MoveToNextLine())
	case KindRenderBlockLine:
		return e.renderBlockLine(op.BlockLine)
	case KindRenderImage:
		return e.renderImage(op.Image, op.ImageProps)
	case KindRenderDynamic:
		return e.renderDynamic(op.Dynamic)
	case KindRenderAsync:
		return e.renderAsync(op.Async)
	case KindInitColumnLayout:
		e.layout = &columnLayout{widths: op.Columns, current: -1}
		e.layout.columnRects = make([]rect, len(op.Columns))
		e.layout.savedRows = make([]uint16, len(op.Columns))
		base := e.current()
		for i := range e.layout.savedRows {
			e.layout.savedRows[i] = base.startRow
		}
		return nil
	case KindEnterColumn:
		return e.enterColumn(int(op.Index))
	case KindExitLayout:
		e.layout = nil
		return nil
	default:
		return nil
	}
}

func (e *Engine) enterColumn(column int) error {
	if e.layout == nil || column >= len(e.layout.widths) {
		return mdserr.ErrInvalidLayoutEnter
	}

	// Save the outgoing column's cursor row before switching.
	if e.layout.current >= 0 {
		e.layout.savedRows[e.layout.current] = e.backend.CursorRow()
	}

	base := e.margins[0]
	var total uint32
	for _, w := range e.layout.widths {
		total += uint32(w)
	}

	var offset uint16
	for i := 0; i < column; i++ {
		offset += uint16(uint32(base.cols) * uint32(e.layout.widths[i]) / total)
	}
	width := uint16(uint32(base.cols) * uint32(e.layout.widths[column]) / total)

	colRect := rect{startCol: base.startCol + offset, cols: width, startRow: base.startRow, rows: base.rows}
	// Inter-column gap: shrink left/right by 4 except on outer edges.
	if column > 0 {
		colRect.startCol += 4
		colRect.cols -= 4
	}
	if column < len(e.layout.widths)-1 {
		colRect.cols -= 4
	}

	e.layout.current = column
	e.layout.columnRects[column] = colRect
	e.margins = append(e.margins[:1], colRect)

	return e.backend.Execute(termproto.MoveToRow(int(e.layout.savedRows[column])))
}

// renderAsync registers an Automatic RenderAsync's Pollable with the poller
// on first sight (idempotent per-operation, spec.md §4.3), then expands its
// current operations same as any other dynamic operation.
func (e *Engine) renderAsync(g RenderAsync) error {
	if e.poller != nil {
		p := g.Pollable()
		if g.StartPolicy() == async.Automatic {
			if _, seen := e.registered[p]; !seen {
				e.registered[p] = struct{}{}
				e.poller.Register(p)
			}
		}
	}
	return e.renderDynamic(g)
}

func (e *Engine) renderDynamic(g AsRenderOperations) error {
	var ops []Operation
	g.AsRenderOperations(e.window, &ops)
	for _, op := range ops {
		if err := e.apply(op); err != nil {
			return err
		}
	}
	return nil
}

// wordWrapLayout computes the max line length and start column for one
// RenderText/RenderBlockLine call, given the current rect and alignment
// (spec.md §4.2).
func (e *Engine) wordWrapLayout(props TextProperties, contentWidth int) (maxLineLength, startColumn int) {
	r := e.current()
	switch props.Alignment {
	case AlignRight:
		maxLineLength = int(r.cols) - int(props.MinMargin)
		startColumn = int(r.startCol) + int(r.cols) - maxLineLength
	case AlignCenter:
		avail := int(r.cols) - 2*int(props.MinMargin)
		width := contentWidth
		if width > avail {
			width = avail
		}
		if width < int(props.MinSize) {
			width = int(props.MinSize)
			if width > avail {
				width = avail
			}
		}
		maxLineLength = width
		startColumn = int(r.startCol) + (int(r.cols)-width)/2
	default: // AlignLeft
		maxLineLength = int(r.cols) - int(props.MinMargin)
		startColumn = int(r.startCol) + int(props.MinMargin)
	}
	if maxLineLength < 1 {
		maxLineLength = 1
	}
	return maxLineLength, startColumn
}

func (e *Engine) renderText(line style.WeightedLine, props TextProperties) error {
	maxLen, startCol := e.wordWrapLayout(props, line.Width())
	e.lastMaxWidth = maxLen
	e.lastLineWidth = 0

	lines := line.Split(maxLen)
	if len(lines) == 0 {
		lines = []style.Line{line.Line()}
	}

	for i, l := range lines {
		if err := e.backend.Execute(termproto.MoveToColumn(startCol)); err != nil {
			return err
		}
		if w := style.NewWeightedLine(l).Width(); w > e.lastLineWidth {
			e.lastLineWidth = w
		}
		for _, t := range l {
			if err := e.backend.Execute(termproto.PrintText(t.Content, t.Style)); err != nil {
				return err
			}
		}
		if i < len(lines)-1 {
			if err := e.backend.Execute(termproto.MoveToNextLine()); err != nil {
				return err
			}
		}
	}

	if err := e.checkOverflow(); err != nil {
		return err
	}
	return nil
}

func (e *Engine) renderBlockLine(bl BlockLine) error {
	maxLen, startCol := e.wordWrapLayout(TextProperties{Alignment: bl.Alignment}, bl.Line.Width())
	e.lastMaxWidth = maxLen
	e.lastLineWidth = 0

	lines := bl.Line.Split(maxLen)
	if len(lines) == 0 {
		lines = []style.Line{bl.Line.Line()}
	}

	for i, l := range lines {
		if err := e.backend.Execute(termproto.MoveToColumn(startCol)); err != nil {
			return err
		}
		if i == 0 || bl.RepeatPrefixOnWrap {
			if err := e.backend.Execute(termproto.PrintText(bl.Prefix.Content, bl.Prefix.Style)); err != nil {
				return err
			}
		} else {
			pad := style.NewWeightedLine(style.Line{bl.Prefix}).Width()
			if err := e.backend.Execute(termproto.MoveRight(pad)); err != nil {
				return err
			}
		}

		written := style.NewWeightedLine(l).Width()
		if written > e.lastLineWidth {
			e.lastLineWidth = written
		}
		for _, t := range l {
			if err := e.backend.Execute(termproto.PrintText(t.Content, t.Style)); err != nil {
				return err
			}
		}

		if bl.BlockColor != nil && int(bl.BlockLength) > written {
			pad := style.Text{Content: spaces(int(bl.BlockLength) - written)}
			bg := *bl.BlockColor
			if err := e.backend.Execute(termproto.PrintText(pad.Content, style.Default().WithColors(style.Colors{Bg: &bg}))); err != nil {
				return err
			}
		} else if bl.RightPadLength > 0 {
			if err := e.backend.Execute(termproto.MoveRight(int(bl.RightPadLength))); err != nil {
				return err
			}
		}

		if i < len(lines)-1 {
			if err := e.backend.Execute(termproto.MoveToNextLine()); err != nil {
				return err
			}
		}
	}

	return e.checkOverflow()
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func (e *Engine) renderImage(img Image, props ImageRenderProperties) error {
	r := e.current()
	cols, rows := imageCellExtent(img, props.Size, r)

	opts := termproto.ImageRenderOptions{
		Columns:       cols,
		Rows:          rows,
		RestoreCursor: props.RestoreCursor,
		ZIndex:        props.ZIndex,
	}
	return e.backend.Execute(termproto.PrintImage(img, opts))
}

func imageCellExtent(img Image, size ImageSize, r rect) (cols, rows int) {
	aspect := float64(img.PixelHeight()) / float64(img.PixelWidth())
	if img.PixelWidth() == 0 {
		aspect = 1
	}

	switch size.Mode {
	case ImageSizeFixedCells:
		return int(size.Columns), int(size.Rows)
	case ImageSizeWindowRatio:
		cols = int(float64(r.cols) * size.WidthRatio)
		rows = int(float64(cols) * aspect / 2) // cells are roughly twice as tall as wide
		return cols, rows
	default: // ImageSizeAutoFit
		cols = int(r.cols)
		rows = int(float64(cols) * aspect / 2)
		if uint16(rows) > r.rows {
			rows = int(r.rows)
			cols = int(float64(rows) * 2 / aspect)
		}
		return cols, rows
	}
}

func (e *Engine) checkOverflow() error {
	if !e.validateOverflow {
		return nil
	}
	r := e.current()
	used := int(e.backend.CursorRow()) - int(r.startRow)
	if used >= int(r.rows) {
		return &mdserr.OverflowError{Kind: mdserr.VerticalOverflow, MaxAllowed: int(r.rows), Actual: used}
	}
	if e.lastLineWidth > e.lastMaxWidth {
		return &mdserr.OverflowError{Kind: mdserr.HorizontalOverflow, MaxAllowed: e.lastMaxWidth, Actual: e.lastLineWidth}
	}
	return nil
}
