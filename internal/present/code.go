package present

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mdshow/mdshow/internal/async"
	"github.com/mdshow/mdshow/internal/execute"
	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/vtparse"
)

// codeBlockOps converts a fenced/indented code block into the operations
// for one chunk, plus any ChunkMutator the highlight groups require, and
// registers an executable block with the builder's snippet table when it
// declares an id.
func (b *Builder) codeBlockOps(cb *mdsource.CodeBlock) ([]render.Operation, []ChunkMutator) {
	lines, err := b.highlighter.Highlight(cb.Code, cb.Attributes.Language)
	if err != nil || len(lines) == 0 {
		lines = plainLines(cb.Code)
	}

	var prefixes []*style.Text
	if cb.Attributes.LineNumbers {
		prefixes = make([]*style.Text, len(lines))
		width := len(strconv.Itoa(len(lines)))
		for i := range lines {
			t := style.StyledText(fmt.Sprintf("%*d │ ", width, i+1), b.lineNumberStyle())
			prefixes[i] = &t
		}
	}

	bg := b.resolveColor(b.theme.Code.Colors.Background)
	blockLength := uint16(0)
	if !cb.Attributes.NoBackground {
		blockLength = maxLineWidth(lines) + uint16(b.theme.Code.Padding.Horizontal)*2
	} else {
		bg = nil
	}

	var ops []render.Operation
	var mutators []ChunkMutator

	if len(cb.Attributes.HighlightGroups) > 0 {
		m := NewHighlightMutator(lines, prefixes, bg, blockLength, b.resolveColor(b.theme.Code.LineNumbersColors.Foreground), cb.Attributes.HighlightGroups)
		ops = append(ops, render.RenderDynamic(m))
		mutators = append(mutators, m)
	} else {
		for i, l := range lines {
			bl := render.BlockLine{Line: style.NewWeightedLine(l), BlockColor: bg, BlockLength: blockLength}
			if prefixes != nil && prefixes[i] != nil {
				bl.Prefix = *prefixes[i]
			}
			ops = append(ops, render.RenderBlockLine(bl), render.RenderLineBreak())
		}
	}

	if cb.Attributes.Exec || cb.Attributes.ExecReplace || cb.Attributes.Image || cb.Attributes.PTY || cb.Attributes.AcquireTerminal {
		exec := b.newSnippetExecution(cb, cb.Attributes.ID)
		if cb.Attributes.ID != "" {
			b.snippets[cb.Attributes.ID] = exec
		}
		ops = append(ops, render.RenderLineBreak(), render.RenderAsyncOp(exec))
	}

	return ops, mutators
}

func (b *Builder) lineNumberStyle() style.TextStyle {
	s := style.Default()
	if fg := b.resolveColor(b.theme.Code.LineNumbersColors.Foreground); fg != nil {
		c := *fg
		s = s.WithColors(style.Colors{Fg: &c})
	}
	return s
}

func plainLines(code string) []style.Line {
	var lines []style.Line
	for _, l := range strings.Split(code, "\n") {
		lines = append(lines, style.Line{style.PlainText(l)})
	}
	return lines
}

func maxLineWidth(lines []style.Line) uint16 {
	var max uint16
	for _, l := range lines {
		if w := uint16(style.NewWeightedLine(l).Width()); w > max {
			max = w
		}
	}
	return max
}

// terminalSuspender lets a SnippetExecution hand the real terminal to an
// acquire_terminal child process and take it back when done. Structurally
// matches execute.Executor.RunAcquiringTerminal's unexported parameter
// interface, and termproto.Real's Suspend/Resume pair.
type terminalSuspender interface {
	Suspend() error
	Resume() error
}

// SnippetExecution is a render.RenderAsync over one executable code
// block: it lazily starts the child process on its first Pollable() call
// and renders its captured output as it arrives (spec.md §4.3, §4.4).
type SnippetExecution struct {
	executor  *execute.Executor
	snippet   execute.Snippet
	suspender terminalSuspender
	rows      int
	cols      int

	mu       sync.Mutex
	started  bool
	state    *execute.State
	startErr error
	doneText string
}

func (b *Builder) newSnippetExecution(cb *mdsource.CodeBlock, id string) *SnippetExecution {
	mode := execute.ModeCapture
	switch {
	case cb.Attributes.AcquireTerminal:
		mode = execute.ModeAcquireTerminal
	case cb.Attributes.PTY:
		mode = execute.ModePTY
	case cb.Attributes.Image:
		mode = execute.ModeImage
	}
	return &SnippetExecution{
		executor: b.opts.Executor,
		snippet: execute.Snippet{
			ID:        id,
			Language:  cb.Attributes.Language,
			Code:      cb.Code,
			Mode:      mode,
			AutoStart: false,
		},
		suspender: b.opts.TerminalSuspender,
		rows:      24,
		cols:      80,
	}
}

func (e *SnippetExecution) ensureStarted() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	if e.executor == nil {
		e.startErr = fmt.Errorf("snippet execution disabled")
		return
	}

	switch e.snippet.Mode {
	case execute.ModeAcquireTerminal:
		if e.suspender == nil {
			e.startErr = fmt.Errorf("acquire_terminal snippet requires --acquire-terminal-on-suspend")
			return
		}
		if err := e.executor.RunAcquiringTerminal(context.Background(), e.snippet, e.suspender); err != nil {
			e.startErr = err
			return
		}
		e.doneText = "command finished"
	case execute.ModePTY:
		st, err := e.executor.RunPTY(context.Background(), e.snippet, e.rows, e.cols)
		e.state, e.startErr = st, err
	default:
		st, err := e.executor.Run(context.Background(), e.snippet)
		e.state, e.startErr = st, err
	}
}

// Pollable implements render.RenderAsync. Creating a pollable after the
// snippet has already finished yields one whose first poll reports the
// same terminal state again, since it's backed by the same *execute.State
// (spec.md §4.3's idempotent-creation guarantee).
func (e *SnippetExecution) Pollable() async.Pollable {
	e.ensureStarted()
	if e.startErr != nil {
		startErr := e.startErr
		return async.DoneFunc(func() (async.State, error) { return async.StateFailed, startErr })
	}
	return e.state
}

// StartPolicy implements render.RenderAsync.
func (e *SnippetExecution) StartPolicy() async.StartPolicy {
	if e.snippet.AutoStart {
		return async.Automatic
	}
	return async.OnDemand
}

// AsRenderOperations implements render.AsRenderOperations. Capture and
// image-mode snippets show their raw stdout as plain text; PTY-mode
// snippets read the cell grid off the snippet's vtparse.Terminal so that
// cursor motion and SGR colors emitted by the child process land as the
// styled text they describe rather than literal escape bytes (spec.md
// §4.4). This is the only place PTY output is rendered: the interactive
// redraw loop and the HTML export path both route through AsRenderOperations.
func (e *SnippetExecution) AsRenderOperations(_ render.WindowSize, sink *[]render.Operation) {
	e.mu.Lock()
	st := e.state
	startErr := e.startErr
	e.mu.Unlock()

	if startErr != nil {
		*sink = append(*sink, render.RenderText(style.NewWeightedLine(style.Line{style.PlainText("error: " + startErr.Error())}), render.TextProperties{}))
		return
	}
	if st == nil {
		return
	}

	if term := st.Terminal(); term != nil {
		for _, l := range terminalLines(term) {
			*sink = append(*sink, render.RenderText(style.NewWeightedLine(l), render.TextProperties{}), render.RenderLineBreak())
		}
		return
	}

	for _, l := range plainLines(string(st.Stdout())) {
		*sink = append(*sink, render.RenderText(style.NewWeightedLine(l), render.TextProperties{}), render.RenderLineBreak())
	}
}

// terminalLines reads a vtparse.Terminal's visible cell grid and groups
// consecutive cells sharing a resolved style into style.Text runs, one
// style.Line per row. Trailing blank rows (the PTY's unused screen area)
// are trimmed the same way Terminal.String does.
func terminalLines(term *vtparse.Terminal) []style.Line {
	rows, cols := term.Rows(), term.Cols()
	lines := make([]style.Line, 0, rows)
	lastNonEmpty := -1

	for row := 0; row < rows; row++ {
		line := terminalRowLine(term, row, cols)
		lines = append(lines, line)
		if len(line) > 0 {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return nil
	}
	return lines[:lastNonEmpty+1]
}

func terminalRowLine(term *vtparse.Terminal, row, cols int) style.Line {
	var line style.Line
	var run []rune
	var runStyle style.TextStyle
	var runKey cellStyleKey
	haveRun := false

	flush := func() {
		if haveRun && len(run) > 0 {
			line = append(line, style.StyledText(string(run), runStyle))
		}
		run = nil
		haveRun = false
	}

	last := -1
	for col := cols - 1; col >= 0; col-- {
		if c := term.Cell(row, col); c != nil && !c.IsWideSpacer() && c.Char != ' ' && c.Char != 0 {
			last = col
			break
		}
	}

	for col := 0; col <= last; col++ {
		cell := term.Cell(row, col)
		if cell == nil || cell.IsWideSpacer() {
			continue
		}
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		s, key := cellTextStyle(cell)
		if !haveRun || key != runKey {
			flush()
			haveRun = true
			runStyle = s
			runKey = key
		}
		run = append(run, ch)
	}
	flush()

	return line
}

// cellStyleKey is a comparable summary of a cellTextStyle result, used to
// detect runs of cells sharing a style without comparing style.TextStyle
// values (whose Colors hold pointers, so == would compare addresses).
type cellStyleKey struct {
	fg, bg style.Color
	flags  style.Flag
}

// cellTextStyle maps a vtparse.Cell's colors and attribute flags onto a
// style.TextStyle. CellFlagReverse has no style.Flag equivalent, so it's
// applied by swapping the resolved foreground and background instead.
func cellTextStyle(cell *vtparse.Cell) (style.TextStyle, cellStyleKey) {
	fgColor := vtparse.ResolveColor(cell.Fg, true)
	bgColor := vtparse.ResolveColor(cell.Bg, false)
	fg := style.Color{R: fgColor.R, G: fgColor.G, B: fgColor.B}
	bg := style.Color{R: bgColor.R, G: bgColor.G, B: bgColor.B}
	if cell.HasFlag(vtparse.CellFlagReverse) {
		fg, bg = bg, fg
	}

	s := style.Default().WithColors(style.Colors{Fg: &fg, Bg: &bg})
	if cell.HasFlag(vtparse.CellFlagBold) {
		s = s.WithFlag(style.FlagBold)
	}
	if cell.HasFlag(vtparse.CellFlagItalic) {
		s = s.WithFlag(style.FlagItalic)
	}
	if cell.HasFlag(vtparse.CellFlagUnderline) || cell.HasFlag(vtparse.CellFlagDoubleUnderline) ||
		cell.HasFlag(vtparse.CellFlagCurlyUnderline) || cell.HasFlag(vtparse.CellFlagDottedUnderline) ||
		cell.HasFlag(vtparse.CellFlagDashedUnderline) {
		s = s.WithFlag(style.FlagUnderlined)
	}
	if cell.HasFlag(vtparse.CellFlagStrike) {
		s = s.WithFlag(style.FlagStrikethrough)
	}
	return s, cellStyleKey{fg: fg, bg: bg, flags: s.Flags()}
}
