package present

import (
	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
)

// HighlightMutator renders a highlighted code block one declared
// {group} at a time, dimming the lines outside the active group, and
// implements render.AsRenderOperations so MutateNext/MutatePrevious take
// effect on the next redraw without the builder rebuilding the chunk
// (spec.md §4.1).
type HighlightMutator struct {
	lines       []style.Line
	prefixes    []*style.Text
	blockColor  *style.Color
	blockLength uint16
	mutedFg     *style.Color
	groups      []mdsource.LineRange
	current     int
}

// NewHighlightMutator builds a mutator over lines, one per source line of
// the code block. groups is the snippet's declared highlight ranges; if
// empty, a single group covering every line is used so the mutator always
// has at least one step.
func NewHighlightMutator(lines []style.Line, prefixes []*style.Text, blockColor *style.Color, blockLength uint16, mutedFg *style.Color, groups []mdsource.LineRange) *HighlightMutator {
	if len(groups) == 0 {
		groups = []mdsource.LineRange{{Start: 1, End: len(lines)}}
	}
	return &HighlightMutator{
		lines:       lines,
		prefixes:    prefixes,
		blockColor:  blockColor,
		blockLength: blockLength,
		mutedFg:     mutedFg,
		groups:      groups,
	}
}

func (m *HighlightMutator) MutateNext() {
	if m.current < len(m.groups)-1 {
		m.current++
	}
}

func (m *HighlightMutator) MutatePrevious() {
	if m.current > 0 {
		m.current--
	}
}

func (m *HighlightMutator) Reset() { m.current = 0 }

func (m *HighlightMutator) ApplyAll() { m.current = len(m.groups) - 1 }

func (m *HighlightMutator) Mutations() (int, int) { return m.current + 1, len(m.groups) }

func (m *HighlightMutator) active(lineNum int) bool {
	g := m.groups[m.current]
	return lineNum >= g.Start && lineNum <= g.End
}

// AsRenderOperations implements render.AsRenderOperations.
func (m *HighlightMutator) AsRenderOperations(_ render.WindowSize, sink *[]render.Operation) {
	for i, l := range m.lines {
		lineNum := i + 1
		line := l
		if !m.active(lineNum) {
			line = m.dim(l)
		}
		bl := render.BlockLine{
			Line:        style.NewWeightedLine(line),
			BlockColor:  m.blockColor,
			BlockLength: m.blockLength,
		}
		if m.prefixes != nil && m.prefixes[i] != nil {
			bl.Prefix = *m.prefixes[i]
		}
		*sink = append(*sink, render.RenderBlockLine(bl))
		*sink = append(*sink, render.RenderLineBreak())
	}
}

func (m *HighlightMutator) dim(l style.Line) style.Line {
	if m.mutedFg == nil {
		return l
	}
	out := make(style.Line, len(l))
	for i, t := range l {
		colors := t.Style.Colors()
		fg := *m.mutedFg
		colors.Fg = &fg
		out[i] = style.StyledText(t.Content, t.Style.WithColors(colors))
	}
	return out
}
