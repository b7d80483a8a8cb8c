package present

import (
	"strings"

	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
)

// tableOps renders a table as a header row, a unicode separator row, and
// body rows, with column widths set to the widest cell per column and
// shorter cells right-padded (spec.md §4.1).
func (b *Builder) tableOps(t *mdsource.Table) []render.Operation {
	widths := columnWidths(t)

	var ops []render.Operation
	ops = append(ops, b.tableRowOps(t.Header, widths, t.Alignments, true)...)
	ops = append(ops, render.RenderText(style.NewWeightedLine(style.Line{style.PlainText(separatorRow(widths))}), render.TextProperties{}))
	ops = append(ops, render.RenderLineBreak())
	for _, row := range t.Rows {
		ops = append(ops, b.tableRowOps(row, widths, t.Alignments, false)...)
	}
	return ops
}

func columnWidths(t *mdsource.Table) []int {
	widths := make([]int, len(t.Header))
	for i, cell := range t.Header {
		widths[i] = cellWidth(cell)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			if w := cellWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func cellWidth(s string) int {
	return style.NewWeightedLine(style.Line{style.PlainText(s)}).Width()
}

func (b *Builder) tableRowOps(cells []string, widths []int, aligns []mdsource.TableAlignment, header bool) []render.Operation {
	var sb strings.Builder
	for i, cell := range cells {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		sb.WriteString(padCell(cell, w, alignmentFor(aligns, i)))
		if i < len(cells)-1 {
			sb.WriteString(" │ ")
		}
	}
	s := style.Default()
	if header {
		s = s.WithFlag(style.FlagBold)
	}
	line := style.Line{style.StyledText(sb.String(), s)}
	return []render.Operation{render.RenderText(style.NewWeightedLine(line), render.TextProperties{}), render.RenderLineBreak()}
}

func alignmentFor(aligns []mdsource.TableAlignment, i int) mdsource.TableAlignment {
	if i < len(aligns) {
		return aligns[i]
	}
	return mdsource.AlignNone
}

func padCell(cell string, width int, align mdsource.TableAlignment) string {
	w := cellWidth(cell)
	pad := width - w
	if pad < 0 {
		pad = 0
	}
	switch align {
	case mdsource.AlignRight:
		return strings.Repeat(" ", pad) + cell
	case mdsource.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
	default:
		return cell + strings.Repeat(" ", pad)
	}
}

func separatorRow(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}
