// Package transition generates the animated frame sequences shown when
// moving between two slides, each frame a list of termproto.Commands
// ready to hand to a Backend (spec.md §4.7). Frames never touch a real
// terminal directly; each frame carries its own BeginUpdate/EndUpdate pair
// around its drawing commands so a half-painted frame is never shown.
package transition

import (
	"math/rand/v2"

	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/termproto"
)

// Direction is which way the presenter is moving between slides.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Frame is one animation step: a self-contained, orderable command batch.
type Frame []termproto.Command

// HorizontalSlide concatenates left and right's rows side by side and
// slides a window-wide viewport across the combined grid, as if the two
// slides were adjacent panels on a filmstrip. Total frame count is
// combined_cols - window_cols, where window_cols is left's width (the two
// grids are assumed to share the presenter's current window size).
func HorizontalSlide(left, right *termproto.Virtual, dir Direction) []Frame {
	rows := left.Rows()
	if right.Rows() < rows {
		rows = right.Rows()
	}
	windowCols := left.Cols()
	leftCols := left.Cols()
	combinedCols := leftCols + right.Cols()
	total := combinedCols - windowCols
	if total <= 0 {
		return nil
	}

	frames := make([]Frame, 0, total)
	target := right
	if dir == Previous {
		target = left
	}

	for step := 1; step <= total; step++ {
		startCol := step
		if dir == Previous {
			startCol = total - step
		}

		var cmds Frame
		if bg := target.Background(); bg != nil {
			cmds = append(cmds, termproto.SetBackgroundColor(*bg))
		}
		cmds = append(cmds, termproto.BeginUpdate())
		for row := 0; row < rows; row++ {
			cmds = append(cmds, paintRow(row, windowCols, func(col int) (rune, style.TextStyle) {
				combinedCol := startCol + col
				if combinedCol < leftCols {
					return left.Cell(row, combinedCol)
				}
				return right.Cell(row, combinedCol-leftCols)
			})...)
		}
		cmds = append(cmds, termproto.EndUpdate())
		frames = append(frames, cmds)
	}
	return frames
}

// Fade diffs left and right cell-by-cell, shuffles the changed cells, and
// reveals them one per frame so the transition doesn't scan in visual
// reading order. Total frame count is the number of differing cells; a
// pair of identical grids produces zero frames.
func Fade(left, right *termproto.Virtual, dir Direction) []Frame {
	rows := left.Rows()
	if right.Rows() < rows {
		rows = right.Rows()
	}
	cols := left.Cols()
	if right.Cols() < cols {
		cols = right.Cols()
	}

	target := right
	if dir == Previous {
		target = left
	}
	other := left
	if dir == Previous {
		other = right
	}

	type cell struct{ row, col int }
	var changed []cell
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tr, ts := target.Cell(row, col)
			or, os := other.Cell(row, col)
			if tr != or || !sameStyle(ts, os) {
				changed = append(changed, cell{row, col})
			}
		}
	}
	if len(changed) == 0 {
		return nil
	}
	rand.Shuffle(len(changed), func(i, j int) { changed[i], changed[j] = changed[j], changed[i] })

	frames := make([]Frame, 0, len(changed))
	bg := target.Background()
	for i, c := range changed {
		r, s := target.Cell(c.row, c.col)
		var cmds Frame
		if i == 0 && bg != nil {
			cmds = append(cmds, termproto.SetBackgroundColor(*bg))
		}
		cmds = append(cmds,
			termproto.BeginUpdate(),
			termproto.MoveTo(c.col, c.row),
			termproto.PrintText(string(r), s),
			termproto.EndUpdate(),
		)
		frames = append(frames, cmds)
	}
	return frames
}

func sameStyle(a, b style.TextStyle) bool {
	return a.Flags() == b.Flags() && a.Size() == b.Size() && sameColors(a.Colors(), b.Colors())
}

func sameColors(a, b style.Colors) bool {
	return sameColor(a.Fg, b.Fg) && sameColor(a.Bg, b.Bg)
}

func sameColor(a, b *style.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// paintRow emits a MoveTo followed by one PrintText per contiguous run of
// same-styled characters, so a window of N columns doesn't need N separate
// print commands.
func paintRow(row, width int, at func(col int) (rune, style.TextStyle)) []termproto.Command {
	var cmds []termproto.Command
	cmds = append(cmds, termproto.MoveTo(0, row))

	var run []rune
	var runStyle style.TextStyle
	haveRun := false
	flush := func() {
		if haveRun {
			cmds = append(cmds, termproto.PrintText(string(run), runStyle))
			run = nil
			haveRun = false
		}
	}

	for col := 0; col < width; col++ {
		r, s := at(col)
		if haveRun && sameStyle(s, runStyle) {
			run = append(run, r)
			continue
		}
		flush()
		run = append(run, r)
		runStyle = s
		haveRun = true
	}
	flush()
	return cmds
}
