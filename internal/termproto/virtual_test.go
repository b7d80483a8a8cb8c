package termproto

import (
	"testing"

	"github.com/mdshow/mdshow/internal/style"
)

func TestVirtualOnlyWrittenCellsAreNonBlank(t *testing.T) {
	v := NewVirtual(5, 20)

	must(t, v.Execute(MoveTo(2, 1)))
	must(t, v.Execute(PrintText("hi", style.Default())))

	for row := 0; row < v.Rows(); row++ {
		for col := 0; col < v.Cols(); col++ {
			ch, _ := v.Cell(row, col)
			switch {
			case row == 1 && col == 2:
				if ch != 'h' {
					t.Errorf("cell (1,2) = %q, want 'h'", ch)
				}
			case row == 1 && col == 3:
				if ch != 'i' {
					t.Errorf("cell (1,3) = %q, want 'i'", ch)
				}
			default:
				if ch != ' ' {
					t.Errorf("cell (%d,%d) = %q, want ' '", row, col, ch)
				}
			}
		}
	}
}

func TestVirtualDeterministic(t *testing.T) {
	run := func() [][]rune {
		v := NewVirtual(3, 10)
		must(t, v.Execute(BeginUpdate()))
		must(t, v.Execute(MoveTo(0, 0)))
		must(t, v.Execute(PrintText("abc", style.Default())))
		must(t, v.Execute(MoveToNextLine()))
		must(t, v.Execute(PrintText("def", style.Default())))
		must(t, v.Execute(EndUpdate()))

		out := make([][]rune, v.Rows())
		for r := range out {
			out[r] = make([]rune, v.Cols())
			for c := range out[r] {
				out[r][c], _ = v.Cell(r, c)
			}
		}
		return out
	}

	a, b := run(), run()
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("non-deterministic output at (%d,%d): %q vs %q", r, c, a[r][c], b[r][c])
			}
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
