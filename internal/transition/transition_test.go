package transition

import (
	"testing"

	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/termproto"
)

func gridWithText(rows, cols int, text string) *termproto.Virtual {
	v := termproto.NewVirtual(rows, cols)
	_ = v.Execute(termproto.MoveTo(0, 0))
	_ = v.Execute(termproto.PrintText(text, style.Default()))
	return v
}

func TestHorizontalSlideFrameCount(t *testing.T) {
	left := termproto.NewVirtual(3, 10)
	right := termproto.NewVirtual(3, 10)

	frames := HorizontalSlide(left, right, Next)
	if len(frames) != right.Cols() {
		t.Fatalf("expected %d frames, got %d", right.Cols(), len(frames))
	}
}

func TestHorizontalSlideFinalFrameShowsRight(t *testing.T) {
	left := gridWithText(1, 5, "AAAAA")
	right := gridWithText(1, 5, "BBBBB")

	frames := HorizontalSlide(left, right, Next)
	if len(frames) == 0 {
		t.Fatalf("expected at least one frame")
	}
	last := frames[len(frames)-1]

	var text string
	for _, cmd := range last {
		if cmd.Kind == termproto.KindPrintText {
			text += cmd.Text
		}
	}
	if text != "BBBBB" {
		t.Fatalf("expected final frame to show right's content, got %q", text)
	}
}

func TestHorizontalSlidePreviousReverses(t *testing.T) {
	left := termproto.NewVirtual(2, 8)
	right := termproto.NewVirtual(2, 8)

	next := HorizontalSlide(left, right, Next)
	prev := HorizontalSlide(left, right, Previous)
	if len(next) != len(prev) {
		t.Fatalf("expected symmetric frame counts, got %d vs %d", len(next), len(prev))
	}
}

func TestHorizontalSlideEmptyWhenNoWidthDelta(t *testing.T) {
	left := termproto.NewVirtual(2, 0)
	right := termproto.NewVirtual(2, 0)
	if frames := HorizontalSlide(left, right, Next); frames != nil {
		t.Fatalf("expected no frames for a zero-width grid, got %d", len(frames))
	}
}

func TestFadeFrameCountMatchesDiff(t *testing.T) {
	left := gridWithText(1, 5, "AAAAA")
	right := gridWithText(1, 5, "ABABA")

	frames := Fade(left, right, Next)
	// positions 1 and 3 differ (A vs B at even/odd split): "AAAAA" vs "ABABA"
	// differs at indices 1 and 3.
	if len(frames) != 2 {
		t.Fatalf("expected 2 changed cells, got %d frames", len(frames))
	}
}

func TestFadeNoChangesProducesNoFrames(t *testing.T) {
	left := gridWithText(1, 5, "AAAAA")
	right := gridWithText(1, 5, "AAAAA")

	if frames := Fade(left, right, Next); frames != nil {
		t.Fatalf("expected no frames for identical grids, got %d", len(frames))
	}
}

func TestFadeRevealsEachChangeExactlyOnce(t *testing.T) {
	left := gridWithText(1, 4, "AAAA")
	right := gridWithText(1, 4, "BBBB")

	frames := Fade(left, right, Next)
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}

	seen := map[[2]int]bool{}
	for _, f := range frames {
		var moved bool
		var row, col int
		for _, cmd := range f {
			if cmd.Kind == termproto.KindMoveTo {
				row, col, moved = cmd.Row, cmd.Col, true
			}
		}
		if !moved {
			t.Fatalf("expected each fade frame to move the cursor")
		}
		key := [2]int{row, col}
		if seen[key] {
			t.Fatalf("cell (%d,%d) revealed more than once", row, col)
		}
		seen[key] = true
	}
}

func TestFadeEachFrameWrappedInUpdateBoundary(t *testing.T) {
	left := gridWithText(1, 2, "AA")
	right := gridWithText(1, 2, "BB")

	frames := Fade(left, right, Next)
	for _, f := range frames {
		if f[0].Kind != termproto.KindBeginUpdate {
			t.Fatalf("expected frame to start with BeginUpdate, got %v", f[0].Kind)
		}
		if f[len(f)-1].Kind != termproto.KindEndUpdate {
			t.Fatalf("expected frame to end with EndUpdate, got %v", f[len(f)-1].Kind)
		}
	}
}
