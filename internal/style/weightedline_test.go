package style

import (
	"strings"
	"testing"
)

func TestSplitRespectsMaxWidth(t *testing.T) {
	line := Line{PlainText("the quick brown fox jumps over the lazy dog")}
	wl := NewWeightedLine(line)

	for _, width := range []int{5, 8, 10, 20} {
		lines := wl.Split(width)
		for _, l := range lines {
			w := NewWeightedLine(l).Width()
			if w > width {
				// Allowed only when a single word exceeds width.
				if strings.ContainsAny(l.AsText(), " ") {
					t.Errorf("width %d: line %q exceeds max width (%d)", width, l.AsText(), w)
				}
			}
		}
	}
}

func TestSplitRoundTrips(t *testing.T) {
	line := Line{PlainText("alpha beta gamma delta epsilon")}
	wl := NewWeightedLine(line)

	lines := wl.Split(10)

	var rebuilt []string
	for _, l := range lines {
		rebuilt = append(rebuilt, l.AsText())
	}
	got := strings.Join(rebuilt, " ")
	if got != wl.AsText() {
		t.Errorf("round trip = %q, want %q", got, wl.AsText())
	}
}

func TestSplitSingleWordWiderThanWidth(t *testing.T) {
	line := Line{PlainText("supercalifragilisticexpialidocious")}
	wl := NewWeightedLine(line)

	lines := wl.Split(10)
	if len(lines) != 1 {
		t.Fatalf("expected the oversized word to stay on one line, got %d lines", len(lines))
	}
	if lines[0].AsText() != line.AsText() {
		t.Errorf("got %q, want %q", lines[0].AsText(), line.AsText())
	}
}

func TestWeightedLineWidthInvariant(t *testing.T) {
	line := Line{
		StyledText("ab", Default().WithSize(2)),
		StyledText("c", Default()),
	}
	wl := NewWeightedLine(line)

	// "ab" at size 2: each rune width 1 * size 2 = 2, two runes => 4.
	// "c" at size 1: width 1.
	want := 4 + 1
	if wl.Width() != want {
		t.Errorf("width = %d, want %d", wl.Width(), want)
	}
}
