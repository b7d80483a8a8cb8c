package highlight

import (
	"strings"
	"testing"
)

func TestHighlightSplitsLines(t *testing.T) {
	c := NewChroma("monokai")

	lines, err := c.Highlight("package main\n\nfunc main() {}\n", "go")
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}

	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d", len(lines))
	}

	var rebuilt []string
	for _, l := range lines {
		rebuilt = append(rebuilt, l.AsText())
	}
	got := strings.Join(rebuilt, "\n")
	want := "package main\n\nfunc main() {}\n"
	if got != want {
		t.Fatalf("round trip mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestHighlightAssignsColors(t *testing.T) {
	c := NewChroma("monokai")

	lines, err := c.Highlight(`"a string"`, "go")
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}

	var sawColor bool
	for _, l := range lines {
		for _, text := range l {
			if text.Style.Colors().Fg != nil {
				sawColor = true
			}
		}
	}
	if !sawColor {
		t.Fatal("expected at least one styled token with a foreground color")
	}
}

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	c := NewChroma("does-not-exist")

	lines, err := c.Highlight("some text here\n", "not-a-real-language")
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("expected fallback lexer to still produce lines")
	}
}
