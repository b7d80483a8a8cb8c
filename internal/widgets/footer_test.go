package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderFooterSubstitutesVars(t *testing.T) {
	got := RenderFooter("{current_slide} / {total_slides}", map[string]string{
		"current_slide": "2",
		"total_slides":  "5",
	}, 0, lipgloss.Left)
	if got != "2 / 5" {
		t.Fatalf("expected substituted footer, got %q", got)
	}
}

func TestRenderFooterPadsToWidth(t *testing.T) {
	got := RenderFooter("hi", nil, 10, lipgloss.Right)
	if len([]rune(got)) != 10 {
		t.Fatalf("expected width-10 output, got %d runes: %q", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, "hi") {
		t.Fatalf("expected right-aligned text, got %q", got)
	}
}

func TestRenderFooterLeavesUnknownPlaceholders(t *testing.T) {
	got := RenderFooter("{unknown}", nil, 0, lipgloss.Left)
	if got != "{unknown}" {
		t.Fatalf("expected unresolved placeholder to pass through, got %q", got)
	}
}
