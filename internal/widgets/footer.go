// Package widgets lays out the presentation chrome that isn't part of the
// slide content itself: the per-slide footer and the two overlay modals
// (slide index, key bindings). Layout math is delegated to lipgloss, the
// library the rest of the pack's terminal-UI repos reach for; the actual
// color styling of the resulting lines is applied by internal/present
// against the active theme, so widgets only ever hands back plain padded
// text.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderFooter substitutes {var} placeholders in template from vars, then
// places the result within width columns per align.
func RenderFooter(template string, vars map[string]string, width int, align lipgloss.Position) string {
	text := substitute(template, vars)
	if width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(width, align, text)
}

func substitute(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
