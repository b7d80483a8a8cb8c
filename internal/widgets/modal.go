package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Binding is one key-bindings modal row.
type Binding struct {
	Keys   string
	Action string
}

// DefaultBindings lists the keys a presentation session responds to.
var DefaultBindings = []Binding{
	{Keys: "n, space, →", Action: "next pause or slide"},
	{Keys: "p, ←", Action: "previous pause or slide"},
	{Keys: "j / k", Action: "jump to next / previous slide"},
	{Keys: "i", Action: "toggle slide index"},
	{Keys: "?", Action: "toggle key bindings"},
	{Keys: "q, ctrl+c", Action: "quit"},
}

// RenderIndexModal lays out one row per slide title, numbered, each
// padded to width columns.
func RenderIndexModal(titles []string, width int) []string {
	rows := make([]string, len(titles))
	style := lipgloss.NewStyle().Width(width)
	for i, t := range titles {
		rows[i] = style.Render(fmt.Sprintf("%3d  %s", i+1, t))
	}
	return rows
}

// RenderKeyBindingsModal lays out the key-bindings table, each row padded
// to width columns.
func RenderKeyBindingsModal(width int) []string {
	rows := make([]string, len(DefaultBindings))
	style := lipgloss.NewStyle().Width(width)
	keyWidth := 0
	for _, b := range DefaultBindings {
		if len(b.Keys) > keyWidth {
			keyWidth = len(b.Keys)
		}
	}
	for i, b := range DefaultBindings {
		rows[i] = style.Render(fmt.Sprintf("%-*s  %s", keyWidth, b.Keys, b.Action))
	}
	return rows
}
