package present

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/widgets"
)

// footerOps builds the footer operation block appended to every slide
// that didn't set no_footer (spec.md §4.1). It's laid out against the
// builder's nominal column width since the real width is only known at
// render time, matching the column-count the footer template's padding
// already assumes for a typical terminal.
func (b *Builder) footerOps(slideIndex int) []render.Operation {
	footerTemplate := b.theme.Footer.Style
	if footerTemplate == "" {
		return nil
	}
	vars := b.footerVarsFor(slideIndex)
	width := int(b.opts.WindowColumns)
	if width <= 0 {
		width = 80
	}
	line := widgets.RenderFooter(footerTemplate, vars, width, lipgloss.Right)

	fg := b.resolveColor(b.theme.Footer.Colors.Foreground)
	s := style.Default()
	if fg != nil {
		c := *fg
		s = s.WithColors(style.Colors{Fg: &c})
	}
	return []render.Operation{
		render.JumpToBottomRow(0),
		render.RenderText(style.NewWeightedLine(style.Line{style.StyledText(line, s)}), render.TextProperties{}),
	}
}

func (b *Builder) footerVarsFor(slideIndex int) map[string]string {
	vars := make(map[string]string, len(b.footerVars)+2)
	for k, v := range b.footerVars {
		vars[k] = v
	}
	vars["current_slide"] = strconv.Itoa(slideIndex + 1)
	vars["total_slides"] = strconv.Itoa(len(b.pres.Slides))
	return vars
}

// buildModals constructs the slide-index and key-bindings modal operation
// lists from the finished slide titles (spec.md §4.1).
func (b *Builder) buildModals(titles []string) {
	width := int(b.opts.WindowColumns)
	if width <= 0 {
		width = 80
	}

	for _, row := range widgets.RenderIndexModal(titles, width) {
		b.pres.IndexModal = append(b.pres.IndexModal,
			render.RenderText(style.NewWeightedLine(style.Line{style.PlainText(row)}), render.TextProperties{}),
			render.RenderLineBreak())
	}
	for _, row := range widgets.RenderKeyBindingsModal(width) {
		b.pres.BindingsModal = append(b.pres.BindingsModal,
			render.RenderText(style.NewWeightedLine(style.Line{style.PlainText(row)}), render.TextProperties{}),
			render.RenderLineBreak())
	}
}
