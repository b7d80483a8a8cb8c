package present

import (
	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/theme"
)

// convertInline turns one mdsource.Inline into a styled style.Text,
// resolving any raw color strings against the active palette. An
// unresolvable color (an undefined palette class) is dropped rather than
// failing the whole build, matching the builder's stance that cosmetic
// color references are best-effort.
func (b *Builder) convertInline(in mdsource.Inline) style.Text {
	s := style.Default().WithSize(b.fontSize)
	if in.Bold {
		s = s.WithFlag(style.FlagBold)
	}
	if in.Italic {
		s = s.WithFlag(style.FlagItalic)
	}
	if in.Code {
		s = s.WithFlag(style.FlagCode)
	}
	if in.Strikethrough {
		s = s.WithFlag(style.FlagStrikethrough)
	}
	if in.Superscript {
		s = s.WithFlag(style.FlagSuperscript)
	}

	var colors style.Colors
	if in.Color != "" {
		if c, err := b.palette.Resolve(theme.ParseRawColor(in.Color)); err == nil {
			colors.Fg = &c
		}
	}
	if in.Background != "" {
		if c, err := b.palette.Resolve(theme.ParseRawColor(in.Background)); err == nil {
			colors.Bg = &c
		}
	}
	s = s.WithColors(colors)
	return style.StyledText(in.Text, s)
}

// paragraphOps converts a paragraph's inlines into RenderText operations,
// one per explicit line break, and RenderImage operations for any inline
// images. A paragraph made of a single InlineImage and nothing else is
// how a standalone image is spelled in the source.
func (b *Builder) paragraphOps(p *mdsource.Paragraph, align render.Alignment) []render.Operation {
	var ops []render.Operation
	var current style.Line

	flush := func() {
		if len(current) == 0 {
			return
		}
		ops = append(ops, render.RenderText(style.NewWeightedLine(current), render.TextProperties{Alignment: align}))
		ops = append(ops, render.RenderLineBreak())
		current = nil
	}

	for _, in := range p.Inlines {
		switch in.Kind {
		case mdsource.InlineText:
			current = append(current, b.convertInline(in))
		case mdsource.InlineLineBreak:
			flush()
		case mdsource.InlineImage:
			flush()
			if op, err := b.imageOperation(in.ImageSrc); err == nil {
				ops = append(ops, op)
			}
		}
	}
	flush()
	return ops
}

// inlinesToLine flattens inlines (ignoring embedded images/breaks) into a
// single styled Line, used for headings and list items.
func (b *Builder) inlinesToLine(inlines []mdsource.Inline) style.Line {
	var line style.Line
	for _, in := range inlines {
		if in.Kind == mdsource.InlineText {
			line = append(line, b.convertInline(in))
		}
	}
	return line
}
