// Package theme loads the declarative YAML theme trees from spec.md §6:
// colors, margins, alignments, headings, code, footer, intro slide,
// alerts, and modals, with extends-based inheritance.
package theme

// Colors is a foreground/background pair expressed as raw theme-source
// strings (a "#rrggbb" literal or a palette class name), resolved against
// a style.Palette by internal/present.
type Colors struct {
	Background string `yaml:"background,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

func (c Colors) Merge(parent Colors) Colors {
	out := c
	if out.Background == "" {
		out.Background = parent.Background
	}
	if out.Foreground == "" {
		out.Foreground = parent.Foreground
	}
	return out
}

// Margin is a horizontal/top/bottom margin in columns/rows.
type Margin struct {
	Horizontal int `yaml:"horizontal,omitempty"`
	Top        int `yaml:"top,omitempty"`
	Bottom     int `yaml:"bottom,omitempty"`
}

func (m Margin) Merge(parent Margin) Margin {
	out := m
	if out.Horizontal == 0 {
		out.Horizontal = parent.Horizontal
	}
	if out.Top == 0 {
		out.Top = parent.Top
	}
	if out.Bottom == 0 {
		out.Bottom = parent.Bottom
	}
	return out
}

// BlockStyle is the styling shared by most content blocks.
type BlockStyle struct {
	Alignment string  `yaml:"alignment,omitempty"` // "left", "center", "right"
	Colors    Colors  `yaml:"colors,omitempty"`
	Margin    *Margin `yaml:"margin,omitempty"`
}

func (b BlockStyle) Merge(parent BlockStyle) BlockStyle {
	out := b
	if out.Alignment == "" {
		out.Alignment = parent.Alignment
	}
	out.Colors = out.Colors.Merge(parent.Colors)
	if out.Margin == nil {
		out.Margin = parent.Margin
	}
	return out
}

// HeadingStyle is a BlockStyle plus the heading's rendered prefix, e.g.
// "# " or "".
type HeadingStyle struct {
	BlockStyle `yaml:",inline"`
	Prefix     string `yaml:"prefix,omitempty"`
}

func (h HeadingStyle) Merge(parent HeadingStyle) HeadingStyle {
	out := h
	out.BlockStyle = out.BlockStyle.Merge(parent.BlockStyle)
	if out.Prefix == "" {
		out.Prefix = parent.Prefix
	}
	return out
}

// CodeStyle styles fenced code blocks.
type CodeStyle struct {
	Colors            Colors `yaml:"colors,omitempty"`
	Padding           Margin `yaml:"padding,omitempty"`
	LineNumbersColors Colors `yaml:"line_numbers_colors,omitempty"`
}

func (c CodeStyle) Merge(parent CodeStyle) CodeStyle {
	out := c
	out.Colors = out.Colors.Merge(parent.Colors)
	out.Padding = out.Padding.Merge(parent.Padding)
	out.LineNumbersColors = out.LineNumbersColors.Merge(parent.LineNumbersColors)
	return out
}

// FooterStyle styles the per-slide footer. Style is a template string
// supporting "{current_slide}" and "{total_slides}" substitutions.
type FooterStyle struct {
	Style  string `yaml:"style,omitempty"`
	Colors Colors `yaml:"colors,omitempty"`
}

func (f FooterStyle) Merge(parent FooterStyle) FooterStyle {
	out := f
	if out.Style == "" {
		out.Style = parent.Style
	}
	out.Colors = out.Colors.Merge(parent.Colors)
	return out
}

// IntroSlideStyle styles the title/author block on the generated intro
// slide built from front-matter metadata.
type IntroSlideStyle struct {
	Title  HeadingStyle `yaml:"title,omitempty"`
	Author BlockStyle   `yaml:"author,omitempty"`
}

func (i IntroSlideStyle) Merge(parent IntroSlideStyle) IntroSlideStyle {
	out := i
	out.Title = out.Title.Merge(parent.Title)
	out.Author = out.Author.Merge(parent.Author)
	return out
}

// AlertStyle styles one GitHub-style alert kind (NOTE, TIP, WARNING, ...).
type AlertStyle struct {
	Prefix string `yaml:"prefix,omitempty"`
	Colors Colors `yaml:"colors,omitempty"`
}

func (a AlertStyle) Merge(parent AlertStyle) AlertStyle {
	out := a
	if out.Prefix == "" {
		out.Prefix = parent.Prefix
	}
	out.Colors = out.Colors.Merge(parent.Colors)
	return out
}

// ModalStyle styles the slide-index and key-bindings modals.
type ModalStyle struct {
	Colors          Colors `yaml:"colors,omitempty"`
	SelectionColors Colors `yaml:"selection_colors,omitempty"`
}

func (m ModalStyle) Merge(parent ModalStyle) ModalStyle {
	out := m
	out.Colors = out.Colors.Merge(parent.Colors)
	out.SelectionColors = out.SelectionColors.Merge(parent.SelectionColors)
	return out
}

// Theme is one theme's full declarative tree. Extends names a parent
// theme to inherit unset fields from (spec.md §6); a theme produced by
// merging an override onto a base must not itself set Extends.
type Theme struct {
	Extends string            `yaml:"extends,omitempty"`
	Palette map[string]string `yaml:"palette,omitempty"`

	Colors   Colors                  `yaml:"colors,omitempty"`
	Margin   Margin                  `yaml:"margin,omitempty"`
	Default  BlockStyle              `yaml:"default,omitempty"`
	Headings map[string]HeadingStyle `yaml:"headings,omitempty"`
	Code     CodeStyle               `yaml:"code,omitempty"`
	Footer   FooterStyle             `yaml:"footer,omitempty"`
	Intro    IntroSlideStyle         `yaml:"intro_slide,omitempty"`
	Alerts   map[string]AlertStyle   `yaml:"alert,omitempty"`
	Modals   ModalStyle              `yaml:"modals,omitempty"`
}

// Merge folds parent's unset fields into t, preferring t's own values
// throughout (spec.md §6 extends semantics). The result never carries an
// Extends of its own: once merged, a theme is final.
func (t Theme) Merge(parent Theme) Theme {
	out := t
	out.Extends = ""
	out.Palette = mergePalette(t.Palette, parent.Palette)
	out.Colors = out.Colors.Merge(parent.Colors)
	out.Margin = out.Margin.Merge(parent.Margin)
	out.Default = out.Default.Merge(parent.Default)
	out.Headings = mergeHeadings(t.Headings, parent.Headings)
	out.Code = out.Code.Merge(parent.Code)
	out.Footer = out.Footer.Merge(parent.Footer)
	out.Intro = out.Intro.Merge(parent.Intro)
	out.Alerts = mergeAlerts(t.Alerts, parent.Alerts)
	out.Modals = out.Modals.Merge(parent.Modals)
	return out
}

func mergePalette(child, parent map[string]string) map[string]string {
	if len(child) == 0 && len(parent) == 0 {
		return nil
	}
	out := make(map[string]string, len(child)+len(parent))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func mergeHeadings(child, parent map[string]HeadingStyle) map[string]HeadingStyle {
	if len(child) == 0 && len(parent) == 0 {
		return nil
	}
	out := make(map[string]HeadingStyle, len(child)+len(parent))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		if existing, ok := out[k]; ok {
			out[k] = v.Merge(existing)
		} else {
			out[k] = v
		}
	}
	return out
}

func mergeAlerts(child, parent map[string]AlertStyle) map[string]AlertStyle {
	if len(child) == 0 && len(parent) == 0 {
		return nil
	}
	out := make(map[string]AlertStyle, len(child)+len(parent))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		if existing, ok := out[k]; ok {
			out[k] = v.Merge(existing)
		} else {
			out[k] = v
		}
	}
	return out
}
