package mdsource

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// InlineKind discriminates an Inline's variant.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineImage
	InlineLineBreak
)

// Inline is one run of styled inline content, or an inline image, or a
// forced line break, in source order within its containing block.
type Inline struct {
	Kind InlineKind

	Text          string
	Bold          bool
	Italic        bool
	Code          bool
	Strikethrough bool
	Superscript   bool
	Color         string // raw CSS-like color from <span style="color:...">
	Background    string // raw CSS-like color from <span style="background-color:...">

	ImageSrc string
	ImageAlt string
}

type inlineState struct {
	bold, italic, code, strikethrough, superscript bool
	color, background                              string
}

func (s inlineState) toInline(content string) Inline {
	return Inline{
		Kind:          InlineText,
		Text:          content,
		Bold:          s.bold,
		Italic:        s.italic,
		Code:          s.code,
		Strikethrough: s.strikethrough,
		Superscript:   s.superscript,
		Color:         s.color,
		Background:    s.background,
	}
}

// renderInlines walks n's inline children, appending one Inline per text
// run (or image, or line break) to out. state carries the styling in
// effect from enclosing emphasis/code-span/span nodes.
func renderInlines(n ast.Node, source []byte, state inlineState, out *[]Inline) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			if value := string(node.Segment.Value(source)); value != "" {
				*out = append(*out, state.toInline(value))
			}
			if node.SoftLineBreak() || node.HardLineBreak() {
				*out = append(*out, Inline{Kind: InlineLineBreak})
			}
		case *ast.Emphasis:
			next := state
			if node.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			renderInlines(node, source, next, out)
		case *ast.CodeSpan:
			next := state
			next.code = true
			renderInlines(node, source, next, out)
		case *extast.Strikethrough:
			next := state
			next.strikethrough = true
			renderInlines(node, source, next, out)
		case *ast.AutoLink:
			*out = append(*out, state.toInline(string(node.URL(source))))
		case *ast.Link:
			renderInlines(node, source, state, out)
		case *ast.Image:
			*out = append(*out, Inline{
				Kind:     InlineImage,
				ImageSrc: string(node.Destination),
				ImageAlt: plainText(node, source),
			})
		case *ast.RawHTML:
			handleRawHTML(segmentsText(node.Segments, source), &state)
		default:
			renderInlines(c, source, state, out)
		}
	}
}

// plainText flattens n's inline descendants to unstyled text, used for an
// image's alt text.
func plainText(n ast.Node, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.WriteString(plainText(c, source))
	}
	return buf.String()
}

func segmentsText(segs *text.Segments, source []byte) string {
	var buf strings.Builder
	for i := 0; i < segs.Len(); i++ {
		buf.Write(segs.At(i).Value(source))
	}
	return buf.String()
}

var spanStyleRe = regexp.MustCompile(`style\s*=\s*"([^"]*)"`)
var colorRe = regexp.MustCompile(`(?:^|;)\s*color\s*:\s*([^;]+)`)
var backgroundRe = regexp.MustCompile(`(?:^|;)\s*background-color\s*:\s*([^;]+)`)

// handleRawHTML updates state for the subset of inline HTML the Markdown
// input contract allows: <span style="color:...; background-color:...">
// and <sup> (spec.md §6).
func handleRawHTML(raw string, state *inlineState) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(lower, "<sup"):
		state.superscript = true
	case strings.HasPrefix(lower, "</sup"):
		state.superscript = false
	case strings.HasPrefix(lower, "<span"):
		style := spanStyleRe.FindStringSubmatch(raw)
		if len(style) != 2 {
			return
		}
		if m := colorRe.FindStringSubmatch(style[1]); m != nil {
			state.color = strings.TrimSpace(m[1])
		}
		if m := backgroundRe.FindStringSubmatch(style[1]); m != nil {
			state.background = strings.TrimSpace(m[1])
		}
	case strings.HasPrefix(lower, "</span"):
		state.color = ""
		state.background = ""
	}
}

// flattenText joins a's text runs into a plain string, used for table
// cells where the data model only needs a string, not inline style.
func flattenText(inlines []Inline) string {
	var buf strings.Builder
	for _, in := range inlines {
		if in.Kind == InlineText {
			buf.WriteString(in.Text)
		}
	}
	return buf.String()
}
