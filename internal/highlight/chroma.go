package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/mdshow/mdshow/internal/style"
)

// Chroma is the default Highlighter, backed by chroma/v2's lexer and
// style registries. It's the syntax-highlighting library the rest of the
// pack's TUI-adjacent repos reach for, so mdshow code blocks are
// highlighted the same way rather than via a hand-rolled tokenizer.
type Chroma struct {
	styleName string
}

// NewChroma builds a Chroma highlighter using the named chroma style
// (e.g. "monokai", "dracula"); an unknown name falls back to chroma's
// own default style.
func NewChroma(styleName string) *Chroma {
	return &Chroma{styleName: styleName}
}

func (c *Chroma) Highlight(code, language string) ([]style.Line, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	chromaStyle := styles.Get(c.styleName)
	if chromaStyle == nil {
		chromaStyle = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}

	var lines []style.Line
	var current style.Line

	flushRun := func(value string, s style.TextStyle) {
		for i, part := range strings.Split(value, "\n") {
			if i > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, style.StyledText(part, s))
			}
		}
	}

	for _, tok := range iterator.Tokens() {
		flushRun(tok.Value, chromaEntryToStyle(chromaStyle.Get(tok.Type)))
	}
	lines = append(lines, current)

	return lines, nil
}

func chromaEntryToStyle(entry chroma.StyleEntry) style.TextStyle {
	s := style.Default()
	colors := s.Colors()
	if entry.Colour.IsSet() {
		fg := style.Color{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()}
		colors.Fg = &fg
	}
	if entry.Background.IsSet() {
		bg := style.Color{R: entry.Background.Red(), G: entry.Background.Green(), B: entry.Background.Blue()}
		colors.Bg = &bg
	}
	s = s.WithColors(colors)

	if entry.Bold == chroma.Yes {
		s = s.WithFlag(style.FlagBold)
	}
	if entry.Italic == chroma.Yes {
		s = s.WithFlag(style.FlagItalic)
	}
	if entry.Underline == chroma.Yes {
		s = s.WithFlag(style.FlagUnderlined)
	}
	return s
}
