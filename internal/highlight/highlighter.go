// Package highlight turns a fenced code block's raw text into styled
// lines, pluggable behind an interface so a presentation can ask for
// syntax highlighting without internal/present needing to know which
// tokenizer produced it (spec.md §3.3).
package highlight

import "github.com/mdshow/mdshow/internal/style"

// Highlighter tokenizes code written in language and returns one
// style.Line per source line.
type Highlighter interface {
	Highlight(code, language string) ([]style.Line, error)
}
