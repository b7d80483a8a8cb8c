package style

import (
	runewidth "github.com/mattn/go-runewidth"
	"github.com/unilibs/uniwidth"
)

// runeWidth returns the terminal column width of r: 2 for wide runes (CJK,
// emoji, fullwidth forms), 1 for normal runes, 0 for zero-width marks and
// control characters.
//
// uniwidth is authoritative (it's the table the teacher package itself
// uses); go-runewidth is consulted only for runes uniwidth reports as
// ambiguous (width -1), since the two tables disagree occasionally on East
// Asian Ambiguous-width codepoints and go-runewidth's East Asian Context
// handling is the more commonly relied-on tiebreaker in the retrieval
// pack's terminal-UI repos.
func runeWidth(r rune) int {
	w := uniwidth.RuneWidth(r)
	if w < 0 {
		return runewidth.RuneWidth(r)
	}
	return w
}
