package present

import (
	"strconv"
	"strings"

	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/render"
)

// commandKind discriminates a parsed command comment (spec.md §4.1).
type commandKind int

const (
	cmdPause commandKind = iota
	cmdEndSlide
	cmdNewLine
	cmdJumpToMiddle
	cmdColumnLayout
	cmdColumn
	cmdResetLayout
	cmdIncrementalLists
	cmdNoFooter
	cmdSpeakerNote
	cmdFontSize
	cmdAlignment
	cmdSkipSlide
	cmdListItemNewlines
	cmdInclude
	cmdSnippetOutput
)

// command is one parsed command comment.
type command struct {
	kind      commandKind
	count     int
	columns   []uint8
	alignment render.Alignment
	path      string
	id        string
	note      string
}

// commandKeywords is the set of words that mark a comment as a command
// comment: once the leading word matches one of these, a parse failure
// past it is fatal rather than the comment being silently ignored.
var commandKeywords = map[string]bool{
	"pause": true, "end_slide": true, "new_line": true, "new_lines": true,
	"jump_to_middle": true, "column_layout": true, "column": true,
	"reset_layout": true, "incremental_lists": true, "no_footer": true,
	"speaker_note": true, "font_size": true, "alignment": true,
	"skip_slide": true, "list_item_newlines": true, "include": true,
	"snippet_output": true,
}

func commandWord(text string) string {
	if idx := strings.IndexAny(text, ": "); idx >= 0 {
		return text[:idx]
	}
	return text
}

// parseComment parses raw comment text into a command. ok is false when
// the comment isn't a recognized command at all (vim modelines, fold
// markers, arbitrary notes) and should simply be ignored.
func parseComment(raw string, file string, line int) (cmd *command, ok bool, err error) {
	text := strings.TrimSpace(raw)
	word := commandWord(text)
	if !commandKeywords[word] {
		return nil, false, nil
	}

	switch {
	case text == "pause":
		return &command{kind: cmdPause}, true, nil
	case text == "end_slide":
		return &command{kind: cmdEndSlide}, true, nil
	case text == "new_line" || text == "new_lines":
		return &command{kind: cmdNewLine, count: 1}, true, nil
	case text == "jump_to_middle":
		return &command{kind: cmdJumpToMiddle}, true, nil
	case strings.HasPrefix(text, "column_layout:"):
		cols, err := parseColumnLayout(strings.TrimPrefix(text, "column_layout:"))
		if err != nil {
			return nil, true, posErr(file, line, err)
		}
		return &command{kind: cmdColumnLayout, columns: cols}, true, nil
	case strings.HasPrefix(text, "column:"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "column:")))
		if err != nil {
			return nil, true, posErr(file, line, &mdserr.InvalidCommandError{Comment: text})
		}
		return &command{kind: cmdColumn, count: n}, true, nil
	case text == "reset_layout":
		return &command{kind: cmdResetLayout}, true, nil
	case text == "incremental_lists":
		return &command{kind: cmdIncrementalLists}, true, nil
	case text == "no_footer":
		return &command{kind: cmdNoFooter}, true, nil
	case strings.HasPrefix(text, "speaker_note:"):
		return &command{kind: cmdSpeakerNote, note: strings.TrimSpace(strings.TrimPrefix(text, "speaker_note:"))}, true, nil
	case strings.HasPrefix(text, "font_size:"):
		n, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "font_size:")))
		if convErr != nil {
			return nil, true, posErr(file, line, &mdserr.InvalidCommandError{Comment: text})
		}
		if n < 1 || n > 7 {
			return nil, true, posErr(file, line, &mdserr.FontSizeRangeError{Size: n})
		}
		return &command{kind: cmdFontSize, count: n}, true, nil
	case strings.HasPrefix(text, "alignment:"):
		a, alErr := parseAlignment(strings.TrimSpace(strings.TrimPrefix(text, "alignment:")))
		if alErr != nil {
			return nil, true, posErr(file, line, alErr)
		}
		return &command{kind: cmdAlignment, alignment: a}, true, nil
	case text == "skip_slide":
		return &command{kind: cmdSkipSlide}, true, nil
	case strings.HasPrefix(text, "list_item_newlines:"):
		n, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "list_item_newlines:")))
		if convErr != nil {
			return nil, true, posErr(file, line, &mdserr.InvalidCommandError{Comment: text})
		}
		return &command{kind: cmdListItemNewlines, count: n}, true, nil
	case strings.HasPrefix(text, "include:"):
		return &command{kind: cmdInclude, path: strings.TrimSpace(strings.TrimPrefix(text, "include:"))}, true, nil
	case strings.HasPrefix(text, "snippet_output:"):
		return &command{kind: cmdSnippetOutput, id: strings.TrimSpace(strings.TrimPrefix(text, "snippet_output:"))}, true, nil
	default:
		return nil, true, posErr(file, line, &mdserr.InvalidCommandError{Comment: text})
	}
}

func parseColumnLayout(raw string) ([]uint8, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	var cols []uint8
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 || n > 255 {
			return nil, &mdserr.InvalidCommandError{Comment: "column_layout:" + raw}
		}
		cols = append(cols, uint8(n))
	}
	if len(cols) == 0 {
		return nil, &mdserr.InvalidCommandError{Comment: "column_layout:" + raw}
	}
	return cols, nil
}

func parseAlignment(raw string) (render.Alignment, error) {
	switch raw {
	case "left":
		return render.AlignLeft, nil
	case "right":
		return render.AlignRight, nil
	case "center":
		return render.AlignCenter, nil
	default:
		return 0, &mdserr.InvalidCommandError{Comment: "alignment:" + raw}
	}
}

func posErr(file string, line int, err error) error {
	return &mdserr.PositionError{File: file, Line: line, Err: err}
}
