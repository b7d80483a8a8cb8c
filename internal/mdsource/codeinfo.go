package mdsource

import (
	"strconv"
	"strings"
)

// LineRange is an inclusive 1-based line range from a code block's
// {a,b-c} highlight-group attribute.
type LineRange struct {
	Start, End int
}

// CodeAttributes is a fenced code block's info string, parsed per
// spec.md §6: "lang [attrs...]" where attrs are +line_numbers, +exec,
// +exec_replace, +image, +pty, +acquire_terminal, +id:<ident>,
// +no_background, +expect:fail, and a trailing {ranges} highlight-group
// list. +pty and +acquire_terminal select the two execution modes
// spec.md §4.4 names beyond plain output capture: a pseudo-terminal fed
// through a VT-100 parser, or handing the real terminal to the child
// process synchronously.
type CodeAttributes struct {
	Language        string
	LineNumbers     bool
	Exec            bool
	ExecReplace     bool
	Image           bool
	PTY             bool
	AcquireTerminal bool
	ID              string
	NoBackground    bool
	ExpectFail      bool
	HighlightGroups []LineRange
}

// ParseCodeInfo parses a fenced code block's info string into
// CodeAttributes. Unknown +flags are ignored rather than rejected: the
// spec reserves fatal parse errors for the command-comment prefix, not
// arbitrary info-string content.
func ParseCodeInfo(info string) CodeAttributes {
	var attrs CodeAttributes
	for i, field := range strings.Fields(info) {
		switch {
		case i == 0 && !strings.HasPrefix(field, "+") && !strings.HasPrefix(field, "{"):
			attrs.Language = field
		case strings.HasPrefix(field, "{") && strings.HasSuffix(field, "}"):
			attrs.HighlightGroups = parseLineRanges(field[1 : len(field)-1])
		case strings.HasPrefix(field, "+"):
			applyCodeFlag(&attrs, strings.TrimPrefix(field, "+"))
		}
	}
	return attrs
}

func applyCodeFlag(attrs *CodeAttributes, flag string) {
	switch {
	case flag == "line_numbers":
		attrs.LineNumbers = true
	case flag == "exec":
		attrs.Exec = true
	case flag == "exec_replace":
		attrs.ExecReplace = true
	case flag == "image":
		attrs.Image = true
	case flag == "pty":
		attrs.PTY = true
	case flag == "acquire_terminal":
		attrs.AcquireTerminal = true
	case flag == "no_background":
		attrs.NoBackground = true
	case flag == "expect:fail":
		attrs.ExpectFail = true
	case strings.HasPrefix(flag, "id:"):
		attrs.ID = strings.TrimPrefix(flag, "id:")
	}
}

func parseLineRanges(raw string) []LineRange {
	var ranges []LineRange
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.IndexByte(part, '-'); idx > 0 {
			start, errStart := strconv.Atoi(part[:idx])
			end, errEnd := strconv.Atoi(part[idx+1:])
			if errStart == nil && errEnd == nil {
				ranges = append(ranges, LineRange{Start: start, End: end})
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			ranges = append(ranges, LineRange{Start: n, End: n})
		}
	}
	return ranges
}
