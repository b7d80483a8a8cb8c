package style

import "unicode"

// charPos locates one rune of the flattened line: which Text run it came
// from, its byte offset within that run's Content, and its byte length.
type charPos struct {
	textIndex  int
	byteOffset int
	byteLen    int
	r          rune
}

// WeightedLine is a Line annotated with per-character width accumulators,
// precomputed once so that Split can extract width-bounded sub-ranges in
// O(chunks) rather than re-measuring the line on every call (see
// SPEC_FULL.md §2, Design Note "word-wrap precomputation").
type WeightedLine struct {
	line Line

	chars  []charPos
	widths []int // widths[i] is the display width of chars[i]
	prefix []int // prefix[i] = sum(widths[:i]); prefix has len(chars)+1 entries

	width int // total width, == prefix[len(prefix)-1]
}

// NewWeightedLine builds a WeightedLine, precomputing the prefix-sum width
// table. Each rune's width is its Unicode display width multiplied by the
// font-size multiplier of the Text run it belongs to, matching the
// invariant `WeightedLine.width == Σ char.width × style.size`.
func NewWeightedLine(line Line) WeightedLine {
	wl := WeightedLine{line: line}
	wl.prefix = append(wl.prefix, 0)

	for ti, t := range line {
		size := int(t.Style.Size())
		off := 0
		for _, r := range t.Content {
			n := runeByteLen(r)
			w := runeWidth(r) * size
			wl.chars = append(wl.chars, charPos{textIndex: ti, byteOffset: off, byteLen: n, r: r})
			wl.widths = append(wl.widths, w)
			wl.width += w
			wl.prefix = append(wl.prefix, wl.width)
			off += n
		}
	}

	return wl
}

func runeByteLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// Width returns the total display width of the line.
func (wl WeightedLine) Width() int {
	return wl.width
}

// Line returns the underlying styled Line.
func (wl WeightedLine) Line() Line {
	return wl.line
}

// AsText returns the flattened text content, ignoring style.
func (wl WeightedLine) AsText() string {
	return wl.line.AsText()
}

// widthBetween returns the display width of chars[start:end] in O(1) via
// the precomputed prefix sums.
func (wl WeightedLine) widthBetween(start, end int) int {
	return wl.prefix[end] - wl.prefix[start]
}

// extract builds a Line from chars[start:end], preserving run boundaries
// and styles.
func (wl WeightedLine) extract(start, end int) Line {
	if start >= end {
		return nil
	}
	var out Line
	curText := -1
	var b []byte
	flush := func() {
		if curText >= 0 && len(b) > 0 {
			out = append(out, StyledText(string(b), wl.line[curText].Style))
		}
		b = nil
	}
	for i := start; i < end; i++ {
		c := wl.chars[i]
		if c.textIndex != curText {
			flush()
			curText = c.textIndex
		}
		b = append(b, wl.line[c.textIndex].Content[c.byteOffset:c.byteOffset+c.byteLen]...)
	}
	flush()
	return out
}

// Split greedily word-wraps the line into sub-lines no wider than
// maxWidth, breaking at whitespace boundaries. A single word wider than
// maxWidth is placed alone on its own line rather than being split
// mid-word, satisfying spec.md §8 invariant 1.
func (wl WeightedLine) Split(maxWidth int) []Line {
	if maxWidth < 1 {
		maxWidth = 1
	}
	if len(wl.chars) == 0 {
		return nil
	}

	var lines []Line
	lineStart := 0 // char index where the current output line begins
	cursor := 0    // char index being considered

	lastSpace := -1 // last whitespace char index seen since lineStart

	flushUpTo := func(end int) {
		// Trim a single separating space already accounted for by the
		// word-wrap boundary.
		trimmedEnd := end
		for trimmedEnd > lineStart && isSpaceRune(wl.chars[trimmedEnd-1].r) {
			trimmedEnd--
		}
		lines = append(lines, wl.extract(lineStart, trimmedEnd))
	}

	for cursor < len(wl.chars) {
		if isSpaceRune(wl.chars[cursor].r) {
			lastSpace = cursor
		}

		width := wl.widthBetween(lineStart, cursor+1)
		if width > maxWidth {
			if lastSpace >= lineStart && lastSpace > lineStart {
				flushUpTo(lastSpace)
				lineStart = lastSpace + 1
				lastSpace = -1
				// Re-consider cursor against the new lineStart; do not
				// advance past it twice.
				continue
			}
			// No whitespace to break at since lineStart: the current word
			// alone exceeds maxWidth. It goes on its own line, unsplit.
			if cursor == lineStart {
				cursor++
				continue
			}
			end := cursor
			for end < len(wl.chars) && !isSpaceRune(wl.chars[end].r) {
				end++
			}
			flushUpTo(end)
			lineStart = end + 1
			cursor = end + 1
			lastSpace = -1
			continue
		}
		cursor++
	}

	if lineStart < len(wl.chars) {
		flushUpTo(len(wl.chars))
	}

	return lines
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}
