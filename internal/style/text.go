package style

// Text is a run of content sharing one style.
type Text struct {
	Content string
	Style   TextStyle
}

// PlainText builds a Text with the default style.
func PlainText(content string) Text {
	return Text{Content: content, Style: Default()}
}

// StyledText builds a Text with an explicit style.
func StyledText(content string, s TextStyle) Text {
	return Text{Content: content, Style: s}
}

// Line is an ordered sequence of Text runs, e.g. one markdown paragraph
// line after inline style spans have been flattened.
type Line []Text

// AsText concatenates a Line's content, discarding style, for use in
// diffing/round-trip checks (spec.md §8 invariant 1).
func (l Line) AsText() string {
	var out []byte
	for _, t := range l {
		out = append(out, t.Content...)
	}
	return string(out)
}
