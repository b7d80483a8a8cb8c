package present

import (
	"fmt"

	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
)

// listIndent computes a list item's left indent in columns (spec.md
// §4.1: "depth*3/ceil(font_size) spaces at depth 0 and adjusted for
// deeper levels").
func listIndent(depth int, fontSize uint8) uint16 {
	size := int(fontSize)
	if size < 1 {
		size = 1
	}
	indent := (depth * 3) / size
	if depth > 0 && indent < depth {
		indent = depth
	}
	return uint16(indent)
}

// bulletPrefix returns the marker text for one list item.
func bulletPrefix(ordered bool, start, index int) string {
	if ordered {
		return fmt.Sprintf("%d. ", start+index)
	}
	return "- "
}

// listOps renders a list (and its nested children) into operations. When
// incremental is true, every item after the first is preceded by an
// implicit pause, splitting chunk as it goes.
func (b *Builder) listOps(l *mdsource.List, incremental bool) {
	for i, item := range l.Items {
		if incremental && i > 0 {
			b.cur.startChunk()
		}
		b.listItemOps(l, item, i)
	}
}

func (b *Builder) listItemOps(l *mdsource.List, item mdsource.ListItem, index int) {
	prefix := bulletPrefix(l.Ordered, l.Start, index)
	indent := listIndent(item.Depth, b.fontSize)

	line := b.inlinesToLine(item.Inlines)
	bl := render.BlockLine{
		Prefix:             style.PlainText(spaces(int(indent)) + prefix),
		Line:               style.NewWeightedLine(line),
		RepeatPrefixOnWrap: false,
	}
	b.cur.currentChunk().emit(render.RenderBlockLine(bl), render.RenderLineBreak())

	for n := 0; n < b.listItemNewlines; n++ {
		b.cur.currentChunk().emit(render.RenderLineBreak())
	}

	for _, child := range item.Children {
		b.processElement(child)
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
