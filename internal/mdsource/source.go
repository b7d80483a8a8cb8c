package mdsource

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse splits content's optional front matter off and walks the
// remaining Markdown's top-level block structure into Elements, in
// source order.
func Parse(content []byte) ([]Element, error) {
	raw, body := splitFrontMatter(content)

	reader := text.NewReader(body)
	doc := markdown.Parser().Parse(reader)

	var elements []Element
	if raw != "" {
		elements = append(elements, Element{Kind: KindFrontMatter, FrontMatter: &FrontMatter{Raw: raw}})
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		el, err := convertBlock(n, body)
		if err != nil {
			return nil, err
		}
		if el != nil {
			if offset, ok := startOffset(n, body); ok {
				el.Line = lineNumber(body, offset)
			}
			elements = append(elements, *el)
		}
	}
	return elements, nil
}

// startOffset locates the byte offset of the first text segment under n,
// used to anchor Element.Line. It returns false when n carries no text of
// its own (e.g. an empty list).
func startOffset(n ast.Node, source []byte) (int, bool) {
	if hl, ok := n.(hasLines); ok && hl.Lines().Len() > 0 {
		return hl.Lines().At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return t.Segment.Start, true
		}
		if off, ok := startOffset(c, source); ok {
			return off, true
		}
	}
	return 0, false
}

func lineNumber(source []byte, offset int) int {
	line := 1
	if offset > len(source) {
		offset = len(source)
	}
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}

func convertBlock(n ast.Node, source []byte) (*Element, error) {
	switch node := n.(type) {
	case *ast.Heading:
		var inlines []Inline
		renderInlines(node, source, inlineState{}, &inlines)
		return &Element{Kind: KindHeading, Heading: &Heading{Level: node.Level, Inlines: inlines}}, nil

	case *ast.Paragraph:
		var inlines []Inline
		renderInlines(node, source, inlineState{}, &inlines)
		return &Element{Kind: KindParagraph, Paragraph: &Paragraph{Inlines: inlines}}, nil

	case *ast.List:
		items, err := convertListItems(node, source)
		if err != nil {
			return nil, err
		}
		return &Element{Kind: KindList, List: &List{Ordered: node.IsOrdered(), Start: node.Start, Items: items}}, nil

	case *ast.FencedCodeBlock:
		info := ""
		if node.Info != nil {
			info = string(node.Info.Segment.Value(source))
		}
		return &Element{Kind: KindCodeBlock, CodeBlock: &CodeBlock{
			Info:       info,
			Code:       blockText(node, source),
			Attributes: ParseCodeInfo(info),
		}}, nil

	case *ast.CodeBlock:
		return &Element{Kind: KindCodeBlock, CodeBlock: &CodeBlock{
			Code:       blockText(node, source),
			Attributes: ParseCodeInfo(""),
		}}, nil

	case *extast.Table:
		return convertTable(node, source)

	case *ast.Blockquote:
		children, err := convertChildren(node, source)
		if err != nil {
			return nil, err
		}
		return &Element{Kind: KindBlockQuote, BlockQuote: &BlockQuote{Children: children}}, nil

	case *ast.ThematicBreak:
		return &Element{Kind: KindThematicBreak}, nil

	case *ast.HTMLBlock:
		if comment, ok := extractComment(blockText(node, source)); ok {
			return &Element{Kind: KindComment, Comment: &Comment{Raw: comment}}, nil
		}
		return nil, nil

	default:
		return nil, nil
	}
}

func convertChildren(n ast.Node, source []byte) ([]Element, error) {
	var out []Element
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		el, err := convertBlock(c, source)
		if err != nil {
			return nil, err
		}
		if el != nil {
			out = append(out, *el)
		}
	}
	return out, nil
}

func convertListItems(l *ast.List, source []byte) ([]ListItem, error) {
	var items []ListItem
	depth := 0
	for p := l.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindList {
			depth++
		}
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		var inlines []Inline
		var children []Element
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.Kind() {
			case ast.KindTextBlock, ast.KindParagraph:
				renderInlines(c, source, inlineState{}, &inlines)
			default:
				el, err := convertBlock(c, source)
				if err != nil {
					return nil, err
				}
				if el != nil {
					children = append(children, *el)
				}
			}
		}
		items = append(items, ListItem{Depth: depth, Inlines: inlines, Children: children})
	}
	return items, nil
}

func convertTable(t *extast.Table, source []byte) (*Element, error) {
	var header []string
	var rows [][]string
	for n := t.FirstChild(); n != nil; n = n.NextSibling() {
		switch row := n.(type) {
		case *extast.TableHeader:
			header = cellTexts(row, source)
		case *extast.TableRow:
			rows = append(rows, cellTexts(row, source))
		}
	}

	aligns := make([]TableAlignment, len(t.Alignments))
	for i, a := range t.Alignments {
		aligns[i] = convertAlignment(a)
	}

	return &Element{Kind: KindTable, Table: &Table{Header: header, Rows: rows, Alignments: aligns}}, nil
}

func cellTexts(row ast.Node, source []byte) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		var inlines []Inline
		renderInlines(c, source, inlineState{}, &inlines)
		cells = append(cells, flattenText(inlines))
	}
	return cells
}

func convertAlignment(a extast.Alignment) TableAlignment {
	switch a {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignRight:
		return AlignRight
	case extast.AlignCenter:
		return AlignCenter
	default:
		return AlignNone
	}
}

type hasLines interface {
	Lines() *text.Segments
}

func blockText(n ast.Node, source []byte) string {
	hl, ok := n.(hasLines)
	if !ok {
		return ""
	}
	lines := hl.Lines()
	var buf strings.Builder
	for i := 0; i < lines.Len(); i++ {
		buf.Write(lines.At(i).Value(source))
	}
	return buf.String()
}

func extractComment(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "<!--") || !strings.HasSuffix(trimmed, "-->") {
		return "", false
	}
	return strings.TrimSpace(trimmed[4 : len(trimmed)-3]), true
}
