package mdsource

import "testing"

func TestParseFrontMatterAndHeading(t *testing.T) {
	input := []byte("---\ntitle: Hi\n---\n\n# Title\n\nHello\n")

	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d: %+v", len(elements), elements)
	}

	if elements[0].Kind != KindFrontMatter || elements[0].FrontMatter.Raw != "title: Hi" {
		t.Fatalf("unexpected front matter: %+v", elements[0])
	}
	if elements[1].Kind != KindHeading || elements[1].Heading.Level != 1 {
		t.Fatalf("unexpected heading: %+v", elements[1])
	}
	if elements[2].Kind != KindParagraph {
		t.Fatalf("unexpected paragraph element: %+v", elements[2])
	}
}

func TestParseCommentAndThematicBreak(t *testing.T) {
	input := []byte("A\n\n<!-- pause -->\n\nB\n\n---\n\nC\n")

	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var sawComment, sawBreak bool
	for _, el := range elements {
		if el.Kind == KindComment {
			sawComment = true
			if el.Comment.Raw != "pause" {
				t.Fatalf("expected comment text 'pause', got %q", el.Comment.Raw)
			}
		}
		if el.Kind == KindThematicBreak {
			sawBreak = true
		}
	}
	if !sawComment {
		t.Fatal("expected a parsed comment element")
	}
	if !sawBreak {
		t.Fatal("expected a parsed thematic break element")
	}
}

func TestParseInlineStyles(t *testing.T) {
	input := []byte("**bold** and *italic* and `code` and <span style=\"color:red\">red</span>\n")

	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(elements) != 1 || elements[0].Kind != KindParagraph {
		t.Fatalf("expected a single paragraph, got %+v", elements)
	}

	var sawBold, sawItalic, sawCode, sawColor bool
	for _, in := range elements[0].Paragraph.Inlines {
		switch {
		case in.Bold:
			sawBold = true
		case in.Italic:
			sawItalic = true
		case in.Code:
			sawCode = true
		case in.Color == "red":
			sawColor = true
		}
	}
	if !sawBold || !sawItalic || !sawCode || !sawColor {
		t.Fatalf("missing expected inline style: bold=%v italic=%v code=%v color=%v", sawBold, sawItalic, sawCode, sawColor)
	}
}

func TestParseFencedCodeBlockAttributes(t *testing.T) {
	input := []byte("```go +line_numbers +exec {1,3-4}\nfmt.Println(1)\n```\n")

	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(elements) != 1 || elements[0].Kind != KindCodeBlock {
		t.Fatalf("expected a single code block, got %+v", elements)
	}

	attrs := elements[0].CodeBlock.Attributes
	if attrs.Language != "go" || !attrs.LineNumbers || !attrs.Exec {
		t.Fatalf("unexpected attributes: %+v", attrs)
	}
	want := []LineRange{{Start: 1, End: 1}, {Start: 3, End: 4}}
	if len(attrs.HighlightGroups) != len(want) || attrs.HighlightGroups[0] != want[0] || attrs.HighlightGroups[1] != want[1] {
		t.Fatalf("unexpected highlight groups: %+v", attrs.HighlightGroups)
	}
}

func TestParseTable(t *testing.T) {
	input := []byte("| A | B |\n|---|---|\n| 1 | 2 |\n")

	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(elements) != 1 || elements[0].Kind != KindTable {
		t.Fatalf("expected a single table, got %+v", elements)
	}

	tbl := elements[0].Table
	if len(tbl.Header) != 2 || tbl.Header[0] != "A" || tbl.Header[1] != "B" {
		t.Fatalf("unexpected header: %+v", tbl.Header)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][0] != "1" || tbl.Rows[0][1] != "2" {
		t.Fatalf("unexpected rows: %+v", tbl.Rows)
	}
}

func TestParseListWithNestedList(t *testing.T) {
	input := []byte("- one\n- two\n  - nested\n")

	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(elements) != 1 || elements[0].Kind != KindList {
		t.Fatalf("expected a single list, got %+v", elements)
	}
	if len(elements[0].List.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(elements[0].List.Items))
	}
	nested := elements[0].List.Items[1].Children
	if len(nested) != 1 || nested[0].Kind != KindList {
		t.Fatalf("expected a nested list under the second item, got %+v", nested)
	}
}
