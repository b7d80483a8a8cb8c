// Package mdsource turns a Markdown presentation's source text into a
// sequence of structural elements that internal/present builds slides
// from. Parsing itself is delegated entirely to goldmark (spec.md §1
// keeps the lexer/parser out of scope); this package's job is the
// contract between goldmark's AST node kinds and the element shapes the
// presentation builder expects.
package mdsource

// Kind discriminates an Element's variant. Only the fields relevant to
// Kind are populated, mirroring internal/render's Operation tagged union.
type Kind int

const (
	KindFrontMatter Kind = iota
	KindHeading
	KindParagraph
	KindList
	KindCodeBlock
	KindTable
	KindBlockQuote
	KindThematicBreak
	KindComment
)

// Element is one top-level structural unit of a presentation's Markdown
// source, in source order.
type Element struct {
	Kind Kind

	// Line is the element's best-effort 1-based source line, used to
	// locate command-comment and column-layout errors (spec.md §7). It is
	// 0 when no descendant carried a text segment to anchor on.
	Line int

	FrontMatter *FrontMatter
	Heading     *Heading
	Paragraph   *Paragraph
	List        *List
	CodeBlock   *CodeBlock
	Table       *Table
	BlockQuote  *BlockQuote
	Comment     *Comment
}

// FrontMatter is the raw YAML text found between the leading --- markers,
// unparsed: internal/present owns the schema and unmarshals it itself.
type FrontMatter struct {
	Raw string
}

// Heading is a heading element. goldmark normalizes setext headings
// (title\n===) and ATX headings (# title) to the same AST shape and
// doesn't preserve which syntax was used, so the builder uses Level == 1
// as its slide-title signal instead (spec.md §4.1's setext rule).
type Heading struct {
	Level   int
	Inlines []Inline
}

// Paragraph is a run of inline content. A paragraph whose only inline is
// an InlineImage is how the builder recognizes a standalone image.
type Paragraph struct {
	Inlines []Inline
}

// List is an ordered or unordered list, recursively nested: a ListItem's
// Children holds any nested lists or block content under that item.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem is one list entry at a given nesting depth.
type ListItem struct {
	Depth    int
	Inlines  []Inline
	Children []Element
}

// CodeBlock is a fenced or indented code block. Attributes is parsed from
// the fence's info string (spec.md §6).
type CodeBlock struct {
	Info       string
	Code       string
	Attributes CodeAttributes
}

// TableAlignment mirrors goldmark's column alignment for a table.
type TableAlignment int

const (
	AlignNone TableAlignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Table is a GFM table, flattened to plain-text cells: spec.md §4.1 only
// requires header/body rows and column widths, not per-cell inline style.
type Table struct {
	Header     []string
	Rows       [][]string
	Alignments []TableAlignment
}

// BlockQuote holds its block-level children; internal/present inspects
// the first paragraph's text to detect GitHub-style alert markers
// ([!NOTE], [!WARNING], ...) versus a plain quote.
type BlockQuote struct {
	Children []Element
}

// Comment is the text inside an HTML comment (<!-- ... -->), stripped of
// the delimiters. internal/present parses command comments out of this.
type Comment struct {
	Raw string
}
