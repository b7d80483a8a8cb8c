// Package present builds a Presentation — slides, chunks, and mutators —
// from a sequence of mdsource.Elements, applying the active theme and
// resolving command comments, code execution, and images along the way
// (spec.md §4.1).
package present

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mdshow/mdshow/internal/execute"
	"github.com/mdshow/mdshow/internal/highlight"
	"github.com/mdshow/mdshow/internal/imageproto"
	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/theme"
)

// Options configures a Builder.
type Options struct {
	ThemeLoader  *theme.Loader
	DefaultTheme string // loaded when front-matter doesn't name one; "dark" if empty
	Highlighter  highlight.Highlighter
	Executor     *execute.Executor // nil disables snippet execution
	Images       *imageproto.Registry

	// TerminalSuspender, when set, is handed to +acquire_terminal snippets
	// so they can take over the real terminal and give it back on exit.
	// Left nil for exports and for runs without --acquire-terminal-on-suspend.
	TerminalSuspender terminalSuspender

	SourcePath    string // path to the top-level presentation file, for image/include resolution
	ReadFile      func(path string) ([]byte, error)
	WindowColumns uint16
}

// Builder walks a presentation's elements once, accumulating slides.
type Builder struct {
	opts        Options
	theme       *theme.Theme
	palette     style.Palette
	highlighter highlight.Highlighter

	pres *Presentation
	cur  *Slide

	footerVars       map[string]string
	implicitSlideEnd bool
	incremental      bool
	fontSize         uint8
	alignment        render.Alignment
	listItemNewlines int

	layoutOpen     bool
	layoutColumns  []uint8
	enteredColumns map[int]bool

	imageCache map[string]*imageproto.Handle
	snippets   map[string]*SnippetExecution

	includeStack map[string]bool
	sourceDir    string
	sourceFile   string
}

// New creates a Builder. Build may be called once per Builder.
func New(opts Options) *Builder {
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = "dark"
	}
	return &Builder{
		opts:           opts,
		highlighter:    opts.Highlighter,
		footerVars:     make(map[string]string),
		fontSize:       1,
		alignment:      render.AlignLeft,
		enteredColumns: make(map[int]bool),
		imageCache:     make(map[string]*imageproto.Handle),
		snippets:       make(map[string]*SnippetExecution),
		includeStack:   make(map[string]bool),
	}
}

// Build parses content's elements and produces a Presentation.
func (b *Builder) Build(content []byte) (*Presentation, error) {
	elements, err := mdsource.Parse(content)
	if err != nil {
		return nil, err
	}

	var fm *frontMatter
	if len(elements) > 0 && elements[0].Kind == mdsource.KindFrontMatter {
		fm, err = parseFrontMatter(elements[0].FrontMatter.Raw)
		if err != nil {
			return nil, err
		}
		elements = elements[1:]
	} else {
		fm, err = parseFrontMatter("")
		if err != nil {
			return nil, err
		}
	}

	def, err := b.opts.ThemeLoader.Load(b.opts.DefaultTheme)
	if err != nil {
		return nil, &mdserr.InvalidMetadataError{Err: err}
	}
	th, err := fm.resolveTheme(b.opts.ThemeLoader, def)
	if err != nil {
		return nil, err
	}
	b.theme = th

	palette, err := th.StylePalette()
	if err != nil {
		return nil, &mdserr.InvalidMetadataError{Err: err}
	}
	b.palette = palette

	b.incremental = fm.Options.IncrementalLists
	b.implicitSlideEnd = fm.Options.ImplicitSlideEnds
	b.alignment = alignmentFromString(th.Default.Alignment)
	for k, v := range fm.Footer {
		b.footerVars[k] = v
	}

	b.pres = &Presentation{}
	b.sourceFile = b.opts.SourcePath
	b.sourceDir = filepath.Dir(b.opts.SourcePath)
	b.startSlide()

	if err := b.processElements(elements); err != nil {
		return nil, err
	}

	b.finalize()
	return b.pres, nil
}

func (b *Builder) startSlide() {
	b.cur = &Slide{}
	b.pres.Slides = append(b.pres.Slides, b.cur)
	b.layoutOpen = false
	b.layoutColumns = nil
	b.enteredColumns = make(map[int]bool)
}

func (b *Builder) endSlideIfNeeded() {
	if b.implicitSlideEnd && b.cur.hasContent() {
		b.startSlide()
	}
}

func (b *Builder) processElements(elements []mdsource.Element) error {
	for _, el := range elements {
		if err := b.processElement(el); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) processElement(el mdsource.Element) error {
	switch el.Kind {
	case mdsource.KindHeading:
		return b.headingElement(el)
	case mdsource.KindParagraph:
		ops := b.paragraphOps(el.Paragraph, b.alignment)
		b.cur.currentChunk().emit(ops...)
	case mdsource.KindList:
		b.listOps(el.List, b.incremental)
	case mdsource.KindCodeBlock:
		ops, muts := b.codeBlockOps(el.CodeBlock)
		chunk := b.cur.currentChunk()
		chunk.emit(ops...)
		chunk.Mutators = append(chunk.Mutators, muts...)
	case mdsource.KindTable:
		b.cur.currentChunk().emit(b.tableOps(el.Table)...)
	case mdsource.KindBlockQuote:
		ops, err := b.blockQuoteOps(el.BlockQuote)
		if err != nil {
			return err
		}
		b.cur.currentChunk().emit(ops...)
	case mdsource.KindThematicBreak:
		b.startSlide()
	case mdsource.KindComment:
		return b.commentElement(el)
	}
	return nil
}

func (b *Builder) headingElement(el mdsource.Element) error {
	h := el.Heading
	if h.Level == 1 {
		b.endSlideIfNeeded()
		b.cur.Title = flattenInlines(h.Inlines)
	}
	b.cur.currentChunk().emit(b.headingOps(h)...)
	return nil
}

func (b *Builder) commentElement(el mdsource.Element) error {
	cmd, ok, err := parseComment(el.Comment.Raw, b.sourceFile, el.Line)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return b.applyCommand(cmd, el.Line)
}

func (b *Builder) applyCommand(cmd *command, line int) error {
	switch cmd.kind {
	case cmdPause:
		b.cur.startChunk()
	case cmdEndSlide:
		b.startSlide()
	case cmdNewLine:
		for i := 0; i < cmd.count; i++ {
			b.cur.currentChunk().emit(render.RenderLineBreak())
		}
	case cmdJumpToMiddle:
		b.cur.currentChunk().emit(render.JumpToVerticalCenter())
	case cmdColumnLayout:
		b.layoutOpen = true
		b.layoutColumns = cmd.columns
		b.enteredColumns = make(map[int]bool)
		b.cur.currentChunk().emit(render.InitColumnLayout(cmd.columns))
	case cmdColumn:
		if !b.layoutOpen || cmd.count < 0 || cmd.count >= len(b.layoutColumns) || b.enteredColumns[cmd.count] {
			return posErr(b.sourceFile, line, mdserr.ErrInvalidLayoutEnter)
		}
		b.enteredColumns[cmd.count] = true
		b.cur.currentChunk().emit(render.EnterColumn(uint16(cmd.count)))
	case cmdResetLayout:
		b.layoutOpen = false
		b.cur.currentChunk().emit(render.ExitLayout())
	case cmdIncrementalLists:
		b.incremental = true
	case cmdNoFooter:
		b.cur.NoFooter = true
	case cmdSpeakerNote:
		b.cur.Notes = append(b.cur.Notes, cmd.note)
	case cmdFontSize:
		b.fontSize = uint8(cmd.count)
	case cmdAlignment:
		b.alignment = cmd.alignment
	case cmdSkipSlide:
		b.cur.Skip = true
	case cmdListItemNewlines:
		b.listItemNewlines = cmd.count
	case cmdInclude:
		return b.handleInclude(cmd.path, line)
	case cmdSnippetOutput:
		exec, ok := b.snippets[cmd.id]
		if !ok {
			return posErr(b.sourceFile, line, &mdserr.UndefinedSnippetError{ID: cmd.id})
		}
		b.cur.currentChunk().emit(render.RenderAsyncOp(exec))
	}
	return nil
}

func (b *Builder) handleInclude(path string, line int) error {
	resolved := filepath.Join(b.sourceDir, path)
	if b.includeStack[resolved] {
		return posErr(b.sourceFile, line, mdserr.ErrIncludeCycle)
	}

	raw, err := b.opts.ReadFile(resolved)
	if err != nil {
		return posErr(b.sourceFile, line, err)
	}
	elements, err := mdsource.Parse(raw)
	if err != nil {
		return err
	}
	if len(elements) > 0 && elements[0].Kind == mdsource.KindFrontMatter {
		return posErr(b.sourceFile, line, &mdserr.InvalidMetadataError{Err: fmt.Errorf("included files cannot carry front-matter")})
	}

	b.includeStack[resolved] = true
	prevFile, prevDir := b.sourceFile, b.sourceDir
	b.sourceFile = resolved
	b.sourceDir = filepath.Dir(resolved)

	err = b.processElements(elements)

	b.sourceFile, b.sourceDir = prevFile, prevDir
	delete(b.includeStack, resolved)
	return err
}

func (b *Builder) blockQuoteOps(bq *mdsource.BlockQuote) ([]render.Operation, error) {
	if kind, ok := alertKind(bq); ok {
		return b.alertOps(kind, bq)
	}

	var ops []render.Operation
	for _, child := range bq.Children {
		switch child.Kind {
		case mdsource.KindParagraph:
			ops = append(ops, b.paragraphOps(child.Paragraph, b.alignment)...)
		default:
			// Other block kinds nested in a quote render the same way they
			// would at the top level; processElement already dispatches on
			// the full Element set, so reuse the chunk it writes into.
			before := len(b.cur.currentChunk().Operations)
			if err := b.processElement(child); err != nil {
				return nil, err
			}
			ops = append(ops, b.cur.currentChunk().Operations[before:]...)
		}
	}
	return ops, nil
}

var alertPrefixes = map[string]string{
	"[!NOTE]":      "note",
	"[!TIP]":       "tip",
	"[!IMPORTANT]": "important",
	"[!WARNING]":   "warning",
	"[!CAUTION]":   "caution",
}

func alertKind(bq *mdsource.BlockQuote) (string, bool) {
	if len(bq.Children) == 0 || bq.Children[0].Kind != mdsource.KindParagraph {
		return "", false
	}
	text := strings.TrimSpace(flattenInlines(bq.Children[0].Paragraph.Inlines))
	for marker, kind := range alertPrefixes {
		if strings.HasPrefix(text, marker) {
			return kind, true
		}
	}
	return "", false
}

func (b *Builder) alertOps(kind string, bq *mdsource.BlockQuote) ([]render.Operation, error) {
	as := b.theme.Alerts[kind]
	fg := b.resolveColor(as.Colors.Foreground)

	headingStyle := style.Default().WithFlag(style.FlagBold)
	if fg != nil {
		c := *fg
		headingStyle = headingStyle.WithColors(style.Colors{Fg: &c})
	}
	prefix := as.Prefix
	if prefix == "" {
		prefix = strings.ToUpper(kind)
	}

	ops := []render.Operation{
		render.RenderText(style.NewWeightedLine(style.Line{style.StyledText(prefix, headingStyle)}), render.TextProperties{}),
		render.RenderLineBreak(),
	}
	for i, child := range bq.Children {
		if i == 0 && child.Kind == mdsource.KindParagraph {
			text := flattenInlines(child.Paragraph.Inlines)
			for marker := range alertPrefixes {
				text = strings.TrimSpace(strings.TrimPrefix(text, marker))
			}
			line := style.Line{style.PlainText(text)}
			if fg != nil {
				c := *fg
				line = style.Line{style.StyledText(text, style.Default().WithColors(style.Colors{Fg: &c}))}
			}
			ops = append(ops, render.RenderText(style.NewWeightedLine(line), render.TextProperties{}), render.RenderLineBreak())
			continue
		}
		before := len(b.cur.currentChunk().Operations)
		if err := b.processElement(child); err != nil {
			return nil, err
		}
		ops = append(ops, b.cur.currentChunk().Operations[before:]...)
	}
	return ops, nil
}

func (b *Builder) headingOps(h *mdsource.Heading) []render.Operation {
	key := "h" + strconv.Itoa(h.Level)
	hs := b.theme.Headings[key]
	align := alignmentFromString(hs.Alignment)

	line := b.inlinesToLine(h.Inlines)
	if hs.Prefix != "" {
		line = append(style.Line{style.PlainText(hs.Prefix)}, line...)
	}

	fg := b.resolveColor(hs.Colors.Foreground)
	bold := style.Default().WithFlag(style.FlagBold)
	styled := make(style.Line, len(line))
	for i, t := range line {
		st := t.Style.Merge(bold)
		if fg != nil {
			c := *fg
			st = st.WithColors(style.Colors{Fg: &c}.Merge(st.Colors()))
		}
		styled[i] = style.StyledText(t.Content, st)
	}

	return []render.Operation{
		render.RenderText(style.NewWeightedLine(styled), render.TextProperties{Alignment: align}),
		render.RenderLineBreak(),
	}
}

func (b *Builder) resolveColor(raw string) *style.Color {
	if raw == "" {
		return nil
	}
	c, err := b.palette.Resolve(theme.ParseRawColor(raw))
	if err != nil {
		return nil
	}
	return &c
}

func alignmentFromString(s string) render.Alignment {
	switch s {
	case "right":
		return render.AlignRight
	case "center":
		return render.AlignCenter
	default:
		return render.AlignLeft
	}
}

func flattenInlines(inlines []mdsource.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		if in.Kind == mdsource.InlineText {
			sb.WriteString(in.Text)
		}
	}
	return sb.String()
}

func (b *Builder) finalize() {
	kept := b.pres.Slides[:0]
	for _, s := range b.pres.Slides {
		if !s.Skip {
			kept = append(kept, s)
		}
	}
	b.pres.Slides = kept

	var titles []string
	for i, s := range b.pres.Slides {
		if !s.NoFooter {
			s.Footer = b.footerOps(i)
		}
		titles = append(titles, s.Title)
	}
	b.buildModals(titles)
}
