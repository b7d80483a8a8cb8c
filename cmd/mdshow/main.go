// Command mdshow is a terminal Markdown slideshow engine: it builds a
// presentation from a single Markdown file and drives it through an
// interactive raw-terminal session, or renders it once to HTML (spec.md §6).
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/mdshow/mdshow/internal/applog"
	"github.com/mdshow/mdshow/internal/async"
	"github.com/mdshow/mdshow/internal/execute"
	"github.com/mdshow/mdshow/internal/highlight"
	"github.com/mdshow/mdshow/internal/imageproto"
	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/present"
	"github.com/mdshow/mdshow/internal/presenter"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/termproto"
	"github.com/mdshow/mdshow/internal/theme"
	"github.com/mdshow/mdshow/internal/widgets"
)

// exitUsage and exitRuntime are the process exit codes spec.md §6 assigns
// to usage errors and presentation/runtime errors respectively; 0 (success)
// is Go's default.
const (
	exitRuntime = 1
	exitUsage   = 2
)

// flags collects the CLI surface. Fields mirror spec.md §6's flag list
// plus --verbose, an ambient logging concern carried regardless of what
// the distilled spec scopes out.
type flags struct {
	configFile                    string
	themeName                     string
	exportHTML                    bool
	exportPDF                     bool
	output                        string
	present                       bool
	validateOverflows             bool
	enableSnippetExecution        bool
	enableSnippetExecutionReplace bool
	acquireTerminalOnSuspend      bool
	listThemes                    bool
	listBindings                  bool
	verbose                       bool
}

// fileConfig is the optional --config-file YAML payload: flag defaults a
// team can commit instead of repeating on every invocation.
type fileConfig struct {
	Theme                  string `yaml:"theme"`
	ValidateOverflows      bool   `yaml:"validate_overflows"`
	EnableSnippetExecution bool   `yaml:"enable_snippet_execution"`
}

func main() {
	var f flags

	cmd := &cobra.Command{
		Use:   "mdshow [presentation.md]",
		Short: "Present or export a Markdown slideshow in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &f)
		},
	}

	cmd.Flags().StringVar(&f.configFile, "config-file", "", "YAML file of flag defaults")
	cmd.Flags().StringVar(&f.themeName, "theme", "", "theme name, overriding front-matter")
	cmd.Flags().BoolVar(&f.exportHTML, "export-html", false, "render once to a static HTML file instead of presenting")
	cmd.Flags().BoolVar(&f.exportPDF, "export-pdf", false, "render once to PDF instead of presenting (not yet supported)")
	cmd.Flags().StringVar(&f.output, "output", "", "export destination; required with --export-html/--export-pdf")
	cmd.Flags().BoolVar(&f.present, "present", false, "force interactive mode even if an export flag is set")
	cmd.Flags().BoolVar(&f.validateOverflows, "validate-overflows", false, "fail if a slide overflows the terminal window")
	cmd.Flags().BoolVar(&f.enableSnippetExecution, "enable-snippet-execution", false, "allow +exec code blocks to run")
	cmd.Flags().BoolVar(&f.enableSnippetExecutionReplace, "enable-snippet-execution-replace", false, "allow +exec_replace code blocks to run")
	cmd.Flags().BoolVar(&f.acquireTerminalOnSuspend, "acquire-terminal-on-suspend", false, "hand the real terminal to exec'd commands that request it")
	cmd.Flags().BoolVar(&f.listThemes, "list-themes", false, "print the built-in theme names and exit")
	cmd.Flags().BoolVar(&f.listBindings, "list-bindings", false, "print the default key bindings and exit")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "enable debug logging on stderr")

	if err := cmd.Execute(); err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(exitUsage)
		}
		os.Exit(exitRuntime)
	}
}

// usageError marks a failure as a CLI misuse (exit code 2) rather than a
// presentation or runtime error (exit code 1).
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func run(cmd *cobra.Command, args []string, f *flags) error {
	log := applog.New(os.Stderr, f.verbose)

	if f.configFile != "" {
		if err := applyConfigFile(cmd, f); err != nil {
			return &usageError{err}
		}
	}

	if f.listBindings {
		for _, row := range widgets.RenderKeyBindingsModal(60) {
			fmt.Println(row)
		}
		return nil
	}
	if f.listThemes {
		names, err := theme.ListBuiltinThemes()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	if len(args) != 1 {
		return &usageError{fmt.Errorf("expected exactly one presentation file")}
	}
	sourcePath := args[0]

	interactive := f.present || (!f.exportHTML && !f.exportPDF)

	// backend is opened before buildPresentation for interactive runs so it
	// can be handed to present.Options as the acquire_terminal suspender;
	// export runs never need a real terminal.
	var backend *termproto.Real
	if interactive {
		var err error
		backend, err = termproto.NewReal(os.Stdout, true)
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer backend.Close()
	}

	pres, err := buildPresentation(sourcePath, f, log, interactive, backend)
	if err != nil {
		return err
	}

	switch {
	case interactive:
		return presentInteractively(pres, backend, log, f)
	case f.exportHTML:
		return exportHTML(pres, f.output)
	default:
		return fmt.Errorf("--export-pdf: PDF export is not yet implemented")
	}
}

func applyConfigFile(cmd *cobra.Command, f *flags) error {
	raw, err := os.ReadFile(f.configFile)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if !cmd.Flags().Changed("theme") && cfg.Theme != "" {
		f.themeName = cfg.Theme
	}
	if !cmd.Flags().Changed("validate-overflows") {
		f.validateOverflows = f.validateOverflows || cfg.ValidateOverflows
	}
	if !cmd.Flags().Changed("enable-snippet-execution") {
		f.enableSnippetExecution = f.enableSnippetExecution || cfg.EnableSnippetExecution
	}
	return nil
}

func windowSize() render.WindowSize {
	cols, rows := 80, 24
	if c, r, err := term.GetSize(int(os.Stdout.Fd())); err == nil && c > 0 && r > 0 {
		cols, rows = c, r
	}
	return render.WindowSize{Rows: uint16(rows), Columns: uint16(cols), WidthPx: uint16(cols * 8), HeightPx: uint16(rows * 16)}
}

func buildPresentation(sourcePath string, f *flags, log *slog.Logger, interactive bool, backend *termproto.Real) (*present.Presentation, error) {
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	window := windowSize()

	env := imageproto.Env{}
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	emulator := imageproto.DetectTerminalEmulator(env)
	registry := imageproto.NewRegistry(emulator.PreferredProtocol())

	var executor *execute.Executor
	if f.enableSnippetExecution || f.enableSnippetExecutionReplace {
		executor = execute.New("")
	}

	opts := present.Options{
		ThemeLoader:   theme.NewLoader(filepath.Join(filepath.Dir(sourcePath), "themes")),
		DefaultTheme:  f.themeName,
		Highlighter:   highlight.NewChroma("monokai"),
		Executor:      executor,
		Images:        registry,
		SourcePath:    sourcePath,
		WindowColumns: window.Columns,
	}
	if interactive && f.acquireTerminalOnSuspend {
		opts.TerminalSuspender = backend
	}

	builder := present.New(opts)
	pres, err := builder.Build(content)
	if err != nil {
		var pos *mdserr.PositionError
		if errors.As(err, &pos) {
			log.Error("presentation build failed", "file", pos.File, "line", pos.Line, "err", err)
		}
		return nil, err
	}
	return pres, nil
}

func presentInteractively(pres *present.Presentation, backend *termproto.Real, log *slog.Logger, f *flags) error {
	window := windowSize()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// pr is captured by the poller's redraw callback, so it has to exist
	// before the poller does; Go's closures let the forward reference
	// resolve once pr is assigned below (engine.Render never calls the
	// callback synchronously during construction).
	var pr *presenter.Presenter
	poller := async.NewPoller(log, func() {
		if pr == nil {
			return
		}
		if err := pr.Redraw(); err != nil {
			log.Error("redraw failed", "err", err)
		}
	})
	engine := render.New(backend, window, f.validateOverflows, poller)
	pr = presenter.New(pres, engine)

	go poller.Run(ctx)

	if err := pr.Redraw(); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	return inputLoop(pr, cancel)
}

// inputLoop reads raw bytes from stdin and drives pr until a quit key is
// seen or the reader hits EOF/error.
func inputLoop(pr *presenter.Presenter, cancel context.CancelFunc) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return nil
		}

		switch b {
		case 'q', 0x03: // q, ctrl+c
			cancel()
			return nil
		case 'n', ' ':
			pr.Next()
		case 'p':
			pr.Previous()
		case 'j':
			pr.NextSlide()
		case 'k':
			pr.PreviousSlide()
		case 'i':
			pr.ToggleIndex()
		case '?':
			pr.ToggleBindings()
		case 0x1b: // escape sequence, e.g. arrow keys: ESC [ C / ESC [ D
			seq, _ := reader.Peek(2)
			if len(seq) == 2 && seq[0] == '[' {
				reader.Discard(2)
				switch seq[1] {
				case 'C':
					pr.Next()
				case 'D':
					pr.Previous()
				}
				continue
			}
		default:
			continue
		}

		if err := pr.Redraw(); err != nil {
			return err
		}
	}
}

// exportHTML renders every slide into an offscreen grid and writes a
// single static HTML page, one <pre> block per slide holding the grid's
// characters as HTML-escaped plain text; cell colors are not exported
// (spec.md §6's "HTML export" external-output glue point; the stdlib html
// package is used because this is plain text formatting, not a domain
// concern any pack library specializes in).
func exportHTML(pres *present.Presentation, output string) error {
	if output == "" {
		return &usageError{fmt.Errorf("--export-html requires --output")}
	}

	window := render.WindowSize{Rows: 24, Columns: 80, WidthPx: 640, HeightPx: 384}

	var sb strings.Builder
	sb.WriteString("<!doctype html><html><head><meta charset=\"utf-8\">")
	sb.WriteString("<style>body{background:#000;color:#eee;font-family:monospace}pre{white-space:pre}section{margin-bottom:2em}</style>")
	sb.WriteString("</head><body>")

	for i, slide := range pres.Slides {
		grid := termproto.NewVirtual(int(window.Rows), int(window.Columns))
		engine := render.New(grid, window, false, nil)

		var ops []render.Operation
		for _, c := range slide.Chunks {
			ops = append(ops, c.Operations...)
		}
		if !slide.NoFooter {
			ops = append(ops, slide.Footer...)
		}
		if err := engine.Render(ops); err != nil {
			return fmt.Errorf("rendering slide %d: %w", i+1, err)
		}

		sb.WriteString(fmt.Sprintf("<section><h2>%s</h2><pre>", html.EscapeString(slide.Title)))
		for row := 0; row <= int(grid.MaxRowUsed()); row++ {
			for col := 0; col < grid.Cols(); col++ {
				r, _ := grid.Cell(row, col)
				if r == 0 {
					r = ' '
				}
				sb.WriteString(html.EscapeString(string(r)))
			}
			sb.WriteByte('\n')
		}
		sb.WriteString("</pre></section>")
	}
	sb.WriteString("</body></html>")

	return os.WriteFile(output, []byte(sb.String()), 0o644)
}
