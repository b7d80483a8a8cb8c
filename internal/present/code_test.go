package present

import (
	"testing"

	"github.com/mdshow/mdshow/internal/execute"
	"github.com/mdshow/mdshow/internal/mdsource"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/vtparse"
)

func TestNewSnippetExecutionSelectsMode(t *testing.T) {
	cases := []struct {
		name  string
		attrs mdsource.CodeAttributes
		want  execute.Mode
	}{
		{"capture", mdsource.CodeAttributes{Exec: true}, execute.ModeCapture},
		{"image", mdsource.CodeAttributes{Image: true}, execute.ModeImage},
		{"pty", mdsource.CodeAttributes{PTY: true}, execute.ModePTY},
		{"acquire_terminal", mdsource.CodeAttributes{AcquireTerminal: true}, execute.ModeAcquireTerminal},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := New(testOptions())
			cb := &mdsource.CodeBlock{Code: "echo hi", Attributes: c.attrs}
			exec := b.newSnippetExecution(cb, "")
			if exec.snippet.Mode != c.want {
				t.Fatalf("mode = %v, want %v", exec.snippet.Mode, c.want)
			}
		})
	}
}

func TestEnsureStartedWithoutExecutorDisables(t *testing.T) {
	b := New(testOptions())
	cb := &mdsource.CodeBlock{Code: "echo hi", Attributes: mdsource.CodeAttributes{AcquireTerminal: true}}
	exec := b.newSnippetExecution(cb, "")

	exec.ensureStarted()
	if exec.startErr == nil {
		t.Fatal("expected an error when no executor is configured")
	}
}

type fakeSuspender struct {
	suspended, resumed bool
}

func (f *fakeSuspender) Suspend() error { f.suspended = true; return nil }
func (f *fakeSuspender) Resume() error  { f.resumed = true; return nil }

func TestEnsureStartedAcquireTerminalWithoutSuspenderFails(t *testing.T) {
	opts := testOptions()
	opts.Executor = execute.New(t.TempDir())
	b := New(opts)

	cb := &mdsource.CodeBlock{Code: "true", Attributes: mdsource.CodeAttributes{Language: "sh", AcquireTerminal: true}}
	exec := b.newSnippetExecution(cb, "")

	exec.ensureStarted()
	if exec.startErr == nil {
		t.Fatal("expected an error when no terminal suspender is configured")
	}
}

func TestNewSnippetExecutionThreadsSuspender(t *testing.T) {
	opts := testOptions()
	opts.Executor = execute.New(t.TempDir())
	opts.TerminalSuspender = &fakeSuspender{}
	b := New(opts)

	cb := &mdsource.CodeBlock{Code: "true", Attributes: mdsource.CodeAttributes{Language: "sh", AcquireTerminal: true}}
	exec := b.newSnippetExecution(cb, "")

	if exec.suspender == nil {
		t.Fatal("expected suspender to be threaded through from Options")
	}
}

// TestAsRenderOperationsPTYUsesTerminalGrid feeds a colored escape sequence
// into a vtparse.Terminal directly (bypassing the real PTY/exec plumbing)
// and checks that AsRenderOperations renders the parsed, styled text
// instead of the raw escape bytes.
func TestAsRenderOperationsPTYUsesTerminalGrid(t *testing.T) {
	term := vtparse.New(vtparse.WithSize(2, 20))
	term.WriteString("\x1b[1;31mhi\x1b[0m")

	st := execute.NewState(term)
	exec := &SnippetExecution{state: st, started: true}

	var ops []render.Operation
	exec.AsRenderOperations(render.WindowSize{}, &ops)

	if len(ops) == 0 {
		t.Fatal("expected render operations from the terminal grid")
	}
	if ops[0].Kind != render.KindRenderText {
		t.Fatalf("ops[0].Kind = %v, want KindRenderText", ops[0].Kind)
	}
	text := ops[0].Line.AsText()
	if text != "hi" {
		t.Fatalf("rendered text = %q, want %q (should come from the parsed grid, not raw bytes)", text, "hi")
	}
	line := ops[0].Line.Line()
	if len(line) == 0 || !line[0].Style.Has(style.FlagBold) {
		t.Fatalf("expected bold run from SGR 1, got %+v", line)
	}
}
