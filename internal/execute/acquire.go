package execute

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// terminalSuspender is satisfied by termproto.Real without execute
// importing termproto, so the acquire_terminal mode stays backend-agnostic.
type terminalSuspender interface {
	Suspend() error
	Resume() error
}

// RunAcquiringTerminal runs snippet with its stdio connected directly to
// the process's real stdin/stdout/stderr, after asking term to give up the
// terminal, and hands it back when the child exits (spec.md §5.3,
// ModeAcquireTerminal). Unlike Run and RunPTY, this blocks until the
// child process exits: there is nothing to poll, the terminal isn't
// mdshow's to draw to until it returns.
func (e *Executor) RunAcquiringTerminal(ctx context.Context, snippet Snippet, term terminalSuspender) error {
	cmd, path, err := e.command(ctx, snippet)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := term.Suspend(); err != nil {
		return fmt.Errorf("suspending terminal: %w", err)
	}
	defer term.Resume()

	return runAndWait(cmd)
}

func runAndWait(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting acquire_terminal snippet: %w", err)
	}
	return cmd.Wait()
}
