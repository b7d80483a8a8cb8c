package execute

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/vtparse"
)

// Executor runs Snippets. A single Executor is shared by a presentation;
// Run and RunPTY may be called concurrently for independent snippets.
type Executor struct {
	workDir string
}

// New creates an Executor that writes snippet temp files under workDir
// (os.TempDir() if empty).
func New(workDir string) *Executor {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Executor{workDir: workDir}
}

func (e *Executor) writeTempFile(snippet Snippet) (string, error) {
	f, err := os.CreateTemp(e.workDir, "mdshow-snippet-*."+fileExtension(snippet.Language))
	if err != nil {
		return "", fmt.Errorf("creating snippet temp file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(snippet.Code); err != nil {
		return "", fmt.Errorf("writing snippet temp file: %w", err)
	}
	return f.Name(), nil
}

func (e *Executor) command(ctx context.Context, snippet Snippet) (*exec.Cmd, string, error) {
	argv, ok := interpreterFor(snippet.Language)
	if !ok {
		return nil, "", &mdserr.UnsupportedLanguageError{Language: snippet.Language}
	}
	path, err := e.writeTempFile(snippet)
	if err != nil {
		return nil, "", err
	}
	args := append(append([]string{}, argv[1:]...), path)
	return exec.CommandContext(ctx, argv[0], args...), path, nil
}

// Run starts snippet in ModeCapture or ModeImage, piping stdout/stderr
// into the returned State as they arrive. Run removes the backing temp
// file itself once the process exits; the caller doesn't need to.
func (e *Executor) Run(ctx context.Context, snippet Snippet) (*State, error) {
	cmd, path, err := e.command(ctx, snippet)
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("snippet stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("snippet stderr pipe: %w", err)
	}

	state := NewState(nil)

	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("starting snippet: %w", err)
	}

	go pumpPipe(stdout, state.appendStdout)
	go pumpPipe(stderr, state.appendStderr)

	go func() {
		err := cmd.Wait()
		os.Remove(path)
		state.finish(err)
	}()

	return state, nil
}

// RunPTY starts snippet in ModePTY, attaching a pseudo-terminal so
// full-screen or color-producing programs render correctly. PTY output
// feeds a vtparse.Terminal sized rows x cols, available from
// State.Terminal for the render engine to snapshot each frame.
func (e *Executor) RunPTY(ctx context.Context, snippet Snippet, rows, cols int) (*State, error) {
	cmd, path, err := e.command(ctx, snippet)
	if err != nil {
		return nil, err
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("starting snippet under pty: %w", err)
	}

	term := vtparse.New(vtparse.WithSize(rows, cols))
	state := NewState(term)

	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				state.appendStdout(buf[:n])
			}
			if readErr != nil {
				return
			}
		}
	}()

	go func() {
		waitErr := cmd.Wait()
		ptmx.Close()
		os.Remove(path)
		state.finish(waitErr)
	}()

	return state, nil
}

func pumpPipe(r io.Reader, sink func([]byte)) {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sink(chunk)
		}
		if err != nil {
			return
		}
	}
}
