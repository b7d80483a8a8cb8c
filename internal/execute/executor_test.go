package execute

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mdshow/mdshow/internal/async"
)

func waitForState(t *testing.T, state *State, want async.State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s, _ := state.Poll()
		if s == want || (want == async.StateDone && s == async.StateFailed) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state never reached %v", want)
}

func TestRunCapturesStdout(t *testing.T) {
	snippet := Snippet{Language: "sh", Code: "echo hello-mdshow"}
	e := New(t.TempDir())

	state, err := e.Run(context.Background(), snippet)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	waitForState(t, state, async.StateDone, 2*time.Second)

	if got := string(state.Stdout()); !strings.Contains(got, "hello-mdshow") {
		t.Fatalf("expected stdout to contain hello-mdshow, got %q", got)
	}
}

func TestRunUnsupportedLanguage(t *testing.T) {
	snippet := Snippet{Language: "cobol", Code: "DISPLAY 'HI'."}
	e := New(t.TempDir())

	if _, err := e.Run(context.Background(), snippet); err == nil {
		t.Fatal("expected an error for an unsupported language")
	}
}

func TestRunPTYFeedsTerminal(t *testing.T) {
	snippet := Snippet{Language: "sh", Code: "printf hi"}
	e := New(t.TempDir())

	state, err := e.RunPTY(context.Background(), snippet, 24, 80)
	if err != nil {
		t.Fatalf("run pty: %v", err)
	}

	waitForState(t, state, async.StateDone, 2*time.Second)

	if state.Terminal() == nil {
		t.Fatal("expected a non-nil terminal for ModePTY")
	}
}
