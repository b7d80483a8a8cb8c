package execute

import (
	"sync"

	"github.com/mdshow/mdshow/internal/async"
	"github.com/mdshow/mdshow/internal/vtparse"
)

// State is the mutex-guarded, poll-friendly view of one running or
// finished snippet. It satisfies async.Pollable so the render engine can
// hand it straight to the poller via a RenderAsync operation.
type State struct {
	mu sync.Mutex

	stdout   []byte
	stderr   []byte
	terminal *vtparse.Terminal // non-nil only in ModePTY

	dirty    bool
	finished bool
	err      error
}

// NewState creates a State. term is non-nil for ModePTY executions; the
// executor feeds raw PTY bytes into it as they arrive.
func NewState(term *vtparse.Terminal) *State {
	return &State{terminal: term}
}

func (s *State) appendStdout(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stdout = append(s.stdout, b...)
	if s.terminal != nil {
		s.terminal.Write(b)
	}
	s.dirty = true
}

func (s *State) appendStderr(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stderr = append(s.stderr, b...)
	s.dirty = true
}

func (s *State) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	s.err = err
	s.dirty = true
}

// Poll implements async.Pollable. Once finished, it reports StateDone or
// StateFailed exactly once more (whichever output was pending) and keeps
// returning that terminal state afterward, satisfying the idempotent
// pollable contract spec.md §4.3 requires.
func (s *State) Poll() (async.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		if s.finished {
			if s.err != nil {
				return async.StateFailed, s.err
			}
			return async.StateDone, nil
		}
		return async.StateUnmodified, nil
	}

	s.dirty = false
	if s.finished {
		if s.err != nil {
			return async.StateFailed, s.err
		}
		return async.StateDone, nil
	}
	return async.StateModified, nil
}

// Stdout returns a snapshot of the captured stdout so far.
func (s *State) Stdout() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.stdout))
	copy(out, s.stdout)
	return out
}

// Stderr returns a snapshot of the captured stderr so far.
func (s *State) Stderr() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.stderr))
	copy(out, s.stderr)
	return out
}

// Terminal returns the PTY-fed terminal for ModePTY executions, or nil.
func (s *State) Terminal() *vtparse.Terminal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal
}

// Err returns the execution's final error, if any. Only meaningful once
// Poll has reported StateDone or StateFailed.
func (s *State) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
