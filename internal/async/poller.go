package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// pollInterval is how long the poller sleeps between passes over its
// active pollables (spec.md §5 "the poller thread sleeps a short interval
// between passes").
const pollInterval = 50 * time.Millisecond

// Poller runs on a single worker goroutine and repeatedly polls every
// Pollable registered with it. It never touches the terminal directly
// (spec.md §5 "the poller never mutates the terminal directly"); instead it
// calls onRedraw when any pollable reports Modified.
type Poller struct {
	log      *slog.Logger
	onRedraw func()

	mu       sync.Mutex
	active   map[*entry]struct{}
	failures map[*entry]error
}

type entry struct {
	p Pollable
}

// NewPoller creates a Poller that invokes onRedraw (asynchronously, from
// the worker goroutine) whenever a registered Pollable transitions to
// Modified.
func NewPoller(log *slog.Logger, onRedraw func()) *Poller {
	return &Poller{
		log:      log,
		onRedraw: onRedraw,
		active:   make(map[*entry]struct{}),
		failures: make(map[*entry]error),
	}
}

// Register adds p to the poll set. Safe to call from any goroutine.
func (pl *Poller) Register(p Pollable) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.active[&entry{p: p}] = struct{}{}
}

// Run drives the poll loop until ctx is canceled. Intended to be launched
// once as `go poller.Run(ctx)`.
func (pl *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pl.pollOnce()
		}
	}
}

func (pl *Poller) pollOnce() {
	pl.mu.Lock()
	entries := make([]*entry, 0, len(pl.active))
	for e := range pl.active {
		entries = append(entries, e)
	}
	pl.mu.Unlock()

	redraw := false
	for _, e := range entries {
		state, err := e.p.Poll()
		switch state {
		case StateModified:
			redraw = true
		case StateDone:
			pl.retire(e)
			redraw = true
		case StateFailed:
			pl.recordFailure(e, err)
			pl.retire(e)
			redraw = true
		}
	}

	if redraw && pl.onRedraw != nil {
		pl.onRedraw()
	}
}

func (pl *Poller) retire(e *entry) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	delete(pl.active, e)
}

func (pl *Poller) recordFailure(e *entry, err error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.failures[e] = err
	if pl.log != nil {
		pl.log.Error("async operation failed", "error", err)
	}
}
