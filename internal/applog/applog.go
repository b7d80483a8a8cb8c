// Package applog provides mdshow's single logging convention: a
// log/slog.Logger writing plain text to stderr, threaded explicitly through
// constructors rather than accessed as a package global.
package applog

import (
	"io"
	"log/slog"
)

// New builds the logger that cmd/mdshow uses and hands to the poller.
// verbose raises the level to Debug; otherwise only Info and above are
// emitted, matching a typical terminal application's default noise level.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
