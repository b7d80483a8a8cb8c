// Package vtparse implements a headless VT220-compatible terminal emulator
// used to interpret the byte stream produced by a child process running
// inside a pseudo-terminal.
//
// mdshow's code-execution subsystem (internal/execute) spawns snippet
// commands under a PTY so that programs which assume an interactive
// terminal (progress bars, colored output, cursor motion) behave correctly.
// The raw bytes that come back out of the PTY are ANSI/VT escape sequences,
// not plain text — a [Terminal] consumes them and maintains a 2D grid of
// styled [Cell] values that the render engine can later read to produce
// RenderOperations for the slide showing that snippet's output.
//
// The terminal is driven by github.com/danielgatis/go-ansicode, which
// tokenizes the byte stream and calls back into [Terminal] through the
// ansicode.Handler interface implemented in handler.go.
package vtparse
