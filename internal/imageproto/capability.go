// Package imageproto detects terminal image support and encodes a decoded
// image for whichever of the four protocols (Kitty, iTerm2, Sixel, ASCII
// half-blocks) the running terminal understands (spec.md §4.6).
package imageproto

import (
	"strings"

	"github.com/muesli/termenv"
)

// Protocol is a supported image-rendering transport.
type Protocol int

const (
	ProtocolASCII Protocol = iota
	ProtocolKitty
	ProtocolITerm2
	ProtocolSixel
)

func (p Protocol) String() string {
	switch p {
	case ProtocolKitty:
		return "kitty"
	case ProtocolITerm2:
		return "iterm2"
	case ProtocolSixel:
		return "sixel"
	default:
		return "ascii"
	}
}

// Env is the subset of the process environment capability detection reads.
// Tests construct one directly instead of mutating os.Environ.
type Env map[string]string

func (e Env) get(key string) string { return e[key] }

// TerminalEmulator classifies the terminal mdshow is running in, combining
// env-var fingerprinting (the same heuristic every terminal-image tool
// uses, since there is no portable capability query for "which graphics
// protocol do you speak") with termenv's color-profile detection, recorded
// in TrueColor. The ASCII fallback does not read TrueColor: writeASCII
// always emits 24-bit color blocks.
type TerminalEmulator struct {
	Name          string
	SupportsKitty bool
	SupportsSixel bool
	IsITerm2      bool
	InsideTmux    bool
	TrueColor     bool
}

// DetectTerminalEmulator classifies env using the same TERM/TERM_PROGRAM
// fingerprints presenterm's original terminal detection relies on (see
// original_source/), reimplemented here as plain string matching since no
// pack library offers a "what protocol does this terminal support" query.
func DetectTerminalEmulator(env Env) TerminalEmulator {
	term := env.get("TERM")
	program := env.get("TERM_PROGRAM")

	e := TerminalEmulator{Name: program}
	if e.Name == "" {
		e.Name = term
	}

	e.InsideTmux = strings.HasPrefix(term, "tmux") || env.get("TMUX") != ""

	switch {
	case env.get("KITTY_WINDOW_ID") != "", strings.Contains(term, "kitty"):
		e.SupportsKitty = true
	case program == "WezTerm":
		e.SupportsKitty = true
	case program == "iTerm.app":
		e.IsITerm2 = true
	case program == "ghostty", term == "ghostty":
		e.SupportsKitty = true
	case strings.Contains(term, "xterm") && env.get("WEZTERM_PANE") != "":
		e.SupportsKitty = true
	}

	if strings.Contains(term, "foot") || strings.Contains(term, "mlterm") || strings.Contains(term, "contour") {
		e.SupportsSixel = true
	}

	e.TrueColor = termenv.EnvColorProfile() == termenv.TrueColor

	return e
}

// PreferredProtocol picks the richest protocol the terminal advertises,
// falling back to ASCII half-blocks when nothing better is available
// (spec.md §4.6 "always has a fallback that can never fail").
func (e TerminalEmulator) PreferredProtocol() Protocol {
	switch {
	case e.SupportsKitty:
		return ProtocolKitty
	case e.IsITerm2:
		return ProtocolITerm2
	case e.SupportsSixel:
		return ProtocolSixel
	default:
		return ProtocolASCII
	}
}
