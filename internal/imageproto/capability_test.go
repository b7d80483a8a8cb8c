package imageproto

import "testing"

func TestDetectTerminalEmulatorKitty(t *testing.T) {
	env := Env{"KITTY_WINDOW_ID": "1", "TERM": "xterm-kitty"}
	e := DetectTerminalEmulator(env)
	if e.PreferredProtocol() != ProtocolKitty {
		t.Fatalf("expected kitty, got %s", e.PreferredProtocol())
	}
}

func TestDetectTerminalEmulatorITerm2(t *testing.T) {
	env := Env{"TERM_PROGRAM": "iTerm.app", "TERM": "xterm-256color"}
	e := DetectTerminalEmulator(env)
	if e.PreferredProtocol() != ProtocolITerm2 {
		t.Fatalf("expected iterm2, got %s", e.PreferredProtocol())
	}
}

func TestDetectTerminalEmulatorFallsBackToASCII(t *testing.T) {
	env := Env{"TERM": "vt100"}
	e := DetectTerminalEmulator(env)
	if e.PreferredProtocol() != ProtocolASCII {
		t.Fatalf("expected ascii fallback, got %s", e.PreferredProtocol())
	}
}

func TestDetectTerminalEmulatorTmux(t *testing.T) {
	env := Env{"TERM": "tmux-256color", "TMUX": "/tmp/tmux-1000/default,1234,0"}
	e := DetectTerminalEmulator(env)
	if !e.InsideTmux {
		t.Fatal("expected InsideTmux to be true")
	}
}
