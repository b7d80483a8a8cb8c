package mdsource

import "testing"

func TestParseCodeInfoLanguageAndFlags(t *testing.T) {
	attrs := ParseCodeInfo("go +line_numbers +exec +id:demo")
	if attrs.Language != "go" {
		t.Fatalf("language = %q, want go", attrs.Language)
	}
	if !attrs.LineNumbers || !attrs.Exec {
		t.Fatalf("expected line_numbers and exec set, got %+v", attrs)
	}
	if attrs.ID != "demo" {
		t.Fatalf("id = %q, want demo", attrs.ID)
	}
}

func TestParseCodeInfoPTYFlag(t *testing.T) {
	attrs := ParseCodeInfo("bash +exec +pty")
	if !attrs.Exec || !attrs.PTY {
		t.Fatalf("expected exec and pty set, got %+v", attrs)
	}
	if attrs.AcquireTerminal {
		t.Fatalf("expected acquire_terminal unset")
	}
}

func TestParseCodeInfoAcquireTerminalFlag(t *testing.T) {
	attrs := ParseCodeInfo("bash +exec +acquire_terminal")
	if !attrs.AcquireTerminal {
		t.Fatalf("expected acquire_terminal set, got %+v", attrs)
	}
	if attrs.PTY {
		t.Fatalf("expected pty unset")
	}
}

func TestParseCodeInfoHighlightGroups(t *testing.T) {
	attrs := ParseCodeInfo("go {1,3-4}")
	want := []LineRange{{Start: 1, End: 1}, {Start: 3, End: 4}}
	if len(attrs.HighlightGroups) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(attrs.HighlightGroups), len(want))
	}
	for i, r := range want {
		if attrs.HighlightGroups[i] != r {
			t.Fatalf("range %d = %+v, want %+v", i, attrs.HighlightGroups[i], r)
		}
	}
}
