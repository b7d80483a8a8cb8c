package present

import (
	"errors"
	"testing"

	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/render"
)

func TestParseCommentIgnoresUnknown(t *testing.T) {
	cmd, ok, err := parseComment("vim: set ts=2 sw=2:", "f.md", 1)
	if err != nil || ok || cmd != nil {
		t.Fatalf("expected unrecognized comment to be ignored, got cmd=%v ok=%v err=%v", cmd, ok, err)
	}
}

func TestParseCommentPause(t *testing.T) {
	cmd, ok, err := parseComment("pause", "f.md", 1)
	if err != nil || !ok {
		t.Fatalf("unexpected err=%v ok=%v", err, ok)
	}
	if cmd.kind != cmdPause {
		t.Fatalf("expected cmdPause, got %v", cmd.kind)
	}
}

func TestParseCommentColumnLayout(t *testing.T) {
	cmd, ok, err := parseComment("column_layout: [1, 2, 1]", "f.md", 1)
	if err != nil || !ok {
		t.Fatalf("unexpected err=%v ok=%v", err, ok)
	}
	want := []uint8{1, 2, 1}
	if len(cmd.columns) != len(want) {
		t.Fatalf("expected %v, got %v", want, cmd.columns)
	}
	for i := range want {
		if cmd.columns[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, cmd.columns)
		}
	}
}

func TestParseCommentFontSizeOutOfRange(t *testing.T) {
	_, ok, err := parseComment("font_size: 9", "f.md", 3)
	if !ok {
		t.Fatalf("expected recognized command keyword even on failure")
	}
	var posErr *mdserr.PositionError
	if !errors.As(err, &posErr) {
		t.Fatalf("expected *mdserr.PositionError, got %v", err)
	}
	var rangeErr *mdserr.FontSizeRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *mdserr.FontSizeRangeError, got %v", err)
	}
}

func TestParseCommentMalformedKeywordIsFatal(t *testing.T) {
	_, ok, err := parseComment("column: not-a-number", "f.md", 5)
	if !ok {
		t.Fatalf("expected recognized command keyword even on failure")
	}
	if err == nil {
		t.Fatalf("expected error for malformed column command")
	}
	var cmdErr *mdserr.InvalidCommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *mdserr.InvalidCommandError, got %v", err)
	}
}

func TestParseCommentAlignment(t *testing.T) {
	cmd, ok, err := parseComment("alignment: center", "f.md", 1)
	if err != nil || !ok {
		t.Fatalf("unexpected err=%v ok=%v", err, ok)
	}
	if cmd.alignment != render.AlignCenter {
		t.Fatalf("expected AlignCenter, got %v", cmd.alignment)
	}
}

func TestParseCommentSnippetOutput(t *testing.T) {
	cmd, ok, err := parseComment("snippet_output:demo", "f.md", 1)
	if err != nil || !ok {
		t.Fatalf("unexpected err=%v ok=%v", err, ok)
	}
	if cmd.kind != cmdSnippetOutput || cmd.id != "demo" {
		t.Fatalf("unexpected command %+v", cmd)
	}
}
