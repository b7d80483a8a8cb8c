package render

import (
	"testing"

	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/termproto"
)

func textOp(s string) Operation {
	line := style.Line{style.PlainText(s)}
	return Operation{Kind: KindRenderText, Line: style.NewWeightedLine(line)}
}

func sampleOps() []Operation {
	return []Operation{
		ClearScreen(),
		ApplyMargin(MarginProperties{Top: 1, Bottom: 1, Horizontal: 2}),
		JumpToRow(0),
		textOp("hello"),
		RenderLineBreak(),
		textOp("world"),
		PopMargin(),
	}
}

func TestEngineDeterministic(t *testing.T) {
	run := func() *termproto.Virtual {
		v := termproto.NewVirtual(10, 40)
		e := New(v, WindowSize{Rows: 10, Columns: 40}, false, nil)
		if err := e.Render(sampleOps()); err != nil {
			t.Fatalf("render: %v", err)
		}
		return v
	}

	a, b := run(), run()
	for row := 0; row < 10; row++ {
		for col := 0; col < 40; col++ {
			ra, _ := a.Cell(row, col)
			rb, _ := b.Cell(row, col)
			if ra != rb {
				t.Fatalf("cell (%d,%d) differs between runs: %q vs %q", row, col, ra, rb)
			}
		}
	}
}

func TestEngineOnlyWrittenCellsAreNonBlank(t *testing.T) {
	v := termproto.NewVirtual(10, 40)
	e := New(v, WindowSize{Rows: 10, Columns: 40}, false, nil)
	if err := e.Render(sampleOps()); err != nil {
		t.Fatalf("render: %v", err)
	}

	nonBlank := 0
	for row := 0; row < 10; row++ {
		for col := 0; col < 40; col++ {
			r, _ := v.Cell(row, col)
			if r != 0 && r != ' ' {
				nonBlank++
			}
		}
	}

	if nonBlank != len("hello")+len("world") {
		t.Fatalf("expected %d non-blank cells, got %d", len("hello")+len("world"), nonBlank)
	}
}

func TestPopMarginUnderflow(t *testing.T) {
	v := termproto.NewVirtual(5, 20)
	e := New(v, WindowSize{Rows: 5, Columns: 20}, false, nil)
	if err := e.Render([]Operation{PopMargin()}); err == nil {
		t.Fatal("expected margin underflow error")
	}
}

func TestEnterColumnWithoutLayout(t *testing.T) {
	v := termproto.NewVirtual(5, 20)
	e := New(v, WindowSize{Rows: 5, Columns: 20}, false, nil)
	if err := e.Render([]Operation{EnterColumn(0)}); err == nil {
		t.Fatal("expected invalid layout enter error")
	}
}

func TestColumnLayoutKeepsPerColumnCursor(t *testing.T) {
	v := termproto.NewVirtual(10, 40)
	e := New(v, WindowSize{Rows: 10, Columns: 40}, false, nil)
	ops := []Operation{
		InitColumnLayout([]uint8{1, 1}),
		EnterColumn(0),
		textOp("left"),
		EnterColumn(1),
		textOp("right"),
		ExitLayout(),
	}
	if err := e.Render(ops); err != nil {
		t.Fatalf("render: %v", err)
	}

	row0 := ""
	for col := 0; col < 40; col++ {
		r, _ := v.Cell(0, col)
		if r != 0 {
			row0 += string(r)
		}
	}
	if row0 == "" {
		t.Fatal("expected column content on row 0")
	}
}

func TestHorizontalOverflowDetected(t *testing.T) {
	v := termproto.NewVirtual(5, 10)
	e := New(v, WindowSize{Rows: 5, Columns: 10}, true, nil)
	ops := []Operation{textOp("thisisaverylongunbreakableword")}
	if err := e.Render(ops); err == nil {
		t.Fatal("expected horizontal overflow error")
	}
}

func TestVerticalOverflowDetected(t *testing.T) {
	v := termproto.NewVirtual(2, 10)
	e := New(v, WindowSize{Rows: 2, Columns: 10}, true, nil)
	ops := []Operation{
		JumpToRow(5),
		textOp("x"),
	}
	if err := e.Render(ops); err == nil {
		t.Fatal("expected vertical overflow error")
	}
}
