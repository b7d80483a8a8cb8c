package presenter

import (
	"testing"

	"github.com/mdshow/mdshow/internal/present"
	"github.com/mdshow/mdshow/internal/render"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/termproto"
)

func textOp(s string) render.Operation {
	line := style.Line{style.PlainText(s)}
	return render.Operation{Kind: render.KindRenderText, Line: style.NewWeightedLine(line)}
}

type fakeMutator struct {
	current, total int
}

func (m *fakeMutator) MutateNext()     { m.current++ }
func (m *fakeMutator) MutatePrevious() { m.current-- }
func (m *fakeMutator) Reset()          { m.current = 1 }
func (m *fakeMutator) ApplyAll()       { m.current = m.total }
func (m *fakeMutator) Mutations() (int, int) { return m.current, m.total }

func twoSlidePresentation() *present.Presentation {
	s1 := &present.Slide{
		Title: "One",
		Chunks: []*present.SlideChunk{
			{Operations: []render.Operation{textOp("a")}},
			{Operations: []render.Operation{textOp("b")}},
		},
	}
	s2 := &present.Slide{
		Title:  "Two",
		Chunks: []*present.SlideChunk{{Operations: []render.Operation{textOp("c")}}},
	}
	return &present.Presentation{
		Slides:        []*present.Slide{s1, s2},
		IndexModal:    []render.Operation{textOp("index")},
		BindingsModal: []render.Operation{textOp("bindings")},
	}
}

func newTestEngine() *render.Engine {
	v := termproto.NewVirtual(10, 40)
	return render.New(v, render.WindowSize{Rows: 10, Columns: 40}, false, nil)
}

func TestPresenterStartsOnFirstSlide(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	if p.SlideIndex() != 0 || p.CurrentSlide().Title != "One" {
		t.Fatalf("expected to start on slide One, got index %d title %q", p.SlideIndex(), p.CurrentSlide().Title)
	}
	if p.TotalSlides() != 2 {
		t.Fatalf("expected 2 slides, got %d", p.TotalSlides())
	}
}

func TestNextAdvancesChunkBeforeSlide(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	p.Next()
	if p.SlideIndex() != 0 || p.chunkIdx != 1 {
		t.Fatalf("expected to stay on slide 0 chunk 1, got slide %d chunk %d", p.SlideIndex(), p.chunkIdx)
	}
	p.Next()
	if p.SlideIndex() != 1 {
		t.Fatalf("expected to move to slide 1, got %d", p.SlideIndex())
	}
}

func TestNextStopsAtLastSlide(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	p.JumpToSlide(1)
	p.Next()
	if p.SlideIndex() != 1 {
		t.Fatalf("expected Next on last slide to be a no-op, got index %d", p.SlideIndex())
	}
}

func TestPreviousStopsAtFirstSlide(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	p.Previous()
	if p.SlideIndex() != 0 {
		t.Fatalf("expected Previous on first slide to be a no-op, got index %d", p.SlideIndex())
	}
}

func TestNextRevealsMutatorBeforeAdvancingChunk(t *testing.T) {
	pres := twoSlidePresentation()
	m := &fakeMutator{current: 1, total: 3}
	pres.Slides[0].Chunks[0].Mutators = []present.ChunkMutator{m}

	p := New(pres, newTestEngine())
	p.Next()
	if p.chunkIdx != 0 || m.current != 2 {
		t.Fatalf("expected mutator step without chunk advance, got chunkIdx %d mutator %d", p.chunkIdx, m.current)
	}
	p.Next()
	if m.current != 3 {
		t.Fatalf("expected mutator to reach 3, got %d", m.current)
	}
	p.Next()
	if p.chunkIdx != 1 {
		t.Fatalf("expected chunk advance once mutator exhausted, got %d", p.chunkIdx)
	}
}

func TestJumpToSlideClampsRange(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	p.JumpToSlide(50)
	if p.SlideIndex() != 1 {
		t.Fatalf("expected clamp to last slide, got %d", p.SlideIndex())
	}
	p.JumpToSlide(-5)
	if p.SlideIndex() != 0 {
		t.Fatalf("expected clamp to first slide, got %d", p.SlideIndex())
	}
}

func TestToggleIndexAndBindingsAreExclusive(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	p.ToggleIndex()
	if p.modal != ModalIndex {
		t.Fatalf("expected index modal on")
	}
	p.ToggleBindings()
	if p.modal != ModalBindings {
		t.Fatalf("expected bindings modal to replace index modal")
	}
	p.ToggleBindings()
	if p.modal != ModalNone {
		t.Fatalf("expected bindings modal to toggle off")
	}
}

func TestOperationsIncludesOnlyChunksUpToCurrent(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	ops := p.Operations()
	if len(ops) != 2 {
		t.Fatalf("expected ClearScreen + first chunk only, got %d ops", len(ops))
	}
	p.Next()
	ops = p.Operations()
	if len(ops) != 3 {
		t.Fatalf("expected ClearScreen + both chunks after Next, got %d ops", len(ops))
	}
}

func TestOperationsAppendsActiveModal(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	withoutModal := len(p.Operations())
	p.ToggleIndex()
	withModal := len(p.Operations())
	if withModal != withoutModal+1 {
		t.Fatalf("expected exactly one extra op for the index modal, got %d vs %d", withModal, withoutModal)
	}
}

func TestRedrawRendersWithoutError(t *testing.T) {
	p := New(twoSlidePresentation(), newTestEngine())
	if err := p.Redraw(); err != nil {
		t.Fatalf("redraw: %v", err)
	}
}
