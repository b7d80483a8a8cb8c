// Package presenter is the state machine sitting between input events and
// the render engine: it tracks which slide and chunk is on screen and which
// modal (if any) is overlaid, then renders the current view on demand; the
// render engine, not the presenter, tracks which async operations have
// been handed to the poller (spec.md §2 "input
// events -> presenter state machine -> render engine").
package presenter

import (
	"github.com/mdshow/mdshow/internal/present"
	"github.com/mdshow/mdshow/internal/render"
)

// Modal is an overlay drawn on top of the current slide.
type Modal int

const (
	ModalNone Modal = iota
	ModalIndex
	ModalBindings
)

// Presenter holds navigation state over one built Presentation and knows
// how to turn it into the operation list for the engine to draw. Engine
// itself registers each Automatic-policy RenderAsync it encounters with
// the poller it was built with, idempotently, so Presenter doesn't have
// to track that separately (internal/render.Engine.renderAsync).
type Presenter struct {
	pres   *present.Presentation
	engine *render.Engine

	slideIdx int
	chunkIdx int
	modal    Modal
}

// New creates a Presenter positioned on the first slide of pres, drawn
// through engine.
func New(pres *present.Presentation, engine *render.Engine) *Presenter {
	return &Presenter{pres: pres, engine: engine}
}

// CurrentSlide returns the slide on screen.
func (p *Presenter) CurrentSlide() *present.Slide { return p.pres.Slides[p.slideIdx] }

// SlideIndex and TotalSlides report 0-based position for a status line.
func (p *Presenter) SlideIndex() int  { return p.slideIdx }
func (p *Presenter) TotalSlides() int { return len(p.pres.Slides) }

// Next advances one step: first any not-yet-fully-revealed highlight
// mutator in the current chunk, else the next chunk, else the next slide.
func (p *Presenter) Next() {
	chunk := p.CurrentSlide().Chunks[p.chunkIdx]
	if advanceMutators(chunk, true) {
		return
	}
	if p.chunkIdx+1 < len(p.CurrentSlide().Chunks) {
		p.chunkIdx++
		return
	}
	p.NextSlide()
}

// Previous is Next's mirror image.
func (p *Presenter) Previous() {
	chunk := p.CurrentSlide().Chunks[p.chunkIdx]
	if advanceMutators(chunk, false) {
		return
	}
	if p.chunkIdx > 0 {
		p.chunkIdx--
		return
	}
	p.PreviousSlide()
}

func advanceMutators(chunk *present.SlideChunk, forward bool) bool {
	advanced := false
	for _, m := range chunk.Mutators {
		cur, total := m.Mutations()
		switch {
		case forward && cur < total:
			m.MutateNext()
			advanced = true
		case !forward && cur > 1:
			m.MutatePrevious()
			advanced = true
		}
	}
	return advanced
}

// NextSlide jumps straight to the next slide's first chunk, skipping any
// remaining pauses on the current one.
func (p *Presenter) NextSlide() {
	if p.slideIdx+1 >= len(p.pres.Slides) {
		return
	}
	p.slideIdx++
	p.chunkIdx = 0
}

// PreviousSlide jumps straight to the previous slide's first chunk.
func (p *Presenter) PreviousSlide() {
	if p.slideIdx == 0 {
		return
	}
	p.slideIdx--
	p.chunkIdx = 0
}

// JumpToSlide moves to the 0-based slide index n, clamped to range.
func (p *Presenter) JumpToSlide(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(p.pres.Slides) {
		n = len(p.pres.Slides) - 1
	}
	p.slideIdx = n
	p.chunkIdx = 0
}

// ToggleIndex shows or hides the slide index modal.
func (p *Presenter) ToggleIndex() {
	if p.modal == ModalIndex {
		p.modal = ModalNone
	} else {
		p.modal = ModalIndex
	}
}

// ToggleBindings shows or hides the key-bindings modal.
func (p *Presenter) ToggleBindings() {
	if p.modal == ModalBindings {
		p.modal = ModalNone
	} else {
		p.modal = ModalBindings
	}
}

// Operations builds the render-operation list for the current view: the
// slide's chunks up to and including the active one, its footer, and
// whichever modal is toggled on, in that order (spec.md §4.1).
func (p *Presenter) Operations() []render.Operation {
	slide := p.CurrentSlide()

	ops := []render.Operation{render.ClearScreen()}
	for i := 0; i <= p.chunkIdx && i < len(slide.Chunks); i++ {
		ops = append(ops, slide.Chunks[i].Operations...)
	}
	if !slide.NoFooter {
		ops = append(ops, slide.Footer...)
	}

	switch p.modal {
	case ModalIndex:
		ops = append(ops, p.pres.IndexModal...)
	case ModalBindings:
		ops = append(ops, p.pres.BindingsModal...)
	}
	return ops
}

// Redraw renders the current view through the bound engine.
func (p *Presenter) Redraw() error {
	return p.engine.Render(p.Operations())
}
