package present

import "github.com/mdshow/mdshow/internal/render"

// ChunkMutator encapsulates intra-chunk state a slide chunk needs to
// reveal incrementally without rebuilding its operations, e.g. which
// highlight group of a code snippet is currently active (spec.md §4.1
// "highlight groups become a HighlightMutator on the chunk").
type ChunkMutator interface {
	MutateNext()
	MutatePrevious()
	Reset()
	ApplyAll()
	// Mutations reports the current 1-based step and the total step count.
	Mutations() (current, total int)
}

// SlideChunk is the content visible up to one `pause` boundary.
type SlideChunk struct {
	Operations []render.Operation
	Mutators   []ChunkMutator
}

// Slide is one presentation slide: an ordered sequence of chunks revealed
// by successive "next" commands, plus whatever isn't chunk-scoped.
type Slide struct {
	Title    string
	Chunks   []*SlideChunk
	Footer   []render.Operation
	NoFooter bool
	Notes    []string
	Skip     bool
}

// Presentation is the presentation builder's output: the slide sequence
// plus the two pre-built modal operation lists spec.md §4.1 requires.
type Presentation struct {
	Slides        []*Slide
	IndexModal    []render.Operation
	BindingsModal []render.Operation
}

func (s *Slide) currentChunk() *SlideChunk {
	if len(s.Chunks) == 0 {
		s.Chunks = append(s.Chunks, &SlideChunk{})
	}
	return s.Chunks[len(s.Chunks)-1]
}

func (s *Slide) startChunk() {
	s.Chunks = append(s.Chunks, &SlideChunk{})
}

func (s *Slide) hasContent() bool {
	for _, c := range s.Chunks {
		if len(c.Operations) > 0 {
			return true
		}
	}
	return false
}

func (c *SlideChunk) emit(ops ...render.Operation) {
	c.Operations = append(c.Operations, ops...)
}
