package imageproto

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/mdshow/mdshow/internal/termproto"
)

// Handle is the render-level identity of one decoded image, satisfying
// both render.Image and termproto.Image so a single value can flow from
// the presentation builder through the render engine to the backend.
type Handle struct {
	id     uint64
	Source image.Image
}

func (h *Handle) ID() uint64       { return h.id }
func (h *Handle) PixelWidth() int  { return h.Source.Bounds().Dx() }
func (h *Handle) PixelHeight() int { return h.Source.Bounds().Dy() }

// Registry assigns stable ids to images and records which ids have
// already had their transmit-phase payload sent, so a Kitty image that
// appears on every slide of a loop is only base64-transmitted once
// (spec.md §4.6).
type Registry struct {
	mu        sync.Mutex
	nextID    uint64
	protocol  Protocol
	transmitted map[uint64]bool
}

// NewRegistry creates a Registry that will encode for protocol.
func NewRegistry(protocol Protocol) *Registry {
	return &Registry{protocol: protocol, transmitted: make(map[uint64]bool)}
}

// Register wraps img with a fresh stable id.
func (r *Registry) Register(img image.Image) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return &Handle{id: r.nextID, Source: img}
}

// markTransmitted reports whether id's pixel data has already been sent to
// the terminal, and records it as sent if not. Only the Kitty encoder uses
// this: Kitty needs the bytes once and later placements reference the id,
// while iTerm2 resends the payload on every placement.
func (r *Registry) markTransmitted(id uint64) (alreadySent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alreadySent = r.transmitted[id]
	r.transmitted[id] = true
	return alreadySent
}

// Writer adapts a Registry into a termproto.ImageWriter, dispatching to
// the protocol-specific encoder chosen at construction time.
type Writer struct {
	Registry *Registry
	Emulator TerminalEmulator
}

// NewWriter builds a Writer for the protocol already captured in registry.
func NewWriter(registry *Registry, emulator TerminalEmulator) *Writer {
	return &Writer{Registry: registry, Emulator: emulator}
}

func (w *Writer) WriteImage(out io.Writer, img termproto.Image, opts termproto.ImageRenderOptions) error {
	h, ok := img.(*Handle)
	if !ok {
		return errUnsupportedImage{img}
	}

	switch w.Registry.protocol {
	case ProtocolKitty:
		return writeKitty(out, w.Registry, h, opts, w.Emulator.InsideTmux)
	case ProtocolITerm2:
		return writeITerm2(out, h, opts)
	case ProtocolSixel:
		return writeSixel(out, h, opts)
	default:
		return writeASCII(out, h, opts)
	}
}

type errUnsupportedImage struct{ img termproto.Image }

func (e errUnsupportedImage) Error() string {
	return fmt.Sprintf("imageproto: backend image %T is not an *imageproto.Handle", e.img)
}
