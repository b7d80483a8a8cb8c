package imageproto

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/mdshow/mdshow/internal/termproto"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 50), G: uint8(y * 50), B: 100, A: 255})
		}
	}
	return img
}

func TestWriteKittyTransmitsOnceAndPlacesEachTime(t *testing.T) {
	registry := NewRegistry(ProtocolKitty)
	handle := registry.Register(testImage())
	writer := NewWriter(registry, TerminalEmulator{SupportsKitty: true})

	var first, second bytes.Buffer
	opts := termproto.ImageRenderOptions{Columns: 10, Rows: 5}

	if err := writer.WriteImage(&first, handle, opts); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writer.WriteImage(&second, handle, opts); err != nil {
		t.Fatalf("second write: %v", err)
	}

	if !strings.Contains(first.String(), "a=t") {
		t.Fatal("expected first write to include a transmit command")
	}
	if strings.Contains(second.String(), "a=t") {
		t.Fatal("expected second write to skip the transmit command")
	}
	if !strings.Contains(second.String(), "a=p") {
		t.Fatal("expected second write to include a placement command")
	}
}

func TestWriteKittyTmuxWrapsEscapes(t *testing.T) {
	registry := NewRegistry(ProtocolKitty)
	handle := registry.Register(testImage())
	writer := NewWriter(registry, TerminalEmulator{SupportsKitty: true, InsideTmux: true})

	var buf bytes.Buffer
	if err := writer.WriteImage(&buf, handle, termproto.ImageRenderOptions{Columns: 4, Rows: 2}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "\x1bPtmux;") {
		t.Fatal("expected tmux DCS passthrough prefix")
	}
}

func TestWriteASCIIFallback(t *testing.T) {
	registry := NewRegistry(ProtocolASCII)
	handle := registry.Register(testImage())
	writer := NewWriter(registry, TerminalEmulator{})

	var buf bytes.Buffer
	if err := writer.WriteImage(&buf, handle, termproto.ImageRenderOptions{Columns: 4, Rows: 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "▀") {
		t.Fatal("expected upper-half-block characters in ASCII output")
	}
}

func TestWriteImageRejectsForeignHandle(t *testing.T) {
	registry := NewRegistry(ProtocolASCII)
	writer := NewWriter(registry, TerminalEmulator{})

	var buf bytes.Buffer
	err := writer.WriteImage(&buf, fakeImage{}, termproto.ImageRenderOptions{})
	if err == nil {
		t.Fatal("expected error for non-Handle image")
	}
}

type fakeImage struct{}

func (fakeImage) ID() uint64 { return 1 }
