package present

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/mdshow/mdshow/internal/imageproto"
	"github.com/mdshow/mdshow/internal/render"
)

// defaultImageWidthRatio is how much of the window's width a standalone
// image occupies, used both to size it and to center it (spec.md §4.1
// "centered placement"; the exact auto-fit aspect math lives in the
// render engine, so the builder only needs a window-relative width to
// compute the centering offset consistently with it).
const defaultImageWidthRatio = 0.6

// resolveImagePath resolves src relative to the current source file's
// directory, which changes as the builder descends into includes
// (spec.md §4.1 "resolve relative to the current markdown source path,
// include-aware").
func (b *Builder) resolveImagePath(src string) string {
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(b.sourceDir, src)
}

// imageOperation resolves, decodes, and registers src, memoized by its
// resolved path so repeated references to the same image only decode and
// register once (spec.md §4.6 "registration is memoized by ImageSource").
func (b *Builder) imageOperation(src string) (render.Operation, error) {
	path := b.resolveImagePath(src)
	handle, ok := b.imageCache[path]
	if !ok {
		f, err := os.Open(path)
		if err != nil {
			return render.Operation{}, fmt.Errorf("opening image %q: %w", path, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return render.Operation{}, fmt.Errorf("decoding image %q: %w", path, err)
		}
		handle = b.opts.Images.Register(img)
		b.imageCache[path] = handle
	}

	props := render.ImageRenderProperties{
		Size: render.ImageSize{
			Mode:       render.ImageSizeWindowRatio,
			WidthRatio: defaultImageWidthRatio,
		},
		RestoreCursor: false,
		ZIndex:        -2,
	}
	return render.RenderDynamic(centeredImage{img: handle, props: props}), nil
}

// centeredImage wraps a RenderImage with a JumpToColumn computed from the
// live window size so the image is horizontally centered.
type centeredImage struct {
	img   *imageproto.Handle
	props render.ImageRenderProperties
}

func (c centeredImage) AsRenderOperations(window render.WindowSize, sink *[]render.Operation) {
	cols := uint16(float64(window.Columns) * c.props.Size.WidthRatio)
	if cols < window.Columns {
		*sink = append(*sink, render.JumpToColumn((window.Columns-cols)/2))
	}
	*sink = append(*sink, render.RenderImage(c.img, c.props))
}
