// Package render implements the render-operation IR and the engine that
// interprets it against a terminal backend (spec.md §3, §4.2).
package render

import (
	"github.com/mdshow/mdshow/internal/async"
	"github.com/mdshow/mdshow/internal/style"
	"github.com/mdshow/mdshow/internal/termproto"
)

// WindowSize is the terminal's current dimensions in cells and pixels.
type WindowSize struct {
	Rows, Columns       uint16
	WidthPx, HeightPx   uint16
}

// ShrinkRows returns a WindowSize reduced by n rows, preserving the
// pixel-per-cell ratio (spec.md §3 invariants).
func (w WindowSize) ShrinkRows(n uint16) WindowSize {
	return w.scale(w.Rows-n, w.Columns)
}

// ShrinkColumns returns a WindowSize reduced by n columns, preserving the
// pixel-per-cell ratio.
func (w WindowSize) ShrinkColumns(n uint16) WindowSize {
	return w.scale(w.Rows, w.Columns-n)
}

func (w WindowSize) scale(rows, cols uint16) WindowSize {
	out := WindowSize{Rows: rows, Columns: cols}
	if w.Rows > 0 {
		out.HeightPx = uint16(uint32(w.HeightPx) * uint32(rows) / uint32(w.Rows))
	}
	if w.Columns > 0 {
		out.WidthPx = uint16(uint32(w.WidthPx) * uint32(cols) / uint32(w.Columns))
	}
	return out
}

// Alignment controls how RenderText positions its wrapped lines within the
// current margin rect.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// TextProperties configures one RenderText operation.
type TextProperties struct {
	Alignment     Alignment
	MinMargin     uint16 // only used for AlignCenter
	MinSize       uint16 // only used for AlignCenter
}

// MarginProperties configures ApplyMargin.
type MarginProperties struct {
	Horizontal uint16
	Top        uint16
	Bottom     uint16
}

// BlockLine is a text line with an optional wrap-repeated prefix, right
// padding, and a background block extending block_length columns.
type BlockLine struct {
	Prefix             style.Text
	Line               style.WeightedLine
	RepeatPrefixOnWrap bool
	RightPadLength     uint16
	BlockLength        uint16
	BlockColor         *style.Color
	Alignment          Alignment
}

// ImageSizeMode selects how RenderImage computes the image's cell extent.
type ImageSizeMode int

const (
	ImageSizeAutoFit ImageSizeMode = iota
	ImageSizeFixedCells
	ImageSizeWindowRatio
)

// ImageSize parameterizes the chosen ImageSizeMode.
type ImageSize struct {
	Mode            ImageSizeMode
	Columns, Rows   uint16  // ImageSizeFixedCells
	WidthRatio      float64 // ImageSizeWindowRatio, fraction of window width
}

// ImageRenderProperties configures a RenderImage operation.
type ImageRenderProperties struct {
	Size          ImageSize
	RestoreCursor bool
	ZIndex        int32
}

// Image is the render-level handle to a registered image: anything the
// image subsystem hands back that also satisfies termproto.Image.
type Image interface {
	termproto.Image
	PixelWidth() int
	PixelHeight() int
}

// AsRenderOperations is implemented by dynamic operations that expand to a
// concrete sequence given the current window size. Per SPEC_FULL.md's
// "avoid allocating a per-frame vector" design note, implementations
// append into sink instead of returning a fresh slice.
type AsRenderOperations interface {
	AsRenderOperations(window WindowSize, sink *[]Operation)
}

// RenderAsync is an AsRenderOperations that also owns a pollable async
// operation (spec.md §4.3).
type RenderAsync interface {
	AsRenderOperations
	Pollable() async.Pollable
	StartPolicy() async.StartPolicy
}

// Kind discriminates an Operation's variant.
type Kind int

const (
	KindClearScreen Kind = iota
	KindSetColors
	KindApplyMargin
	KindPopMargin
	KindJumpToVerticalCenter
	KindJumpToRow
	KindJumpToBottomRow
	KindJumpToColumn
	KindRenderText
	KindRenderLineBreak
	KindRenderBlockLine
	KindRenderImage
	KindRenderDynamic
	KindRenderAsync
	KindInitColumnLayout
	KindEnterColumn
	KindExitLayout
)

// Operation is the render-operation IR: a closed tagged union over the
// variants in spec.md §3. Only the fields relevant to Kind are populated.
type Operation struct {
	Kind Kind

	Colors style.Colors
	Margin MarginProperties

	Index uint16 // JumpToRow / JumpToBottomRow / JumpToColumn / EnterColumn

	Line       style.WeightedLine
	TextProps  TextProperties
	BlockLine  BlockLine

	Image      Image
	ImageProps ImageRenderProperties

	Dynamic AsRenderOperations
	Async   RenderAsync

	Columns []uint8 // InitColumnLayout
}

func ClearScreen() Operation                   { return Operation{Kind: KindClearScreen} }
func SetColors(c style.Colors) Operation       { return Operation{Kind: KindSetColors, Colors: c} }
func ApplyMargin(m MarginProperties) Operation { return Operation{Kind: KindApplyMargin, Margin: m} }
func PopMargin() Operation                     { return Operation{Kind: KindPopMargin} }
func JumpToVerticalCenter() Operation          { return Operation{Kind: KindJumpToVerticalCenter} }
func JumpToRow(i uint16) Operation             { return Operation{Kind: KindJumpToRow, Index: i} }
func JumpToBottomRow(i uint16) Operation       { return Operation{Kind: KindJumpToBottomRow, Index: i} }
func JumpToColumn(i uint16) Operation          { return Operation{Kind: KindJumpToColumn, Index: i} }
func RenderLineBreak() Operation               { return Operation{Kind: KindRenderLineBreak} }
func ExitLayout() Operation                    { return Operation{Kind: KindExitLayout} }

func RenderText(line style.WeightedLine, props TextProperties) Operation {
	return Operation{Kind: KindRenderText, Line: line, TextProps: props}
}

func RenderBlockLine(bl BlockLine) Operation {
	return Operation{Kind: KindRenderBlockLine, BlockLine: bl}
}

func RenderImage(img Image, props ImageRenderProperties) Operation {
	return Operation{Kind: KindRenderImage, Image: img, ImageProps: props}
}

func RenderDynamic(g AsRenderOperations) Operation {
	return Operation{Kind: KindRenderDynamic, Dynamic: g}
}

func RenderAsyncOp(g RenderAsync) Operation {
	return Operation{Kind: KindRenderAsync, Async: g}
}

func InitColumnLayout(columns []uint8) Operation {
	return Operation{Kind: KindInitColumnLayout, Columns: columns}
}

func EnterColumn(column uint16) Operation {
	return Operation{Kind: KindEnterColumn, Index: column}
}
