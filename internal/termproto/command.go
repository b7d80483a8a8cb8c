// Package termproto defines the wire format between the render engine and
// any output backend (spec.md §4.5), plus the two backends required by the
// spec: a real ANSI terminal and an in-memory virtual grid.
package termproto

import "github.com/mdshow/mdshow/internal/style"

// Image is the minimal contract a backend needs to place an already-encoded
// image: mdshow's internal/imageproto.Image satisfies it without termproto
// importing that package (which would create an import cycle, since
// imageproto renders through a Backend).
type Image interface {
	// ID uniquely identifies the registered image for deduplication by a
	// backend that caches encoded payloads (e.g. Kitty transmit-once).
	ID() uint64
}

// ImageRenderOptions controls how an image is placed.
type ImageRenderOptions struct {
	Columns, Rows  int
	RestoreCursor  bool
	ZIndex         int32
}

// Kind discriminates a TerminalCommand's variant.
type Kind int

const (
	KindBeginUpdate Kind = iota
	KindEndUpdate
	KindMoveTo
	KindMoveToRow
	KindMoveToColumn
	KindMoveDown
	KindMoveRight
	KindMoveLeft
	KindMoveToNextLine
	KindPrintText
	KindClearScreen
	KindSetColors
	KindSetBackgroundColor
	KindFlush
	KindPrintImage
)

// Command is a single atomic instruction in the terminal wire format
// (spec.md §4.5). Only the fields relevant to Kind are populated.
type Command struct {
	Kind Kind

	Col, Row int
	N        int

	Text  string
	Style style.TextStyle

	Colors style.Colors
	Color  style.Color

	Image        Image
	ImageOptions ImageRenderOptions
}

func BeginUpdate() Command { return Command{Kind: KindBeginUpdate} }
func EndUpdate() Command   { return Command{Kind: KindEndUpdate} }
func MoveTo(col, row int) Command {
	return Command{Kind: KindMoveTo, Col: col, Row: row}
}
func MoveToRow(row int) Command    { return Command{Kind: KindMoveToRow, Row: row} }
func MoveToColumn(col int) Command { return Command{Kind: KindMoveToColumn, Col: col} }
func MoveDown(n int) Command       { return Command{Kind: KindMoveDown, N: n} }
func MoveRight(n int) Command      { return Command{Kind: KindMoveRight, N: n} }
func MoveLeft(n int) Command       { return Command{Kind: KindMoveLeft, N: n} }
func MoveToNextLine() Command      { return Command{Kind: KindMoveToNextLine} }
func PrintText(text string, s style.TextStyle) Command {
	return Command{Kind: KindPrintText, Text: text, Style: s}
}
func ClearScreen() Command { return Command{Kind: KindClearScreen} }
func SetColors(c style.Colors) Command {
	return Command{Kind: KindSetColors, Colors: c}
}
func SetBackgroundColor(c style.Color) Command {
	return Command{Kind: KindSetBackgroundColor, Color: c}
}
func Flush() Command { return Command{Kind: KindFlush} }
func PrintImage(img Image, opts ImageRenderOptions) Command {
	return Command{Kind: KindPrintImage, Image: img, ImageOptions: opts}
}

// Backend executes TerminalCommands against a real or virtual output
// target and tracks the cursor row for wrap/overflow bookkeeping.
type Backend interface {
	Execute(cmd Command) error
	CursorRow() uint16
}
