package style

// Flag is a bit in the TextStyle flag set.
type Flag uint8

const (
	FlagBold Flag = 1 << iota
	FlagItalic
	FlagCode
	FlagStrikethrough
	FlagUnderlined
	FlagSuperscript
)

// MinFontSize and MaxFontSize bound the font-size multiplier, matching the
// `font_size:N` command's 1-7 range extended with the theme-level default
// of 1 and a generous ceiling for block headings.
const (
	MinFontSize = 1
	MaxFontSize = 16
)

// Colors holds an optional foreground/background pair. A nil pointer means
// "unset", letting Merge prefer whichever side actually set one.
type Colors struct {
	Fg *Color
	Bg *Color
}

// Merge combines two Colors preferring the receiver's values.
func (c Colors) Merge(other Colors) Colors {
	out := c
	if out.Fg == nil {
		out.Fg = other.Fg
	}
	if out.Bg == nil {
		out.Bg = other.Bg
	}
	return out
}

// TextStyle is a bit-packed style: flags OR together, size takes the max,
// and colors prefer the receiver on Merge. The zero value is the identity
// element for Merge (spec.md §8 invariant 2).
type TextStyle struct {
	flags   Flag
	size    uint8
	colors  Colors
}

// Default returns the identity TextStyle: no flags, size 1, no colors.
func Default() TextStyle {
	return TextStyle{size: 1}
}

// WithFlag returns a copy of s with flag set.
func (s TextStyle) WithFlag(flag Flag) TextStyle {
	s.flags |= flag
	if s.size == 0 {
		s.size = 1
	}
	return s
}

// Has reports whether flag is set.
func (s TextStyle) Has(flag Flag) bool {
	return s.flags&flag != 0
}

// Size returns the font-size multiplier, defaulting to 1 for the zero value.
func (s TextStyle) Size() uint8 {
	if s.size == 0 {
		return 1
	}
	return s.size
}

// WithSize returns a copy of s with its font-size multiplier clamped to
// [MinFontSize, MaxFontSize].
func (s TextStyle) WithSize(n uint8) TextStyle {
	if n < MinFontSize {
		n = MinFontSize
	}
	if n > MaxFontSize {
		n = MaxFontSize
	}
	s.size = n
	return s
}

// Colors returns the style's color pair.
func (s TextStyle) Colors() Colors {
	return s.colors
}

// Flags returns the style's raw flag bitset.
func (s TextStyle) Flags() Flag {
	return s.flags
}

// WithColors returns a copy of s with the given colors.
func (s TextStyle) WithColors(c Colors) TextStyle {
	s.colors = c
	return s
}

// Merge combines two styles: flags OR together, size takes the max, and
// colors prefer the receiver, falling back to other. Merge is associative
// and Default() is its identity on both sides (spec.md §8 invariant 2).
func (s TextStyle) Merge(other TextStyle) TextStyle {
	merged := TextStyle{
		flags: s.flags | other.flags,
		size:  maxU8(s.Size(), other.Size()),
	}
	merged.colors = s.colors.Merge(other.colors)
	return merged
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
