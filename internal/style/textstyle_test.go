package style

import (
	"errors"
	"testing"
)

func TestMergeIdentity(t *testing.T) {
	s := Default().WithFlag(FlagBold).WithSize(3)

	if got := Default().Merge(s); got != s {
		t.Errorf("Default().Merge(s) = %+v, want %+v", got, s)
	}
	if got := s.Merge(Default()); got != s {
		t.Errorf("s.Merge(Default()) = %+v, want %+v", got, s)
	}
}

func TestMergeAssociative(t *testing.T) {
	a := Default().WithFlag(FlagBold).WithSize(2)
	b := Default().WithFlag(FlagItalic).WithSize(5)
	c := Default().WithFlag(FlagUnderlined).WithSize(1)

	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))

	if left != right {
		t.Errorf("merge not associative: (a.b).c = %+v, a.(b.c) = %+v", left, right)
	}
}

func TestMergeSizeTakesMax(t *testing.T) {
	a := Default().WithSize(2)
	b := Default().WithSize(7)

	if got := a.Merge(b).Size(); got != 7 {
		t.Errorf("merged size = %d, want 7", got)
	}
}

func TestMergeColorsPreferReceiver(t *testing.T) {
	red := Color{255, 0, 0}
	blue := Color{0, 0, 255}

	a := Default().WithColors(Colors{Fg: &red})
	b := Default().WithColors(Colors{Fg: &blue, Bg: &blue})

	merged := a.Merge(b)
	if *merged.Colors().Fg != red {
		t.Errorf("fg = %v, want receiver's red", merged.Colors().Fg)
	}
	if *merged.Colors().Bg != blue {
		t.Errorf("bg = %v, want fallback blue", merged.Colors().Bg)
	}
}

func TestFrom8BitTotal(t *testing.T) {
	seen := map[Color]bool{}
	for i := 0; i <= 255; i++ {
		c := From8Bit(uint8(i))
		seen[c] = true
		if From8Bit(uint8(i)) != c {
			t.Fatalf("From8Bit(%d) not stable across calls", i)
		}
	}
}

func TestPaletteResolveUndefined(t *testing.T) {
	p := Palette{"text": {1, 2, 3}}

	_, err := p.Resolve(NamedColorRef("heading"))
	var upc *UndefinedPaletteColorError
	if !errors.As(err, &upc) {
		t.Fatalf("expected *UndefinedPaletteColorError, got %T", err)
	}
}
