package theme

import "testing"

func TestLoadBuiltinDark(t *testing.T) {
	l := NewLoader("")

	th, err := l.Load("dark")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.Extends != "" {
		t.Fatalf("expected a merged theme to clear Extends, got %q", th.Extends)
	}
	if th.Palette["accent"] != "#89b4fa" {
		t.Fatalf("unexpected accent color: %q", th.Palette["accent"])
	}
	if th.Headings["h1"].Prefix != "# " {
		t.Fatalf("unexpected h1 prefix: %q", th.Headings["h1"].Prefix)
	}
}

func TestLoadLightInheritsFromDark(t *testing.T) {
	l := NewLoader("")

	th, err := l.Load("light")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.Palette["accent"] != "#0366d6" {
		t.Fatalf("expected light's own accent override, got %q", th.Palette["accent"])
	}
	if th.Headings["h1"].Prefix != "# " {
		t.Fatalf("expected light to inherit dark's h1 prefix, got %q", th.Headings["h1"].Prefix)
	}
	if th.Margin.Horizontal != 4 {
		t.Fatalf("expected light to inherit dark's margin, got %d", th.Margin.Horizontal)
	}
}

func TestApplyOverrideRejectsExtends(t *testing.T) {
	l := NewLoader("")
	base, err := l.Load("dark")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err = ApplyOverride(base, Theme{Extends: "light"})
	if err == nil {
		t.Fatal("expected an error for an override that itself extends")
	}
}

func TestApplyOverridePrefersOverrideFields(t *testing.T) {
	l := NewLoader("")
	base, err := l.Load("dark")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	merged, err := ApplyOverride(base, Theme{Default: BlockStyle{Alignment: "right"}})
	if err != nil {
		t.Fatalf("apply override: %v", err)
	}
	if merged.Default.Alignment != "right" {
		t.Fatalf("expected override alignment to win, got %q", merged.Default.Alignment)
	}
	if merged.Margin.Horizontal != 4 {
		t.Fatalf("expected base margin to survive the override, got %d", merged.Margin.Horizontal)
	}
}

func TestParseRawColorHexAndNamed(t *testing.T) {
	c := ParseRawColor("#ff0000")
	if c.RGB == nil || c.RGB.R != 0xff || c.RGB.G != 0 || c.RGB.B != 0 {
		t.Fatalf("unexpected hex parse: %+v", c)
	}

	named := ParseRawColor("accent")
	if named.Named != "accent" {
		t.Fatalf("expected a named color reference, got %+v", named)
	}
}
