package present

import (
	"testing"

	"github.com/mdshow/mdshow/internal/theme"
)

func TestParseFrontMatterEmpty(t *testing.T) {
	fm, err := parseFrontMatter("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.Title != "" || fm.Theme.Kind != 0 {
		t.Fatalf("expected zero value front matter, got %+v", fm)
	}
}

func TestParseFrontMatterScalarTheme(t *testing.T) {
	fm, err := parseFrontMatter("title: Demo\ntheme: light\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.Title != "Demo" {
		t.Fatalf("expected title Demo, got %q", fm.Title)
	}

	loader := theme.NewLoader("")
	def, err := loader.Load("dark")
	if err != nil {
		t.Fatalf("loading default theme: %v", err)
	}
	th, err := fm.resolveTheme(loader, def)
	if err != nil {
		t.Fatalf("resolving theme: %v", err)
	}
	light, err := loader.Load("light")
	if err != nil {
		t.Fatalf("loading light theme: %v", err)
	}
	if th.Default.Alignment != light.Default.Alignment {
		t.Fatalf("expected light theme to be loaded")
	}
}

func TestParseFrontMatterInlineThemeOverride(t *testing.T) {
	fm, err := parseFrontMatter("theme:\n  default:\n    alignment: center\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loader := theme.NewLoader("")
	def, err := loader.Load("dark")
	if err != nil {
		t.Fatalf("loading default theme: %v", err)
	}
	th, err := fm.resolveTheme(loader, def)
	if err != nil {
		t.Fatalf("resolving theme: %v", err)
	}
	if th.Default.Alignment != "center" {
		t.Fatalf("expected overridden alignment, got %q", th.Default.Alignment)
	}
}

func TestParseFrontMatterInvalidYAML(t *testing.T) {
	_, err := parseFrontMatter("title: [unterminated\n")
	if err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}
