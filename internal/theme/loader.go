package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mdshow/mdshow/internal/mdserr"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader resolves theme names to merged Themes, checking the embedded
// builtin set before a user-supplied directory (e.g. a config-file
// themes/ folder passed via --theme, spec.md §6).
type Loader struct {
	dir   string
	cache map[string]*Theme
}

// NewLoader builds a Loader that additionally searches dir for
// "<name>.yaml" files not found among the builtins.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, cache: map[string]*Theme{}}
}

// Load resolves name, following any extends chain, and returns the fully
// merged Theme.
func (l *Loader) Load(name string) (*Theme, error) {
	return l.load(name, map[string]bool{})
}

func (l *Loader) load(name string, seen map[string]bool) (*Theme, error) {
	if t, ok := l.cache[name]; ok {
		return t, nil
	}
	if seen[name] {
		return nil, mdserr.ErrIncludeCycle
	}
	seen[name] = true

	raw, err := l.read(name)
	if err != nil {
		return nil, &mdserr.InvalidMetadataError{Err: err}
	}

	var t Theme
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, &mdserr.InvalidMetadataError{Err: fmt.Errorf("theme %q: %w", name, err)}
	}

	if t.Extends != "" {
		parent, err := l.load(t.Extends, seen)
		if err != nil {
			return nil, err
		}
		merged := t.Merge(*parent)
		t = merged
	}

	l.cache[name] = &t
	return &t, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	if raw, err := builtinFS.ReadFile(filepath.Join("builtin", name+".yaml")); err == nil {
		return raw, nil
	}
	if l.dir == "" {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return os.ReadFile(filepath.Join(l.dir, name+".yaml"))
}

// ListBuiltinThemes returns the embedded theme names (without extension),
// sorted as embed.FS yields them, for --list-themes (spec.md §6).
func ListBuiltinThemes() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names, nil
}

// ApplyOverride merges a per-presentation theme override (typically
// decoded from front-matter) onto base. Per spec.md §6, an override may
// not itself set Extends.
func ApplyOverride(base *Theme, override Theme) (*Theme, error) {
	if override.Extends != "" {
		return nil, fmt.Errorf("theme override may not itself use extends")
	}
	merged := override.Merge(*base)
	return &merged, nil
}
