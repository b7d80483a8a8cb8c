package present

import (
	"gopkg.in/yaml.v3"

	"github.com/mdshow/mdshow/internal/mdserr"
	"github.com/mdshow/mdshow/internal/theme"
)

// frontMatter is the schema a presentation's leading YAML block decodes
// into (spec.md §4.1: "front-matter configures theme, footer variables,
// and options"). Theme can be either a bare theme name or an inline
// override tree, mirroring how theme.Loader.Load vs. theme.ApplyOverride
// split that responsibility.
type frontMatter struct {
	Title    string            `yaml:"title,omitempty"`
	SubTitle string            `yaml:"sub_title,omitempty"`
	Author   string            `yaml:"author,omitempty"`
	Theme    yaml.Node         `yaml:"theme,omitempty"`
	Options  frontMatterOpts   `yaml:"options,omitempty"`
	Footer   map[string]string `yaml:"footer,omitempty"`
}

type frontMatterOpts struct {
	ImplicitSlideEnds      bool `yaml:"implicit_slide_ends,omitempty"`
	IncrementalLists       bool `yaml:"incremental_lists,omitempty"`
	EnableSnippetExecution bool `yaml:"enable_snippet_execution,omitempty"`
}

// parseFrontMatter decodes raw YAML front-matter text. An empty raw
// string yields the zero frontMatter rather than an error, so a
// presentation with no leading block behaves like one with an empty one.
func parseFrontMatter(raw string) (*frontMatter, error) {
	var fm frontMatter
	if raw == "" {
		return &fm, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, &mdserr.InvalidMetadataError{Err: err}
	}
	return &fm, nil
}

// resolveTheme turns the front-matter's theme field into a concrete
// theme.Theme: a bare scalar names a theme to load, a mapping node is an
// override merged onto the builder's default theme.
func (fm *frontMatter) resolveTheme(loader *theme.Loader, def *theme.Theme) (*theme.Theme, error) {
	if fm.Theme.Kind == 0 {
		return def, nil
	}
	switch fm.Theme.Kind {
	case yaml.ScalarNode:
		var name string
		if err := fm.Theme.Decode(&name); err != nil {
			return nil, &mdserr.InvalidMetadataError{Err: err}
		}
		th, err := loader.Load(name)
		if err != nil {
			return nil, &mdserr.InvalidMetadataError{Err: err}
		}
		return th, nil
	case yaml.MappingNode:
		var override theme.Theme
		if err := fm.Theme.Decode(&override); err != nil {
			return nil, &mdserr.InvalidMetadataError{Err: err}
		}
		merged, err := theme.ApplyOverride(def, override)
		if err != nil {
			return nil, &mdserr.InvalidMetadataError{Err: err}
		}
		return merged, nil
	default:
		return def, nil
	}
}
