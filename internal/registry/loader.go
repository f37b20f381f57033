package registry

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/emblem/internal/evalctx"
)

// ErrLoad marks every failure to build the registry from definition data,
// whether the YAML itself is malformed or a definition is invalid. Hosts
// match on it to tell a broken registry apart from a bad document.
var ErrLoad = errors.New("registry load failed")

//go:embed definitions.yaml
var definitionData []byte

// record is the YAML shape shared by every kind; kind-specific fields are
// simply unused by the other kinds.
type record struct {
	ID       string   `yaml:"id"`
	Aliases  []string `yaml:"aliases"`
	Contexts []string `yaml:"contexts"`

	Text      string `yaml:"text"`      // glyphs, snippets
	Prefix    string `yaml:"prefix"`    // frames
	Suffix    string `yaml:"suffix"`    // frames
	Transform string `yaml:"transform"` // styles
	Label     string `yaml:"label"`     // badges
	Message   string `yaml:"message"`   // badges
	Color     string `yaml:"color"`     // badges
	Style     string `yaml:"style"`     // badges
}

// definitionFile is the top-level YAML document layout.
type definitionFile struct {
	Glyphs     []record `yaml:"glyphs"`
	Snippets   []record `yaml:"snippets"`
	Components []record `yaml:"components"`
	Frames     []record `yaml:"frames"`
	Styles     []record `yaml:"styles"`
	Badges     []record `yaml:"badges"`
}

// builtinComponents binds component ids to their parameter slots. Slots with
// Resolve set have their value resolved through the registry in the slot's
// declared context.
var builtinComponents = map[string][]Slot{
	"swatch": {
		{Name: "color", Context: evalctx.Inline, Required: true},
	},
	"divider": {
		{Name: "variant", Context: evalctx.Block},
	},
	"kbd": {
		{Name: "keys", Context: evalctx.Inline, Required: true},
	},
	"progress": {
		{Name: "value", Context: evalctx.Inline, Required: true},
	},
	"hero": {
		{Name: "title", Context: evalctx.Block, Required: true},
		{Name: "icon", Context: evalctx.Inline, Resolve: true},
	},
}

// Load parses the compiled-in definition data and builds the Registry.
// Called once at host startup; a returned error is fatal and wraps ErrLoad.
func Load() (*Registry, error) {
	return load(definitionData)
}

func load(data []byte) (*Registry, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing definition data: %w", ErrLoad, err)
	}

	defs := make([]*Definition, 0,
		len(file.Glyphs)+len(file.Snippets)+len(file.Components)+
			len(file.Frames)+len(file.Styles)+len(file.Badges))

	sections := []struct {
		kind    Kind
		records []record
	}{
		{KindGlyph, file.Glyphs},
		{KindSnippet, file.Snippets},
		{KindComponent, file.Components},
		{KindFrame, file.Frames},
		{KindStyle, file.Styles},
		{KindBadge, file.Badges},
	}
	for _, section := range sections {
		for _, rec := range section.records {
			def, err := recordToDefinition(section.kind, rec)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrLoad, err)
			}
			defs = append(defs, def)
		}
	}

	r, err := New(defs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return r, nil
}

// recordToDefinition converts one YAML record into a Definition.
func recordToDefinition(kind Kind, rec record) (*Definition, error) {
	contexts := make([]evalctx.Context, 0, len(rec.Contexts))
	for _, name := range rec.Contexts {
		ctx, err := evalctx.Parse(name)
		if err != nil {
			return nil, &DefinitionError{Kind: kind, ID: rec.ID, Reason: err.Error()}
		}
		contexts = append(contexts, ctx)
	}

	def := &Definition{
		ID:       rec.ID,
		Kind:     kind,
		Aliases:  rec.Aliases,
		Contexts: contexts,
	}

	switch kind {
	case KindGlyph:
		def.Glyph = &GlyphSpec{Text: rec.Text}
	case KindSnippet:
		def.Snippet = &SnippetSpec{Text: rec.Text}
	case KindComponent:
		slots, ok := builtinComponents[rec.ID]
		if !ok {
			return nil, &DefinitionError{Kind: kind, ID: rec.ID, Reason: "no builtin component behavior"}
		}
		def.Component = &ComponentSpec{Builtin: rec.ID, Slots: slots}
	case KindFrame:
		def.Frame = &FrameSpec{Prefix: rec.Prefix, Suffix: rec.Suffix}
	case KindStyle:
		def.Style = &StyleSpec{Transform: rec.Transform}
	case KindBadge:
		def.Badge = &BadgeSpec{
			Label:   rec.Label,
			Message: rec.Message,
			Color:   rec.Color,
			Style:   rec.Style,
		}
	}

	return def, nil
}
