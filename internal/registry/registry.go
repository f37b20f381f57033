package registry

import (
	"fmt"
	"sort"

	"github.com/zjrosen/emblem/internal/evalctx"
)

// Registry is the immutable name-to-definition lookup table. Build one with
// New (or Load for the compiled-in definition data) and share it freely; it
// is never mutated after construction.
type Registry struct {
	byName map[string][]*Definition
	defs   []*Definition
}

// New builds a Registry from the given definitions, validating the
// construction invariants: canonical ids unique within a kind, every alias
// mapping to exactly one canonical id, and every record carrying the spec
// for its kind. Any violation returns a *DefinitionError.
func New(defs []*Definition) (*Registry, error) {
	r := &Registry{
		byName: make(map[string][]*Definition, len(defs)*2),
		defs:   make([]*Definition, 0, len(defs)),
	}

	seen := make(map[string]bool, len(defs)) // kind/id pairs
	aliasOwner := make(map[string]*Definition, len(defs))

	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}

		key := def.Kind.String() + "/" + def.ID
		if seen[key] {
			return nil, &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "duplicate canonical id"}
		}
		seen[key] = true

		r.defs = append(r.defs, def)
		r.byName[def.ID] = append(r.byName[def.ID], def)

		for _, alias := range def.Aliases {
			if owner, ok := aliasOwner[alias]; ok {
				return nil, &DefinitionError{
					Kind: def.Kind,
					ID:   def.ID,
					Reason: fmt.Sprintf("alias %q already maps to %s/%s",
						alias, owner.Kind, owner.ID),
				}
			}
			aliasOwner[alias] = def
			r.byName[alias] = append(r.byName[alias], def)
		}
	}

	// A name shared by an alias and any other definition is ambiguous.
	// Canonical ids may collide across kinds; the lookup order resolves those.
	for name, owner := range aliasOwner {
		if len(r.byName[name]) > 1 {
			return nil, &DefinitionError{
				Kind:   owner.Kind,
				ID:     owner.ID,
				Reason: fmt.Sprintf("alias %q collides with another definition name", name),
			}
		}
	}

	for name := range r.byName {
		matches := r.byName[name]
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Kind.priority() < matches[j].Kind.priority()
		})
	}

	return r, nil
}

// validateDefinition checks a single record's shape.
func validateDefinition(def *Definition) error {
	if def == nil {
		return &DefinitionError{Reason: "nil definition"}
	}
	if def.ID == "" {
		return &DefinitionError{Kind: def.Kind, Reason: "empty canonical id"}
	}
	if len(def.Contexts) == 0 {
		return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "no permitted contexts"}
	}

	switch def.Kind {
	case KindGlyph:
		if def.Glyph == nil || def.Glyph.Text == "" {
			return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "glyph has no text"}
		}
	case KindSnippet:
		if def.Snippet == nil || def.Snippet.Text == "" {
			return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "snippet has no text"}
		}
	case KindComponent:
		if def.Component == nil || def.Component.Builtin == "" {
			return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "component has no builtin binding"}
		}
	case KindFrame:
		if def.Frame == nil {
			return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "frame has no chrome"}
		}
	case KindStyle:
		if def.Style == nil {
			return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "style has no transform"}
		}
		if !HasTransform(def.Style.Transform) {
			return &DefinitionError{
				Kind: def.Kind, ID: def.ID,
				Reason: fmt.Sprintf("unknown transform table %q", def.Style.Transform),
			}
		}
	case KindBadge:
		if def.Badge == nil {
			return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "badge has no defaults"}
		}
	default:
		return &DefinitionError{Kind: def.Kind, ID: def.ID, Reason: "unknown kind"}
	}
	return nil
}

// Resolve looks up a name or alias. Lookup is exact and case-sensitive; when
// the name matches definitions of more than one kind the unified lookup
// order picks the winner. Returns nil when nothing matches.
func (r *Registry) Resolve(name string) *Definition {
	matches := r.byName[name]
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// List returns every definition, sorted by kind then canonical id.
func (r *Registry) List() []*Definition {
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListKind returns the definitions of one kind, sorted by canonical id.
func (r *Registry) ListKind(kind Kind) []*Definition {
	out := make([]*Definition, 0)
	for _, def := range r.defs {
		if def.Kind == kind {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// PermittedContexts returns the contexts a definition may appear in, for
// diagnostic messages.
func PermittedContexts(def *Definition) []evalctx.Context {
	out := make([]evalctx.Context, len(def.Contexts))
	copy(out, def.Contexts)
	return out
}
