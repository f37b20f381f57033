package registry

import (
	"fmt"

	"github.com/zjrosen/emblem/internal/evalctx"
)

// Definition is the canonical description of a renderable. Exactly one of
// the kind-specific spec fields is set, matching Kind.
type Definition struct {
	ID       string
	Kind     Kind
	Aliases  []string
	Contexts []evalctx.Context

	Glyph     *GlyphSpec
	Snippet   *SnippetSpec
	Component *ComponentSpec
	Frame     *FrameSpec
	Style     *StyleSpec
	Badge     *BadgeSpec
}

// GlyphSpec holds the rune sequence a glyph expands to.
type GlyphSpec struct {
	Text string
}

// SnippetSpec holds a canned markdown fragment.
type SnippetSpec struct {
	Text string
}

// Slot describes a single component parameter. Slots that set Resolve have
// their value looked up through the registry in the slot's declared context
// rather than taken as plain text.
type Slot struct {
	Name     string
	Context  evalctx.Context
	Required bool
	Resolve  bool
}

// ComponentSpec binds a definition to a built-in component behavior and its
// parameter slots.
type ComponentSpec struct {
	Builtin string
	Slots   []Slot
}

// Slot returns the slot with the given name, or nil.
func (c *ComponentSpec) Slot(name string) *Slot {
	for i := range c.Slots {
		if c.Slots[i].Name == name {
			return &c.Slots[i]
		}
	}
	return nil
}

// SlotNames returns the component's slot names in declaration order.
func (c *ComponentSpec) SlotNames() []string {
	names := make([]string, 0, len(c.Slots))
	for _, s := range c.Slots {
		names = append(names, s.Name)
	}
	return names
}

// FrameSpec holds the chrome placed around a frame's body.
type FrameSpec struct {
	Prefix string
	Suffix string
}

// StyleSpec names the rune transform table applied to a style body.
type StyleSpec struct {
	Transform string
}

// BadgeSpec holds badge defaults; tag parameters override them.
type BadgeSpec struct {
	Label   string
	Message string
	Color   string
	Style   string
}

// Names returns the canonical id followed by all aliases.
func (d *Definition) Names() []string {
	names := make([]string, 0, len(d.Aliases)+1)
	names = append(names, d.ID)
	names = append(names, d.Aliases...)
	return names
}

// DefinitionError reports a conflict or malformed record encountered while
// constructing a Registry. It is fatal: the host must not process any
// document against a registry that failed to load.
type DefinitionError struct {
	Kind   Kind
	ID     string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("definition %s/%s: %s", e.Kind, e.ID, e.Reason)
}
