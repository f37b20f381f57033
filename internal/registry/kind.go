// Package registry implements the immutable renderable-definition registry.
//
// A Registry is built once from static definition data and never mutated
// afterwards, so it is safe to share across concurrent document pipelines.
// Construction fails with a DefinitionError on duplicate canonical ids
// within a kind or on an alias that maps to more than one canonical id.
package registry

import (
	"fmt"
	"strings"
)

// Kind classifies a renderable definition.
type Kind int

const (
	KindGlyph Kind = iota
	KindSnippet
	KindComponent
	KindFrame
	KindStyle
	KindBadge
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGlyph:
		return "glyph"
	case KindSnippet:
		return "snippet"
	case KindComponent:
		return "component"
	case KindFrame:
		return "frame"
	case KindStyle:
		return "style"
	case KindBadge:
		return "badge"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glyph":
		return KindGlyph, nil
	case "snippet":
		return KindSnippet, nil
	case "component":
		return KindComponent, nil
	case "frame":
		return KindFrame, nil
	case "style":
		return KindStyle, nil
	case "badge":
		return KindBadge, nil
	default:
		return 0, fmt.Errorf("unknown kind %q (valid: glyph, snippet, component, frame, style, badge)", s)
	}
}

// lookupOrder is the unified resolution priority when a bare name matches
// definitions of more than one kind: Glyph > Snippet > Component, with the
// remaining kinds after. A name that matches nothing falls through to
// literal passthrough in the resolver.
var lookupOrder = []Kind{KindGlyph, KindSnippet, KindComponent, KindFrame, KindStyle, KindBadge}

// priority returns the lookup rank of a kind (lower wins).
func (k Kind) priority() int {
	for i, lk := range lookupOrder {
		if lk == k {
			return i
		}
	}
	return len(lookupOrder)
}
