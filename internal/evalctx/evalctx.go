// Package evalctx defines the evaluation contexts a renderable may appear in
// and the promotion rules between them.
//
// Promotion is an explicit (declared, requested) table rather than a
// hierarchy: a definition declared for Inline may be used in Block or
// FrameChrome, and nothing else promotes. Promotion is evaluated exactly
// once per resolution call and never chains.
package evalctx

import (
	"fmt"
	"strings"
)

// Context is the structural position a renderable is being evaluated in.
type Context int

const (
	// Inline is flowing text inside a line.
	Inline Context = iota
	// Block is standalone document content between lines.
	Block
	// FrameChrome is the prefix/suffix slot of a frame.
	FrameChrome
)

// String returns the lowercase name of the context.
func (c Context) String() string {
	switch c {
	case Inline:
		return "inline"
	case Block:
		return "block"
	case FrameChrome:
		return "frame-chrome"
	default:
		return fmt.Sprintf("context(%d)", int(c))
	}
}

// Parse converts a context name to a Context.
func Parse(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inline":
		return Inline, nil
	case "block":
		return Block, nil
	case "frame-chrome", "framechrome":
		return FrameChrome, nil
	default:
		return 0, fmt.Errorf("unknown context %q (valid: inline, block, frame-chrome)", s)
	}
}

// promotions is the single-step promotion table. A pair (declared, requested)
// present here means a definition declared for the first context may be used
// in the second.
var promotions = map[[2]Context]bool{
	{Inline, Block}:       true,
	{Inline, FrameChrome}: true,
}

// CanPromote reports whether a definition declared for `declared` may be
// used in `requested` via a single promotion step.
func CanPromote(declared, requested Context) bool {
	return promotions[[2]Context{declared, requested}]
}

// Permits reports whether a definition with the given permitted contexts may
// be resolved in the requested context, either directly or via one promotion
// step from any permitted context.
func Permits(permitted []Context, requested Context) bool {
	for _, c := range permitted {
		if c == requested {
			return true
		}
	}
	for _, c := range permitted {
		if CanPromote(c, requested) {
			return true
		}
	}
	return false
}

// Names returns the lowercase names of the given contexts, in order.
func Names(contexts []Context) []string {
	names := make([]string, 0, len(contexts))
	for _, c := range contexts {
		names = append(names, c.String())
	}
	return names
}
