// Package render turns resolved primitives into output fragments.
//
// A Primitive is the backend-agnostic result of a successful registry lookup
// and context check: it carries canonical ids only, never the alias used in
// the source. Backends and Targets are small closed variant sets dispatched
// exhaustively, so adding one is a compile-visible change.
package render

// Primitive is a fully resolved render instruction. The set of
// implementations is closed; render dispatch switches over it exhaustively.
type Primitive interface {
	primitive()
}

// Text is literal output: glyph expansions, snippets, component text and
// unknown-tag passthrough.
type Text struct {
	Literal string
}

// StyledText is body text with a style transform already applied. Style is
// the canonical style id, kept for artifact naming and diagnostics.
type StyledText struct {
	Text  string
	Style string
}

// Badge is a label/message/color badge. ID is the canonical badge id.
type Badge struct {
	ID      string
	Label   string
	Message string
	Color   string
	Style   string
}

// Swatch is a flat color chip.
type Swatch struct {
	Color string
}

// Divider is a horizontal separator. Variant is one of line, dots, wave.
type Divider struct {
	Variant string
}

// Frame wraps inner primitives in prefix/suffix chrome.
type Frame struct {
	ID     string
	Prefix string
	Suffix string
	Inner  []Primitive
}

func (Text) primitive()       {}
func (StyledText) primitive() {}
func (Badge) primitive()      {}
func (Swatch) primitive()     {}
func (Divider) primitive()    {}
func (Frame) primitive()      {}
