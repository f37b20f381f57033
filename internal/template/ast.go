// Package template implements the tag grammar parser and the resolver that
// turns parsed tags into render primitives.
//
// Grammar:
//
//	self-closing: {{name:param=value:.../}}
//	block:        {{name:param=value...}}body{{/name}}
//
// Parsing is structural and aborts the document on malformed syntax.
// Resolution is best-effort: per-tag failures become diagnostics and the
// offending tag passes through as literal text.
package template

import "github.com/zjrosen/emblem/internal/render"

// Node is a parsed template node: literal text or a tag invocation.
type Node interface {
	node()
	Span() render.Span
}

// TextNode is literal document text between tags.
type TextNode struct {
	Text string
	span render.Span
}

func (n *TextNode) node()             {}
func (n *TextNode) Span() render.Span { return n.span }

// Param is one key=value tag parameter.
type Param struct {
	Key   string
	Value string
}

// TagNode is a tag invocation. Body is nil for self-closing tags; for block
// tags the span covers the opening tag through the closing tag.
type TagNode struct {
	Name        string
	Params      []Param
	Body        []Node
	SelfClosing bool
	span        render.Span
}

func (n *TagNode) node()             {}
func (n *TagNode) Span() render.Span { return n.span }

// IsBlock reports whether the tag was written with a matching closing tag.
func (n *TagNode) IsBlock() bool { return n.Body != nil }

// Param returns the value of the named parameter and whether it was given.
func (n *TagNode) Param(key string) (string, bool) {
	for _, p := range n.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Document is a parsed source document ready for resolution.
type Document struct {
	Source string
	Nodes  []Node
}
