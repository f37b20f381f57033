package template

import (
	"fmt"
	"strings"

	"github.com/zjrosen/emblem/internal/evalctx"
	"github.com/zjrosen/emblem/internal/render"
)

// ParseError is malformed tag syntax. Structural: processing of the
// containing document stops.
type ParseError struct {
	Span render.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d..%d: %s", e.Span.Start, e.Span.End, e.Msg)
}

// ValidationError is an invalid parameter or tag shape. Recoverable: the
// tag passes through as literal text and resolution continues.
type ValidationError struct {
	Span        render.Span
	Tag         string
	Msg         string
	Suggestions []string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("tag %q: %s", e.Tag, e.Msg)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// ContextError is a failed context check: the tag's permitted contexts do
// not include the attempted context, directly or via one promotion step.
type ContextError struct {
	Span      render.Span
	Tag       string
	Attempted evalctx.Context
	Permitted []evalctx.Context
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("tag %q not permitted in %s context (permitted: %s)",
		e.Tag, e.Attempted, strings.Join(evalctx.Names(e.Permitted), ", "))
}

// UnknownTagError reports a tag name with no registry match. Non-fatal: the
// tag renders as its literal source text.
type UnknownTagError struct {
	Span        render.Span
	Name        string
	Suggestions []string
}

func (e *UnknownTagError) Error() string {
	msg := fmt.Sprintf("unknown tag %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one issue found while resolving a document. Diagnostics are
// collected across the whole document so a single pass reports everything.
type Diagnostic struct {
	Severity Severity
	Span     render.Span
	Err      error
}

// HasErrors reports whether any diagnostic is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
