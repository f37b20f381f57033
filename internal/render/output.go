package render

import "sort"

// Span is a half-open byte range [Start, End) into the source document.
type Span struct {
	Start int
	End   int
}

// Placed pairs a primitive with the source span it replaces.
type Placed struct {
	Span Span
	Prim Primitive
}

// Replacement is one (source span, replacement text) pair of a render.
type Replacement struct {
	Span Span
	Text string
}

// Artifact is a generated file: bytes plus a path relative to the output
// document.
type Artifact struct {
	Path string
	Data []byte
}

// RenderedOutput is the result of rendering a document's primitives.
type RenderedOutput struct {
	Replacements []Replacement
	Artifacts    []Artifact
}

// Apply splices the replacements into source. Replacements are applied in
// span order; spans never overlap because each comes from a distinct
// top-level template node.
func Apply(source string, reps []Replacement) string {
	sorted := make([]Replacement, len(reps))
	copy(sorted, reps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })

	var out []byte
	cursor := 0
	for _, rep := range sorted {
		if rep.Span.Start < cursor {
			continue
		}
		out = append(out, source[cursor:rep.Span.Start]...)
		out = append(out, rep.Text...)
		cursor = rep.Span.End
	}
	out = append(out, source[cursor:]...)
	return string(out)
}
