package render

import (
	"fmt"
	"strings"
)

// Backend identifies how primitives become output fragments.
type Backend int

const (
	// BackendShields emits remote img.shields.io reference URLs. Purely
	// functional: identical primitive and target always produce a
	// byte-identical string, and no I/O happens.
	BackendShields Backend = iota
	// BackendSVG emits generated SVG artifacts referenced by relative
	// links. Filenames derive from a content hash, so identical inputs
	// yield identical filenames and bytes.
	BackendSVG
)

// String returns the lowercase backend name.
func (b Backend) String() string {
	switch b {
	case BackendShields:
		return "shields"
	case BackendSVG:
		return "svg"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend converts a backend name to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shields":
		return BackendShields, nil
	case "svg":
		return BackendSVG, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (valid: shields, svg)", s)
	}
}

// Renderer renders primitives for one target through one backend. It holds
// only configuration and is safe to construct per invocation.
type Renderer struct {
	backend   Backend
	target    Target
	assetsDir string
}

// NewRenderer builds a renderer for the target's default backend.
func NewRenderer(target Target, assetsDir string) Renderer {
	return Renderer{backend: target.DefaultBackend(), target: target, assetsDir: assetsDir}
}

// NewRendererWithBackend builds a renderer with an explicit backend
// override.
func NewRendererWithBackend(target Target, backend Backend, assetsDir string) Renderer {
	return Renderer{backend: backend, target: target, assetsDir: assetsDir}
}

// Backend returns the active backend.
func (r Renderer) Backend() Backend { return r.backend }

// Target returns the active target.
func (r Renderer) Target() Target { return r.target }

// Render renders the document's placed primitives into replacement pairs
// and artifacts. It never fails on an unsupported primitive: the target
// mandates a plain-text downgrade instead.
func (r Renderer) Render(doc []Placed) RenderedOutput {
	var out RenderedOutput
	seen := make(map[string]bool)

	for _, placed := range doc {
		text, artifacts := r.fragment(placed.Prim)
		out.Replacements = append(out.Replacements, Replacement{Span: placed.Span, Text: text})
		for _, a := range artifacts {
			if !seen[a.Path] {
				seen[a.Path] = true
				out.Artifacts = append(out.Artifacts, a)
			}
		}
	}
	return out
}

// fragment renders a single primitive. Text-bearing primitives are backend
// independent; image-bearing primitives dispatch on the backend and fall
// back to plain text when the backend or target cannot carry them.
func (r Renderer) fragment(p Primitive) (string, []Artifact) {
	switch prim := p.(type) {
	case Text:
		return prim.Literal, nil

	case StyledText:
		return prim.Text, nil

	case Frame:
		var inner strings.Builder
		var artifacts []Artifact
		for _, ip := range prim.Inner {
			text, a := r.fragment(ip)
			inner.WriteString(text)
			artifacts = append(artifacts, a...)
		}
		return prim.Prefix + "\n" + inner.String() + "\n" + prim.Suffix, artifacts

	case Badge:
		switch r.backend {
		case BackendShields:
			return shieldsBadge(prim), nil
		case BackendSVG:
			if !r.target.AllowsArtifacts() {
				return plainText(prim), nil
			}
			return r.svgArtifact(badgeArtifactID(prim), prim.Label+": "+prim.Message, badgeSVG(prim))
		}

	case Swatch:
		switch r.backend {
		case BackendShields:
			return shieldsSwatch(prim), nil
		case BackendSVG:
			if !r.target.AllowsArtifacts() {
				return plainText(prim), nil
			}
			return r.svgArtifact("swatch", prim.Color, swatchSVG(prim))
		}

	case Divider:
		// Shields has no divider representation; only the SVG backend can
		// carry one, and only when the target accepts files.
		if r.backend == BackendSVG && r.target.AllowsArtifacts() {
			return r.svgArtifact("divider-"+prim.Variant, "divider", dividerSVG(prim))
		}
		return plainText(prim), nil
	}

	return plainText(p), nil
}

// svgArtifact wraps generated SVG bytes into an artifact plus its markdown
// image reference.
func (r Renderer) svgArtifact(id, alt string, data []byte) (string, []Artifact) {
	name := artifactName(id, data)
	path := name
	if r.assetsDir != "" {
		path = r.assetsDir + "/" + name
	}
	ref := fmt.Sprintf("![%s](%s)", alt, path)
	return ref, []Artifact{{Path: path, Data: data}}
}

// badgeArtifactID keys a badge artifact by its canonical id, falling back
// to the generic id.
func badgeArtifactID(b Badge) string {
	if b.ID != "" {
		return b.ID
	}
	return "badge"
}
