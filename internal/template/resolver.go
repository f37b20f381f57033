package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/emblem/internal/evalctx"
	"github.com/zjrosen/emblem/internal/registry"
	"github.com/zjrosen/emblem/internal/render"
)

// Resolver turns parsed tag nodes into render primitives against one
// registry. It holds no per-document state; one Resolver may serve many
// documents.
type Resolver struct {
	reg *registry.Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// ResolveDocument resolves every tag in the document at the given context.
// Per-tag failures (validation, context, unknown name) become diagnostics
// and the tag is left as literal source text; only a structural error (a
// body-requiring tag with no closing tag) aborts with a *ParseError.
// Diagnostics are collected across the whole document.
func (r *Resolver) ResolveDocument(doc *Document, ctx evalctx.Context) ([]render.Placed, []Diagnostic, error) {
	var placed []render.Placed
	var diags []Diagnostic

	for _, node := range doc.Nodes {
		tag, ok := node.(*TagNode)
		if !ok {
			continue // literal text needs no replacement
		}
		prim, ok, err := r.resolveTag(doc, tag, ctx, &diags)
		if err != nil {
			return nil, diags, err
		}
		if ok {
			placed = append(placed, render.Placed{Span: tag.Span(), Prim: prim})
		}
	}
	return placed, diags, nil
}

// resolveTag resolves one tag node. The bool is false when the tag should
// pass through as literal source text (unknown name or a recoverable
// error, both already recorded as diagnostics).
func (r *Resolver) resolveTag(doc *Document, tag *TagNode, ctx evalctx.Context, diags *[]Diagnostic) (render.Primitive, bool, error) {
	def := r.reg.Resolve(tag.Name)
	if def == nil {
		*diags = append(*diags, Diagnostic{
			Severity: SeverityWarning,
			Span:     tag.Span(),
			Err: &UnknownTagError{
				Span:        tag.Span(),
				Name:        tag.Name,
				Suggestions: r.reg.Suggest(tag.Name, 3),
			},
		})
		return nil, false, nil
	}

	if !evalctx.Permits(def.Contexts, ctx) {
		*diags = append(*diags, Diagnostic{
			Severity: SeverityError,
			Span:     tag.Span(),
			Err: &ContextError{
				Span:      tag.Span(),
				Tag:       tag.Name,
				Attempted: ctx,
				Permitted: registry.PermittedContexts(def),
			},
		})
		return nil, false, nil
	}

	if err := r.checkShape(def, tag); err != nil {
		if parseErr, ok := err.(*ParseError); ok {
			return nil, false, parseErr
		}
		*diags = append(*diags, Diagnostic{Severity: SeverityError, Span: tag.Span(), Err: err})
		return nil, false, nil
	}

	prim, err := r.buildPrimitive(doc, def, tag, diags)
	if err != nil {
		*diags = append(*diags, Diagnostic{Severity: SeverityError, Span: tag.Span(), Err: err})
		return nil, false, nil
	}
	return prim, true, nil
}

// needsBody reports whether a kind is written as a block tag.
func needsBody(kind registry.Kind) bool {
	return kind == registry.KindStyle || kind == registry.KindFrame
}

// checkShape validates block-vs-self-closing usage against the kind. A
// body-requiring tag with no closing tag anywhere is structural and comes
// back as a *ParseError.
func (r *Resolver) checkShape(def *registry.Definition, tag *TagNode) error {
	if needsBody(def.Kind) {
		if tag.IsBlock() {
			return nil
		}
		if tag.SelfClosing {
			return &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg: fmt.Sprintf("%s tags require a body: {{%s}}...{{/%s}}", def.Kind, tag.Name, tag.Name),
			}
		}
		return &ParseError{
			Span: tag.Span(),
			Msg:  fmt.Sprintf("unterminated block tag {{%s}}: missing {{/%s}}", tag.Name, tag.Name),
		}
	}
	if tag.IsBlock() {
		return &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("%s tags take no body: use {{%s/}}", def.Kind, tag.Name),
		}
	}
	return nil
}

// buildPrimitive dispatches on the definition kind. Returned errors are
// recoverable per-tag validation failures.
func (r *Resolver) buildPrimitive(doc *Document, def *registry.Definition, tag *TagNode, diags *[]Diagnostic) (render.Primitive, error) {
	switch def.Kind {
	case registry.KindGlyph:
		return r.buildGlyph(def, tag)
	case registry.KindSnippet:
		return r.buildSnippet(def, tag)
	case registry.KindStyle:
		return r.buildStyle(def, tag)
	case registry.KindFrame:
		return r.buildFrame(doc, def, tag, diags)
	case registry.KindComponent:
		return r.buildComponent(def, tag)
	case registry.KindBadge:
		return r.buildBadge(def, tag)
	default:
		return nil, &ValidationError{Span: tag.Span(), Tag: tag.Name, Msg: "unresolvable kind"}
	}
}

// checkParams rejects parameters outside the allowed set, suggesting the
// nearest allowed name.
func checkParams(tag *TagNode, allowed ...string) error {
	for _, p := range tag.Params {
		known := false
		for _, a := range allowed {
			if p.Key == a {
				known = true
				break
			}
		}
		if !known {
			return &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg:         fmt.Sprintf("unrecognized parameter %q", p.Key),
				Suggestions: registry.Nearest(allowed, p.Key, 1),
			}
		}
	}
	return nil
}

const maxRepeat = 20

func (r *Resolver) buildGlyph(def *registry.Definition, tag *TagNode) (render.Primitive, error) {
	if err := checkParams(tag, "repeat", "separator"); err != nil {
		return nil, err
	}

	repeat := 1
	if raw, ok := tag.Param("repeat"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRepeat {
			return nil, &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg: fmt.Sprintf("repeat must be an integer between 1 and %d, got %q", maxRepeat, raw),
			}
		}
		repeat = n
	}

	separator := ""
	if raw, ok := tag.Param("separator"); ok {
		sep, err := validateSeparator(tag, raw)
		if err != nil {
			return nil, err
		}
		separator = sep
	}

	parts := make([]string, repeat)
	for i := range parts {
		parts[i] = def.Glyph.Text
	}
	return render.Text{Literal: strings.Join(parts, separator)}, nil
}

// validateSeparator enforces the separator rules: exactly one Unicode
// character, no whitespace padding, and never a template delimiter.
func validateSeparator(tag *TagNode, value string) (string, error) {
	if strings.ContainsAny(value, "{}") {
		return "", &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: "separator may not contain a template delimiter character",
		}
	}
	if value != strings.TrimSpace(value) || value == "" {
		return "", &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("separator must be exactly one character with no surrounding whitespace, got %q", value),
		}
	}
	if utf8.RuneCountInString(value) != 1 {
		first, _ := utf8.DecodeRuneInString(value)
		return "", &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg:         fmt.Sprintf("separator must be exactly one character, got %q", value),
			Suggestions: []string{"separator=" + string(first)},
		}
	}
	return value, nil
}

func (r *Resolver) buildSnippet(def *registry.Definition, tag *TagNode) (render.Primitive, error) {
	if err := checkParams(tag); err != nil {
		return nil, err
	}
	return render.Text{Literal: def.Snippet.Text}, nil
}

func (r *Resolver) buildStyle(def *registry.Definition, tag *TagNode) (render.Primitive, error) {
	if err := checkParams(tag); err != nil {
		return nil, err
	}

	var body strings.Builder
	for _, child := range tag.Body {
		text, ok := child.(*TextNode)
		if !ok {
			return nil, &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg: "style body must be plain text",
			}
		}
		body.WriteString(text.Text)
	}

	transformed, ok := registry.Transform(def.Style.Transform, body.String())
	if !ok {
		return nil, &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("unknown transform table %q", def.Style.Transform),
		}
	}
	return render.StyledText{Text: transformed, Style: def.ID}, nil
}

func (r *Resolver) buildFrame(doc *Document, def *registry.Definition, tag *TagNode, diags *[]Diagnostic) (render.Primitive, error) {
	if err := checkParams(tag); err != nil {
		return nil, err
	}

	// Frame chrome may itself contain tags; those resolve in FrameChrome.
	prefix, err := r.resolveChrome(def.Frame.Prefix, tag, diags)
	if err != nil {
		return nil, err
	}
	suffix, err := r.resolveChrome(def.Frame.Suffix, tag, diags)
	if err != nil {
		return nil, err
	}

	inner := r.resolveChildren(doc, tag.Body, evalctx.Block, diags)
	return render.Frame{ID: def.ID, Prefix: prefix, Suffix: suffix, Inner: inner}, nil
}

// resolveChrome expands tags embedded in a frame's prefix/suffix string in
// FrameChrome context. Chrome must flatten to text.
func (r *Resolver) resolveChrome(chrome string, tag *TagNode, diags *[]Diagnostic) (string, error) {
	if !strings.Contains(chrome, openDelim) {
		return chrome, nil
	}
	chromeDoc, err := Parse(chrome)
	if err != nil {
		return "", &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("malformed frame chrome: %v", err),
		}
	}

	var out strings.Builder
	for _, node := range chromeDoc.Nodes {
		switch n := node.(type) {
		case *TextNode:
			out.WriteString(n.Text)
		case *TagNode:
			prim, ok, err := r.resolveTag(chromeDoc, n, evalctx.FrameChrome, diags)
			if err != nil {
				return "", err
			}
			if !ok {
				out.WriteString(chromeDoc.Source[n.Span().Start:n.Span().End])
				continue
			}
			switch p := prim.(type) {
			case render.Text:
				out.WriteString(p.Literal)
			case render.StyledText:
				out.WriteString(p.Text)
			default:
				return "", &ValidationError{
					Span: tag.Span(), Tag: tag.Name,
					Msg: fmt.Sprintf("frame chrome tag {{%s}} does not produce text", n.Name),
				}
			}
		}
	}
	return out.String(), nil
}

// resolveChildren resolves a block body. Literal text stays literal; failed
// tags pass through as their source text so the frame still renders.
func (r *Resolver) resolveChildren(doc *Document, nodes []Node, ctx evalctx.Context, diags *[]Diagnostic) []render.Primitive {
	var out []render.Primitive
	for _, node := range nodes {
		switch n := node.(type) {
		case *TextNode:
			out = append(out, render.Text{Literal: n.Text})
		case *TagNode:
			prim, ok, err := r.resolveTag(doc, n, ctx, diags)
			if err != nil {
				// Structural errors inside a body degrade to passthrough;
				// the parser already guaranteed the outer document shape.
				*diags = append(*diags, Diagnostic{Severity: SeverityError, Span: n.Span(), Err: err})
				ok = false
			}
			if !ok {
				out = append(out, render.Text{Literal: doc.Source[n.Span().Start:n.Span().End]})
				continue
			}
			out = append(out, prim)
		}
	}
	return out
}

var colorPattern = regexp.MustCompile(`^#?[0-9a-zA-Z-]+$`)

func validateColor(tag *TagNode, value string) error {
	if value == "" || !colorPattern.MatchString(value) {
		return &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("malformed color %q: expected a name or hex value", value),
		}
	}
	return nil
}

func (r *Resolver) buildComponent(def *registry.Definition, tag *TagNode) (render.Primitive, error) {
	spec := def.Component

	if err := checkParams(tag, spec.SlotNames()...); err != nil {
		return nil, err
	}
	for _, slot := range spec.Slots {
		if _, ok := tag.Param(slot.Name); slot.Required && !ok {
			return nil, &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg: fmt.Sprintf("missing required parameter %q", slot.Name),
			}
		}
	}

	// Slot values marked Resolve are looked up through the registry in the
	// slot's declared context.
	slotText := make(map[string]string, len(tag.Params))
	for _, slot := range spec.Slots {
		value, ok := tag.Param(slot.Name)
		if !ok {
			continue
		}
		if !slot.Resolve {
			slotText[slot.Name] = value
			continue
		}
		text, err := r.resolveSlotValue(tag, slot, value)
		if err != nil {
			return nil, err
		}
		slotText[slot.Name] = text
	}

	switch spec.Builtin {
	case "swatch":
		color := slotText["color"]
		if err := validateColor(tag, color); err != nil {
			return nil, err
		}
		return render.Swatch{Color: color}, nil

	case "divider":
		variant := slotText["variant"]
		if variant == "" {
			variant = "line"
		}
		switch variant {
		case "line", "dots", "wave":
			return render.Divider{Variant: variant}, nil
		default:
			return nil, &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg:         fmt.Sprintf("unknown divider variant %q", variant),
				Suggestions: registry.Nearest([]string{"line", "dots", "wave"}, variant, 1),
			}
		}

	case "kbd":
		keys := strings.Split(slotText["keys"], "+")
		for i, k := range keys {
			keys[i] = "<kbd>" + k + "</kbd>"
		}
		return render.Text{Literal: strings.Join(keys, "+")}, nil

	case "progress":
		raw := slotText["value"]
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			return nil, &ValidationError{
				Span: tag.Span(), Tag: tag.Name,
				Msg: fmt.Sprintf("value must be an integer between 0 and 100, got %q", raw),
			}
		}
		filled := n / 10
		bar := strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
		return render.Text{Literal: fmt.Sprintf("%s %d%%", bar, n)}, nil

	case "hero":
		title := slotText["title"]
		if icon, ok := slotText["icon"]; ok && icon != "" {
			return render.Text{Literal: fmt.Sprintf("# %s %s %s", icon, title, icon)}, nil
		}
		return render.Text{Literal: "# " + title}, nil

	default:
		return nil, &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("no behavior for component %q", spec.Builtin),
		}
	}
}

// resolveSlotValue resolves a component slot value as a registry name in
// the slot's declared context, flattening to text.
func (r *Resolver) resolveSlotValue(tag *TagNode, slot registry.Slot, value string) (string, error) {
	def := r.reg.Resolve(value)
	if def == nil {
		return "", &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg:         fmt.Sprintf("slot %q: unknown name %q", slot.Name, value),
			Suggestions: r.reg.Suggest(value, 3),
		}
	}
	if !evalctx.Permits(def.Contexts, slot.Context) {
		return "", &ContextError{
			Span:      tag.Span(),
			Tag:       value,
			Attempted: slot.Context,
			Permitted: registry.PermittedContexts(def),
		}
	}
	switch def.Kind {
	case registry.KindGlyph:
		return def.Glyph.Text, nil
	case registry.KindSnippet:
		return def.Snippet.Text, nil
	default:
		return "", &ValidationError{
			Span: tag.Span(), Tag: tag.Name,
			Msg: fmt.Sprintf("slot %q: %s %q does not flatten to text", slot.Name, def.Kind, value),
		}
	}
}

func (r *Resolver) buildBadge(def *registry.Definition, tag *TagNode) (render.Primitive, error) {
	if err := checkParams(tag, "label", "message", "color", "style"); err != nil {
		return nil, err
	}

	badge := render.Badge{
		ID:      def.ID,
		Label:   def.Badge.Label,
		Message: def.Badge.Message,
		Color:   def.Badge.Color,
		Style:   def.Badge.Style,
	}
	if v, ok := tag.Param("label"); ok {
		badge.Label = v
	}
	if v, ok := tag.Param("message"); ok {
		badge.Message = v
	}
	if v, ok := tag.Param("color"); ok {
		if err := validateColor(tag, v); err != nil {
			return nil, err
		}
		badge.Color = v
	}
	if v, ok := tag.Param("style"); ok {
		badge.Style = v
	}
	return badge, nil
}
