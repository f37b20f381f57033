package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/emblem/internal/evalctx"
	"github.com/zjrosen/emblem/internal/registry"
	"github.com/zjrosen/emblem/internal/render"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	reg, err := registry.Load()
	require.NoError(t, err)
	return NewResolver(reg)
}

// resolve parses and resolves source at the given context, failing the test
// on a structural error.
func resolve(t *testing.T, r *Resolver, source string, ctx evalctx.Context) ([]render.Placed, []Diagnostic) {
	t.Helper()
	doc, err := Parse(source)
	require.NoError(t, err)
	placed, diags, err := r.ResolveDocument(doc, ctx)
	require.NoError(t, err)
	return placed, diags
}

func TestResolveGlyph(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"plain", "{{star/}}", "★"},
		{"alias", "{{asterisk/}}", "★"},
		{"repeat", "{{star:repeat=3/}}", "★★★"},
		{"repeat with separator", "{{star:repeat=3:separator=-/}}", "★-★-★"},
		{"unicode separator", "{{star:repeat=2:separator=→/}}", "★→★"},
		{"separator without repeat", "{{star:separator=-/}}", "★"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed, diags := resolve(t, r, tt.source, evalctx.Inline)
			require.Empty(t, diags)
			require.Len(t, placed, 1)
			assert.Equal(t, render.Text{Literal: tt.want}, placed[0].Prim)
		})
	}
}

func TestResolveGlyphValidation(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"repeat zero", "{{star:repeat=0/}}", "repeat must be"},
		{"repeat over cap", "{{star:repeat=21/}}", "repeat must be"},
		{"repeat not a number", "{{star:repeat=many/}}", "repeat must be"},
		{"separator two chars", "{{star:repeat=2:separator=::/}}", "exactly one character"},
		{"separator empty", "{{star:repeat=2:separator=/}}", "exactly one character"},
		{"separator brace", "{{star:repeat=2:separator={/}}", "template delimiter"},
		{"unknown param", "{{star:size=big/}}", "unrecognized parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed, diags := resolve(t, r, tt.source, evalctx.Inline)
			assert.Empty(t, placed, "failed tag must not produce a replacement")
			require.Len(t, diags, 1)
			assert.Equal(t, SeverityError, diags[0].Severity)

			var valErr *ValidationError
			require.ErrorAs(t, diags[0].Err, &valErr)
			assert.Contains(t, valErr.Error(), tt.msg)
		})
	}
}

func TestResolveSeparatorSuggestsFirstRune(t *testing.T) {
	r := testResolver(t)
	_, diags := resolve(t, r, "{{star:repeat=2:separator=::/}}", evalctx.Inline)
	require.Len(t, diags, 1)

	var valErr *ValidationError
	require.ErrorAs(t, diags[0].Err, &valErr)
	assert.Equal(t, []string{"separator=:"}, valErr.Suggestions)
}

func TestResolveStyle(t *testing.T) {
	r := testResolver(t)

	placed, diags := resolve(t, r, "{{mathbold}}TEXT{{/mathbold}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t, render.StyledText{Text: "𝐓𝐄𝐗𝐓", Style: "mathbold"}, placed[0].Prim)
}

func TestResolveStyleAlias(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{bold}}abc{{/bold}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t, render.StyledText{Text: "𝐚𝐛𝐜", Style: "mathbold"}, placed[0].Prim)
}

func TestResolveStyleMissingCloseIsParseError(t *testing.T) {
	// A style tag with no closing tag is structural: the document aborts.
	r := testResolver(t)
	doc, err := Parse("{{mathbold}}TEXT")
	require.NoError(t, err)

	_, _, err = r.ResolveDocument(doc, evalctx.Inline)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Msg, "missing {{/mathbold}}")
}

func TestResolveStyleSelfClosingIsValidation(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{mathbold/}}", evalctx.Inline)
	assert.Empty(t, placed)
	require.Len(t, diags, 1)

	var valErr *ValidationError
	require.ErrorAs(t, diags[0].Err, &valErr)
	assert.Contains(t, valErr.Msg, "require a body")
}

func TestResolveStyleNestedTagRejected(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{mathbold}}a {{star/}} b{{/mathbold}}", evalctx.Inline)
	assert.Empty(t, placed)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "plain text")
}

func TestResolveUnknownTagFallsBack(t *testing.T) {
	// An unknown standalone tag is a warning, never an error: the tag stays
	// literal and resolution continues.
	r := testResolver(t)
	placed, diags := resolve(t, r, "see {{notreal}} here", evalctx.Inline)

	assert.Empty(t, placed)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)

	var unknownErr *UnknownTagError
	require.ErrorAs(t, diags[0].Err, &unknownErr)
	assert.Equal(t, "notreal", unknownErr.Name)
	assert.False(t, HasErrors(diags))
}

func TestResolveUnknownTagSuggestions(t *testing.T) {
	r := testResolver(t)
	_, diags := resolve(t, r, "{{starr/}}", evalctx.Inline)
	require.Len(t, diags, 1)

	var unknownErr *UnknownTagError
	require.ErrorAs(t, diags[0].Err, &unknownErr)
	require.NotEmpty(t, unknownErr.Suggestions)
	assert.Equal(t, "star", unknownErr.Suggestions[0])
}

func TestResolveSnippet(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{shrug/}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.IsType(t, render.Text{}, placed[0].Prim)
}

func TestResolveContextPromotion(t *testing.T) {
	r := testResolver(t)

	// star declares inline only, so block and frame-chrome use succeed via
	// promotion. toc-marker declares block only: block has no promotion
	// path anywhere, so inline use fails.
	placed, diags := resolve(t, r, "{{star/}}", evalctx.Block)
	assert.Empty(t, diags)
	assert.Len(t, placed, 1)

	placed, diags = resolve(t, r, "{{toc-marker/}}", evalctx.Inline)
	assert.Empty(t, placed)
	require.Len(t, diags, 1)

	var ctxErr *ContextError
	require.ErrorAs(t, diags[0].Err, &ctxErr)
	assert.Equal(t, evalctx.Inline, ctxErr.Attempted)
	assert.Equal(t, []evalctx.Context{evalctx.Block}, ctxErr.Permitted)
}

func TestResolveFrame(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{box}}hello{{/box}}", evalctx.Block)
	require.Empty(t, diags)
	require.Len(t, placed, 1)

	frame, ok := placed[0].Prim.(render.Frame)
	require.True(t, ok)
	assert.Equal(t, "box", frame.ID)
	require.Len(t, frame.Inner, 1)
	assert.Equal(t, render.Text{Literal: "hello"}, frame.Inner[0])
}

func TestResolveFrameChromeTags(t *testing.T) {
	// starline's chrome contains glyph tags; they resolve in frame-chrome
	// context and flatten into the prefix/suffix strings.
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{starline}}body{{/starline}}", evalctx.Block)
	require.Empty(t, diags)
	require.Len(t, placed, 1)

	frame := placed[0].Prim.(render.Frame)
	assert.Equal(t, "★ ──────────── ★", frame.Prefix)
	assert.Equal(t, frame.Prefix, frame.Suffix)
}

func TestResolveFrameBodyTagFailurePassesThrough(t *testing.T) {
	// A bad tag inside a frame body degrades to its source text; the frame
	// itself still resolves and the failure is reported.
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{box}}a {{nope}} b{{/box}}", evalctx.Block)
	require.Len(t, placed, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)

	frame := placed[0].Prim.(render.Frame)
	require.Len(t, frame.Inner, 3)
	assert.Equal(t, render.Text{Literal: "{{nope}}"}, frame.Inner[1])
}

func TestResolveComponentSwatch(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{swatch:color=ff69b4/}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t, render.Swatch{Color: "ff69b4"}, placed[0].Prim)
}

func TestResolveComponentMissingRequiredSlot(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{swatch/}}", evalctx.Inline)
	assert.Empty(t, placed)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "missing required parameter")
}

func TestResolveComponentUnknownSlotSuggestion(t *testing.T) {
	r := testResolver(t)
	_, diags := resolve(t, r, "{{swatch:colour=red/}}", evalctx.Inline)
	require.Len(t, diags, 1)

	var valErr *ValidationError
	require.ErrorAs(t, diags[0].Err, &valErr)
	assert.Equal(t, []string{"color"}, valErr.Suggestions)
}

func TestResolveComponentKbd(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{kbd:keys=ctrl+shift+p/}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t,
		render.Text{Literal: "<kbd>ctrl</kbd>+<kbd>shift</kbd>+<kbd>p</kbd>"},
		placed[0].Prim)
}

func TestResolveComponentProgress(t *testing.T) {
	r := testResolver(t)

	placed, diags := resolve(t, r, "{{progress:value=70/}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t, render.Text{Literal: "▰▰▰▰▰▰▰▱▱▱ 70%"}, placed[0].Prim)

	_, diags = resolve(t, r, "{{progress:value=101/}}", evalctx.Inline)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "between 0 and 100")
}

func TestResolveComponentDivider(t *testing.T) {
	r := testResolver(t)

	placed, diags := resolve(t, r, "{{divider/}}", evalctx.Block)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t, render.Divider{Variant: "line"}, placed[0].Prim)

	placed, diags = resolve(t, r, "{{divider:variant=wave/}}", evalctx.Block)
	require.Empty(t, diags)
	assert.Equal(t, render.Divider{Variant: "wave"}, placed[0].Prim)

	_, diags = resolve(t, r, "{{divider:variant=wavy/}}", evalctx.Block)
	require.Len(t, diags, 1)
	var valErr *ValidationError
	require.ErrorAs(t, diags[0].Err, &valErr)
	assert.Equal(t, []string{"wave"}, valErr.Suggestions)
}

func TestResolveComponentHeroWithResolvedIcon(t *testing.T) {
	// The hero icon slot resolves its value through the registry, so glyph
	// aliases work there too.
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{hero:title=Emblem:icon=sparkle/}}", evalctx.Block)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	assert.Equal(t, render.Text{Literal: "# ✦ Emblem ✦"}, placed[0].Prim)
}

func TestResolveComponentHeroUnknownIcon(t *testing.T) {
	r := testResolver(t)
	_, diags := resolve(t, r, "{{hero:title=X:icon=sparkel/}}", evalctx.Block)
	require.Len(t, diags, 1)

	var valErr *ValidationError
	require.ErrorAs(t, diags[0].Err, &valErr)
	assert.Contains(t, valErr.Suggestions, "sparkle")
}

func TestResolveBadgeDefaultsAndOverrides(t *testing.T) {
	r := testResolver(t)

	placed, diags := resolve(t, r, "{{license-mit/}}", evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 1)
	badge := placed[0].Prim.(render.Badge)
	assert.Equal(t, "license-mit", badge.ID)
	assert.Equal(t, "license", badge.Label)
	assert.Equal(t, "MIT", badge.Message)

	placed, diags = resolve(t, r, "{{badge:label=build:message=passing:color=brightgreen/}}", evalctx.Inline)
	require.Empty(t, diags)
	badge = placed[0].Prim.(render.Badge)
	assert.Equal(t, "build", badge.Label)
	assert.Equal(t, "passing", badge.Message)
	assert.Equal(t, "brightgreen", badge.Color)
}

func TestResolveBadgeBadColor(t *testing.T) {
	r := testResolver(t)
	_, diags := resolve(t, r, "{{badge:color=not a color!/}}", evalctx.Inline)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "malformed color")
}

func TestResolveBadgeWithBodyRejected(t *testing.T) {
	r := testResolver(t)
	placed, diags := resolve(t, r, "{{badge}}x{{/badge}}", evalctx.Inline)
	assert.Empty(t, placed)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "take no body")
}

func TestResolveCollectsAllDiagnostics(t *testing.T) {
	// One pass reports every failing tag, and good tags still resolve.
	r := testResolver(t)
	source := "{{nope}} {{star:repeat=0/}} {{check/}} {{badge:color=!/}}"
	placed, diags := resolve(t, r, source, evalctx.Inline)

	require.Len(t, placed, 1)
	assert.Equal(t, render.Text{Literal: "✓"}, placed[0].Prim)

	require.Len(t, diags, 3)
	assert.True(t, HasErrors(diags))
}

func TestResolveSpansMatchSource(t *testing.T) {
	r := testResolver(t)
	source := "pre {{star/}} mid {{check/}} post"
	placed, diags := resolve(t, r, source, evalctx.Inline)
	require.Empty(t, diags)
	require.Len(t, placed, 2)

	for _, p := range placed {
		text := source[p.Span.Start:p.Span.End]
		assert.Contains(t, []string{"{{star/}}", "{{check/}}"}, text)
	}
}
