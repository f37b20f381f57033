package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockTag(t *testing.T) {
	doc, err := Parse("a {{mathbold}}TEXT{{/mathbold}} b")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)

	tag, ok := doc.Nodes[1].(*TagNode)
	require.True(t, ok)
	assert.Equal(t, "mathbold", tag.Name)
	assert.True(t, tag.IsBlock())
	require.Len(t, tag.Body, 1)
	assert.Equal(t, "TEXT", tag.Body[0].(*TextNode).Text)

	// Span covers the opening tag through the closing tag.
	span := tag.Span()
	assert.Equal(t, "{{mathbold}}TEXT{{/mathbold}}", doc.Source[span.Start:span.End])
}

func TestParseEmptyBlock(t *testing.T) {
	doc, err := Parse("{{box}}{{/box}}")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)

	tag := doc.Nodes[0].(*TagNode)
	assert.True(t, tag.IsBlock())
	assert.Empty(t, tag.Body)
}

func TestParseNestedBlocks(t *testing.T) {
	doc, err := Parse("{{box}}x {{mathbold}}y{{/mathbold}} z{{/box}}")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)

	outer := doc.Nodes[0].(*TagNode)
	assert.Equal(t, "box", outer.Name)
	require.Len(t, outer.Body, 3)

	inner, ok := outer.Body[1].(*TagNode)
	require.True(t, ok)
	assert.Equal(t, "mathbold", inner.Name)
	assert.True(t, inner.IsBlock())
}

func TestParseStandaloneWithoutClose(t *testing.T) {
	// No closing tag anywhere ahead: the open tag stands alone and the
	// resolver decides whether that is legal for its kind.
	doc, err := Parse("{{notreal}} trailing text")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)

	tag := doc.Nodes[0].(*TagNode)
	assert.Equal(t, "notreal", tag.Name)
	assert.False(t, tag.IsBlock())
	assert.False(t, tag.SelfClosing)
}

func TestParseSelfClosing(t *testing.T) {
	doc, err := Parse("{{star:repeat=2/}}")
	require.NoError(t, err)
	tag := doc.Nodes[0].(*TagNode)
	assert.True(t, tag.SelfClosing)
	assert.False(t, tag.IsBlock())
}

func TestParseUnmatchedClose(t *testing.T) {
	_, err := Parse("text {{/mathbold}}")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Msg, "unmatched closing tag")
}

func TestParseMismatchedClose(t *testing.T) {
	_, err := Parse("{{box}}{{mathbold}}x{{/box}}{{/mathbold}}")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Msg, "mismatched closing tag")
}

func TestParseRepeatedBlocksOfSameName(t *testing.T) {
	doc, err := Parse("{{mathbold}}a{{/mathbold}} and {{mathbold}}b{{/mathbold}}")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)
	assert.True(t, doc.Nodes[0].(*TagNode).IsBlock())
	assert.True(t, doc.Nodes[2].(*TagNode).IsBlock())
}

func TestParseOpenConsumesLaterClose(t *testing.T) {
	// The first open pairs with the only close; by the time the second open
	// appears every close is spoken for, so it stands alone.
	doc, err := Parse("{{mathbold}}a{{/mathbold}}{{mathbold}}")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.True(t, doc.Nodes[0].(*TagNode).IsBlock())
	assert.False(t, doc.Nodes[1].(*TagNode).IsBlock())
}
