package template

import (
	"strings"

	"github.com/zjrosen/emblem/internal/render"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// segment is a lexed slice of the source: literal text or one raw tag.
type segment struct {
	text string // literal text, when tag is nil
	tag  *rawTag
	span render.Span
}

// rawTag is a lexed tag before block matching.
type rawTag struct {
	name      string
	params    []Param
	closing   bool // {{/name}}
	selfClose bool // {{name/}}
	span      render.Span
}

// lex splits source into text and tag segments. An opening delimiter with no
// terminator is a ParseError. Tag-shaped content whose name is not a valid
// identifier is left as literal text so ordinary prose containing braces
// survives untouched.
func lex(source string) ([]segment, error) {
	var segs []segment
	pos := 0

	for {
		rel := strings.Index(source[pos:], openDelim)
		if rel < 0 {
			break
		}
		start := pos + rel
		if start > pos {
			segs = append(segs, segment{
				text: source[pos:start],
				span: render.Span{Start: pos, End: start},
			})
		}

		endRel := strings.Index(source[start+len(openDelim):], closeDelim)
		if endRel < 0 {
			return nil, &ParseError{
				Span: render.Span{Start: start, End: len(source)},
				Msg:  "unterminated tag: missing }}",
			}
		}
		end := start + len(openDelim) + endRel + len(closeDelim)
		content := source[start+len(openDelim) : end-len(closeDelim)]
		span := render.Span{Start: start, End: end}

		tag, ok, err := lexTag(content, span)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Not tag-shaped; keep the braces as literal text.
			segs = append(segs, segment{text: source[start:end], span: span})
		} else {
			segs = append(segs, segment{tag: tag, span: span})
		}
		pos = end
	}

	if pos < len(source) {
		segs = append(segs, segment{
			text: source[pos:],
			span: render.Span{Start: pos, End: len(source)},
		})
	}
	return segs, nil
}

// lexTag parses the content between delimiters. The second return is false
// when the content is not tag-shaped at all.
func lexTag(content string, span render.Span) (*rawTag, bool, error) {
	tag := &rawTag{span: span}

	if strings.HasPrefix(content, "/") {
		tag.closing = true
		content = content[1:]
		if !isIdent(content) {
			return nil, false, &ParseError{Span: span, Msg: "malformed closing tag"}
		}
		tag.name = content
		return tag, true, nil
	}

	if strings.HasSuffix(content, "/") {
		tag.selfClose = true
		content = content[:len(content)-1]
	}

	// Split into name and parameter fields. A field without '=' continues
	// the previous parameter's value, so separator=:: lexes as one
	// parameter with the value "::" and fails validation, not parsing.
	fields := strings.Split(content, ":")
	name := fields[0]
	if !isIdent(name) {
		if tag.selfClose {
			return nil, false, &ParseError{Span: span, Msg: "malformed tag name"}
		}
		return nil, false, nil
	}
	tag.name = name

	for _, field := range fields[1:] {
		eq := strings.Index(field, "=")
		if eq < 0 {
			if len(tag.params) == 0 {
				return nil, false, &ParseError{Span: span, Msg: "malformed parameter: expected key=value"}
			}
			tag.params[len(tag.params)-1].Value += ":" + field
			continue
		}
		key := field[:eq]
		if !isIdent(key) {
			return nil, false, &ParseError{Span: span, Msg: "malformed parameter name"}
		}
		tag.params = append(tag.params, Param{Key: key, Value: field[eq+1:]})
	}

	return tag, true, nil
}

// isIdent reports whether s is a valid tag or parameter name: letters,
// digits, underscores and hyphens, starting with a letter.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_' || c == '-'):
		default:
			return false
		}
	}
	return true
}
