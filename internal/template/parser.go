package template

import (
	"fmt"

	"github.com/zjrosen/emblem/internal/render"
)

// openFrame tracks one unclosed block tag during parsing.
type openFrame struct {
	tag      *rawTag
	children []Node
}

// Parse lexes and parses source into a Document. Malformed syntax
// (unterminated tag, unmatched or mismatched closing tag) returns a
// *ParseError and aborts the document.
//
// An open tag is treated as a block only when a matching closing tag exists
// later in the source; otherwise it becomes a standalone node. Whether a
// standalone node is legal is the resolver's call: it depends on the
// definition's kind, which the parser does not know.
func Parse(source string) (*Document, error) {
	segs, err := lex(source)
	if err != nil {
		return nil, err
	}

	// Count closing tags per name so open tags know whether a close awaits.
	remaining := make(map[string]int)
	for _, seg := range segs {
		if seg.tag != nil && seg.tag.closing {
			remaining[seg.tag.name]++
		}
	}

	var top []Node
	var stack []*openFrame

	appendNode := func(n Node) {
		if len(stack) > 0 {
			frame := stack[len(stack)-1]
			frame.children = append(frame.children, n)
			return
		}
		top = append(top, n)
	}

	for _, seg := range segs {
		switch {
		case seg.tag == nil:
			appendNode(&TextNode{Text: seg.text, span: seg.span})

		case seg.tag.closing:
			remaining[seg.tag.name]--
			if len(stack) == 0 {
				return nil, &ParseError{
					Span: seg.span,
					Msg:  fmt.Sprintf("unmatched closing tag {{/%s}}", seg.tag.name),
				}
			}
			frame := stack[len(stack)-1]
			if frame.tag.name != seg.tag.name {
				return nil, &ParseError{
					Span: seg.span,
					Msg: fmt.Sprintf("mismatched closing tag: expected {{/%s}}, got {{/%s}}",
						frame.tag.name, seg.tag.name),
				}
			}
			stack = stack[:len(stack)-1]
			body := frame.children
			if body == nil {
				body = []Node{}
			}
			appendNode(&TagNode{
				Name:   frame.tag.name,
				Params: frame.tag.params,
				Body:   body,
				span:   render.Span{Start: frame.tag.span.Start, End: seg.span.End},
			})

		case seg.tag.selfClose:
			appendNode(&TagNode{
				Name:        seg.tag.name,
				Params:      seg.tag.params,
				SelfClosing: true,
				span:        seg.span,
			})

		default:
			if remaining[seg.tag.name] > 0 {
				stack = append(stack, &openFrame{tag: seg.tag})
				continue
			}
			// No closing tag anywhere ahead: standalone.
			appendNode(&TagNode{
				Name:   seg.tag.name,
				Params: seg.tag.params,
				span:   seg.span,
			})
		}
	}

	if len(stack) > 0 {
		frame := stack[len(stack)-1]
		return nil, &ParseError{
			Span: frame.tag.span,
			Msg:  fmt.Sprintf("unterminated block tag {{%s}}: missing {{/%s}}", frame.tag.name, frame.tag.name),
		}
	}

	return &Document{Source: source, Nodes: top}, nil
}
