package render

import (
	"fmt"
	"net/url"
	"strings"
)

const shieldsBase = "https://img.shields.io/badge"

// shieldsEscaper applies the shields.io path escaping rules before percent
// encoding: dashes and underscores double themselves, spaces become
// underscores.
var shieldsEscaper = strings.NewReplacer("-", "--", "_", "__", " ", "_")

// shieldsEscape encodes one badge path segment.
func shieldsEscape(s string) string {
	return url.PathEscape(shieldsEscaper.Replace(s))
}

// shieldsBadge renders a badge as a markdown image referencing shields.io.
// No I/O: the reference string is a pure function of the primitive.
func shieldsBadge(b Badge) string {
	u := fmt.Sprintf("%s/%s-%s-%s",
		shieldsBase,
		shieldsEscape(b.Label),
		shieldsEscape(b.Message),
		shieldsEscape(b.Color))
	if b.Style != "" {
		u += "?style=" + url.QueryEscape(b.Style)
	}
	alt := b.Message
	if b.Label != "" {
		alt = b.Label + ": " + b.Message
	}
	return fmt.Sprintf("![%s](%s)", alt, u)
}

// shieldsSwatch renders a color chip via the two-segment badge form
// (message-color), with a blank message.
func shieldsSwatch(s Swatch) string {
	u := fmt.Sprintf("%s/%s-%s?style=flat-square",
		shieldsBase,
		shieldsEscape("   "),
		shieldsEscape(strings.TrimPrefix(s.Color, "#")))
	return fmt.Sprintf("![%s](%s)", s.Color, u)
}
