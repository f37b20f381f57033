package registry

import "strings"

// styleTransform maps ASCII letters and digits into a Unicode alphabet by
// codepoint offset, with per-rune exceptions for alphabets that predate
// their Mathematical Alphanumeric block (e.g. ℂ, ℝ, ℎ).
type styleTransform struct {
	upper      rune // codepoint for 'A', 0 to leave uppercase unchanged
	lower      rune // codepoint for 'a', 0 to leave lowercase unchanged
	digit      rune // codepoint for '0', 0 to leave digits unchanged
	exceptions map[rune]rune
}

func (t styleTransform) apply(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 4)
	for _, r := range s {
		if mapped, ok := t.exceptions[r]; ok {
			b.WriteRune(mapped)
			continue
		}
		switch {
		case r >= 'A' && r <= 'Z' && t.upper != 0:
			b.WriteRune(t.upper + (r - 'A'))
		case r >= 'a' && r <= 'z' && t.lower != 0:
			b.WriteRune(t.lower + (r - 'a'))
		case r >= '0' && r <= '9' && t.digit != 0:
			b.WriteRune(t.digit + (r - '0'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// exceptionTable builds an exceptions-only transform from paired rune lists.
func exceptionTable(from, to string) styleTransform {
	src := []rune(from)
	dst := []rune(to)
	m := make(map[rune]rune, len(src))
	for i := range src {
		m[src[i]] = dst[i]
	}
	return styleTransform{exceptions: m}
}

// transforms holds every style transform table by id. Definition data
// references these ids; Load rejects a style definition naming an unknown
// table.
var transforms = map[string]styleTransform{
	"mathbold": {upper: 0x1D400, lower: 0x1D41A, digit: 0x1D7CE},
	"mathmono": {upper: 0x1D670, lower: 0x1D68A, digit: 0x1D7F6},
	"mathitalic": {upper: 0x1D434, lower: 0x1D44E, exceptions: map[rune]rune{
		'h': 0x210E, // ℎ lives in Letterlike Symbols
	}},
	"mathbb": {upper: 0x1D538, lower: 0x1D552, digit: 0x1D7D8, exceptions: map[rune]rune{
		'C': 0x2102, // ℂ
		'H': 0x210D, // ℍ
		'N': 0x2115, // ℕ
		'P': 0x2119, // ℙ
		'Q': 0x211A, // ℚ
		'R': 0x211D, // ℝ
		'Z': 0x2124, // ℤ
	}},
	"smallcaps": exceptionTable(
		"abcdefghijklmnopqrstuvwyz",
		"ᴀʙᴄᴅᴇꜰɢʜɪᴊᴋʟᴍɴᴏᴘǫʀꜱᴛᴜᴠᴡʏᴢ",
	),
}

// HasTransform reports whether a style transform table exists.
func HasTransform(id string) bool {
	_, ok := transforms[id]
	return ok
}

// Transform applies the named style transform to text. The second return is
// false when no such table exists.
func Transform(id, text string) (string, bool) {
	t, ok := transforms[id]
	if !ok {
		return text, false
	}
	return t.apply(text), true
}
