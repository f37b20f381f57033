package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// namedColors maps the shields.io color names we support to hex values, so
// the same definition data renders through either backend.
var namedColors = map[string]string{
	"brightgreen": "#4c1",
	"green":       "#97ca00",
	"yellowgreen": "#a4a61d",
	"yellow":      "#dfb317",
	"orange":      "#fe7d37",
	"red":         "#e05d44",
	"blue":        "#007ec6",
	"lightgrey":   "#9f9f9f",
	"grey":        "#555",
	"blueviolet":  "#8a2be2",
}

// hexColor normalizes a color name or hex string to a #-prefixed hex value.
func hexColor(c string) string {
	if hx, ok := namedColors[strings.ToLower(c)]; ok {
		return hx
	}
	if strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

// textWidth approximates rendered width of badge text at 11px Verdana.
// Integer math keeps the output identical across platforms.
const charWidth = 7

func textWidth(s string) int {
	return utf8.RuneCountInString(s)*charWidth + 10
}

// badgeSVG generates a flat two-segment badge. Output bytes are a pure
// function of the primitive.
func badgeSVG(b Badge) []byte {
	left := textWidth(b.Label)
	right := textWidth(b.Message)
	total := left + right
	color := hexColor(b.Color)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">`,
		total, escapeXML(b.Label), escapeXML(b.Message))
	fmt.Fprintf(&sb, `<rect width="%d" height="20" fill="#555"/>`, left)
	fmt.Fprintf(&sb, `<rect x="%d" width="%d" height="20" fill="%s"/>`, left, right, color)
	fmt.Fprintf(&sb, `<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,sans-serif" font-size="11">`)
	fmt.Fprintf(&sb, `<text x="%d" y="14">%s</text>`, left/2, escapeXML(b.Label))
	fmt.Fprintf(&sb, `<text x="%d" y="14">%s</text>`, left+right/2, escapeXML(b.Message))
	sb.WriteString(`</g></svg>`)
	return []byte(sb.String())
}

// swatchSVG generates a 16x16 color chip.
func swatchSVG(s Swatch) []byte {
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16"><rect width="16" height="16" rx="3" fill="%s"/></svg>`,
		hexColor(s.Color)))
}

// swatchSVG and dividerSVG widths are fixed; dividers stretch in markdown
// via the surrounding paragraph, not the image itself.
const dividerWidth = 480

// dividerSVG generates a horizontal separator in the given variant.
func dividerSVG(d Divider) []byte {
	var body string
	switch d.Variant {
	case "dots":
		var sb strings.Builder
		for x := 8; x < dividerWidth; x += 24 {
			fmt.Fprintf(&sb, `<circle cx="%d" cy="4" r="2" fill="#999"/>`, x)
		}
		body = sb.String()
	case "wave":
		var sb strings.Builder
		sb.WriteString(`<path d="M0 4`)
		sb.WriteString(strings.Repeat(` q4 -4 8 0 t8 0`, dividerWidth/16))
		sb.WriteString(`" stroke="#999" fill="none" stroke-width="1.5"/>`)
		body = sb.String()
	default: // line
		body = fmt.Sprintf(`<line x1="0" y1="4" x2="%d" y2="4" stroke="#999" stroke-width="1.5"/>`, dividerWidth)
	}
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="8">%s</svg>`,
		dividerWidth, body))
}

// escapeXML escapes text for embedding in SVG.
func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// artifactName derives the deterministic filename for generated bytes:
// emblem-<id>-<first 12 hex of sha256>.svg. Identical inputs always map to
// the same name, which is what makes skip-write caching possible upstream.
func artifactName(id string, data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("emblem-%s-%s.svg", id, hex.EncodeToString(sum[:])[:12])
}
