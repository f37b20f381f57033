package render

import "strings"

// plainText is the mandatory downgrade for a primitive the active backend
// cannot represent for the active target. It is deterministic and total so
// a render never fails outright.
func plainText(p Primitive) string {
	switch prim := p.(type) {
	case Text:
		return prim.Literal
	case StyledText:
		return prim.Text
	case Badge:
		if prim.Label == "" {
			return "[" + prim.Message + "]"
		}
		return "[" + prim.Label + ": " + prim.Message + "]"
	case Swatch:
		return prim.Color
	case Divider:
		switch prim.Variant {
		case "dots":
			return "· · · · · · · ·"
		case "wave":
			return "~ ~ ~ ~ ~ ~ ~ ~"
		default:
			return strings.Repeat("―", 16)
		}
	case Frame:
		var inner strings.Builder
		for _, ip := range prim.Inner {
			inner.WriteString(plainText(ip))
		}
		return prim.Prefix + "\n" + inner.String() + "\n" + prim.Suffix
	default:
		return ""
	}
}
