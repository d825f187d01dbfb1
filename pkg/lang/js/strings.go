package js

import (
	"strings"
)

// normalizeString re-quotes a string literal with the preferred quote
// unless that needs more escapes than the alternative. Escaped quotes that
// no longer need escaping are unescaped.
func normalizeString(raw string, preferred byte) string {
	if len(raw) < 2 {
		return raw
	}
	content := raw[1 : len(raw)-1]

	alternate := byte('\'')
	if preferred == '\'' {
		alternate = '"'
	}
	quote := preferred
	if strings.Count(content, string(preferred)) > strings.Count(content, string(alternate)) {
		quote = alternate
	}

	var sb strings.Builder
	sb.Grow(len(raw) + 2)
	sb.WriteByte(quote)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			next := content[i+1]
			if (next == '"' || next == '\'') && next != quote {
				sb.WriteByte(next)
			} else {
				sb.WriteByte(c)
				sb.WriteByte(next)
			}
			i++
		case c == quote:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
