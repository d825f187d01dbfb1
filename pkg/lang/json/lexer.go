package json

import (
	"github.com/yaklabco/formatkit/pkg/lang/internal/scan"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

var punctuation = map[byte]syntax.RawKind{
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	':': Colon,
	',': Comma,
}

var keywords = map[string]syntax.RawKind{
	"true":  True,
	"false": False,
	"null":  Null,
}

// lex splits src into tokens and trivia. It never fails: characters it
// doesn't understand become error tokens.
func lex(src string) []syntax.LexPiece {
	var out []syntax.LexPiece
	for i := 0; i < len(src); {
		if piece, n, ok := scan.Trivia(src, i); ok {
			out = append(out, piece)
			i += n
			continue
		}

		c := src[i]
		if kind, ok := punctuation[c]; ok {
			out = append(out, syntax.TokenPiece(kind, src[i:i+1]))
			i++
			continue
		}

		switch {
		case c == '"' || c == '\'':
			end, closed := scan.String(src, i)
			kind := String
			if !closed || c == '\'' {
				kind = ErrorToken
			}
			out = append(out, syntax.TokenPiece(kind, src[i:end]))
			i = end
		case c == '-' || scan.IsDigit(c):
			end := scan.Number(src, i)
			if end == i || (c == '-' && end == i+1) {
				end = i + 1
				out = append(out, syntax.TokenPiece(ErrorToken, src[i:end]))
			} else {
				out = append(out, syntax.TokenPiece(Number, src[i:end]))
			}
			i = end
		default:
			end := scan.Ident(src, i)
			if end == i {
				end = i + scan.Rune(src, i)
			}
			kind, ok := keywords[src[i:end]]
			if !ok {
				kind = ErrorToken
			}
			out = append(out, syntax.TokenPiece(kind, src[i:end]))
			i = end
		}
	}
	return append(out, syntax.TokenPiece(EOF, ""))
}
