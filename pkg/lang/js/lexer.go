package js

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/lang/internal/scan"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

var punctuation = map[byte]syntax.RawKind{
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	';': Semi,
	',': Comma,
	':': Colon,
}

// operators are matched longest first.
var operators = []string{
	">>>=",
	"===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=", "...",
	"==", "!=", "<=", ">=", "&&", "||", "??", "**", "++", "--", "+=", "-=", "*=", "/=", "%=",
	"&=", "|=", "^=", "<<", ">>", "=>",
	"+", "-", "*", "/", "%", "<", ">", "=", "!", "~", "&", "|", "^", "?",
}

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
			if !closed {
				kind = ErrorToken
			}
			out = append(out, syntax.TokenPiece(kind, src[i:end]))
			i = end
		case c == '`':
			end := templateEnd(src, i)
			out = append(out, syntax.TokenPiece(Template, src[i:end]))
			i = end
		case scan.IsDigit(c) || (c == '.' && i+1 < len(src) && scan.IsDigit(src[i+1])):
			end := scan.Number(src, i)
			if end == i {
				end = i + 1
			}
			out = append(out, syntax.TokenPiece(Number, src[i:end]))
			i = end
		case c == '.' && !strings.HasPrefix(src[i:], "..."):
			out = append(out, syntax.TokenPiece(Dot, "."))
			i++
		default:
			if end := scan.Ident(src, i); end > i {
				word := src[i:end]
				kind, ok := keywords[word]
				switch {
				case ok:
				case wordOperators[word]:
					kind = Operator
				default:
					kind = Ident
				}
				out = append(out, syntax.TokenPiece(kind, word))
				i = end
				continue
			}
			if op := matchOperator(src[i:]); op != "" {
				out = append(out, syntax.TokenPiece(Operator, op))
				i += len(op)
				continue
			}
			n := scan.Rune(src, i)
			out = append(out, syntax.TokenPiece(ErrorToken, src[i:i+n]))
			i += n
		}
	}
	return append(out, syntax.TokenPiece(EOF, ""))
}

func matchOperator(s string) string {
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

// templateEnd finds the closing backtick of a template literal. An
// unterminated template runs to the end of the file.
func templateEnd(src string, i int) int {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '`':
			return j + 1
		}
	}
	return len(src)
}
