// Package scan holds the lexing helpers shared by the bindings.
package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/formatkit/pkg/syntax"
)

const bom = "\uFEFF"

// Trivia recognizes whitespace, a line break or a C-style comment at
// src[i:]. It returns the piece and its length.
func Trivia(src string, i int) (syntax.LexPiece, int, bool) {
	if piece, n, ok := Whitespace(src, i); ok {
		return piece, n, true
	}
	switch {
	case strings.HasPrefix(src[i:], "//"):
		j := strings.IndexAny(src[i:], "\r\n")
		if j < 0 {
			j = len(src) - i
		}
		return syntax.TriviaPieceOf(syntax.TriviaLineComment, src[i:i+j]), j, true
	case strings.HasPrefix(src[i:], "/*"):
		j := strings.Index(src[i+2:], "*/")
		if j < 0 {
			// Unterminated: the rest of the file is skipped.
			return syntax.TriviaPieceOf(syntax.TriviaSkipped, src[i:]), len(src) - i, true
		}
		n := j + 4
		return syntax.TriviaPieceOf(syntax.TriviaBlockComment, src[i:i+n]), n, true
	}
	return syntax.LexPiece{}, 0, false
}

// Whitespace recognizes a run of blanks, a line break or a byte order
// mark at src[i:].
func Whitespace(src string, i int) (syntax.LexPiece, int, bool) {
	switch c := src[i]; {
	case c == '\n':
		return syntax.TriviaPieceOf(syntax.TriviaNewline, "\n"), 1, true
	case c == '\r':
		if strings.HasPrefix(src[i:], "\r\n") {
			return syntax.TriviaPieceOf(syntax.TriviaNewline, "\r\n"), 2, true
		}
		return syntax.TriviaPieceOf(syntax.TriviaNewline, "\r"), 1, true
	case c == ' ' || c == '\t' || c == '\f' || c == '\v':
		j := i + 1
		for j < len(src) && strings.IndexByte(" \t\f\v", src[j]) >= 0 {
			j++
		}
		return syntax.TriviaPieceOf(syntax.TriviaWhitespace, src[i:j]), j - i, true
	case strings.HasPrefix(src[i:], bom):
		return syntax.TriviaPieceOf(syntax.TriviaWhitespace, bom), len(bom), true
	}
	return syntax.LexPiece{}, 0, false
}

// String scans a quoted string starting at src[i], which must be the
// quote. It returns the end offset and whether the string was closed
// before the end of the line.
func String(src string, i int) (int, bool) {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		case '\n', '\r':
			return j, false
		}
	}
	return len(src), false
}

// Number scans a numeric literal starting at src[i]: decimal with an
// optional fraction and exponent, or a 0x/0o/0b literal.
func Number(src string, i int) int {
	j := i
	if src[j] == '-' {
		j++
	}
	if j+1 < len(src) && src[j] == '0' && strings.IndexByte("xXoObB", src[j+1]) >= 0 {
		j += 2
		for j < len(src) && (isHex(src[j]) || src[j] == '_') {
			j++
		}
		return j
	}
	j = digits(src, j)
	if j < len(src) && src[j] == '.' {
		j = digits(src, j+1)
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if k < len(src) && isDigit(src[k]) {
			j = digits(src, k)
		}
	}
	return j
}

func digits(src string, j int) int {
	for j < len(src) && (isDigit(src[j]) || src[j] == '_') {
		j++
	}
	return j
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Ident scans an identifier starting at src[i]. It returns i when there is
// none.
func Ident(src string, i int) int {
	j := i
	for j < len(src) {
		r, size := utf8.DecodeRuneInString(src[j:])
		if r == '$' || r == '_' || unicode.IsLetter(r) || (j > i && unicode.IsDigit(r)) {
			j += size
			continue
		}
		break
	}
	return j
}

// Rune returns the length of the rune at src[i].
func Rune(src string, i int) int {
	_, size := utf8.DecodeRuneInString(src[i:])
	return size
}
