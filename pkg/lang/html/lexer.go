package html

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/lang/internal/scan"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

type lexer struct {
	src string
	i   int
	out []syntax.LexPiece
}

func (l *lexer) emit(kind syntax.RawKind, end int) {
	l.out = append(l.out, syntax.TokenPiece(kind, l.src[l.i:end]))
	l.i = end
}

// lex splits src into tokens and whitespace trivia. Comments are tokens:
// whitespace around them matters as much as around elements.
func lex(src string) []syntax.LexPiece {
	l := &lexer{src: src}
	for l.i < len(src) {
		if piece, n, ok := scan.Whitespace(src, l.i); ok {
			l.out = append(l.out, piece)
			l.i += n
			continue
		}
		rest := src[l.i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest[4:], "-->")
			if end < 0 {
				l.emit(ErrorToken, len(src))
			} else {
				l.emit(CommentToken, l.i+4+end+3)
			}
		case strings.HasPrefix(rest, "<!"):
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				l.emit(ErrorToken, len(src))
			} else {
				l.emit(DoctypeToken, l.i+end+1)
			}
		case strings.HasPrefix(rest, "</") && len(rest) > 2 && isNameStart(rest[2]):
			l.emit(EndTagOpen, l.i+2)
			l.tag(true)
		case rest[0] == '<' && len(rest) > 1 && isNameStart(rest[1]):
			l.emit(TagOpen, l.i+1)
			l.tag(false)
		default:
			l.word()
		}
	}
	return append(l.out, syntax.TokenPiece(EOF, ""))
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return !strings.ContainsRune(" \t\r\n\f\v/>=\"'<", rune(c))
}

func (l *lexer) name() int {
	j := l.i
	for j < len(l.src) && isNameChar(l.src[j]) {
		j++
	}
	return j
}

// word scans text up to the next whitespace or tag.
func (l *lexer) word() {
	j := l.i + 1
	for j < len(l.src) {
		c := l.src[j]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
			break
		}
		if c == '<' && j+1 < len(l.src) && (isNameStart(l.src[j+1]) || l.src[j+1] == '/' || l.src[j+1] == '!') {
			break
		}
		j++
	}
	l.emit(Word, j)
}

// tag scans a tag after its opening bracket, up to and including ">" or
// "/>". The content of raw elements becomes a single token.
func (l *lexer) tag(end bool) {
	tagName := l.src[l.i:l.name()]
	l.emit(TagName, l.i+len(tagName))

	for l.i < len(l.src) {
		if piece, n, ok := scan.Whitespace(l.src, l.i); ok {
			l.out = append(l.out, piece)
			l.i += n
			continue
		}
		rest := l.src[l.i:]
		switch c := rest[0]; {
		case c == '>':
			l.emit(TagClose, l.i+1)
			if !end && isRaw(tagName) {
				l.raw(tagName)
			}
			return
		case strings.HasPrefix(rest, "/>"):
			l.emit(SlashTagClose, l.i+2)
			return
		case c == '<':
			// An unclosed tag; the next tag starts here.
			return
		case c == '=':
			l.emit(Eq, l.i+1)
			l.value()
		case isNameChar(c):
			l.emit(AttrName, l.name())
		default:
			l.emit(ErrorToken, l.i+1)
		}
	}
}

// value scans an attribute value after "=", quoted or not.
func (l *lexer) value() {
	for l.i < len(l.src) {
		piece, n, ok := scan.Whitespace(l.src, l.i)
		if !ok {
			break
		}
		l.out = append(l.out, piece)
		l.i += n
	}
	if l.i >= len(l.src) {
		return
	}
	switch c := l.src[l.i]; c {
	case '"', '\'':
		end := strings.IndexByte(l.src[l.i+1:], c)
		if end < 0 {
			l.emit(ErrorToken, len(l.src))
			return
		}
		l.emit(AttrValue, l.i+1+end+1)
	case '>':
	default:
		j := l.i
		for j < len(l.src) && !strings.ContainsRune(" \t\r\n\f\v>", rune(l.src[j])) {
			j++
		}
		l.emit(AttrValue, j)
	}
}

// raw emits everything up to the matching end tag as one token.
func (l *lexer) raw(tagName string) {
	end := len(l.src)
	for j := l.i; j+2+len(tagName) <= len(l.src); j++ {
		if l.src[j] == '<' && l.src[j+1] == '/' && strings.EqualFold(l.src[j+2:j+2+len(tagName)], tagName) {
			end = j
			break
		}
	}
	if end > l.i {
		l.emit(RawText, end)
	}
}
