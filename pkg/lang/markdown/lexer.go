package markdown

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/syntax"
)

const tabStop = 4

// advance walks the blanks of s from byte i at column col. It returns the
// column and byte offset after them.
func advance(s string, i, col int) (int, int) {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return col, i
		}
	}
	return col, i
}

// strip returns how many leading blank bytes of s fall before column
// limit. A tab that crosses the limit is stripped whole.
func strip(s string, limit int) int {
	col, i := 0, 0
	for i < len(s) && col < limit && (s[i] == ' ' || s[i] == '\t') {
		col, _ = advance(s[:i+1], i, col)
		i++
	}
	return i
}

// isATX reports whether s opens with an ATX heading marker.
func isATX(s string) bool {
	col, i := advance(s, 0, 0)
	if col > 3 {
		return false
	}
	n := 0
	for i+n < len(s) && s[i+n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return i+n == len(s) || s[i+n] == ' ' || s[i+n] == '\t'
}

func fenceRun(s string) (byte, int, int, bool) {
	col, i := advance(s, 0, 0)
	if col > 3 || i >= len(s) || (s[i] != '`' && s[i] != '~') {
		return 0, 0, 0, false
	}
	char := s[i]
	n := 0
	for i+n < len(s) && s[i+n] == char {
		n++
	}
	return char, n, i + n, n >= 3
}

// openFence reports whether s opens a fenced code block.
func openFence(s string) (byte, int, bool) {
	char, n, end, ok := fenceRun(s)
	if !ok || (char == '`' && strings.IndexByte(s[end:], '`') >= 0) {
		return 0, 0, false
	}
	return char, n, true
}

// closesFence reports whether s closes a fence of n chars.
func closesFence(s string, char byte, n int) bool {
	c, m, end, ok := fenceRun(s)
	return ok && c == char && m >= n && strings.TrimSpace(s[end:]) == ""
}

// marker is a list item marker at the start of a line.
type marker struct {
	indent  int // bytes of whitespace before the marker
	width   int // bytes of the marker
	delim   byte
	ordered bool
	// content is the column the item content starts at.
	content int
	// gap is the number of blank bytes between marker and content.
	gap   int
	empty bool
}

func parseMarker(s string) (marker, bool) {
	col, i := advance(s, 0, 0)
	if col > 3 || i >= len(s) {
		return marker{}, false
	}
	m := marker{indent: i}
	switch c := s[i]; {
	case c == '-' || c == '+' || c == '*':
		m.width, m.delim = 1, c
	case c >= '0' && c <= '9':
		j := i
		for j < len(s) && j-i < 9 && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j >= len(s) || (s[j] != '.' && s[j] != ')') {
			return marker{}, false
		}
		m.width, m.delim, m.ordered = j-i+1, s[j], true
	default:
		return marker{}, false
	}

	pos := i + m.width
	markerEnd := col + m.width
	if pos < len(s) && s[pos] != ' ' && s[pos] != '\t' {
		return marker{}, false
	}
	after, j := advance(s, pos, markerEnd)
	switch {
	case j == len(s):
		m.empty = true
		m.content = markerEnd + 1
		m.gap = len(s) - pos
	case after-markerEnd > 4:
		// Indented code inside the item: the content starts one column
		// after the marker.
		m.content = markerEnd + 1
		m.gap = 1
	default:
		m.content = after
		m.gap = j - pos
	}
	return m, true
}

func (m marker) sameList(o marker) bool { return m.ordered == o.ordered && m.delim == o.delim }

// lexedBlock records which tokens make up a top-level block.
type lexedBlock struct {
	kind     syntax.RawKind
	from, to int
	// items are the token indexes list items start at.
	items []int
}

type lexer struct {
	d      *document
	out    []syntax.LexPiece
	tokens int
}

func (l *lexer) token(kind syntax.RawKind, s string) {
	l.out = append(l.out, syntax.TokenPiece(kind, s))
	l.tokens++
}

func (l *lexer) blanks(s string) {
	if s != "" {
		l.out = append(l.out, syntax.TriviaPieceOf(syntax.TriviaWhitespace, s))
	}
}

func (l *lexer) newline(i int) {
	ln := l.d.lines[i]
	if ln.next > ln.end {
		l.out = append(l.out, syntax.TriviaPieceOf(syntax.TriviaNewline, l.d.src[ln.end:ln.next]))
	}
}

func (l *lexer) blankLine(i int) {
	l.blanks(l.d.text(i))
	l.newline(i)
}

// lex turns the document into line tokens: every line of a block becomes
// one token, with the indentation, trailing blanks and line break around
// it as trivia.
func lex(d *document, spans []span) ([]syntax.LexPiece, []lexedBlock) {
	l := &lexer{d: d}
	if strings.HasPrefix(d.src, bom) {
		l.blanks(bom)
	}

	var blocks []lexedBlock
	next := 0
	for _, s := range spans {
		for ; next < s.first; next++ {
			l.blankLine(next)
		}
		b := lexedBlock{kind: s.kind, from: l.tokens}
		switch {
		case s.kind == Heading:
			l.heading(s.first)
		case s.kind == Paragraph || s.kind == SetextHeading:
			for i := s.first; i <= s.last; i++ {
				l.textLine(i)
			}
		case s.kind == List:
			items, ok := l.list(s.first, s.last)
			if !ok {
				b.kind = Raw
				l.verbatim(s.first, s.last)
			}
			b.items = items
		default:
			l.verbatim(s.first, s.last)
		}
		b.to = l.tokens
		blocks = append(blocks, b)
		next = s.last + 1
	}
	for ; next < len(d.lines); next++ {
		l.blankLine(next)
	}

	l.token(EOF, "")
	return l.out, blocks
}

// verbatim keeps each line whole, indentation included.
func (l *lexer) verbatim(first, last int) {
	for i := first; i <= last; i++ {
		if l.d.blank(i) {
			l.blankLine(i)
			continue
		}
		l.token(Line, l.d.text(i))
		l.newline(i)
	}
}

// textLine lexes a paragraph line: its indentation and trailing blanks
// are trivia.
func (l *lexer) textLine(i int) {
	if l.d.blank(i) {
		l.blankLine(i)
		return
	}
	s := l.d.text(i)
	_, lead := advance(s, 0, 0)
	l.body(s[:lead], s[lead:], false)
	l.newline(i)
}

func (l *lexer) body(lead, s string, keepTrailing bool) {
	l.blanks(lead)
	if keepTrailing {
		l.token(Line, s)
		return
	}
	content := strings.TrimRight(s, " \t")
	l.token(Line, content)
	l.blanks(s[len(content):])
}

// heading splits an ATX heading into its marker, its content and the
// optional closing sequence.
func (l *lexer) heading(i int) {
	s := l.d.text(i)
	if !isATX(s) {
		l.verbatim(i, i)
		return
	}
	_, lead := advance(s, 0, 0)
	l.blanks(s[:lead])
	hashes := lead
	for hashes < len(s) && s[hashes] == '#' {
		hashes++
	}
	l.token(HeadingMarker, s[lead:hashes])

	inner := strings.TrimRight(s, " \t")
	_, start := advance(s, hashes, 0)
	start = min(start, len(inner))
	end := len(inner)
	closeStart := end
	if trimmed := strings.TrimRight(inner, "#"); len(trimmed) < len(inner) && len(trimmed) >= start {
		if len(trimmed) == start || trimmed[len(trimmed)-1] == ' ' || trimmed[len(trimmed)-1] == '\t' {
			closeStart = len(trimmed)
			end = len(strings.TrimRight(trimmed, " \t"))
		}
	}
	end = max(end, start)

	l.blanks(s[hashes:start])
	if end > start {
		l.token(Line, s[start:end])
	}
	l.blanks(s[end:closeStart])
	if closeStart < len(inner) {
		l.token(HeadingClose, s[closeStart:len(inner)])
	}
	l.blanks(s[len(inner):])
	l.newline(i)
}

// list lexes list items: a marker token, then one token per line with the
// indentation up to the item's content column stripped. Lines inside a
// fenced code block keep their trailing blanks.
func (l *lexer) list(first, last int) ([]int, bool) {
	d := l.d
	head, ok := parseMarker(d.text(first))
	if !ok {
		return nil, false
	}

	var (
		items []int
		cur   marker
		fence struct {
			char byte
			n    int
			open bool
		}
	)
	track := func(body string) bool {
		if fence.open {
			if closesFence(body, fence.char, fence.n) {
				fence.open = false
				return false
			}
			return true
		}
		fence.char, fence.n, fence.open = openFence(body)
		return false
	}

	for i := first; i <= last; i++ {
		if d.blank(i) {
			l.blankLine(i)
			continue
		}
		s := d.text(i)
		m, isItem := parseMarker(s)
		if isItem && !fence.open && (len(items) == 0 || (m.sameList(head) && d.indent(i) < cur.content)) {
			items = append(items, l.tokens)
			cur = m
			l.blanks(s[:m.indent])
			pos := m.indent + m.width
			l.token(ListMarker, s[m.indent:pos])
			if m.empty {
				l.blanks(s[pos:])
			} else {
				body := s[pos+m.gap:]
				l.body(s[pos:pos+m.gap], body, track(body))
			}
			l.newline(i)
			continue
		}

		k := strip(s, cur.content)
		body := s[k:]
		l.body(s[:k], body, track(body))
		l.newline(i)
	}
	return items, true
}
