package syntax

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/text"
)

// TriviaPieceKind classifies a trivia piece.
type TriviaPieceKind uint8

// Trivia piece kinds.
const (
	// TriviaWhitespace is a run of spaces and tabs (no line breaks).
	TriviaWhitespace TriviaPieceKind = iota

	// TriviaNewline is exactly one line break: "\n", "\r\n" or "\r".
	TriviaNewline

	// TriviaLineComment is a comment ending at the end of the line
	// (the line break itself is a separate Newline piece).
	TriviaLineComment

	// TriviaBlockComment is a delimited comment that may span lines.
	TriviaBlockComment

	// TriviaSkipped is source text the parser skipped during error recovery.
	TriviaSkipped
)

// String returns the kind name.
func (k TriviaPieceKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// IsComment reports whether the kind is a comment.
func (k TriviaPieceKind) IsComment() bool {
	return k == TriviaLineComment || k == TriviaBlockComment
}

// TriviaPiece is the kind and byte length of one piece of trivia. Pieces
// carry no text; the text lives in the owning token.
type TriviaPiece struct {
	Kind TriviaPieceKind
	Len  text.Size
}

// triviaLen sums the lengths of pieces.
func triviaLen(pieces []TriviaPiece) text.Size {
	var n text.Size
	for _, p := range pieces {
		n += p.Len
	}
	return n
}

// Trivia is the leading or trailing trivia of a red token.
type Trivia struct {
	pieces []TriviaPiece
	text   string
	offset text.Size
}

// Len returns the number of pieces.
func (t Trivia) Len() int {
	return len(t.pieces)
}

// IsEmpty reports whether the trivia has no pieces.
func (t Trivia) IsEmpty() bool {
	return len(t.pieces) == 0
}

// Text returns the source text of all pieces.
func (t Trivia) Text() string {
	return t.text
}

// TextRange returns the absolute range covered by the trivia.
func (t Trivia) TextRange() text.Range {
	return text.At(t.offset, text.Len(t.text))
}

// Pieces returns the pieces with their text and absolute ranges.
func (t Trivia) Pieces() []SyntaxTriviaPiece {
	out := make([]SyntaxTriviaPiece, 0, len(t.pieces))
	var rel text.Size
	for _, p := range t.pieces {
		out = append(out, SyntaxTriviaPiece{
			Kind:  p.Kind,
			Text:  t.text[rel : rel+p.Len],
			Range: text.At(t.offset+rel, p.Len),
		})
		rel += p.Len
	}
	return out
}

// HasComments reports whether any piece is a comment.
func (t Trivia) HasComments() bool {
	for _, p := range t.pieces {
		if p.Kind.IsComment() {
			return true
		}
	}
	return false
}

// HasNewline reports whether any piece is a line break.
func (t Trivia) HasNewline() bool {
	for _, p := range t.pieces {
		if p.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// HasSkipped reports whether any piece is skipped source text.
func (t Trivia) HasSkipped() bool {
	for _, p := range t.pieces {
		if p.Kind == TriviaSkipped {
			return true
		}
	}
	return false
}

// SyntaxTriviaPiece is a trivia piece resolved against its token.
type SyntaxTriviaPiece struct {
	Kind  TriviaPieceKind
	Text  string
	Range text.Range
}

// IsComment reports whether the piece is a comment.
func (p SyntaxTriviaPiece) IsComment() bool {
	return p.Kind.IsComment()
}

// IsMultiline reports whether the piece text contains a line break. Only
// block comments and skipped text can.
func (p SyntaxTriviaPiece) IsMultiline() bool {
	return strings.ContainsAny(p.Text, "\n\r")
}
