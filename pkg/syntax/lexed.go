package syntax

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/text"
)

// LexPiece is one item of a lexer's output: a token or a piece of trivia.
type LexPiece struct {
	// Kind is the token kind. It is ignored for trivia.
	Kind RawKind

	// Text is the source text of the piece.
	Text string

	// Trivia is the trivia kind when IsTrivia is set.
	Trivia TriviaPieceKind

	// IsTrivia marks the piece as trivia rather than a token.
	IsTrivia bool
}

// TokenPiece creates a token lex piece.
func TokenPiece(kind RawKind, s string) LexPiece {
	return LexPiece{Kind: kind, Text: s}
}

// TriviaPieceOf creates a trivia lex piece.
func TriviaPieceOf(kind TriviaPieceKind, s string) LexPiece {
	return LexPiece{Text: s, Trivia: kind, IsTrivia: true}
}

// LexedToken is a token with its trivia attached, ready for a TreeBuilder.
type LexedToken struct {
	Kind RawKind

	// Text is the token text without trivia.
	Text string

	Leading  []TriviaPiece
	Trailing []TriviaPiece

	LeadingText  string
	TrailingText string

	// Offset is the absolute offset of the start of the leading trivia.
	Offset text.Size
}

// FullText returns the token text with its trivia.
func (t LexedToken) FullText() string {
	return t.LeadingText + t.Text + t.TrailingText
}

// TrimmedStart returns the absolute offset of the token text.
func (t LexedToken) TrimmedStart() text.Size {
	return t.Offset + text.Len(t.LeadingText)
}

// HasPrecedingNewline reports whether the token starts a line, that is
// whether its leading trivia or the trailing trivia of the previous token
// ended in a line break. The result is only meaningful on tokens returned
// by AttachTrivia.
func (t LexedToken) HasPrecedingNewline(prev *LexedToken) bool {
	for _, p := range t.Leading {
		if p.Kind == TriviaNewline {
			return true
		}
	}
	if prev == nil {
		return false
	}
	n := len(prev.Trailing)
	return n > 0 && prev.Trailing[n-1].Kind == TriviaNewline
}

// AttachTrivia distributes the trivia in a lexer's output over its tokens.
//
// Trivia between two tokens is split after the first line break: the part
// up to and including the line break trails the earlier token, the rest
// leads the later one. A run without a line break leads the later token.
// Trivia before the first token leads it; trivia after the last token
// trails it.
func AttachTrivia(pieces []LexPiece) []LexedToken {
	var (
		tokens  []LexedToken
		pending []LexPiece
		offset  text.Size
	)

	for _, piece := range pieces {
		if piece.IsTrivia {
			pending = append(pending, piece)
			continue
		}

		leadingRun := pending
		if len(tokens) > 0 {
			split := firstNewline(pending)
			if split >= 0 {
				prev := &tokens[len(tokens)-1]
				appendTrailing(prev, pending[:split+1])
				leadingRun = pending[split+1:]
			}
		}

		tok := LexedToken{Kind: piece.Kind, Text: piece.Text}
		tok.Leading, tok.LeadingText = collect(leadingRun)
		tokens = append(tokens, tok)
		pending = pending[:0:0]
	}

	if len(pending) > 0 && len(tokens) > 0 {
		appendTrailing(&tokens[len(tokens)-1], pending)
	}

	for i := range tokens {
		tokens[i].Offset = offset
		offset += text.Len(tokens[i].FullText())
	}

	return tokens
}

func firstNewline(run []LexPiece) int {
	for i, p := range run {
		if p.Trivia == TriviaNewline {
			return i
		}
	}
	return -1
}

func appendTrailing(tok *LexedToken, run []LexPiece) {
	pieces, s := collect(run)
	tok.Trailing = append(tok.Trailing, pieces...)
	tok.TrailingText += s
}

func collect(run []LexPiece) ([]TriviaPiece, string) {
	if len(run) == 0 {
		return nil, ""
	}
	pieces := make([]TriviaPiece, 0, len(run))
	var sb strings.Builder
	for _, p := range run {
		pieces = append(pieces, TriviaPiece{Kind: p.Trivia, Len: text.Len(p.Text)})
		sb.WriteString(p.Text)
	}
	return pieces, sb.String()
}
