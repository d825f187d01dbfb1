package syntax

import (
	"github.com/yaklabco/formatkit/pkg/text"
)

// Token is a red cursor over a green token.
type Token struct {
	parent *nodeData
	green  *GreenToken
	offset text.Size
	slot   int
}

// IsZero reports whether t is the zero Token.
func (t Token) IsZero() bool { return t.green == nil }

// Green returns the underlying green token.
func (t Token) Green() *GreenToken { return t.green }

// Kind returns the token kind.
func (t Token) Kind() RawKind { return t.green.kind }

// Parent returns the node holding the token.
func (t Token) Parent() Node { return Node{data: t.parent} }

// IndexInParent returns the slot index of the token in its parent.
func (t Token) IndexInParent() int { return t.slot }

// Text returns the full text including trivia.
func (t Token) Text() string { return t.green.text }

// TextTrimmed returns the token text without trivia.
func (t Token) TextTrimmed() string { return t.green.TextTrimmed() }

// TextRange returns the absolute range including trivia.
func (t Token) TextRange() text.Range {
	return text.At(t.offset, t.green.TextLen())
}

// TextTrimmedRange returns the absolute range of the token text alone.
func (t Token) TextTrimmedRange() text.Range {
	start := t.offset + triviaLen(t.green.leading)
	return text.At(start, text.Len(t.green.TextTrimmed()))
}

// LeadingTrivia returns the trivia before the token text.
func (t Token) LeadingTrivia() Trivia {
	n := triviaLen(t.green.leading)
	return Trivia{pieces: t.green.leading, text: t.green.text[:n], offset: t.offset}
}

// TrailingTrivia returns the trivia after the token text.
func (t Token) TrailingTrivia() Trivia {
	n := triviaLen(t.green.trailing)
	full := text.Len(t.green.text)
	return Trivia{pieces: t.green.trailing, text: t.green.text[full-n:], offset: t.offset + full - n}
}

// HasLeadingComments reports whether the leading trivia has a comment.
func (t Token) HasLeadingComments() bool { return t.LeadingTrivia().HasComments() }

// HasTrailingComments reports whether the trailing trivia has a comment.
func (t Token) HasTrailingComments() bool { return t.TrailingTrivia().HasComments() }

// HasSkippedTrivia reports whether either side holds skipped text.
func (t Token) HasSkippedTrivia() bool {
	return t.LeadingTrivia().HasSkipped() || t.TrailingTrivia().HasSkipped()
}

// NextToken returns the token after t in document order.
func (t Token) NextToken() (Token, bool) {
	d := t.parent
	slot := t.slot
	for d != nil {
		node := Node{data: d}
		for i := slot + 1; i < len(d.green.slots); i++ {
			s := d.green.slots[i]
			switch e := s.elem.(type) {
			case *GreenToken:
				return node.childToken(i, e, s.rel), true
			case *GreenNode:
				if tok, ok := node.childNode(i, e, s.rel).FirstToken(); ok {
					return tok, true
				}
			}
		}
		slot = d.slot
		d = d.parent
	}
	return Token{}, false
}

// PrevToken returns the token before t in document order.
func (t Token) PrevToken() (Token, bool) {
	d := t.parent
	slot := t.slot
	for d != nil {
		node := Node{data: d}
		for i := slot - 1; i >= 0; i-- {
			s := d.green.slots[i]
			switch e := s.elem.(type) {
			case *GreenToken:
				return node.childToken(i, e, s.rel), true
			case *GreenNode:
				if tok, ok := node.childNode(i, e, s.rel).LastToken(); ok {
					return tok, true
				}
			}
		}
		slot = d.slot
		d = d.parent
	}
	return Token{}, false
}
