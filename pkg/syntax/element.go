package syntax

import "github.com/yaklabco/formatkit/pkg/text"

// Element is either a Node or a Token.
type Element struct {
	node  Node
	token Token
}

// NodeElement wraps a node.
func NodeElement(n Node) Element { return Element{node: n} }

// TokenElement wraps a token.
func TokenElement(t Token) Element { return Element{token: t} }

// AsNode returns the node if the element is one.
func (e Element) AsNode() (Node, bool) { return e.node, !e.node.IsZero() }

// AsToken returns the token if the element is one.
func (e Element) AsToken() (Token, bool) { return e.token, !e.token.IsZero() }

// Kind returns the kind of the node or token.
func (e Element) Kind() RawKind {
	if !e.node.IsZero() {
		return e.node.Kind()
	}
	return e.token.Kind()
}

// TextRange returns the full range of the element.
func (e Element) TextRange() text.Range {
	if !e.node.IsZero() {
		return e.node.TextRange()
	}
	return e.token.TextRange()
}

// TextTrimmedRange returns the range without outer trivia.
func (e Element) TextTrimmedRange() text.Range {
	if !e.node.IsZero() {
		return e.node.TextTrimmedRange()
	}
	return e.token.TextTrimmedRange()
}
