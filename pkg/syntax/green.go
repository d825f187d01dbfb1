package syntax

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/yaklabco/formatkit/pkg/text"
)

// RawKind is a language-defined node or token kind. The syntax package
// attaches no meaning to kind values.
type RawKind uint16

// GreenElement is a green node or a green token.
type GreenElement interface {
	Kind() RawKind
	TextLen() text.Size
	Hash() uint64
	writeText(sb *strings.Builder)
	isGreen()
}

// GreenToken is an immutable token: its text plus leading and trailing
// trivia. The stored text is the full text, trivia included.
type GreenToken struct {
	kind     RawKind
	text     string
	leading  []TriviaPiece
	trailing []TriviaPiece
	hash     uint64
}

// NewToken creates a green token. full is the complete text of the token
// including its trivia; the pieces describe how many bytes at the start
// and end of full are trivia. It panics when the trivia is longer than the
// text, which is a bug in the lexer.
func NewToken(kind RawKind, full string, leading, trailing []TriviaPiece) *GreenToken {
	if triviaLen(leading)+triviaLen(trailing) > text.Len(full) {
		panic(fmt.Sprintf("syntax: trivia of token %q exceeds its text", full))
	}
	return &GreenToken{
		kind:     kind,
		text:     full,
		leading:  leading,
		trailing: trailing,
		hash:     tokenHash(kind, full, leading, trailing),
	}
}

// Kind returns the token kind.
func (t *GreenToken) Kind() RawKind { return t.kind }

// TextLen returns the full length including trivia.
func (t *GreenToken) TextLen() text.Size { return text.Len(t.text) }

// Hash returns the content hash.
func (t *GreenToken) Hash() uint64 { return t.hash }

// Text returns the full text including trivia.
func (t *GreenToken) Text() string { return t.text }

// LeadingTrivia returns the leading pieces.
func (t *GreenToken) LeadingTrivia() []TriviaPiece { return t.leading }

// TrailingTrivia returns the trailing pieces.
func (t *GreenToken) TrailingTrivia() []TriviaPiece { return t.trailing }

// TextTrimmed returns the token text without trivia.
func (t *GreenToken) TextTrimmed() string {
	start := triviaLen(t.leading)
	end := text.Len(t.text) - triviaLen(t.trailing)
	return t.text[start:end]
}

func (t *GreenToken) equal(o *GreenToken) bool {
	return t.kind == o.kind && t.text == o.text &&
		piecesEqual(t.leading, o.leading) && piecesEqual(t.trailing, o.trailing)
}

func (t *GreenToken) writeText(sb *strings.Builder) { sb.WriteString(t.text) }

func (*GreenToken) isGreen() {}

// greenSlot is a child position. A nil element is an empty slot, used for
// optional children that are absent.
type greenSlot struct {
	rel  text.Size
	elem GreenElement
}

// GreenNode is an immutable interior node.
type GreenNode struct {
	kind    RawKind
	textLen text.Size
	slots   []greenSlot
	hash    uint64
}

// NewNode creates a green node. Nil children are empty slots.
func NewNode(kind RawKind, children []GreenElement) *GreenNode {
	n := &GreenNode{
		kind:  kind,
		slots: make([]greenSlot, len(children)),
	}

	var rel text.Size
	for i, child := range children {
		if isNilElement(child) {
			n.slots[i] = greenSlot{rel: rel}
			continue
		}
		n.slots[i] = greenSlot{rel: rel, elem: child}
		rel += child.TextLen()
	}
	n.textLen = rel
	n.hash = nodeHash(kind, children)

	return n
}

// Kind returns the node kind.
func (n *GreenNode) Kind() RawKind { return n.kind }

// TextLen returns the sum of the children's lengths.
func (n *GreenNode) TextLen() text.Size { return n.textLen }

// Hash returns the content hash.
func (n *GreenNode) Hash() uint64 { return n.hash }

// SlotCount returns the number of child slots, including empty ones.
func (n *GreenNode) SlotCount() int { return len(n.slots) }

// Slot returns the child at slot i and its offset relative to the node
// start. The element is nil for an empty slot.
func (n *GreenNode) Slot(i int) (GreenElement, text.Size) {
	s := n.slots[i]
	return s.elem, s.rel
}

// Children returns the non-empty children in order.
func (n *GreenNode) Children() []GreenElement {
	out := make([]GreenElement, 0, len(n.slots))
	for _, s := range n.slots {
		if s.elem != nil {
			out = append(out, s.elem)
		}
	}
	return out
}

// Text returns the full source text of the subtree.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(n.textLen.Int())
	n.writeText(&sb)
	return sb.String()
}

// ReplaceChild returns a new node with slot i replaced. Untouched siblings
// are shared with the receiver. A nil child empties the slot.
func (n *GreenNode) ReplaceChild(i int, child GreenElement) *GreenNode {
	children := make([]GreenElement, len(n.slots))
	for j, s := range n.slots {
		children[j] = s.elem
	}
	children[i] = child
	return NewNode(n.kind, children)
}

func (n *GreenNode) equal(o *GreenNode) bool {
	if n.kind != o.kind || n.textLen != o.textLen || len(n.slots) != len(o.slots) {
		return false
	}
	for i := range n.slots {
		if n.slots[i].elem != o.slots[i].elem {
			return false
		}
	}
	return true
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, s := range n.slots {
		if s.elem != nil {
			s.elem.writeText(sb)
		}
	}
}

func (*GreenNode) isGreen() {}

func isNilElement(e GreenElement) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *GreenNode:
		return v == nil
	case *GreenToken:
		return v == nil
	default:
		return false
	}
}

func piecesEqual(a, b []TriviaPiece) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func tokenHash(kind RawKind, full string, leading, trailing []TriviaPiece) uint64 {
	var buf [8]byte
	d := xxhash.New()
	binary.LittleEndian.PutUint16(buf[:2], uint16(kind))
	_, _ = d.Write(buf[:2])
	_, _ = d.WriteString(full)
	for _, run := range [][]TriviaPiece{leading, trailing} {
		binary.LittleEndian.PutUint32(buf[:4], uint32(len(run)))
		_, _ = d.Write(buf[:4])
		for _, p := range run {
			buf[0] = byte(p.Kind)
			binary.LittleEndian.PutUint32(buf[1:5], uint32(p.Len))
			_, _ = d.Write(buf[:5])
		}
	}
	return d.Sum64()
}

func nodeHash(kind RawKind, children []GreenElement) uint64 {
	var buf [8]byte
	d := xxhash.New()
	binary.LittleEndian.PutUint16(buf[:2], uint16(kind))
	_, _ = d.Write(buf[:2])
	for _, child := range children {
		var h uint64
		if !isNilElement(child) {
			h = child.Hash()
		}
		binary.LittleEndian.PutUint64(buf[:], h)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
