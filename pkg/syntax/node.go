package syntax

import (
	"iter"

	"github.com/yaklabco/formatkit/pkg/text"
)

type nodeData struct {
	green  *GreenNode
	parent *nodeData
	offset text.Size
	slot   int
	depth  int
}

// Node is a red cursor over a green node: the green node plus its parent,
// its absolute offset and its slot in the parent. Nodes are cheap values
// created on demand while walking; the zero Node is "no node".
type Node struct {
	data *nodeData
}

// NodeKey identifies a node position in one tree. Two cursors created by
// different walks over the same tree have equal keys when they point at
// the same node.
type NodeKey struct {
	green  *GreenNode
	offset text.Size
	depth  int
	slot   int
}

// Offset returns the absolute start offset of the keyed node.
func (k NodeKey) Offset() text.Size { return k.offset }

// NewRoot creates the root cursor of a green tree.
func NewRoot(green *GreenNode) Node {
	return Node{data: &nodeData{green: green}}
}

// IsZero reports whether n is the zero Node.
func (n Node) IsZero() bool { return n.data == nil }

// Key returns the identity of the node position.
func (n Node) Key() NodeKey {
	if n.data == nil {
		return NodeKey{}
	}
	return NodeKey{green: n.data.green, offset: n.data.offset, depth: n.data.depth, slot: n.data.slot}
}

// Green returns the underlying green node.
func (n Node) Green() *GreenNode { return n.data.green }

// Kind returns the node kind.
func (n Node) Kind() RawKind { return n.data.green.kind }

// Parent returns the parent node, or the zero Node for the root.
func (n Node) Parent() Node {
	if n.data.parent == nil {
		return Node{}
	}
	return Node{data: n.data.parent}
}

// Root returns the root of the tree.
func (n Node) Root() Node {
	d := n.data
	for d.parent != nil {
		d = d.parent
	}
	return Node{data: d}
}

// Ancestors yields the node itself, then its parent, up to the root.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for d := n.data; d != nil; d = d.parent {
			if !yield(Node{data: d}) {
				return
			}
		}
	}
}

// SlotCount returns the number of child slots, including empty ones.
func (n Node) SlotCount() int { return len(n.data.green.slots) }

// Slot returns the element in slot i. ok is false for an empty slot.
func (n Node) Slot(i int) (Element, bool) {
	s := n.data.green.slots[i]
	switch e := s.elem.(type) {
	case *GreenNode:
		return Element{node: n.childNode(i, e, s.rel)}, true
	case *GreenToken:
		return Element{token: n.childToken(i, e, s.rel)}, true
	default:
		return Element{}, false
	}
}

// Children returns the child nodes, skipping tokens and empty slots.
func (n Node) Children() []Node {
	var out []Node
	for i, s := range n.data.green.slots {
		if g, ok := s.elem.(*GreenNode); ok {
			out = append(out, n.childNode(i, g, s.rel))
		}
	}
	return out
}

// ChildrenWithTokens returns the child nodes and tokens in order.
func (n Node) ChildrenWithTokens() []Element {
	out := make([]Element, 0, len(n.data.green.slots))
	for i := range n.data.green.slots {
		if e, ok := n.Slot(i); ok {
			out = append(out, e)
		}
	}
	return out
}

// IndexInParent returns the slot index of the node in its parent.
func (n Node) IndexInParent() int { return n.data.slot }

// NextSibling returns the next child node of the parent.
func (n Node) NextSibling() (Node, bool) {
	p := n.data.parent
	if p == nil {
		return Node{}, false
	}
	parent := Node{data: p}
	for i := n.data.slot + 1; i < len(p.green.slots); i++ {
		s := p.green.slots[i]
		if g, ok := s.elem.(*GreenNode); ok {
			return parent.childNode(i, g, s.rel), true
		}
	}
	return Node{}, false
}

// PrevSibling returns the previous child node of the parent.
func (n Node) PrevSibling() (Node, bool) {
	p := n.data.parent
	if p == nil {
		return Node{}, false
	}
	parent := Node{data: p}
	for i := n.data.slot - 1; i >= 0; i-- {
		s := p.green.slots[i]
		if g, ok := s.elem.(*GreenNode); ok {
			return parent.childNode(i, g, s.rel), true
		}
	}
	return Node{}, false
}

// FirstToken returns the first token of the subtree.
func (n Node) FirstToken() (Token, bool) {
	for i, s := range n.data.green.slots {
		switch e := s.elem.(type) {
		case *GreenToken:
			return n.childToken(i, e, s.rel), true
		case *GreenNode:
			if tok, ok := n.childNode(i, e, s.rel).FirstToken(); ok {
				return tok, true
			}
		}
	}
	return Token{}, false
}

// LastToken returns the last token of the subtree.
func (n Node) LastToken() (Token, bool) {
	slots := n.data.green.slots
	for i := len(slots) - 1; i >= 0; i-- {
		s := slots[i]
		switch e := s.elem.(type) {
		case *GreenToken:
			return n.childToken(i, e, s.rel), true
		case *GreenNode:
			if tok, ok := n.childNode(i, e, s.rel).LastToken(); ok {
				return tok, true
			}
		}
	}
	return Token{}, false
}

// TextRange returns the absolute range of the node including all trivia.
func (n Node) TextRange() text.Range {
	return text.At(n.data.offset, n.data.green.textLen)
}

// TextTrimmedRange returns the range without the leading trivia of the
// first token and the trailing trivia of the last token.
func (n Node) TextTrimmedRange() text.Range {
	first, ok := n.FirstToken()
	if !ok {
		return text.Empty(n.data.offset)
	}
	last, _ := n.LastToken()
	start := first.TextTrimmedRange().Start
	end := last.TextTrimmedRange().End
	if end < start {
		end = start
	}
	return text.NewRange(start, end)
}

// Text returns the full source text of the node.
func (n Node) Text() string { return n.data.green.Text() }

// TextTrimmed returns the source text without outer trivia.
func (n Node) TextTrimmed() string {
	r := n.TextTrimmedRange()
	return n.Text()[r.Start-n.data.offset : r.End-n.data.offset]
}

// TokenAtOffset returns the token whose full range contains off.
func (n Node) TokenAtOffset(off text.Size) (Token, bool) {
	if !n.TextRange().Contains(off) {
		return Token{}, false
	}
	cur := n
	for {
		child, ok := cur.ChildAtOffset(off)
		if !ok {
			return Token{}, false
		}
		if tok, ok := child.AsToken(); ok {
			return tok, true
		}
		cur, _ = child.AsNode()
	}
}

// ChildAtOffset returns the child element whose range contains off.
func (n Node) ChildAtOffset(off text.Size) (Element, bool) {
	for i, s := range n.data.green.slots {
		if s.elem == nil {
			continue
		}
		r := text.At(n.data.offset+s.rel, s.elem.TextLen())
		if r.Contains(off) {
			return n.Slot(i)
		}
	}
	return Element{}, false
}

// WalkEventKind says what a WalkEvent reports.
type WalkEventKind uint8

// Walk event kinds.
const (
	WalkEnter WalkEventKind = iota
	WalkLeave
	WalkToken
)

// WalkEvent is one step of a preorder walk: entering a node, leaving it,
// or visiting a token.
type WalkEvent struct {
	Kind  WalkEventKind
	Node  Node
	Token Token
}

// Preorder walks the subtree in document order.
func (n Node) Preorder() iter.Seq[WalkEvent] {
	return func(yield func(WalkEvent) bool) {
		n.walk(yield)
	}
}

func (n Node) walk(yield func(WalkEvent) bool) bool {
	if !yield(WalkEvent{Kind: WalkEnter, Node: n}) {
		return false
	}
	for i, s := range n.data.green.slots {
		switch e := s.elem.(type) {
		case *GreenNode:
			if !n.childNode(i, e, s.rel).walk(yield) {
				return false
			}
		case *GreenToken:
			if !yield(WalkEvent{Kind: WalkToken, Token: n.childToken(i, e, s.rel)}) {
				return false
			}
		}
	}
	return yield(WalkEvent{Kind: WalkLeave, Node: n})
}

// Descendants yields the node and every node below it in preorder.
func (n Node) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for ev := range n.Preorder() {
			if ev.Kind == WalkEnter && !yield(ev.Node) {
				return
			}
		}
	}
}

// DescendantTokens yields every token of the subtree in order.
func (n Node) DescendantTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for ev := range n.Preorder() {
			if ev.Kind == WalkToken && !yield(ev.Token) {
				return
			}
		}
	}
}

// ReplaceChild replaces slot i with green and returns the root of the new
// tree. The original tree is unchanged.
func (n Node) ReplaceChild(i int, green GreenElement) Node {
	updated := n.data.green.ReplaceChild(i, green)
	d := n.data
	for d.parent != nil {
		updated = d.parent.green.ReplaceChild(d.slot, updated)
		d = d.parent
	}
	return NewRoot(updated)
}

func (n Node) childNode(slot int, g *GreenNode, rel text.Size) Node {
	return Node{data: &nodeData{
		green:  g,
		parent: n.data,
		offset: n.data.offset + rel,
		slot:   slot,
		depth:  n.data.depth + 1,
	}}
}

func (n Node) childToken(slot int, g *GreenToken, rel text.Size) Token {
	return Token{parent: n.data, green: g, offset: n.data.offset + rel, slot: slot}
}
