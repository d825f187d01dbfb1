package syntax

import (
	"gitlab.com/tozd/go/errors"
)

// ErrUnbalancedBuilder is returned by Finish when StartNode and FinishNode
// calls do not pair up, or when the builder does not hold exactly one root.
var ErrUnbalancedBuilder = errors.Base("unbalanced tree builder")

// Checkpoint marks a position in the builder so that a node can later be
// started retroactively around the children added since.
type Checkpoint int

type builderFrame struct {
	kind  RawKind
	first int
}

// TreeBuilder assembles a green tree bottom-up. Parsers call StartNode,
// Token and FinishNode in document order; the cost is linear in the number
// of elements.
type TreeBuilder struct {
	cache    *NodeCache
	parents  []builderFrame
	children []GreenElement
}

// NewTreeBuilder creates a builder. A nil cache disables interning.
func NewTreeBuilder(cache *NodeCache) *TreeBuilder {
	return &TreeBuilder{cache: cache}
}

// StartNode opens a node of the given kind.
func (b *TreeBuilder) StartNode(kind RawKind) {
	b.parents = append(b.parents, builderFrame{kind: kind, first: len(b.children)})
}

// Checkpoint returns the current position.
func (b *TreeBuilder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt opens a node whose first child is the element added right
// after the checkpoint was taken.
func (b *TreeBuilder) StartNodeAt(cp Checkpoint, kind RawKind) {
	b.parents = append(b.parents, builderFrame{kind: kind, first: int(cp)})
}

// Token adds a token to the current node.
func (b *TreeBuilder) Token(kind RawKind, full string, leading, trailing []TriviaPiece) {
	var tok *GreenToken
	if b.cache != nil {
		tok = b.cache.Token(kind, full, leading, trailing)
	} else {
		tok = NewToken(kind, full, leading, trailing)
	}
	b.children = append(b.children, tok)
}

// Lexed adds a token produced by AttachTrivia.
func (b *TreeBuilder) Lexed(tok LexedToken) {
	b.Token(tok.Kind, tok.FullText(), tok.Leading, tok.Trailing)
}

// Missing adds an empty slot for an absent optional child.
func (b *TreeBuilder) Missing() {
	b.children = append(b.children, nil)
}

// FinishNode closes the innermost open node.
func (b *TreeBuilder) FinishNode() {
	if len(b.parents) == 0 {
		panic("syntax: FinishNode without StartNode")
	}
	frame := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	kids := make([]GreenElement, len(b.children)-frame.first)
	copy(kids, b.children[frame.first:])
	b.children = b.children[:frame.first]

	var node *GreenNode
	if b.cache != nil {
		node = b.cache.Node(frame.kind, kids)
	} else {
		node = NewNode(frame.kind, kids)
	}
	b.children = append(b.children, node)
}

// Finish returns the root node.
func (b *TreeBuilder) Finish() (*GreenNode, error) {
	if len(b.parents) != 0 {
		return nil, errors.WithDetails(ErrUnbalancedBuilder, "open", len(b.parents))
	}
	if len(b.children) != 1 {
		return nil, errors.WithDetails(ErrUnbalancedBuilder, "roots", len(b.children))
	}
	root, ok := b.children[0].(*GreenNode)
	if !ok {
		return nil, errors.WithDetails(ErrUnbalancedBuilder, "reason", "root is a token")
	}
	return root, nil
}
