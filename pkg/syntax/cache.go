package syntax

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of tokens and small nodes a NodeCache
// keeps by default.
const DefaultCacheSize = 16 * 1024

// maxInternedChildren bounds the nodes the cache interns. Larger nodes are
// rarely identical and would only churn the cache.
const maxInternedChildren = 3

// NodeCache interns green tokens and small green nodes by content so that
// identical subtrees share storage. It is safe for concurrent use; the
// underlying LRU caches hold their own locks.
type NodeCache struct {
	tokens *lru.Cache[uint64, *GreenToken]
	nodes  *lru.Cache[uint64, *GreenNode]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewNodeCache creates a cache holding up to size tokens and size nodes.
// A non-positive size selects DefaultCacheSize.
func NewNodeCache(size int) *NodeCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	tokens, err := lru.New[uint64, *GreenToken](size)
	if err != nil {
		panic(err)
	}
	nodes, err := lru.New[uint64, *GreenNode](size)
	if err != nil {
		panic(err)
	}
	return &NodeCache{tokens: tokens, nodes: nodes}
}

// Token returns an interned token with the given content.
func (c *NodeCache) Token(kind RawKind, full string, leading, trailing []TriviaPiece) *GreenToken {
	tok := NewToken(kind, full, leading, trailing)
	if existing, ok := c.tokens.Get(tok.hash); ok && existing.equal(tok) {
		c.hits.Add(1)
		return existing
	}
	c.misses.Add(1)
	c.tokens.Add(tok.hash, tok)
	return tok
}

// Node returns a node with the given children, interned when it is small.
func (c *NodeCache) Node(kind RawKind, children []GreenElement) *GreenNode {
	node := NewNode(kind, children)
	if len(children) > maxInternedChildren {
		return node
	}
	if existing, ok := c.nodes.Get(node.hash); ok && existing.equal(node) {
		c.hits.Add(1)
		return existing
	}
	c.misses.Add(1)
	c.nodes.Add(node.hash, node)
	return node
}

// Stats returns the number of cache hits and misses so far.
func (c *NodeCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
