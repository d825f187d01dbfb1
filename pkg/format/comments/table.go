package comments

import (
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

type record struct {
	comment   SourceComment
	decorated *DecoratedComment
	placement Placement
}

// Comments is the side table from nodes to their comments. It also tracks
// which comments have been printed so that none is lost.
type Comments struct {
	root     syntax.Node
	records  []record
	leading  map[syntax.NodeKey][]int
	trailing map[syntax.NodeKey][]int
	dangling map[syntax.NodeKey][]int

	formatted []bool
	journal   []int
}

func newTable(root syntax.Node) *Comments {
	return &Comments{
		root:     root,
		leading:  map[syntax.NodeKey][]int{},
		trailing: map[syntax.NodeKey][]int{},
		dangling: map[syntax.NodeKey][]int{},
	}
}

// Empty returns a table without comments.
func Empty() *Comments {
	return newTable(syntax.Node{})
}

func (c *Comments) add(d *DecoratedComment, p Placement) {
	id := len(c.records)
	c.records = append(c.records, record{comment: d.SourceComment, decorated: d, placement: p})
	c.formatted = append(c.formatted, false)

	switch p.Kind {
	case PlaceLeading:
		c.leading[p.Node.Key()] = append(c.leading[p.Node.Key()], id)
	case PlaceTrailing:
		c.trailing[p.Node.Key()] = append(c.trailing[p.Node.Key()], id)
	case PlaceDangling:
		c.dangling[p.Node.Key()] = append(c.dangling[p.Node.Key()], id)
	case PlaceSkip, PlaceDefault:
	}
}

func (c *Comments) collect(ids []int) []SourceComment {
	if len(ids) == 0 {
		return nil
	}
	out := make([]SourceComment, len(ids))
	for i, id := range ids {
		out[i] = c.records[id].comment
	}
	return out
}

// Len returns the number of comments.
func (c *Comments) Len() int { return len(c.records) }

// All returns every comment in source order.
func (c *Comments) All() []SourceComment {
	out := make([]SourceComment, len(c.records))
	for i, r := range c.records {
		out[i] = r.comment
	}
	return out
}

// Leading returns the comments printed before node.
func (c *Comments) Leading(node syntax.Node) []SourceComment {
	return c.collect(c.leading[node.Key()])
}

// Trailing returns the comments printed after node.
func (c *Comments) Trailing(node syntax.Node) []SourceComment {
	return c.collect(c.trailing[node.Key()])
}

// Dangling returns the comments inside node that belong to no child.
func (c *Comments) Dangling(node syntax.Node) []SourceComment {
	return c.collect(c.dangling[node.Key()])
}

// HasLeading reports whether node has leading comments.
func (c *Comments) HasLeading(node syntax.Node) bool { return len(c.leading[node.Key()]) > 0 }

// HasTrailing reports whether node has trailing comments.
func (c *Comments) HasTrailing(node syntax.Node) bool { return len(c.trailing[node.Key()]) > 0 }

// HasDangling reports whether node has dangling comments.
func (c *Comments) HasDangling(node syntax.Node) bool { return len(c.dangling[node.Key()]) > 0 }

// HasComments reports whether node has comments of any placement.
func (c *Comments) HasComments(node syntax.Node) bool {
	return c.HasLeading(node) || c.HasTrailing(node) || c.HasDangling(node)
}

// HasTrailingLineComment reports whether one of node's trailing comments
// runs to the end of its line.
func (c *Comments) HasTrailingLineComment(node syntax.Node) bool {
	for _, id := range c.trailing[node.Key()] {
		if c.records[id].comment.Kind.IsLine() {
			return true
		}
	}
	return false
}

// IsSuppressed reports whether a leading comment of node is a suppression
// comment.
func (c *Comments) IsSuppressed(node syntax.Node) bool {
	for _, id := range c.leading[node.Key()] {
		if c.records[id].comment.Suppression {
			return true
		}
	}
	return false
}

// IsFormatted reports whether the comment was printed.
func (c *Comments) IsFormatted(id int) bool { return c.formatted[id] }

// MarkFormatted records that the comment was printed.
func (c *Comments) MarkFormatted(id int) {
	if c.formatted[id] {
		return
	}
	c.formatted[id] = true
	c.journal = append(c.journal, id)
}

// MarkRangeFormatted marks every comment inside r as printed. Verbatim
// output uses it for the comments it copies.
func (c *Comments) MarkRangeFormatted(r text.Range) {
	for id, rec := range c.records {
		if r.ContainsRange(rec.comment.Range()) {
			c.MarkFormatted(id)
		}
	}
}

// Checkpoint returns a marker for Rollback.
func (c *Comments) Checkpoint() int { return len(c.journal) }

// Rollback forgets every comment marked since the checkpoint.
func (c *Comments) Rollback(cp int) {
	for _, id := range c.journal[cp:] {
		c.formatted[id] = false
	}
	c.journal = c.journal[:cp]
}

// Unformatted returns the comments not printed yet.
func (c *Comments) Unformatted() []SourceComment {
	var out []SourceComment
	for id, rec := range c.records {
		if !c.formatted[id] {
			out = append(out, rec.comment)
		}
	}
	return out
}

// Placement returns the placement chosen for a comment.
func (c *Comments) Placement(id int) Placement { return c.records[id].placement }

// Decorated returns the decoration of a comment.
func (c *Comments) Decorated(id int) *DecoratedComment { return c.records[id].decorated }
