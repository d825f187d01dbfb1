// Package comments attaches source comments to syntax nodes.
//
// Build walks a red tree once, decorates every comment with its
// surroundings, asks the language where it belongs and records the result
// in a side table the formatter consults while printing.
package comments

import (
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

// Kind classifies a comment for layout.
type Kind uint8

// Comment kinds.
const (
	// KindLine runs to the end of the line.
	KindLine Kind = iota

	// KindBlock is a delimited comment spanning several lines.
	KindBlock

	// KindInlineBlock is a delimited comment on one line.
	KindInlineBlock
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBlock:
		return "block"
	default:
		return "inlineBlock"
	}
}

// IsLine reports whether the comment runs to the end of its line.
func (k Kind) IsLine() bool { return k == KindLine }

// KindOf returns the kind of a trivia piece by its trivia kind and shape.
// Languages whose comment syntax needs more than that provide their own.
func KindOf(piece syntax.SyntaxTriviaPiece) Kind {
	if piece.Kind == syntax.TriviaLineComment {
		return KindLine
	}
	if piece.IsMultiline() {
		return KindBlock
	}
	return KindInlineBlock
}

// TextPosition is where a comment sits on its line.
type TextPosition uint8

// Text positions.
const (
	// OwnLine comments are the first thing on their line.
	OwnLine TextPosition = iota

	// EndOfLine comments are the last thing on their line.
	EndOfLine

	// SameLine comments have code before and after them on the line.
	SameLine
)

// String returns the position name.
func (p TextPosition) String() string {
	switch p {
	case OwnLine:
		return "ownLine"
	case EndOfLine:
		return "endOfLine"
	default:
		return "sameLine"
	}
}

// SourceComment is a comment as stored in the table.
type SourceComment struct {
	ID          int
	Piece       syntax.SyntaxTriviaPiece
	Kind        Kind
	LinesBefore int
	LinesAfter  int
	Position    TextPosition
	Suppression bool
}

// Text returns the comment text.
func (c SourceComment) Text() string { return c.Piece.Text }

// Range returns the source range of the comment.
func (c SourceComment) Range() text.Range { return c.Piece.Range }

// DecoratedComment is a comment with the context placement rules need.
type DecoratedComment struct {
	SourceComment

	// Enclosing is the deepest node whose trimmed range contains the comment.
	Enclosing syntax.Node

	// Preceding is the last child of Enclosing ending before the comment.
	Preceding syntax.Node

	// Following is the first child of Enclosing starting after the comment.
	Following syntax.Node

	// FollowingToken is the next token when the comment is directly
	// followed by a token of Enclosing rather than a child node.
	FollowingToken syntax.Token

	// Token is the token whose trivia holds the comment.
	Token syntax.Token

	// IsTrailingTrivia is set when the comment came from trailing trivia.
	IsTrailingTrivia bool

	firstInFile bool
	placement   Placement
}

// PlacementKind says where a comment goes.
type PlacementKind uint8

// Placement kinds.
const (
	PlaceDefault PlacementKind = iota
	PlaceLeading
	PlaceTrailing
	PlaceDangling
	PlaceSkip
)

// String returns the placement name.
func (k PlacementKind) String() string {
	switch k {
	case PlaceLeading:
		return "leading"
	case PlaceTrailing:
		return "trailing"
	case PlaceDangling:
		return "dangling"
	case PlaceSkip:
		return "skip"
	default:
		return "default"
	}
}

// Placement is a placement decision: a kind and the node it targets.
type Placement struct {
	Kind PlacementKind
	Node syntax.Node
}

// Default leaves the decision to the default rules.
func Default() Placement { return Placement{} }

// Leading places the comment before node.
func Leading(node syntax.Node) Placement { return Placement{Kind: PlaceLeading, Node: node} }

// Trailing places the comment after node.
func Trailing(node syntax.Node) Placement { return Placement{Kind: PlaceTrailing, Node: node} }

// Dangling places the comment inside node, for its rule to print.
func Dangling(node syntax.Node) Placement { return Placement{Kind: PlaceDangling, Node: node} }

// Style is the comment behaviour of a language.
type Style interface {
	// CommentKind classifies a comment piece.
	CommentKind(piece syntax.SyntaxTriviaPiece) Kind

	// IsSuppression reports whether a comment suppresses formatting of the
	// node it leads.
	IsSuppression(text string) bool

	// IsBogus reports whether nodes of kind hold unparsed source.
	IsBogus(kind syntax.RawKind) bool

	// IsList reports whether nodes of kind are plain lists. Lists never own
	// comments; comments pass through to their elements.
	IsList(kind syntax.RawKind) bool

	// PlaceComment decides where a comment goes. Returning Default falls
	// back to the default rules.
	PlaceComment(c *DecoratedComment) Placement
}

// Rule is one step of a placement chain.
type Rule func(c *DecoratedComment) Placement

// Chain combines rules; the first one returning a non-default placement
// wins.
func Chain(rules ...Rule) Rule {
	return func(c *DecoratedComment) Placement {
		for _, r := range rules {
			if p := r(c); p.Kind != PlaceDefault {
				return p
			}
		}
		return Default()
	}
}
