package json

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

var rules = newRules()

func newRules() format.RuleTable {
	t := make(format.RuleTable, kindCount)
	t[Root] = formatRoot
	t[Object] = formatObject
	t[MemberList] = formatMemberList
	t[Member] = formatMember
	t[Array] = formatArray
	t[ElementList] = formatElementList
	t[StringValue] = formatLiteral
	t[NumberValue] = formatLiteral
	t[BooleanValue] = formatLiteral
	t[NullValue] = formatLiteral
	t[Bogus] = format.FormatBogus
	t[BogusValue] = format.FormatBogus
	return t
}

func formatRoot(n syntax.Node, f *format.Formatter) error {
	nodes := n.Children()
	if len(nodes) == 0 {
		return nil
	}
	return f.Write(format.JoinNodesWithHardline(nodes), format.HardLineBreak())
}

func formatLiteral(n syntax.Node, f *format.Formatter) error {
	tok, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	return f.Write(format.Token(tok))
}

func formatMember(n syntax.Node, f *format.Formatter) error {
	name, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	colon, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	value, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	return f.Write(format.Token(name), format.Token(colon), format.Space(), format.Node(value))
}

// container holds the pieces shared by objects and arrays.
type container struct {
	open, close syntax.Token
	list        syntax.Node
}

func splitContainer(n syntax.Node) (container, error) {
	open, err := format.RequiredToken(n, 0)
	if err != nil {
		return container{}, err
	}
	list, err := format.Required(n, 1)
	if err != nil {
		return container{}, err
	}
	closing, err := format.RequiredToken(n, 2)
	if err != nil {
		return container{}, err
	}
	return container{open: open, close: closing, list: list}, nil
}

func formatObject(n syntax.Node, f *format.Formatter) error {
	c, err := splitContainer(n)
	if err != nil {
		return err
	}
	if len(c.list.Children()) == 0 {
		return f.Write(format.Token(c.open), format.Node(c.list), format.DanglingComments(n, format.DanglingBlock), format.Token(c.close))
	}

	// An object the author broke after "{" stays broken.
	expand := newlineAfter(c.open)
	body := format.SoftBlockIndentWithMaybeSpace(f.Options().BracketSpacing, format.Node(c.list))
	return f.Write(format.Token(c.open), format.Group(body).ShouldExpand(expand), format.Token(c.close))
}

func formatArray(n syntax.Node, f *format.Formatter) error {
	c, err := splitContainer(n)
	if err != nil {
		return err
	}
	if len(c.list.Children()) == 0 {
		return f.Write(format.Token(c.open), format.Node(c.list), format.DanglingComments(n, format.DanglingBlock), format.Token(c.close))
	}
	return f.Write(format.Token(c.open), format.Group(format.SoftBlockIndent(format.Node(c.list))), format.Token(c.close))
}

func newlineAfter(tok syntax.Token) bool {
	if tok.TrailingTrivia().HasNewline() {
		return true
	}
	next, ok := tok.NextToken()
	return ok && next.LeadingTrivia().HasNewline()
}

func trailingComma(f *format.Formatter) bool {
	return f.Options().TrailingCommas != options.TrailingCommasNone
}

func formatMemberList(n syntax.Node, f *format.Formatter) error {
	return f.Write(format.Separated(format.SeparatedItems(n, Comma), ",", trailingComma(f)))
}

// formatElementList packs arrays of numbers with Fill and puts any other
// elements one per line when they don't fit.
func formatElementList(n syntax.Node, f *format.Formatter) error {
	items := format.SeparatedItems(n, Comma)
	for _, it := range items {
		if it.Node.Kind() != NumberValue || f.Comments().HasComments(it.Node) {
			return f.Write(format.Separated(items, ",", trailingComma(f)))
		}
	}
	return f.Write(format.SeparatedFill(items, ",", trailingComma(f)))
}
