package js

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// minChainCalls is the number of calls from which a chain like
// a.b().c().d() is laid out one call per line when it breaks.
const minChainCalls = 3

// chain is a flattened call chain. The head is the innermost object; each
// group starts with a member access and holds the calls and computed
// accesses directly after it.
type chain struct {
	head   syntax.Node
	first  []syntax.Node
	groups [][]syntax.Node
	expand bool
}

func isChainLink(n syntax.Node) bool {
	switch n.Kind() {
	case CallExpr, MemberExpr, ComputedMemberExpr:
		return true
	}
	return false
}

// memberChain flattens the chain ending at n. It reports false when n is
// not a chain worth breaking or a link inside it carries comments.
func memberChain(n syntax.Node, f *format.Formatter) (chain, bool) {
	var links []syntax.Node
	cur := n
	for isChainLink(cur) {
		if cur.Key() != n.Key() && f.Comments().HasComments(cur) {
			return chain{}, false
		}
		if cur.Kind() == MemberExpr {
			if _, ok := format.SlotToken(cur, 2); !ok {
				return chain{}, false
			}
		}
		links = append(links, cur)
		next, ok := format.SlotNode(cur, 0)
		if !ok {
			return chain{}, false
		}
		cur = next
	}
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}

	c := chain{head: cur}
	calls := 0
	for _, l := range links {
		if l.Kind() == CallExpr {
			calls++
			if !c.expand && !simpleArguments(l) {
				c.expand = true
			}
		}
	}
	if calls < minChainCalls {
		return chain{}, false
	}

	i := 0
	takeGroup := func() []syntax.Node {
		start := i
		i++
		for i < len(links) && links[i].Kind() != MemberExpr {
			i++
		}
		return links[start:i]
	}

	for i < len(links) && links[i].Kind() != MemberExpr {
		c.first = append(c.first, links[i])
		i++
	}
	// Short names such as z or $ keep their first call on the head line.
	if c.head.Kind() == IdentExpr && len(c.head.TextTrimmed()) <= int(f.Options().IndentWidth) && i < len(links) {
		c.first = append(c.first, takeGroup()...)
	}
	for i < len(links) {
		c.groups = append(c.groups, takeGroup())
	}
	return c, true
}

func (c chain) format(f *format.Formatter) format.Format {
	groups := make([]format.Format, 0, 2*len(c.groups))
	for _, g := range c.groups {
		groups = append(groups, format.SoftLineBreak(), chainLinks(g))
	}
	return format.Labelled(memberChainLabel, format.Group(
		format.Node(c.head),
		chainLinks(c.first),
		format.Indent(groups...),
	).ShouldExpand(c.expand))
}

// chainLinks prints the part each link adds to its object.
func chainLinks(links []syntax.Node) format.Format {
	return format.FormatFunc(func(f *format.Formatter) error {
		for _, l := range links {
			var err error
			switch l.Kind() {
			case MemberExpr:
				err = f.Write(slotTokens(l, 1, 2))
			case ComputedMemberExpr:
				err = f.Write(slotTokens(l, 1, 1), slotNode(l, 2), slotTokens(l, 3, 3))
			case CallExpr:
				err = f.Write(slotNode(l, 1))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func slotTokens(n syntax.Node, from, to int) format.Format {
	return format.FormatFunc(func(f *format.Formatter) error {
		for i := from; i <= to; i++ {
			tok, err := format.RequiredToken(n, i)
			if err != nil {
				return err
			}
			if err := f.Write(format.Token(tok)); err != nil {
				return err
			}
		}
		return nil
	})
}

func slotNode(n syntax.Node, i int) format.Format {
	return format.FormatFunc(func(f *format.Formatter) error {
		child, err := format.Required(n, i)
		if err != nil {
			return err
		}
		return f.Write(format.Node(child))
	})
}

// simpleArguments reports whether every argument of call is short enough
// to keep a chain of calls on one line.
func simpleArguments(call syntax.Node) bool {
	args, ok := format.SlotNode(call, 1)
	if !ok {
		return true
	}
	list, ok := format.SlotNode(args, 1)
	if !ok {
		return true
	}
	for _, arg := range list.Children() {
		if !isSimple(arg) {
			return false
		}
	}
	return true
}

func isSimple(n syntax.Node) bool {
	switch n.Kind() {
	case IdentExpr, NumberLiteral, StringLiteral, TemplateLiteral, BooleanLiteral, NullLiteral:
		return true
	case ObjectExpr, ArrayExpr:
		list, ok := format.SlotNode(n, 1)
		return ok && len(list.Children()) == 0
	case UnaryExpr:
		operand, ok := format.SlotNode(n, 1)
		return ok && isSimple(operand)
	case MemberExpr:
		object, ok := format.SlotNode(n, 0)
		return ok && isSimple(object)
	}
	return false
}
