package js

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// memberChainLabel marks a formatted call chain so that an assignment
// keeps it on the line of the operator.
const memberChainLabel = "member-chain"

func formatToken(n syntax.Node, f *format.Formatter) error {
	tok, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	return f.Write(format.Token(tok))
}

func stringToken(tok syntax.Token, f *format.Formatter) format.Format {
	return format.ReplaceToken(tok, normalizeString(tok.TextTrimmed(), f.Options().QuoteStyle.Char()))
}

func formatStringLiteral(n syntax.Node, f *format.Formatter) error {
	tok, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	return f.Write(stringToken(tok, f))
}

// assignmentLayout prints the right side of "=" either on the operator's
// line or, when it doesn't fit, indented on the next line. Values that
// break well on their own always stay on the operator's line.
func assignmentLayout(right syntax.Node) format.Format {
	return format.FormatFunc(func(f *format.Formatter) error {
		el, err := f.Intern(format.Node(right))
		if err != nil {
			return err
		}
		if format.IsLabelled(el, memberChainLabel) || breaksOnItsOwn(right, f) {
			return f.Write(format.Space(), format.Elements(el))
		}
		return f.Write(format.Group(format.Indent(format.SoftLineBreakOrSpace(), format.Elements(el))))
	})
}

func breaksOnItsOwn(n syntax.Node, f *format.Formatter) bool {
	if f.Comments().HasLeading(n) {
		return false
	}
	switch n.Kind() {
	case ObjectExpr, ArrayExpr, CallExpr, ParenExpr, TemplateLiteral:
		return true
	}
	return false
}

func formatAssignmentExpr(n syntax.Node, f *format.Formatter) error {
	left, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	op, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	right, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	return f.Write(format.Node(left), format.Space(), format.Token(op), assignmentLayout(right))
}

// binaryOperand is one operand of a flattened binary chain and the
// operator in front of it.
type binaryOperand struct {
	op   syntax.Token
	node syntax.Node
}

// flattenBinary collects a left-nested chain of operators of the same
// precedence, such as a + b - c, into a single list.
func flattenBinary(n syntax.Node, f *format.Formatter) ([]binaryOperand, error) {
	left, err := format.Required(n, 0)
	if err != nil {
		return nil, err
	}
	op, err := format.RequiredToken(n, 1)
	if err != nil {
		return nil, err
	}
	right, err := format.Required(n, 2)
	if err != nil {
		return nil, err
	}

	var operands []binaryOperand
	if left.Kind() == BinaryExpr && !f.Comments().HasComments(left) && samePrecedence(left, op) {
		operands, err = flattenBinary(left, f)
		if err != nil {
			return nil, err
		}
	} else {
		operands = []binaryOperand{{node: left}}
	}
	return append(operands, binaryOperand{op: op, node: right}), nil
}

func samePrecedence(n syntax.Node, op syntax.Token) bool {
	inner, ok := format.SlotToken(n, 1)
	return ok && binaryPrecedence(inner.TextTrimmed()) == binaryPrecedence(op.TextTrimmed())
}

func formatBinaryExpr(n syntax.Node, f *format.Formatter) error {
	operands, err := flattenBinary(n, f)
	if err != nil {
		return err
	}

	rest := make([]format.Format, 0, 4*len(operands))
	for _, o := range operands[1:] {
		rest = append(rest, format.Space(), format.Token(o.op), format.SoftLineBreakOrSpace(), format.Node(o.node))
	}

	// Parents that already indent their content get the operands at
	// their own level.
	tail := format.Indent(rest...)
	if indentsContent(n.Parent()) {
		tail = format.Seq(rest...)
	}
	return f.Write(format.Group(format.Node(operands[0].node), tail))
}

func indentsContent(parent syntax.Node) bool {
	if parent.IsZero() {
		return false
	}
	switch parent.Kind() {
	case ReturnStatement, IfStatement, ParenExpr, AssignmentExpr, Declarator:
		return true
	}
	return false
}

func formatUnaryExpr(n syntax.Node, f *format.Formatter) error {
	op, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	operand, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	if err := f.Write(format.Token(op)); err != nil {
		return err
	}

	text := op.TextTrimmed()
	space := wordOperators[text]
	if operand.Kind() == UnaryExpr {
		// "- -x" must not become "--x".
		if inner, ok := format.SlotToken(operand, 0); ok && (text == "-" || text == "+") && inner.TextTrimmed()[0] == text[0] {
			space = true
		}
	}
	if space {
		if err := f.Write(format.Space()); err != nil {
			return err
		}
	}
	return f.Write(format.Node(operand))
}

func formatParenExpr(n syntax.Node, f *format.Formatter) error {
	open, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	expr, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	closing, err := format.RequiredToken(n, 2)
	if err != nil {
		return err
	}
	return f.Write(format.Token(open), format.Node(expr), format.Token(closing))
}

// container holds the brackets and list of arrays, objects and argument
// lists.
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

func (c container) empty(n syntax.Node, indent format.DanglingIndent) format.Format {
	return format.Seq(format.Token(c.open), format.Node(c.list), format.DanglingComments(n, indent), format.Token(c.close))
}

func es5Commas(f *format.Formatter) bool {
	return f.Options().TrailingCommas != options.TrailingCommasNone
}

func formatArrayExpr(n syntax.Node, f *format.Formatter) error {
	c, err := splitContainer(n)
	if err != nil {
		return err
	}
	if len(c.list.Children()) == 0 {
		return f.Write(c.empty(n, format.DanglingBlock))
	}
	return f.Write(format.Token(c.open), format.Group(format.SoftBlockIndent(format.Node(c.list))), format.Token(c.close))
}

func isNumber(n syntax.Node) bool {
	if n.Kind() == NumberLiteral {
		return true
	}
	if n.Kind() != UnaryExpr {
		return false
	}
	op, ok := format.SlotToken(n, 0)
	operand, hasOperand := format.SlotNode(n, 1)
	return ok && hasOperand && (op.TextTrimmed() == "-" || op.TextTrimmed() == "+") && operand.Kind() == NumberLiteral
}

// formatElementList fills lines with numbers and puts other elements one
// per line when the array breaks.
func formatElementList(n syntax.Node, f *format.Formatter) error {
	items := format.SeparatedItems(n, Comma)
	for _, it := range items {
		if !isNumber(it.Node) || f.Comments().HasComments(it.Node) {
			return f.Write(format.Separated(items, ",", es5Commas(f)))
		}
	}
	return f.Write(format.SeparatedFill(items, ",", es5Commas(f)))
}

func formatObjectExpr(n syntax.Node, f *format.Formatter) error {
	c, err := splitContainer(n)
	if err != nil {
		return err
	}
	if len(c.list.Children()) == 0 {
		return f.Write(c.empty(n, format.DanglingBlock))
	}
	// An object the author broke after "{" stays broken.
	body := format.SoftBlockIndentWithMaybeSpace(f.Options().BracketSpacing, format.Node(c.list))
	return f.Write(format.Token(c.open), format.Group(body).ShouldExpand(newlineAfter(c.open)), format.Token(c.close))
}

func newlineAfter(tok syntax.Token) bool {
	if tok.TrailingTrivia().HasNewline() {
		return true
	}
	next, ok := tok.NextToken()
	return ok && next.LeadingTrivia().HasNewline()
}

func formatPropertyList(n syntax.Node, f *format.Formatter) error {
	return f.Write(format.Separated(format.SeparatedItems(n, Comma), ",", es5Commas(f)))
}

func formatProperty(n syntax.Node, f *format.Formatter) error {
	key, err := format.RequiredToken(n, 0)
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
	keyFormat := format.Token(key)
	if key.Kind() == String {
		keyFormat = stringToken(key, f)
	}
	return f.Write(keyFormat, format.Token(colon), format.Space(), format.Node(value))
}

func formatMemberExpr(n syntax.Node, f *format.Formatter) error {
	object, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	dot, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	name, err := format.RequiredToken(n, 2)
	if err != nil {
		return err
	}
	return f.Write(format.Node(object), format.Token(dot), format.Token(name))
}

func formatComputedMemberExpr(n syntax.Node, f *format.Formatter) error {
	object, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	open, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	index, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	closing, err := format.RequiredToken(n, 3)
	if err != nil {
		return err
	}
	return f.Write(format.Node(object), format.Token(open), format.Node(index), format.Token(closing))
}

func formatCallExpr(n syntax.Node, f *format.Formatter) error {
	if chain, ok := memberChain(n, f); ok {
		return f.Write(chain.format(f))
	}
	callee, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	args, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	return f.Write(format.Node(callee), format.Node(args))
}

func formatArgumentList(n syntax.Node, f *format.Formatter) error {
	all := f.Options().TrailingCommas == options.TrailingCommasAll
	return f.Write(format.Separated(format.SeparatedItems(n, Comma), ",", all))
}

func formatArguments(n syntax.Node, f *format.Formatter) error {
	c, err := splitContainer(n)
	if err != nil {
		return err
	}
	items := format.SeparatedItems(c.list, Comma)
	if len(items) == 0 {
		return f.Write(c.empty(n, format.DanglingSoft))
	}
	if huggable(items, f) {
		return f.Write(hugLastArgument(c, items))
	}
	return f.Write(format.Token(c.open), format.Group(format.SoftBlockIndent(format.Node(c.list))), format.Token(c.close))
}

// huggable reports whether the last argument is an object or array that
// may open on the line of the call, as in f(a, {.
func huggable(items []format.SeparatedItem, f *format.Formatter) bool {
	for i, it := range items {
		if f.Comments().HasComments(it.Node) {
			return false
		}
		isContainer := it.Node.Kind() == ObjectExpr || it.Node.Kind() == ArrayExpr
		if isContainer != (i == len(items)-1) {
			return false
		}
	}
	return true
}

// hugLastArgument tries, in order, all arguments on one line, the last
// argument broken after its opening bracket, and one argument per line.
func hugLastArgument(c container, items []format.SeparatedItem) format.Format {
	all := func(f *format.Formatter) bool {
		return f.Options().TrailingCommas == options.TrailingCommasAll
	}
	args := make([]format.Format, len(items))
	for i, it := range items {
		args[i] = format.Memoize(it.Node.Key(), format.Node(it.Node))
	}
	head := make([]format.Format, 0, 2*len(items))
	for i := range items[:len(items)-1] {
		head = append(head, args[i], items[i].FormatSeparator(","), format.Space())
	}
	last := args[len(args)-1]

	return format.FormatFunc(func(f *format.Formatter) error {
		flat := format.Seq(format.Token(c.open), format.Seq(head...), last, format.Token(c.close))
		hugged := format.Seq(format.Token(c.open), format.Seq(head...), format.Group(last).ShouldExpand(true), format.Token(c.close))

		broken := make([]format.Format, 0, 3*len(items))
		for i, arg := range args {
			if i > 0 {
				broken = append(broken, format.SoftLineBreakOrSpace())
			}
			broken = append(broken, arg)
			if i < len(args)-1 {
				broken = append(broken, items[i].FormatSeparator(","))
			} else if all(f) {
				broken = append(broken, format.IfGroupBreaks(format.Text(",")))
			}
		}
		expanded := format.Seq(format.Token(c.open), format.Group(format.SoftBlockIndent(broken...)).ShouldExpand(true), format.Token(c.close))

		return f.Write(format.BestFitting(flat, hugged, expanded))
	})
}
