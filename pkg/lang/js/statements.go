package js

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

func formatModule(n syntax.Node, f *format.Formatter) error {
	list, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	if len(printedStatements(list, f)) == 0 {
		if !f.Comments().HasDangling(n) {
			return f.Write(format.Node(list))
		}
		return f.Write(format.Node(list), format.DanglingComments(n, format.DanglingNone), format.HardLineBreak())
	}
	return f.Write(format.Node(list), format.HardLineBreak())
}

// printedStatements drops empty statements that carry nothing worth
// keeping.
func printedStatements(list syntax.Node, f *format.Formatter) []syntax.Node {
	var out []syntax.Node
	for _, stmt := range list.Children() {
		if stmt.Kind() == EmptyStatement && !f.Comments().HasComments(stmt) {
			if tok, ok := stmt.FirstToken(); ok && !tok.HasSkippedTrivia() {
				continue
			}
		}
		out = append(out, stmt)
	}
	return out
}

func formatStatementList(n syntax.Node, f *format.Formatter) error {
	return f.Write(format.JoinNodesWithHardline(printedStatements(n, f)))
}

// semicolon writes the statement terminator in slot i according to the
// semicolons option.
func semicolon(n syntax.Node, slot int, f *format.Formatter) format.Format {
	if f.Options().Semicolons == options.SemicolonsAsNeeded {
		return nil
	}
	if tok, ok := format.SlotToken(n, slot); ok {
		return format.Token(tok)
	}
	return format.Text(";")
}

func formatFunctionDecl(n syntax.Node, f *format.Formatter) error {
	kw, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	name, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	params, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	body, err := format.Required(n, 3)
	if err != nil {
		return err
	}
	return f.Write(
		format.Token(kw), format.Space(), format.Token(name),
		format.Node(params), format.Space(), format.Node(body),
	)
}

func formatParameters(n syntax.Node, f *format.Formatter) error {
	open, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	list, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	closing, err := format.RequiredToken(n, 2)
	if err != nil {
		return err
	}
	if len(list.Children()) == 0 {
		return f.Write(format.Token(open), format.Node(list), format.DanglingComments(n, format.DanglingSoft), format.Token(closing))
	}
	return f.Write(format.Token(open), format.Group(format.SoftBlockIndent(format.Node(list))), format.Token(closing))
}

func formatParameterList(n syntax.Node, f *format.Formatter) error {
	all := f.Options().TrailingCommas == options.TrailingCommasAll
	return f.Write(format.Separated(format.SeparatedItems(n, Comma), ",", all))
}

func formatBlock(n syntax.Node, f *format.Formatter) error {
	open, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	list, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	closing, err := format.RequiredToken(n, 2)
	if err != nil {
		return err
	}
	return f.Write(
		format.Token(open),
		format.BlockIndent(format.Node(list)),
		format.DanglingComments(n, format.DanglingBlock),
		format.Token(closing),
	)
}

func formatVarStatement(n syntax.Node, f *format.Formatter) error {
	kw, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	list, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	return f.Write(format.Token(kw), format.Space(), format.Node(list), semicolon(n, 2, f))
}

func formatDeclaratorList(n syntax.Node, f *format.Formatter) error {
	items := format.SeparatedItems(n, Comma)
	if len(items) == 1 {
		return f.Write(format.Node(items[0].Node))
	}

	rest := make([]format.Format, 0, 2*len(items))
	for i := 1; i < len(items); i++ {
		rest = append(rest, items[i-1].FormatSeparator(","), format.SoftLineBreakOrSpace(), format.Node(items[i].Node))
	}
	return f.Write(format.Group(format.Node(items[0].Node), format.Indent(rest...)))
}

func formatDeclarator(n syntax.Node, f *format.Formatter) error {
	name, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	eq, hasInit := format.SlotToken(n, 1)
	if !hasInit {
		return f.Write(format.Token(name))
	}
	init, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	if err := f.Write(format.Token(name), format.Space(), format.Token(eq)); err != nil {
		return err
	}
	return f.Write(assignmentLayout(init))
}

func formatReturnStatement(n syntax.Node, f *format.Formatter) error {
	kw, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	if err := f.Write(format.Token(kw)); err != nil {
		return err
	}
	if arg, ok := format.SlotNode(n, 1); ok {
		content := format.Node(arg)
		if arg.Kind() == BinaryExpr {
			// A broken binary argument is wrapped in parentheses so that
			// the first operand stays on the return line.
			content = format.Group(
				format.IfGroupBreaks(format.Text("(")),
				format.SoftBlockIndent(format.Node(arg)),
				format.IfGroupBreaks(format.Text(")")),
			)
		}
		if err := f.Write(format.Space(), content); err != nil {
			return err
		}
	}
	return f.Write(semicolon(n, 2, f))
}

// clause formats the body of an if or else: blocks follow on the same
// line, other statements go on an indented line when they don't fit.
func clause(body syntax.Node) format.Format {
	switch body.Kind() {
	case Block, IfStatement:
		return format.Seq(format.Space(), format.Node(body))
	case EmptyStatement:
		return format.Node(body)
	default:
		return format.Group(format.Indent(format.SoftLineBreakOrSpace(), format.Node(body)))
	}
}

func formatIfStatement(n syntax.Node, f *format.Formatter) error {
	kw, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	open, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	test, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	closing, err := format.RequiredToken(n, 3)
	if err != nil {
		return err
	}
	consequent, err := format.Required(n, 4)
	if err != nil {
		return err
	}
	err = f.Write(
		format.Token(kw), format.Space(), format.Token(open),
		format.Group(format.SoftBlockIndent(format.Node(test))),
		format.Token(closing),
		clause(consequent),
	)
	if err != nil {
		return err
	}

	elseClause, ok := format.SlotNode(n, 5)
	if !ok {
		return nil
	}
	if consequent.Kind() == Block && !f.Comments().HasTrailingLineComment(consequent) {
		return f.Write(format.Space(), format.Node(elseClause))
	}
	return f.Write(format.HardLineBreak(), format.Node(elseClause))
}

func formatElseClause(n syntax.Node, f *format.Formatter) error {
	kw, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	body, err := format.Required(n, 1)
	if err != nil {
		return err
	}
	return f.Write(format.Token(kw), clause(body))
}

// startsWithHazard reports whether a statement without a preceding
// semicolon would continue the previous one.
func startsWithHazard(n syntax.Node) bool {
	tok, ok := n.FirstToken()
	if !ok {
		return false
	}
	text := tok.TextTrimmed()
	if text == "" {
		return false
	}
	switch text[0] {
	case '(', '[', '`', '+', '-', '/':
		return true
	}
	return false
}

func formatExpressionStatement(n syntax.Node, f *format.Formatter) error {
	expr, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	if f.Options().Semicolons == options.SemicolonsAsNeeded && startsWithHazard(expr) {
		if err := f.Write(format.Text(";")); err != nil {
			return err
		}
	}
	return f.Write(format.Node(expr), semicolon(n, 1, f))
}

func formatEmptyStatement(n syntax.Node, f *format.Formatter) error {
	tok, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	return f.Write(format.Token(tok))
}
