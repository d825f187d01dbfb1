// Package js formats a subset of JavaScript: functions, variable
// declarations, control flow and expressions. Anything else parses as
// bogus nodes and prints verbatim.
package js

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Binding is the JavaScript language.
//
//nolint:gochecknoglobals // registered binding
var Binding lang.Binding = binding{}

func init() { lang.Register(Binding) }

var rules = newRules()

func newRules() format.RuleTable {
	t := make(format.RuleTable, kindCount)
	t[Module] = formatModule
	t[StatementList] = formatStatementList
	t[FunctionDecl] = formatFunctionDecl
	t[Parameters] = formatParameters
	t[ParameterList] = formatParameterList
	t[Parameter] = formatToken
	t[Block] = formatBlock
	t[VarStatement] = formatVarStatement
	t[DeclaratorList] = formatDeclaratorList
	t[Declarator] = formatDeclarator
	t[ReturnStatement] = formatReturnStatement
	t[IfStatement] = formatIfStatement
	t[ElseClause] = formatElseClause
	t[ExpressionStatement] = formatExpressionStatement
	t[EmptyStatement] = formatEmptyStatement
	t[IdentExpr] = formatToken
	t[NumberLiteral] = formatToken
	t[StringLiteral] = formatStringLiteral
	t[TemplateLiteral] = formatToken
	t[BooleanLiteral] = formatToken
	t[NullLiteral] = formatToken
	t[ArrayExpr] = formatArrayExpr
	t[ElementList] = formatElementList
	t[ObjectExpr] = formatObjectExpr
	t[PropertyList] = formatPropertyList
	t[Property] = formatProperty
	t[ShorthandProperty] = formatToken
	t[CallExpr] = formatCallExpr
	t[Arguments] = formatArguments
	t[ArgumentList] = formatArgumentList
	t[MemberExpr] = formatMemberExpr
	t[ComputedMemberExpr] = formatComputedMemberExpr
	t[UnaryExpr] = formatUnaryExpr
	t[BinaryExpr] = formatBinaryExpr
	t[AssignmentExpr] = formatAssignmentExpr
	t[ParenExpr] = formatParenExpr
	t[Bogus] = format.FormatBogus
	t[BogusExpr] = format.FormatBogus
	return t
}

type binding struct{}

func (binding) Name() string                                        { return "js" }
func (binding) Aliases() []string                                   { return []string{"javascript", "ecmascript"} }
func (binding) Extensions() []string                                { return []string{".js", ".mjs", ".cjs"} }
func (binding) CommentStyle() comments.Style                        { return commentStyle{} }
func (binding) Rules() format.RuleTable                             { return rules }
func (binding) KindName(k syntax.RawKind) string                    { return kindName(k) }
func (binding) Parse(src string) (syntax.Node, []format.Diagnostic) { return Parse(src) }

func (binding) ApplyDefaults(opts options.Options) options.Options { return opts }

type commentStyle struct{}

func (commentStyle) CommentKind(p syntax.SyntaxTriviaPiece) comments.Kind { return comments.KindOf(p) }
func (commentStyle) IsSuppression(text string) bool                       { return lang.IsSuppression(text) }
func (commentStyle) IsBogus(k syntax.RawKind) bool                        { return k == Bogus || k == BogusExpr }

func (commentStyle) IsList(k syntax.RawKind) bool {
	switch k {
	case StatementList, ParameterList, DeclaratorList, ElementList, PropertyList, ArgumentList:
		return true
	}
	return false
}

// PlaceComment moves comments before "else" onto the else clause so the
// if branch keeps its closing brace on the else line.
func (commentStyle) PlaceComment(d *comments.DecoratedComment) comments.Placement {
	if !d.Following.IsZero() && d.Following.Kind() == ElseClause {
		return comments.Leading(d.Following)
	}
	return comments.Default()
}
