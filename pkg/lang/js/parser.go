package js

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/lang/internal/parse"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

type parser struct {
	*parse.Parser
}

// Parse builds a tree for a JavaScript module. Unsupported syntax becomes
// bogus statements and expressions.
func Parse(src string) (syntax.Node, []format.Diagnostic) {
	p := &parser{Parser: parse.New(lex(src), EOF)}

	p.B.StartNode(Module)
	p.statementList(true)
	p.Bump()
	p.B.FinishNode()

	return p.Finish()
}

func (p *parser) atOperator(op string) bool {
	return p.At(Operator) && p.Current().Text == op
}

func (p *parser) statementList(top bool) {
	p.B.StartNode(StatementList)
	for !p.AtEOF() {
		if p.At(RBrace) {
			if !top {
				break
			}
			p.Errorf("unexpected '}'")
			p.BumpAsBogus(Bogus, func(syntax.RawKind) bool { return true })
			continue
		}
		p.statement()
	}
	p.B.FinishNode()
}

func (p *parser) statement() {
	switch p.Peek() {
	case FunctionKw:
		p.functionDecl()
	case ConstKw, LetKw, VarKw:
		p.varStatement()
	case ReturnKw:
		p.returnStatement()
	case IfKw:
		p.ifStatement()
	case LBrace:
		p.block()
	case Semi:
		p.B.StartNode(EmptyStatement)
		p.Bump()
		p.B.FinishNode()
	case ElseKw, RParen, RBracket, Comma, Colon, Dot, ErrorToken:
		p.Errorf("expected a statement")
		p.BumpAsBogus(Bogus, func(k syntax.RawKind) bool { return k == Semi || k == RBrace || p.HasPrecedingNewline() })
	default:
		p.expressionStatement()
	}
}

// semicolon ends a statement, applying automatic semicolon insertion.
func (p *parser) semicolon() {
	if p.Eat(Semi) {
		return
	}
	p.B.Missing()
	if !p.HasPrecedingNewline() && !p.At(RBrace) && !p.AtEOF() {
		p.Errorf("expected ';'")
	}
}

func (p *parser) functionDecl() {
	p.B.StartNode(FunctionDecl)
	p.Bump()
	p.Expect(Ident, "a function name")
	p.parameters()
	p.block()
	p.B.FinishNode()
}

func (p *parser) parameters() {
	p.B.StartNode(Parameters)
	open := p.Expect(LParen, "'('")
	p.B.StartNode(ParameterList)
	for open && !p.AtEOF() && !p.At(RParen) {
		if p.At(Ident) {
			p.B.StartNode(Parameter)
			p.Bump()
			p.B.FinishNode()
		} else {
			p.Errorf("expected a parameter")
			p.BumpAsBogus(BogusExpr, func(k syntax.RawKind) bool { return k == Comma || k == RParen || k == LBrace })
		}
		if !p.Eat(Comma) {
			break
		}
	}
	p.B.FinishNode()
	p.Expect(RParen, "')'")
	p.B.FinishNode()
}

func (p *parser) block() {
	p.B.StartNode(Block)
	if p.Expect(LBrace, "'{'") {
		p.statementList(false)
	} else {
		p.B.StartNode(StatementList)
		p.B.FinishNode()
	}
	p.Expect(RBrace, "'}'")
	p.B.FinishNode()
}

func (p *parser) varStatement() {
	p.B.StartNode(VarStatement)
	p.Bump()
	p.B.StartNode(DeclaratorList)
	for {
		p.B.StartNode(Declarator)
		p.Expect(Ident, "a binding name")
		if p.atOperator("=") {
			p.Bump()
			p.assignment()
		} else {
			p.B.Missing()
			p.B.Missing()
		}
		p.B.FinishNode()
		if !p.Eat(Comma) {
			break
		}
	}
	p.B.FinishNode()
	p.semicolon()
	p.B.FinishNode()
}

func (p *parser) returnStatement() {
	p.B.StartNode(ReturnStatement)
	p.Bump()
	if p.At(Semi) || p.At(RBrace) || p.AtEOF() || p.HasPrecedingNewline() {
		p.B.Missing()
	} else {
		p.expression()
	}
	p.semicolon()
	p.B.FinishNode()
}

func (p *parser) ifStatement() {
	p.B.StartNode(IfStatement)
	p.Bump()
	p.Expect(LParen, "'('")
	p.expression()
	p.Expect(RParen, "')'")
	p.statement()
	if p.At(ElseKw) {
		p.B.StartNode(ElseClause)
		p.Bump()
		p.statement()
		p.B.FinishNode()
	} else {
		p.B.Missing()
	}
	p.B.FinishNode()
}

func (p *parser) expressionStatement() {
	p.B.StartNode(ExpressionStatement)
	p.expression()
	p.semicolon()
	p.B.FinishNode()
}

func (p *parser) expression() { p.assignment() }

func (p *parser) assignment() {
	cp := p.B.Checkpoint()
	p.binary(0)
	if p.At(Operator) && isAssignmentOperator(p.Current().Text) {
		p.B.StartNodeAt(cp, AssignmentExpr)
		p.Bump()
		p.assignment()
		p.B.FinishNode()
	}
}

// binary parses operators binding tighter than minPrec by precedence
// climbing. "**" is right-associative.
func (p *parser) binary(minPrec int) {
	cp := p.B.Checkpoint()
	p.unary()
	for p.At(Operator) {
		op := p.Current().Text
		prec := binaryPrecedence(op)
		if prec == 0 || prec <= minPrec {
			return
		}
		p.B.StartNodeAt(cp, BinaryExpr)
		p.Bump()
		if op == "**" {
			p.binary(prec - 1)
		} else {
			p.binary(prec)
		}
		p.B.FinishNode()
	}
}

func (p *parser) unary() {
	if p.At(Operator) && isUnaryOperator(p.Current().Text) {
		p.B.StartNode(UnaryExpr)
		p.Bump()
		p.unary()
		p.B.FinishNode()
		return
	}
	p.postfix()
}

func (p *parser) postfix() {
	cp := p.B.Checkpoint()
	if !p.primary() {
		return
	}
	for {
		switch p.Peek() {
		case Dot:
			p.B.StartNodeAt(cp, MemberExpr)
			p.Bump()
			if isName(p.Peek()) {
				p.Bump()
			} else {
				p.B.Missing()
				p.Errorf("expected a property name")
			}
			p.B.FinishNode()
		case LBracket:
			p.B.StartNodeAt(cp, ComputedMemberExpr)
			p.Bump()
			p.expression()
			p.Expect(RBracket, "']'")
			p.B.FinishNode()
		case LParen:
			p.B.StartNodeAt(cp, CallExpr)
			p.arguments()
			p.B.FinishNode()
		default:
			return
		}
	}
}

func (p *parser) literal(kind syntax.RawKind) {
	p.B.StartNode(kind)
	p.Bump()
	p.B.FinishNode()
}

// primary parses an operand. It reports false when there was none, in
// which case a missing slot was added.
func (p *parser) primary() bool {
	switch p.Peek() {
	case Ident:
		p.literal(IdentExpr)
	case Number:
		p.literal(NumberLiteral)
	case String:
		p.literal(StringLiteral)
	case Template:
		p.literal(TemplateLiteral)
	case TrueKw, FalseKw:
		p.literal(BooleanLiteral)
	case NullKw:
		p.literal(NullLiteral)
	case LBracket:
		p.array()
	case LBrace:
		p.object()
	case LParen:
		p.B.StartNode(ParenExpr)
		p.Bump()
		p.expression()
		p.Expect(RParen, "')'")
		p.B.FinishNode()
	case Operator, ErrorToken, FunctionKw, ReturnKw, IfKw, ElseKw, ConstKw, LetKw, VarKw, Dot, Colon:
		p.Errorf("expected an expression")
		p.BumpAsBogus(BogusExpr, func(syntax.RawKind) bool { return true })
	default:
		p.B.Missing()
		p.Errorf("expected an expression")
		return false
	}
	return true
}

func (p *parser) array() {
	p.B.StartNode(ArrayExpr)
	p.Bump()
	p.B.StartNode(ElementList)
	for !p.AtEOF() && !p.At(RBracket) {
		if p.At(Comma) {
			p.Errorf("array holes are not supported")
			p.BumpAsBogus(BogusExpr, func(syntax.RawKind) bool { return true })
			continue
		}
		before := p.Current().Offset
		p.assignment()
		if p.Current().Offset == before {
			p.BumpAsBogus(BogusExpr, func(syntax.RawKind) bool { return true })
		}
		if !p.Eat(Comma) {
			break
		}
	}
	p.B.FinishNode()
	p.Expect(RBracket, "']'")
	p.B.FinishNode()
}

func (p *parser) object() {
	p.B.StartNode(ObjectExpr)
	p.Bump()
	p.B.StartNode(PropertyList)
	for !p.AtEOF() && !p.At(RBrace) {
		p.property()
		if !p.Eat(Comma) {
			break
		}
	}
	p.B.FinishNode()
	p.Expect(RBrace, "'}'")
	p.B.FinishNode()
}

func (p *parser) property() {
	switch {
	case (isName(p.Peek()) || p.At(String) || p.At(Number)) && p.PeekAt(1) == Colon:
		p.B.StartNode(Property)
		p.Bump()
		p.Bump()
		p.assignment()
		p.B.FinishNode()
	case p.At(Ident):
		p.B.StartNode(ShorthandProperty)
		p.Bump()
		p.B.FinishNode()
	default:
		p.Errorf("expected a property")
		p.BumpAsBogus(BogusExpr, func(k syntax.RawKind) bool { return k == Comma || k == RBrace })
	}
}

func (p *parser) arguments() {
	p.B.StartNode(Arguments)
	p.Bump()
	p.B.StartNode(ArgumentList)
	for !p.AtEOF() && !p.At(RParen) {
		before := p.Current().Offset
		p.assignment()
		if p.Current().Offset == before {
			p.BumpAsBogus(BogusExpr, func(syntax.RawKind) bool { return true })
		}
		if !p.Eat(Comma) {
			break
		}
	}
	p.B.FinishNode()
	p.Expect(RParen, "')'")
	p.B.FinishNode()
}
