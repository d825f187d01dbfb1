package json

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/lang/internal/parse"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

type parser struct {
	*parse.Parser
}

// Parse builds a JSON tree. Comments and trailing commas are accepted.
func Parse(src string) (syntax.Node, []format.Diagnostic) {
	p := &parser{Parser: parse.New(lex(src), EOF)}

	p.B.StartNode(Root)
	if !p.AtEOF() {
		p.value()
	}
	for !p.AtEOF() {
		p.Errorf("end of file expected")
		p.BumpAsBogus(Bogus, func(syntax.RawKind) bool { return false })
	}
	p.Bump()
	p.B.FinishNode()

	return p.Finish()
}

func isValueStart(k syntax.RawKind) bool {
	switch k {
	case LBrace, LBracket, String, Number, True, False, Null:
		return true
	}
	return false
}

func (p *parser) value() {
	switch p.Peek() {
	case LBrace:
		p.object()
	case LBracket:
		p.array()
	case String:
		p.literal(StringValue)
	case Number:
		p.literal(NumberValue)
	case True, False:
		p.literal(BooleanValue)
	case Null:
		p.literal(NullValue)
	default:
		p.Errorf("expected a value")
		p.BumpAsBogus(BogusValue, func(k syntax.RawKind) bool {
			return k == Comma || k == RBrace || k == RBracket || isValueStart(k)
		})
	}
}

func (p *parser) literal(kind syntax.RawKind) {
	p.B.StartNode(kind)
	p.Bump()
	p.B.FinishNode()
}

func (p *parser) object() {
	p.B.StartNode(Object)
	p.Bump()
	p.B.StartNode(MemberList)
	for !p.AtEOF() && !p.At(RBrace) {
		p.member()
		if p.Eat(Comma) {
			continue
		}
		if !p.At(RBrace) && !p.AtEOF() {
			p.Errorf("expected ','")
		}
	}
	p.B.FinishNode()
	p.Expect(RBrace, "'}'")
	p.B.FinishNode()
}

func (p *parser) member() {
	if !p.At(String) {
		p.Errorf("expected a property name")
		p.BumpAsBogus(Bogus, func(k syntax.RawKind) bool {
			return k == Comma || k == RBrace || k == String
		})
		return
	}

	p.B.StartNode(Member)
	p.Bump()
	p.Expect(Colon, "':'")
	if p.At(Comma) || p.At(RBrace) || p.AtEOF() {
		p.B.Missing()
		p.Errorf("expected a value")
	} else {
		p.value()
	}
	p.B.FinishNode()
}

func (p *parser) array() {
	p.B.StartNode(Array)
	p.Bump()
	p.B.StartNode(ElementList)
	for !p.AtEOF() && !p.At(RBracket) {
		if p.At(Comma) {
			p.Errorf("expected a value")
			p.BumpAsBogus(BogusValue, func(syntax.RawKind) bool { return true })
			continue
		}
		p.value()
		if p.Eat(Comma) {
			continue
		}
		if !p.At(RBracket) && !p.AtEOF() {
			p.Errorf("expected ','")
		}
	}
	p.B.FinishNode()
	p.Expect(RBracket, "']'")
	p.B.FinishNode()
}
