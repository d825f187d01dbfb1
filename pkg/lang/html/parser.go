package html

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/lang/internal/parse"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

type parser struct {
	*parse.Parser
	depth int
}

// Parse builds a tree for an HTML document. Unclosed elements and stray
// end tags are reported and kept in the tree.
func Parse(src string) (syntax.Node, []format.Diagnostic) {
	p := &parser{Parser: parse.New(lex(src), EOF)}

	p.B.StartNode(Root)
	p.children()
	p.Bump()
	p.B.FinishNode()

	return p.Finish()
}

// children parses sibling nodes up to the end of input or, inside an
// element, the next end tag.
func (p *parser) children() {
	p.B.StartNode(ElementList)
	for !p.AtEOF() {
		switch p.Peek() {
		case EndTagOpen:
			if p.depth > 0 {
				p.B.FinishNode()
				return
			}
			p.Errorf("unexpected end tag </%s>", p.TokenAt(1).Text)
			p.strayTag()
		case TagOpen:
			p.element()
		case Word:
			p.B.StartNode(Text)
			for p.At(Word) {
				p.Bump()
			}
			p.B.FinishNode()
		case CommentToken:
			p.literal(Comment)
		case DoctypeToken:
			p.literal(Doctype)
		default:
			p.Errorf("unexpected %q", p.Current().Text)
			p.BumpAsBogus(Bogus, startsNode)
		}
	}
	p.B.FinishNode()
}

func startsNode(k syntax.RawKind) bool {
	switch k {
	case TagOpen, EndTagOpen, Word, CommentToken, DoctypeToken:
		return true
	}
	return false
}

func (p *parser) literal(kind syntax.RawKind) {
	p.B.StartNode(kind)
	p.Bump()
	p.B.FinishNode()
}

// strayTag wraps an end tag without a matching element in a bogus node.
func (p *parser) strayTag() {
	p.B.StartNode(Bogus)
	p.Bump()
	for !p.AtEOF() && !p.At(TagClose) && !p.At(TagOpen) && !p.At(EndTagOpen) {
		p.Bump()
	}
	p.Eat(TagClose)
	p.B.FinishNode()
}

func (p *parser) element() {
	p.B.StartNode(Element)
	name, selfClosing := p.startTag()
	if selfClosing || isVoid(name) {
		p.B.Missing()
		p.B.Missing()
		p.B.FinishNode()
		return
	}

	if isRaw(name) {
		p.B.StartNode(ElementList)
		if p.At(RawText) {
			p.literal(RawContent)
		}
		p.B.FinishNode()
	} else {
		p.depth++
		p.children()
		p.depth--
	}

	if p.At(EndTagOpen) && strings.EqualFold(p.TokenAt(1).Text, name) {
		p.B.StartNode(EndTag)
		p.Bump()
		p.Bump()
		p.Expect(TagClose, "'>'")
		p.B.FinishNode()
	} else {
		p.Errorf("expected </%s>", name)
		p.B.Missing()
	}
	p.B.FinishNode()
}

// startTag parses "<name attrs>" and reports the tag name and whether the
// tag closed itself with "/>".
func (p *parser) startTag() (string, bool) {
	p.B.StartNode(StartTag)
	p.Bump()
	name := p.Current().Text
	p.Expect(TagName, "a tag name")

	p.B.StartNode(AttributeList)
	for p.At(AttrName) || p.At(Eq) || p.At(AttrValue) || p.At(ErrorToken) {
		if p.At(AttrName) {
			p.attribute()
			continue
		}
		p.Errorf("expected an attribute name")
		p.BumpAsBogus(Bogus, func(k syntax.RawKind) bool {
			return k == AttrName || k == TagClose || k == SlashTagClose || startsNode(k)
		})
	}
	p.B.FinishNode()

	selfClosing := p.At(SlashTagClose)
	if !p.Eat(TagClose) && !p.Eat(SlashTagClose) {
		p.B.Missing()
		p.Errorf("expected '>'")
	}
	p.B.FinishNode()
	return name, selfClosing
}

func (p *parser) attribute() {
	p.B.StartNode(Attribute)
	p.Bump()
	if p.Eat(Eq) {
		if !p.Eat(AttrValue) {
			p.B.Missing()
			p.Errorf("expected an attribute value")
		}
	} else {
		p.B.Missing()
		p.B.Missing()
	}
	p.B.FinishNode()
}
