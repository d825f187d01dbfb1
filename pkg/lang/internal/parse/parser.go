// Package parse is the token cursor the recursive-descent parsers share.
package parse

import (
	"fmt"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

// Cache interns green tokens and small nodes across every parse.
//
//nolint:gochecknoglobals // shared, concurrency-safe interning cache
var Cache = syntax.NewNodeCache(0)

// Parser walks lexed tokens and feeds a tree builder.
type Parser struct {
	B      *syntax.TreeBuilder
	tokens []syntax.LexedToken
	pos    int
	diags  []format.Diagnostic
	eof    syntax.RawKind
}

// New attaches trivia to the lexer output and positions the parser on the
// first token. The lexer output must end with a token of kind eof.
func New(pieces []syntax.LexPiece, eof syntax.RawKind) *Parser {
	return &Parser{
		B:      syntax.NewTreeBuilder(Cache),
		tokens: syntax.AttachTrivia(pieces),
		eof:    eof,
	}
}

// Peek returns the kind of the current token.
func (p *Parser) Peek() syntax.RawKind { return p.PeekAt(0) }

// PeekAt returns the kind of the token n positions ahead.
func (p *Parser) PeekAt(n int) syntax.RawKind {
	if p.pos+n >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[p.pos+n].Kind
}

// Current returns the current token.
func (p *Parser) Current() syntax.LexedToken { return p.TokenAt(0) }

// TokenAt returns the token n positions ahead.
func (p *Parser) TokenAt(n int) syntax.LexedToken {
	if p.pos+n >= len(p.tokens) {
		return syntax.LexedToken{Kind: p.eof}
	}
	return p.tokens[p.pos+n]
}

// At reports whether the current token has the given kind.
func (p *Parser) At(kind syntax.RawKind) bool { return p.Peek() == kind }

// AtEOF reports whether the parser reached the end of input.
func (p *Parser) AtEOF() bool { return p.Peek() == p.eof }

// Bump adds the current token to the tree and advances.
func (p *Parser) Bump() {
	if p.pos >= len(p.tokens) {
		return
	}
	p.B.Lexed(p.tokens[p.pos])
	p.pos++
}

// Eat bumps the current token when it has the given kind.
func (p *Parser) Eat(kind syntax.RawKind) bool {
	if !p.At(kind) {
		return false
	}
	p.Bump()
	return true
}

// Expect bumps a token of the given kind, or leaves a missing slot and
// records an error.
func (p *Parser) Expect(kind syntax.RawKind, what string) bool {
	if p.Eat(kind) {
		return true
	}
	p.B.Missing()
	p.Errorf("expected %s", what)
	return false
}

// HasPrecedingNewline reports whether a line break separates the current
// token from the previous one.
func (p *Parser) HasPrecedingNewline() bool {
	if p.pos == 0 || p.pos >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos].HasPrecedingNewline(&p.tokens[p.pos-1])
}

// Errorf records an error at the current token.
func (p *Parser) Errorf(msg string, args ...any) {
	tok := p.Current()
	start := tok.TrimmedStart()
	p.diags = append(p.diags, format.Diagnostic{
		Severity: format.SeverityError,
		Message:  fmt.Sprintf(msg, args...),
		Range:    text.At(start, text.Len(tok.Text)),
	})
}

// BumpAsBogus wraps tokens in a node of kind bogus until stop returns true
// or the input ends. At least one token is consumed.
func (p *Parser) BumpAsBogus(bogus syntax.RawKind, stop func(syntax.RawKind) bool) {
	p.B.StartNode(bogus)
	p.Bump()
	for !p.AtEOF() && !stop(p.Peek()) {
		p.Bump()
	}
	p.B.FinishNode()
}

// Finish returns the tree and the recorded diagnostics.
func (p *Parser) Finish() (syntax.Node, []format.Diagnostic) {
	green, err := p.B.Finish()
	if err != nil {
		// The parsers always balance their nodes.
		panic(err)
	}
	return syntax.NewRoot(green), p.diags
}
