package markdown

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/lang/internal/parse"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Parse builds a line-level tree for a Markdown document. Every source
// line belongs to a block or is trivia, so the tree is lossless; Markdown
// has no syntax errors and no diagnostics are reported.
func Parse(src string) (syntax.Node, []format.Diagnostic) {
	d := newDocument(src)
	pieces, blocks := lex(d, d.spans())
	p := parse.New(pieces, EOF)

	p.B.StartNode(Root)
	p.B.StartNode(BlockList)
	for _, b := range blocks {
		p.B.StartNode(b.kind)
		if len(b.items) == 0 {
			bump(p, b.to-b.from)
		}
		for i, start := range b.items {
			end := b.to
			if i+1 < len(b.items) {
				end = b.items[i+1]
			}
			p.B.StartNode(ListItem)
			bump(p, end-start)
			p.B.FinishNode()
		}
		p.B.FinishNode()
	}
	p.B.FinishNode()
	p.Bump()
	p.B.FinishNode()

	return p.Finish()
}

func bump(p *parse.Parser, n int) {
	for range n {
		p.Bump()
	}
}
