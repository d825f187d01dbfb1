package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/formatkit/pkg/syntax"
)

const bom = "\uFEFF"

// gfm parses CommonMark with the GitHub extensions (tables,
// strikethrough, task lists and autolinks). Parsers are safe for
// concurrent use.
//
//nolint:gochecknoglobals // shared parser
var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// line is one source line. end excludes the line break; next is where the
// following line starts.
type line struct {
	start, end, next int
}

// span is a run of lines that forms one top-level block.
type span struct {
	kind        syntax.RawKind
	first, last int
}

type document struct {
	src   string
	lines []line
	// begin is the first line goldmark sees; lines before it are front
	// matter.
	begin int
	base  int
}

func newDocument(src string) *document {
	d := &document{src: src}
	start := 0
	if strings.HasPrefix(src, bom) {
		start = len(bom)
	}
	for i := start; i < len(src); {
		j := strings.IndexAny(src[i:], "\r\n")
		if j < 0 {
			d.lines = append(d.lines, line{start: i, end: len(src), next: len(src)})
			break
		}
		end := i + j
		next := end + 1
		if src[end] == '\r' && next < len(src) && src[next] == '\n' {
			next++
		}
		d.lines = append(d.lines, line{start: i, end: end, next: next})
		i = next
	}
	d.base = start
	return d
}

func (d *document) text(i int) string { return d.src[d.lines[i].start:d.lines[i].end] }

func (d *document) blank(i int) bool { return strings.TrimSpace(d.text(i)) == "" }

// indent is the width of the leading whitespace of line i, with tabs
// advancing to the next multiple of four.
func (d *document) indent(i int) int {
	col, _ := advance(d.text(i), 0, 0)
	return col
}

// nextNonBlank returns the first non-blank line at or after i, or
// len(d.lines).
func (d *document) nextNonBlank(i int) int {
	for i < len(d.lines) && d.blank(i) {
		i++
	}
	return i
}

// lineOf returns the line holding byte offset off.
func (d *document) lineOf(off int) int {
	i := sort.Search(len(d.lines), func(i int) bool { return d.lines[i].next > off })
	if i >= len(d.lines) {
		return len(d.lines) - 1
	}
	return i
}

// frontMatter claims a leading "---" block closed by "---" or "...".
func (d *document) frontMatter() (span, bool) {
	if len(d.lines) < 2 || strings.TrimRight(d.text(0), " \t") != "---" {
		return span{}, false
	}
	for i := 1; i < len(d.lines); i++ {
		switch strings.TrimRight(d.text(i), " \t") {
		case "---", "...":
			return span{kind: FrontMatter, first: 0, last: i}, true
		}
	}
	return span{}, false
}

// spans splits the document into top-level blocks. goldmark decides the
// block structure; the source lines decide where each block starts and
// ends, since goldmark only records the content of a block and not its
// markers or fences. Lines no block claims, such as link reference
// definitions, become raw spans.
func (d *document) spans() []span {
	var out []span
	prevEnd := -1

	if fm, ok := d.frontMatter(); ok {
		out = append(out, fm)
		prevEnd = fm.last
		d.begin = fm.last + 1
		d.base = d.lines[fm.last].next
	}
	if d.begin >= len(d.lines) {
		return out
	}

	root := gfm.Parser().Parse(text.NewReader([]byte(d.src[d.base:])), parser.WithContext(parser.NewContext()))

	var blocks []candidate
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, d.candidate(n))
	}

	for i, b := range blocks {
		start := d.nextNonBlank(prevEnd + 1)
		if b.anchored && b.lo > prevEnd {
			start = b.lo
		}
		if start >= len(d.lines) {
			break
		}
		if i+1 < len(blocks) && blocks[i+1].anchored && blocks[i+1].lo <= start {
			continue
		}

		end := max(d.ownEnd(b, start), start)
		if i+1 < len(blocks) && blocks[i+1].anchored {
			end = min(end, blocks[i+1].lo-1)
		}
		for end > start && d.blank(end) {
			end--
		}

		out = d.gap(out, prevEnd+1, start)
		out = append(out, span{kind: d.nodeKind(b, start), first: start, last: end})
		prevEnd = end
	}
	return d.gap(out, prevEnd+1, len(d.lines))
}

// gap turns the non-blank lines in [from, to) into raw spans.
func (d *document) gap(out []span, from, to int) []span {
	for i := from; i < to; i++ {
		if d.blank(i) {
			continue
		}
		j := i
		for j+1 < to && !d.blank(j+1) {
			j++
		}
		out = append(out, span{kind: Raw, first: i, last: j})
		i = j
	}
	return out
}

// candidate is a goldmark block with the lines its content covers.
type candidate struct {
	node     ast.Node
	lo, hi   int
	anchored bool
}

func (d *document) candidate(n ast.Node) candidate {
	c := candidate{node: n, lo: -1, hi: -1}
	add := func(start, stop int) {
		if stop < start {
			return
		}
		first := d.lineOf(d.base + start)
		last := first
		if stop > start {
			last = d.lineOf(d.base + stop - 1)
		}
		if c.lo < 0 || first < c.lo {
			c.lo = first
		}
		if last > c.hi {
			c.hi = last
		}
	}

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := node.(type) {
		case *ast.Text:
			add(node.Segment.Start, node.Segment.Stop)
		case *ast.RawHTML:
			for i := range node.Segments.Len() {
				seg := node.Segments.At(i)
				add(seg.Start, seg.Stop)
			}
		case *ast.HTMLBlock:
			if node.HasClosure() {
				add(node.ClosureLine.Start, node.ClosureLine.Stop)
			}
		}
		// Lines panics on inline nodes.
		if node.Type() == ast.TypeBlock {
			lines := node.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				add(seg.Start, seg.Stop)
			}
		}
		return ast.WalkContinue, nil
	})

	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.ThematicBreak:
	default:
		c.anchored = c.lo >= 0
	}
	return c
}

// ownEnd is the last line block b claims when it starts at start.
func (d *document) ownEnd(b candidate, start int) int {
	switch b.node.(type) {
	case *ast.ThematicBreak:
		return start
	case *ast.Heading:
		if isATX(d.text(start)) || b.hi < 0 {
			return start
		}
		// The underline follows the content.
		return min(b.hi+1, len(d.lines)-1)
	case *ast.FencedCodeBlock:
		return d.fenceEnd(start)
	case *east.Table, *ast.Blockquote:
		// Delimiter rows and empty quote lines carry no segment.
		end := max(b.hi, start)
		for end+1 < len(d.lines) && !d.blank(end+1) {
			end++
		}
		return end
	case *ast.List:
		// Closing fences and blank lines inside items carry no content
		// segment; lines indented to the content of the first item belong
		// to the list.
		end := max(b.hi, start)
		m, ok := parseMarker(d.text(start))
		if !ok {
			return end
		}
		for end+1 < len(d.lines) && (d.blank(end+1) || d.indent(end+1) >= m.content) {
			end++
		}
		return end
	default:
		return b.hi
	}
}

// fenceEnd finds the line closing the fence opened on line start, or the
// last line when the fence is never closed.
func (d *document) fenceEnd(start int) int {
	char, n, ok := openFence(d.text(start))
	if !ok {
		return start
	}
	for i := start + 1; i < len(d.lines); i++ {
		if closesFence(d.text(i), char, n) {
			return i
		}
	}
	return len(d.lines) - 1
}

func (d *document) nodeKind(b candidate, start int) syntax.RawKind {
	switch b.node.(type) {
	case *ast.Heading:
		if isATX(d.text(start)) {
			return Heading
		}
		return SetextHeading
	case *ast.Paragraph, *ast.TextBlock:
		return Paragraph
	case *ast.ThematicBreak:
		return ThematicBreak
	case *ast.FencedCodeBlock:
		return FencedCode
	case *ast.CodeBlock:
		return IndentedCode
	case *ast.HTMLBlock:
		return HTMLBlock
	case *ast.Blockquote:
		return Blockquote
	case *ast.List:
		return List
	case *east.Table:
		return Table
	}
	return Raw
}
