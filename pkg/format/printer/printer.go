// Package printer lays out a format document within a line width.
//
// The document tape is lowered into a tree and printed with a command
// stack. Groups are printed flat when their content, and everything up to
// the next possible line break after them, fits in the remaining width.
package printer

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/text"
)

// SourceMarker maps a source offset to an output offset.
type SourceMarker struct {
	Source text.Size `json:"source"`
	Dest   text.Size `json:"dest"`
}

// Printed is the printer output.
type Printed struct {
	Code      string
	SourceMap []SourceMarker
}

type command struct {
	ind  *indent
	mode ir.PrintMode
	d    *doc
}

type printer struct {
	opts Options
	nl   string

	out       strings.Builder
	lineWidth int

	pendingIndent    *indent
	hasPendingIndent bool
	pendingSpace     bool

	groupModes      map[ir.GroupID]ir.PrintMode
	lineSuffixes    []command
	shouldRemeasure bool

	sourceMap []SourceMarker
}

// Print lays out doc. It validates the document first and marks groups
// that must break; a malformed document yields an error matching
// ir.ErrStructural and nothing is printed.
func Print(d ir.Document, opts Options) (Printed, error) {
	if err := d.Validate(); err != nil {
		return Printed{}, err
	}
	ir.PropagateExpand(d)

	root, err := lower(d)
	if err != nil {
		return Printed{}, err
	}

	p := &printer{
		opts:       opts,
		nl:         opts.LineEnding.String(),
		groupModes: map[ir.GroupID]ir.PrintMode{},
	}
	p.run(root)

	return Printed{Code: p.out.String(), SourceMap: p.sourceMap}, nil
}

func (p *printer) run(root *doc) {
	stack := []command{{mode: ir.ModeExpanded, d: root}}

	for len(stack) > 0 || len(p.lineSuffixes) > 0 {
		if len(stack) == 0 {
			stack = p.flushSuffixes(stack)
			continue
		}

		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d := cmd.d

		switch d.kind {
		case docSeq:
			stack = pushKids(stack, cmd.ind, cmd.mode, d.kids)
		case docAtom:
			stack = p.atom(stack, cmd)
		case docBestFitting:
			stack = p.bestFitting(stack, cmd)
		case docTag:
			stack = p.tag(stack, cmd)
		}
	}
}

func pushKids(stack []command, ind *indent, mode ir.PrintMode, kids []*doc) []command {
	for i := len(kids) - 1; i >= 0; i-- {
		stack = append(stack, command{ind: ind, mode: mode, d: kids[i]})
	}
	return stack
}

func (p *printer) flushSuffixes(stack []command) []command {
	for i := len(p.lineSuffixes) - 1; i >= 0; i-- {
		stack = append(stack, p.lineSuffixes[i])
	}
	p.lineSuffixes = p.lineSuffixes[:0]
	return stack
}

func (p *printer) atom(stack []command, cmd command) []command {
	e := cmd.d.el
	switch e.Kind {
	case ir.KindText:
		p.printText(e)
	case ir.KindVerbatim:
		p.printVerbatim(e)
	case ir.KindSpace:
		if p.lineWidth > 0 {
			p.pendingSpace = true
		}
	case ir.KindLine:
		if cmd.mode == ir.ModeFlat {
			switch e.Line {
			case ir.LineSoft:
				return stack
			case ir.LineSoftOrSpace:
				if p.lineWidth > 0 {
					p.pendingSpace = true
				}
				return stack
			case ir.LineHard, ir.LineEmpty:
				p.shouldRemeasure = true
			}
		}
		if len(p.lineSuffixes) > 0 {
			stack = append(stack, cmd)
			return p.flushSuffixes(stack)
		}
		p.newline(cmd.ind, e.Line == ir.LineEmpty)
	case ir.KindLineSuffixBoundary:
		if len(p.lineSuffixes) > 0 {
			stack = append(stack, command{ind: cmd.ind, mode: ir.ModeExpanded, d: &doc{kind: docAtom, el: ir.Line(ir.LineHard)}})
		}
	case ir.KindExpandParent, ir.KindTag, ir.KindBestFitting, ir.KindInterned:
	}
	return stack
}

func (p *printer) tag(stack []command, cmd command) []command {
	d := cmd.d
	switch d.tag.Kind {
	case ir.TagGroup:
		mode := p.groupMode(stack, cmd)
		if d.tag.Group != 0 {
			p.groupModes[d.tag.Group] = mode
		}
		return pushKids(stack, cmd.ind, mode, d.kids)

	case ir.TagIndent:
		return pushKids(stack, p.opts.indentOf(cmd.ind), cmd.mode, d.kids)
	case ir.TagAlign:
		return pushKids(stack, alignOf(cmd.ind, int(d.tag.Align)), cmd.mode, d.kids)
	case ir.TagDedent:
		ind := dedentOf(cmd.ind)
		if d.tag.Dedent == ir.DedentRoot {
			ind = nil
		}
		return pushKids(stack, ind, cmd.mode, d.kids)

	case ir.TagConditionalContent:
		if p.conditionalMode(d.tag, cmd.mode, nil) == d.tag.Mode {
			return pushKids(stack, cmd.ind, cmd.mode, d.kids)
		}
		return stack
	case ir.TagIndentIfGroupBreaks:
		ind := cmd.ind
		if p.groupModes[d.tag.Group] == ir.ModeExpanded {
			ind = p.opts.indentOf(ind)
		}
		return pushKids(stack, ind, cmd.mode, d.kids)

	case ir.TagFill:
		return p.fill(stack, cmd, d.kids)

	case ir.TagLineSuffix:
		p.lineSuffixes = append(p.lineSuffixes, command{ind: cmd.ind, mode: cmd.mode, d: &doc{kind: docSeq, kids: d.kids}})
		return stack

	case ir.TagEntry, ir.TagLabel, ir.TagComments:
		return pushKids(stack, cmd.ind, cmd.mode, d.kids)
	}
	return stack
}

// groupMode decides the mode of a group about to be printed.
func (p *printer) groupMode(rest []command, cmd command) ir.PrintMode {
	d := cmd.d
	if cmd.mode == ir.ModeFlat && !p.shouldRemeasure {
		if d.expands() {
			return ir.ModeExpanded
		}
		return ir.ModeFlat
	}

	p.shouldRemeasure = false
	if d.expands() {
		return ir.ModeExpanded
	}
	next := command{ind: cmd.ind, mode: ir.ModeFlat, d: &doc{kind: docSeq, kids: d.kids}}
	if p.fits(next, rest, measure{}) {
		return ir.ModeFlat
	}
	return ir.ModeExpanded
}

func (p *printer) conditionalMode(t ir.Tag, mode ir.PrintMode, overlay map[ir.GroupID]ir.PrintMode) ir.PrintMode {
	if t.Group == 0 {
		return mode
	}
	if m, ok := overlay[t.Group]; ok {
		return m
	}
	if m, ok := p.groupModes[t.Group]; ok {
		return m
	}
	return ir.ModeFlat
}

func (p *printer) bestFitting(stack []command, cmd command) []command {
	variants := cmd.d.variants
	if cmd.mode == ir.ModeFlat && !p.shouldRemeasure {
		return append(stack, command{ind: cmd.ind, mode: ir.ModeFlat, d: variants[0]})
	}
	p.shouldRemeasure = false

	for _, v := range variants[:len(variants)-1] {
		next := command{ind: cmd.ind, mode: ir.ModeFlat, d: v}
		if p.fits(next, stack, measure{allLines: true}) {
			return append(stack, next)
		}
	}
	return append(stack, command{ind: cmd.ind, mode: ir.ModeExpanded, d: variants[len(variants)-1]})
}

// fill lays out entries alternating between content and separator. Each
// separator breaks only when the content around it does not fit.
func (p *printer) fill(stack []command, cmd command, entries []*doc) []command {
	if len(entries) == 0 {
		return stack
	}
	flat := func(d *doc) command { return command{ind: cmd.ind, mode: ir.ModeFlat, d: d} }
	broken := func(d *doc) command { return command{ind: cmd.ind, mode: ir.ModeExpanded, d: d} }

	content := entries[0]
	contentFits := p.fits(flat(content), nil, measure{mustBeFlat: true})

	if len(entries) == 1 {
		if contentFits {
			return append(stack, flat(content))
		}
		return append(stack, broken(content))
	}

	sep := entries[1]
	if len(entries) == 2 {
		if contentFits {
			return append(stack, flat(sep), flat(content))
		}
		return append(stack, broken(sep), broken(content))
	}

	rest := command{ind: cmd.ind, mode: cmd.mode, d: &doc{kind: docTag, tag: ir.Tag{Kind: ir.TagFill, Start: true}, kids: entries[2:]}}
	pair := &doc{kind: docSeq, kids: []*doc{content, sep, entries[2]}}

	switch {
	case p.fits(flat(pair), nil, measure{mustBeFlat: true}):
		return append(stack, rest, flat(sep), flat(content))
	case contentFits:
		return append(stack, rest, broken(sep), flat(content))
	default:
		return append(stack, rest, broken(sep), broken(content))
	}
}

// column is the width the next text starts at, counting pending
// indentation and space.
func (p *printer) column() int {
	col := p.lineWidth
	if p.hasPendingIndent {
		_, w := p.pendingIndent.value()
		col += w
	}
	if p.pendingSpace {
		col++
	}
	return col
}

func (p *printer) flushPending() {
	if p.hasPendingIndent {
		str, w := p.pendingIndent.value()
		p.out.WriteString(str)
		p.lineWidth += w
		p.hasPendingIndent = false
		p.pendingIndent = nil
	}
	if p.pendingSpace {
		p.out.WriteByte(' ')
		p.lineWidth++
		p.pendingSpace = false
	}
}

func (p *printer) dest() text.Size {
	return text.MustSizeOf(p.out.Len())
}

func (p *printer) printText(e ir.Element) {
	if e.Text == "" && !e.HasSource {
		return
	}
	p.flushPending()
	if e.HasSource {
		p.sourceMap = append(p.sourceMap, SourceMarker{Source: e.Source, Dest: p.dest()})
	}
	p.writeLines(e.Text, true)
}

func (p *printer) printVerbatim(e ir.Element) {
	p.flushPending()
	p.sourceMap = append(p.sourceMap, SourceMarker{Source: e.Range.Start, Dest: p.dest()})
	p.writeLines(e.Text, false)
	p.sourceMap = append(p.sourceMap, SourceMarker{Source: e.Range.End, Dest: p.dest()})
}

// writeLines writes s and updates the line width. When normalize is set,
// every line break in s is written as the configured line ending.
func (p *printer) writeLines(s string, normalize bool) {
	last := strings.LastIndexAny(s, "\n\r")
	if last < 0 {
		p.out.WriteString(s)
		p.lineWidth += text.Width(s, p.opts.tabWidth())
		return
	}
	if normalize {
		lines := splitLines(s)
		p.out.WriteString(strings.Join(lines, p.nl))
		p.lineWidth = text.Width(lines[len(lines)-1], p.opts.tabWidth())
		return
	}
	p.out.WriteString(s)
	p.lineWidth = text.Width(s[last+1:], p.opts.tabWidth())
}

func (p *printer) newline(ind *indent, empty bool) {
	if p.lineWidth > 0 {
		p.out.WriteString(p.nl)
	}
	if empty {
		p.out.WriteString(p.nl)
	}
	p.lineWidth = 0
	p.pendingSpace = false
	p.pendingIndent = ind
	p.hasPendingIndent = true
}

func splitLines(s string) []string {
	return strings.Split(strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s), "\n")
}
