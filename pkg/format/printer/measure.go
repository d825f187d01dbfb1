package printer

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/text"
)

// measure configures a fits check.
type measure struct {
	// mustBeFlat fails the check on anything that forces a line break.
	mustBeFlat bool

	// allLines measures every line of the content instead of stopping at
	// the first line break. Used for best-fitting variants.
	allLines bool
}

type fitCommand struct {
	ind  *indent
	mode ir.PrintMode
	d    *doc
	rest bool
}

// fits reports whether next, followed by the commands in rest up to their
// first line break, fits in the remaining width of the current line.
func (p *printer) fits(next command, rest []command, m measure) bool {
	width := p.opts.LineWidth - p.column()
	hasLineSuffix := len(p.lineSuffixes) > 0
	restIdx := len(rest)
	tabWidth := p.opts.tabWidth()

	var overlay map[ir.GroupID]ir.PrintMode
	cmds := []fitCommand{{ind: next.ind, mode: next.mode, d: next.d}}

	push := func(c fitCommand, ind *indent, mode ir.PrintMode, kids []*doc) {
		for i := len(kids) - 1; i >= 0; i-- {
			cmds = append(cmds, fitCommand{ind: ind, mode: mode, d: kids[i], rest: c.rest})
		}
	}

	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			r := rest[restIdx-1]
			restIdx--
			cmds = append(cmds, fitCommand{ind: r.ind, mode: r.mode, d: r.d, rest: true})
			continue
		}

		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch c.d.kind {
		case docSeq:
			push(c, c.ind, c.mode, c.d.kids)

		case docBestFitting:
			if c.mode == ir.ModeFlat {
				cmds = append(cmds, fitCommand{ind: c.ind, mode: ir.ModeFlat, d: c.d.variants[0], rest: c.rest})
			} else {
				last := c.d.variants[len(c.d.variants)-1]
				cmds = append(cmds, fitCommand{ind: c.ind, mode: ir.ModeExpanded, d: last, rest: c.rest})
			}

		case docAtom:
			e := c.d.el
			switch e.Kind {
			case ir.KindText, ir.KindVerbatim:
				first := strings.IndexAny(e.Text, "\n\r")
				if first < 0 {
					width -= text.Width(e.Text, tabWidth)
					continue
				}
				width -= text.Width(e.Text[:first], tabWidth)
				if width < 0 || m.mustBeFlat {
					return false
				}
				if !m.allLines || c.rest {
					return true
				}
				tail := e.Text[strings.LastIndexAny(e.Text, "\n\r")+1:]
				width = p.opts.LineWidth - text.Width(tail, tabWidth)

			case ir.KindSpace:
				width--

			case ir.KindLine:
				if c.mode == ir.ModeFlat {
					switch e.Line {
					case ir.LineSoft:
						continue
					case ir.LineSoftOrSpace:
						width--
						continue
					case ir.LineHard, ir.LineEmpty:
						if m.mustBeFlat {
							return false
						}
					}
				}
				if !m.allLines || c.rest {
					return true
				}
				_, indentWidth := c.ind.value()
				width = p.opts.LineWidth - indentWidth

			case ir.KindExpandParent:
				if m.mustBeFlat && c.mode == ir.ModeFlat {
					return false
				}

			case ir.KindLineSuffixBoundary:
				if hasLineSuffix {
					return c.rest
				}

			case ir.KindTag, ir.KindBestFitting, ir.KindInterned:
			}

		case docTag:
			t := c.d.tag
			switch t.Kind {
			case ir.TagGroup:
				if m.mustBeFlat && c.d.expands() {
					return false
				}
				mode := c.mode
				if c.d.expands() {
					mode = ir.ModeExpanded
				}
				if t.Group != 0 {
					if overlay == nil {
						overlay = map[ir.GroupID]ir.PrintMode{}
					}
					overlay[t.Group] = mode
				}
				push(c, c.ind, mode, c.d.kids)
			case ir.TagIndent:
				push(c, p.opts.indentOf(c.ind), c.mode, c.d.kids)
			case ir.TagAlign:
				push(c, alignOf(c.ind, int(t.Align)), c.mode, c.d.kids)
			case ir.TagDedent:
				ind := dedentOf(c.ind)
				if t.Dedent == ir.DedentRoot {
					ind = nil
				}
				push(c, ind, c.mode, c.d.kids)
			case ir.TagConditionalContent:
				if p.conditionalMode(t, c.mode, overlay) == t.Mode {
					push(c, c.ind, c.mode, c.d.kids)
				}
			case ir.TagIndentIfGroupBreaks:
				ind := c.ind
				if p.conditionalMode(t, ir.ModeFlat, overlay) == ir.ModeExpanded {
					ind = p.opts.indentOf(ind)
				}
				push(c, ind, c.mode, c.d.kids)
			case ir.TagLineSuffix:
				hasLineSuffix = true
			case ir.TagFill, ir.TagEntry, ir.TagLabel, ir.TagComments:
				push(c, c.ind, c.mode, c.d.kids)
			}
		}
	}
	return false
}
