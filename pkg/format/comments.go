package format

import (
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// DanglingIndent controls how dangling comments are laid out.
type DanglingIndent uint8

// Dangling comment layouts.
const (
	// DanglingNone writes the comments in place.
	DanglingNone DanglingIndent = iota
	// DanglingBlock puts the comments on their own indented lines.
	DanglingBlock
	// DanglingSoft is DanglingBlock inside a group that may stay flat.
	DanglingSoft
)

func (f *Formatter) comment(c comments.SourceComment) {
	f.WriteElements(ir.DynamicText(c.Text(), c.Range().Start))
	f.ctx.comments.MarkFormatted(c.ID)
}

func (f *Formatter) unformatted(list []comments.SourceComment) []comments.SourceComment {
	out := list[:0:0]
	for _, c := range list {
		if !f.ctx.comments.IsFormatted(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// LeadingComments formats the leading comments of n.
func LeadingComments(n syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error { return f.FormatLeadingComments(n) })
}

// TrailingComments formats the trailing comments of n.
func TrailingComments(n syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error { return f.FormatTrailingComments(n) })
}

// DanglingComments formats the dangling comments of n.
func DanglingComments(n syntax.Node, indent DanglingIndent) Format {
	return FormatFunc(func(f *Formatter) error { return f.FormatDanglingComments(n, indent) })
}

// FormatLeadingComments writes the leading comments of n, each followed by
// the line break the source had after it.
func (f *Formatter) FormatLeadingComments(n syntax.Node) error {
	list := f.unformatted(f.ctx.comments.Leading(n))
	if len(list) == 0 {
		return nil
	}
	f.WriteElements(ir.StartComments(ir.PlacementLeading, f.ctx.owner(n)))
	for _, c := range list {
		f.comment(c)
		if c.Kind.IsLine() {
			if c.LinesAfter > 1 {
				f.WriteElements(ir.Line(ir.LineEmpty))
			} else {
				f.WriteElements(ir.Line(ir.LineHard))
			}
			continue
		}
		switch {
		case c.LinesAfter == 0:
			f.WriteElements(ir.Space())
		case c.LinesAfter == 1 && c.LinesBefore == 0:
			f.WriteElements(ir.Line(ir.LineSoftOrSpace))
		case c.LinesAfter == 1:
			f.WriteElements(ir.Line(ir.LineHard))
		default:
			f.WriteElements(ir.Line(ir.LineEmpty))
		}
	}
	f.WriteElements(ir.EndComments())
	return nil
}

// FormatTrailingComments writes the trailing comments of n. Line comments
// and comments on their own line are deferred to the end of the line.
func (f *Formatter) FormatTrailingComments(n syntax.Node) error {
	list := f.unformatted(f.ctx.comments.Trailing(n))
	if len(list) == 0 {
		return nil
	}
	f.WriteElements(ir.StartComments(ir.PlacementTrailing, f.ctx.owner(n)))
	linesBefore := 0
	var prev *comments.SourceComment
	for i := range list {
		c := list[i]
		linesBefore += c.LinesBefore
		switch {
		case linesBefore > 0:
			f.WriteElements(ir.StartLineSuffix())
			switch {
			case c.LinesBefore == 0 && prev != nil && prev.Kind.IsLine():
				f.WriteElements(ir.Line(ir.LineHard))
			case c.LinesBefore == 0:
				f.WriteElements(ir.Space())
			case c.LinesBefore == 1:
				f.WriteElements(ir.Line(ir.LineHard))
			default:
				f.WriteElements(ir.Line(ir.LineEmpty))
			}
			f.comment(c)
			f.WriteElements(ir.EndLineSuffix(), ir.ExpandParent())
		case c.Kind.IsLine():
			f.WriteElements(ir.StartLineSuffix(), ir.Space())
			f.comment(c)
			f.WriteElements(ir.EndLineSuffix(), ir.ExpandParent())
		default:
			f.WriteElements(ir.Space())
			f.comment(c)
		}
		prev = &list[i]
	}
	f.WriteElements(ir.EndComments())
	return nil
}

// FormatDanglingComments writes the dangling comments of n that no rule has
// claimed yet.
func (f *Formatter) FormatDanglingComments(n syntax.Node, indent DanglingIndent) error {
	list := f.unformatted(f.ctx.comments.Dangling(n))
	if len(list) == 0 {
		return nil
	}
	body := FormatFunc(func(f *Formatter) error {
		for i, c := range list {
			if i > 0 {
				switch {
				case c.LinesBefore == 0 && list[i-1].Kind.IsLine():
					f.WriteElements(ir.Line(ir.LineHard))
				case c.LinesBefore == 0:
					f.WriteElements(ir.Space())
				case c.LinesBefore == 1:
					f.WriteElements(ir.Line(ir.LineHard))
				default:
					f.WriteElements(ir.Line(ir.LineEmpty))
				}
			}
			f.comment(c)
		}
		if list[len(list)-1].Kind.IsLine() {
			f.WriteElements(ir.ExpandParent())
		}
		return nil
	})

	f.WriteElements(ir.StartComments(ir.PlacementDangling, f.ctx.owner(n)))
	var err error
	switch indent {
	case DanglingBlock:
		err = BlockIndent(body).Fmt(f)
	case DanglingSoft:
		err = Group(SoftBlockIndent(body)).Fmt(f)
	default:
		err = body.Fmt(f)
		if err == nil && list[len(list)-1].Kind.IsLine() {
			f.WriteElements(ir.Line(ir.LineHard))
		}
	}
	if err != nil {
		return err
	}
	f.WriteElements(ir.EndComments())
	return nil
}
