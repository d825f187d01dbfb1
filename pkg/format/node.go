package format

import (
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Node formats n through its language rule.
func Node(n syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error { return f.FormatNode(n) })
}

// Optional formats n when it is present.
func Optional(n syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error {
		if n.IsZero() {
			return nil
		}
		return f.FormatNode(n)
	})
}

// FormatNode formats one node with its comments.
//
// Suppressed nodes print verbatim. When the rule fails with ErrSyntax the
// node's output is rolled back and it prints verbatim with an information
// diagnostic. Dangling comments the rule left alone are printed after the
// node.
func (f *Formatter) FormatNode(n syntax.Node) error {
	if n.IsZero() {
		return ErrSyntax
	}
	c := f.ctx.comments

	if err := f.FormatLeadingComments(n); err != nil {
		return err
	}

	if c.IsSuppressed(n) {
		f.writeVerbatim(n)
		return f.FormatTrailingComments(n)
	}

	rule := f.ctx.lang.Rules().Lookup(n.Kind())
	if rule == nil {
		rule = FormatBogus
	}

	cp := f.Checkpoint()
	err := rule(n, f)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyntax):
		f.Rollback(cp)
		f.writeVerbatim(n)
		f.ctx.Report(Diagnostic{
			Severity: SeverityInformation,
			Message:  "code formatting aborted due to parsing errors",
			Range:    n.TextTrimmedRange(),
		})
	default:
		return err
	}

	if c.HasDangling(n) {
		if err := f.FormatDanglingComments(n, DanglingNone); err != nil {
			return err
		}
	}
	return f.FormatTrailingComments(n)
}

// Verbatim writes the trimmed source of n unchanged and marks every comment
// inside it as formatted.
func Verbatim(n syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error {
		f.writeVerbatim(n)
		return nil
	})
}

func (f *Formatter) writeVerbatim(n syntax.Node) {
	r := n.TextTrimmedRange()
	f.WriteElements(ir.Verbatim(r, n.TextTrimmed()))
	f.ctx.comments.MarkRangeFormatted(r)
}

// FormatBogus is the rule for nodes the parser could not make sense of.
func FormatBogus(n syntax.Node, f *Formatter) error {
	f.writeVerbatim(n)
	f.ctx.Report(Diagnostic{
		Severity: SeverityInformation,
		Message:  "node printed verbatim",
		Range:    n.TextTrimmedRange(),
	})
	return nil
}

// SlotNode returns the node in slot i, if there is one.
func SlotNode(n syntax.Node, i int) (syntax.Node, bool) {
	if i >= n.SlotCount() {
		return syntax.Node{}, false
	}
	el, ok := n.Slot(i)
	if !ok {
		return syntax.Node{}, false
	}
	return el.AsNode()
}

// SlotToken returns the token in slot i, if there is one.
func SlotToken(n syntax.Node, i int) (syntax.Token, bool) {
	if i >= n.SlotCount() {
		return syntax.Token{}, false
	}
	el, ok := n.Slot(i)
	if !ok {
		return syntax.Token{}, false
	}
	return el.AsToken()
}

// Required returns the child node in slot i, or ErrSyntax when it is
// missing.
func Required(n syntax.Node, slot int) (syntax.Node, error) {
	child, ok := SlotNode(n, slot)
	if !ok {
		return syntax.Node{}, errors.WithDetails(ErrSyntax, "slot", slot)
	}
	return child, nil
}

// RequiredToken returns the token in slot i, or ErrSyntax when it is
// missing.
func RequiredToken(n syntax.Node, slot int) (syntax.Token, error) {
	tok, ok := SlotToken(n, slot)
	if !ok {
		return syntax.Token{}, errors.WithDetails(ErrSyntax, "slot", slot)
	}
	return tok, nil
}

// LinesBefore counts the line breaks between n and the token before it,
// stopping at the first comment.
func LinesBefore(n syntax.Node) int {
	tok, ok := n.FirstToken()
	if !ok {
		return 0
	}
	lines := 0
	if prev, ok := tok.PrevToken(); ok && prev.TrailingTrivia().HasNewline() {
		lines++
	}
	for _, piece := range tok.LeadingTrivia().Pieces() {
		if piece.IsComment() {
			break
		}
		if piece.Kind == syntax.TriviaNewline {
			lines++
		}
	}
	return lines
}

// JoinNodesWithHardline formats nodes on separate lines, keeping at most one
// blank line where the source had any.
func JoinNodesWithHardline(nodes []syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error {
		for i, n := range nodes {
			if err := f.ctx.Err(); err != nil {
				return err
			}
			if i > 0 {
				if LinesBefore(n) > 1 {
					f.WriteElements(ir.Line(ir.LineEmpty))
				} else {
					f.WriteElements(ir.Line(ir.LineHard))
				}
			}
			if err := f.FormatNode(n); err != nil {
				return err
			}
		}
		return nil
	})
}

// JoinNodesWithSoftLine formats nodes separated by soft lines, keeping a
// blank line where the source had one.
func JoinNodesWithSoftLine(nodes []syntax.Node) Format {
	return FormatFunc(func(f *Formatter) error {
		for i, n := range nodes {
			if i > 0 {
				if LinesBefore(n) > 1 {
					f.WriteElements(ir.Line(ir.LineEmpty))
				} else {
					f.WriteElements(ir.Line(ir.LineSoft))
				}
			}
			if err := f.FormatNode(n); err != nil {
				return err
			}
		}
		return nil
	})
}
