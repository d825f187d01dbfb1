package format

import (
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

func element(el ir.Element) Format {
	return FormatFunc(func(f *Formatter) error {
		f.WriteElements(el)
		return nil
	})
}

// wrap surrounds content with a start and end tag.
func wrap(start, end ir.Element, content []Format) Format {
	return FormatFunc(func(f *Formatter) error {
		f.WriteElements(start)
		if err := f.Write(content...); err != nil {
			return err
		}
		f.WriteElements(end)
		return nil
	})
}

// Elements writes already built IR, such as an interned reference.
func Elements(elements ...ir.Element) Format {
	return FormatFunc(func(f *Formatter) error {
		f.WriteElements(elements...)
		return nil
	})
}

// IsLabelled reports whether el, or the interned document it refers to,
// starts with the given label.
func IsLabelled(el ir.Element, label string) bool {
	if el.Kind == ir.KindInterned && el.Interned != nil {
		if len(el.Interned.Doc) == 0 {
			return false
		}
		el = el.Interned.Doc[0]
	}
	return el.IsStart() && el.Tag.Kind == ir.TagLabel && el.Tag.Label == label
}

// Seq formats items one after the other.
func Seq(items ...Format) Format {
	return FormatFunc(func(f *Formatter) error { return f.Write(items...) })
}

// Text writes static text. It must not contain line breaks.
func Text(s string) Format { return element(ir.Text(s)) }

// DynamicText writes text taken from the source at pos.
func DynamicText(s string, pos text.Size) Format { return element(ir.DynamicText(s, pos)) }

// Token writes the trimmed text of tok. Tokens carrying skipped trivia
// can't be reformatted safely.
func Token(tok syntax.Token) Format {
	return FormatFunc(func(f *Formatter) error {
		if tok.IsZero() {
			return ErrSyntax
		}
		if tok.HasSkippedTrivia() {
			return ErrSyntax
		}
		f.WriteElements(ir.DynamicText(tok.TextTrimmed(), tok.TextTrimmedRange().Start))
		return nil
	})
}

// ReplaceToken writes s in place of tok, keeping its source position.
func ReplaceToken(tok syntax.Token, s string) Format {
	return FormatFunc(func(f *Formatter) error {
		if tok.IsZero() || tok.HasSkippedTrivia() {
			return ErrSyntax
		}
		f.WriteElements(ir.DynamicText(s, tok.TextTrimmedRange().Start))
		return nil
	})
}

// Space writes a single space.
func Space() Format { return element(ir.Space()) }

// SoftLineBreak breaks in expanded mode and prints nothing otherwise.
func SoftLineBreak() Format { return element(ir.Line(ir.LineSoft)) }

// SoftLineBreakOrSpace breaks in expanded mode and prints a space otherwise.
func SoftLineBreakOrSpace() Format { return element(ir.Line(ir.LineSoftOrSpace)) }

// HardLineBreak always breaks.
func HardLineBreak() Format { return element(ir.Line(ir.LineHard)) }

// EmptyLine always breaks and leaves one blank line.
func EmptyLine() Format { return element(ir.Line(ir.LineEmpty)) }

// ExpandParent forces the enclosing group to expand.
func ExpandParent() Format { return element(ir.ExpandParent()) }

// LineSuffixBoundary flushes pending line suffixes with a line break.
func LineSuffixBoundary() Format { return element(ir.LineSuffixBoundary()) }

// GroupBuilder builds a group. It implements Format.
type GroupBuilder struct {
	content []Format
	id      ir.GroupID
	expand  bool
}

// Group tries to print content flat and expands it when it doesn't fit.
func Group(content ...Format) *GroupBuilder {
	return &GroupBuilder{content: content}
}

// WithID names the group so conditional content can refer to it.
func (g *GroupBuilder) WithID(id ir.GroupID) *GroupBuilder {
	g.id = id
	return g
}

// ShouldExpand forces the group to expand.
func (g *GroupBuilder) ShouldExpand(expand bool) *GroupBuilder {
	g.expand = expand
	return g
}

// Fmt implements Format.
func (g *GroupBuilder) Fmt(f *Formatter) error {
	mode := ir.ExpandNone
	if g.expand {
		mode = ir.ExpandTrue
	}
	return wrap(ir.StartGroup(g.id, mode), ir.EndGroup(), g.content).Fmt(f)
}

// Indent increases the indentation of lines started inside content.
func Indent(content ...Format) Format {
	return wrap(ir.StartIndent(), ir.EndIndent(), content)
}

// BlockIndent puts content on its own indented lines.
func BlockIndent(content ...Format) Format {
	return blockIndent(ir.LineHard, content)
}

// SoftBlockIndent is BlockIndent that only breaks when the group expands.
func SoftBlockIndent(content ...Format) Format {
	return blockIndent(ir.LineSoft, content)
}

// SoftBlockIndentWithMaybeSpace is SoftBlockIndent that pads content with
// spaces when flat and space is set.
func SoftBlockIndentWithMaybeSpace(space bool, content ...Format) Format {
	if space {
		return blockIndent(ir.LineSoftOrSpace, content)
	}
	return blockIndent(ir.LineSoft, content)
}

func blockIndent(mode ir.LineMode, content []Format) Format {
	return FormatFunc(func(f *Formatter) error {
		start := f.buf.Len()
		f.WriteElements(ir.StartIndent(), ir.Line(mode))
		if err := f.Write(content...); err != nil {
			return err
		}
		if f.buf.Len() == start+2 {
			// Nothing was written; drop the indent.
			f.buf.truncate(start)
			return nil
		}
		f.WriteElements(ir.EndIndent(), ir.Line(mode))
		return nil
	})
}

// SoftLineIndentOrSpace breaks and indents content when the group expands
// and separates it with a space otherwise.
func SoftLineIndentOrSpace(content ...Format) Format {
	return FormatFunc(func(f *Formatter) error {
		f.WriteElements(ir.StartIndent(), ir.Line(ir.LineSoftOrSpace))
		if err := f.Write(content...); err != nil {
			return err
		}
		f.WriteElements(ir.EndIndent())
		return nil
	})
}

// Align indents content by n spaces regardless of the indent style.
func Align(n uint8, content ...Format) Format {
	return wrap(ir.StartAlign(n), ir.EndAlign(), content)
}

// Dedent removes one level of indentation.
func Dedent(content ...Format) Format {
	return wrap(ir.StartDedent(ir.DedentLevel), ir.EndDedent(), content)
}

// DedentToRoot removes all indentation.
func DedentToRoot(content ...Format) Format {
	return wrap(ir.StartDedent(ir.DedentRoot), ir.EndDedent(), content)
}

// ConditionalBuilder builds conditional content. It implements Format.
type ConditionalBuilder struct {
	mode    ir.PrintMode
	group   ir.GroupID
	content []Format
}

// IfGroupBreaks prints content only when the enclosing (or named) group is
// expanded.
func IfGroupBreaks(content ...Format) *ConditionalBuilder {
	return &ConditionalBuilder{mode: ir.ModeExpanded, content: content}
}

// IfGroupFitsOnLine prints content only when the enclosing (or named) group
// is flat.
func IfGroupFitsOnLine(content ...Format) *ConditionalBuilder {
	return &ConditionalBuilder{mode: ir.ModeFlat, content: content}
}

// InGroup makes the condition depend on the group with the given id.
func (c *ConditionalBuilder) InGroup(id ir.GroupID) *ConditionalBuilder {
	c.group = id
	return c
}

// Fmt implements Format.
func (c *ConditionalBuilder) Fmt(f *Formatter) error {
	return wrap(ir.StartConditionalContent(c.mode, c.group), ir.EndConditionalContent(), c.content).Fmt(f)
}

// IndentIfGroupBreaks indents content when the group with id is expanded.
func IndentIfGroupBreaks(id ir.GroupID, content ...Format) Format {
	return wrap(ir.StartIndentIfGroupBreaks(id), ir.EndIndentIfGroupBreaks(), content)
}

// Fill packs entries on as few lines as possible, placing separator
// between consecutive entries. The separator is normally a soft line.
func Fill(separator Format, entries ...Format) Format {
	return FormatFunc(func(f *Formatter) error {
		f.WriteElements(ir.StartFill())
		for i, entry := range entries {
			if i > 0 {
				if err := wrap(ir.StartEntry(), ir.EndEntry(), []Format{separator}).Fmt(f); err != nil {
					return err
				}
			}
			if err := wrap(ir.StartEntry(), ir.EndEntry(), []Format{entry}).Fmt(f); err != nil {
				return err
			}
		}
		f.WriteElements(ir.EndFill())
		return nil
	})
}

// BestFitting prints the first variant that fits, falling back to the last
// one printed expanded. Variants go from most to least flat.
func BestFitting(variants ...Format) Format {
	return FormatFunc(func(f *Formatter) error {
		docs := make([]ir.Document, 0, len(variants))
		for _, v := range variants {
			doc, err := f.capture(v)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		el, err := ir.BestFitting(docs...)
		if err != nil {
			return err
		}
		f.WriteElements(el)
		return nil
	})
}

// LineSuffix defers content to the end of the line.
func LineSuffix(content ...Format) Format {
	return wrap(ir.StartLineSuffix(), ir.EndLineSuffix(), content)
}

// Labelled tags content with a label that rules can look for.
func Labelled(label string, content ...Format) Format {
	return wrap(ir.StartLabel(label), ir.EndLabel(), content)
}

// JoinWith formats items with separator between them.
func JoinWith(separator Format, items ...Format) Format {
	return FormatFunc(func(f *Formatter) error {
		for i, item := range items {
			if i > 0 {
				if err := f.Write(separator); err != nil {
					return err
				}
			}
			if err := f.Write(item); err != nil {
				return err
			}
		}
		return nil
	})
}
