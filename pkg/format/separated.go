package format

import (
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// SeparatedItem is a list entry and the separator token that followed it
// in the source, if any.
type SeparatedItem struct {
	Node      syntax.Node
	Separator syntax.Token
}

// SeparatedItems splits a list whose entries are separated by tokens of
// kind sep.
func SeparatedItems(list syntax.Node, sep syntax.RawKind) []SeparatedItem {
	var out []SeparatedItem
	for _, el := range list.ChildrenWithTokens() {
		if n, ok := el.AsNode(); ok {
			out = append(out, SeparatedItem{Node: n})
			continue
		}
		tok, ok := el.AsToken()
		if ok && tok.Kind() == sep && len(out) > 0 && out[len(out)-1].Separator.IsZero() {
			out[len(out)-1].Separator = tok
		}
	}
	return out
}

// FormatSeparator writes the item's separator token, or text when the
// source had none.
func (it SeparatedItem) FormatSeparator(text string) Format {
	if it.Separator.IsZero() {
		return Text(text)
	}
	return ReplaceToken(it.Separator, text)
}

// Separated formats items with a separator and a soft line between them.
// A blank line in the source between two items is kept. With trailing set
// a separator follows the last item when the enclosing group breaks.
func Separated(items []SeparatedItem, sep string, trailing bool) Format {
	return FormatFunc(func(f *Formatter) error {
		if len(items) == 0 {
			return nil
		}
		for i, it := range items {
			if i > 0 {
				if LinesBefore(it.Node) > 1 {
					f.WriteElements(ir.Line(ir.LineEmpty))
				} else {
					f.WriteElements(ir.Line(ir.LineSoftOrSpace))
				}
			}
			if err := f.FormatNode(it.Node); err != nil {
				return err
			}
			if i < len(items)-1 {
				if err := it.FormatSeparator(sep).Fmt(f); err != nil {
					return err
				}
			}
		}
		if trailing {
			return IfGroupBreaks(Text(sep)).Fmt(f)
		}
		return nil
	})
}

// SeparatedFill is Separated for short entries: as many items as fit go on
// each line.
func SeparatedFill(items []SeparatedItem, sep string, trailing bool) Format {
	return FormatFunc(func(f *Formatter) error {
		if len(items) == 0 {
			return nil
		}
		entries := make([]Format, len(items))
		for i, it := range items {
			if i < len(items)-1 {
				entries[i] = Seq(Node(it.Node), it.FormatSeparator(sep))
			} else {
				entries[i] = Node(it.Node)
			}
		}
		if err := Fill(SoftLineBreakOrSpace(), entries...).Fmt(f); err != nil {
			return err
		}
		if trailing {
			return IfGroupBreaks(Text(sep)).Fmt(f)
		}
		return nil
	})
}
