package html

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

var rules = newRules()

func newRules() format.RuleTable {
	t := make(format.RuleTable, kindCount)
	t[Root] = formatRoot
	t[ElementList] = formatElementList
	t[Element] = formatElement
	t[StartTag] = formatStartTag
	t[EndTag] = formatEndTag
	t[Attribute] = formatAttribute
	t[Text] = formatText
	t[Comment] = formatToken
	t[Doctype] = formatToken
	t[RawContent] = formatRaw
	t[Bogus] = format.FormatBogus
	return t
}

func formatRoot(n syntax.Node, f *format.Formatter) error {
	list, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	if len(list.Children()) == 0 {
		return nil
	}
	return f.Write(format.Node(list), format.HardLineBreak())
}

func formatToken(n syntax.Node, f *format.Formatter) error {
	tok, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	return f.Write(format.Token(tok))
}

func formatRaw(n syntax.Node, f *format.Formatter) error {
	return f.Write(format.Verbatim(n))
}

// whitespaceBefore reports whether whitespace separates tok from the
// token before it, and how many line breaks it holds.
func whitespaceBefore(tok syntax.Token) (bool, int) {
	var pieces []syntax.SyntaxTriviaPiece
	if prev, ok := tok.PrevToken(); ok {
		pieces = append(pieces, prev.TrailingTrivia().Pieces()...)
	}
	pieces = append(pieces, tok.LeadingTrivia().Pieces()...)

	lines := 0
	for _, p := range pieces {
		if p.Kind == syntax.TriviaNewline {
			lines++
		}
	}
	return len(pieces) > 0, lines
}

// separator keeps nodes that touch in the source together, keeps the
// author's line breaks (at most one blank line) and otherwise allows a
// break where there was a space.
func separator(n syntax.Node) format.Format {
	tok, ok := n.FirstToken()
	if !ok {
		return nil
	}
	space, lines := whitespaceBefore(tok)
	switch {
	case !space:
		return nil
	case lines > 1:
		return format.EmptyLine()
	case lines == 1:
		return format.HardLineBreak()
	default:
		return format.SoftLineBreakOrSpace()
	}
}

func isSuppression(n syntax.Node) bool {
	return n.Kind() == Comment && lang.IsSuppression(n.TextTrimmed())
}

func formatElementList(n syntax.Node, f *format.Formatter) error {
	children := n.Children()
	for i, child := range children {
		if i > 0 {
			if err := f.Write(separator(child)); err != nil {
				return err
			}
		}
		item := format.Node(child)
		if i > 0 && isSuppression(children[i-1]) {
			item = format.Verbatim(child)
		}
		if err := f.Write(item); err != nil {
			return err
		}
	}
	return nil
}

func tagName(start syntax.Node) string {
	tok, ok := format.SlotToken(start, 1)
	if !ok {
		return ""
	}
	return tok.TextTrimmed()
}

func formatElement(n syntax.Node, f *format.Formatter) error {
	start, err := format.Required(n, 0)
	if err != nil {
		return err
	}
	list, hasContent := format.SlotNode(n, 1)
	end, hasEnd := format.SlotNode(n, 2)
	switch {
	case !hasContent:
		return f.Write(format.Node(start))
	case !hasEnd:
		return format.ErrSyntax
	}

	children := list.Children()
	switch {
	case isRaw(tagName(start)):
		return f.Write(format.Node(start), format.Node(list), format.Node(end))
	case len(children) == 0:
		return f.Write(format.Node(start), format.Node(end))
	}

	return f.Write(format.Group(
		format.Node(start),
		format.Indent(separator(children[0]), format.Node(list)),
		separator(end),
		format.Node(end),
	))
}

func formatStartTag(n syntax.Node, f *format.Formatter) error {
	open, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	name, err := format.RequiredToken(n, 1)
	if err != nil {
		return err
	}
	attrs, err := format.Required(n, 2)
	if err != nil {
		return err
	}
	closing, err := format.RequiredToken(n, 3)
	if err != nil {
		return err
	}
	selfClosing := closing.Kind() == SlashTagClose

	items := attrs.Children()
	if len(items) == 0 {
		if selfClosing {
			return f.Write(format.Token(open), format.Token(name), format.Space(), format.Token(closing))
		}
		return f.Write(format.Token(open), format.Token(name), format.Token(closing))
	}

	list := make([]format.Format, 0, 2*len(items))
	for _, attr := range items {
		list = append(list, format.SoftLineBreakOrSpace(), format.Node(attr))
	}
	beforeClose := format.SoftLineBreak()
	if selfClosing {
		beforeClose = format.SoftLineBreakOrSpace()
	}
	expand := f.Options().AttributePosition == options.AttributeMultiline && len(items) > 1
	return f.Write(
		format.Token(open), format.Token(name),
		format.Group(format.Indent(list...), beforeClose, format.Token(closing)).ShouldExpand(expand),
	)
}

func formatEndTag(n syntax.Node, f *format.Formatter) error {
	for i := range 3 {
		tok, err := format.RequiredToken(n, i)
		if err != nil {
			return err
		}
		if err := f.Write(format.Token(tok)); err != nil {
			return err
		}
	}
	return nil
}

func formatAttribute(n syntax.Node, f *format.Formatter) error {
	name, err := format.RequiredToken(n, 0)
	if err != nil {
		return err
	}
	eq, ok := format.SlotToken(n, 1)
	if !ok {
		return f.Write(format.Token(name))
	}
	value, err := format.RequiredToken(n, 2)
	if err != nil {
		return err
	}
	return f.Write(format.Token(name), format.Token(eq), format.ReplaceToken(value, quoteValue(value.TextTrimmed())))
}

// quoteValue puts an attribute value in double quotes unless it contains
// one.
func quoteValue(raw string) string {
	value := raw
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		value = raw[1 : len(raw)-1]
	}
	switch {
	case !strings.Contains(value, `"`):
		return `"` + value + `"`
	case !strings.Contains(value, "'"):
		return "'" + value + "'"
	default:
		return raw
	}
}

// formatText fills lines with the words of a text run.
func formatText(n syntax.Node, f *format.Formatter) error {
	var words []format.Format
	for _, el := range n.ChildrenWithTokens() {
		if tok, ok := el.AsToken(); ok {
			words = append(words, format.Token(tok))
		}
	}
	return f.Write(format.Fill(format.SoftLineBreakOrSpace(), words...))
}
