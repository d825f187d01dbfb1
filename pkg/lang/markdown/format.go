package markdown

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

var rules = newRules()

func newRules() format.RuleTable {
	t := make(format.RuleTable, kindCount)
	t[Root] = formatRoot
	t[BlockList] = formatBlockList
	t[Heading] = formatHeading
	t[SetextHeading] = formatLines
	t[Paragraph] = formatLines
	t[List] = formatList
	t[ListItem] = formatListItem
	for k := range verbatimKinds {
		t[k] = formatVerbatim
	}
	return t
}

func tokens(n syntax.Node) []syntax.Token {
	var out []syntax.Token
	for _, el := range n.ChildrenWithTokens() {
		if tok, ok := el.AsToken(); ok {
			out = append(out, tok)
		}
	}
	return out
}

// newlinesBefore counts the line breaks between tok and the token before
// it.
func newlinesBefore(tok syntax.Token) int {
	lines := 0
	if prev, ok := tok.PrevToken(); ok && prev.TrailingTrivia().HasNewline() {
		lines++
	}
	for _, p := range tok.LeadingTrivia().Pieces() {
		if p.Kind == syntax.TriviaNewline {
			lines++
		}
	}
	return lines
}

// hardBreak reports whether tok ends with the two or more spaces that make
// a hard line break.
func hardBreak(tok syntax.Token) bool {
	for _, p := range tok.TrailingTrivia().Pieces() {
		if p.Kind == syntax.TriviaWhitespace && len(p.Text) >= 2 && strings.Trim(p.Text, " ") == "" {
			return true
		}
	}
	return false
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

func isSuppression(n syntax.Node) bool {
	return n.Kind() == HTMLBlock && lang.IsSuppression(n.TextTrimmed())
}

func formatBlockList(n syntax.Node, f *format.Formatter) error {
	blocks := n.Children()
	for i, b := range blocks {
		if i > 0 {
			sep := format.HardLineBreak()
			if format.LinesBefore(b) > 1 {
				sep = format.EmptyLine()
			}
			if err := f.Write(sep); err != nil {
				return err
			}
		}
		block := format.Node(b)
		if i > 0 && isSuppression(blocks[i-1]) {
			block = format.Verbatim(b)
		}
		if err := f.Write(block); err != nil {
			return err
		}
	}
	return nil
}

func formatVerbatim(n syntax.Node, f *format.Formatter) error {
	return f.Write(format.Verbatim(n))
}

// formatHeading writes "#… text". The closing sequence is dropped.
func formatHeading(n syntax.Node, f *format.Formatter) error {
	toks := tokens(n)
	if len(toks) == 0 || toks[0].Kind() != HeadingMarker {
		return f.Write(format.Verbatim(n))
	}
	if err := f.Write(format.Token(toks[0])); err != nil {
		return err
	}
	if len(toks) > 1 && toks[1].Kind() == Line {
		return f.Write(format.Space(), format.Token(toks[1]))
	}
	return nil
}

// formatLines writes one line per token without indentation or trailing
// blanks, keeping hard line breaks between content lines.
func formatLines(n syntax.Node, f *format.Formatter) error {
	toks := tokens(n)
	lastContent := len(toks) - 1
	if n.Kind() == SetextHeading {
		lastContent--
	}
	for i, tok := range toks {
		if i > 0 {
			if err := f.Write(format.HardLineBreak()); err != nil {
				return err
			}
		}
		if err := f.Write(format.Token(tok)); err != nil {
			return err
		}
		if i < lastContent && hardBreak(tok) {
			if err := f.Write(format.Text("  ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatList(n syntax.Node, f *format.Formatter) error {
	for i, item := range n.Children() {
		if i > 0 {
			sep := format.HardLineBreak()
			if format.LinesBefore(item) > 1 {
				sep = format.EmptyLine()
			}
			if err := f.Write(sep); err != nil {
				return err
			}
		}
		if err := f.Write(format.Node(item)); err != nil {
			return err
		}
	}
	return nil
}

// formatListItem writes the marker and aligns every following line with
// the start of the item content. Blank lines collapse to one, except
// inside fenced code.
func formatListItem(n syntax.Node, f *format.Formatter) error {
	toks := tokens(n)
	if len(toks) == 0 || toks[0].Kind() != ListMarker {
		return f.Write(format.Verbatim(n))
	}
	marker, lines := toks[0], toks[1:]
	if err := f.Write(format.Token(marker)); err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	// Markers are at most ten bytes wide.
	width := uint8(text.Width(marker.TextTrimmed(), 1) + 1) //nolint:gosec // bounded above
	body := format.FormatFunc(func(f *format.Formatter) error {
		var fence struct {
			char byte
			n    int
			open bool
		}
		for i, tok := range lines {
			breaks := newlinesBefore(tok)
			switch {
			case i == 0 && breaks == 0:
			case fence.open && breaks > 1:
				// Blank lines inside fenced code are content.
				if err := f.Write(format.Text(strings.Repeat("\n", breaks)), format.HardLineBreak()); err != nil {
					return err
				}
			case breaks > 1:
				if err := f.Write(format.EmptyLine()); err != nil {
					return err
				}
			default:
				if err := f.Write(format.HardLineBreak()); err != nil {
					return err
				}
			}

			if err := f.Write(format.Token(tok)); err != nil {
				return err
			}
			if !fence.open && i+1 < len(lines) && hardBreak(tok) {
				if err := f.Write(format.Text("  ")); err != nil {
					return err
				}
			}

			line := tok.TextTrimmed()
			if fence.open {
				fence.open = !closesFence(line, fence.char, fence.n)
			} else {
				fence.char, fence.n, fence.open = openFence(line)
			}
		}
		return nil
	})

	if newlinesBefore(lines[0]) == 0 {
		return f.Write(format.Space(), format.Align(width, body))
	}
	return f.Write(format.Align(width, body))
}
