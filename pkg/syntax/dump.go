package syntax

import (
	"fmt"
	"strings"
)

// KindNamer renders a RawKind for debug output.
type KindNamer func(RawKind) string

// Dump renders the subtree in an indented debug form:
//
//	LIST@0..7
//	  0: NUMBER@0..1 "1" [] []
//	  1: COMMA@1..3 "," [] [Whitespace(" ")]
//	  2: (empty)
//
// A nil namer prints kinds as numbers.
func Dump(n Node, name KindNamer) string {
	if name == nil {
		name = func(k RawKind) string { return fmt.Sprintf("KIND_%d", k) }
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s@%s\n", name(n.Kind()), n.TextRange())
	dumpChildren(&sb, n, name, 1)
	return sb.String()
}

func dumpChildren(sb *strings.Builder, n Node, name KindNamer, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range n.SlotCount() {
		el, ok := n.Slot(i)
		if !ok {
			fmt.Fprintf(sb, "%s%d: (empty)\n", indent, i)
			continue
		}
		if child, ok := el.AsNode(); ok {
			fmt.Fprintf(sb, "%s%d: %s@%s\n", indent, i, name(child.Kind()), child.TextRange())
			dumpChildren(sb, child, name, depth+1)
			continue
		}
		tok, _ := el.AsToken()
		fmt.Fprintf(sb, "%s%d: %s@%s %q %s %s\n", indent, i, name(tok.Kind()), tok.TextRange(),
			tok.TextTrimmed(), dumpTrivia(tok.LeadingTrivia()), dumpTrivia(tok.TrailingTrivia()))
	}
}

func dumpTrivia(t Trivia) string {
	parts := make([]string, 0, t.Len())
	for _, p := range t.Pieces() {
		parts = append(parts, fmt.Sprintf("%s(%q)", p.Kind, p.Text))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
