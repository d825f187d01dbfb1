// Package formattest checks properties that hold for every formatted
// output, independent of the exact layout a fixture expects.
package formattest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

// AssertOutput formats src with b and checks out, the code printed for
// it, against AssertComments and AssertLineWidth.
func AssertOutput(t testing.TB, b lang.Binding, src string, opts options.Options, out string) {
	t.Helper()

	root, _ := b.Parse(src)
	formatted, err := format.FormatNode(context.Background(), b, root, opts)
	require.NoError(t, err)

	AssertComments(t, formatted.Context().Comments(), src, out)
	AssertLineWidth(t, root, formatted.Document(), opts, out)
}

// AssertComments checks that out holds each collected comment exactly as
// often as src does. A dropped or duplicated comment changes the count.
func AssertComments(t testing.TB, table *comments.Comments, src, out string) {
	t.Helper()

	seen := make(map[string]bool)
	for _, c := range table.All() {
		if seen[c.Text()] {
			continue
		}
		seen[c.Text()] = true
		assert.Equalf(t, strings.Count(src, c.Text()), strings.Count(out, c.Text()),
			"comment %q is not printed exactly once", c.Text())
	}
}

// AssertLineWidth checks that every line of out fits opts.LineWidth. A
// line may overflow when it lies inside verbatim content, or when it still
// fits once its widest unbreakable token (a token or comment of root) is
// left out.
func AssertLineWidth(t testing.TB, root syntax.Node, doc ir.Document, opts options.Options, out string) {
	t.Helper()

	limit := int(opts.LineWidth)
	tabWidth := max(int(opts.IndentWidth), 1)
	verbatim := verbatimText(doc, nil)
	atoms := unbreakable(root)

	out = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(out)
	for i, line := range strings.Split(out, "\n") {
		width := text.Width(line, tabWidth)
		if width <= limit || inVerbatim(line, verbatim) {
			continue
		}
		if width-widestAtom(line, atoms, tabWidth) <= limit {
			continue
		}
		assert.Failf(t, "line exceeds the line width",
			"line %d is %d columns wide, limit %d: %q", i+1, width, limit, line)
	}
}

func verbatimText(doc ir.Document, out []string) []string {
	for _, el := range doc {
		switch el.Kind {
		case ir.KindVerbatim:
			out = append(out, el.Text)
		case ir.KindBestFitting:
			for _, v := range el.Variants {
				out = verbatimText(v, out)
			}
		case ir.KindInterned:
			if el.Interned != nil {
				out = verbatimText(el.Interned.Doc, out)
			}
		}
	}
	return out
}

func inVerbatim(line string, verbatim []string) bool {
	trimmed := strings.TrimSpace(line)
	for _, v := range verbatim {
		if strings.Contains(v, trimmed) {
			return true
		}
	}
	return false
}

// unbreakable collects the single-line pieces of every token and comment.
// Quoted tokens are also recorded with their quotes swapped, since the
// printer may normalize them.
func unbreakable(root syntax.Node) []string {
	set := make(map[string]bool)
	add := func(s string) {
		for _, part := range strings.Split(s, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				set[part] = true
			}
		}
	}
	for tok := range root.DescendantTokens() {
		add(tok.TextTrimmed())
		if swapped, ok := swapQuotes(tok.TextTrimmed()); ok {
			add(swapped)
		}
		for _, p := range tok.LeadingTrivia().Pieces() {
			if p.IsComment() {
				add(p.Text)
			}
		}
		for _, p := range tok.TrailingTrivia().Pieces() {
			if p.IsComment() {
				add(p.Text)
			}
		}
	}

	atoms := make([]string, 0, len(set))
	for s := range set {
		atoms = append(atoms, s)
	}
	return atoms
}

func swapQuotes(s string) (string, bool) {
	if len(s) < 2 || s[0] != s[len(s)-1] {
		return "", false
	}
	switch s[0] {
	case '"':
		return "'" + s[1:len(s)-1] + "'", true
	case '\'':
		return `"` + s[1:len(s)-1] + `"`, true
	}
	return "", false
}

func widestAtom(line string, atoms []string, tabWidth int) int {
	widest := 0
	for _, a := range atoms {
		if strings.Contains(line, a) {
			widest = max(widest, text.Width(a, tabWidth))
		}
	}
	return widest
}
