package syntax

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotLossless is returned when a tree does not reproduce its source.
	ErrNotLossless = errors.Base("tree does not reproduce the source")

	// ErrTriviaRule is returned when a token's trailing trivia continues
	// past a line break.
	ErrTriviaRule = errors.Base("trailing trivia crosses a line break")
)

// CheckLossless verifies that the tokens of root, concatenated in order,
// reproduce src exactly.
func CheckLossless(root Node, src string) error {
	var sb strings.Builder
	sb.Grow(len(src))
	for tok := range root.DescendantTokens() {
		sb.WriteString(tok.Text())
	}
	got := sb.String()
	if got == src {
		return nil
	}
	at := 0
	for at < len(got) && at < len(src) && got[at] == src[at] {
		at++
	}
	return errors.WithDetails(ErrNotLossless, "offset", at, "want", len(src), "got", len(got))
}

// CheckTriviaRule verifies the newline split rule: a line break may only
// appear in trailing trivia as its last piece.
func CheckTriviaRule(root Node) error {
	for tok := range root.DescendantTokens() {
		pieces := tok.green.trailing
		for i, p := range pieces {
			if p.Kind == TriviaNewline && i != len(pieces)-1 {
				return errors.WithDetails(ErrTriviaRule, "offset", tok.TextRange().Start, "token", tok.TextTrimmed())
			}
		}
	}
	return nil
}
