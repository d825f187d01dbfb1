package fix

import "strings"

// ApplyEdits applies edits to src. The edits may come in any order but must
// not overlap; see PrepareEdits.
func ApplyEdits(src string, edits []TextEdit) (string, error) {
	if len(edits) == 0 {
		return src, nil
	}
	prepared, err := PrepareEdits(src, edits)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, e := range prepared {
		b.WriteString(src[last:e.Range.Start.Int()])
		b.WriteString(e.NewText)
		last = e.Range.End.Int()
	}
	b.WriteString(src[last:])
	return b.String(), nil
}
