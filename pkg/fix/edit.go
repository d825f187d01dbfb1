// Package fix turns formatter output into byte edits and unified diffs.
//
// Edits address the original source by byte range, so editors can apply a
// formatting result without replacing the whole buffer.
package fix

import "github.com/yaklabco/formatkit/pkg/text"

// TextEdit replaces the bytes in Range with NewText. An empty range is an
// insertion; an empty NewText is a deletion.
type TextEdit struct {
	Range   text.Range `json:"range"`
	NewText string     `json:"newText"`
}

// Replace returns an edit replacing src[start:end].
func Replace(start, end int, newText string) TextEdit {
	return TextEdit{
		Range:   text.NewRange(text.MustSizeOf(start), text.MustSizeOf(end)),
		NewText: newText,
	}
}

// Insert returns an edit inserting s at offset.
func Insert(offset int, s string) TextEdit {
	return Replace(offset, offset, s)
}

// Delete returns an edit removing src[start:end].
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

// IsNoop reports whether applying the edit to src changes nothing.
func (e TextEdit) IsNoop(src string) bool {
	if e.Range.End.Int() > len(src) {
		return false
	}
	return src[e.Range.Start:e.Range.End] == e.NewText
}
