package fix

import (
	"cmp"
	"slices"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/text"
)

var (
	// ErrInvalidEdit is returned for an edit outside the source or one that
	// splits a UTF-8 sequence.
	ErrInvalidEdit = errors.Base("invalid edit")

	// ErrOverlappingEdits is returned when two edits touch the same bytes.
	ErrOverlappingEdits = errors.Base("overlapping edits")
)

// PrepareEdits validates edits against src and returns them sorted by
// position. Insertions at the same offset keep their relative order and
// go before a replacement starting there.
func PrepareEdits(src string, edits []TextEdit) ([]TextEdit, error) {
	for i, e := range edits {
		if err := validateEdit(src, e); err != nil {
			return nil, errors.WithDetails(err, "index", i)
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		if c := cmp.Compare(a.Range.Start, b.Range.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Range.End, b.Range.End)
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Range, sorted[i].Range
		if prev.End > cur.Start {
			return nil, errors.WithDetails(ErrOverlappingEdits, "first", prev.String(), "second", cur.String())
		}
	}
	return sorted, nil
}

func validateEdit(src string, e TextEdit) error {
	r := e.Range
	if r.Start > r.End || r.End > text.Len(src) {
		return errors.WithDetails(ErrInvalidEdit, "range", r.String(), "length", len(src))
	}
	if !text.IsCharBoundary(src, r.Start) || !text.IsCharBoundary(src, r.End) {
		return errors.WithDetails(ErrInvalidEdit, "range", r.String(), "reason", "splits a character")
	}
	return nil
}
