// Package text provides byte offsets, half-open byte ranges and checked
// slicing over UTF-8 source text.
//
// All offsets are byte-denominated. A Range is the half-open interval
// [Start, End).
package text

import (
	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"
)

// ErrOffsetOverflow is returned when a Go int does not fit in a Size.
var ErrOffsetOverflow = errors.Base("offset does not fit in 32 bits")

// Size is a byte offset or a byte length in a source buffer.
type Size uint32

// SizeOf converts an int to a Size, failing on negative or oversized values.
func SizeOf(n int) (Size, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, errors.WithDetails(ErrOffsetOverflow, "value", n)
	}
	return Size(v), nil
}

// MustSizeOf is like SizeOf but panics on failure. Use it only where the
// value is already known to be in range (for example the length of a
// string that was accepted as a source buffer).
func MustSizeOf(n int) Size {
	s, err := SizeOf(n)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the byte length of s as a Size.
func Len(s string) Size {
	return MustSizeOf(len(s))
}

// Int returns the size as an int, suitable for indexing.
func (s Size) Int() int {
	return int(s)
}
