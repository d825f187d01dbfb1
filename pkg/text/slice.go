package text

import (
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrOutOfBounds is returned when a range extends past the source.
	ErrOutOfBounds = errors.Base("range out of bounds")

	// ErrNotCharBoundary is returned when a range endpoint splits a UTF-8
	// encoded character.
	ErrNotCharBoundary = errors.Base("range endpoint is not on a character boundary")
)

// IsCharBoundary reports whether offset is at the start of a UTF-8 encoded
// character in src, or at its end.
func IsCharBoundary(src string, offset Size) bool {
	i := offset.Int()
	if i == 0 || i == len(src) {
		return true
	}
	if i > len(src) {
		return false
	}
	return utf8.RuneStart(src[i])
}

// Slice returns src[r.Start:r.End], verifying bounds and character
// boundaries.
func Slice(src string, r Range) (string, error) {
	if r.End.Int() > len(src) || r.Start > r.End {
		return "", errors.WithDetails(ErrOutOfBounds, "range", r.String(), "len", len(src))
	}
	if !IsCharBoundary(src, r.Start) {
		return "", errors.WithDetails(ErrNotCharBoundary, "offset", r.Start)
	}
	if !IsCharBoundary(src, r.End) {
		return "", errors.WithDetails(ErrNotCharBoundary, "offset", r.End)
	}
	return src[r.Start:r.End], nil
}

// MustSlice is like Slice but panics. It is meant for ranges derived from
// the syntax tree, which are valid by construction.
func MustSlice(src string, r Range) string {
	s, err := Slice(src, r)
	if err != nil {
		panic(err)
	}
	return s
}
