package text

import "fmt"

// Range is a half-open byte range [Start, End) into a source buffer.
type Range struct {
	Start Size `json:"start"`
	End   Size `json:"end"`
}

// NewRange creates a range. It panics if start > end, which is always a
// logic error in the caller.
func NewRange(start, end Size) Range {
	if start > end {
		panic(fmt.Sprintf("text: invalid range %d..%d", start, end))
	}
	return Range{Start: start, End: end}
}

// At creates a range of the given length starting at offset.
func At(offset, length Size) Range {
	return NewRange(offset, offset+length)
}

// Empty creates an empty range at offset.
func Empty(offset Size) Range {
	return Range{Start: offset, End: offset}
}

// Len returns the length of the range in bytes.
func (r Range) Len() Size {
	return r.End - r.Start
}

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies inside [Start, End).
func (r Range) Contains(offset Size) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsInclusive reports whether offset lies inside [Start, End].
func (r Range) ContainsInclusive(offset Size) bool {
	return offset >= r.Start && offset <= r.End
}

// ContainsRange reports whether other lies completely inside r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Intersect returns the intersection of two ranges and whether it exists.
// Touching ranges intersect in an empty range.
func (r Range) Intersect(other Range) (Range, bool) {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start > end {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// Cover returns the smallest range containing both ranges.
func (r Range) Cover(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Add shifts the range by offset.
func (r Range) Add(offset Size) Range {
	return Range{Start: r.Start + offset, End: r.End + offset}
}

// String renders the range as "start..end".
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
