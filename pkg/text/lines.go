package text

import "sort"

// LineInfo describes one line of a source buffer.
type LineInfo struct {
	// Start is the offset of the first byte of the line.
	Start Size

	// NewlineStart is the offset of the line terminator, or the end of the
	// buffer for the last line.
	NewlineStart Size

	// End is the offset just past the line terminator.
	End Size
}

// LineIndex maps byte offsets to line and column positions.
type LineIndex struct {
	lines []LineInfo
	size  Size
}

// NewLineIndex builds a line index. LF, CRLF and lone CR terminators are
// recognized.
func NewLineIndex(src string) *LineIndex {
	idx := &LineIndex{size: Len(src)}
	lineStart := 0

	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			nl := i
			if i > 0 && src[i-1] == '\r' {
				nl = i - 1
			}
			idx.lines = append(idx.lines, LineInfo{
				Start:        MustSizeOf(lineStart),
				NewlineStart: MustSizeOf(nl),
				End:          MustSizeOf(i + 1),
			})
			lineStart = i + 1
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			idx.lines = append(idx.lines, LineInfo{
				Start:        MustSizeOf(lineStart),
				NewlineStart: MustSizeOf(i),
				End:          MustSizeOf(i + 1),
			})
			lineStart = i + 1
		}
	}

	idx.lines = append(idx.lines, LineInfo{
		Start:        MustSizeOf(lineStart),
		NewlineStart: idx.size,
		End:          idx.size,
	})

	return idx
}

// LineCount returns the number of lines. An empty buffer has one line.
func (l *LineIndex) LineCount() int {
	return len(l.lines)
}

// Line returns the info for a 1-based line number.
func (l *LineIndex) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(l.lines) {
		return LineInfo{}, false
	}
	return l.lines[line-1], true
}

// Position is a 1-based line and byte column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Position converts an offset into a 1-based line and byte column.
// Offsets past the end clamp to the end of the buffer.
func (l *LineIndex) Position(offset Size) Position {
	offset = min(offset, l.size)

	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].End > offset
	})
	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}

	info := l.lines[lineIdx]
	return Position{Line: lineIdx + 1, Column: int(offset-info.Start) + 1}
}

// Offset converts a 1-based line and column back to an offset.
func (l *LineIndex) Offset(pos Position) (Size, bool) {
	info, ok := l.Line(pos.Line)
	if !ok || pos.Column < 1 {
		return 0, false
	}
	offset := info.Start + MustSizeOf(pos.Column-1)
	if offset > info.End {
		return 0, false
	}
	return offset, true
}
