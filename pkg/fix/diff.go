package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// LineKind classifies a line in a diff hunk.
type LineKind uint8

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

func (k LineKind) prefix() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// Line is one line of a hunk, without its line terminator.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
	// NoNewline is set on the last line of a file that has no terminator.
	NoNewline bool `json:"noNewline,omitempty"`
}

// Hunk is a run of changes with surrounding context. Line numbers are
// 1-based, as in unified diff headers.
type Hunk struct {
	OldStart int    `json:"oldStart"`
	OldLines int    `json:"oldLines"`
	NewStart int    `json:"newStart"`
	NewLines int    `json:"newLines"`
	Lines    []Line `json:"lines"`
}

// Header renders the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Diff is a line diff between a file and its formatted form.
type Diff struct {
	Path    string `json:"path"`
	Hunks   []Hunk `json:"hunks"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// GenerateDiff compares original with formatted line by line. It returns
// nil when they are equal.
func GenerateDiff(path, original, formatted string) *Diff {
	if original == formatted {
		return nil
	}
	a, b := splitLines(original), splitLines(formatted)
	ops := lineOps(a, b)

	d := &Diff{Path: path}
	for _, o := range ops {
		switch o.kind {
		case LineAdded:
			d.Added++
		case LineRemoved:
			d.Removed++
		}
	}
	d.Hunks = hunks(ops, a, b)
	return d
}

// HasChanges reports whether the diff has any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteByte(l.Kind.prefix())
			b.WriteString(l.Text)
			b.WriteByte('\n')
			if l.NoNewline {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return b.String()
}

// splitLines splits s after each "\n". Lines keep their terminator so a
// change of line ending or a missing final newline shows up in the diff.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// op is one step of a line edit script. old and new are the positions in
// each file the step applies at.
type op struct {
	kind     LineKind
	old, new int
}

// lineOps computes an edit script from a to b over their longest common
// subsequence. The common prefix and suffix are matched first so the
// quadratic table only covers the changed middle.
func lineOps(a, b []string) []op {
	pre := 0
	for pre < len(a) && pre < len(b) && a[pre] == b[pre] {
		pre++
	}
	suf := 0
	for suf < len(a)-pre && suf < len(b)-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}
	ma, mb := a[pre:len(a)-suf], b[pre:len(b)-suf]
	n, m := len(ma), len(mb)

	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if ma[i] == mb[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]op, 0, len(a)+len(b)-pre-suf)
	for i := range pre {
		ops = append(ops, op{kind: LineContext, old: i, new: i})
	}
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && ma[i] == mb[j]:
			ops = append(ops, op{kind: LineContext, old: pre + i, new: pre + j})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, op{kind: LineRemoved, old: pre + i, new: pre + j})
			i++
		default:
			ops = append(ops, op{kind: LineAdded, old: pre + i, new: pre + j})
			j++
		}
	}
	for k := range suf {
		ops = append(ops, op{kind: LineContext, old: len(a) - suf + k, new: len(b) - suf + k})
	}
	return ops
}

// hunks groups changes that are at most twice the context apart.
func hunks(ops []op, a, b []string) []Hunk {
	var out []Hunk
	for i := 0; i < len(ops); {
		if ops[i].kind == LineContext {
			i++
			continue
		}
		end := i + 1
		for j := i + 1; j < len(ops); j++ {
			if ops[j].kind != LineContext {
				end = j + 1
				continue
			}
			if j-end >= 2*contextLines {
				break
			}
		}
		start := max(i-contextLines, 0)
		stop := min(end+contextLines, len(ops))
		out = append(out, newHunk(ops[start:stop], a, b))
		i = stop
	}
	return out
}

func newHunk(ops []op, a, b []string) Hunk {
	h := Hunk{OldStart: ops[0].old + 1, NewStart: ops[0].new + 1}
	for _, o := range ops {
		var s string
		switch o.kind {
		case LineAdded:
			s = b[o.new]
			h.NewLines++
		case LineRemoved:
			s = a[o.old]
			h.OldLines++
		default:
			s = a[o.old]
			h.OldLines++
			h.NewLines++
		}
		body := strings.TrimSuffix(s, "\n")
		h.Lines = append(h.Lines, Line{
			Kind:      o.kind,
			Text:      strings.TrimSuffix(body, "\r"),
			NoNewline: len(body) == len(s),
		})
	}
	// An empty side is numbered after the line it follows.
	if h.OldLines == 0 {
		h.OldStart--
	}
	if h.NewLines == 0 {
		h.NewStart--
	}
	return h
}
