package fix

import (
	"strings"
	"unicode/utf8"
)

// MinimalEdits returns the edits that turn original into formatted. Each
// run of changed lines becomes one edit, narrowed to the bytes that
// actually differ.
func MinimalEdits(original, formatted string) []TextEdit {
	if original == formatted {
		return nil
	}
	a, b := splitLines(original), splitLines(formatted)
	ops := lineOps(a, b)

	var edits []TextEdit
	off := 0
	for i := 0; i < len(ops); {
		if ops[i].kind == LineContext {
			off += len(a[ops[i].old])
			i++
			continue
		}
		start := off
		var repl strings.Builder
		for ; i < len(ops) && ops[i].kind != LineContext; i++ {
			if ops[i].kind == LineRemoved {
				off += len(a[ops[i].old])
			} else {
				repl.WriteString(b[ops[i].new])
			}
		}
		edits = append(edits, narrow(start, original[start:off], repl.String()))
	}
	return edits
}

// narrow drops the common prefix and suffix of old and replacement,
// keeping whole characters.
func narrow(start int, old, replacement string) TextEdit {
	p := 0
	for p < len(old) && p < len(replacement) && old[p] == replacement[p] {
		p++
	}
	for p > 0 && (continues(old, p) || continues(replacement, p)) {
		p--
	}

	s := 0
	for s < len(old)-p && s < len(replacement)-p && old[len(old)-1-s] == replacement[len(replacement)-1-s] {
		s++
	}
	for s > 0 && (continues(old, len(old)-s) || continues(replacement, len(replacement)-s)) {
		s--
	}

	return Replace(start+p, start+len(old)-s, replacement[p:len(replacement)-s])
}

// continues reports whether s[i] is inside a multi-byte character.
func continues(s string, i int) bool {
	return i < len(s) && !utf8.RuneStart(s[i])
}
