package text

import (
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/mattn/go-runewidth"
)

// Width returns the visible width of s in terminal columns. Grapheme
// clusters count once, using the width of their first rune; a tab counts
// as tabWidth columns. Newlines are not expected and count as zero.
func Width(s string, tabWidth int) int {
	if isASCIIPrintable(s) {
		return len(s)
	}

	width := 0
	data := []byte(s)
	for len(data) > 0 {
		advance, cluster, err := textseg.ScanGraphemeClusters(data, true)
		if err != nil || advance == 0 {
			width += runewidth.StringWidth(string(data))
			break
		}
		data = data[advance:]

		r, _ := utf8.DecodeRune(cluster)
		switch r {
		case '\t':
			width += tabWidth
		case '\n', '\r':
		default:
			width += runewidth.RuneWidth(r)
		}
	}
	return width
}

func isASCIIPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c >= 0x7f {
			return false
		}
	}
	return true
}
