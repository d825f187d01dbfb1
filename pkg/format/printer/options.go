package printer

import (
	"github.com/yaklabco/formatkit/pkg/format/options"
)

// Options are the layout settings the printer needs.
type Options struct {
	// IndentStyle selects tabs or spaces.
	IndentStyle options.IndentStyle

	// IndentWidth is the number of spaces per level, and the width a tab
	// counts as when measuring.
	IndentWidth int

	// LineWidth is the preferred maximum line width.
	LineWidth int

	// LineEnding is the terminator written for every line break.
	LineEnding options.LineEnding
}

// OptionsFrom extracts printer options from format options.
func OptionsFrom(o options.Options) Options {
	return Options{
		IndentStyle: o.IndentStyle,
		IndentWidth: int(o.IndentWidth),
		LineWidth:   int(o.LineWidth),
		LineEnding:  o.LineEnding,
	}
}

func (o Options) tabWidth() int {
	if o.IndentWidth == 0 {
		return 1
	}
	return o.IndentWidth
}

// indent is an immutable stack of indentation parts. The zero level is nil.
type indent struct {
	parent *indent
	str    string
	width  int
}

func (i *indent) value() (string, int) {
	if i == nil {
		return "", 0
	}
	return i.str, i.width
}

func (o Options) indentOf(i *indent) *indent {
	str, width := i.value()
	if o.IndentStyle == options.IndentTab {
		return &indent{parent: i, str: str + "\t", width: width + o.tabWidth()}
	}
	return &indent{parent: i, str: str + spaces(o.IndentWidth), width: width + o.IndentWidth}
}

func alignOf(i *indent, n int) *indent {
	str, width := i.value()
	return &indent{parent: i, str: str + spaces(n), width: width + n}
}

func dedentOf(i *indent) *indent {
	if i == nil {
		return nil
	}
	return i.parent
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
