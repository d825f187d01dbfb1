package options

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidValue is returned when an enum value cannot be parsed.
var ErrInvalidValue = errors.Base("invalid option value")

// IndentStyle selects tabs or spaces for indentation.
type IndentStyle uint8

// Indent styles.
const (
	IndentSpace IndentStyle = iota
	IndentTab
)

// LineEnding selects the line terminator written by the printer.
type LineEnding uint8

// Line endings.
const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
	LineEndingCR
)

// String returns the terminator itself.
func (l LineEnding) String() string {
	switch l {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// QuoteStyle selects the preferred string quote.
type QuoteStyle uint8

// Quote styles.
const (
	QuoteDouble QuoteStyle = iota
	QuoteSingle
)

// Char returns the quote character.
func (q QuoteStyle) Char() byte {
	if q == QuoteSingle {
		return '\''
	}
	return '"'
}

// TrailingCommas selects where trailing commas are printed in broken lists.
type TrailingCommas uint8

// Trailing comma modes.
const (
	TrailingCommasAll TrailingCommas = iota
	TrailingCommasES5
	TrailingCommasNone
)

// Semicolons selects statement terminator handling.
type Semicolons uint8

// Semicolon modes.
const (
	SemicolonsAlways Semicolons = iota
	SemicolonsAsNeeded
)

// AttributePosition selects markup attribute layout.
type AttributePosition uint8

// Attribute positions.
const (
	AttributeAuto AttributePosition = iota
	AttributeMultiline
)

type enumTable[T ~uint8] struct {
	kind  string
	names []string
}

func (e enumTable[T]) name(v T) string {
	if int(v) < len(e.names) {
		return e.names[v]
	}
	return "unknown"
}

func (e enumTable[T]) parse(s string) (T, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	for i, n := range e.names {
		if strings.ToLower(n) == norm {
			return T(i), nil
		}
	}
	return 0, errors.WithDetails(ErrInvalidValue, "option", e.kind, "value", s, "allowed", strings.Join(e.names, ", "))
}

var (
	indentStyles       = enumTable[IndentStyle]{kind: "indentStyle", names: []string{"space", "tab"}}
	lineEndings        = enumTable[LineEnding]{kind: "lineEnding", names: []string{"lf", "crlf", "cr"}}
	quoteStyles        = enumTable[QuoteStyle]{kind: "quoteStyle", names: []string{"double", "single"}}
	trailingCommas     = enumTable[TrailingCommas]{kind: "trailingCommas", names: []string{"all", "es5", "none"}}
	semicolons         = enumTable[Semicolons]{kind: "semicolons", names: []string{"always", "asNeeded"}}
	attributePositions = enumTable[AttributePosition]{kind: "attributePosition", names: []string{"auto", "multiline"}}
)

// MarshalText implements encoding.TextMarshaler.
func (s IndentStyle) MarshalText() ([]byte, error) { return []byte(indentStyles.name(s)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *IndentStyle) UnmarshalText(b []byte) error {
	v, err := indentStyles.parse(string(b))
	*s = v
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (l LineEnding) MarshalText() ([]byte, error) { return []byte(lineEndings.name(l)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LineEnding) UnmarshalText(b []byte) error {
	v, err := lineEndings.parse(string(b))
	*l = v
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (q QuoteStyle) MarshalText() ([]byte, error) { return []byte(quoteStyles.name(q)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *QuoteStyle) UnmarshalText(b []byte) error {
	v, err := quoteStyles.parse(string(b))
	*q = v
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (t TrailingCommas) MarshalText() ([]byte, error) { return []byte(trailingCommas.name(t)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TrailingCommas) UnmarshalText(b []byte) error {
	v, err := trailingCommas.parse(string(b))
	*t = v
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (s Semicolons) MarshalText() ([]byte, error) { return []byte(semicolons.name(s)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Semicolons) UnmarshalText(b []byte) error {
	v, err := semicolons.parse(string(b))
	*s = v
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (a AttributePosition) MarshalText() ([]byte, error) {
	return []byte(attributePositions.name(a)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AttributePosition) UnmarshalText(b []byte) error {
	v, err := attributePositions.parse(string(b))
	*a = v
	return err
}
