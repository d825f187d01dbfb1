// Package options defines the format options shared by every language and
// their validation.
package options

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"gitlab.com/tozd/go/errors"
)

// Option bounds.
const (
	MaxIndentWidth = 24
	MinLineWidth   = 1
	MaxLineWidth   = 320
)

// ErrInvalidOptions is returned by Validate.
var ErrInvalidOptions = errors.Base("invalid format options")

// Options controls layout. The wire names are the camelCase field names.
type Options struct {
	IndentStyle       IndentStyle       `json:"indentStyle"       toml:"indentStyle"       yaml:"indentStyle"`
	IndentWidth       uint8             `json:"indentWidth"       toml:"indentWidth"       yaml:"indentWidth"`
	LineWidth         uint16            `json:"lineWidth"         toml:"lineWidth"         yaml:"lineWidth"`
	LineEnding        LineEnding        `json:"lineEnding"        toml:"lineEnding"        yaml:"lineEnding"`
	QuoteStyle        QuoteStyle        `json:"quoteStyle"        toml:"quoteStyle"        yaml:"quoteStyle"`
	TrailingCommas    TrailingCommas    `json:"trailingCommas"    toml:"trailingCommas"    yaml:"trailingCommas"`
	Semicolons        Semicolons        `json:"semicolons"        toml:"semicolons"        yaml:"semicolons"`
	AttributePosition AttributePosition `json:"attributePosition" toml:"attributePosition" yaml:"attributePosition"`
	BracketSpacing    bool              `json:"bracketSpacing"    toml:"bracketSpacing"    yaml:"bracketSpacing"`

	// Language holds language-specific settings. The core never reads it.
	Language map[string]any `json:"language,omitempty" toml:"language,omitempty" yaml:"language,omitempty"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		IndentStyle:       IndentSpace,
		IndentWidth:       2,
		LineWidth:         80,
		LineEnding:        LineEndingLF,
		QuoteStyle:        QuoteDouble,
		TrailingCommas:    TrailingCommasAll,
		Semicolons:        SemicolonsAlways,
		AttributePosition: AttributeAuto,
		BracketSpacing:    true,
	}
}

// FieldError describes one invalid option.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// Validate checks every bound and returns all violations. The returned
// error matches ErrInvalidOptions and unwraps to a *multierror.Error of
// *FieldError values.
func (o Options) Validate() error {
	var result *multierror.Error

	if o.IndentWidth > MaxIndentWidth {
		result = multierror.Append(result, &FieldError{
			Field:   WireName("IndentWidth"),
			Value:   o.IndentWidth,
			Message: fmt.Sprintf("must be between 0 and %d", MaxIndentWidth),
		})
	}
	if o.LineWidth < MinLineWidth || o.LineWidth > MaxLineWidth {
		result = multierror.Append(result, &FieldError{
			Field:   WireName("LineWidth"),
			Value:   o.LineWidth,
			Message: fmt.Sprintf("must be between %d and %d", MinLineWidth, MaxLineWidth),
		})
	}
	checks := []struct {
		field string
		ok    bool
		value any
	}{
		{"IndentStyle", o.IndentStyle <= IndentTab, o.IndentStyle},
		{"LineEnding", o.LineEnding <= LineEndingCR, o.LineEnding},
		{"QuoteStyle", o.QuoteStyle <= QuoteSingle, o.QuoteStyle},
		{"TrailingCommas", o.TrailingCommas <= TrailingCommasNone, o.TrailingCommas},
		{"Semicolons", o.Semicolons <= SemicolonsAsNeeded, o.Semicolons},
		{"AttributePosition", o.AttributePosition <= AttributeMultiline, o.AttributePosition},
	}
	for _, c := range checks {
		if !c.ok {
			result = multierror.Append(result, &FieldError{Field: WireName(c.field), Value: c.value, Message: "unknown value"})
		}
	}

	if result == nil {
		return nil
	}
	return errors.Errorf("%w: %w", ErrInvalidOptions, result)
}

// WireName returns the camelCase wire name of a Go field name.
func WireName(field string) string {
	return strcase.ToLowerCamel(field)
}

// WireNames lists the wire names of every option in declaration order.
func WireNames() []string {
	t := reflect.TypeFor[Options]()
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		names = append(names, WireName(t.Field(i).Name))
	}
	return names
}

// IndentString returns one level of indentation.
func (o Options) IndentString() string {
	if o.IndentStyle == IndentTab {
		return "\t"
	}
	b := make([]byte, o.IndentWidth)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
