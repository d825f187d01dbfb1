package options

import (
	"strconv"

	"github.com/iancoleman/strcase"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownOption is returned by Overrides.Set for an unknown key.
var ErrUnknownOption = errors.Base("unknown format option")

// Overrides is a partial set of options. Nil fields leave the base value
// alone. Config files, editorconfig, environment variables and flags each
// produce an Overrides that is applied in precedence order.
type Overrides struct {
	IndentStyle       *IndentStyle       `json:"indentStyle,omitempty"       toml:"indentStyle,omitempty"       yaml:"indentStyle,omitempty"`
	IndentWidth       *uint8             `json:"indentWidth,omitempty"       toml:"indentWidth,omitempty"       yaml:"indentWidth,omitempty"`
	LineWidth         *uint16            `json:"lineWidth,omitempty"         toml:"lineWidth,omitempty"         yaml:"lineWidth,omitempty"`
	LineEnding        *LineEnding        `json:"lineEnding,omitempty"        toml:"lineEnding,omitempty"        yaml:"lineEnding,omitempty"`
	QuoteStyle        *QuoteStyle        `json:"quoteStyle,omitempty"        toml:"quoteStyle,omitempty"        yaml:"quoteStyle,omitempty"`
	TrailingCommas    *TrailingCommas    `json:"trailingCommas,omitempty"    toml:"trailingCommas,omitempty"    yaml:"trailingCommas,omitempty"`
	Semicolons        *Semicolons        `json:"semicolons,omitempty"        toml:"semicolons,omitempty"        yaml:"semicolons,omitempty"`
	AttributePosition *AttributePosition `json:"attributePosition,omitempty" toml:"attributePosition,omitempty" yaml:"attributePosition,omitempty"`
	BracketSpacing    *bool              `json:"bracketSpacing,omitempty"    toml:"bracketSpacing,omitempty"    yaml:"bracketSpacing,omitempty"`

	Language map[string]any `json:"language,omitempty" toml:"language,omitempty" yaml:"language,omitempty"`
}

// Apply returns base with every set field of o applied.
func (o Overrides) Apply(base Options) Options {
	if o.IndentStyle != nil {
		base.IndentStyle = *o.IndentStyle
	}
	if o.IndentWidth != nil {
		base.IndentWidth = *o.IndentWidth
	}
	if o.LineWidth != nil {
		base.LineWidth = *o.LineWidth
	}
	if o.LineEnding != nil {
		base.LineEnding = *o.LineEnding
	}
	if o.QuoteStyle != nil {
		base.QuoteStyle = *o.QuoteStyle
	}
	if o.TrailingCommas != nil {
		base.TrailingCommas = *o.TrailingCommas
	}
	if o.Semicolons != nil {
		base.Semicolons = *o.Semicolons
	}
	if o.AttributePosition != nil {
		base.AttributePosition = *o.AttributePosition
	}
	if o.BracketSpacing != nil {
		base.BracketSpacing = *o.BracketSpacing
	}
	if len(o.Language) > 0 {
		merged := make(map[string]any, len(base.Language)+len(o.Language))
		for k, v := range base.Language {
			merged[k] = v
		}
		for k, v := range o.Language {
			merged[k] = v
		}
		base.Language = merged
	}
	return base
}

// Merge returns o with every set field of other applied on top.
func (o Overrides) Merge(other Overrides) Overrides {
	if other.IndentStyle != nil {
		o.IndentStyle = other.IndentStyle
	}
	if other.IndentWidth != nil {
		o.IndentWidth = other.IndentWidth
	}
	if other.LineWidth != nil {
		o.LineWidth = other.LineWidth
	}
	if other.LineEnding != nil {
		o.LineEnding = other.LineEnding
	}
	if other.QuoteStyle != nil {
		o.QuoteStyle = other.QuoteStyle
	}
	if other.TrailingCommas != nil {
		o.TrailingCommas = other.TrailingCommas
	}
	if other.Semicolons != nil {
		o.Semicolons = other.Semicolons
	}
	if other.AttributePosition != nil {
		o.AttributePosition = other.AttributePosition
	}
	if other.BracketSpacing != nil {
		o.BracketSpacing = other.BracketSpacing
	}
	if len(other.Language) > 0 {
		merged := make(map[string]any, len(o.Language)+len(other.Language))
		for k, v := range o.Language {
			merged[k] = v
		}
		for k, v := range other.Language {
			merged[k] = v
		}
		o.Language = merged
	}
	return o
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return o.IndentStyle == nil && o.IndentWidth == nil && o.LineWidth == nil &&
		o.LineEnding == nil && o.QuoteStyle == nil && o.TrailingCommas == nil &&
		o.Semicolons == nil && o.AttributePosition == nil && o.BracketSpacing == nil &&
		len(o.Language) == 0
}

// Set parses value into the option named key. Keys are matched in any
// case convention: "lineWidth", "line-width" and "LINE_WIDTH" are the same.
func (o *Overrides) Set(key, value string) error {
	switch strcase.ToLowerCamel(strcase.ToSnake(key)) {
	case "indentStyle":
		var v IndentStyle
		if err := v.UnmarshalText([]byte(value)); err != nil {
			return err
		}
		o.IndentStyle = &v
	case "indentWidth":
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return errors.WithDetails(ErrInvalidValue, "option", "indentWidth", "value", value)
		}
		v := uint8(n)
		o.IndentWidth = &v
	case "lineWidth":
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return errors.WithDetails(ErrInvalidValue, "option", "lineWidth", "value", value)
		}
		v := uint16(n)
		o.LineWidth = &v
	case "lineEnding":
		var v LineEnding
		if err := v.UnmarshalText([]byte(value)); err != nil {
			return err
		}
		o.LineEnding = &v
	case "quoteStyle":
		var v QuoteStyle
		if err := v.UnmarshalText([]byte(value)); err != nil {
			return err
		}
		o.QuoteStyle = &v
	case "trailingCommas":
		var v TrailingCommas
		if err := v.UnmarshalText([]byte(value)); err != nil {
			return err
		}
		o.TrailingCommas = &v
	case "semicolons":
		var v Semicolons
		if err := v.UnmarshalText([]byte(value)); err != nil {
			return err
		}
		o.Semicolons = &v
	case "attributePosition":
		var v AttributePosition
		if err := v.UnmarshalText([]byte(value)); err != nil {
			return err
		}
		o.AttributePosition = &v
	case "bracketSpacing":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.WithDetails(ErrInvalidValue, "option", "bracketSpacing", "value", value)
		}
		o.BracketSpacing = &b
	default:
		return errors.WithDetails(ErrUnknownOption, "key", key)
	}
	return nil
}
