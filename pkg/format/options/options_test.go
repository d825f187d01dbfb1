package options_test

import (
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/formatkit/pkg/format/options"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	o := options.Default()
	require.NoError(t, o.Validate())
	assert.Equal(t, options.IndentSpace, o.IndentStyle)
	assert.Equal(t, uint8(2), o.IndentWidth)
	assert.Equal(t, uint16(80), o.LineWidth)
	assert.Equal(t, options.LineEndingLF, o.LineEnding)
	assert.Equal(t, options.QuoteDouble, o.QuoteStyle)
	assert.Equal(t, options.TrailingCommasAll, o.TrailingCommas)
	assert.Equal(t, options.SemicolonsAlways, o.Semicolons)
	assert.True(t, o.BracketSpacing)
	assert.Equal(t, "  ", o.IndentString())
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	t.Parallel()

	o := options.Default()
	o.IndentWidth = 30
	o.LineWidth = 0

	err := o.Validate()
	require.ErrorIs(t, err, options.ErrInvalidOptions)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)

	var fe *options.FieldError
	require.ErrorAs(t, merr.Errors[0], &fe)
	assert.Equal(t, "indentWidth", fe.Field)
	require.ErrorAs(t, merr.Errors[1], &fe)
	assert.Equal(t, "lineWidth", fe.Field)
}

func TestEnums_TextRoundTrip(t *testing.T) {
	t.Parallel()

	o := options.Default()
	o.Semicolons = options.SemicolonsAsNeeded
	o.LineEnding = options.LineEndingCRLF

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"semicolons":"asNeeded"`)
	assert.Contains(t, string(data), `"lineEnding":"crlf"`)

	var back options.Options
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, o, back)
}

func TestEnums_YAML(t *testing.T) {
	t.Parallel()

	var ov options.Overrides
	require.NoError(t, yaml.Unmarshal([]byte("quoteStyle: single\ntrailingCommas: es5\nlineWidth: 100\n"), &ov))

	got := ov.Apply(options.Default())
	assert.Equal(t, options.QuoteSingle, got.QuoteStyle)
	assert.Equal(t, options.TrailingCommasES5, got.TrailingCommas)
	assert.Equal(t, uint16(100), got.LineWidth)
	assert.Equal(t, uint8(2), got.IndentWidth)

	err := yaml.Unmarshal([]byte("quoteStyle: backtick\n"), &ov)
	require.ErrorIs(t, err, options.ErrInvalidValue)
}

func TestOverrides_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		check   func(t *testing.T, o options.Options)
		wantErr error
	}{
		{
			name:  "camel case key",
			key:   "lineWidth",
			value: "120",
			check: func(t *testing.T, o options.Options) { t.Helper(); assert.Equal(t, uint16(120), o.LineWidth) },
		},
		{
			name:  "kebab case key",
			key:   "indent-style",
			value: "tab",
			check: func(t *testing.T, o options.Options) { t.Helper(); assert.Equal(t, options.IndentTab, o.IndentStyle) },
		},
		{
			name:  "screaming snake key",
			key:   "SEMICOLONS",
			value: "as-needed",
			check: func(t *testing.T, o options.Options) {
				t.Helper()
				assert.Equal(t, options.SemicolonsAsNeeded, o.Semicolons)
			},
		},
		{
			name:  "bool option",
			key:   "bracket_spacing",
			value: "false",
			check: func(t *testing.T, o options.Options) { t.Helper(); assert.False(t, o.BracketSpacing) },
		},
		{name: "unknown key", key: "tabSize", value: "4", wantErr: options.ErrUnknownOption},
		{name: "bad number", key: "lineWidth", value: "wide", wantErr: options.ErrInvalidValue},
		{name: "bad enum", key: "lineEnding", value: "nel", wantErr: options.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ov options.Overrides
			err := ov.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, ov.Apply(options.Default()))
		})
	}
}

func TestOverrides_Merge(t *testing.T) {
	t.Parallel()

	var low, high options.Overrides
	require.NoError(t, low.Set("lineWidth", "100"))
	require.NoError(t, low.Set("quoteStyle", "single"))
	require.NoError(t, high.Set("lineWidth", "60"))

	merged := low.Merge(high)
	got := merged.Apply(options.Default())
	assert.Equal(t, uint16(60), got.LineWidth)
	assert.Equal(t, options.QuoteSingle, got.QuoteStyle)
	assert.True(t, options.Overrides{}.IsEmpty())
	assert.False(t, merged.IsEmpty())
}

func TestWireNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"indentStyle", "indentWidth", "lineWidth", "lineEnding", "quoteStyle",
		"trailingCommas", "semicolons", "attributePosition", "bracketSpacing", "language",
	}, options.WireNames())
}
