package json_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/formattest"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/lang/json"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

func defaults() options.Options {
	return json.Binding.ApplyDefaults(options.Default())
}

func formatJSON(t *testing.T, src string, opts options.Options) *format.Printed {
	t.Helper()

	root, _ := json.Parse(src)
	require.NoError(t, syntax.CheckLossless(root, src))
	require.NoError(t, syntax.CheckTriviaRule(root))

	printed, err := format.FormatTree(context.Background(), json.Binding, root, opts)
	require.NoError(t, err)
	return printed
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		width uint16
		want  string
	}{
		{
			name: "flat object with bracket spacing",
			src:  `{"a":1,"b":2}`,
			want: "{ \"a\": 1, \"b\": 2 }\n",
		},
		{
			name: "object broken after brace stays broken",
			src:  "{\n\"a\":1}",
			want: "{\n  \"a\": 1\n}\n",
		},
		{
			name:  "long object breaks",
			src:   `{"name":"formatkit","tags":["a","b"]}`,
			width: 30,
			want:  "{\n  \"name\": \"formatkit\",\n  \"tags\": [\"a\", \"b\"]\n}\n",
		},
		{
			name: "number array",
			src:  "[1,2,   3]",
			want: "[1, 2, 3]\n",
		},
		{
			name:  "number array fills lines",
			src:   "[100,200,300,400,500]",
			width: 12,
			want:  "[\n  100, 200,\n  300, 400,\n  500\n]\n",
		},
		{
			name: "trailing comma dropped",
			src:  `[true, false, null,]`,
			want: "[true, false, null]\n",
		},
		{
			name: "empty containers",
			src:  `{"a":{},"b":[]}`,
			want: "{ \"a\": {}, \"b\": [] }\n",
		},
		{
			name: "comments",
			src:  "{\n  // leading\n  \"a\": 1, // trailing\n  \"b\": 2\n}",
			want: "{\n  // leading\n  \"a\": 1, // trailing\n  \"b\": 2\n}\n",
		},
		{
			name: "dangling comment",
			src:  "{ /* none */ }",
			want: "{\n  /* none */\n}\n",
		},
		{
			name: "blank lines between members collapse to one",
			src:  "{\n\"a\": 1,\n\n\n\"b\": 2}",
			want: "{\n  \"a\": 1,\n\n  \"b\": 2\n}\n",
		},
		{
			name: "suppressed member",
			src:  "{\n  // formatkit-ignore\n  \"a\":   [1,2],\n  \"b\":   3\n}",
			want: "{\n  // formatkit-ignore\n  \"a\":   [1,2],\n  \"b\": 3\n}\n",
		},
		{
			name: "empty file",
			src:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := defaults()
			if tt.width != 0 {
				opts.LineWidth = tt.width
			}
			printed := formatJSON(t, tt.src, opts)
			assert.Equal(t, tt.want, printed.Code)
			formattest.AssertOutput(t, json.Binding, tt.src, opts, printed.Code)

			again := formatJSON(t, printed.Code, opts)
			assert.Equal(t, printed.Code, again.Code, "formatting is not idempotent")
		})
	}
}

func TestFormat_TrailingCommas(t *testing.T) {
	t.Parallel()

	opts := defaults()
	opts.TrailingCommas = options.TrailingCommasAll

	printed := formatJSON(t, "{\n\"a\":1}", opts)
	assert.Equal(t, "{\n  \"a\": 1,\n}\n", printed.Code)

	printed = formatJSON(t, `{"a":1}`, opts)
	assert.Equal(t, "{ \"a\": 1 }\n", printed.Code)
}

func TestFormat_BracketSpacing(t *testing.T) {
	t.Parallel()

	opts := defaults()
	opts.BracketSpacing = false

	printed := formatJSON(t, `{"a":1}`, opts)
	assert.Equal(t, "{\"a\": 1}\n", printed.Code)
}

func TestFormat_SyntaxErrors(t *testing.T) {
	t.Parallel()

	src := `{"a": , "b":2}`
	root, diags := json.Parse(src)
	require.NotEmpty(t, diags)
	require.NoError(t, syntax.CheckLossless(root, src))

	printed, err := format.FormatTree(context.Background(), json.Binding, root, defaults())
	require.NoError(t, err)
	assert.Equal(t, "{ \"a\":, \"b\": 2 }\n", printed.Code)
	require.Len(t, printed.Diagnostics, 1)
	assert.Equal(t, format.SeverityInformation, printed.Diagnostics[0].Severity)
}

func TestFormat_BogusValue(t *testing.T) {
	t.Parallel()

	src := "[1, nope, 3]"
	root, diags := json.Parse(src)
	require.Len(t, diags, 1)
	require.NoError(t, syntax.CheckLossless(root, src))

	printed, err := format.FormatTree(context.Background(), json.Binding, root, defaults())
	require.NoError(t, err)
	assert.Equal(t, "[1, nope, 3]\n", printed.Code)
}

func TestDocument_Golden(t *testing.T) {
	t.Parallel()

	root, _ := json.Parse(`{"a":1}`)
	formatted, err := format.FormatNode(context.Background(), json.Binding, root, defaults())
	require.NoError(t, err)
	golden.Assert(t, formatted.Document().String(), "object.golden")
}

func TestBinding(t *testing.T) {
	t.Parallel()

	b, ok := lang.DefaultRegistry.ForPath("settings.JSONC")
	require.True(t, ok)
	assert.Equal(t, "json", b.Name())

	assert.Equal(t, options.TrailingCommasNone, defaults().TrailingCommas)
	assert.Equal(t, "JSON_OBJECT_VALUE", json.Binding.KindName(json.Object))
}
