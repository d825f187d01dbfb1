package html_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/formattest"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/lang/html"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

func formatHTML(t *testing.T, src string, opts options.Options) *format.Printed {
	t.Helper()

	root, _ := html.Parse(src)
	require.NoError(t, syntax.CheckLossless(root, src))
	require.NoError(t, syntax.CheckTriviaRule(root))

	printed, err := format.FormatTree(context.Background(), html.Binding, root, opts)
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
			name: "attribute whitespace is normalized",
			src:  `<div  class = "x" ><p>hi</p></div>`,
			want: "<div class=\"x\"><p>hi</p></div>\n",
		},
		{
			name: "void and self-closing elements",
			src:  "<br><img src=a.png />",
			want: "<br><img src=\"a.png\" />\n",
		},
		{
			name: "attribute quotes",
			src:  `<a title='x' data-q='say "hi"' hidden>y</a>`,
			want: "<a title=\"x\" data-q='say \"hi\"' hidden>y</a>\n",
		},
		{
			name:  "spaced children break one per line",
			src:   "<ul> <li>one</li> <li>two</li> </ul>",
			width: 20,
			want:  "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>\n",
		},
		{
			name: "line breaks in the source are kept",
			src:  "<div>\n<p>a</p>\n</div>",
			want: "<div>\n  <p>a</p>\n</div>\n",
		},
		{
			name: "inline content stays together",
			src:  "<p>Some <b>bold</b> text.</p>",
			want: "<p>Some <b>bold</b> text.</p>\n",
		},
		{
			name:  "text fills lines",
			src:   "<p>aaa bbb ccc ddd eee fff</p>",
			width: 20,
			want:  "<p>aaa bbb ccc ddd\n  eee fff</p>\n",
		},
		{
			name: "pre content is verbatim",
			src:  "<pre>  a\n   b</pre>",
			want: "<pre>  a\n   b</pre>\n",
		},
		{
			name: "script content is verbatim",
			src:  "<script>\n  let x=1;\n</script>",
			want: "<script>\n  let x=1;\n</script>\n",
		},
		{
			name: "suppression comment",
			src:  "<!-- prettier-ignore -->\n<div   a = \"1\" ></div>",
			want: "<!-- prettier-ignore -->\n<div   a = \"1\" ></div>\n",
		},
		{
			name: "doctype",
			src:  "<!DOCTYPE html>\n<html><body></body></html>",
			want: "<!DOCTYPE html>\n<html><body></body></html>\n",
		},
		{
			name: "blank lines collapse",
			src:  "<p>a</p>\n\n\n<p>b</p>",
			want: "<p>a</p>\n\n<p>b</p>\n",
		},
		{
			name: "whitespace in an empty element is dropped",
			src:  "<div> </div>",
			want: "<div></div>\n",
		},
		{
			name: "empty document",
			src:  "\n\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := options.Default()
			if tt.width != 0 {
				opts.LineWidth = tt.width
			}
			printed := formatHTML(t, tt.src, opts)
			assert.Equal(t, tt.want, printed.Code)
			formattest.AssertOutput(t, html.Binding, tt.src, opts, printed.Code)

			again := formatHTML(t, printed.Code, opts)
			assert.Equal(t, printed.Code, again.Code, "formatting is not idempotent")
		})
	}
}

func TestFormat_AttributePositionMultiline(t *testing.T) {
	t.Parallel()

	opts := options.Default()
	opts.AttributePosition = options.AttributeMultiline

	printed := formatHTML(t, `<input type="text" name="q">`, opts)
	assert.Equal(t, "<input\n  type=\"text\"\n  name=\"q\"\n>\n", printed.Code)

	single := formatHTML(t, `<input type="text">`, opts)
	assert.Equal(t, "<input type=\"text\">\n", single.Code)
}

func TestFormat_Recovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "stray end tag", src: "<p>a</p></div>", want: "<p>a</p></div>\n"},
		{name: "unclosed element", src: "<div><p>a</div>", want: "<div><p>a</div>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, diags := html.Parse(tt.src)
			require.NotEmpty(t, diags)
			require.NoError(t, syntax.CheckLossless(root, tt.src))

			printed, err := format.FormatTree(context.Background(), html.Binding, root, options.Default())
			require.NoError(t, err)
			assert.Equal(t, tt.want, printed.Code)
			assert.NotEmpty(t, printed.Diagnostics)
			formattest.AssertOutput(t, html.Binding, tt.src, options.Default(), printed.Code)
		})
	}
}

func TestBinding(t *testing.T) {
	t.Parallel()

	b, ok := lang.DefaultRegistry.ForPath("site/index.HTM")
	require.True(t, ok)
	assert.Equal(t, "html", b.Name())
	assert.Equal(t, "HTML_ELEMENT", html.Binding.KindName(html.Element))
}
