package markdown_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/formattest"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/lang/markdown"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

func formatMarkdown(t *testing.T, src string) *format.Printed {
	t.Helper()

	root, diags := markdown.Parse(src)
	require.Empty(t, diags)
	require.NoError(t, syntax.CheckLossless(root, src))
	require.NoError(t, syntax.CheckTriviaRule(root))

	opts := markdown.Binding.ApplyDefaults(options.Default())
	printed, err := format.FormatTree(context.Background(), markdown.Binding, root, opts)
	require.NoError(t, err)
	return printed
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "headings and paragraphs",
			src:  "#   Title   #\n\nSome text \nmore text\n\n\n\n##  Sub\n",
			want: "# Title\n\nSome text\nmore text\n\n## Sub\n",
		},
		{
			name: "paragraph indentation is dropped",
			src:  "  first\n     second\t\n",
			want: "first\nsecond\n",
		},
		{
			name: "hard line break is kept",
			src:  "one   \ntwo\n",
			want: "one  \ntwo\n",
		},
		{
			name: "empty heading",
			src:  "#\n\n## ##\n",
			want: "#\n\n##\n",
		},
		{
			name: "escaped closing hash stays",
			src:  "# C#\n",
			want: "# C#\n",
		},
		{
			name: "setext heading",
			src:  "Title  \n=====\n",
			want: "Title\n=====\n",
		},
		{
			name: "list continuation lines are aligned",
			src:  "-   one\n    continued\n-   two\n\n    para\n",
			want: "- one\n  continued\n- two\n\n  para\n",
		},
		{
			name: "ordered list",
			src:  "1.  first\n    second\n2.  third\n",
			want: "1. first\n   second\n2. third\n",
		},
		{
			name: "lazy continuation is aligned",
			src:  "* item\nlazy\n",
			want: "* item\n  lazy\n",
		},
		{
			name: "nested list keeps its relative indentation",
			src:  "- a\n    - b\n- c\n",
			want: "- a\n    - b\n- c\n",
		},
		{
			name: "fenced code in a list item keeps blank lines",
			src:  "- item\n\n  ```\n  a  \n\n\n  b\n  ```\n",
			want: "- item\n\n  ```\n  a  \n\n\n  b\n  ```\n",
		},
		{
			name: "fenced code is verbatim",
			src:  "```js\nconst  x = 1;   \n\n\n```\n",
			want: "```js\nconst  x = 1;   \n\n\n```\n",
		},
		{
			name: "indented code is verbatim",
			src:  "text\n\n    code  here\n      more\n",
			want: "text\n\n    code  here\n      more\n",
		},
		{
			name: "table is verbatim",
			src:  "| a |  b |\n|---|---|\n| 1 |  2 |\n",
			want: "| a |  b |\n|---|---|\n| 1 |  2 |\n",
		},
		{
			name: "blockquote is verbatim",
			src:  ">  quoted  \n> more\n",
			want: ">  quoted  \n> more\n",
		},
		{
			name: "thematic break",
			src:  "a\n\n***\n\nb\n",
			want: "a\n\n***\n\nb\n",
		},
		{
			name: "suppression comment",
			src:  "<!-- formatkit-ignore -->\n#    Keep   me\n\n#    Fix   me\n",
			want: "<!-- formatkit-ignore -->\n#    Keep   me\n\n# Fix   me\n",
		},
		{
			name: "front matter",
			src:  "---\ntitle:  x\n---\n#  Hi\n",
			want: "---\ntitle:  x\n---\n# Hi\n",
		},
		{
			name: "link reference definition",
			src:  "[a]: https://example.com\n\nSee [a].\n",
			want: "[a]: https://example.com\n\nSee [a].\n",
		},
		{
			name: "list followed by paragraph",
			src:  "- a\n- b\n\n\ntext\n",
			want: "- a\n- b\n\ntext\n",
		},
		{
			name: "missing final newline",
			src:  "hello",
			want: "hello\n",
		},
		{
			name: "blank document",
			src:  "\n  \n",
			want: "",
		},
		{
			name: "empty document",
			src:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			printed := formatMarkdown(t, tt.src)
			assert.Equal(t, tt.want, printed.Code)
			formattest.AssertOutput(t, markdown.Binding, tt.src,
				markdown.Binding.ApplyDefaults(options.Default()), printed.Code)

			again := formatMarkdown(t, printed.Code)
			assert.Equal(t, printed.Code, again.Code, "formatting is not idempotent")
		})
	}
}

func TestParse_Blocks(t *testing.T) {
	t.Parallel()

	src := "# A\n\ntext\n\n- x\n- y\n\n```\ncode\n```\n\n| a |\n| --- |\n\n<div>\nhi\n</div>\n"
	root, _ := markdown.Parse(src)
	require.NoError(t, syntax.CheckLossless(root, src))

	blocks := root.Children()[0].Children()
	kinds := make([]string, 0, len(blocks))
	for _, b := range blocks {
		kinds = append(kinds, markdown.Binding.KindName(b.Kind()))
	}
	assert.Equal(t, []string{
		"MD_HEADER",
		"MD_PARAGRAPH",
		"MD_BULLET_LIST",
		"MD_FENCED_CODE_BLOCK",
		"MD_TABLE",
		"MD_HTML_BLOCK",
	}, kinds)

	list := blocks[2]
	require.Len(t, list.Children(), 2)
	assert.Equal(t, markdown.ListItem, list.Children()[1].Kind())
}

func TestParse_UnclosedFence(t *testing.T) {
	t.Parallel()

	src := "intro\n\n```\nnever closed\n\n# not a heading\n"
	printed := formatMarkdown(t, src)
	assert.Equal(t, src, printed.Code)
}

func TestBinding(t *testing.T) {
	t.Parallel()

	b, ok := lang.DefaultRegistry.ForPath("docs/README.markdown")
	require.True(t, ok)
	assert.Equal(t, "markdown", b.Name())

	b, ok = lang.DefaultRegistry.Get("md")
	require.True(t, ok)
	assert.Equal(t, markdown.Binding.Name(), b.Name())
	assert.Equal(t, "MD_PARAGRAPH", markdown.Binding.KindName(markdown.Paragraph))
}
