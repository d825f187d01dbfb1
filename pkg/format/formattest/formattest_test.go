package formattest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/formattest"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang/json"
)

// recorder collects assertion failures instead of failing the test.
type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestAssertComments(t *testing.T) {
	t.Parallel()

	src := "{\n  // keep\n  \"a\": 1 /* tail */\n}"
	root, _ := json.Parse(src)
	table := comments.Build(root, json.Binding.CommentStyle())

	tests := []struct {
		name string
		out  string
		fail bool
	}{
		{name: "every comment once", out: "{\n  // keep\n  \"a\": 1 /* tail */\n}\n"},
		{name: "comment dropped", out: "{\n  \"a\": 1 /* tail */\n}\n", fail: true},
		{name: "comment duplicated", out: "{\n  // keep\n  // keep\n  \"a\": 1 /* tail */\n}\n", fail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			formattest.AssertComments(rec, table, src, tt.out)
			assert.Equal(t, tt.fail, len(rec.failures) > 0, rec.failures)
		})
	}
}

func TestAssertLineWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		out  string
		doc  ir.Document
		fail bool
	}{
		{
			name: "lines within the width",
			src:  "[1,2,3,4,5,6]",
			out:  "[\n  1, 2, 3,\n  4, 5, 6\n]\n",
		},
		{
			name: "breakable line over the width",
			src:  "[1,2,3,4,5,6]",
			out:  "[1, 2, 3, 4, 5, 6]\n",
			fail: true,
		},
		{
			name: "overflow from one long string",
			src:  `["a very long string value"]`,
			out:  "[\"a very long string value\"]\n",
		},
		{
			name: "verbatim content",
			src:  "[1,2,3,4,5,6,7,8]",
			out:  "[1,2,3,4,5,6,7,8]\n",
			doc:  ir.Document{{Kind: ir.KindVerbatim, Text: "[1,2,3,4,5,6,7,8]"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := options.Default()
			opts.LineWidth = 10
			root, _ := json.Parse(tt.src)

			rec := &recorder{}
			formattest.AssertLineWidth(rec, root, tt.doc, opts, tt.out)
			assert.Equal(t, tt.fail, len(rec.failures) > 0, rec.failures)
		})
	}
}
