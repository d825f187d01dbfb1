package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

const (
	kIdent syntax.RawKind = iota + 1
	kSemi
	kLBrace
	kRBrace
	kEOF
	kRoot
	kList
	kStmt
	kBlock
	kBogus
	kindCount
)

var kindNames = map[syntax.RawKind]string{
	kIdent: "IDENT", kSemi: "SEMI", kLBrace: "L_BRACE", kRBrace: "R_BRACE", kEOF: "EOF",
	kRoot: "ROOT", kList: "LIST", kStmt: "STMT", kBlock: "BLOCK", kBogus: "BOGUS",
}

type testStyle struct{}

func (testStyle) CommentKind(p syntax.SyntaxTriviaPiece) comments.Kind { return comments.KindOf(p) }
func (testStyle) IsSuppression(s string) bool                          { return strings.Contains(s, "formatkit-ignore") }
func (testStyle) IsBogus(k syntax.RawKind) bool                        { return k == kBogus }
func (testStyle) IsList(k syntax.RawKind) bool                         { return k == kList }

func (testStyle) PlaceComment(*comments.DecoratedComment) comments.Placement {
	return comments.Default()
}

// testLang formats a toy statement language: "ident ;" statements, braced
// blocks and "? ... ;" bogus statements.
type testLang struct {
	rules format.RuleTable
}

func (l testLang) Name() string                     { return "test" }
func (l testLang) CommentStyle() comments.Style     { return testStyle{} }
func (l testLang) Rules() format.RuleTable          { return l.rules }
func (l testLang) KindName(k syntax.RawKind) string { return kindNames[k] }

func newLang() testLang {
	rules := make(format.RuleTable, kindCount)
	rules[kRoot] = func(n syntax.Node, f *format.Formatter) error {
		list, err := format.Required(n, 0)
		if err != nil {
			return err
		}
		return f.Write(format.Node(list), format.HardLineBreak())
	}
	rules[kList] = func(n syntax.Node, f *format.Formatter) error {
		return f.Write(format.JoinNodesWithHardline(n.Children()))
	}
	rules[kStmt] = func(n syntax.Node, f *format.Formatter) error {
		ident, err := format.RequiredToken(n, 0)
		if err != nil {
			return err
		}
		semi, err := format.RequiredToken(n, 1)
		if err != nil {
			return err
		}
		if err := f.Write(format.Token(ident)); err != nil {
			return err
		}
		if ident.TextTrimmed() == "!" {
			return format.ErrSyntax
		}
		return f.Write(format.Token(semi))
	}
	rules[kBlock] = func(n syntax.Node, f *format.Formatter) error {
		lbrace, err := format.RequiredToken(n, 0)
		if err != nil {
			return err
		}
		list, err := format.Required(n, 1)
		if err != nil {
			return err
		}
		rbrace, err := format.RequiredToken(n, 2)
		if err != nil {
			return err
		}
		body := format.Format(format.BlockIndent(format.Node(list)))
		if len(list.Children()) == 0 {
			body = format.Seq(format.Node(list), format.DanglingComments(n, format.DanglingBlock))
		}
		return f.Write(format.Token(lbrace), body, format.Token(rbrace))
	}
	rules[kBogus] = format.FormatBogus
	return testLang{rules: rules}
}

func lex(src string) []syntax.LexPiece {
	var out []syntax.LexPiece
	for i := 0; i < len(src); {
		switch {
		case src[i] == ' ':
			j := i
			for j < len(src) && src[j] == ' ' {
				j++
			}
			out = append(out, syntax.TriviaPieceOf(syntax.TriviaWhitespace, src[i:j]))
			i = j
		case src[i] == '\n':
			out = append(out, syntax.TriviaPieceOf(syntax.TriviaNewline, "\n"))
			i++
		case strings.HasPrefix(src[i:], "//"):
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				j = len(src) - i
			}
			out = append(out, syntax.TriviaPieceOf(syntax.TriviaLineComment, src[i:i+j]))
			i += j
		case strings.HasPrefix(src[i:], "/*"):
			j := strings.Index(src[i:], "*/") + 2
			out = append(out, syntax.TriviaPieceOf(syntax.TriviaBlockComment, src[i:i+j]))
			i += j
		case src[i] == ';':
			out = append(out, syntax.TokenPiece(kSemi, ";"))
			i++
		case src[i] == '{':
			out = append(out, syntax.TokenPiece(kLBrace, "{"))
			i++
		case src[i] == '}':
			out = append(out, syntax.TokenPiece(kRBrace, "}"))
			i++
		default:
			j := i
			for j < len(src) && strings.IndexByte(" \n;{}", src[j]) < 0 {
				j++
			}
			out = append(out, syntax.TokenPiece(kIdent, src[i:j]))
			i = j
		}
	}
	return append(out, syntax.TokenPiece(kEOF, ""))
}

func parse(t *testing.T, src string) syntax.Node {
	t.Helper()

	tokens := syntax.AttachTrivia(lex(src))
	b := syntax.NewTreeBuilder(nil)
	pos := 0

	var stmts func()
	stmts = func() {
		b.StartNode(kList)
		for tokens[pos].Kind != kEOF && tokens[pos].Kind != kRBrace {
			switch {
			case tokens[pos].Kind == kLBrace:
				b.StartNode(kBlock)
				b.Lexed(tokens[pos])
				pos++
				stmts()
				b.Lexed(tokens[pos])
				pos++
				b.FinishNode()
			case tokens[pos].Text == "?":
				b.StartNode(kBogus)
				for tokens[pos].Kind != kSemi {
					b.Lexed(tokens[pos])
					pos++
				}
				b.Lexed(tokens[pos])
				pos++
				b.FinishNode()
			default:
				b.StartNode(kStmt)
				b.Lexed(tokens[pos])
				b.Lexed(tokens[pos+1])
				pos += 2
				b.FinishNode()
			}
		}
		b.FinishNode()
	}

	b.StartNode(kRoot)
	stmts()
	b.Lexed(tokens[pos])
	b.FinishNode()

	green, err := b.Finish()
	require.NoError(t, err)
	return syntax.NewRoot(green)
}

func formatSource(t *testing.T, src string) *format.Printed {
	t.Helper()

	printed, err := format.FormatTree(context.Background(), newLang(), parse(t, src), options.Default())
	require.NoError(t, err)
	return printed
}

func TestFormat_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "trailing block comment stays on its line",
			src:  "x;   /* trailing */\ny;",
			want: "x; /* trailing */\ny;\n",
		},
		{
			name: "leading comment keeps one blank line",
			src:  "x;\n\n\n// about y\ny;",
			want: "x;\n\n// about y\ny;\n",
		},
		{
			name: "trailing line comment",
			src:  "x;    // note\ny;",
			want: "x; // note\ny;\n",
		},
		{
			name: "comment at end of file",
			src:  "x;\n// end\n",
			want: "x;\n// end\n",
		},
		{
			name: "dangling comment in empty block",
			src:  "{ /* nothing */ }",
			want: "{\n  /* nothing */\n}\n",
		},
		{
			name: "nested block",
			src:  "{ x; {y;} }",
			want: "{\n  x;\n  {\n    y;\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			printed := formatSource(t, tt.src)
			assert.Equal(t, tt.want, printed.Code)
			assert.Empty(t, printed.Diagnostics)
		})
	}
}

func TestFormat_Suppression(t *testing.T) {
	t.Parallel()

	printed := formatSource(t, "// formatkit-ignore\nx   ;\ny  ;")
	assert.Equal(t, "// formatkit-ignore\nx   ;\ny;\n", printed.Code)
}

func TestFormat_SyntaxErrorFallsBackToVerbatim(t *testing.T) {
	t.Parallel()

	printed := formatSource(t, "!   ;\ny  ;")
	assert.Equal(t, "!   ;\ny;\n", printed.Code)
	require.Len(t, printed.Diagnostics, 1)
	assert.Equal(t, format.SeverityInformation, printed.Diagnostics[0].Severity)
	assert.Equal(t, "0..5", printed.Diagnostics[0].Range.String())
}

func TestFormat_BogusNode(t *testing.T) {
	t.Parallel()

	printed := formatSource(t, "?  a /* inside */ b;\nx  ;")
	assert.Equal(t, "?  a /* inside */ b;\nx;\n", printed.Code)
	require.Len(t, printed.Diagnostics, 1)
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"x;   /* a */\n\n\n\ny;",
		"{ x; // c\n y; }",
		"// formatkit-ignore\nx   ;",
	} {
		first := formatSource(t, src)
		second := formatSource(t, first.Code)
		assert.Equal(t, first.Code, second.Code, "source %q", src)
	}
}

func TestFormat_LostCommentIsStructural(t *testing.T) {
	t.Parallel()

	lang := newLang()
	lang.rules[kRoot] = func(_ syntax.Node, f *format.Formatter) error {
		return f.Write(format.Text("gone"))
	}

	_, err := format.FormatNode(context.Background(), lang, parse(t, "x; // c\n"), options.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrStructural)
}

func TestFormat_InvalidOptions(t *testing.T) {
	t.Parallel()

	opts := options.Default()
	opts.LineWidth = 0

	_, err := format.FormatNode(context.Background(), newLang(), parse(t, "x;"), opts)
	assert.ErrorIs(t, err, options.ErrInvalidOptions)
}

func TestFormat_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := format.FormatTree(ctx, newLang(), parse(t, "x;\ny;"), options.Default())
	assert.ErrorIs(t, err, format.ErrCancelled)
}

func TestFormat_SourceMap(t *testing.T) {
	t.Parallel()

	printed := formatSource(t, "x   ;")
	require.Len(t, printed.SourceMap, 2)
	assert.Equal(t, format.SourceMarker{Source: 4, Dest: 1}, printed.SourceMap[1])
}

func newFormatter() *format.Formatter {
	ctx := format.NewContext(context.Background(), newLang(), syntax.Node{}, options.Default(), nil)
	return format.NewFormatter(ctx)
}

func TestBuilders_Document(t *testing.T) {
	t.Parallel()

	f := newFormatter()
	id := f.Context().NewGroupID()
	require.NoError(t, f.Write(
		format.Group(format.Text("a"), format.SoftLineBreakOrSpace(), format.Text("b")).WithID(id),
		format.IfGroupBreaks(format.Text(",")).InGroup(id),
		format.Fill(format.SoftLineBreakOrSpace(), format.Text("1"), format.Text("2")),
		format.Labelled("member", format.Text("m")),
		format.LineSuffix(format.Text("//")),
		format.SoftBlockIndent(),
		format.Group(format.Text("c")).ShouldExpand(true),
	))

	want := `group(id: 1, "a", soft_line_break_or_space, "b"), if_group_breaks(group_id: 1, ","), ` +
		`fill("1", soft_line_break_or_space, "2"), label("member", "m"), line_suffix("//"), ` +
		`group(expand: true, "c")`
	assert.Equal(t, want, f.Document().String())
}

func TestBuilders_JoinAndIndent(t *testing.T) {
	t.Parallel()

	f := newFormatter()
	require.NoError(t, f.Write(
		format.JoinWith(format.Seq(format.Text(","), format.Space()), format.Text("a"), format.Text("b")),
		format.SoftBlockIndentWithMaybeSpace(true, format.Text("c")),
		format.Align(2, format.DedentToRoot(format.Text("d"))),
	))

	want := `"a", ",", space, "b", indent(soft_line_break_or_space, "c"), soft_line_break_or_space, ` +
		`align(2, dedent_to_root("d"))`
	assert.Equal(t, want, f.Document().String())
}

func TestBuilders_Memoize(t *testing.T) {
	t.Parallel()

	f := newFormatter()
	item := format.Memoize("key", format.Text("x"))
	require.NoError(t, f.Write(item, item))
	assert.Equal(t, `<interned 0> ["x"], <ref interned *0>`, f.Document().String())
}

func TestBuilders_BestFittingNeedsTwoVariants(t *testing.T) {
	t.Parallel()

	f := newFormatter()
	err := f.Write(format.BestFitting(format.Text("only")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ir.ErrStructural)
}

func TestFormatter_Rollback(t *testing.T) {
	t.Parallel()

	f := newFormatter()
	require.NoError(t, f.Write(format.Text("a")))
	cp := f.Checkpoint()
	require.NoError(t, f.Write(format.Text("b")))
	f.Context().Report(format.Diagnostic{Message: "oops"})

	f.Rollback(cp)
	assert.Equal(t, `"a"`, f.Document().String())
	assert.Empty(t, f.Context().Diagnostics())
}
