package comments_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
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
)

type testStyle struct {
	rule comments.Rule
}

func (testStyle) CommentKind(p syntax.SyntaxTriviaPiece) comments.Kind { return comments.KindOf(p) }
func (testStyle) IsSuppression(s string) bool                          { return strings.Contains(s, "formatkit-ignore") }
func (testStyle) IsBogus(k syntax.RawKind) bool                        { return k == kBogus }
func (testStyle) IsList(k syntax.RawKind) bool                         { return k == kList }

func (s testStyle) PlaceComment(c *comments.DecoratedComment) comments.Placement {
	if s.rule == nil {
		return comments.Default()
	}
	return s.rule(c)
}

// lex splits src into identifiers, ";", braces, whitespace, newlines and
// comments. It is just enough for these tests.
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

// parse builds ROOT(LIST(STMT...), EOF). A statement is "ident ;", a
// block "{ stmts }", or "? ident ;" which becomes a bogus node.
func parse(t *testing.T, src string) syntax.Node {
	t.Helper()

	tokens := syntax.AttachTrivia(lex(src))
	b := syntax.NewTreeBuilder(nil)
	pos := 0

	var stmts func()
	stmts = func() {
		b.StartNode(kList)
		for pos < len(tokens) && tokens[pos].Kind != kEOF && tokens[pos].Kind != kRBrace {
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
	root := syntax.NewRoot(green)
	require.NoError(t, syntax.CheckLossless(root, src))
	return root
}

func statements(root syntax.Node) []syntax.Node {
	return root.Children()[0].Children()
}

func TestBuild_TrailingBlockComment(t *testing.T) {
	t.Parallel()

	root := parse(t, "x; /* trailing */\ny;\n")
	table := comments.Build(root, testStyle{})
	require.Equal(t, 1, table.Len())

	stmts := statements(root)
	trailing := table.Trailing(stmts[0])
	require.Len(t, trailing, 1)
	assert.Equal(t, "/* trailing */", trailing[0].Text())
	assert.Equal(t, comments.KindInlineBlock, trailing[0].Kind)
	assert.Equal(t, 0, trailing[0].LinesBefore)
	assert.Equal(t, 1, trailing[0].LinesAfter)
	assert.Equal(t, comments.EndOfLine, trailing[0].Position)

	d := table.Decorated(0)
	assert.Equal(t, root.Key(), d.Enclosing.Key(), "lists never enclose comments")
	assert.Equal(t, stmts[0].Key(), d.Preceding.Key())
	assert.Equal(t, stmts[1].Key(), d.Following.Key())
	assert.True(t, d.IsTrailingTrivia)
}

func TestBuild_OwnLineCommentLeadsNextStatement(t *testing.T) {
	t.Parallel()

	root := parse(t, "x;\n\n// about y\ny;\n")
	table := comments.Build(root, testStyle{})

	stmts := statements(root)
	leading := table.Leading(stmts[1])
	require.Len(t, leading, 1)
	assert.Equal(t, 2, leading[0].LinesBefore)
	assert.Equal(t, 1, leading[0].LinesAfter)
	assert.Equal(t, comments.OwnLine, leading[0].Position)
	assert.Equal(t, comments.KindLine, leading[0].Kind)
	assert.False(t, table.HasComments(stmts[0]))
}

func TestBuild_SameLineComment(t *testing.T) {
	t.Parallel()

	root := parse(t, "x; /* between */ y;")
	table := comments.Build(root, testStyle{})

	stmts := statements(root)
	require.Len(t, table.Trailing(stmts[0]), 1)
	assert.Equal(t, comments.SameLine, table.Trailing(stmts[0])[0].Position)
}

func TestBuild_DanglingInEmptyBlock(t *testing.T) {
	t.Parallel()

	root := parse(t, "{ /* nothing */ }")
	table := comments.Build(root, testStyle{})

	block := statements(root)[0]
	require.Equal(t, kBlock, block.Kind())
	dangling := table.Dangling(block)
	require.Len(t, dangling, 1)
	assert.Equal(t, "/* nothing */", dangling[0].Text())
	assert.Equal(t, "}", table.Decorated(0).FollowingToken.TextTrimmed())
}

func TestBuild_FirstCommentIsOwnLine(t *testing.T) {
	t.Parallel()

	root := parse(t, "// formatkit-ignore\nx;")
	table := comments.Build(root, testStyle{})

	stmt := statements(root)[0]
	leading := table.Leading(stmt)
	require.Len(t, leading, 1)
	assert.Equal(t, comments.OwnLine, leading[0].Position)
	assert.True(t, leading[0].Suppression)
	assert.True(t, table.IsSuppressed(stmt))
}

func TestBuild_CommentsInsideBogusAreSkipped(t *testing.T) {
	t.Parallel()

	root := parse(t, "? a /* inside */ b;\nx;")
	table := comments.Build(root, testStyle{})

	require.Equal(t, 1, table.Len())
	assert.Equal(t, comments.PlaceSkip, table.Placement(0).Kind)

	bogus := statements(root)[0]
	require.Equal(t, kBogus, bogus.Kind())
	table.MarkRangeFormatted(bogus.TextTrimmedRange())
	assert.Empty(t, table.Unformatted())
}

func TestBuild_LanguageRuleWins(t *testing.T) {
	t.Parallel()

	var seen []string
	rule := comments.Chain(
		func(c *comments.DecoratedComment) comments.Placement {
			seen = append(seen, "first")
			return comments.Default()
		},
		func(c *comments.DecoratedComment) comments.Placement {
			seen = append(seen, "second")
			return comments.Dangling(c.Enclosing)
		},
		func(c *comments.DecoratedComment) comments.Placement {
			seen = append(seen, "third")
			return comments.Default()
		},
	)

	root := parse(t, "x; /* c */\ny;")
	table := comments.Build(root, testStyle{rule: rule})

	assert.Equal(t, []string{"first", "second"}, seen)
	require.Len(t, table.Dangling(root), 1)
	assert.False(t, table.HasTrailing(statements(root)[0]))
}

func TestComments_FormattedJournal(t *testing.T) {
	t.Parallel()

	root := parse(t, "// a\nx; // b\n// c\ny;")
	table := comments.Build(root, testStyle{})
	require.Equal(t, 3, table.Len())
	assert.Len(t, table.Unformatted(), 3)

	table.MarkFormatted(0)
	cp := table.Checkpoint()
	table.MarkFormatted(1)
	table.MarkFormatted(2)
	assert.Empty(t, table.Unformatted())

	table.Rollback(cp)
	assert.True(t, table.IsFormatted(0))
	assert.False(t, table.IsFormatted(1))
	require.Len(t, table.Unformatted(), 2)

	table.MarkRangeFormatted(text.NewRange(0, text.Len("// a\nx; // b\n// c\ny;")))
	assert.Empty(t, table.Unformatted())
}

func TestComments_Trace(t *testing.T) {
	t.Parallel()

	root := parse(t, "x; /* trailing */\ny;\n")
	table := comments.Build(root, testStyle{})

	var buf bytes.Buffer
	table.Trace(&buf, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "/* trailing */", rec["text"])
	assert.Equal(t, "trailing", rec["placement"])
	assert.Equal(t, "endOfLine", rec["position"])
	assert.Equal(t, "KIND_8@0..2", rec["target"])
}
