package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

const (
	kindIdent syntax.RawKind = iota + 1
	kindEOF
	kindRoot
	kindList
	kindComma
)

func kindName(k syntax.RawKind) string {
	return map[syntax.RawKind]string{
		kindIdent: "IDENT", kindEOF: "EOF", kindRoot: "ROOT", kindList: "LIST", kindComma: "COMMA",
	}[k]
}

func commentedPieces() []syntax.LexPiece {
	return []syntax.LexPiece{
		syntax.TokenPiece(kindIdent, "x"),
		syntax.TriviaPieceOf(syntax.TriviaWhitespace, " "),
		syntax.TriviaPieceOf(syntax.TriviaBlockComment, "/* c */"),
		syntax.TriviaPieceOf(syntax.TriviaNewline, "\n"),
		syntax.TriviaPieceOf(syntax.TriviaWhitespace, "  "),
		syntax.TriviaPieceOf(syntax.TriviaLineComment, "// lead"),
		syntax.TriviaPieceOf(syntax.TriviaNewline, "\n"),
		syntax.TokenPiece(kindIdent, "y"),
		syntax.TriviaPieceOf(syntax.TriviaNewline, "\n"),
		syntax.TokenPiece(kindEOF, ""),
	}
}

// buildTree builds ROOT(LIST(x, y), EOF) from the commented pieces.
func buildTree(t *testing.T, cache *syntax.NodeCache) syntax.Node {
	t.Helper()

	tokens := syntax.AttachTrivia(commentedPieces())
	require.Len(t, tokens, 3)

	b := syntax.NewTreeBuilder(cache)
	b.StartNode(kindRoot)
	b.StartNode(kindList)
	b.Lexed(tokens[0])
	b.Lexed(tokens[1])
	b.FinishNode()
	b.Missing()
	b.Lexed(tokens[2])
	b.FinishNode()

	green, err := b.Finish()
	require.NoError(t, err)
	return syntax.NewRoot(green)
}

func TestAttachTrivia(t *testing.T) {
	t.Parallel()

	tokens := syntax.AttachTrivia(commentedPieces())
	require.Len(t, tokens, 3)

	assert.Equal(t, "x /* c */\n", tokens[0].FullText())
	assert.Empty(t, tokens[0].LeadingText)
	assert.Equal(t, " /* c */\n", tokens[0].TrailingText)

	assert.Equal(t, "  // lead\n", tokens[1].LeadingText)
	assert.Equal(t, "\n", tokens[1].TrailingText)
	assert.Equal(t, text.Size(10), tokens[1].Offset)
	assert.Equal(t, text.Size(20), tokens[1].TrimmedStart())

	assert.Empty(t, tokens[2].LeadingText)
	assert.Equal(t, text.Size(22), tokens[2].Offset)
	assert.True(t, tokens[2].HasPrecedingNewline(&tokens[1]))
}

func TestAttachTrivia_NoNewlineLeadsNextToken(t *testing.T) {
	t.Parallel()

	tokens := syntax.AttachTrivia([]syntax.LexPiece{
		syntax.TokenPiece(kindIdent, "a"),
		syntax.TriviaPieceOf(syntax.TriviaWhitespace, " "),
		syntax.TriviaPieceOf(syntax.TriviaBlockComment, "/* b */"),
		syntax.TriviaPieceOf(syntax.TriviaWhitespace, " "),
		syntax.TokenPiece(kindIdent, "c"),
	})
	require.Len(t, tokens, 2)

	assert.Empty(t, tokens[0].TrailingText)
	assert.Equal(t, " /* b */ ", tokens[1].LeadingText)
	assert.False(t, tokens[1].HasPrecedingNewline(&tokens[0]))
}

func TestTree_Lossless(t *testing.T) {
	t.Parallel()

	src := "x /* c */\n  // lead\ny\n"
	root := buildTree(t, nil)

	require.NoError(t, syntax.CheckLossless(root, src))
	require.NoError(t, syntax.CheckTriviaRule(root))
	assert.Equal(t, src, root.Text())
	assert.Equal(t, text.NewRange(0, 22), root.TextRange())

	err := syntax.CheckLossless(root, src+"!")
	require.ErrorIs(t, err, syntax.ErrNotLossless)
}

func TestNode_Navigation(t *testing.T) {
	t.Parallel()

	root := buildTree(t, nil)
	assert.Equal(t, kindRoot, root.Kind())
	assert.True(t, root.Parent().IsZero())
	assert.Equal(t, 3, root.SlotCount())

	_, ok := root.Slot(1)
	assert.False(t, ok, "slot 1 is empty")

	children := root.Children()
	require.Len(t, children, 1)
	list := children[0]
	assert.Equal(t, kindList, list.Kind())
	assert.Equal(t, root.Key(), list.Parent().Key())
	assert.Equal(t, 0, list.IndexInParent())

	_, ok = list.NextSibling()
	assert.False(t, ok)

	elems := list.ChildrenWithTokens()
	require.Len(t, elems, 2)
	x, ok := elems[0].AsToken()
	require.True(t, ok)
	assert.Equal(t, "x", x.TextTrimmed())
	assert.Equal(t, text.NewRange(0, 1), x.TextTrimmedRange())

	y, ok := x.NextToken()
	require.True(t, ok)
	assert.Equal(t, "y", y.TextTrimmed())
	assert.Equal(t, text.NewRange(20, 21), y.TextTrimmedRange())

	eof, ok := y.NextToken()
	require.True(t, ok)
	assert.Equal(t, kindEOF, eof.Kind())
	_, ok = eof.NextToken()
	assert.False(t, ok)

	back, ok := eof.PrevToken()
	require.True(t, ok)
	assert.Equal(t, y.TextRange(), back.TextRange())

	assert.Equal(t, text.NewRange(0, 21), list.TextTrimmedRange())
	assert.Equal(t, "x /* c */\n  // lead\ny", list.TextTrimmed())

	var kinds []syntax.RawKind
	for n := range y.Parent().Ancestors() {
		kinds = append(kinds, n.Kind())
	}
	assert.Equal(t, []syntax.RawKind{kindList, kindRoot}, kinds)
}

func TestToken_Trivia(t *testing.T) {
	t.Parallel()

	root := buildTree(t, nil)
	first, ok := root.FirstToken()
	require.True(t, ok)

	trailing := first.TrailingTrivia()
	assert.True(t, trailing.HasComments())
	assert.True(t, trailing.HasNewline())
	pieces := trailing.Pieces()
	require.Len(t, pieces, 3)
	assert.Equal(t, syntax.TriviaBlockComment, pieces[1].Kind)
	assert.Equal(t, "/* c */", pieces[1].Text)
	assert.Equal(t, text.NewRange(2, 9), pieces[1].Range)

	y, _ := first.NextToken()
	leading := y.LeadingTrivia()
	assert.Equal(t, "  // lead\n", leading.Text())
	assert.Equal(t, text.NewRange(10, 20), leading.TextRange())
	assert.True(t, y.HasLeadingComments())
	assert.False(t, y.HasTrailingComments())
	assert.False(t, y.HasSkippedTrivia())
}

func TestNode_Offsets(t *testing.T) {
	t.Parallel()

	root := buildTree(t, nil)

	tok, ok := root.TokenAtOffset(12)
	require.True(t, ok)
	assert.Equal(t, "y", tok.TextTrimmed())

	tok, ok = root.TokenAtOffset(3)
	require.True(t, ok)
	assert.Equal(t, "x", tok.TextTrimmed())

	_, ok = root.TokenAtOffset(100)
	assert.False(t, ok)

	el, ok := root.ChildAtOffset(0)
	require.True(t, ok)
	assert.Equal(t, kindList, el.Kind())
}

func TestNode_Preorder(t *testing.T) {
	t.Parallel()

	root := buildTree(t, nil)

	var events []string
	for ev := range root.Preorder() {
		switch ev.Kind {
		case syntax.WalkEnter:
			events = append(events, "enter "+kindName(ev.Node.Kind()))
		case syntax.WalkLeave:
			events = append(events, "leave "+kindName(ev.Node.Kind()))
		case syntax.WalkToken:
			events = append(events, "token "+kindName(ev.Token.Kind()))
		}
	}

	assert.Equal(t, []string{
		"enter ROOT", "enter LIST", "token IDENT", "token IDENT", "leave LIST",
		"token EOF", "leave ROOT",
	}, events)

	count := 0
	for range root.Descendants() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestNode_ReplaceChild(t *testing.T) {
	t.Parallel()

	root := buildTree(t, nil)
	list := root.Children()[0]

	z := syntax.NewToken(kindIdent, "z\n", nil, []syntax.TriviaPiece{{Kind: syntax.TriviaNewline, Len: 1}})
	updated := list.ReplaceChild(1, z)

	assert.Equal(t, "x /* c */\nz\n", updated.Text())
	assert.Equal(t, "x /* c */\n  // lead\ny\n", root.Text(), "original tree is unchanged")
	require.NoError(t, syntax.CheckTriviaRule(updated))
}

func TestNodeCache_Interns(t *testing.T) {
	t.Parallel()

	cache := syntax.NewNodeCache(0)
	a := cache.Token(kindComma, ", ", nil, []syntax.TriviaPiece{{Kind: syntax.TriviaWhitespace, Len: 1}})
	b := cache.Token(kindComma, ", ", nil, []syntax.TriviaPiece{{Kind: syntax.TriviaWhitespace, Len: 1}})
	assert.Same(t, a, b)

	n1 := cache.Node(kindList, []syntax.GreenElement{a})
	n2 := cache.Node(kindList, []syntax.GreenElement{b})
	assert.Same(t, n1, n2)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(2), misses)

	first := buildTree(t, cache)
	second := buildTree(t, cache)
	assert.Same(t, first.Children()[0].Green(), second.Children()[0].Green())
}

func TestTreeBuilder_Unbalanced(t *testing.T) {
	t.Parallel()

	b := syntax.NewTreeBuilder(nil)
	b.StartNode(kindRoot)
	_, err := b.Finish()
	require.ErrorIs(t, err, syntax.ErrUnbalancedBuilder)
}

func TestTreeBuilder_StartNodeAt(t *testing.T) {
	t.Parallel()

	b := syntax.NewTreeBuilder(nil)
	b.StartNode(kindRoot)
	cp := b.Checkpoint()
	b.Token(kindIdent, "a", nil, nil)
	b.StartNodeAt(cp, kindList)
	b.Token(kindComma, ",", nil, nil)
	b.FinishNode()
	b.FinishNode()

	green, err := b.Finish()
	require.NoError(t, err)

	root := syntax.NewRoot(green)
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "a,", root.Children()[0].Text())
}

func TestDump(t *testing.T) {
	t.Parallel()

	out := syntax.Dump(buildTree(t, nil), kindName)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Equal(t, "ROOT@0..22", lines[0])
	assert.Equal(t, "  0: LIST@0..22", lines[1])
	assert.Equal(t, `    0: IDENT@0..10 "x" [] [Whitespace(" "), BlockComment("/* c */"), Newline("\n")]`, lines[2])
	assert.Equal(t, "  1: (empty)", lines[4])
}
