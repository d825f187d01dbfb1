package comments

import (
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

type frame struct {
	node         syntax.Node
	trimmedStart text.Size
	preceding    syntax.Node
	bogus        bool
	list         bool
}

type collector struct {
	style Style
	root  syntax.Node

	stack     []frame
	decorated []*DecoratedComment
	pending   []*DecoratedComment

	// lastComment waits for the line count to the next comment or token.
	lastComment   *DecoratedComment
	newlinesSince int
	seenContent   bool
}

// Build collects, decorates and places every comment under root.
func Build(root syntax.Node, style Style) *Comments {
	c := &collector{style: style, root: root}
	for ev := range root.Preorder() {
		switch ev.Kind {
		case syntax.WalkEnter:
			c.enter(ev.Node)
		case syntax.WalkLeave:
			c.leave(ev.Node)
		case syntax.WalkToken:
			c.token(ev.Token)
		}
	}
	c.resolvePending(syntax.Node{}, syntax.Token{})
	if c.lastComment != nil {
		c.lastComment.LinesAfter = c.newlinesSince
	}

	table := newTable(root)
	for _, d := range c.decorated {
		d.Position = position(d)
		table.add(d, c.place(d))
	}
	return table
}

func (c *collector) enter(n syntax.Node) {
	r := n.TextTrimmedRange()
	f := frame{
		node:         n,
		trimmedStart: r.Start,
		bogus:        c.inBogus() || c.style.IsBogus(n.Kind()),
		list:         c.style.IsList(n.Kind()),
	}
	if _, ok := n.FirstToken(); ok && !f.list {
		c.resolvePending(n, syntax.Token{})
	}
	c.stack = append(c.stack, f)
}

func (c *collector) leave(n syntax.Node) {
	left := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if left.list {
		return
	}
	if _, ok := n.FirstToken(); !ok {
		return
	}
	if i := c.owner(len(c.stack) - 1); i >= 0 {
		c.stack[i].preceding = n
	}
}

// owner returns the index of the nearest frame at or below i that is not a
// list, or -1.
func (c *collector) owner(i int) int {
	for ; i >= 0; i-- {
		if !c.stack[i].list {
			return i
		}
	}
	return -1
}

func (c *collector) inBogus() bool {
	return len(c.stack) > 0 && c.stack[len(c.stack)-1].bogus
}

func (c *collector) token(tok syntax.Token) {
	c.resolvePending(syntax.Node{}, tok)

	start := tok.TextTrimmedRange().Start
	for _, piece := range tok.LeadingTrivia().Pieces() {
		if !c.trivia(piece) {
			continue
		}
		d := c.decorate(piece, tok, false)
		idx := c.enclosingFor(start)
		d.Enclosing = c.stack[idx].node
		d.Preceding = c.stack[idx].preceding
		if next := c.followingFrame(idx); next >= 0 {
			d.Following = c.stack[next].node
		} else {
			d.FollowingToken = tok
		}
		if c.stack[idx].bogus {
			d.placement = Placement{Kind: PlaceSkip}
		}
	}

	if tok.TextTrimmedRange().Len() > 0 {
		c.content()
	}

	for _, piece := range tok.TrailingTrivia().Pieces() {
		if !c.trivia(piece) {
			continue
		}
		d := c.decorate(piece, tok, true)
		c.pending = append(c.pending, d)
	}
}

// trivia accounts for one trivia piece and reports whether it is a comment.
func (c *collector) trivia(piece syntax.SyntaxTriviaPiece) bool {
	switch piece.Kind {
	case syntax.TriviaNewline:
		c.newlinesSince++
		return false
	case syntax.TriviaSkipped:
		c.content()
		return false
	case syntax.TriviaWhitespace:
		return false
	case syntax.TriviaLineComment, syntax.TriviaBlockComment:
		return true
	}
	return false
}

// content records that code (or a comment) appeared, closing the line
// count of the previous comment.
func (c *collector) content() {
	if c.lastComment != nil {
		c.lastComment.LinesAfter = c.newlinesSince
		c.lastComment = nil
	}
	c.newlinesSince = 0
	c.seenContent = true
}

func (c *collector) decorate(piece syntax.SyntaxTriviaPiece, tok syntax.Token, trailing bool) *DecoratedComment {
	if c.lastComment != nil {
		c.lastComment.LinesAfter = c.newlinesSince
	}
	d := &DecoratedComment{
		SourceComment: SourceComment{
			ID:          len(c.decorated),
			Piece:       piece,
			Kind:        c.style.CommentKind(piece),
			LinesBefore: c.newlinesSince,
			Suppression: c.style.IsSuppression(piece.Text),
		},
		Token:            tok,
		IsTrailingTrivia: trailing,
		firstInFile:      !c.seenContent,
	}
	c.decorated = append(c.decorated, d)
	c.lastComment = d
	c.newlinesSince = 0
	c.seenContent = true
	return d
}

// enclosingFor returns the index of the deepest non-list frame whose
// trimmed range starts before offset, or the root frame.
func (c *collector) enclosingFor(offset text.Size) int {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if !c.stack[i].list && c.stack[i].trimmedStart < offset {
			return i
		}
	}
	return 0
}

// followingFrame returns the outermost non-list frame above idx, or -1.
func (c *collector) followingFrame(idx int) int {
	for i := idx + 1; i < len(c.stack); i++ {
		if !c.stack[i].list {
			return i
		}
	}
	return -1
}

// resolvePending decorates the trailing-trivia comments of the previous
// token now that the next node or token is known.
func (c *collector) resolvePending(following syntax.Node, followingToken syntax.Token) {
	if len(c.pending) == 0 {
		return
	}
	var top frame
	if i := c.owner(len(c.stack) - 1); i >= 0 {
		top = c.stack[i]
	} else {
		top = frame{node: c.root}
		children := c.root.Children()
		if len(children) > 0 {
			top.preceding = children[len(children)-1]
		}
	}
	for _, d := range c.pending {
		d.Enclosing = top.node
		d.Preceding = top.preceding
		d.Following = following
		d.FollowingToken = followingToken
		if top.bogus {
			d.placement = Placement{Kind: PlaceSkip}
		}
	}
	c.pending = c.pending[:0]
}

func position(d *DecoratedComment) TextPosition {
	switch {
	case d.LinesBefore > 0 || d.firstInFile:
		return OwnLine
	case d.LinesAfter > 0:
		return EndOfLine
	default:
		return SameLine
	}
}

// place runs the language rules and then the defaults.
func (c *collector) place(d *DecoratedComment) Placement {
	if d.placement.Kind == PlaceSkip {
		return d.placement
	}
	switch p := c.style.PlaceComment(d); {
	case p.Kind == PlaceSkip:
		return p
	case p.Kind != PlaceDefault && !p.Node.IsZero():
		return p
	}

	switch {
	case d.LinesBefore == 0 && !d.Preceding.IsZero():
		return Trailing(d.Preceding)
	case !d.Following.IsZero():
		return Leading(d.Following)
	case !d.Preceding.IsZero():
		return Trailing(d.Preceding)
	default:
		return Dangling(d.Enclosing)
	}
}
