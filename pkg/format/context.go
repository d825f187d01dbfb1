package format

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Context is the state of one format invocation.
type Context struct {
	ctx      context.Context
	lang     Language
	root     syntax.Node
	opts     options.Options
	comments *comments.Comments

	diagnostics  []Diagnostic
	nextGroupID  ir.GroupID
	nextInterned int
	memo         map[any]*ir.Interned
}

// NewContext creates a context. A nil comments table means "no comments".
func NewContext(ctx context.Context, lang Language, root syntax.Node, opts options.Options, c *comments.Comments) *Context {
	if c == nil {
		c = comments.Empty()
	}
	return &Context{
		ctx:      ctx,
		lang:     lang,
		root:     root,
		opts:     opts,
		comments: c,
		memo:     map[any]*ir.Interned{},
	}
}

// Options returns the format options.
func (c *Context) Options() options.Options { return c.opts }

// Comments returns the comment table.
func (c *Context) Comments() *comments.Comments { return c.comments }

// Language returns the language being formatted.
func (c *Context) Language() Language { return c.lang }

// Root returns the root node.
func (c *Context) Root() syntax.Node { return c.root }

// Diagnostics returns the diagnostics recorded so far.
func (c *Context) Diagnostics() []Diagnostic { return c.diagnostics }

// Report records a diagnostic.
func (c *Context) Report(d Diagnostic) { c.diagnostics = append(c.diagnostics, d) }

// NewGroupID allocates a group id.
func (c *Context) NewGroupID() ir.GroupID {
	c.nextGroupID++
	return c.nextGroupID
}

// Err returns ErrCancelled when the context is done.
func (c *Context) Err() error {
	if c.ctx == nil {
		return nil
	}
	if err := c.ctx.Err(); err != nil {
		return errors.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}

func (c *Context) owner(n syntax.Node) string {
	return comments.Owner(n, kindNamer(c.lang))
}
