// Package format turns syntax trees into format documents and prints them.
//
// A Language supplies a comment style and a rule per node kind. Rules write
// IR through a Formatter using the builders in this package. FormatNode
// runs the rules over a tree and Formatted.Print lays the result out.
package format

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/format/printer"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// SourceMarker maps a source offset to an output offset.
type SourceMarker = printer.SourceMarker

// Printed is the final output of a format run.
type Printed struct {
	Code        string         `json:"code"`
	SourceMap   []SourceMarker `json:"sourceMap,omitempty"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
}

// Formatted is a format document ready to print.
type Formatted struct {
	doc ir.Document
	ctx *Context
}

// Document returns the format document.
func (f *Formatted) Document() ir.Document { return f.doc }

// Context returns the context the document was built with.
func (f *Formatted) Context() *Context { return f.ctx }

// Diagnostics returns the diagnostics recorded while formatting.
func (f *Formatted) Diagnostics() []Diagnostic { return f.ctx.diagnostics }

// Print lays out the document with the context's options.
func (f *Formatted) Print() (*Printed, error) {
	if err := f.ctx.Err(); err != nil {
		return nil, err
	}
	out, err := printer.Print(f.doc, printer.OptionsFrom(f.ctx.opts))
	if err != nil {
		return nil, err
	}
	return &Printed{
		Code:        out.Code,
		SourceMap:   out.SourceMap,
		Diagnostics: f.ctx.diagnostics,
	}, nil
}

// FormatNode builds the format document for root.
//
// Invalid options fail before any work is done. Every comment in the tree
// must be written exactly once; a comment no rule printed is a structural
// error.
func FormatNode(ctx context.Context, lang Language, root syntax.Node, opts options.Options) (*Formatted, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if root.IsZero() {
		return nil, errors.WithDetails(ErrStructural, "reason", "empty tree")
	}

	table := comments.Build(root, lang.CommentStyle())
	fctx := NewContext(ctx, lang, root, opts, table)
	if err := fctx.Err(); err != nil {
		return nil, err
	}

	f := NewFormatter(fctx)
	if err := f.FormatNode(root); err != nil {
		return nil, err
	}

	doc := f.Document()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if lost := table.Unformatted(); len(lost) > 0 {
		return nil, errors.WithDetails(
			errors.Errorf("%w: comment was not formatted", ErrStructural),
			"comment", lost[0].Text(),
			"offset", int(lost[0].Range().Start),
			"count", len(lost),
		)
	}

	return &Formatted{doc: doc, ctx: fctx}, nil
}

// FormatTree builds and prints root in one step.
func FormatTree(ctx context.Context, lang Language, root syntax.Node, opts options.Options) (*Printed, error) {
	formatted, err := FormatNode(ctx, lang, root, opts)
	if err != nil {
		return nil, err
	}
	return formatted.Print()
}
