package format

import (
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/format/options"
)

// Format is anything that can write itself into a Formatter.
type Format interface {
	Fmt(f *Formatter) error
}

// FormatFunc adapts a function to Format.
type FormatFunc func(f *Formatter) error

// Fmt calls fn.
func (fn FormatFunc) Fmt(f *Formatter) error { return fn(f) }

// Buffer is an append-only element sink.
type Buffer struct {
	elements ir.Document
}

// Write appends elements.
func (b *Buffer) Write(elements ...ir.Element) {
	b.elements = append(b.elements, elements...)
}

// Len returns the number of buffered elements.
func (b *Buffer) Len() int { return len(b.elements) }

// Document returns the buffered elements.
func (b *Buffer) Document() ir.Document { return b.elements }

func (b *Buffer) truncate(n int) {
	clear(b.elements[n:])
	b.elements = b.elements[:n]
}

// Formatter writes IR into a buffer with access to the format context.
type Formatter struct {
	ctx *Context
	buf *Buffer
}

// NewFormatter returns a formatter writing into a fresh buffer.
func NewFormatter(ctx *Context) *Formatter {
	return &Formatter{ctx: ctx, buf: &Buffer{}}
}

// Context returns the format context.
func (f *Formatter) Context() *Context { return f.ctx }

// Options returns the format options.
func (f *Formatter) Options() options.Options { return f.ctx.opts }

// Comments returns the comment table.
func (f *Formatter) Comments() *comments.Comments { return f.ctx.comments }

// Document returns what has been written so far.
func (f *Formatter) Document() ir.Document { return f.buf.Document() }

// WriteElements appends raw elements.
func (f *Formatter) WriteElements(elements ...ir.Element) {
	f.buf.Write(elements...)
}

// Write formats items in order, stopping at the first error.
func (f *Formatter) Write(items ...Format) error {
	for _, item := range items {
		if item == nil {
			continue
		}
		if err := item.Fmt(f); err != nil {
			return err
		}
	}
	return nil
}

// Checkpoint is a snapshot of the formatter state.
type Checkpoint struct {
	elements    int
	comments    int
	diagnostics int
}

// Checkpoint snapshots the buffer, the formatted-comment journal and the
// diagnostics.
func (f *Formatter) Checkpoint() Checkpoint {
	return Checkpoint{
		elements:    f.buf.Len(),
		comments:    f.ctx.comments.Checkpoint(),
		diagnostics: len(f.ctx.diagnostics),
	}
}

// Rollback restores a snapshot taken by Checkpoint.
func (f *Formatter) Rollback(cp Checkpoint) {
	f.buf.truncate(cp.elements)
	f.ctx.comments.Rollback(cp.comments)
	f.ctx.diagnostics = f.ctx.diagnostics[:cp.diagnostics]
}

// capture formats content into a separate document.
func (f *Formatter) capture(content ...Format) (ir.Document, error) {
	saved := f.buf
	f.buf = &Buffer{}
	defer func() { f.buf = saved }()

	if err := f.Write(content...); err != nil {
		return nil, err
	}
	return f.buf.Document(), nil
}

// Intern formats content once and returns a reference to the shared
// document.
func (f *Formatter) Intern(content ...Format) (ir.Element, error) {
	doc, err := f.capture(content...)
	if err != nil {
		return ir.Element{}, err
	}
	in := &ir.Interned{ID: f.ctx.nextInterned, Doc: doc}
	f.ctx.nextInterned++
	return ir.Ref(in), nil
}

// Memoize returns a Format that builds content on first use and reuses the
// interned result for the same key.
func Memoize(key any, content ...Format) Format {
	return FormatFunc(func(f *Formatter) error {
		if in, ok := f.ctx.memo[key]; ok {
			f.WriteElements(ir.Ref(in))
			return nil
		}
		el, err := f.Intern(content...)
		if err != nil {
			return err
		}
		f.ctx.memo[key] = el.Interned
		f.WriteElements(el)
		return nil
	})
}
