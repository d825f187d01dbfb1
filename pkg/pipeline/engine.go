// Package pipeline formats files: it picks the language binding, resolves
// the options for each file, formats, and writes results back safely.
package pipeline

import (
	"context"
	"io"
	"sync"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
	"github.com/yaklabco/formatkit/pkg/text"
)

// Error categories, matched with errors.Is.
var (
	ErrFileNotFound        = errors.Base("file not found")
	ErrPermissionDenied    = errors.Base("permission denied")
	ErrUnsupportedLanguage = errors.Base("no language binding")
	ErrParseFailure        = errors.Base("parse failure")
	ErrFormatFailure       = errors.Base("format failure")
	ErrWriteFailure        = errors.Base("write failure")
)

// Engine formats source text in memory.
type Engine struct {
	Registry *lang.Registry

	// Trace receives the comment placement trace of every formatted
	// source when set.
	Trace io.Writer

	traceMu sync.Mutex
}

// NewEngine creates an engine over registry; nil means
// lang.DefaultRegistry.
func NewEngine(registry *lang.Registry) *Engine {
	if registry == nil {
		registry = lang.DefaultRegistry
	}
	return &Engine{Registry: registry}
}

// SourceOptions controls FormatSource.
type SourceOptions struct {
	// Binding skips detection when set.
	Binding lang.Binding

	// Options are the resolved options. Nil means the defaults of the
	// binding.
	Options *options.Options

	// VerifyIdempotence formats the output a second time and reports a
	// warning when the result differs.
	VerifyIdempotence bool
}

// SourceResult is the outcome of FormatSource.
type SourceResult struct {
	Binding     lang.Binding
	Code        string
	SourceMap   []format.SourceMarker
	Diagnostics []format.Diagnostic
}

// Detect picks the binding for path and content.
func (e *Engine) Detect(path string, src []byte) (lang.Binding, error) {
	b, ok := e.Registry.Detect(path, src)
	if !ok {
		return nil, errors.WithDetails(ErrUnsupportedLanguage, "path", path)
	}
	return b, nil
}

// FormatSource detects, parses, formats and prints src.
func (e *Engine) FormatSource(ctx context.Context, path, src string, opts SourceOptions) (*SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("%w: %w", format.ErrCancelled, err)
	}

	b := opts.Binding
	if b == nil {
		var err error
		if b, err = e.Detect(path, []byte(src)); err != nil {
			return nil, err
		}
	}
	fmtOpts := b.ApplyDefaults(options.Default())
	if opts.Options != nil {
		fmtOpts = *opts.Options
	}

	printed, parseDiags, err := e.format(ctx, path, b, src, fmtOpts, e.Trace != nil)
	if err != nil {
		return nil, err
	}

	result := &SourceResult{
		Binding:     b,
		Code:        printed.Code,
		SourceMap:   printed.SourceMap,
		Diagnostics: append(parseDiags, printed.Diagnostics...),
	}

	if opts.VerifyIdempotence {
		again, _, err := e.format(ctx, path, b, printed.Code, fmtOpts, false)
		if err != nil {
			return nil, errors.Errorf("reformat %s: %w", path, err)
		}
		if again.Code != printed.Code {
			result.Diagnostics = append(result.Diagnostics, format.Diagnostic{
				Severity: format.SeverityWarning,
				Message:  "formatting the output again changes it",
				Range:    text.Empty(text.MustSizeOf(firstDifference(printed.Code, again.Code))),
			})
		}
	}
	return result, nil
}

func (e *Engine) format(
	ctx context.Context,
	path string,
	b lang.Binding,
	src string,
	opts options.Options,
	trace bool,
) (*format.Printed, []format.Diagnostic, error) {
	_, formatted, diags, err := e.build(ctx, path, b, src, opts)
	if err != nil {
		return nil, nil, err
	}

	if trace {
		e.traceMu.Lock()
		formatted.Context().Comments().Trace(e.Trace, b.KindName)
		e.traceMu.Unlock()
	}

	printed, err := formatted.Print()
	if err != nil {
		return nil, nil, errors.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
	}
	return printed, diags, nil
}

// build parses src and lowers the tree to a document.
func (e *Engine) build(
	ctx context.Context,
	path string,
	b lang.Binding,
	src string,
	opts options.Options,
) (syntax.Node, *format.Formatted, []format.Diagnostic, error) {
	root, diags := b.Parse(src)
	if root.IsZero() {
		return syntax.Node{}, nil, nil, errors.WithDetails(ErrParseFailure, "path", path, "language", b.Name())
	}

	formatted, err := format.FormatNode(ctx, b, root, opts)
	if err != nil {
		if errors.Is(err, format.ErrCancelled) || errors.Is(err, options.ErrInvalidOptions) {
			return syntax.Node{}, nil, nil, err
		}
		return syntax.Node{}, nil, nil, errors.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
	}
	return root, formatted, diags, nil
}

// Inspection is a source parsed and lowered to a document but not
// printed.
type Inspection struct {
	Binding   lang.Binding
	Root      syntax.Node
	Formatted *format.Formatted
	// Diagnostics holds the parse diagnostics followed by those recorded
	// while building the document.
	Diagnostics []format.Diagnostic
}

// Inspect builds the syntax tree and document of src without printing
// them.
func (e *Engine) Inspect(ctx context.Context, path, src string, opts SourceOptions) (*Inspection, error) {
	b := opts.Binding
	if b == nil {
		var err error
		if b, err = e.Detect(path, []byte(src)); err != nil {
			return nil, err
		}
	}
	fmtOpts := b.ApplyDefaults(options.Default())
	if opts.Options != nil {
		fmtOpts = *opts.Options
	}

	root, formatted, diags, err := e.build(ctx, path, b, src, fmtOpts)
	if err != nil {
		return nil, err
	}
	return &Inspection{
		Binding:     b,
		Root:        root,
		Formatted:   formatted,
		Diagnostics: append(diags, formatted.Diagnostics()...),
	}, nil
}

func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
