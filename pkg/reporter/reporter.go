// Package reporter writes the results of a format run.
package reporter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/pipeline"
	"github.com/yaklabco/formatkit/pkg/runner"
	"github.com/yaklabco/formatkit/pkg/text"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// ErrUnsupportedFormat is returned by New for an unknown output format.
var ErrUnsupportedFormat = errors.Base("unsupported output format")

// Reporter writes a run result.
type Reporter interface {
	// Report writes result and returns how many files it reported as
	// needing attention: changed, skipped or failed.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format selects the reporter.
	Format config.OutputFormat

	// Color controls colorized output: "auto", "always" or "never".
	Color string

	// ShowSummary appends aggregate statistics.
	ShowSummary bool

	// Verbose also lists files that needed no change.
	Verbose bool

	// Compact writes JSON without indentation.
	Compact bool

	// WorkingDir makes displayed paths relative. Empty keeps them as is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = config.FormatText
	}

	switch opts.Format {
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, errors.WithDetails(ErrUnsupportedFormat, "format", string(opts.Format))
	}
}

// displayPath shortens path relative to the working directory when that
// does not climb out of it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// needsAttention reports whether a file outcome is worth reporting.
func needsAttention(file runner.FileOutcome) bool {
	return file.Error != nil || file.Result.Changed || file.Result.Skipped
}

// located is a diagnostic resolved to line and column positions.
type located struct {
	diag       format.Diagnostic
	start, end text.Position
	line       string
}

func locate(res *pipeline.FileResult) []located {
	if len(res.Diagnostics) == 0 {
		return nil
	}
	idx := text.NewLineIndex(res.Original)
	out := make([]located, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		l := located{
			diag:  d,
			start: idx.Position(d.Range.Start),
			end:   idx.Position(d.Range.End),
		}
		if info, ok := idx.Line(l.start.Line); ok {
			l.line = res.Original[info.Start:info.NewlineStart]
		}
		out = append(out, l)
	}
	return out
}
