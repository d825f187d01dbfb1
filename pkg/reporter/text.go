package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/formatkit/internal/ui/pretty"
	"github.com/yaklabco/formatkit/pkg/runner"
)

// TextReporter writes one line per file that needs attention, its
// diagnostics, and a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	reported := 0
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			reported++
			fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, "", pretty.StatusErrored, file.Error.Error()))
			continue
		}

		res := file.Result
		status, detail := pretty.StatusUnchanged, ""
		switch {
		case res.Skipped:
			status, detail = pretty.StatusSkipped, res.SkipReason
		case res.Written:
			status = pretty.StatusWritten
		case res.Changed:
			status = pretty.StatusChanged
		}
		if needsAttention(file) {
			reported++
		} else if !r.opts.Verbose && len(res.Diagnostics) == 0 {
			continue
		}

		fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, res.Language, status, detail))
		for _, l := range locate(res) {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, l.start, l.diag, l.line))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return reported, nil
}
