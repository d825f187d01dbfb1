package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/formatkit/internal/ui/pretty"
	"github.com/yaklabco/formatkit/pkg/runner"
)

// SummaryReporter writes a per-language table and the run totals without
// listing files.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	termWidth int
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:      opts,
		styles:    pretty.NewStyles(colorEnabled),
		termWidth: pretty.TerminalWidth(opts.Writer),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		return 0, nil
	}

	fmt.Fprint(r.bw, r.styles.FormatLanguageTable(pretty.LanguageRows(result), r.termWidth))
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	reported := 0
	for _, file := range result.Files {
		if needsAttention(file) {
			reported++
		}
	}
	return reported, nil
}
