package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/formatkit/internal/ui/pretty"
	"github.com/yaklabco/formatkit/pkg/fix"
	"github.com/yaklabco/formatkit/pkg/runner"
)

// DiffReporter writes a unified diff per changed file in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, added, removed, reported int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			reported++
			fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, "", pretty.StatusErrored, file.Error.Error()))
			continue
		}
		if !needsAttention(file) {
			continue
		}
		reported++

		diff := file.Result.Diff
		if diff == nil {
			diff = fix.GenerateDiff(file.Path, file.Result.Original, file.Result.Formatted)
		}
		if !diff.HasChanges() {
			continue
		}
		files++
		added += diff.Added
		removed += diff.Removed
		r.writeDiff(path, diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, added, removed)
	}
	return reported, nil
}

func (r *DiffReporter) writeDiff(path string, diff *fix.Diff) {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(h.Header()))
		for _, line := range h.Lines {
			r.writeDiffLine(line)
		}
	}
	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) writeDiffLine(line fix.Line) {
	content := strings.TrimRight(line.Text, "\r\n")
	switch line.Kind {
	case fix.LineAdded:
		fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+"+content))
	case fix.LineRemoved:
		fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("-"+content))
	default:
		fmt.Fprintln(r.bw, r.styles.DiffContext.Render(" "+content))
	}
	if line.NoNewline {
		fmt.Fprintln(r.bw, r.styles.Dim.Render(`\ No newline at end of file`))
	}
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
