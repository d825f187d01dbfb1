package reporter

import (
	"bufio"
	"context"
	"encoding/json"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/fix"
	"github.com/yaklabco/formatkit/pkg/runner"
	"github.com/yaklabco/formatkit/pkg/text"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Stats   runner.Stats     `json:"stats"`
}

// JSONFileResult is one file. Edits turn the original content into the
// formatted content and are listed for changed files only.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Changed     bool             `json:"changed"`
	Written     bool             `json:"written,omitempty"`
	Skipped     bool             `json:"skipped,omitempty"`
	SkipReason  string           `json:"skipReason,omitempty"`
	Edits       []fix.TextEdit   `json:"edits,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is a diagnostic with both byte offsets and 1-based
// positions.
type JSONDiagnostic struct {
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Range    text.Range    `json:"range"`
	Start    text.Position `json:"start"`
	End      text.Position `json:"end"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, reported := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, errors.Errorf("encode JSON: %w", err)
	}
	return reported, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, int) {
	output := &JSONOutput{Version: jsonVersion, Files: make([]JSONFileResult, 0)}
	if result == nil {
		return output, 0
	}
	output.Stats = result.Stats

	reported := 0
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Diagnostics: make([]JSONDiagnostic, 0),
		}
		if needsAttention(file) {
			reported++
		}

		if file.Error != nil {
			entry.Error = file.Error.Error()
			output.Files = append(output.Files, entry)
			continue
		}

		res := file.Result
		entry.Language = res.Language
		entry.Changed = res.Changed
		entry.Written = res.Written
		entry.Skipped = res.Skipped
		entry.SkipReason = res.SkipReason
		entry.Edits = res.Edits
		for _, l := range locate(res) {
			entry.Diagnostics = append(entry.Diagnostics, JSONDiagnostic{
				Severity: l.diag.Severity.String(),
				Message:  l.diag.Message,
				Range:    l.diag.Range,
				Start:    l.start,
				End:      l.end,
			})
		}
		output.Files = append(output.Files, entry)
	}
	return output, reported
}
