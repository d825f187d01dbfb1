package runner

import (
	"go.uber.org/multierr"

	"github.com/yaklabco/formatkit/pkg/pipeline"
)

// FileOutcome is the result of one file: either Result or Error is set.
type FileOutcome struct {
	Path   string
	Result *pipeline.FileResult
	Error  error
}

// Stats summarizes a run.
type Stats struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesFormatted  int `json:"filesFormatted"`
	FilesChanged    int `json:"filesChanged"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	FilesWritten    int `json:"filesWritten"`
	Diagnostics     int `json:"diagnostics"`
}

// Result is the outcome of a run. Files are sorted by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasChanges reports whether any file needs formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// Pending reports whether some changed file was left as it was: either
// nothing was written or the write was skipped.
func (r *Result) Pending() bool {
	return r != nil && r.Stats.FilesChanged > r.Stats.FilesWritten
}

// Err combines the errors of every file that failed, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var err error
	for _, f := range r.Files {
		err = multierr.Append(err, f.Error)
	}
	return err
}

// NewResult builds a result from outcomes that did not come from Run,
// such as source read from stdin. Every outcome counts as discovered.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesFormatted++
	r.Stats.Diagnostics += len(res.Diagnostics)
	if res.Changed {
		r.Stats.FilesChanged++
	} else {
		r.Stats.FilesUnchanged++
	}
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
}
