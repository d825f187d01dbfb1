package runner

import (
	"context"
	"runtime"
	"time"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/pipeline"
)

// Runner formats the files a run discovers through one Pipeline.
type Runner struct {
	Pipeline *pipeline.Pipeline
}

// New creates a runner.
func New(p *pipeline.Pipeline) *Runner {
	return &Runner{Pipeline: p}
}

// Run discovers files and formats them with up to opts.Jobs workers. A
// file that fails is recorded in its outcome and does not stop the run;
// the returned error is reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, r.Pipeline.FS, r.Pipeline.Engine.Registry, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))
	logger.Debug("formatting files", logging.FieldFilesDiscovered, len(files), logging.FieldJobs, jobs)

	// Each worker owns one slot, so the outcomes stay in discovery order.
	outcomes := make([]FileOutcome, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			res, err := r.Pipeline.ProcessFile(groupCtx, path, opts.File)
			outcomes[i] = FileOutcome{Path: path, Result: res, Error: err}
			return nil
		})
	}
	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run finished",
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	if err := ctx.Err(); err != nil {
		return result, errors.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, waitErr
	}
	return result, nil
}
