package cli_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/yaklabco/formatkit/internal/cli"
	"github.com/yaklabco/formatkit/internal/configloader"
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/pipeline"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: cli.ExitSuccess},
		{name: "check failed", err: cli.ErrCheckFailed, want: cli.ExitCheckFailed},
		{name: "usage", err: errors.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "validation", err: &configloader.ValidationError{Field: "jobs", Message: "must not be negative"}, want: cli.ExitConfigError},
		{name: "load", err: errors.Errorf("%w: x.yml", configloader.ErrLoad), want: cli.ExitConfigError},
		{name: "missing file", err: errors.Errorf("stat x: %w", fs.ErrNotExist), want: cli.ExitIOError},
		{
			name: "failed files keep their category",
			err:  errors.Errorf("%w: %w", cli.ErrFilesFailed, multierr.Append(pipeline.ErrWriteFailure, pipeline.ErrFormatFailure)),
			want: cli.ExitIOError,
		},
		{
			name: "usage wins over I/O",
			err:  errors.Errorf("%w: %w", cli.ErrFilesFailed, multierr.Append(pipeline.ErrFileNotFound, pipeline.ErrUnsupportedLanguage)),
			want: cli.ExitInvalidUsage,
		},
		{name: "structural", err: errors.Errorf("%w: %w", pipeline.ErrFormatFailure, format.ErrStructural), want: cli.ExitInternalError},
		{name: "unknown", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestReported(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.Reported(cli.ErrCheckFailed))
	assert.True(t, cli.Reported(errors.Errorf("%w: %w", cli.ErrFilesFailed, pipeline.ErrFileNotFound)))
	assert.False(t, cli.Reported(errors.Errorf("%w: x", configloader.ErrLoad)))
}
