package runner_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/pkg/pipeline"
	"github.com/yaklabco/formatkit/pkg/runner"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    pipeline.Options
		jobs    int
		written int
		pending bool
	}{
		{name: "report only", jobs: 1, pending: true},
		{name: "check", file: pipeline.Options{Check: true}, jobs: 2, pending: true},
		{name: "write", file: pipeline.Options{Write: true}, jobs: 0, written: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := newFS(t, map[string]string{
				"/proj/b.json":   "[1,2]",
				"/proj/a.json":   "[1, 2]\n",
				"/proj/c.js":     "let  x=1",
				"/proj/empty.js": "",
			})

			r := runner.New(pipeline.New(nil, fsys, nil))
			result, err := r.Run(context.Background(), runner.Options{
				WorkingDir: "/proj",
				Jobs:       tt.jobs,
				File:       tt.file,
			})
			require.NoError(t, err)

			paths := make([]string, 0, len(result.Files))
			for _, f := range result.Files {
				paths = append(paths, f.Path)
			}
			assert.Equal(t, []string{"/proj/a.json", "/proj/b.json", "/proj/c.js", "/proj/empty.js"}, paths)

			assert.Equal(t, runner.Stats{
				FilesDiscovered: 4,
				FilesFormatted:  4,
				FilesChanged:    2,
				FilesUnchanged:  2,
				FilesWritten:    tt.written,
			}, result.Stats)
			assert.True(t, result.HasChanges())
			assert.Equal(t, tt.pending, result.Pending())
			require.NoError(t, result.Err())

			for _, f := range result.Files {
				if f.Path == "/proj/b.json" {
					assert.Equal(t, tt.file.Check, f.Result.Diff != nil)
				}
			}
		})
	}
}

func TestRunner_Run_FileErrors(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{
		"/proj/ok.json":   "[]\n",
		"/proj/notes.zzz": "plain",
	})
	r := runner.New(pipeline.New(nil, fsys, nil))

	result, err := r.Run(context.Background(), runner.Options{
		WorkingDir: "/proj",
		Paths:      []string{"ok.json", "notes.zzz"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.False(t, result.HasChanges())
	require.ErrorIs(t, result.Err(), pipeline.ErrUnsupportedLanguage)
}

func TestRunner_Run_Empty(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))

	result, err := runner.New(pipeline.New(nil, fsys, nil)).Run(context.Background(), runner.Options{WorkingDir: "/empty"})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{"/proj/a.json": "[]"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(pipeline.New(nil, fsys, nil)).Run(ctx, runner.Options{WorkingDir: "/proj"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	result := runner.NewResult(
		runner.FileOutcome{Path: "a.json", Result: &pipeline.FileResult{Path: "a.json", Changed: true}},
		runner.FileOutcome{Path: "b.json", Result: &pipeline.FileResult{Path: "b.json"}},
		runner.FileOutcome{Path: "c.zzz", Error: pipeline.ErrUnsupportedLanguage},
	)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 3,
		FilesFormatted:  2,
		FilesChanged:    1,
		FilesUnchanged:  1,
		FilesErrored:    1,
	}, result.Stats)
	assert.True(t, result.Pending())
	require.ErrorIs(t, result.Err(), pipeline.ErrUnsupportedLanguage)
}
