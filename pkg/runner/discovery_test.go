package runner_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/yaklabco/formatkit/pkg/lang/all"
	"github.com/yaklabco/formatkit/pkg/runner"
)

func newFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{
		"/proj/index.js":                   "",
		"/proj/README.md":                  "",
		"/proj/data/config.json":           "",
		"/proj/data/deep/page.HTML":        "",
		"/proj/dist/app.min.js":            "",
		"/proj/node_modules/lib/index.js":  "",
		"/proj/.cache/tmp.js":              "",
		"/proj/.hidden.js":                 "",
		"/proj/notes.txt":                  "",
		"/proj/scripts/build.sh":           "",
		"/proj/scripts/vendor/external.js": "",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "every known extension",
			opts: runner.Options{},
			want: []string{
				"/proj/README.md",
				"/proj/data/config.json",
				"/proj/data/deep/page.HTML",
				"/proj/dist/app.min.js",
				"/proj/index.js",
				"/proj/node_modules/lib/index.js",
				"/proj/scripts/vendor/external.js",
			},
		},
		{
			name: "ignore directories and base names",
			opts: runner.Options{Ignore: []string{"**/node_modules/**", "**/vendor/**", "*.min.js"}},
			want: []string{
				"/proj/README.md",
				"/proj/data/config.json",
				"/proj/data/deep/page.HTML",
				"/proj/index.js",
			},
		},
		{
			name: "include limits the result",
			opts: runner.Options{Include: []string{"data/**"}},
			want: []string{
				"/proj/data/config.json",
				"/proj/data/deep/page.HTML",
			},
		},
		{
			name: "explicit extensions",
			opts: runner.Options{Extensions: []string{".md"}},
			want: []string{"/proj/README.md"},
		},
		{
			name: "explicit paths keep unknown extensions",
			opts: runner.Options{Paths: []string{"notes.txt", "data", "index.js", "data/config.json"}},
			want: []string{
				"/proj/data/config.json",
				"/proj/data/deep/page.HTML",
				"/proj/index.js",
				"/proj/notes.txt",
			},
		},
		{
			name: "explicit path can still be ignored",
			opts: runner.Options{Paths: []string{"index.js"}, Ignore: []string{"index.js"}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = "/proj"
			files, err := runner.Discover(context.Background(), fsys, nil, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, files)
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{"/proj/a.js": ""})

	_, err := runner.Discover(context.Background(), fsys, nil, runner.Options{
		WorkingDir: "/proj",
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat missing")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, fsys, nil, runner.Options{WorkingDir: "/proj"})
	require.ErrorIs(t, err, context.Canceled)
}
