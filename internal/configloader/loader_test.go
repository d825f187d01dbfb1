package configloader_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/configloader"
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format/options"
	_ "github.com/yaklabco/formatkit/pkg/lang/all"
)

func envOf(vars map[string]string) configloader.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/etc/formatkit/config.yaml", "formatter:\n  lineWidth: 60\n  indentWidth: 8\njobs: 1\n")
	writeFile(t, fsys, "/home/u/.config/formatkit/config.toml", "[formatter]\nlineWidth = 70\nquoteStyle = \"single\"\n")
	writeFile(t, fsys, "/home/u/proj/.formatkit.yml", "formatter:\n  lineWidth: 90\nlanguages:\n  json:\n    lineWidth: 40\n")
	require.NoError(t, fsys.MkdirAll("/home/u/proj/.git", 0o755))
	require.NoError(t, fsys.MkdirAll("/home/u/proj/src", 0o755))

	cli := &config.Config{Jobs: 3}
	res, err := configloader.Load(context.Background(), configloader.LoadOptions{
		FS:         fsys,
		WorkingDir: "/home/u/proj/src",
		LookupEnv:  envOf(map[string]string{"HOME": "/home/u", "FORMATKIT_INDENT_WIDTH": "4"}),
		CLIConfig:  cli,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/etc/formatkit/config.yaml",
		"/home/u/.config/formatkit/config.toml",
		"/home/u/proj/.formatkit.yml",
	}, res.LoadedFrom)

	opts := res.Config.Formatter.Apply(options.Default())
	assert.Equal(t, uint16(90), opts.LineWidth)
	assert.Equal(t, uint8(4), opts.IndentWidth)
	assert.Equal(t, options.QuoteSingle, opts.QuoteStyle)
	assert.Equal(t, 3, res.Config.Jobs)

	jsonOpts := res.Config.LanguageOverrides("json").Apply(opts)
	assert.Equal(t, uint16(40), jsonOpts.LineWidth)
}

func TestLoad_ExplicitAboveProject(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/p/formatkit.toml", "format = \"json\"\n")
	writeFile(t, fsys, "/p/ci.yaml", "format: summary\n")

	res, err := configloader.Load(context.Background(), configloader.LoadOptions{
		FS:           fsys,
		WorkingDir:   "/p",
		ExplicitPath: "/p/ci.yaml",
		LookupEnv:    envOf(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, config.FormatSummary, res.Config.Format)
	assert.Equal(t, "/p/formatkit.toml", res.Paths.Project)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		env     map[string]string
		isLoad  bool
		isValid bool
		isEnv   bool
	}{
		{name: "malformed file", file: "formatter: [\n", isLoad: true},
		{name: "unknown key", file: "colour: true\n", isLoad: true},
		{name: "line width out of range", file: "formatter:\n  lineWidth: 0\n", isValid: true},
		{name: "bad glob", file: "ignore: [\"[\"]\n", isValid: true},
		{name: "bad env", env: map[string]string{"FORMATKIT_JOBS": "many"}, isEnv: true},
		{name: "bad env option", env: map[string]string{"FORMATKIT_QUOTE_STYLE": "fancy"}, isEnv: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			if tt.file != "" {
				writeFile(t, fsys, "/w/.formatkit.yml", tt.file)
			}
			_, err := configloader.Load(context.Background(), configloader.LoadOptions{
				FS:         fsys,
				WorkingDir: "/w",
				LookupEnv:  envOf(tt.env),
			})
			require.Error(t, err)

			var verr *configloader.ValidationError
			assert.Equal(t, tt.isLoad, errors.Is(err, configloader.ErrLoad), "ErrLoad: %v", err)
			assert.Equal(t, tt.isValid, errors.As(err, &verr), "ValidationError: %v", err)
			assert.Equal(t, tt.isEnv, errors.Is(err, configloader.ErrInvalidEnv), "ErrInvalidEnv: %v", err)
		})
	}
}

func TestValidate_UnknownLanguageWarns(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	width := uint16(500)
	cfg.Languages = map[string]options.Overrides{
		"cobol":      {},
		"javascript": {LineWidth: &width},
	}

	res := configloader.Validate(cfg, nil)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "languages.cobol", res.Warnings[0].Field)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "languages.javascript.lineWidth", res.Errors[0].Field)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	names := make([]string, 0)
	for _, v := range configloader.ListEnvVars() {
		names = append(names, v.Name)
	}
	assert.Contains(t, names, "FORMATKIT_LINE_WIDTH")
	assert.Contains(t, names, "FORMATKIT_TRAILING_COMMAS")
	assert.Contains(t, names, "FORMATKIT_VERIFY_IDEMPOTENCE")
	assert.NotContains(t, names, "FORMATKIT_LANGUAGE")
	assert.IsIncreasing(t, names)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	no := false
	width := uint16(100)
	merged := configloader.MergeAll(
		config.NewConfig(),
		&config.Config{Ignore: []string{"a/**"}, Formatter: options.Overrides{LineWidth: &width}},
		&config.Config{UseEditorconfig: &no, Write: true},
	)
	assert.Equal(t, []string{"a/**"}, merged.Ignore)
	assert.False(t, merged.EditorconfigEnabled())
	assert.True(t, merged.Write)
	assert.Equal(t, config.FormatText, merged.Format)
	assert.Equal(t, uint16(100), *merged.Formatter.LineWidth)
}
