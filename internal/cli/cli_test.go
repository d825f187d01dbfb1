package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/internal/cli"
)

// execution is the outcome of one command line.
type execution struct {
	fs     afero.Fs
	stdout string
	stderr string
	err    error
}

func (e execution) exitCode() int { return cli.ExitCode(e.err) }

type invocation struct {
	files map[string]string
	env   map[string]string
	stdin string
	args  []string
}

// execute runs a command line against an in-memory project in /proj.
func execute(t *testing.T, inv invocation) execution {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/proj/.git", 0o755))
	for path, content := range inv.files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}

	cmd := cli.NewRootCommandWithEnv(cli.BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"}, cli.Env{
		FS:         fsys,
		WorkingDir: "/proj",
		LookupEnv: func(key string) (string, bool) {
			v, ok := inv.env[key]
			return v, ok
		},
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(inv.stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, inv.args...))

	err := cmd.ExecuteContext(context.Background())
	return execution{fs: fsys, stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

//nolint:gochecknoglobals // Shared test fixture.
var project = map[string]string{
	"/proj/a.json":       "[1,2]",
	"/proj/b.json":       "[]\n",
	"/proj/docs/x.md":    "#  Title\n",
	"/proj/notes.txt":    "not formatted",
	"/proj/.hidden/c.js": "x",
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains []string
		files    map[string]string
	}{
		{
			name:     "report only",
			args:     []string{"format"},
			wantCode: cli.ExitSuccess,
			contains: []string{
				"would reformat a.json (json)\n",
				"would reformat docs/x.md (markdown)\n",
				"3 files checked, 2 files need formatting\n",
			},
			files: map[string]string{"/proj/a.json": "[1,2]", "/proj/docs/x.md": "#  Title\n"},
		},
		{
			name:     "check",
			args:     []string{"format", "--check"},
			wantCode: cli.ExitCheckFailed,
			contains: []string{"would reformat a.json (json)\n"},
			files:    map[string]string{"/proj/a.json": "[1,2]"},
		},
		{
			name:     "check one formatted file",
			args:     []string{"format", "--check", "b.json"},
			wantCode: cli.ExitSuccess,
			contains: []string{"All files are formatted (1 file checked)"},
		},
		{
			name:     "write",
			args:     []string{"format", "--write"},
			wantCode: cli.ExitSuccess,
			contains: []string{"formatted a.json (json)\n"},
			files:    map[string]string{"/proj/a.json": "[1, 2]\n", "/proj/docs/x.md": "# Title\n", "/proj/b.json": "[]\n"},
		},
		{
			name:     "write and check",
			args:     []string{"format", "--write", "--check"},
			wantCode: cli.ExitSuccess,
			files:    map[string]string{"/proj/a.json": "[1, 2]\n"},
		},
		{
			name:     "ignore flag",
			args:     []string{"format", "--write", "--ignore", "docs/**"},
			wantCode: cli.ExitSuccess,
			files:    map[string]string{"/proj/a.json": "[1, 2]\n", "/proj/docs/x.md": "#  Title\n"},
		},
		{
			name:     "diff reporter",
			args:     []string{"format", "--reporter", "diff", "a.json"},
			wantCode: cli.ExitSuccess,
			contains: []string{"--- a/a.json\n+++ b/a.json\n", "+[1, 2]\n"},
		},
		{
			name:     "missing file",
			args:     []string{"format", "missing.json"},
			wantCode: cli.ExitIOError,
		},
		{
			name:     "unsupported file",
			args:     []string{"format", "notes.txt"},
			wantCode: cli.ExitInvalidUsage,
			contains: []string{"error notes.txt"},
		},
		{
			name:     "unknown reporter",
			args:     []string{"format", "--reporter", "sarif"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "bad option value",
			args:     []string{"format", "--indent-style", "tabs"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "bad flag type",
			args:     []string{"format", "--jobs", "many"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"format", "--frobnicate"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "invalid line width",
			args:     []string{"format", "--line-width", "0", "a.json"},
			wantCode: cli.ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := execute(t, invocation{files: project, args: tt.args})
			assert.Equal(t, tt.wantCode, got.exitCode(), "error: %v", got.err)
			for _, want := range tt.contains {
				assert.Contains(t, got.stdout, want)
			}
			for path, want := range tt.files {
				assert.Equal(t, want, readFile(t, got.fs, path), path)
			}
			// Hidden directories are never searched.
			assert.Equal(t, "x", readFile(t, got.fs, "/proj/.hidden/c.js"))
		})
	}
}

func TestFormat_JSONReporter(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{files: project, args: []string{"format", "--reporter", "json", "a.json", "b.json"}})
	require.NoError(t, got.err)

	var out struct {
		Files []struct {
			Path    string `json:"path"`
			Changed bool   `json:"changed"`
		} `json:"files"`
		Stats struct {
			FilesChanged int `json:"filesChanged"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(got.stdout), &out))
	require.Len(t, out.Files, 2)
	assert.Equal(t, "a.json", out.Files[0].Path)
	assert.True(t, out.Files[0].Changed)
	assert.Equal(t, 1, out.Stats.FilesChanged)
}

func TestFormat_ConfigSources(t *testing.T) {
	t.Parallel()

	src := "{\n\"a\":1}"
	tests := []struct {
		name     string
		files    map[string]string
		env      map[string]string
		args     []string
		want     string
		wantCode int
	}{
		{
			name:  "project config",
			files: map[string]string{"/proj/.formatkit.yml": "formatter:\n  indentStyle: tab\n"},
			want:  "{\n\t\"a\": 1\n}\n",
		},
		{
			name:  "environment over project config",
			files: map[string]string{"/proj/.formatkit.yml": "formatter:\n  indentStyle: tab\n"},
			env:   map[string]string{"FORMATKIT_INDENT_STYLE": "space", "FORMATKIT_INDENT_WIDTH": "4"},
			want:  "{\n    \"a\": 1\n}\n",
		},
		{
			name: "flags over environment",
			env:  map[string]string{"FORMATKIT_INDENT_STYLE": "space"},
			args: []string{"--indent-style", "tab"},
			want: "{\n\t\"a\": 1\n}\n",
		},
		{
			name:  "explicit config file",
			files: map[string]string{"/etc/custom.toml": "[formatter]\nindentStyle = \"tab\"\n"},
			args:  []string{"--config", "/etc/custom.toml"},
			want:  "{\n\t\"a\": 1\n}\n",
		},
		{
			name:     "unknown config field",
			files:    map[string]string{"/proj/.formatkit.yml": "nope: 1\n"},
			want:     src,
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "invalid environment variable",
			env:      map[string]string{"FORMATKIT_LINE_WIDTH": "wide"},
			want:     src,
			wantCode: cli.ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := map[string]string{"/proj/data.json": src}
			for path, content := range tt.files {
				files[path] = content
			}
			args := append([]string{"format", "--write", "data.json"}, tt.args...)

			got := execute(t, invocation{files: files, env: tt.env, args: args})
			assert.Equal(t, tt.wantCode, got.exitCode(), "error: %v", got.err)
			assert.Equal(t, tt.want, readFile(t, got.fs, "/proj/data.json"))
		})
	}
}

func TestFormat_Stdin(t *testing.T) {
	t.Parallel()

	style := []string{"--indent-style", "space", "--indent-width", "2"}

	got := execute(t, invocation{
		stdin: "if(a){b()}",
		args:  append([]string{"format", "--stdin-file-path", "src/app.js"}, style...),
	})
	require.NoError(t, got.err)
	assert.Equal(t, "if (a) {\n  b();\n}\n", got.stdout)

	exists, err := afero.Exists(got.fs, "/proj/src/app.js")
	require.NoError(t, err)
	assert.False(t, exists, "stdin is never written")

	got = execute(t, invocation{
		stdin: "if(a){b()}",
		args:  append([]string{"format", "--check", "--stdin-file-path", "src/app.js"}, style...),
	})
	assert.Equal(t, cli.ExitCheckFailed, got.exitCode())
	assert.Contains(t, got.stdout, "would reformat src/app.js (js)\n")

	got = execute(t, invocation{
		stdin: "x",
		args:  []string{"format", "--stdin-file-path", "a.js", "b.js"},
	})
	assert.Equal(t, cli.ExitInvalidUsage, got.exitCode())
}

func TestFormat_TraceComments(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{
		files: map[string]string{"/proj/a.js": "x /* trailing */\ny"},
		args:  []string{"format", "--trace-comments", "trace.jsonl", "a.js"},
	})
	require.NoError(t, got.err)

	trace := readFile(t, got.fs, "/proj/trace.jsonl")
	lines := strings.Split(strings.TrimSpace(trace), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "/* trailing */")
}

func TestIR(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{files: project, args: []string{"ir", "--tree", "a.json"}})
	require.NoError(t, got.err)
	assert.True(t, strings.HasPrefix(got.stdout, "JSON_ROOT@"), got.stdout)

	got = execute(t, invocation{files: project, args: []string{"ir", "a.json"}})
	require.NoError(t, got.err)
	assert.NotEmpty(t, strings.TrimSpace(got.stdout))

	got = execute(t, invocation{files: project, args: []string{"ir"}})
	assert.Equal(t, cli.ExitInvalidUsage, got.exitCode())

	got = execute(t, invocation{files: project, args: []string{"ir", "missing.json"}})
	assert.Equal(t, cli.ExitIOError, got.exitCode())
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{args: []string{"languages"}})
	require.NoError(t, got.err)

	want := "" +
		"LANGUAGE  ALIASES                 EXTENSIONS\n" +
		"html      htm, xhtml              .html .htm\n" +
		"js        javascript, ecmascript  .js .mjs .cjs\n" +
		"json      jsonc                   .json .jsonc\n" +
		"markdown  md, commonmark, gfm     .md .markdown\n"
	assert.Equal(t, want, got.stdout)
}

func TestEnv(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{args: []string{"env"}})
	require.NoError(t, got.err)
	assert.True(t, strings.HasPrefix(got.stdout, "VARIABLE"))
	assert.Contains(t, got.stdout, "FORMATKIT_JOBS")
	assert.Contains(t, got.stdout, "FORMATKIT_LINE_WIDTH")
}

func TestInit(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{args: []string{"init"}})
	require.NoError(t, got.err)
	assert.True(t, strings.HasPrefix(readFile(t, got.fs, "/proj/.formatkit.yml"), "# formatkit configuration"))

	got = execute(t, invocation{files: map[string]string{"/proj/.formatkit.yml": "jobs: 1\n"}, args: []string{"init"}})
	assert.Equal(t, cli.ExitInvalidUsage, got.exitCode())
	assert.Equal(t, "jobs: 1\n", readFile(t, got.fs, "/proj/.formatkit.yml"))

	got = execute(t, invocation{files: map[string]string{"/proj/.formatkit.yml": "jobs: 1\n"}, args: []string{"init", "--force"}})
	require.NoError(t, got.err)
	assert.NotEqual(t, "jobs: 1\n", readFile(t, got.fs, "/proj/.formatkit.yml"))

	got = execute(t, invocation{args: []string{"init", "--format", "toml"}})
	require.NoError(t, got.err)
	assert.Contains(t, readFile(t, got.fs, "/proj/.formatkit.toml"), "[formatter]")

	got = execute(t, invocation{args: []string{"init", "--format", "json"}})
	assert.Equal(t, cli.ExitInvalidUsage, got.exitCode())
}

func TestInit_TemplateLoads(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{args: []string{"init"}})
	require.NoError(t, got.err)

	content := readFile(t, got.fs, "/proj/.formatkit.yml")
	got = execute(t, invocation{
		files: map[string]string{"/proj/.formatkit.yml": content, "/proj/b.json": "[]\n"},
		args:  []string{"format", "--check"},
	})
	assert.NoError(t, got.err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{args: []string{"version"}})
	require.NoError(t, got.err)
	assert.Contains(t, got.stdout, "formatkit")
	assert.Contains(t, got.stdout, "version=1.2.3")
	assert.Contains(t, got.stdout, "commit=abc1234")
	assert.Contains(t, got.stdout, "languages=html,js,json,markdown")

	got = execute(t, invocation{args: []string{"version", "--short"}})
	require.NoError(t, got.err)
	assert.Equal(t, "1.2.3\n", got.stdout)
}

func TestRoot(t *testing.T) {
	t.Parallel()

	got := execute(t, invocation{args: []string{"frobnicate"}})
	assert.Equal(t, cli.ExitInvalidUsage, got.exitCode())

	got = execute(t, invocation{args: []string{"--help"}})
	require.NoError(t, got.err)
	assert.Contains(t, got.stdout, "Available Commands:")
	assert.Contains(t, got.stdout, "Languages:\n  html, js, json, markdown\n")

	got = execute(t, invocation{args: []string{"format", "--help"}})
	require.NoError(t, got.err)
	assert.Contains(t, got.stdout, "--stdin-file-path string")
	assert.Contains(t, got.stdout, "line ending: lf, crlf or cr")
	assert.NotContains(t, got.stdout, "or auto")

	got = execute(t, invocation{
		stdin: "a;\n",
		args:  []string{"format", "--stdin-file-path", "a.js", "--line-ending", "auto"},
	})
	assert.Equal(t, cli.ExitInvalidUsage, got.exitCode())
	assert.NotContains(t, got.stdout, "Languages:")
}
