package pretty_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formatkit/internal/ui/pretty"
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/pipeline"
	"github.com/yaklabco/formatkit/pkg/runner"
	"github.com/yaklabco/formatkit/pkg/text"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)
	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
	assert.Equal(t, "test", styles.Heading.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&buf))
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := format.Diagnostic{Severity: format.SeverityWarning, Message: "unexpected token"}

	got := styles.FormatDiagnostic("a.js", text.Position{Line: 2, Column: 3}, diag, "  x y")
	assert.Equal(t, "  a.js:2:3  warning  unexpected token\n"+strings.Repeat(" ", 10)+"x y\n"+strings.Repeat(" ", 10)+"^\n", got)

	got = styles.FormatDiagnostic("a.js", text.Position{Line: 1, Column: 1}, format.Diagnostic{Message: "note"}, "")
	assert.Equal(t, "  a.js:1:1  info  note\n", got)
}

func TestFormatFileStatus(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		status pretty.FileStatus
		lang   string
		detail string
		want   string
	}{
		{pretty.StatusChanged, "json", "", "would reformat a.json (json)\n"},
		{pretty.StatusWritten, "json", "", "formatted a.json (json)\n"},
		{pretty.StatusSkipped, "json", "syntax errors", "skipped a.json (json): syntax errors\n"},
		{pretty.StatusErrored, "", "file not found", "error a.json: file not found\n"},
		{pretty.StatusUnchanged, "json", "", "unchanged a.json (json)\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, styles.FormatFileStatus("a.json", tt.lang, tt.status, tt.detail))
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "no files",
			want: "No files to format.\n",
		},
		{
			name:  "all formatted",
			stats: runner.Stats{FilesDiscovered: 3, FilesFormatted: 3, FilesUnchanged: 3},
			want:  "All files are formatted (3 files checked)\n",
		},
		{
			name:  "one pending",
			stats: runner.Stats{FilesDiscovered: 3, FilesFormatted: 3, FilesChanged: 1, FilesUnchanged: 2},
			want:  "3 files checked, 1 file needs formatting\n",
		},
		{
			name: "written and failed",
			stats: runner.Stats{
				FilesDiscovered: 2, FilesFormatted: 1, FilesChanged: 1,
				FilesWritten: 1, FilesErrored: 1, Diagnostics: 2,
			},
			want: "1 file checked, 1 formatted, 1 failed, 2 diagnostics\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesFormatted: 2, FilesChanged: 1, FilesUnchanged: 1})
	assert.Contains(t, got, "  Files discovered:  2\n")
	assert.Contains(t, got, "  Changed:           1\n")
	assert.NotContains(t, got, "Written")
	assert.Contains(t, got, "Some files need formatting\n")
}

func TestLanguageTable(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "a.json", Result: &pipeline.FileResult{Language: "json", Changed: true}},
		{Path: "b.json", Result: &pipeline.FileResult{Language: "json"}},
		{Path: "c.js", Result: &pipeline.FileResult{
			Language:    "js",
			Diagnostics: []format.Diagnostic{{Message: "x"}},
		}},
		{Path: "d.zzz", Error: errors.New("no binding")},
	}}

	rows := pretty.LanguageRows(result)
	assert.Equal(t, []pretty.LanguageRow{
		{Language: "js", Files: 1, Diagnostics: 1},
		{Language: "json", Files: 2, Changed: 1},
		{Language: "unknown", Files: 1, Errors: 1},
	}, rows)

	got := pretty.NewStyles(false).FormatLanguageTable(rows, 0)
	want := "" +
		"LANGUAGE  FILES  CHANGED  DIAGNOSTICS  ERRORS\n" +
		"---------------------------------------------\n" +
		"js            1        0            1       0\n" +
		"json          2        1            0       0\n" +
		"unknown       1        0            0       1\n"
	assert.Equal(t, want, got)
}
