package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/formatkit/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 files checked, 3 formatted, 1 file needs formatting".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to format.") + "\n"
	}
	checked := fmt.Sprintf("%d %s checked", stats.FilesFormatted, plural(stats.FilesFormatted, wordFile, wordFiles))
	pending := stats.FilesChanged - stats.FilesWritten

	if pending == 0 && stats.FilesErrored == 0 && stats.FilesWritten == 0 {
		return s.Success.Render("All files are formatted") + s.Dim.Render(" ("+checked+")") + "\n"
	}

	parts := []string{checked}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d formatted", stats.FilesWritten)))
	}
	if pending > 0 {
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d %s formatting",
			pending, plural(pending, "file needs", "files need"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.Diagnostics > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s",
			stats.Diagnostics, plural(stats.Diagnostics, "diagnostic", "diagnostics"))))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, n int) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", style(strconv.Itoa(n))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files discovered", s.SummaryValue.Render, stats.FilesDiscovered)
	row("Files checked", s.SummaryValue.Render, stats.FilesFormatted)
	row("Unchanged", s.Unchanged.Render, stats.FilesUnchanged)
	if stats.FilesChanged > 0 {
		row("Changed", s.Changed.Render, stats.FilesChanged)
	}
	if stats.FilesWritten > 0 {
		row("Written", s.Written.Render, stats.FilesWritten)
	}
	if stats.FilesSkipped > 0 {
		row("Skipped", s.Skipped.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Failed", s.Error.Render, stats.FilesErrored)
	}
	if stats.Diagnostics > 0 {
		row("Diagnostics", s.Warning.Render, stats.Diagnostics)
	}
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed for some files"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Changed.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files are formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
