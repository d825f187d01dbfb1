package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/text"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// sourceLine is the line the diagnostic starts on; empty skips the context.
func (s *Styles) FormatDiagnostic(path string, pos text.Position, diag format.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), pos.Line, pos.Column)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, pos.Column))
	}
	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev format.Severity) string {
	switch sev {
	case format.SeverityError:
		return s.Error.Render("error")
	case format.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return s.Info.Render("info")
	}
}

// FormatSourceContext formats the source line with a caret under column,
// which counts bytes from 1.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		// Styles render tabs as four spaces; the caret padding follows.
		var padding strings.Builder
		for _, r := range line[:min(column-1, len(line))] {
			if r == '\t' {
				padding.WriteString("    ")
			} else {
				padding.WriteByte(' ')
			}
		}
		builder.WriteString(indent + padding.String() + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FileStatus is what happened to a file in a run.
type FileStatus uint8

// File statuses.
const (
	StatusUnchanged FileStatus = iota
	StatusChanged
	StatusWritten
	StatusSkipped
	StatusErrored
)

// FormatFileStatus formats one line naming path and what happened to it.
func (s *Styles) FormatFileStatus(path, language string, status FileStatus, detail string) string {
	var label string
	switch status {
	case StatusChanged:
		label = s.Changed.Render("would reformat")
	case StatusWritten:
		label = s.Written.Render("formatted")
	case StatusSkipped:
		label = s.Skipped.Render("skipped")
	case StatusErrored:
		label = s.Error.Render("error")
	default:
		label = s.Unchanged.Render("unchanged")
	}

	line := label + " " + s.FilePath.Render(path)
	if language != "" {
		line += " " + s.Language.Render("("+language+")")
	}
	if detail != "" {
		line += ": " + s.Message.Render(detail)
	}
	return line + "\n"
}
