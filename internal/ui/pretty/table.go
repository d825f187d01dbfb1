package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/formatkit/pkg/runner"
)

const (
	tablePadding   = 2
	lightSeparator = "-"
	unknownLang    = "unknown"
)

// LanguageRow aggregates the files of one language.
type LanguageRow struct {
	Language    string
	Files       int
	Changed     int
	Diagnostics int
	Errors      int
}

// LanguageRows groups a run by language, sorted by name. Files that
// failed before their language was known count as "unknown".
func LanguageRows(result *runner.Result) []LanguageRow {
	if result == nil {
		return nil
	}
	byLang := make(map[string]*LanguageRow)
	for _, file := range result.Files {
		name := unknownLang
		if file.Result != nil {
			name = file.Result.Language
		}
		row, ok := byLang[name]
		if !ok {
			row = &LanguageRow{Language: name}
			byLang[name] = row
		}
		row.Files++
		if file.Error != nil {
			row.Errors++
			continue
		}
		if file.Result.Changed {
			row.Changed++
		}
		row.Diagnostics += len(file.Result.Diagnostics)
	}

	rows := make([]LanguageRow, 0, len(byLang))
	for _, row := range byLang {
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b LanguageRow) int { return strings.Compare(a.Language, b.Language) })
	return rows
}

// FormatLanguageTable renders rows as an aligned table no wider than
// termWidth.
func (s *Styles) FormatLanguageTable(rows []LanguageRow, termWidth int) string {
	if len(rows) == 0 {
		return ""
	}
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}

	header := []string{"LANGUAGE", "FILES", "CHANGED", "DIAGNOSTICS", "ERRORS"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Language,
			strconv.Itoa(r.Files),
			strconv.Itoa(r.Changed),
			strconv.Itoa(r.Diagnostics),
			strconv.Itoa(r.Errors),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	total = min(total-tablePadding, termWidth)

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(formatCells(header, widths)))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
	builder.WriteString("\n")
	for i, row := range cells {
		line := formatCells(row, widths)
		switch {
		case rows[i].Errors > 0:
			line = s.Error.Render(line)
		case rows[i].Changed > 0:
			line = s.Changed.Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// formatCells left-aligns the first column and right-aligns the counts.
func formatCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i == 0 {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		} else {
			parts[i] = fmt.Sprintf("%*s", widths[i], c)
		}
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", tablePadding)), " ")
}
