// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTermWidth is used when the terminal width cannot be determined.
const DefaultTermWidth = 100

// ANSI palette indexes. The 16 basic colors follow the user's terminal
// theme.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorGray    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// File status
	FilePath  lipgloss.Style
	Location  lipgloss.Style
	Language  lipgloss.Style
	Message   lipgloss.Style
	Changed   lipgloss.Style
	Written   lipgloss.Style
	Skipped   lipgloss.Style
	Unchanged lipgloss.Style

	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Command help
	Command lipgloss.Style
	Heading lipgloss.Style
	Flag    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func newColorStyles() *Styles {
	bold := lipgloss.NewStyle().Bold(true)
	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:  bold,
		Location:  fg(colorGray),
		Language:  fg(colorGray),
		Message:   lipgloss.NewStyle(),
		Changed:   fg(colorYellow),
		Written:   fg(colorGreen),
		Skipped:   fg(colorMagenta),
		Unchanged: fg(colorGray),

		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed),

		DiffHeader:  bold,
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: bold,
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorSilver).Bold(true),
		TableSeparator: fg(colorGray),

		Command: fg(colorCyan).Bold(true),
		Heading: fg(colorYellow).Bold(true),
		Flag:    fg(colorBlue),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

func newNoColorStyles() *Styles {
	s := &Styles{}
	for _, style := range s.all() {
		*style = lipgloss.NewStyle()
	}
	return s
}

// all lists every style field.
func (s *Styles) all() []*lipgloss.Style {
	return []*lipgloss.Style{
		&s.Error, &s.Warning, &s.Info,
		&s.FilePath, &s.Location, &s.Language, &s.Message,
		&s.Changed, &s.Written, &s.Skipped, &s.Unchanged,
		&s.SourceLine, &s.Caret,
		&s.DiffHeader, &s.DiffHunk, &s.DiffAdd, &s.DiffRemove, &s.DiffContext,
		&s.SummaryTitle, &s.SummaryValue, &s.Success, &s.Failure,
		&s.TableHeader, &s.TableSeparator,
		&s.Command, &s.Heading, &s.Flag,
		&s.Dim, &s.Bold,
	}
}

// IsColorEnabled reports whether output to writer is colored. Mode is
// "always", "never" or "auto"; anything else means auto, which colors a
// terminal unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind w, or
// DefaultTermWidth when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // file descriptors fit in int
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultTermWidth
}
