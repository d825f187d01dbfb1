package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/ui/pretty"
	"github.com/yaklabco/formatkit/pkg/lang"
)

// usageTemplate is cobra's usage layout with styled headings, plus the
// supported languages on the root command.
const usageTemplate = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{heading "Aliases:"}}
  {{join .Aliases ", "}}{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if not .HasParent}}

{{heading "Languages:"}}
  {{languages}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags.FlagUsages}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags.FlagUsages}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{command (print .CommandPath " [command] --help")}}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trim .}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

// flagLine splits a pflag usage line into indentation, flag names, the
// optional value type, the padding and the description.
var flagLine = regexp.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)( \w+)?(\s+)(.*)$`)

// HelpFormatter renders command help with lipgloss styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for output to writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": func(s string) string { return h.styles.Heading.Render(s) },
		"command": func(s string) string { return h.styles.Command.Render(s) },
		"dim":     func(s string) string { return h.styles.Dim.Render(s) },
		"flags":   h.flags,
		"join":    strings.Join,
		"pad":     pad,
		"trim":    trimTrailingWhitespace,
		"languages": func() string {
			bindings := lang.DefaultRegistry.Bindings()
			names := make([]string, 0, len(bindings))
			for _, b := range bindings {
				names = append(names, b.Name())
			}
			return strings.Join(names, ", ")
		},
	}
}

// flags styles the flag names and value types of a FlagUsages block. The
// padding is kept, so the descriptions stay aligned.
func (h *HelpFormatter) flags(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		typ := m[3]
		if typ != "" {
			typ = " " + h.styles.Dim.Render(typ[1:])
		}
		lines[i] = m[1] + h.styles.Flag.Render(m[2]) + typ + m[4] + m[5]
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return errors.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
