package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/configloader"
	"github.com/yaklabco/formatkit/internal/ui/pretty"
	"github.com/yaklabco/formatkit/pkg/lang"
)

func newLanguagesCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Long: `List every language formatkit can format with its aliases and the file
extensions it claims. Aliases are accepted as keys under "languages" in the
configuration file.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindings := lang.DefaultRegistry.Bindings()
			rows := make([][]string, 0, len(bindings))
			for _, b := range bindings {
				rows = append(rows, []string{
					b.Name(),
					strings.Join(b.Aliases(), ", "),
					strings.Join(b.Extensions(), " "),
				})
			}
			return writeColumns(cmd.OutOrStdout(), global.color,
				[]string{"LANGUAGE", "ALIASES", "EXTENSIONS"}, rows)
		},
	}
}

func newEnvCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables formatkit reads",
		Long: `List every FORMATKIT_* environment variable. Environment variables
override configuration files and are overridden by flags.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			rows := make([][]string, 0, len(vars))
			for _, v := range vars {
				rows = append(rows, []string{v.Name, v.Description})
			}
			return writeColumns(cmd.OutOrStdout(), global.color, []string{"VARIABLE", "DESCRIPTION"}, rows)
		},
	}
}

// writeColumns writes left-aligned columns separated by two spaces. The
// last column is not padded.
func writeColumns(w io.Writer, colorMode string, headers []string, rows [][]string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	line := func(cells []string, style func(int, string) string) string {
		var sb strings.Builder
		for i, cell := range cells {
			sb.WriteString(style(i, cell))
			if i < len(cells)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
			}
		}
		sb.WriteString("\n")
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(line(headers, func(_ int, s string) string { return styles.TableHeader.Render(s) }))
	for _, row := range rows {
		sb.WriteString(line(row, func(i int, s string) string {
			if i == 0 {
				return styles.Bold.Render(s)
			}
			return s
		}))
	}
	if _, err := fmt.Fprint(w, sb.String()); err != nil {
		return errors.Errorf("write output: %w", err)
	}
	return nil
}
