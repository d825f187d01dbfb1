package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/lang"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the formatkit version with its commit, build date, Go toolchain
and the languages compiled into this binary.

With --short only the version string is printed.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if short {
				_, err := fmt.Fprintln(out, info.Version)
				return err
			}

			// Build details go to stdout as one logfmt line so scripts can
			// pick fields out of it.
			bindings := lang.DefaultRegistry.Bindings()
			names := make([]string, 0, len(bindings))
			for _, b := range bindings {
				names = append(names, b.Name())
			}

			printer := log.NewWithOptions(out, log.Options{Formatter: log.LogfmtFormatter})
			printer.Print("formatkit",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
				"languages", strings.Join(names, ","),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
