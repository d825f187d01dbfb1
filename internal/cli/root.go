// Package cli provides the Cobra command structure for formatkit.
package cli

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/configloader"
	"github.com/yaklabco/formatkit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Env is what the commands touch outside their arguments. Tests replace
// the filesystem and the environment; standard streams come from the
// command.
type Env struct {
	FS afero.Fs
	// WorkingDir is empty for the process working directory.
	WorkingDir string
	LookupEnv  configloader.LookupFunc
}

// DefaultEnv uses the OS filesystem and environment.
func DefaultEnv() Env {
	return Env{FS: afero.NewOsFs(), LookupEnv: os.LookupEnv}
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root formatkit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return NewRootCommandWithEnv(info, DefaultEnv())
}

// NewRootCommandWithEnv is NewRootCommand over env.
func NewRootCommandWithEnv(info BuildInfo, env Env) *cobra.Command {
	if env.FS == nil {
		env.FS = afero.NewOsFs()
	}
	if env.LookupEnv == nil {
		env.LookupEnv = os.LookupEnv
	}
	global := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "formatkit",
		Short: "A fast, lossless code formatter for JavaScript, JSON, HTML and Markdown",
		Long: `formatkit formats source code through one language-neutral pipeline.

Each file is parsed into a lossless syntax tree, lowered to a formatting
document and printed within the configured line width. Comments and blank
lines survive formatting, and formatting the output again changes nothing.`,
		Args: usageArgs(cobra.NoArgs),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if global.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Errorf("%w: %w", ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand(env, global))
	rootCmd.AddCommand(newIRCommand(env, global))
	rootCmd.AddCommand(newLanguagesCommand(global))
	rootCmd.AddCommand(newEnvCommand(global))
	rootCmd.AddCommand(newInitCommand(env))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(global.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
