package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand(env Env) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new formatkit configuration file",
		Long: `Create a .formatkit.yml configuration file in the current directory that
spells out every default option. Edit it to change the options for every
language or, under "languages", for one language.

Examples:
  formatkit init                      Create .formatkit.yml
  formatkit init --format toml        Create .formatkit.toml instead
  formatkit init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, env, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .formatkit.yml or .formatkit.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, env Env, flags *initFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	format := config.FileFormat(flags.format)
	if format != config.FileYAML && format != config.FileTOML {
		return errors.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".formatkit.yml"
		if format == config.FileTOML {
			outputPath = ".formatkit.toml"
		}
	}
	workDir, err := workingDir(env)
	if err != nil {
		return err
	}
	absPath := outputPath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workDir, absPath)
	}

	exists, err := afero.Exists(env.FS, absPath)
	if err != nil {
		return errors.Errorf("stat %s: %w", outputPath, err)
	}
	if exists {
		if !flags.force {
			return errors.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.Template(format)
	if err != nil {
		return errors.Errorf("generate template: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, env.FS, absPath, content, configFilePermissions); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'formatkit languages' to see the language keys")
	return nil
}
