package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/configloader"
	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/pipeline"
	"github.com/yaklabco/formatkit/pkg/reporter"
	"github.com/yaklabco/formatkit/pkg/runner"

	// Register the built-in languages.
	_ "github.com/yaklabco/formatkit/pkg/lang/all"
)

// formatterFlags are the flags that set a format option. Each flag name is
// the option's wire name in kebab case.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formatterFlags = []struct {
	name, usage string
}{
	{"line-width", "maximum line width"},
	{"indent-style", "indentation: tab or space"},
	{"indent-width", "columns per indentation level"},
	{"line-ending", "line ending: lf, crlf or cr"},
	{"quote-style", "preferred string quotes: double or single"},
	{"trailing-commas", "trailing commas: all, es5 or none"},
	{"semicolons", "statement semicolons: always or as-needed"},
	{"attribute-position", "HTML attributes: auto or multiline"},
	{"bracket-spacing", "spaces inside object braces: true or false"},
}

// formatFlags holds the flags for the format command.
type formatFlags struct {
	write             bool
	check             bool
	stdinFilePath     string
	jobs              int
	ignore            []string
	include           []string
	reporter          string
	traceComments     string
	verbose           bool
	noEditorconfig    bool
	verifyIdempotence bool
	formatter         map[string]*string
}

func newFormatCommand(env Env, global *globalFlags) *cobra.Command {
	flags := &formatFlags{formatter: make(map[string]*string, len(formatterFlags))}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format files",
		Long: `Format the given files and directories. Directories are searched for
files of every supported language; without paths the working directory is
formatted.

By default formatkit reports which files would change. --write replaces
them on disk and --check exits with status 1 when any file needs
formatting.`,
		Example: `  formatkit format --check .
  formatkit format --write src/ docs/README.md
  formatkit format --reporter diff --line-width 100 src/
  cat app.js | formatkit format --stdin-file-path app.js`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, env, global, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write formatted files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 when files need formatting")
	cmd.Flags().StringVar(&flags.stdinFilePath, "stdin-file-path", "",
		"format stdin as if it were this file and print the result")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files formatted at once (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns to restrict the run to")
	cmd.Flags().StringVarP(&flags.reporter, "reporter", "r", "", "output format: text, diff, json, summary")
	cmd.Flags().StringVar(&flags.traceComments, "trace-comments", "",
		"write the comment placement trace as JSON lines to this file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list files that are already formatted")
	cmd.Flags().BoolVar(&flags.noEditorconfig, "no-editorconfig", false, "ignore .editorconfig files")
	cmd.Flags().BoolVar(&flags.verifyIdempotence, "verify-idempotence", false,
		"format every result twice and warn when it changes")
	for _, f := range formatterFlags {
		flags.formatter[f.name] = cmd.Flags().String(f.name, "", f.usage)
	}

	return cmd
}

// overrides collects the format options set on the command line.
func (f *formatFlags) overrides(cmd *cobra.Command) (options.Overrides, error) {
	var o options.Overrides
	for _, flag := range formatterFlags {
		if !cmd.Flags().Changed(flag.name) {
			continue
		}
		if err := o.Set(flag.name, *f.formatter[flag.name]); err != nil {
			return o, errors.Errorf("%w: --%s: %w", ErrUsage, flag.name, err)
		}
	}
	return o, nil
}

// cliConfig is the configuration layer the flags form.
func (f *formatFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{
		Jobs:  f.jobs,
		Write: f.write,
		Check: f.check,
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if cmd.Flags().Changed("include") {
		cfg.Include = f.include
	}
	if f.reporter != "" {
		format := config.OutputFormat(f.reporter)
		if !format.IsValid() {
			return nil, errors.Errorf("%w: --reporter %q: %w", ErrUsage, f.reporter, reporter.ErrUnsupportedFormat)
		}
		cfg.Format = format
	}
	if f.noEditorconfig {
		cfg.UseEditorconfig = new(bool)
	}
	if f.verifyIdempotence {
		verify := true
		cfg.VerifyIdempotence = &verify
	}
	return cfg, nil
}

func workingDir(env Env) (string, error) {
	if env.WorkingDir != "" {
		return env.WorkingDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// loadConfig resolves the configuration for a command run in workDir.
func loadConfig(ctx context.Context, env Env, global *globalFlags, workDir string, cli *config.Config) (*config.Config, error) {
	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		FS:           env.FS,
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		LookupEnv:    env.LookupEnv,
		Registry:     lang.DefaultRegistry,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	for _, w := range loaded.Warnings {
		logger.Warn("configuration", "warning", w)
	}
	return loaded.Config, nil
}

func runFormat(cmd *cobra.Command, env Env, global *globalFlags, flags *formatFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	logger := logging.FromContext(ctx)

	if flags.stdinFilePath != "" && len(args) > 0 {
		return errors.Errorf("%w: --stdin-file-path does not take paths", ErrUsage)
	}
	overrides, err := flags.overrides(cmd)
	if err != nil {
		return err
	}
	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}
	workDir, err := workingDir(env)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, env, global, workDir, cliCfg)
	if err != nil {
		return err
	}

	engine := pipeline.NewEngine(lang.DefaultRegistry)
	if flags.traceComments != "" {
		tracePath := flags.traceComments
		if !filepath.IsAbs(tracePath) {
			tracePath = filepath.Join(workDir, tracePath)
		}
		trace, err := env.FS.Create(tracePath)
		if err != nil {
			return errors.Errorf("create trace file %s: %w", tracePath, err)
		}
		defer func() { _ = trace.Close() }()
		engine.Trace = trace
	}
	p := pipeline.New(engine, env.FS, cfg)

	// A diff is only worth reporting when it is computed.
	fileOpts := pipeline.Options{
		Write:     cfg.Write,
		Check:     cfg.Check || cfg.Format == config.FormatDiff,
		Overrides: overrides,
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       global.color,
		ShowSummary: true,
		Verbose:     flags.verbose,
		WorkingDir:  workDir,
	})
	if err != nil {
		return err
	}

	if flags.stdinFilePath != "" {
		return formatStdin(ctx, cmd, p, rep, cfg, workDir, flags.stdinFilePath, fileOpts)
	}

	logger.Debug("starting format",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldWrite, fileOpts.Write,
		logging.FieldCheck, fileOpts.Check,
	)

	result, err := runner.New(p).Run(ctx, runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Include:    cfg.Include,
		Ignore:     cfg.Ignore,
		Jobs:       cfg.Jobs,
		File:       fileOpts,
	})
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return errors.Errorf("write report: %w", err)
	}

	logger.Debug("format finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldDuration, time.Since(start),
	)
	return finish(result, cfg.Check)
}

// finish turns a run result into the command error.
func finish(result *runner.Result, check bool) error {
	if err := result.Err(); err != nil {
		return errors.Errorf("%w: %w", ErrFilesFailed, err)
	}
	if check && result.Pending() {
		return ErrCheckFailed
	}
	return nil
}

// formatStdin formats standard input as path. Without --check the
// formatted source is printed; a source with syntax errors is printed as
// it was. With --check the reporter describes the change instead.
func formatStdin(
	ctx context.Context,
	cmd *cobra.Command,
	p *pipeline.Pipeline,
	rep reporter.Reporter,
	cfg *config.Config,
	workDir, path string,
	opts pipeline.Options,
) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errors.Errorf("read stdin: %w", err)
	}

	// Stdin is never written back.
	opts.Write = false
	res, err := p.ProcessSource(ctx, path, string(src), opts)
	if err != nil {
		return err
	}

	if cfg.Check || cfg.Format != config.FormatText {
		result := runner.NewResult(runner.FileOutcome{Path: path, Result: res})
		if _, err := rep.Report(ctx, result); err != nil {
			return errors.Errorf("write report: %w", err)
		}
		return finish(result, cfg.Check)
	}

	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	for _, d := range res.Diagnostics {
		logger.Warn(d.Message, "severity", d.Severity.String())
	}
	out := res.Formatted
	if res.Skipped {
		out = res.Original
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
		return errors.Errorf("write stdout: %w", err)
	}
	return nil
}
