package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/fsutil"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/pipeline"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

func newIRCommand(env Env, global *globalFlags) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "ir <file>",
		Short: "Print the formatting document of a file",
		Long: `Print the document a file is lowered to before printing, as an
s-expression. With --tree the lossless syntax tree is printed instead.

The options are resolved exactly as for format, so the output shows what
formatkit would print the file from.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIR(cmd, env, global, args[0], tree)
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the syntax tree instead of the document")

	return cmd
}

func runIR(cmd *cobra.Command, env Env, global *globalFlags, path string, tree bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := workingDir(env)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	cfg, err := loadConfig(ctx, env, global, workDir, nil)
	if err != nil {
		return err
	}

	src, _, err := fsutil.ReadFile(ctx, env.FS, path)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.NewEngine(lang.DefaultRegistry), env.FS, cfg)
	b, err := p.Engine.Detect(path, src)
	if err != nil {
		return err
	}
	opts, err := p.ResolveOptions(path, b, options.Overrides{})
	if err != nil {
		return err
	}
	ins, err := p.Engine.Inspect(ctx, path, string(src), pipeline.SourceOptions{Binding: b, Options: &opts})
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	for _, d := range ins.Diagnostics {
		logger.Warn(d.Message, "severity", d.Severity.String())
	}

	out := ins.Formatted.Document().String() + "\n"
	if tree {
		out = syntax.Dump(ins.Root, ins.Binding.KindName)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
		return errors.Errorf("write output: %w", err)
	}
	return nil
}
