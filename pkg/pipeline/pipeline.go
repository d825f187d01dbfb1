package pipeline

import (
	"context"
	"time"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/fix"
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/fsutil"
	"github.com/yaklabco/formatkit/pkg/lang"
)

// Options controls what ProcessFile does with the formatted output.
type Options struct {
	// Write replaces changed files on disk.
	Write bool

	// Check computes a diff for changed files.
	Check bool

	// Overrides come from the command line and win over every other
	// source of options.
	Overrides options.Overrides
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path     string
	Language string

	// Original and Formatted are the source before and after formatting.
	Original  string
	Formatted string
	Changed   bool

	// Diff is set in check mode when the file changed.
	Diff *fix.Diff
	// Edits turn Original into Formatted.
	Edits []fix.TextEdit

	Diagnostics []format.Diagnostic

	Written    bool
	Skipped    bool
	SkipReason string

	Duration time.Duration
}

// HasErrors reports whether any diagnostic is an error.
func (r *FileResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == format.SeverityError {
			return true
		}
	}
	return false
}

// Pipeline formats files on a filesystem with a loaded configuration.
type Pipeline struct {
	Engine *Engine
	FS     afero.Fs
	Config *config.Config

	editorconfigs *editorconfigs
}

// New creates a pipeline. A nil cfg means the default configuration.
func New(engine *Engine, fsys afero.Fs, cfg *config.Config) *Pipeline {
	if engine == nil {
		engine = NewEngine(nil)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Pipeline{
		Engine:        engine,
		FS:            fsys,
		Config:        cfg,
		editorconfigs: newEditorconfigs(fsys),
	}
}

// ResolveOptions computes the options for path formatted with b. Later
// sources win: defaults, editorconfig, the formatter section of the
// configuration, the binding's defaults, the language section, and
// finally flags.
func (p *Pipeline) ResolveOptions(path string, b lang.Binding, flags options.Overrides) (options.Options, error) {
	opts := options.Default()

	if p.Config.EditorconfigEnabled() && path != "" {
		props, err := p.editorconfigs.properties(path)
		if err != nil {
			return options.Options{}, err
		}
		opts = editorconfigOverrides(props).Apply(opts)
	}

	opts = p.Config.Formatter.Apply(opts)
	opts = b.ApplyDefaults(opts)
	opts = p.Config.LanguageOverrides(append([]string{b.Name()}, b.Aliases()...)...).Apply(opts)
	opts = flags.Apply(opts)

	if err := opts.Validate(); err != nil {
		return options.Options{}, errors.Errorf("options for %s: %w", path, err)
	}
	return opts, nil
}

// ProcessFile reads, formats, and optionally writes one file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	content, info, err := fsutil.ReadFile(ctx, p.FS, path)
	if err != nil {
		return nil, categorizeError(path, err)
	}

	result, err := p.process(ctx, path, string(content), opts)
	if err != nil {
		return nil, err
	}

	if opts.Write && result.Changed && !result.Skipped {
		modified, err := fsutil.CheckModified(ctx, p.FS, info)
		if err != nil {
			return nil, categorizeError(path, err)
		}
		if modified {
			result.Skipped = true
			result.SkipReason = "file changed while formatting"
		} else {
			if err := fsutil.WriteAtomic(ctx, p.FS, path, []byte(result.Formatted), info.Mode.Perm()); err != nil {
				return nil, errors.Errorf("%w: %w", ErrWriteFailure, categorizeError(path, err))
			}
			result.Written = true
		}
	}

	result.Duration = time.Since(start)
	logger.Debug("formatted file",
		logging.FieldLanguage, result.Language,
		"changed", result.Changed,
		"written", result.Written,
		logging.FieldDiagnostics, len(result.Diagnostics),
		logging.FieldDuration, result.Duration,
	)
	return result, nil
}

// ProcessSource formats src as if it were read from path. Nothing is
// written; path only picks the language and the editorconfig section.
func (p *Pipeline) ProcessSource(ctx context.Context, path, src string, opts Options) (*FileResult, error) {
	start := time.Now()
	result, err := p.process(ctx, path, src, opts)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

func (p *Pipeline) process(ctx context.Context, path, src string, opts Options) (*FileResult, error) {
	b, err := p.Engine.Detect(path, []byte(src))
	if err != nil {
		return nil, err
	}

	fmtOpts, err := p.ResolveOptions(path, b, opts.Overrides)
	if err != nil {
		return nil, err
	}

	out, err := p.Engine.FormatSource(ctx, path, src, SourceOptions{
		Binding:           b,
		Options:           &fmtOpts,
		VerifyIdempotence: p.Config.IdempotenceEnabled(),
	})
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:        path,
		Language:    b.Name(),
		Original:    src,
		Formatted:   out.Code,
		Changed:     out.Code != src,
		Diagnostics: out.Diagnostics,
	}

	// Bogus nodes are printed as written, but a file with syntax errors is
	// never rewritten.
	if result.Changed && result.HasErrors() {
		result.Skipped = true
		result.SkipReason = "syntax errors"
	}

	if result.Changed {
		result.Edits = fix.MinimalEdits(src, out.Code)
		if opts.Check {
			result.Diff = fix.GenerateDiff(path, src, out.Code)
		}
	}
	return result, nil
}

func categorizeError(path string, err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return errors.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return errors.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return err
	}
}
