// Package configloader finds the configuration sources for a run, merges
// them in precedence order and validates the result.
package configloader

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/logging"
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/lang"
)

// ErrLoad is returned when a configuration file cannot be read or parsed.
var ErrLoad = errors.Base("load configuration")

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// FS defaults to the OS filesystem.
	FS afero.Fs

	// WorkingDir is where the project search starts. Defaults to the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It is loaded in addition to the
	// discovered files, above them.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv LookupFunc

	// Registry resolves language keys. Defaults to lang.DefaultRegistry.
	Registry *lang.Registry

	// CLIConfig holds the flag values. It has the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration with where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load merges, lowest precedence first: defaults, system, user, project,
// the explicit file, FORMATKIT_* variables and flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	env := opts.LookupEnv
	if env == nil {
		env = os.LookupEnv
	}
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, fsys, workDir, env)
	if err != nil {
		return nil, err
	}
	paths.Explicit = opts.ExplicitPath
	result := &LoadResult{Paths: paths}
	logger := logging.FromContext(ctx)

	cfg := config.NewConfig()
	layers := []struct {
		path string
		skip bool
	}{
		{paths.System, opts.IgnoreSystemConfig},
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig},
		{paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.path == "" || layer.skip {
			continue
		}
		fileCfg, err := LoadFile(fsys, layer.path)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded configuration", logging.FieldPath, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg, env); err != nil {
			return nil, err
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg, opts.Registry)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one configuration file. The syntax follows the extension.
func LoadFile(fsys afero.Fs, path string) (*config.Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	cfg, err := config.Decode(data, config.FileFormatOf(path))
	if err != nil {
		return nil, errors.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	// Settings are checked here too so the message can name the file.
	if v := Validate(cfg, nil); !v.Valid() {
		e := v.Errors[0]
		e.FilePath = path
		return nil, &e
	}
	return cfg, nil
}
