package runner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/lang"
)

// Discover finds the files opts selects on fsys. Paths named explicitly
// are kept when their extension is unknown, since the pipeline can still
// detect their language; files found in directories must carry one of the
// extensions. The result is sorted and free of duplicates.
func Discover(ctx context.Context, fsys afero.Fs, registry *lang.Registry, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, errors.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		if registry == nil {
			registry = lang.DefaultRegistry
		}
		extensions = registry.Extensions()
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := fsys.Stat(path)
		if err != nil {
			return nil, errors.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if selected(relative(workDir, path), opts) {
				add(path)
			}
			continue
		}

		found, err := walk(ctx, fsys, path, workDir, extensions, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func relative(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func walk(
	ctx context.Context,
	fsys afero.Fs,
	root, workDir string,
	extensions []string,
	opts Options,
) ([]string, error) {
	var files []string

	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		rel := relative(workDir, path)
		hidden := path != root && strings.HasPrefix(info.Name(), ".")

		if info.IsDir() {
			if hidden || (path != root && matchAny(rel, opts.Ignore)) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden || !hasExtension(path, extensions) {
			return nil
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := fsys.Stat(path)
			if err != nil || target.IsDir() {
				return nil //nolint:nilerr // Broken links and links to directories are skipped.
			}
		}
		if selected(rel, opts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func selected(rel string, opts Options) bool {
	if matchAny(rel, opts.Ignore) {
		return false
	}
	return len(opts.Include) == 0 || matchAny(rel, opts.Include)
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// matchAny matches rel against doublestar patterns. A pattern without a
// slash also matches the base name, so "*.min.js" applies at any depth.
func matchAny(rel string, patterns []string) bool {
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
