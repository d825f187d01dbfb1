package configloader

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// appName names the system and user configuration directories.
const appName = "formatkit"

// ConfigPaths are the configuration files found for a run. Missing files
// are empty strings.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// projectConfigFiles are searched for in each directory, in this order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".formatkit.yml",
	".formatkit.yaml",
	".formatkit.toml",
	"formatkit.yml",
	"formatkit.toml",
}

// dirConfigFiles are the names looked for in system and user directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files.
func DiscoverPaths(ctx context.Context, fsys afero.Fs, workDir string, env LookupFunc) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("discover configuration: %w", err)
	}

	paths := &ConfigPaths{
		System: findInDir(fsys, systemConfigDir(env)),
		User:   findInDir(fsys, userConfigDir(env)),
	}

	project, err := FindProjectConfig(ctx, fsys, workDir, env)
	if err != nil {
		return nil, err
	}
	paths.Project = project
	return paths, nil
}

func systemConfigDir(env LookupFunc) string {
	if runtime.GOOS == "windows" {
		programData, ok := env("ProgramData")
		if !ok || programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

// userConfigDir follows XDG: $XDG_CONFIG_HOME, else ~/.config.
func userConfigDir(env LookupFunc) string {
	if home, ok := env("XDG_CONFIG_HOME"); ok && home != "" {
		return filepath.Join(home, appName)
	}
	if home, ok := env("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", appName)
	}
	return ""
}

func findInDir(fsys afero.Fs, dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range dirConfigFiles {
		if path := filepath.Join(dir, name); isFile(fsys, path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches startDir and its parents for a project
// configuration file. The search stops at a VCS root, the home directory
// or the filesystem root.
func FindProjectConfig(ctx context.Context, fsys afero.Fs, startDir string, env LookupFunc) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := env("HOME")

	for {
		if err := ctx.Err(); err != nil {
			return "", errors.Errorf("find project configuration: %w", err)
		}
		for _, name := range projectConfigFiles {
			if path := filepath.Join(dir, name); isFile(fsys, path) {
				return path, nil
			}
		}
		if isVCSRoot(fsys, dir) || (home != "" && dir == filepath.Clean(home)) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(fsys afero.Fs, dir string) bool {
	for _, marker := range vcsRootMarkers {
		if ok, _ := afero.DirExists(fsys, filepath.Join(dir, marker)); ok {
			return true
		}
	}
	return false
}

func isFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
