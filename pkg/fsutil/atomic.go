package fsutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// DefaultFileMode is used for new files when no mode is given.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to a temporary file next to path, then
// renames it over path. On failure the temporary file is removed and path
// is left as it was.
func WriteAtomic(ctx context.Context, fsys afero.Fs, path string, content []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return errors.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return errors.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("close temp file: %w", err)
	}
	if err = fsys.Chmod(tmpPath, mode); err != nil {
		return errors.Errorf("chmod temp file: %w", err)
	}
	if err = fsys.Rename(tmpPath, path); err != nil {
		return errors.Errorf("rename temp file: %w", err)
	}
	return nil
}
