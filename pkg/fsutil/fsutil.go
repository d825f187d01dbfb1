// Package fsutil reads and writes source files through an afero.Fs. Reads
// record enough state to notice a file changing underneath a run, and
// writes go through a temporary file and a rename.
package fsutil

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Sentinel errors for categorizing failures with errors.Is.
var (
	ErrNilFileInfo      = errors.Base("nil file info")
	ErrNotFound         = errors.Base("file not found")
	ErrPermissionDenied = errors.Base("permission denied")
	ErrIsDirectory      = errors.Base("path is a directory")
)

// FileInfo is the state of a file when it was read.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	// Hash is the xxhash of the content.
	Hash uint64
}

// ReadFile reads path from fsys and records its state.
func ReadFile(ctx context.Context, fsys afero.Fs, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Errorf("read %s: %w", path, err)
	}

	stat, err := fsys.Stat(path)
	if err != nil {
		return nil, nil, categorize(path, err)
	}
	if stat.IsDir() {
		return nil, nil, errors.WithDetails(ErrIsDirectory, "path", path)
	}

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, categorize(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    xxhash.Sum64(content),
	}, nil
}

// CheckModified reports whether the file changed since info was taken. A
// deleted file counts as modified. Size and modification time are checked
// first; the content is hashed only when both match.
func CheckModified(ctx context.Context, fsys afero.Fs, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, errors.Errorf("check %s: %w", info.Path, err)
	}

	stat, err := fsys.Stat(info.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, categorize(info.Path, err)
	}
	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	content, err := afero.ReadFile(fsys, info.Path)
	if err != nil {
		return false, categorize(info.Path, err)
	}
	return xxhash.Sum64(content) != info.Hash, nil
}

func categorize(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return errors.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return errors.Errorf("access %s: %w", path, err)
	}
}
