package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/src/a.json", []byte(`{"a":1}`), 0o600))
	require.NoError(t, fsys.MkdirAll("/src/dir", 0o755))

	content, info, err := fsutil.ReadFile(context.Background(), fsys, "/src/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(content))
	assert.Equal(t, int64(7), info.Size)
	assert.NotZero(t, info.Hash)

	_, _, err = fsutil.ReadFile(context.Background(), fsys, "/src/missing.json")
	assert.True(t, errors.Is(err, fsutil.ErrNotFound), "got %v", err)

	_, _, err = fsutil.ReadFile(context.Background(), fsys, "/src/dir")
	assert.True(t, errors.Is(err, fsutil.ErrIsDirectory), "got %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = fsutil.ReadFile(ctx, fsys, "/src/a.json")
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.js", []byte("x;\n"), 0o600))

	_, info, err := fsutil.ReadFile(ctx, fsys, "/a.js")
	require.NoError(t, err)

	modified, err := fsutil.CheckModified(ctx, fsys, info)
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, afero.WriteFile(fsys, "/a.js", []byte("y;\n"), 0o600))
	modified, err = fsutil.CheckModified(ctx, fsys, info)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, fsys.Remove("/a.js"))
	modified, err = fsutil.CheckModified(ctx, fsys, info)
	require.NoError(t, err)
	assert.True(t, modified)

	_, err = fsutil.CheckModified(ctx, fsys, nil)
	assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/a.md", []byte("#  old\n"), 0o600))

	require.NoError(t, fsutil.WriteAtomic(ctx, fsys, "/p/a.md", []byte("# new\n"), 0o640))

	got, err := afero.ReadFile(fsys, "/p/a.md")
	require.NoError(t, err)
	assert.Equal(t, "# new\n", string(got))

	stat, err := fsys.Stat("/p/a.md")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())

	entries, err := afero.ReadDir(fsys, "/p")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteAtomic_ReadOnly(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/a.md", []byte("a\n"), 0o600))
	fsys := afero.NewReadOnlyFs(base)

	err := fsutil.WriteAtomic(context.Background(), fsys, "/a.md", []byte("b\n"), 0)
	require.Error(t, err)

	got, err := afero.ReadFile(base, "/a.md")
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(got))
}
