package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/freshen/internal/adapters/fs"
)

func TestStater_ModTime(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.o")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	stater := fs.NewStater()

	mtime, exists, err := stater.ModTime(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, mtime.Equal(stamp))
}

func TestStater_ModTime_Missing(t *testing.T) {
	stater := fs.NewStater()

	mtime, exists, err := stater.ModTime(filepath.Join(t.TempDir(), "missing.o"))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, mtime.IsZero())
}

func TestStater_ModTime_FollowsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target.c")
	link := filepath.Join(tmpDir, "link.c")
	require.NoError(t, os.WriteFile(target, []byte("int x;"), 0o600))
	stamp := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(target, stamp, stamp))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	mtime, exists, err := fs.NewStater().ModTime(link)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, mtime.Equal(stamp))
}

func TestStater_ModTime_DanglingSymlinkIsMissing(t *testing.T) {
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "dangling.c")
	if err := os.Symlink(filepath.Join(tmpDir, "nowhere.c"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, exists, err := fs.NewStater().ModTime(link)
	require.NoError(t, err)
	assert.False(t, exists)
}
