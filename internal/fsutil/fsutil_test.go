package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkDirP(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, MkDirP(dir))
	require.NoError(t, MkDirP(dir), "existing directory is not an error")
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRmF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, RmF(path))
	require.NoError(t, RmF(path), "missing file is not an error")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRmRf(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MkDirP(filepath.Join(dir, "x", "y")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x", "y", "f"), []byte("x"), 0o644))
	require.NoError(t, RmRf(filepath.Join(dir, "x")))
	require.NoError(t, RmRf(filepath.Join(dir, "x")), "missing tree is not an error")
}

func TestFullySplitPath(t *testing.T) {
	sep := string(filepath.Separator)

	t.Run("relative", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, FullySplitPath(filepath.Join("a", "b", "c")))
	})

	t.Run("absolute keeps the root", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("root component differs on windows")
		}
		assert.Equal(t, []string{sep, "a", "b"}, FullySplitPath(sep+filepath.Join("a", "b")))
	})

	t.Run("single component", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, FullySplitPath("a"))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Empty(t, FullySplitPath(""))
	})
}

func TestSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	dir := t.TempDir()
	source := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(source, []byte("x"), 0o644))
	link := filepath.Join(dir, "lnk")

	require.NoError(t, Symlink(source, link))
	assert.True(t, IsLink(link))
	assert.Equal(t, source, TryReadLink(link))

	// Re-linking replaces the existing link.
	other := filepath.Join(dir, "other")
	require.NoError(t, os.WriteFile(other, []byte("y"), 0o644))
	require.NoError(t, Symlink(other, link))
	assert.Equal(t, other, TryReadLink(link))
}

func TestTryReadLinkOnNonLink(t *testing.T) {
	assert.Equal(t, "", TryReadLink(filepath.Join(t.TempDir(), "missing")))
}
