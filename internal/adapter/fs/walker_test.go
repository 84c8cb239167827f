package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWalkerFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.rs"), "")
	writeFile(t, filepath.Join(dir, "a.py"), "")
	writeFile(t, filepath.Join(dir, "nested", "deep", "c.rs"), "")
	writeFile(t, filepath.Join(dir, "notes.md"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.rs"), 0755))

	files, err := NewWalker().Walk(dir, []string{".rs", ".py"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.rs"),
		filepath.Join(dir, "nested", "deep", "c.rs"),
	}, files)
}

func TestWalkerNoExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.rs"), "")

	files, err := NewWalker().Walk(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadFileRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.rs")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 'p', 'u', 'b'}, 0644))

	_, err := ReadFile(path)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	good := filepath.Join(dir, "good.rs")
	writeFile(t, good, "pub fn ok() {}\n")
	text, err := ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "pub fn ok() {}\n", text)
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "features", "X.md")

	require.NoError(t, AtomicWrite(path, []byte("one\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(data))

	require.NoError(t, os.Chmod(path, 0600))
	require.NoError(t, NewWriter().WriteFile(path, []byte("two\n")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestExistsHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, "x")

	assert.True(t, Exists(file))
	assert.True(t, IsFile(file))
	assert.False(t, IsDir(file))
	assert.True(t, IsDir(dir))
	assert.False(t, IsFile(dir))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
}
