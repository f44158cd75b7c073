package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "nested", "0.bin")
	require.NoError(t, WriteFile(target, []byte{1, 2, 3}, false))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "0.bin")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o644))

	err := WriteFile(target, []byte("replace"), false)
	require.ErrorIs(t, err, ErrExists)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), got)

	require.NoError(t, WriteFile(target, []byte("replace"), true))
	got, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("replace"), got)
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(dir, "a.gltf"), []byte("{}"), false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.gltf", entries[0].Name())
}
