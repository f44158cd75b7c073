package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gltf/internal/datauri"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri  string
		want Kind
	}{
		{"", KindBlob},
		{"data:application/octet-stream;base64,AAAA", KindDataURI},
		{"model.bin", KindFile},
		{"database.bin", KindFile},
		{"data/model.bin", KindFile},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.uri), tt.uri)
	}
}

func TestResolve_Blob(t *testing.T) {
	t.Parallel()

	r := Resolver{Blob: []byte{1, 2, 3, 4}}
	data, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	_, err = Resolver{}.Resolve("")
	require.ErrorIs(t, err, ErrMissingBlob)
}

func TestResolve_DataURI(t *testing.T) {
	t.Parallel()

	data, err := Resolver{}.Resolve(datauri.Encode("", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = Resolver{}.Resolve("data:application/octet-stream;base64,***")
	require.ErrorIs(t, err, datauri.ErrMalformed)
}

func TestResolve_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my model.bin"), []byte{9, 8, 7}, 0o644))

	r := Resolver{BaseDir: dir}
	data, err := r.Resolve("my%20model.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, data)

	_, err = r.Resolve("missing.bin")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/assets", "textures", "a.png"), Resolver{BaseDir: "/assets"}.Path("textures/a.png"))
	assert.Equal(t, "a.png", Resolver{}.Path("a.png"))
}
