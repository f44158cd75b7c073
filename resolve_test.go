package gltf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gltf/internal/testutil"
)

func TestBufferData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a b.bin", testutil.Pattern(12, 0))

	tests := []struct {
		name    string
		buffer  Buffer
		blob    []byte
		want    []byte
		wantErr error
	}{
		{
			name:   "data uri",
			buffer: Buffer{URI: testutil.TriangleDataURI, ByteLength: 44},
			want:   testutil.Triangle(t),
		},
		{
			name:   "percent-encoded file",
			buffer: Buffer{URI: "a%20b.bin", ByteLength: 12},
			want:   testutil.Pattern(12, 0),
		},
		{
			name:   "file longer than byteLength",
			buffer: Buffer{URI: "a%20b.bin", ByteLength: 5},
			want:   testutil.Pattern(5, 0),
		},
		{
			name:   "blob",
			buffer: Buffer{ByteLength: 3},
			blob:   []byte{1, 2, 3, 0},
			want:   []byte{1, 2, 3},
		},
		{
			name:    "missing blob",
			buffer:  Buffer{ByteLength: 3},
			wantErr: ErrMissingBlob,
		},
		{
			name:    "missing file",
			buffer:  Buffer{URI: "nope.bin", ByteLength: 3},
			wantErr: ErrSourceNotFound,
		},
		{
			name:    "malformed data uri",
			buffer:  Buffer{URI: "data:application/octet-stream;base64,***", ByteLength: 3},
			wantErr: ErrMalformedDataURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := New(WithBaseDir(dir))
			b := tt.buffer
			d.Buffers = []*Buffer{&b}
			d.SetBlob(tt.blob)

			got, err := d.BufferData(0)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBufferData_AmbiguousBlobWarns(t *testing.T) {
	t.Parallel()

	rec, opt := recordWarnings()
	d := blobDocument(t, testutil.Pattern(4, 0), opt)
	d.Buffers = append(d.Buffers, &Buffer{URI: testutil.TriangleDataURI, ByteLength: 44})

	_, err := d.BufferData(0)
	require.NoError(t, err)
	assert.Equal(t, []WarningKind{WarningAmbiguousBlob}, warningKinds(rec.Items()))

	_, err = d.BufferData(1)
	require.NoError(t, err)
	assert.Len(t, rec.Items(), 1)
}

func TestBufferViewData_OutOfBounds(t *testing.T) {
	t.Parallel()

	d := blobDocument(t, testutil.Pattern(8, 0))
	d.BufferViews = []*BufferView{view(0, 4, 8), view(3, 0, 1)}

	_, err := d.BufferViewData(0)
	require.ErrorIs(t, err, ErrViewOutOfBounds)

	_, err = d.BufferViewData(1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = d.BufferViewData(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestImageData_MediaType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "tex.jpg", testutil.PNG(t))
	testutil.WriteFile(t, dir, "tex", testutil.PNG(t))

	tests := []struct {
		name  string
		image Image
		want  string
	}{
		{name: "declared", image: Image{URI: "tex", MimeType: "image/webp"}, want: "image/webp"},
		{name: "data uri type", image: Image{URI: testutil.PNGDataURI}, want: "image/png"},
		{
			name:  "octet-stream data uri is sniffed",
			image: Image{URI: "data:application/octet-stream;base64," + testutil.PNGBase64},
			want:  "image/png",
		},
		{name: "file extension", image: Image{URI: "tex.jpg"}, want: "image/jpeg"},
		{name: "sniffed file", image: Image{URI: "tex"}, want: "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := New(WithBaseDir(dir))
			img := tt.image
			d.Images = []*Image{&img}

			data, mediaType, err := d.ImageData(0)
			require.NoError(t, err)
			assert.Equal(t, testutil.PNG(t), data)
			assert.Equal(t, tt.want, mediaType)
		})
	}
}

func TestImageData_NoSource(t *testing.T) {
	t.Parallel()

	d := New()
	d.Images = []*Image{{Name: "nothing"}}
	_, _, err := d.ImageData(0)
	require.ErrorIs(t, err, ErrNoImageSource)

	_, _, err = d.ImageData(1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
