package gltf

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gltf/internal/glb"
	"github.com/meigma/gltf/internal/testutil"
)

const blobJSON = `{"asset":{"version":"2.0"},"buffers":[{"byteLength":8}],` +
	`"bufferViews":[{"buffer":0,"byteOffset":4,"byteLength":4}]}`

func TestDecodeBinary(t *testing.T) {
	t.Parallel()

	bin := testutil.Pattern(8, 1)
	rec, opt := recordWarnings()
	d, err := DecodeBinary(testutil.Container(t, 2, blobJSON, bin), opt)
	require.NoError(t, err)

	assert.Equal(t, bin, d.Blob())
	require.Len(t, d.Buffers, 1)
	assert.Equal(t, BufferBinaryBlob, d.Buffers[0].Format)
	assert.Empty(t, rec.Items())

	data, err := d.BufferViewData(0)
	require.NoError(t, err)
	assert.Equal(t, bin[4:8], data)
}

func TestDecodeBinary_VersionAndUnknownChunk(t *testing.T) {
	t.Parallel()

	xtra := glb.Chunk{Type: glb.ChunkType(0x41525458), Data: []byte{1, 2, 3, 4}}
	data := testutil.Container(t, 3, blobJSON, testutil.Pattern(8, 0), xtra)

	rec, opt := recordWarnings()
	d, err := DecodeBinary(data, opt)
	require.NoError(t, err)

	assert.Equal(t, []WarningKind{WarningVersion, WarningUnknownChunk}, warningKinds(rec.Items()))
	assert.Len(t, d.Blob(), 8)
	assert.Contains(t, rec.Items()[1].Message, "XTRA")
}

func TestDecodeBinary_DuplicateChunks(t *testing.T) {
	t.Parallel()

	data := testutil.Container(t, 2, blobJSON, testutil.Pattern(8, 0),
		glb.Chunk{Type: glb.ChunkJSON, Data: []byte(`{"asset":{"version":"9.9"}}`)},
		glb.Chunk{Type: glb.ChunkBIN, Data: testutil.Pattern(4, 9)},
	)

	rec, opt := recordWarnings()
	d, err := DecodeBinary(data, opt)
	require.NoError(t, err)

	assert.Equal(t, []WarningKind{WarningDuplicateChunk, WarningDuplicateChunk}, warningKinds(rec.Items()))
	assert.Equal(t, "2.0", d.Asset.Version)
	assert.Equal(t, testutil.Pattern(8, 0), d.Blob())
}

func TestDecodeBinary_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad magic", data: []byte("GLTF\x02\x00\x00\x00\x0c\x00\x00\x00")},
		{
			name: "no json chunk",
			data: func() []byte {
				data, err := glb.Encode(2, []glb.Chunk{{Type: glb.ChunkBIN, Data: []byte{0, 0, 0, 0}}})
				require.NoError(t, err)
				return data
			}(),
		},
		{name: "invalid json", data: testutil.Container(t, 2, `{"asset":`, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeBinary(tt.data)
			require.ErrorIs(t, err, ErrMalformedContainer)
		})
	}
}

func TestEncodeBinary_RoundTrip(t *testing.T) {
	t.Parallel()

	d, err := DecodeJSON([]byte(testutil.TriangleJSON))
	require.NoError(t, err)

	data, err := d.EncodeBinary()
	require.NoError(t, err)

	got, err := DecodeBinary(data)
	require.NoError(t, err)

	triangle := testutil.Triangle(t)
	require.Len(t, got.Buffers, 1)
	assert.Empty(t, got.Buffers[0].URI)
	assert.Equal(t, 44, got.Buffers[0].ByteLength)

	indices, err := got.BufferViewData(0)
	require.NoError(t, err)
	assert.Equal(t, triangle[0:6], indices)

	positions, err := got.BufferViewData(1)
	require.NoError(t, err)
	assert.Equal(t, triangle[8:44], positions)
	assert.Equal(t, 8, got.BufferViews[1].ByteOffset)

	assert.Equal(t, d.Accessors[1].Max, got.Accessors[1].Max)
	assert.Equal(t, d.Extra.Keys(), got.Extra.Keys())
	assert.Equal(t, *d.BufferViews[1].Target, *got.BufferViews[1].Target)
}

func TestEncodeBinary_DoesNotModifyDocument(t *testing.T) {
	t.Parallel()

	d, err := DecodeJSON([]byte(testutil.TriangleJSON))
	require.NoError(t, err)
	buffers, views := d.Buffers, d.BufferViews

	_, err = d.EncodeBinary()
	require.NoError(t, err)

	assert.Same(t, buffers[0], d.Buffers[0])
	assert.Same(t, views[1], d.BufferViews[1])
	assert.Equal(t, testutil.TriangleDataURI, d.Buffers[0].URI)
	assert.Equal(t, 8, d.BufferViews[1].ByteOffset)
	assert.Nil(t, d.Blob())
}

func TestEncodeBinary_Alignment(t *testing.T) {
	t.Parallel()

	d := blobDocument(t, testutil.Pattern(11, 1))
	d.BufferViews = []*BufferView{view(0, 0, 1), view(0, 1, 2), view(0, 3, 3), view(0, 6, 5)}

	data, err := d.EncodeBinary()
	require.NoError(t, err)

	_, chunks, err := glb.Read(data)
	require.NoError(t, err)
	for _, c := range chunks {
		assert.Zero(t, len(c.Data)%4, "chunk %s", c.Type)
	}

	got, err := DecodeBinary(data)
	require.NoError(t, err)
	offsets := make([]int, len(got.BufferViews))
	for i, v := range got.BufferViews {
		offsets[i] = v.ByteOffset
		assert.Zero(t, v.ByteOffset%4)
	}
	assert.Equal(t, []int{0, 4, 8, 12}, offsets)
	assert.Len(t, got.Blob(), 20)
	assert.Equal(t, 5, got.BufferViews[3].ByteLength)

	last, err := got.BufferViewData(3)
	require.NoError(t, err)
	assert.Equal(t, testutil.Pattern(11, 1)[6:11], last)
	assert.Equal(t, []byte{0, 0, 0}, got.Blob()[17:20])
}

func TestEncodeBinary_MergesBuffers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "ext.bin", testutil.Pattern(6, 100))

	d := New(WithBaseDir(dir))
	d.Buffers = []*Buffer{
		{URI: testutil.TriangleDataURI, ByteLength: 44},
		{URI: "ext.bin", ByteLength: 6},
	}
	d.BufferViews = []*BufferView{view(1, 2, 4), view(0, 8, 36)}

	data, err := d.EncodeBinary()
	require.NoError(t, err)

	got, err := DecodeBinary(data)
	require.NoError(t, err)
	require.Len(t, got.Buffers, 1)

	first, err := got.BufferViewData(0)
	require.NoError(t, err)
	assert.Equal(t, testutil.Pattern(6, 100)[2:6], first)

	second, err := got.BufferViewData(1)
	require.NoError(t, err)
	assert.Equal(t, testutil.Triangle(t)[8:44], second)
}

func TestEncodeBinary_SkipsUnresolvedViews(t *testing.T) {
	t.Parallel()

	d := New(WithBaseDir(t.TempDir()))
	d.Buffers = []*Buffer{
		{URI: testutil.TriangleDataURI, ByteLength: 44},
		{URI: "missing.bin", ByteLength: 4},
	}
	d.BufferViews = []*BufferView{view(0, 0, 6), view(1, 0, 4)}

	rec, opt := recordWarnings()
	opt(d)

	data, err := d.EncodeBinary()
	require.NoError(t, err)
	assert.Equal(t, []WarningKind{WarningUnresolvedSource}, warningKinds(rec.Items()))

	got, err := DecodeBinary(data)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BufferViews[1].Buffer)
	assert.Equal(t, 8, got.Buffers[0].ByteLength)
}

func TestEncodeBinary_NothingAssembled(t *testing.T) {
	t.Parallel()

	d := New(WithBaseDir(t.TempDir()))
	d.Buffers = []*Buffer{{URI: "missing.bin", ByteLength: 4}}
	d.BufferViews = []*BufferView{view(0, 0, 4)}

	_, err := d.EncodeBinary()
	require.ErrorIs(t, err, ErrEmptyAssembly)
}

func TestEncodeBinary_RestoresDocumentOnError(t *testing.T) {
	t.Parallel()

	d, err := DecodeJSON([]byte(testutil.TriangleJSON))
	require.NoError(t, err)
	d.Buffers = append(d.Buffers, &Buffer{URI: testutil.TriangleDataURI, ByteLength: 44})
	d.BufferViews[1].Buffer = 1
	d.Extra.SetRaw("broken", json.RawMessage("{"))

	buffers := slices.Clone(d.Buffers)
	views := slices.Clone(d.BufferViews)
	wantViews := make([]BufferView, len(views))
	for i, v := range views {
		wantViews[i] = *v
	}

	_, err = d.EncodeBinary()
	require.Error(t, err)

	require.Len(t, d.Buffers, len(buffers))
	for i := range buffers {
		assert.Same(t, buffers[i], d.Buffers[i])
	}
	require.Len(t, d.BufferViews, len(views))
	for i := range views {
		assert.Same(t, views[i], d.BufferViews[i])
		assert.Equal(t, wantViews[i].Buffer, d.BufferViews[i].Buffer)
		assert.Equal(t, wantViews[i].ByteOffset, d.BufferViews[i].ByteOffset)
		assert.Equal(t, wantViews[i].ByteLength, d.BufferViews[i].ByteLength)
	}
	assert.Equal(t, testutil.TriangleDataURI, d.Buffers[1].URI)
}

func TestEncodeBinary_NoBufferViews(t *testing.T) {
	t.Parallel()

	d := New()
	data, err := d.EncodeBinary()
	require.NoError(t, err)

	_, chunks, err := glb.Read(data)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, glb.ChunkJSON, chunks[0].Type)
}
