package glb

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JSON", ChunkJSON.String())
	assert.Equal(t, "BIN", ChunkBIN.String())
	assert.Equal(t, "EXTX", ChunkType(binary.LittleEndian.Uint32([]byte("EXTX"))).String())
	assert.Equal(t, "0x00000001", ChunkType(1).String())
}

func TestWrite_PadsChunks(t *testing.T) {
	t.Parallel()

	data, err := Encode(Version, []Chunk{
		{Type: ChunkJSON, Data: []byte(`{"a":1}`)},
		{Type: ChunkBIN, Data: []byte{1, 2, 3, 4, 5}},
	})
	require.NoError(t, err)

	// header + (8 + 8) + (8 + 8)
	require.Len(t, data, 44)
	assert.Equal(t, []byte("glTF"), data[:4])
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(44), binary.LittleEndian.Uint32(data[8:12]))

	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(data[12:16]))
	assert.Equal(t, uint32(ChunkJSON), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, []byte(`{"a":1} `), data[20:28])

	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(data[28:32]))
	assert.Equal(t, uint32(ChunkBIN), binary.LittleEndian.Uint32(data[32:36]))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0, 0, 0}, data[36:44])
}

func TestReadWriteRoundTrip(t *testing.T) {
	t.Parallel()

	in := []Chunk{
		{Type: ChunkJSON, Data: []byte(`{"asset":{"version":"2.0"}}`)},
		{Type: ChunkBIN, Data: bytes.Repeat([]byte{7}, 36)},
	}
	data, err := Encode(Version, in)
	require.NoError(t, err)

	h, chunks, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(Version), h.Version)
	assert.Equal(t, uint32(len(data)), h.Length)
	require.Len(t, chunks, 2)

	for _, c := range chunks {
		assert.Zero(t, len(c.Data)%4, "chunk %s not aligned", c.Type)
	}
	assert.Equal(t, in[1].Data, chunks[1].Data)
	assert.Equal(t, in[0].Data, bytes.TrimRight(chunks[0].Data, " "))
}

func TestRead_CopiesPayload(t *testing.T) {
	t.Parallel()

	data, err := Encode(Version, []Chunk{{Type: ChunkBIN, Data: []byte{1, 2, 3, 4}}})
	require.NoError(t, err)

	_, chunks, err := Read(data)
	require.NoError(t, err)
	data[HeaderSize+ChunkHeaderSize] = 9
	assert.Equal(t, byte(1), chunks[0].Data[0])
}

func TestRead_IgnoresTrailingBytes(t *testing.T) {
	t.Parallel()

	data, err := Encode(Version, []Chunk{{Type: ChunkJSON, Data: []byte("{}  ")}})
	require.NoError(t, err)
	data = append(data, 0xde, 0xad)

	_, chunks, err := Read(data)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
}

func TestRead_Malformed(t *testing.T) {
	t.Parallel()

	valid, err := Encode(Version, []Chunk{{Type: ChunkJSON, Data: []byte("{}  ")}})
	require.NoError(t, err)

	badMagic := bytes.Clone(valid)
	copy(badMagic, "gltf")

	shortLength := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(shortLength[8:12], 8)

	longLength := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(longLength[8:12], uint32(len(valid)+4))

	oversizedChunk := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(oversizedChunk[12:16], 64)

	truncatedChunkHeader := bytes.Clone(valid[:HeaderSize+4])
	binary.LittleEndian.PutUint32(truncatedChunkHeader[8:12], HeaderSize+4)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("glTF\x02\x00")},
		{"bad magic", badMagic},
		{"length below header", shortLength},
		{"length beyond data", longLength},
		{"chunk beyond length", oversizedChunk},
		{"truncated chunk header", truncatedChunkHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Read(tt.data)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestIsContainer(t *testing.T) {
	t.Parallel()

	assert.True(t, IsContainer([]byte("glTF....")))
	assert.False(t, IsContainer([]byte(`{"asset":{}}`)))
	assert.False(t, IsContainer([]byte("gl")))
}
