// Package testutil provides fixtures shared by the module's tests.
package testutil

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/meigma/gltf/internal/glb"
)

// TriangleBase64 is the 44-byte buffer of the minimal triangle sample:
// three uint16 indices plus padding, then three float32 positions.
const TriangleBase64 = "AAABAAIAAAAAAAAAAAAAAAAAAAAAAIA/AAAAAAAAAAAAAAAAAACAPwAAAAA="

// TriangleDataURI is TriangleBase64 as a buffer data URI.
const TriangleDataURI = "data:application/octet-stream;base64," + TriangleBase64

// PNGBase64 is a 4x3 RGB PNG.
const PNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAQAAAADCAIAAAA7ljmRAAAAGElEQVQIW2P4DwcMDAxAfBvMAhEQMYgcACEHG8ELxtbPAAAAAElFTkSuQmCC"

// PNGDataURI is PNGBase64 as an image data URI.
const PNGDataURI = "data:image/png;base64," + PNGBase64

// TriangleJSON is the minimal triangle document with its buffer inline.
const TriangleJSON = `{
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"mesh": 0}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 1}, "indices": 0}]}],
  "buffers": [{"uri": "` + TriangleDataURI + `", "byteLength": 44}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 6, "target": 34963},
    {"buffer": 0, "byteOffset": 8, "byteLength": 36, "target": 34962}
  ],
  "accessors": [
    {"bufferView": 0, "byteOffset": 0, "componentType": 5123, "count": 3, "type": "SCALAR", "max": [2], "min": [0]},
    {"bufferView": 1, "byteOffset": 0, "componentType": 5126, "count": 3, "type": "VEC3", "max": [1, 1, 0], "min": [0, 0, 0]}
  ],
  "asset": {"version": "2.0"}
}`

// Triangle returns the decoded triangle buffer.
func Triangle(tb testing.TB) []byte {
	tb.Helper()
	return mustDecode(tb, TriangleBase64)
}

// PNG returns the decoded PNG fixture.
func PNG(tb testing.TB) []byte {
	tb.Helper()
	return mustDecode(tb, PNGBase64)
}

// Pattern returns n bytes where byte i is seed+i (mod 256).
func Pattern(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = seed + byte(i)
	}
	return out
}

// WriteFile writes data to name under dir and returns the full path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Container builds a binary container from a JSON string, an optional BIN
// payload and any extra chunks, which are appended after BIN.
func Container(tb testing.TB, version uint32, json string, bin []byte, extra ...glb.Chunk) []byte {
	tb.Helper()
	chunks := []glb.Chunk{{Type: glb.ChunkJSON, Data: []byte(json)}}
	if bin != nil {
		chunks = append(chunks, glb.Chunk{Type: glb.ChunkBIN, Data: bin})
	}
	chunks = append(chunks, extra...)
	data, err := glb.Encode(version, chunks)
	if err != nil {
		tb.Fatalf("encode container: %v", err)
	}
	return data
}

// Recorder collects values passed to it, for use as a warning callback.
type Recorder[T any] struct {
	mu    sync.Mutex
	items []T
}

// Record appends v.
func (r *Recorder[T]) Record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, v)
}

// Items returns a copy of everything recorded so far.
func (r *Recorder[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func mustDecode(tb testing.TB, s string) []byte {
	tb.Helper()
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		tb.Fatalf("decode fixture: %v", err)
	}
	return data
}
