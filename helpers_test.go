package gltf

import (
	"testing"

	"github.com/meigma/gltf/internal/testutil"
)

// blobDocument returns a document whose single buffer is backed by blob.
func blobDocument(t *testing.T, blob []byte, opts ...Option) *Document {
	t.Helper()
	opts = append([]Option{WithBaseDir(t.TempDir())}, opts...)
	d := New(opts...)
	d.Buffers = []*Buffer{{ByteLength: len(blob), Format: BufferBinaryBlob}}
	d.SetBlob(blob)
	return d
}

// recordWarnings returns an option that captures warnings into the recorder.
func recordWarnings() (*testutil.Recorder[Warning], Option) {
	rec := &testutil.Recorder[Warning]{}
	return rec, WithWarningFunc(rec.Record)
}

func warningKinds(ws []Warning) []WarningKind {
	kinds := make([]WarningKind, len(ws))
	for i, w := range ws {
		kinds[i] = w.Kind
	}
	return kinds
}

func view(buffer, offset, length int) *BufferView {
	return &BufferView{Buffer: buffer, ByteOffset: offset, ByteLength: length}
}
