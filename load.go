package gltf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meigma/gltf/internal/compress"
	"github.com/meigma/gltf/internal/glb"
)

// Load reads a document from path.
//
// Gzip, zstd and lz4 compressed files are decompressed first. The format is
// detected from the content: bytes starting with the container magic are
// decoded as a binary container, anything else as JSON. Relative URIs
// resolve against the directory of path unless WithBaseDir is given.
func Load(path string, opts ...Option) (*Document, error) {
	d := New(opts...)
	if d.baseDir == "" {
		d.baseDir = filepath.Dir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if c := compress.Detect(data); c != compress.CompressionNone {
		if data, err = compress.Decode(data, d.maxSize); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		d.log().Debug("decompressed asset", "path", path, "compression", c.String(), "bytes", len(data))
	}

	if glb.IsContainer(data) {
		err = d.decodeBinary(data)
	} else {
		err = d.decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	d.log().Debug("loaded document",
		"path", path,
		"buffers", len(d.Buffers),
		"bufferViews", len(d.BufferViews),
		"images", len(d.Images))
	return d, nil
}

// DecodeJSON parses a JSON document. Comments and trailing commas are
// tolerated. Blob-backed buffers stay unresolved until a blob is set.
func DecodeJSON(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.decodeJSON(data); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return d, nil
}
