package gltf

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/meigma/gltf/internal/compress"
	"github.com/meigma/gltf/internal/fsutil"
)

// Save writes the document to path.
//
// A ".glb" extension (optionally followed by the compression suffix) selects the
// binary container; anything else writes JSON. When writing JSON, a
// blob-backed buffer is written to "<stem>.bin" beside path and referenced
// by that name in the saved JSON only. The in-memory document is left
// unchanged either way.
//
// Files are written atomically via a temporary file and rename.
func (d *Document) Save(path string, opts ...SaveOption) error {
	cfg := saveConfig{overwrite: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	stem := strings.TrimSuffix(path, cfg.compression.Extension())
	binary := strings.EqualFold(filepath.Ext(stem), ".glb")
	if cfg.binary != nil {
		binary = *cfg.binary
	}
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))

	var data []byte
	var sidecar *sidecarFile
	var err error
	if binary {
		data, err = d.EncodeBinary()
	} else {
		data, sidecar, err = d.encodeJSONWithSidecar(stem)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if data, err = compress.Encode(data, cfg.compression); err != nil {
		return fmt.Errorf("save %s: compress: %w", path, err)
	}

	if !cfg.overwrite {
		for _, target := range sidecar.paths(path) {
			if fsutil.Exists(target) {
				return fmt.Errorf("save %s: %w: %s", path, fsutil.ErrExists, target)
			}
		}
	}
	if sidecar != nil {
		if err := fsutil.WriteFile(sidecar.path, sidecar.data, cfg.overwrite); err != nil {
			return fmt.Errorf("save %s: write blob: %w", path, err)
		}
		d.log().Debug("wrote blob sidecar", "path", sidecar.path, "bytes", len(sidecar.data))
	}
	if err := fsutil.WriteFile(path, data, cfg.overwrite); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	d.log().Debug("saved document",
		"path", path,
		"binary", binary,
		"compression", cfg.compression.String(),
		"bytes", len(data))
	return nil
}

// sidecarFile is the blob written beside a JSON document.
type sidecarFile struct {
	path string
	data []byte
}

// paths lists every file a save writes, the document last.
func (s *sidecarFile) paths(document string) []string {
	if s == nil {
		return []string{document}
	}
	return []string{s.path, document}
}

// encodeJSONWithSidecar returns JSON in which the blob buffer points at
// "<stem>.bin", along with the blob to write there. Nothing is written.
func (d *Document) encodeJSONWithSidecar(stem string) ([]byte, *sidecarFile, error) {
	i, ok := d.BlobBuffer()
	if !ok || len(d.blob) == 0 {
		data, err := d.EncodeJSON()
		return data, nil, err
	}

	blob, err := d.BufferData(i)
	if err != nil {
		return nil, nil, err
	}
	file := &sidecarFile{path: stem + ".bin", data: blob}

	buffers := d.Buffers
	defer func() {
		d.Buffers = buffers
	}()
	buffer := *buffers[i]
	buffer.URI = filepath.Base(file.path)
	buffer.Format = BufferBinFile
	buffer.ByteLength = len(blob)
	d.Buffers = slices.Clone(buffers)
	d.Buffers[i] = &buffer

	data, err := d.EncodeJSON()
	if err != nil {
		return nil, nil, err
	}
	return data, file, nil
}
