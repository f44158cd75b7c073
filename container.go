package gltf

import (
	"bytes"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/meigma/gltf/internal/glb"
)

// DecodeBinary parses a binary container.
//
// The first JSON chunk becomes the scene graph and the first BIN chunk
// the blob. Unknown and repeated chunks are skipped with a warning, as is
// a version other than 2.
func DecodeBinary(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.decodeBinary(data); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) decodeBinary(data []byte) error {
	header, chunks, err := glb.Read(data)
	if err != nil {
		return err
	}
	if header.Version != glb.Version {
		d.warn(WarningVersion, "container version %d, expected %d", header.Version, glb.Version)
	}

	var sawJSON, sawBIN bool
	for i, c := range chunks {
		switch c.Type {
		case glb.ChunkJSON:
			if sawJSON {
				d.warn(WarningDuplicateChunk, "skipping extra JSON chunk %d", i)
				continue
			}
			sawJSON = true
			if err := d.decodeJSON(c.Data); err != nil {
				return fmt.Errorf("%w: json chunk: %w", ErrMalformedContainer, err)
			}
		case glb.ChunkBIN:
			if sawBIN {
				d.warn(WarningDuplicateChunk, "skipping extra BIN chunk %d", i)
				continue
			}
			sawBIN = true
			d.blob = c.Data
		default:
			d.warn(WarningUnknownChunk, "skipping chunk %d of unknown type %s (%d bytes)", i, c.Type, len(c.Data))
		}
	}
	if !sawJSON {
		return fmt.Errorf("%w: no JSON chunk", ErrMalformedContainer)
	}

	d.log().Debug("decoded container",
		"version", header.Version,
		"chunks", len(chunks),
		"blob", len(d.blob))
	return nil
}

// EncodeBinary returns the document as a binary container.
//
// Every buffer view is packed into a single blob referenced by one buffer
// without a URI. Views whose data cannot be read are left as they are and
// reported with a warning. The document itself is not modified.
func (d *Document) EncodeBinary() ([]byte, error) {
	buffers, views := d.Buffers, d.BufferViews
	defer func() {
		d.Buffers, d.BufferViews = buffers, views
	}()

	var bin []byte
	switch {
	case len(views) > 0:
		a := d.assemble()
		if len(a.skipped) == len(views) {
			return nil, ErrEmptyAssembly
		}
		d.BufferViews = a.views
		d.Buffers = []*Buffer{{ByteLength: len(a.blob), Format: BufferBinaryBlob}}
		bin = a.blob
	case len(d.blob) > 0:
		bin = d.blob
	}

	js, err := d.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode json chunk: %w", err)
	}
	chunks := []glb.Chunk{{Type: glb.ChunkJSON, Data: js}}
	if len(bin) > 0 {
		chunks = append(chunks, glb.Chunk{Type: glb.ChunkBIN, Data: bin})
	}
	return glb.Encode(glb.Version, chunks)
}

// decodeJSON decodes a scene graph, tolerating comments, trailing commas
// and trailing NUL padding.
func (d *Document) decodeJSON(data []byte) error {
	data = bytes.TrimRight(data, "\x00 \t\r\n")
	return d.UnmarshalJSON(jsonc.ToJSON(data))
}
