package gltf

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/meigma/gltf/internal/datauri"
	"github.com/meigma/gltf/internal/fsutil"
)

// ConvertBuffers converts every buffer to target.
//
// A buffer that fails to convert is reported as a warning and left as it
// was; the remaining buffers are still converted. The returned error joins
// every failure. ConvertBuffers panics if target is not a valid format.
func (d *Document) ConvertBuffers(target BufferFormat, opts ...ConvertOption) error {
	mustBufferFormat(target)
	cfg := newConvertConfig(opts)

	var errs []error
	for i := range d.Buffers {
		if err := d.convertBuffer(i, target, cfg); err != nil {
			d.warn(warningKindFor(err), "buffer %d not converted to %s: %v", i, target, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConvertBuffer converts buffer i to target. Converting to the current
// format does nothing.
//
// BufferBinFile writes the bytes to "<i>.bin" in the base directory.
// BufferBinaryBlob requires the document to have exactly one buffer.
// ConvertBuffer panics if target is not a valid format.
func (d *Document) ConvertBuffer(i int, target BufferFormat, opts ...ConvertOption) error {
	mustBufferFormat(target)
	if i < 0 || i >= len(d.Buffers) {
		return fmt.Errorf("buffer %d: %w", i, ErrIndexOutOfRange)
	}
	return d.convertBuffer(i, target, newConvertConfig(opts))
}

func (d *Document) convertBuffer(i int, target BufferFormat, cfg convertConfig) error {
	b := d.Buffers[i]
	current := b.format()
	if current == target {
		return nil
	}

	var fileName, filePath string
	switch target {
	case BufferBinaryBlob:
		if len(d.Buffers) > 1 {
			return fmt.Errorf("buffer %d: %w", i, ErrAmbiguousBlob)
		}
	case BufferBinFile:
		fileName = fmt.Sprintf("%d.bin", i)
		filePath = filepath.Join(d.baseDir, fileName)
		if !cfg.overwrite && fsutil.Exists(filePath) {
			return fmt.Errorf("buffer %d: %s: %w", i, filePath, ErrOverwriteRefused)
		}
	}

	data, err := d.BufferData(i)
	if err != nil {
		return err
	}

	// Store the new representation before releasing the old one.
	var uri string
	switch target {
	case BufferDataURI:
		uri = datauri.Encode(datauri.OctetStream, data)
	case BufferBinFile:
		if err := fsutil.WriteFile(filePath, data, cfg.overwrite); err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		uri = fileName
	}

	if current == BufferBinaryBlob {
		d.blob = nil
	}
	if target == BufferBinaryBlob {
		d.blob = data
	}
	b.URI = uri
	b.Format = target
	if b.ByteLength == 0 {
		b.ByteLength = len(data)
	}

	d.log().Debug("converted buffer",
		"index", i,
		"from", current.String(),
		"to", target.String(),
		"bytes", len(data))
	return nil
}
