package gltf

import (
	"fmt"

	"github.com/meigma/gltf/internal/datauri"
	"github.com/meigma/gltf/internal/mimetype"
	"github.com/meigma/gltf/internal/sizing"
)

// BufferData returns the bytes of buffer i from wherever they are stored.
// Data longer than the buffer's byteLength is truncated to it.
//
// Blob-backed data is returned without copying; callers must not modify it.
func (d *Document) BufferData(i int) ([]byte, error) {
	if i < 0 || i >= len(d.Buffers) {
		return nil, fmt.Errorf("buffer %d: %w", i, ErrIndexOutOfRange)
	}
	b := d.Buffers[i]

	uri := b.URI
	if b.format() == BufferBinaryBlob {
		if len(d.Buffers) > 1 {
			d.warn(WarningAmbiguousBlob,
				"buffer %d reads the binary blob but the document has %d buffers", i, len(d.Buffers))
		}
		uri = ""
	}
	data, err := d.resolver().Resolve(uri)
	if err != nil {
		return nil, fmt.Errorf("buffer %d: %w", i, err)
	}
	if b.ByteLength > 0 && len(data) > b.ByteLength {
		data = data[:b.ByteLength]
	}
	return data, nil
}

// BufferViewData returns the bytes covered by buffer view i.
func (d *Document) BufferViewData(i int) ([]byte, error) {
	if i < 0 || i >= len(d.BufferViews) {
		return nil, fmt.Errorf("buffer view %d: %w", i, ErrIndexOutOfRange)
	}
	v := d.BufferViews[i]
	data, err := d.BufferData(v.Buffer)
	if err != nil {
		return nil, fmt.Errorf("buffer view %d: %w", i, err)
	}
	if !sizing.InRange(v.ByteOffset, v.ByteLength, len(data)) {
		return nil, fmt.Errorf("buffer view %d: range [%d,%d) of %d bytes: %w",
			i, v.ByteOffset, v.ByteOffset+v.ByteLength, len(data), ErrViewOutOfBounds)
	}
	return data[v.ByteOffset : v.ByteOffset+v.ByteLength], nil
}

// ImageData returns the encoded bytes of image i and its media type.
// The media type is the image's mimeType when set, otherwise it is
// inferred from the data URI, file extension or the bytes themselves.
func (d *Document) ImageData(i int) ([]byte, string, error) {
	if i < 0 || i >= len(d.Images) {
		return nil, "", fmt.Errorf("image %d: %w", i, ErrIndexOutOfRange)
	}
	img := d.Images[i]

	switch img.format() {
	case ImageDataURI:
		mt, data, err := datauri.Decode(img.URI)
		if err != nil {
			return nil, "", fmt.Errorf("image %d: %w", i, err)
		}
		declared := img.MimeType
		if declared == "" && mt != datauri.OctetStream {
			declared = mt
		}
		return data, mimetype.Detect(declared, "", data), nil
	case ImageFile:
		data, err := d.resolver().Resolve(img.URI)
		if err != nil {
			return nil, "", fmt.Errorf("image %d: %w", i, err)
		}
		return data, mimetype.Detect(img.MimeType, img.URI, data), nil
	case ImageBufferView:
		data, err := d.BufferViewData(*img.BufferView)
		if err != nil {
			return nil, "", fmt.Errorf("image %d: %w", i, err)
		}
		return data, mimetype.Detect(img.MimeType, "", data), nil
	default:
		return nil, "", fmt.Errorf("image %d: %w", i, ErrNoImageSource)
	}
}
