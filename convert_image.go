package gltf

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/meigma/gltf/internal/datauri"
	"github.com/meigma/gltf/internal/fsutil"
	"github.com/meigma/gltf/internal/mimetype"
	"github.com/meigma/gltf/internal/sizing"
)

// ConvertImages converts every image to target.
//
// An image that fails to convert is reported as a warning and left as it
// was; the remaining images are still converted. The returned error joins
// every failure. ConvertImages panics if target is not a valid format.
func (d *Document) ConvertImages(target ImageFormat, opts ...ConvertOption) error {
	mustImageFormat(target)
	cfg := newConvertConfig(opts)

	var errs []error
	for i := range d.Images {
		if err := d.convertImage(i, target, cfg); err != nil {
			d.warn(warningKindFor(err), "image %d not converted to %s: %v", i, target, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConvertImage converts image i to target. Converting to the current
// format does nothing.
//
// ImageFile writes the image to the base directory, named after the
// image's name or its index. ImageBufferView appends the bytes to the
// blob as a new buffer view, creating a blob buffer when the document has
// no buffers. Leaving ImageBufferView removes the image's buffer view.
// ConvertImage panics if target is not a valid format.
func (d *Document) ConvertImage(i int, target ImageFormat, opts ...ConvertOption) error {
	mustImageFormat(target)
	if i < 0 || i >= len(d.Images) {
		return fmt.Errorf("image %d: %w", i, ErrIndexOutOfRange)
	}
	return d.convertImage(i, target, newConvertConfig(opts))
}

func (d *Document) convertImage(i int, target ImageFormat, cfg convertConfig) error {
	img := d.Images[i]
	current := img.format()
	if current == 0 {
		return fmt.Errorf("image %d: %w", i, ErrNoImageSource)
	}
	if current == target {
		return nil
	}

	data, mediaType, err := d.ImageData(i)
	if err != nil {
		return err
	}

	blobBuffer := -1
	switch target {
	case ImageFile:
		name := ImageFileName(img, i, mediaType)
		path := filepath.Join(d.baseDir, name)
		if !cfg.overwrite && fsutil.Exists(path) {
			return fmt.Errorf("image %d: %s: %w", i, path, ErrOverwriteRefused)
		}
		if err := fsutil.WriteFile(path, data, cfg.overwrite); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		img.URI = url.PathEscape(name)
	case ImageBufferView:
		if blobBuffer, err = d.ensureBlobBuffer(); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
	case ImageDataURI:
		img.URI = datauri.Encode(mediaType, data)
	}

	if current == ImageBufferView {
		if _, err := d.removeBufferView(*img.BufferView, img); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		img.BufferView = nil
	}
	if target == ImageBufferView {
		img.BufferView = Index(d.appendBufferView(blobBuffer, data))
		img.URI = ""
		img.MimeType = mediaType
	}
	img.Format = target

	d.log().Debug("converted image",
		"index", i,
		"from", current.String(),
		"to", target.String(),
		"mimeType", mediaType,
		"bytes", len(data))
	return nil
}

// ExportImage writes image i to dir without changing the document and
// returns the file name used.
func (d *Document) ExportImage(i int, dir string, overwrite bool) (string, error) {
	data, mediaType, err := d.ImageData(i)
	if err != nil {
		return "", err
	}
	name := ImageFileName(d.Images[i], i, mediaType)
	if err := fsutil.WriteFile(filepath.Join(dir, name), data, overwrite); err != nil {
		return "", fmt.Errorf("image %d: %w", i, err)
	}
	return name, nil
}

// ImageFileName returns the file name used when image i is written out:
// the base of its name when set, otherwise its index, with an extension
// for mediaType added when the name has none.
func ImageFileName(img *Image, i int, mediaType string) string {
	name := strings.TrimSpace(img.Name)
	if name != "" {
		name = filepath.Base(filepath.Clean(filepath.FromSlash(name)))
	}
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		name = strconv.Itoa(i)
	}
	if filepath.Ext(name) == "" {
		name += mimetype.Extension(mediaType)
	}
	return name
}

// ensureBlobBuffer returns the index of the blob buffer, creating one
// when the document has no buffers at all.
func (d *Document) ensureBlobBuffer() (int, error) {
	if i, ok := d.BlobBuffer(); ok {
		return i, nil
	}
	if len(d.Buffers) > 0 {
		return -1, ErrNoBlobBuffer
	}
	d.Buffers = append(d.Buffers, &Buffer{Format: BufferBinaryBlob})
	return 0, nil
}

// appendBufferView appends data to the blob at the next four-byte
// boundary and returns the index of a new view over it.
func (d *Document) appendBufferView(buffer int, data []byte) int {
	offset := sizing.Align4(len(d.blob))
	blob := make([]byte, offset, sizing.Align4(offset+len(data)))
	copy(blob, d.blob)
	blob = append(blob, data...)
	blob = append(blob, make([]byte, sizing.Padding(len(blob)))...)
	d.blob = blob
	d.Buffers[buffer].ByteLength = len(blob)

	d.BufferViews = append(d.BufferViews, &BufferView{
		Buffer:     buffer,
		ByteOffset: offset,
		ByteLength: len(data),
	})
	return len(d.BufferViews) - 1
}
