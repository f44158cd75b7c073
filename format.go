package gltf

import (
	"fmt"
	"strings"

	"github.com/meigma/gltf/internal/source"
)

// BufferFormat is the storage representation of a buffer's bytes.
// The zero value means the format has not been classified yet.
type BufferFormat uint8

const (
	// BufferDataURI stores the bytes inline as a base64 data URI.
	BufferDataURI BufferFormat = iota + 1

	// BufferBinaryBlob stores the bytes in the document's binary blob.
	BufferBinaryBlob

	// BufferBinFile stores the bytes in an external file next to the document.
	BufferBinFile
)

// String returns the name accepted by ParseBufferFormat.
func (f BufferFormat) String() string {
	switch f {
	case BufferDataURI:
		return "datauri"
	case BufferBinaryBlob:
		return "blob"
	case BufferBinFile:
		return "file"
	default:
		return "unknown"
	}
}

func (f BufferFormat) valid() bool {
	return f >= BufferDataURI && f <= BufferBinFile
}

// ParseBufferFormat parses "datauri", "blob" or "file".
func ParseBufferFormat(name string) (BufferFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "datauri", "data":
		return BufferDataURI, nil
	case "blob", "binary", "glb":
		return BufferBinaryBlob, nil
	case "file", "binfile", "bin":
		return BufferBinFile, nil
	default:
		return 0, fmt.Errorf("gltf: unknown buffer format %q", name)
	}
}

// ClassifyBuffer returns the format implied by a buffer URI.
func ClassifyBuffer(uri string) BufferFormat {
	switch source.Classify(uri) {
	case source.KindBlob:
		return BufferBinaryBlob
	case source.KindDataURI:
		return BufferDataURI
	default:
		return BufferBinFile
	}
}

// ImageFormat is the storage representation of an image's bytes.
// The zero value means the image has no source.
type ImageFormat uint8

const (
	// ImageDataURI stores the encoded image inline as a base64 data URI.
	ImageDataURI ImageFormat = iota + 1

	// ImageFile stores the encoded image in an external file.
	ImageFile

	// ImageBufferView stores the encoded image in a buffer view of the blob.
	ImageBufferView
)

// String returns the name accepted by ParseImageFormat.
func (f ImageFormat) String() string {
	switch f {
	case ImageDataURI:
		return "datauri"
	case ImageFile:
		return "file"
	case ImageBufferView:
		return "bufferview"
	default:
		return "none"
	}
}

func (f ImageFormat) valid() bool {
	return f >= ImageDataURI && f <= ImageBufferView
}

// ParseImageFormat parses "datauri", "file" or "bufferview".
func ParseImageFormat(name string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "datauri", "data":
		return ImageDataURI, nil
	case "file":
		return ImageFile, nil
	case "bufferview", "view", "blob":
		return ImageBufferView, nil
	default:
		return 0, fmt.Errorf("gltf: unknown image format %q", name)
	}
}

// ClassifyImage returns the format implied by an image's uri and
// bufferView members, or zero when it has neither.
func ClassifyImage(img *Image) ImageFormat {
	switch {
	case img.BufferView != nil:
		return ImageBufferView
	case img.URI != "":
		if source.Classify(img.URI) == source.KindDataURI {
			return ImageDataURI
		}
		return ImageFile
	default:
		return 0
	}
}

func (b *Buffer) format() BufferFormat {
	if !b.Format.valid() {
		b.Format = ClassifyBuffer(b.URI)
	}
	return b.Format
}

func (img *Image) format() ImageFormat {
	if !img.Format.valid() {
		img.Format = ClassifyImage(img)
	}
	return img.Format
}

func mustBufferFormat(f BufferFormat) {
	if !f.valid() {
		panic(fmt.Sprintf("gltf: invalid buffer format %d", f))
	}
}

func mustImageFormat(f ImageFormat) {
	if !f.valid() {
		panic(fmt.Sprintf("gltf: invalid image format %d", f))
	}
}
