// Package mimetype maps image media types to file extensions and sniffs
// the media type of image payloads.
package mimetype

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Image media types with a canonical extension.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	WebP = "image/webp"
	KTX2 = "image/ktx2"
	GIF  = "image/gif"
	BMP  = "image/bmp"

	// OctetStream is used when nothing better is known.
	OctetStream = "application/octet-stream"
)

var canonicalExt = map[string]string{
	PNG:  ".png",
	JPEG: ".jpg",
	WebP: ".webp",
	KTX2: ".ktx2",
	GIF:  ".gif",
	BMP:  ".bmp",
}

var extTypes = map[string]string{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".webp": WebP,
	".ktx2": KTX2,
	".gif":  GIF,
	".bmp":  BMP,
}

// Extension returns the canonical file extension (with leading dot) for a
// media type, or ".bin" when the type is unknown.
func Extension(mediaType string) string {
	if ext, ok := canonicalExt[normalize(mediaType)]; ok {
		return ext
	}
	if t := filetype.GetType(strings.TrimPrefix(subtype(mediaType), "x-")); t != filetype.Unknown {
		return "." + t.Extension
	}
	return ".bin"
}

// FromPath returns the media type implied by a file extension, or "".
func FromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := extTypes[ext]; ok {
		return mt
	}
	if ext == "" {
		return ""
	}
	if t := filetype.GetType(ext[1:]); t != filetype.Unknown {
		return t.MIME.Value
	}
	return ""
}

// Sniff returns the media type detected from the payload's magic bytes, or "".
func Sniff(data []byte) string {
	t, err := filetype.Match(data)
	if err != nil || t == filetype.Unknown {
		return ""
	}
	return t.MIME.Value
}

// Detect picks the media type for an image payload: the declared type when
// present, then the file extension, then the payload's magic bytes, falling
// back to OctetStream.
func Detect(declared, path string, data []byte) string {
	if mt := normalize(declared); mt != "" {
		return mt
	}
	if mt := FromPath(path); mt != "" {
		return mt
	}
	if mt := Sniff(data); mt != "" {
		return mt
	}
	return OctetStream
}

func normalize(mediaType string) string {
	mt, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func subtype(mediaType string) string {
	_, sub, _ := strings.Cut(normalize(mediaType), "/")
	return sub
}
