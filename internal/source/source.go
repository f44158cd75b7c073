// Package source resolves the byte ranges referenced by buffer and image
// URIs: inline data URIs, files relative to the document, or the
// document's implicit binary blob.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/meigma/gltf/internal/datauri"
)

// Sentinel errors for source resolution.
var (
	// ErrMissingBlob is returned when the implicit blob is requested but empty.
	ErrMissingBlob = errors.New("gltf: missing binary blob")

	// ErrNotFound is returned when a referenced file does not exist.
	ErrNotFound = errors.New("gltf: source file not found")
)

// Kind classifies a URI by its storage representation.
type Kind uint8

const (
	// KindBlob is an empty URI referring to the implicit blob.
	KindBlob Kind = iota
	// KindDataURI is an inline base64 (or percent-encoded) data URI.
	KindDataURI
	// KindFile is a path relative to the document.
	KindFile
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindDataURI:
		return "data uri"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Classify returns the kind of uri.
func Classify(uri string) Kind {
	switch {
	case uri == "":
		return KindBlob
	case datauri.Is(uri):
		return KindDataURI
	default:
		return KindFile
	}
}

// Resolver reads the bytes behind a URI. The zero value resolves files
// against the working directory and has no blob.
type Resolver struct {
	// BaseDir is the directory relative file URIs are resolved against.
	BaseDir string

	// Blob is the implicit binary blob returned for empty URIs.
	Blob []byte
}

// Resolve returns the bytes referenced by uri.
//
// The returned slice aliases Blob for empty URIs; callers that mutate it
// must copy first.
func (r Resolver) Resolve(uri string) ([]byte, error) {
	switch Classify(uri) {
	case KindBlob:
		if len(r.Blob) == 0 {
			return nil, ErrMissingBlob
		}
		return r.Blob, nil
	case KindDataURI:
		_, data, err := datauri.Decode(uri)
		return data, err
	default:
		data, err := os.ReadFile(r.Path(uri))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
			}
			return nil, err
		}
		return data, nil
	}
}

// Path returns the filesystem path for a file URI.
// URIs are percent-decoded before being joined with BaseDir.
func (r Resolver) Path(uri string) string {
	p, err := url.PathUnescape(uri)
	if err != nil {
		p = uri
	}
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) || r.BaseDir == "" {
		return p
	}
	return filepath.Join(r.BaseDir, p)
}
