package gltf

import (
	"errors"

	"github.com/meigma/gltf/internal/compress"
	"github.com/meigma/gltf/internal/datauri"
	"github.com/meigma/gltf/internal/fsutil"
	"github.com/meigma/gltf/internal/glb"
	"github.com/meigma/gltf/internal/source"
)

// Errors re-exported from internal packages.
var (
	// ErrMalformedContainer is returned when binary container bytes are not
	// well formed (bad magic, truncated chunks, missing JSON chunk).
	ErrMalformedContainer = glb.ErrMalformed

	// ErrSizeOverflow is returned when a length does not fit the container's
	// 32-bit fields.
	ErrSizeOverflow = glb.ErrSizeOverflow

	// ErrMalformedDataURI is returned when a data URI payload cannot be decoded.
	ErrMalformedDataURI = datauri.ErrMalformed

	// ErrMissingBlob is returned when blob-backed data is requested but the
	// document has no blob.
	ErrMissingBlob = source.ErrMissingBlob

	// ErrSourceNotFound is returned when a referenced file does not exist.
	// It also matches fs.ErrNotExist.
	ErrSourceNotFound = source.ErrNotFound

	// ErrOverwriteRefused is returned when an output file exists and
	// overwriting was not requested. Nothing is written.
	ErrOverwriteRefused = fsutil.ErrExists

	// ErrTooLarge is returned when a compressed asset expands past the
	// configured limit.
	ErrTooLarge = compress.ErrTooLarge
)

// Sentinel errors specific to the gltf package.
var (
	// ErrAmbiguousBlob is returned when a buffer would become blob-backed
	// while the document has more than one buffer.
	ErrAmbiguousBlob = errors.New("gltf: only a single buffer can use the binary blob")

	// ErrNoBlobBuffer is returned when data must be appended to the blob but
	// no buffer is blob-backed.
	ErrNoBlobBuffer = errors.New("gltf: no buffer uses the binary blob")

	// ErrNoImageSource is returned for an image with neither a URI nor a
	// buffer view.
	ErrNoImageSource = errors.New("gltf: image has no uri or buffer view")

	// ErrIndexOutOfRange is returned for an index past the end of a list.
	ErrIndexOutOfRange = errors.New("gltf: index out of range")

	// ErrViewOutOfBounds is returned when a buffer view's range exceeds the
	// data of its buffer.
	ErrViewOutOfBounds = errors.New("gltf: buffer view exceeds buffer data")

	// ErrEmptyAssembly is returned when no buffer view data could be
	// packed while saving a binary container.
	ErrEmptyAssembly = errors.New("gltf: no buffer data could be assembled")
)
