package gltf

import "errors"

// WarningKind classifies a Warning.
type WarningKind uint8

const (
	// WarningVersion reports a container version outside the supported range.
	WarningVersion WarningKind = iota

	// WarningUnknownChunk reports a container chunk of unknown type that was skipped.
	WarningUnknownChunk

	// WarningDuplicateChunk reports a second JSON or BIN chunk that was skipped.
	WarningDuplicateChunk

	// WarningUnresolvedSource reports buffer or image data that could not be read.
	WarningUnresolvedSource

	// WarningAmbiguousBlob reports blob-backed data read while several buffers exist.
	WarningAmbiguousBlob

	// WarningDanglingReference reports a reference to a removed buffer view.
	WarningDanglingReference

	// WarningStrideCompaction reports a strided buffer view moved by compaction.
	WarningStrideCompaction

	// WarningOverlap reports a buffer view that shared bytes with a removed one.
	WarningOverlap

	// WarningOverwriteRefused reports an output file left untouched because it exists.
	WarningOverwriteRefused
)

// String returns the human-readable name of the kind.
func (k WarningKind) String() string {
	switch k {
	case WarningVersion:
		return "version"
	case WarningUnknownChunk:
		return "unknown chunk"
	case WarningDuplicateChunk:
		return "duplicate chunk"
	case WarningUnresolvedSource:
		return "unresolved source"
	case WarningAmbiguousBlob:
		return "ambiguous blob"
	case WarningDanglingReference:
		return "dangling reference"
	case WarningStrideCompaction:
		return "stride compaction"
	case WarningOverlap:
		return "overlap"
	case WarningOverwriteRefused:
		return "overwrite refused"
	default:
		return "unknown"
	}
}

// Warning describes a condition that did not stop an operation but may
// lose or misplace data.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Error implements error so warnings can be collected with errors.Join.
func (w Warning) Error() string {
	return "gltf: " + w.Message
}

// WarningFunc receives warnings as they occur.
type WarningFunc func(Warning)

// warningKindFor picks the kind used when a batch operation reports a
// per-entity failure as a warning.
func warningKindFor(err error) WarningKind {
	switch {
	case errors.Is(err, ErrOverwriteRefused):
		return WarningOverwriteRefused
	case errors.Is(err, ErrAmbiguousBlob):
		return WarningAmbiguousBlob
	default:
		return WarningUnresolvedSource
	}
}
