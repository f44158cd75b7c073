package gltf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/meigma/gltf/internal/compress"
	"github.com/meigma/gltf/internal/fields"
	"github.com/meigma/gltf/internal/source"
)

// Generator is written to asset.generator for documents created with New.
const Generator = "github.com/meigma/gltf"

// Document is a glTF 2.0 scene graph and the binary blob backing its
// blob-stored buffer.
//
// A Document is not safe for concurrent use.
type Document struct {
	Asset              Asset
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Accessors          []*Accessor
	BufferViews        []*BufferView
	Buffers            []*Buffer
	Images             []*Image

	// Extra holds every top-level member not modeled above (scenes, nodes,
	// meshes, materials, textures, and so on).
	Extra Fields

	blob    []byte
	baseDir string
	maxSize uint64
	logger  *slog.Logger
	warnFn  WarningFunc
}

// New returns an empty document with a 2.0 asset record.
func New(opts ...Option) *Document {
	d := &Document{
		Asset:   Asset{Version: "2.0", Generator: Generator},
		maxSize: compress.DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Blob returns the binary blob, or nil when the document has none.
// The returned slice is shared with the document.
func (d *Document) Blob() []byte {
	return d.blob
}

// SetBlob replaces the binary blob.
func (d *Document) SetBlob(blob []byte) {
	d.blob = blob
}

// BaseDir returns the directory relative file URIs are resolved against.
func (d *Document) BaseDir() string {
	return d.baseDir
}

// SetBaseDir changes the directory relative file URIs are resolved against.
func (d *Document) SetBaseDir(dir string) {
	d.baseDir = dir
}

// BlobBuffer returns the index of the first blob-backed buffer.
func (d *Document) BlobBuffer() (int, bool) {
	for i, b := range d.Buffers {
		if b.format() == BufferBinaryBlob {
			return i, true
		}
	}
	return -1, false
}

// log returns the configured logger or a discard logger if none was set.
func (d *Document) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.logger
}

// warn logs a warning and forwards it to the warning function.
func (d *Document) warn(kind WarningKind, format string, args ...any) {
	w := Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
	d.log().Warn(w.Message, "kind", kind.String())
	if d.warnFn != nil {
		d.warnFn(w)
	}
}

func (d *Document) resolver() source.Resolver {
	return source.Resolver{BaseDir: d.baseDir, Blob: d.blob}
}

// classify refreshes the Format of every buffer and image from its members.
func (d *Document) classify() {
	for _, b := range d.Buffers {
		b.Format = ClassifyBuffer(b.URI)
	}
	for _, img := range d.Images {
		img.Format = ClassifyImage(img)
	}
}

type documentJSON struct {
	Asset              Asset         `json:"asset"`
	ExtensionsUsed     []string      `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string      `json:"extensionsRequired,omitempty"`
	Accessors          []*Accessor   `json:"accessors,omitempty"`
	BufferViews        []*BufferView `json:"bufferViews,omitempty"`
	Buffers            []*Buffer     `json:"buffers,omitempty"`
	Images             []*Image      `json:"images,omitempty"`
}

// MarshalJSON encodes the scene graph. The blob is not included.
func (d *Document) MarshalJSON() ([]byte, error) {
	return fields.Marshal(documentJSON{
		Asset:              d.Asset,
		ExtensionsUsed:     d.ExtensionsUsed,
		ExtensionsRequired: d.ExtensionsRequired,
		Accessors:          d.Accessors,
		BufferViews:        d.BufferViews,
		Buffers:            d.Buffers,
		Images:             d.Images,
	}, d.Extra)
}

// UnmarshalJSON replaces the scene graph with the decoded document.
// The blob and configuration are kept.
func (d *Document) UnmarshalJSON(data []byte) error {
	var dj documentJSON
	extra, err := fields.Unmarshal(data, &dj)
	if err != nil {
		return err
	}
	d.Asset = dj.Asset
	d.ExtensionsUsed = dj.ExtensionsUsed
	d.ExtensionsRequired = dj.ExtensionsRequired
	d.Accessors = fillNil(dj.Accessors)
	d.BufferViews = fillNil(dj.BufferViews)
	d.Buffers = fillNil(dj.Buffers)
	d.Images = fillNil(dj.Images)
	d.Extra = extra
	d.classify()
	return nil
}

// EncodeJSON returns the scene graph as indented JSON.
func (d *Document) EncodeJSON() ([]byte, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// fillNil replaces null entries with zero records so indices stay stable
// and callers never see nil pointers.
func fillNil[T any](s []*T) []*T {
	for i, v := range s {
		if v == nil {
			s[i] = new(T)
		}
	}
	return s
}
