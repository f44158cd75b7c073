package gltf

import (
	"log/slog"

	"github.com/meigma/gltf/internal/compress"
)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger for document operations.
// By default, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithWarningFunc sets a function that receives every Warning raised by
// the document. Warnings are logged regardless.
func WithWarningFunc(fn WarningFunc) Option {
	return func(d *Document) {
		d.warnFn = fn
	}
}

// WithBaseDir sets the directory relative file URIs are resolved against
// and where converted files are written. Load defaults it to the
// directory of the loaded file.
func WithBaseDir(dir string) Option {
	return func(d *Document) {
		d.baseDir = dir
	}
}

// WithMaxDecompressedSize limits how large a compressed asset may expand
// when loaded. Zero disables the limit. Default: 1GiB.
func WithMaxDecompressedSize(n uint64) Option {
	return func(d *Document) {
		d.maxSize = n
	}
}

// ConvertOption configures a buffer or image conversion.
type ConvertOption func(*convertConfig)

type convertConfig struct {
	overwrite bool
}

// ConvertWithOverwrite allows conversions to replace existing files.
// By default, conversions refuse to overwrite and return
// ErrOverwriteRefused.
func ConvertWithOverwrite(overwrite bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.overwrite = overwrite
	}
}

func newConvertConfig(opts []ConvertOption) convertConfig {
	var cfg convertConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Compression identifies the compression applied to a saved asset.
type Compression = compress.Compression

// Compression types.
const (
	CompressionNone = compress.CompressionNone
	CompressionGzip = compress.CompressionGzip
	CompressionZstd = compress.CompressionZstd
	CompressionLZ4  = compress.CompressionLZ4
)

// ParseCompression parses "none", "gzip", "zstd" or "lz4".
func ParseCompression(name string) (Compression, error) {
	return compress.Parse(name)
}

// SaveOption configures Save.
type SaveOption func(*saveConfig)

type saveConfig struct {
	overwrite   bool
	compression Compression
	binary      *bool
}

// SaveWithOverwrite allows Save to replace existing files, including the
// sidecar .bin written for a blob-backed buffer. Default: true.
func SaveWithOverwrite(overwrite bool) SaveOption {
	return func(cfg *saveConfig) {
		cfg.overwrite = overwrite
	}
}

// SaveWithCompression compresses the written document (not the sidecar
// .bin). Default: CompressionNone.
func SaveWithCompression(c Compression) SaveOption {
	return func(cfg *saveConfig) {
		cfg.compression = c
	}
}

// SaveAsBinary forces the binary container (true) or JSON (false)
// regardless of the file extension. By default, a ".glb" extension
// selects the binary container.
func SaveAsBinary(binary bool) SaveOption {
	return func(cfg *saveConfig) {
		cfg.binary = &binary
	}
}
