// Package compress applies and removes transport compression (gzip, zstd
// or lz4 frames) around whole asset files.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the compression applied to an asset file.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// DefaultMaxSize caps the decompressed size of an asset (1GiB).
const DefaultMaxSize = 1 << 30

// ErrTooLarge is returned when decompressed data exceeds the size limit.
var ErrTooLarge = errors.New("gltf: decompressed asset too large")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the human-readable name of the compression algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Extension returns the conventional file suffix for the compression.
func (c Compression) Extension() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Parse maps a name accepted by String back to a Compression.
func Parse(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("unknown compression %q", name)
	}
}

// Detect returns the compression indicated by the magic bytes of data.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Decode removes any compression detected in data. Uncompressed input is
// returned unchanged. maxSize of 0 disables the size limit.
func Decode(data []byte, maxSize uint64) ([]byte, error) {
	switch Detect(data) {
	case CompressionZstd:
		dec, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := readLimited(dec, maxSize)
		if err != nil && !errors.Is(err, ErrTooLarge) {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
		return out, err
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		defer zr.Close()
		out, err := readLimited(zr, maxSize)
		if err != nil && !errors.Is(err, ErrTooLarge) {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		return out, err
	case CompressionLZ4:
		out, err := readLimited(lz4.NewReader(bytes.NewReader(data)), maxSize)
		if err != nil && !errors.Is(err, ErrTooLarge) {
			return nil, fmt.Errorf("lz4 decode: %w", err)
		}
		return out, err
	default:
		return data, nil
	}
}

// readLimited reads r to EOF, failing with ErrTooLarge past maxSize bytes.
func readLimited(r io.Reader, maxSize uint64) ([]byte, error) {
	if maxSize == 0 || maxSize >= math.MaxInt64 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(maxSize)+1)) //nolint:gosec // checked above
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > maxSize {
		return nil, ErrTooLarge
	}
	return out, nil
}

// Encode compresses data with c. CompressionNone returns data unchanged.
func Encode(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var buf bytes.Buffer
		zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}
