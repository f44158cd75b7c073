package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/meigma/gltf/internal/sizing"
)

const (
	// Magic identifies a binary glTF container.
	Magic = "glTF"

	// Version is the container version produced by Write.
	Version = 2

	// HeaderSize is the size of the container header in bytes.
	HeaderSize = 12

	// ChunkHeaderSize is the size of a chunk header (length + type) in bytes.
	ChunkHeaderSize = 8
)

// Sentinel errors for container framing.
var (
	// ErrMalformed is returned when the bytes are not a well-formed container.
	ErrMalformed = errors.New("gltf: malformed container")

	// ErrSizeOverflow is returned when a length does not fit the 32-bit fields.
	ErrSizeOverflow = errors.New("gltf: size overflow")
)

// ChunkType identifies the payload of a chunk.
type ChunkType uint32

const (
	// ChunkJSON holds the UTF-8 JSON document ("JSON").
	ChunkJSON ChunkType = 0x4E4F534A

	// ChunkBIN holds the binary buffer ("BIN\x00").
	ChunkBIN ChunkType = 0x004E4942
)

// String returns the four ASCII bytes of the type with NULs trimmed,
// or a hex form when the bytes are not printable.
func (t ChunkType) String() string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(t))
	s := bytes.TrimRight(b[:], "\x00")
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(t))
		}
	}
	return string(s)
}

// PadByte returns the byte used to pad payloads of this chunk type.
func (t ChunkType) PadByte() byte {
	if t == ChunkJSON {
		return ' '
	}
	return 0
}

// Header is the fixed container header.
type Header struct {
	Version uint32
	Length  uint32
}

// Chunk is a single chunk of the container.
type Chunk struct {
	Type ChunkType
	Data []byte
}

// IsContainer reports whether data starts with the container magic.
func IsContainer(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}

// Read parses the header and every chunk up to the declared total length.
//
// Chunk payloads are copied, so the returned chunks do not alias data.
// Bytes after the declared length are ignored. Read does not interpret
// the version or chunk types; that is left to the caller.
func Read(data []byte) (Header, []Chunk, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformed, len(data))
	}
	if !IsContainer(data) {
		return h, nil, fmt.Errorf("%w: bad magic %q", ErrMalformed, data[:len(Magic)])
	}
	h.Version = binary.LittleEndian.Uint32(data[4:8])
	h.Length = binary.LittleEndian.Uint32(data[8:12])
	if h.Length < HeaderSize {
		return h, nil, fmt.Errorf("%w: declared length %d is shorter than the header", ErrMalformed, h.Length)
	}
	if uint64(h.Length) > uint64(len(data)) {
		return h, nil, fmt.Errorf("%w: declared length %d exceeds %d available bytes", ErrMalformed, h.Length, len(data))
	}

	end := int(h.Length)
	var chunks []Chunk
	for off := HeaderSize; off < end; {
		if end-off < ChunkHeaderSize {
			return h, nil, fmt.Errorf("%w: truncated chunk header at offset %d", ErrMalformed, off)
		}
		length := binary.LittleEndian.Uint32(data[off : off+4])
		typ := ChunkType(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		off += ChunkHeaderSize
		if uint64(length) > uint64(end-off) {
			return h, nil, fmt.Errorf("%w: chunk %s of %d bytes at offset %d exceeds declared length", ErrMalformed, typ, length, off)
		}
		chunks = append(chunks, Chunk{
			Type: typ,
			Data: bytes.Clone(data[off : off+int(length)]),
		})
		off += int(length)
	}
	return h, chunks, nil
}

// Write writes a container holding chunks in order.
//
// Each payload is padded to a multiple of four bytes with the chunk type's
// pad byte; the padding is written explicitly and never read from the
// payload slice. Write returns the number of bytes written.
func Write(w io.Writer, version uint32, chunks []Chunk) (int64, error) {
	total := uint32(HeaderSize)
	for _, c := range chunks {
		padded, err := sizing.ToUint32(sizing.Align4(len(c.Data)), ErrSizeOverflow)
		if err != nil {
			return 0, err
		}
		var ok bool
		if total, ok = sizing.AddUint32(total, ChunkHeaderSize); !ok {
			return 0, ErrSizeOverflow
		}
		if total, ok = sizing.AddUint32(total, padded); !ok {
			return 0, ErrSizeOverflow
		}
	}

	cw := &countingWriter{w: w}
	var hdr [HeaderSize]byte
	copy(hdr[:4], Magic)
	binary.LittleEndian.PutUint32(hdr[4:8], version)
	binary.LittleEndian.PutUint32(hdr[8:12], total)
	if _, err := cw.Write(hdr[:]); err != nil {
		return cw.n, err
	}

	var pad [3]byte
	for _, c := range chunks {
		n := sizing.Padding(len(c.Data))
		var chdr [ChunkHeaderSize]byte
		binary.LittleEndian.PutUint32(chdr[0:4], uint32(len(c.Data)+n)) //nolint:gosec // checked above
		binary.LittleEndian.PutUint32(chdr[4:8], uint32(c.Type))
		if _, err := cw.Write(chdr[:]); err != nil {
			return cw.n, err
		}
		if _, err := cw.Write(c.Data); err != nil {
			return cw.n, err
		}
		if n > 0 {
			fill := c.Type.PadByte()
			for i := range n {
				pad[i] = fill
			}
			if _, err := cw.Write(pad[:n]); err != nil {
				return cw.n, err
			}
		}
	}
	return cw.n, nil
}

// Encode returns the container bytes for chunks.
func Encode(version uint32, chunks []Chunk) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, version, chunks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
