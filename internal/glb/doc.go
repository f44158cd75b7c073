// Package glb reads and writes the framing of the binary glTF container.
//
// A container is a 12-byte header (magic "glTF", version, total length)
// followed by length-prefixed chunks. All integers are little-endian.
// Chunk payloads are padded to four-byte boundaries: JSON chunks with
// ASCII spaces, every other chunk with zero bytes.
//
// The package knows nothing about the JSON document or buffer layout;
// it only validates and produces the byte framing.
package glb
