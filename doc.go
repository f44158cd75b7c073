// Package gltf reads, writes and converts glTF 2.0 assets.
//
// A [Document] holds the JSON scene graph together with the optional
// binary blob that backs buffers without a URI. Buffers, buffer views,
// accessors and images are modeled explicitly; every other member of the
// scene graph is carried through untouched in [Document.Extra].
//
// # Storage representations
//
// Buffer data lives in one of three places (see [BufferFormat]): an inline
// data URI, an external .bin file next to the document, or the document's
// binary blob. Images (see [ImageFormat]) live in a data URI, an external
// image file, or a buffer view. [Document.ConvertBuffers] and
// [Document.ConvertImages] move data between representations.
//
// # Binary container
//
// [DecodeBinary] and [Document.EncodeBinary] read and write the single-file
// binary container (GLB). Encoding packs every buffer view into one
// four-byte aligned blob without modifying the in-memory document.
//
// # Quick Start
//
//	doc, err := gltf.Load("scene.gltf")
//	if err != nil {
//	    return err
//	}
//	if err := doc.ConvertImages(gltf.ImageBufferView); err != nil {
//	    return err
//	}
//	err = doc.Save("scene.glb")
//
// Conditions that risk data loss but do not stop an operation (unknown
// chunks, dangling references after a buffer view is removed, and so on)
// are reported as [Warning] values to the function set with
// [WithWarningFunc] and logged through the configured [slog.Logger].
package gltf
