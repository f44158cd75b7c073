package gltf

import (
	"bytes"
	"image"
	_ "image/gif"  // register decoder for image dimensions
	_ "image/jpeg" // register decoder for image dimensions
	_ "image/png"  // register decoder for image dimensions

	digest "github.com/opencontainers/go-digest"
	_ "golang.org/x/image/bmp"  // register decoder for image dimensions
	_ "golang.org/x/image/webp" // register decoder for image dimensions
)

// BufferInfo describes one buffer and its resolved data.
type BufferInfo struct {
	Index      int
	Name       string
	Format     BufferFormat
	ByteLength int

	// Size is the number of bytes that resolved, zero when Err is set.
	Size   int
	Digest digest.Digest
	Err    error
}

// ImageInfo describes one image and its resolved data.
type ImageInfo struct {
	Index    int
	Name     string
	Format   ImageFormat
	MimeType string

	// Width and Height are zero when the encoding is not recognized.
	Width  int
	Height int

	// Size is the number of bytes that resolved, zero when Err is set.
	Size   int
	Digest digest.Digest
	Err    error
}

// InspectBuffers resolves every buffer and reports its format, size and
// content digest. Resolution failures are recorded per buffer.
func (d *Document) InspectBuffers() []BufferInfo {
	infos := make([]BufferInfo, len(d.Buffers))
	for i, b := range d.Buffers {
		info := BufferInfo{
			Index:      i,
			Name:       b.Name,
			Format:     b.format(),
			ByteLength: b.ByteLength,
		}
		if data, err := d.BufferData(i); err != nil {
			info.Err = err
		} else {
			info.Size = len(data)
			info.Digest = digest.FromBytes(data)
		}
		infos[i] = info
	}
	return infos
}

// InspectImages resolves every image and reports its format, media type,
// dimensions, size and content digest. Resolution failures are recorded per image.
func (d *Document) InspectImages() []ImageInfo {
	infos := make([]ImageInfo, len(d.Images))
	for i, img := range d.Images {
		info := ImageInfo{
			Index:    i,
			Name:     img.Name,
			Format:   img.format(),
			MimeType: img.MimeType,
		}
		if data, mediaType, err := d.ImageData(i); err != nil {
			info.Err = err
		} else {
			info.MimeType = mediaType
			info.Size = len(data)
			info.Digest = digest.FromBytes(data)
			if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
				info.Width, info.Height = cfg.Width, cfg.Height
			}
		}
		infos[i] = info
	}
	return infos
}
