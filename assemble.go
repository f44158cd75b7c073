package gltf

import "github.com/meigma/gltf/internal/sizing"

// assembly is the result of packing every buffer view into one blob.
type assembly struct {
	blob []byte

	// views are rewritten copies of the document's views, in order.
	// Views whose data could not be read are copied unchanged.
	views []*BufferView

	// skipped holds the indices of views left unpacked.
	skipped []int
}

type bufferRead struct {
	data []byte
	err  error
}

// assemble concatenates the bytes of each buffer view, padding each to a
// four-byte boundary, and returns views pointing into the result through
// buffer 0. The document is not modified.
func (d *Document) assemble() assembly {
	a := assembly{views: make([]*BufferView, len(d.BufferViews))}
	reads := make(map[int]bufferRead)

	for i, view := range d.BufferViews {
		rewritten := *view
		a.views[i] = &rewritten

		r, ok := reads[view.Buffer]
		if !ok {
			r.data, r.err = d.BufferData(view.Buffer)
			reads[view.Buffer] = r
		}
		if r.err != nil {
			d.warn(WarningUnresolvedSource, "buffer view %d left unpacked: %v", i, r.err)
			a.skipped = append(a.skipped, i)
			continue
		}
		if !sizing.InRange(view.ByteOffset, view.ByteLength, len(r.data)) {
			d.warn(WarningUnresolvedSource,
				"buffer view %d left unpacked: range [%d,%d) exceeds %d bytes of buffer %d",
				i, view.ByteOffset, view.ByteOffset+view.ByteLength, len(r.data), view.Buffer)
			a.skipped = append(a.skipped, i)
			continue
		}

		offset := len(a.blob)
		a.blob = append(a.blob, r.data[view.ByteOffset:view.ByteOffset+view.ByteLength]...)
		a.blob = append(a.blob, make([]byte, sizing.Padding(len(a.blob)))...)

		rewritten.Buffer = 0
		rewritten.ByteOffset = offset
	}

	d.log().Debug("assembled blob",
		"views", len(d.BufferViews),
		"skipped", len(a.skipped),
		"bytes", len(a.blob))
	return a
}
