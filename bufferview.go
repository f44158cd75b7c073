package gltf

import (
	"fmt"
	"slices"
)

// RemoveBufferView deletes buffer view index and returns it.
//
// References to later views from accessors (including sparse indices and
// values) and images are decremented. References to the removed view are
// left as they are and reported as dangling. When the view lived in the
// blob, its bytes are cut out of the blob and the offsets of views that
// followed it shift down.
func (d *Document) RemoveBufferView(index int) (BufferView, error) {
	return d.removeBufferView(index, nil)
}

// removeBufferView is RemoveBufferView, except that owner's own reference
// to the view is not reported as dangling.
func (d *Document) removeBufferView(index int, owner *Image) (BufferView, error) {
	if index < 0 || index >= len(d.BufferViews) {
		return BufferView{}, fmt.Errorf("buffer view %d: %w", index, ErrIndexOutOfRange)
	}
	removed := *d.BufferViews[index]
	d.BufferViews = slices.Delete(d.BufferViews, index, index+1)

	renumber := func(ref *int, format string, args ...any) {
		switch {
		case *ref == index:
			d.warn(WarningDanglingReference, "%s references removed buffer view %d",
				fmt.Sprintf(format, args...), index)
		case *ref > index:
			*ref--
		}
	}
	for i, a := range d.Accessors {
		if a.BufferView != nil {
			renumber(a.BufferView, "accessor %d", i)
		}
		if a.Sparse != nil {
			renumber(&a.Sparse.Indices.BufferView, "accessor %d sparse indices", i)
			renumber(&a.Sparse.Values.BufferView, "accessor %d sparse values", i)
		}
	}
	for i, img := range d.Images {
		if img == owner || img.BufferView == nil {
			continue
		}
		renumber(img.BufferView, "image %d", i)
	}

	d.compact(removed)

	d.log().Debug("removed buffer view",
		"index", index,
		"buffer", removed.Buffer,
		"byteLength", removed.ByteLength)
	return removed, nil
}

// compact cuts the bytes of a removed view out of the blob when the view
// belonged to the blob buffer, shifting the views that followed it.
func (d *Document) compact(removed BufferView) {
	if removed.Buffer < 0 || removed.Buffer >= len(d.Buffers) {
		return
	}
	buffer := d.Buffers[removed.Buffer]
	if buffer.format() != BufferBinaryBlob || len(d.blob) == 0 {
		return
	}

	start := min(max(removed.ByteOffset, 0), len(d.blob))
	end := min(max(removed.ByteOffset+removed.ByteLength, start), len(d.blob))
	n := end - start
	if n == 0 {
		return
	}

	for i, v := range d.BufferViews {
		if v.Buffer != removed.Buffer {
			continue
		}
		switch {
		case v.ByteOffset >= end:
			v.ByteOffset -= n
			if v.ByteStride != nil {
				d.warn(WarningStrideCompaction, "buffer view %d has byteStride %d and moved by %d bytes",
					i, *v.ByteStride, n)
			}
		case v.ByteOffset+v.ByteLength > start:
			// Keep only the bytes outside the removed range.
			lo, hi := v.ByteOffset, v.ByteOffset+v.ByteLength
			lo = cut(lo, start, end)
			hi = cut(hi, start, end)
			d.warn(WarningOverlap, "buffer view %d overlapped removed range [%d,%d) and now covers [%d,%d)",
				i, start, end, lo, hi)
			v.ByteOffset = lo
			v.ByteLength = hi - lo
		}
	}

	d.blob = slices.Concat(d.blob[:start], d.blob[end:])
	buffer.ByteLength = len(d.blob)
}

// cut maps a blob position onto the blob with [start,end) removed.
func cut(pos, start, end int) int {
	switch {
	case pos <= start:
		return pos
	case pos < end:
		return start
	default:
		return pos - (end - start)
	}
}
