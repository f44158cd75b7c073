package gltf

import "github.com/meigma/gltf/internal/fields"

// Fields holds the JSON members of an object that are not modeled by its
// Go type (extensions, extras, and members of future versions). They are
// written back after the modeled members, in their original order.
type Fields = fields.Fields

// Asset is the metadata about the glTF asset.
type Asset struct {
	Version    string `json:"version"`
	Generator  string `json:"generator,omitempty"`
	Copyright  string `json:"copyright,omitempty"`
	MinVersion string `json:"minVersion,omitempty"`

	Extra Fields `json:"-"`
}

// Buffer points to binary data.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
	Name       string `json:"name,omitempty"`

	Extra Fields `json:"-"`

	// Format is classified from URI when the document is decoded and kept
	// current by conversions. It is not serialized.
	Format BufferFormat `json:"-"`
}

// BufferView is a contiguous byte range of a buffer.
type BufferView struct {
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"`
	ByteLength int    `json:"byteLength"`
	ByteStride *int   `json:"byteStride,omitempty"`
	Target     *int   `json:"target,omitempty"`
	Name       string `json:"name,omitempty"`

	Extra Fields `json:"-"`
}

// Accessor is a typed view into a buffer view.
type Accessor struct {
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float64 `json:"max,omitempty"`
	Min           []float64 `json:"min,omitempty"`
	Sparse        *Sparse   `json:"sparse,omitempty"`
	Name          string    `json:"name,omitempty"`

	Extra Fields `json:"-"`
}

// Sparse stores displaced accessor elements.
type Sparse struct {
	Count   int           `json:"count"`
	Indices SparseIndices `json:"indices"`
	Values  SparseValues  `json:"values"`

	Extra Fields `json:"-"`
}

// SparseIndices locates the indices of displaced elements.
type SparseIndices struct {
	BufferView    int `json:"bufferView"`
	ByteOffset    int `json:"byteOffset,omitempty"`
	ComponentType int `json:"componentType"`

	Extra Fields `json:"-"`
}

// SparseValues locates the values of displaced elements.
type SparseValues struct {
	BufferView int `json:"bufferView"`
	ByteOffset int `json:"byteOffset,omitempty"`

	Extra Fields `json:"-"`
}

// Image is texture data referenced by a URI or stored in a buffer view.
type Image struct {
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
	Name       string `json:"name,omitempty"`

	Extra Fields `json:"-"`

	// Format is classified from URI and BufferView when the document is
	// decoded and kept current by conversions. It is not serialized.
	Format ImageFormat `json:"-"`
}

// Index returns a pointer to i, for optional index members.
func Index(i int) *int {
	return &i
}

// MarshalJSON implements json.Marshaler.
func (a Asset) MarshalJSON() ([]byte, error) {
	type plain Asset
	return fields.Marshal(plain(a), a.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type plain Asset
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*a = Asset(p)
	a.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Buffer) MarshalJSON() ([]byte, error) {
	type plain Buffer
	return fields.Marshal(plain(b), b.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Buffer) UnmarshalJSON(data []byte) error {
	type plain Buffer
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*b = Buffer(p)
	b.Extra = extra
	b.Format = ClassifyBuffer(b.URI)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v BufferView) MarshalJSON() ([]byte, error) {
	type plain BufferView
	return fields.Marshal(plain(v), v.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *BufferView) UnmarshalJSON(data []byte) error {
	type plain BufferView
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*v = BufferView(p)
	v.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Accessor) MarshalJSON() ([]byte, error) {
	type plain Accessor
	return fields.Marshal(plain(a), a.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Accessor) UnmarshalJSON(data []byte) error {
	type plain Accessor
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*a = Accessor(p)
	a.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Sparse) MarshalJSON() ([]byte, error) {
	type plain Sparse
	return fields.Marshal(plain(s), s.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Sparse) UnmarshalJSON(data []byte) error {
	type plain Sparse
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*s = Sparse(p)
	s.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s SparseIndices) MarshalJSON() ([]byte, error) {
	type plain SparseIndices
	return fields.Marshal(plain(s), s.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SparseIndices) UnmarshalJSON(data []byte) error {
	type plain SparseIndices
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*s = SparseIndices(p)
	s.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s SparseValues) MarshalJSON() ([]byte, error) {
	type plain SparseValues
	return fields.Marshal(plain(s), s.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SparseValues) UnmarshalJSON(data []byte) error {
	type plain SparseValues
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*s = SparseValues(p)
	s.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (img Image) MarshalJSON() ([]byte, error) {
	type plain Image
	return fields.Marshal(plain(img), img.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (img *Image) UnmarshalJSON(data []byte) error {
	type plain Image
	var p plain
	extra, err := fields.Unmarshal(data, &p)
	if err != nil {
		return err
	}
	*img = Image(p)
	img.Extra = extra
	img.Format = ClassifyImage(img)
	return nil
}
