// Package datauri encodes and decodes RFC 2397 data URIs.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Scheme is the prefix shared by every data URI.
	Scheme = "data:"

	// OctetStream is the media type used for buffer payloads.
	OctetStream = "application/octet-stream"

	// BufferHeader prefixes every buffer data URI produced by this module.
	BufferHeader = Scheme + OctetStream + ";base64,"
)

// ErrMalformed is returned when a data URI cannot be decoded.
var ErrMalformed = errors.New("gltf: malformed data uri")

// Is reports whether uri uses the data scheme.
func Is(uri string) bool {
	return len(uri) >= len(Scheme) && strings.EqualFold(uri[:len(Scheme)], Scheme)
}

// Encode returns a base64 data URI for data with the given media type.
// An empty media type encodes as application/octet-stream.
func Encode(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = OctetStream
	}
	var b strings.Builder
	b.Grow(len(Scheme) + len(mediaType) + len(";base64,") + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(Scheme)
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Decode returns the media type and payload of a data URI.
//
// The media type is returned without parameters and is empty when the URI
// does not declare one. Payloads without the ";base64" marker are
// percent-decoded.
func Decode(uri string) (mediaType string, data []byte, err error) {
	if !Is(uri) {
		return "", nil, fmt.Errorf("%w: missing %q scheme", ErrMalformed, Scheme)
	}
	meta, payload, ok := strings.Cut(uri[len(Scheme):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing ',' separator", ErrMalformed)
	}

	params := strings.Split(meta, ";")
	mediaType = strings.TrimSpace(params[0])
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if !isBase64 {
		text, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return mediaType, []byte(text), nil
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some exporters drop the trailing padding.
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if rawErr != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}
	return mediaType, data, nil
}

// MediaType returns the media type declared by a data URI without decoding
// its payload.
func MediaType(uri string) string {
	if !Is(uri) {
		return ""
	}
	meta, _, _ := strings.Cut(uri[len(Scheme):], ",")
	mt, _, _ := strings.Cut(meta, ";")
	return strings.TrimSpace(mt)
}
