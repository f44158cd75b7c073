// Package fields keeps the JSON object members a record type does not
// model, in document order, and merges them back when the record is
// marshaled.
//
// Records marshal through a local alias type so that the known members
// are handled by encoding/json and only the remainder lives here:
//
//	func (b Buffer) MarshalJSON() ([]byte, error) {
//		type plain Buffer
//		return fields.Marshal(plain(b), b.Extra)
//	}
package fields

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"cogentcore.org/core/base/ordmap"
)

// Fields is an insertion-ordered set of raw JSON members.
// The zero value is empty and ready to use.
type Fields struct {
	m *ordmap.Map[string, json.RawMessage]
}

// Len returns the number of members.
func (f Fields) Len() int {
	if f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Keys returns the member names in order.
func (f Fields) Keys() []string {
	if f.m == nil {
		return nil
	}
	return f.m.Keys()
}

// Get returns the raw value of a member.
func (f Fields) Get(key string) (json.RawMessage, bool) {
	if f.m == nil {
		return nil, false
	}
	return f.m.ValueByKeyTry(key)
}

// Decode unmarshals the member named key into v.
// It reports false when the member is absent.
func (f Fields) Decode(key string, v any) (bool, error) {
	raw, ok := f.Get(key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// Set marshals v and stores it under key, keeping the position of an
// existing member.
func (f *Fields) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	f.SetRaw(key, raw)
	return nil
}

// SetRaw stores an already-encoded value under key.
func (f *Fields) SetRaw(key string, raw json.RawMessage) {
	if f.m == nil {
		f.m = ordmap.New[string, json.RawMessage]()
	}
	f.m.Add(key, raw)
}

// Delete removes a member, reporting whether it was present.
func (f *Fields) Delete(key string) bool {
	if f.m == nil {
		return false
	}
	return f.m.DeleteKey(key)
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if f.m == nil {
		return Fields{}
	}
	c := Fields{m: ordmap.New[string, json.RawMessage]()}
	for _, kv := range f.m.Order {
		c.m.Add(kv.Key, bytes.Clone(kv.Value))
	}
	return c
}

// Marshal encodes known as a JSON object and appends the members of extra
// whose names are not fields of known. known must be a struct (or pointer
// to one) without a MarshalJSON method, usually a local alias of the record.
func Marshal(known any, extra Fields) ([]byte, error) {
	obj, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if extra.Len() == 0 {
		return obj, nil
	}
	if len(obj) < 2 || obj[0] != '{' || obj[len(obj)-1] != '}' {
		return nil, errors.New("fields: known value did not encode as an object")
	}

	taken := knownKeys(reflect.TypeOf(known))
	var buf bytes.Buffer
	buf.Grow(len(obj) + 64*extra.Len())
	buf.Write(obj[:len(obj)-1])
	empty := len(bytes.TrimSpace(obj[1:len(obj)-1])) == 0
	for _, kv := range extra.m.Order {
		if taken.has(kv.Key) {
			continue
		}
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, kv.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", kv.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Unmarshal decodes data into known (a pointer to a struct) and returns
// every member whose name is not a field of known, in document order.
func Unmarshal(data []byte, known any) (Fields, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return Fields{}, err
	}

	taken := knownKeys(reflect.TypeOf(known))
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return Fields{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Fields{}, errors.New("fields: expected a JSON object")
	}

	var extra Fields
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Fields{}, err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Fields{}, err
		}
		if taken.has(key) {
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return Fields{}, err
		}
		extra.SetRaw(key, compact.Bytes())
	}
	return extra, nil
}

var keyCache sync.Map // reflect.Type -> keySet

// keySet holds member names folded to lower case.
type keySet map[string]struct{}

// has reports whether key names a member, ignoring case the way
// encoding/json does when decoding.
func (k keySet) has(key string) bool {
	_, ok := k[strings.ToLower(key)]
	return ok
}

// knownKeys returns the JSON member names encoding/json uses for t.
func knownKeys(t reflect.Type) keySet {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if v, ok := keyCache.Load(t); ok {
		return v.(keySet) //nolint:forcetypeassert // cache only stores this type
	}
	keys := make(keySet)
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				continue
			case "":
				name = f.Name
			}
			keys[strings.ToLower(name)] = struct{}{}
		}
	}
	keyCache.Store(t, keys)
	return keys
}
