// Package archive implements keyed, default-aware object archiving.
//
// An Archive is an order-insensitive bag of named values. Writers omit
// values that equal their documented default; readers probe with Contains
// and fall back to the default for absent keys, so an empty archive decodes
// to a fully defaulted object. The wire form is JSON.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Archive is a keyed bag of values.
type Archive map[string]any

// New returns an empty archive.
func New() Archive {
	return make(Archive)
}

// Contains reports whether a value was explicitly written for key.
func (a Archive) Contains(key string) bool {
	_, ok := a[key]
	return ok
}

// Put writes a value unconditionally.
func (a Archive) Put(key string, v any) {
	a[key] = v
}

// SetBool writes v unless it equals def.
func (a Archive) SetBool(key string, v, def bool) {
	if v != def {
		a[key] = v
	}
}

// SetInt writes v unless it equals def.
func (a Archive) SetInt(key string, v, def int) {
	if v != def {
		a[key] = v
	}
}

// SetString writes v unless it equals def.
func (a Archive) SetString(key string, v, def string) {
	if v != def {
		a[key] = v
	}
}

// SetChild writes a nested archive unless it is empty.
func (a Archive) SetChild(key string, child Archive) {
	if len(child) > 0 {
		a[key] = child
	}
}

// SetList writes a list of nested archives unless it is empty.
func (a Archive) SetList(key string, list []Archive) {
	if len(list) > 0 {
		a[key] = list
	}
}

// Bool reads a bool, returning def when the key is absent or not a bool.
func (a Archive) Bool(key string, def bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return def
}

// Int reads an integer, returning def when the key is absent or not
// numeric. JSON decoding widths are normalized here.
func (a Archive) Int(key string, def int) int {
	v, ok := a[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return def
}

// String reads a string, returning def when the key is absent or not a
// string.
func (a Archive) String(key, def string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return def
}

// Value reads a raw value and whether it was present.
func (a Archive) Value(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Child reads a nested archive. Nested objects produced by Unmarshal are
// converted on access.
func (a Archive) Child(key string) (Archive, bool) {
	switch v := a[key].(type) {
	case Archive:
		return v, true
	case map[string]any:
		return Archive(v), true
	}
	return nil, false
}

// List reads a list of nested archives. Entries that are not objects are
// skipped.
func (a Archive) List(key string) []Archive {
	raw, ok := a[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []Archive:
		return v
	case []any:
		out := make([]Archive, 0, len(v))
		for _, e := range v {
			switch c := e.(type) {
			case Archive:
				out = append(out, c)
			case map[string]any:
				out = append(out, Archive(c))
			}
		}
		return out
	}
	return nil
}

// Marshal encodes the archive to its wire form.
func Marshal(a Archive) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("archive: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes an archive from its wire form. Numbers are kept as
// json.Number so integer values survive the round trip exactly.
func Unmarshal(data []byte) (Archive, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var a Archive
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("archive: unmarshal: %w", err)
	}
	return a, nil
}
