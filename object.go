package codebook

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// Object is a JSON object that remembers key insertion order. Decoders under
// source/ produce *Object for every JSON/YAML mapping so collections keep the
// order of their source documents. It also serves as the untyped value for
// opaque payloads (classification reports, model parameters, metadata).
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty Object with room for n keys.
func NewObject(n int) *Object {
	return &Object{keys: make([]string, 0, n), vals: make(map[string]any, n)}
}

// ObjectFrom copies m into an Object. Go maps carry no order, so keys are
// sorted to keep results deterministic.
func ObjectFrom(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := NewObject(len(m))
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// AsObject views v as an Object. It accepts *Object, Object and
// map[string]any; anything else reports false.
func AsObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil, false
		}
		return t, true
	case Object:
		return &t, true
	case map[string]any:
		return ObjectFrom(t), true
	default:
		return nil, false
	}
}

// Set stores v under k. A new key is appended; an existing key keeps its
// position and takes the new value.
func (o *Object) Set(k string, v any) {
	if o.vals == nil {
		o.vals = map[string]any{}
	}
	if _, ok := o.vals[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.vals[k] = v
}

// Get returns the value stored under k.
func (o *Object) Get(k string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[k]
	return v, ok
}

// Has reports whether k is present (a null value counts as present).
func (o *Object) Has(k string) bool {
	_, ok := o.Get(k)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (o *Object) Range(fn func(k string, v any) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// MarshalJSON emits the entries in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
