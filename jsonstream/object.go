package jsonstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Object is a JSON object that remembers the order of its members.
// Member values are kept as raw JSON so that unknown content round-trips untouched.
type Object struct {
	values map[string]json.RawMessage
	keys   []string
}

var (
	ErrNotObject = errors.New("JSON value is not an object")
)

func NewObject() *Object {
	return &Object{values: make(map[string]json.RawMessage)}
}

// ParseObject decodes data, which must hold a single JSON object.
// Non-nil returned error wraps [ErrNotObject] when data is valid JSON of another kind.
func ParseObject(data []byte) (*Object, error) {
	o := NewObject()

	if err := o.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	t, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if !isObjectStart(t) {
		return fmt.Errorf("%w: found %v", ErrNotObject, t)
	}

	o.values = make(map[string]json.RawMessage)
	o.keys = o.keys[:0]

	for dec.More() {
		t, err = dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read JSON object key: %w", err)
		}

		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in place of an object key", t)
		}

		var raw json.RawMessage

		if err = dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read the value of %q: %w", key, err)
		}

		if _, seen := o.values[key]; !seen {
			o.keys = append(o.keys, key)
		}

		o.values[key] = raw
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("failed to read the end of JSON object: %w", err)
	}

	if dec.More() {
		return errors.New("unexpected data after the JSON object")
	}

	return nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')

	for i, key := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}

		k, err := marshal(key)
		if err != nil {
			return nil, err
		}

		b.Write(k)
		b.WriteByte(':')
		b.Write(o.values[key])
	}

	b.WriteByte('}')

	return b.Bytes(), nil
}

// Indent renders the object the way npm writes package.json: two-space indentation and a trailing
// newline.
func (o *Object) Indent() ([]byte, error) {
	compact, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer

	if err = json.Indent(&b, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]

	return ok
}

func (o *Object) Raw(key string) (json.RawMessage, bool) {
	raw, ok := o.values[key]

	return raw, ok
}

// Get decodes the member at key into v. It reports false when the member is absent.
func (o *Object) Get(key string, v any) (bool, error) {
	raw, ok := o.values[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("failed to decode %q: %w", key, err)
	}

	return true, nil
}

// String returns the member at key if it is a JSON string, and "" otherwise.
func (o *Object) String(key string) string {
	var s string

	if ok, err := o.Get(key, &s); !ok || err != nil {
		return ""
	}

	return s
}

// Object returns the member at key as an Object. An absent member yields a new empty Object.
// Non-nil returned error wraps [ErrNotObject].
func (o *Object) Object(key string) (*Object, error) {
	raw, ok := o.values[key]
	if !ok {
		return NewObject(), nil
	}

	child, err := ParseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", key, err)
	}

	return child, nil
}

// marshal is json.Marshal without HTML escaping, so "&&" in scripts stays readable.
func marshal(v any) ([]byte, error) {
	var b bytes.Buffer

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(b.Bytes(), []byte{'\n'}), nil
}

// Set replaces the member at key, keeping its position, or appends it.
func (o *Object) Set(key string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = raw

	return nil
}

// SetDefault sets the member only when it is absent.
func (o *Object) SetDefault(key string, v any) (bool, error) {
	if o.Has(key) {
		return false, nil
	}

	return true, o.Set(key, v)
}

func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}

	delete(o.values, key)

	for i := range o.keys {
		if o.keys[i] == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)

			break
		}
	}
}

func (o *Object) Clone() *Object {
	c := &Object{values: make(map[string]json.RawMessage, len(o.values)), keys: o.Keys()}

	for k, v := range o.values {
		c.values[k] = append(json.RawMessage(nil), v...)
	}

	return c
}
