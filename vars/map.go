package vars

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
)

// Entry is a single named value of a [Map].
type Entry struct {
	Name  string
	Value any
}

// Map is an ordered mapping from variable names to values.
//
// Values are strings, json.Number, float64, int, bool, nil, []any, or nested
// Maps. Nested objects are kept as Maps so that their serialized key order
// matches the source.
type Map []Entry

// Get returns the value of name.
func (m Map) Get(name string) (any, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Value, true
		}
	}

	return nil, false
}

// Has reports whether name is defined in m.
func (m Map) Has(name string) bool {
	_, ok := m.Get(name)

	return ok
}

// With returns a copy of m with name set to value. An existing entry keeps
// its position; a new entry is appended.
func (m Map) With(name string, value any) Map {
	out := make(Map, len(m), len(m)+1)
	copy(out, m)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value

			return out
		}
	}

	return append(out, Entry{Name: name, Value: value})
}

// Names returns the names of m in order.
func (m Map) Names() []string {
	names := make([]string, len(m))
	for i, e := range m {
		names[i] = e.Name
	}

	return names
}

// Native converts m to a map[string]any, recursively converting nested Maps,
// for consumers that look values up by name.
func (m Map) Native() map[string]any {
	out := make(map[string]any, len(m))
	for _, e := range m {
		out[e.Name] = native(e.Value)
	}

	return out
}

func native(v any) any {
	switch val := v.(type) {
	case Map:
		return val.Native()

	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = native(x)
		}

		return out

	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}

		if f, err := val.Float64(); err == nil {
			return f
		}

		return val.String()

	default:
		return v
	}
}

// MarshalJSON encodes m as a JSON object in entry order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := encodeJSON(e.Name)
		if err != nil {
			return nil, err
		}

		val, err := encodeJSON(e.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// encodeJSON encodes v without escaping HTML characters, matching the output
// of JSON.stringify.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// ParseJSON decodes a JSON object literal into a Map, keeping key order.
// Numbers are kept as json.Number. Duplicate keys keep the position of their
// first occurrence and the value of their last.
func ParseJSON(data []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, ErrParseJSON.Wrap(err)
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrParseJSON.With(slog.String("got", string(data)))
	}

	m, err := decodeObject(dec)
	if err != nil {
		return nil, ErrParseJSON.Wrap(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrParseJSON.With(slog.String("issue", "trailing data after object"))
	}

	return m, nil
}

// decodeObject decodes the members of an object whose opening brace has
// already been consumed.
func decodeObject(dec *json.Decoder) (Map, error) {
	m := Map{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("object key is not a string")
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		m = m.With(key, val)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch d {
	case '{':
		return decodeObject(dec)

	case '[':
		arr := []any{}

		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}

			arr = append(arr, v)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return arr, nil

	default:
		return nil, errors.New("unexpected delimiter " + d.String())
	}
}
