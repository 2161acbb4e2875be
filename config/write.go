package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/ardnew/includer/errs"
	"github.com/ardnew/includer/vars"
)

//nolint:gochecknoglobals
var ErrWrite = errs.New("write configuration")

// Marshal encodes options in order, followed by globals under [GlobalsKey].
func Marshal(options yaml.MapSlice, globals vars.Map) ([]byte, error) {
	doc := append(yaml.MapSlice{}, options...)

	if len(globals) > 0 {
		doc = append(doc, yaml.MapItem{Key: GlobalsKey, Value: fromMap(globals)})
	}

	b, err := yaml.MarshalWithOptions(doc, yaml.IndentSequence(true))
	if err != nil {
		return nil, ErrWrite.Wrap(err)
	}

	return b, nil
}

// Write atomically replaces the file at path with data, creating its
// directory if needed.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("file", path))
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("file", path))
	}

	return nil
}

func fromMap(m vars.Map) yaml.MapSlice {
	out := make(yaml.MapSlice, len(m))
	for i, e := range m {
		out[i] = yaml.MapItem{Key: e.Name, Value: fromValue(e.Value)}
	}

	return out
}

func fromValue(v any) any {
	switch val := v.(type) {
	case vars.Map:
		return fromMap(val)

	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = fromValue(x)
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
