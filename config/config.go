package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/includer/errs"
	"github.com/ardnew/includer/vars"
)

// FileName is the base name of the default configuration file.
const FileName = "config.yaml"

// GlobalsKey is the key of the global variables in a configuration file.
const GlobalsKey = "globals"

//nolint:gochecknoglobals
var (
	ErrRead   = errs.New("read configuration")
	ErrParse  = errs.New("parse configuration")
	ErrGlobal = errs.New("invalid global definition")
)

// File is a parsed configuration file.
type File struct {
	// Path is the file the configuration was read from, if any.
	Path string
	// Options maps flag names to their configured values in text form.
	Options map[string]any
	// Globals are the global variables in file order.
	Globals vars.Map
}

// Load reads the configuration file at path. A missing file yields an empty
// configuration.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{Path: path, Options: map[string]any{}}, nil
	}

	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("file", path))
	}

	f, err := Parse(data)
	if err != nil {
		return nil, errs.Wrap(err).With(slog.String("file", path))
	}

	f.Path = path

	return f, nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*File, error) {
	doc, err := decodeOrdered(data)
	if err != nil {
		return nil, err
	}

	f := &File{Options: map[string]any{}, Globals: vars.Map{}}

	for _, item := range doc {
		key := fmt.Sprint(item.Key)

		if key == GlobalsKey {
			m, ok := item.Value.(yaml.MapSlice)
			if !ok && item.Value != nil {
				return nil, ErrParse.With(
					slog.String("key", key),
					slog.String("issue", "not a mapping"),
				)
			}

			f.Globals = toMap(m)

			continue
		}

		if v, ok := optionValue(item.Value); ok {
			f.Options[key] = v
		}
	}

	return f, nil
}

// LoadGlobals reads global variables from a JSON or YAML file. JSON files
// keep the literal text of numbers.
func LoadGlobals(path string) (vars.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("file", path))
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		m, err := vars.ParseJSON(data)
		if err != nil {
			return nil, errs.Wrap(err).With(slog.String("file", path))
		}

		return m, nil
	}

	doc, err := decodeOrdered(data)
	if err != nil {
		return nil, errs.Wrap(err).With(slog.String("file", path))
	}

	return toMap(doc), nil
}

// ParseGlobal splits a "name=value" definition.
func ParseGlobal(def string) (name, value string, err error) {
	name, value, ok := strings.Cut(def, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", ErrGlobal.With(slog.String("definition", def))
	}

	return strings.TrimSpace(name), value, nil
}

// Merge returns base with every entry of each overlay applied in order.
func Merge(base vars.Map, overlays ...vars.Map) vars.Map {
	out := append(vars.Map{}, base...)

	for _, o := range overlays {
		for _, e := range o {
			out = out.With(e.Name, e.Value)
		}
	}

	return out
}

// Resolver returns a [kong.Resolver] supplying flag values from f.
func (f *File) Resolver() kong.Resolver {
	if f == nil {
		return resolver{}
	}

	return resolver(f.Options)
}

// resolver implements [kong.Resolver] over configured option values.
type resolver map[string]any

// Validate implements [kong.Resolver].
func (r resolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r resolver) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

func decodeOrdered(data []byte) (yaml.MapSlice, error) {
	var doc yaml.MapSlice

	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, ErrParse.Wrap(err)
	}

	return doc, nil
}

// toMap converts an ordered YAML mapping into a [vars.Map].
func toMap(m yaml.MapSlice) vars.Map {
	out := make(vars.Map, 0, len(m))
	for _, item := range m {
		out = out.With(fmt.Sprint(item.Key), toValue(item.Value))
	}

	return out
}

func toValue(v any) any {
	switch val := v.(type) {
	case yaml.MapSlice:
		return toMap(val)

	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = toValue(x)
		}

		return out

	default:
		return v
	}
}

// optionValue converts a configured value into the text kong parses for a
// flag. Sequences become comma-separated lists. Mappings are not flags.
func optionValue(v any) (any, bool) {
	switch val := v.(type) {
	case nil, yaml.MapSlice:
		return nil, false

	case string:
		return val, true

	case bool:
		return strconv.FormatBool(val), true

	case []any:
		parts := make([]string, 0, len(val))
		for _, x := range val {
			s, ok := optionValue(x)
			if !ok {
				return nil, false
			}

			parts = append(parts, s.(string))
		}

		return strings.Join(parts, ","), true

	default:
		return fmt.Sprint(val), true
	}
}
