package fsys

import (
	"bytes"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = "utf-8"

var bom = []byte{0xEF, 0xBB, 0xBF}

// Codec converts between file bytes and text in a named encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// LookupCodec returns the Codec for the WHATWG encoding label name.
// An empty name selects [DefaultEncoding].
func LookupCodec(name string) (Codec, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return Codec{}, ErrEncoding.Wrap(err).With(slog.String("encoding", name))
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}

	return Codec{name: canonical, enc: enc}, nil
}

// Name returns the canonical name of the encoding.
func (c Codec) Name() string {
	if c.name == "" {
		return DefaultEncoding
	}

	return c.name
}

func (c Codec) utf8() bool {
	return c.enc == nil || c.enc == unicode.UTF8
}

// Decode converts b to text. A leading UTF-8 byte order mark is dropped.
func (c Codec) Decode(b []byte) (string, error) {
	if !c.utf8() {
		var err error

		if b, err = c.enc.NewDecoder().Bytes(b); err != nil {
			return "", err
		}
	}

	return string(bytes.TrimPrefix(b, bom)), nil
}

// Encode converts text to bytes.
func (c Codec) Encode(text string) ([]byte, error) {
	if c.utf8() {
		return []byte(text), nil
	}

	return c.enc.NewEncoder().Bytes([]byte(text))
}
