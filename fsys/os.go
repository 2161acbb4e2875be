package fsys

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/natefinch/atomic"
)

// OS is an [FS] backed by the host file system.
type OS struct {
	codec Codec
}

// NewOS returns an OS reading and writing text in the named encoding.
func NewOS(encoding string) (*OS, error) {
	codec, err := LookupCodec(encoding)
	if err != nil {
		return nil, err
	}

	return &OS{codec: codec}, nil
}

// Encoding returns the canonical name of the configured encoding.
func (o *OS) Encoding() string { return o.codec.Name() }

// Exists implements [FS].
func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// IsFile implements [FS].
func (o *OS) IsFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// Read implements [FS].
func (o *OS) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", ErrRead.Wrap(err).With(slog.String("path", path))
	}

	text, err := o.codec.Decode(b)
	if err != nil {
		return "", ErrRead.Wrap(err).With(
			slog.String("path", path),
			slog.String("encoding", o.codec.Name()),
		)
	}

	return text, nil
}

// Glob implements [FS]. Patterns support doublestar syntax ("**").
func (o *OS) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, ErrGlob.Wrap(err).With(slog.String("pattern", pattern))
	}

	slices.Sort(matches)

	return matches, nil
}

// Write implements [FS].
func (o *OS) Write(path, text string) error {
	b, err := o.codec.Encode(text)
	if err != nil {
		return ErrWrite.Wrap(err).With(
			slog.String("path", path),
			slog.String("encoding", o.codec.Name()),
		)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ErrWrite.Wrap(err).With(slog.String("path", path))
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	return nil
}
