package fsys

import "github.com/ardnew/includer/errs"

// FS is the file collaborator of the renderer.
type FS interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// IsFile reports whether path names an existing regular file.
	IsFile(path string) bool
	// Read returns the decoded contents of the file at path.
	Read(path string) (string, error)
	// Glob returns the regular files matching pattern in lexical order.
	Glob(pattern string) ([]string, error)
	// Write encodes text and replaces the file at path, creating parent
	// directories as needed.
	Write(path, text string) error
}

//nolint:gochecknoglobals
var (
	ErrRead     = errs.New("read file")
	ErrWrite    = errs.New("write file")
	ErrGlob     = errs.New("invalid glob pattern")
	ErrEncoding = errs.New("unsupported encoding")
	ErrNotExist = errs.New("file does not exist")
)
