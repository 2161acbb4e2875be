package render

import (
	"context"

	"github.com/ardnew/includer/vars"
)

// Default configuration values.
const (
	DefaultDocroot  = "."
	DefaultMaxDepth = 100
)

// ContentHook post-processes the expanded contents of an included file.
// It receives the include's local variables and the path of the file whose
// contents were last appended.
type ContentHook interface {
	Process(ctx context.Context, contents string, locals vars.Map, filePath string) (string, error)
}

// ContentHookFunc adapts a function to the [ContentHook] interface.
type ContentHookFunc func(ctx context.Context, contents string, locals vars.Map, filePath string) (string, error)

// Process implements [ContentHook].
func (f ContentHookFunc) Process(
	ctx context.Context, contents string, locals vars.Map, filePath string,
) (string, error) {
	return f(ctx, contents, locals, filePath)
}

// Config holds the options of a run. It is not modified after an [Engine]
// is created.
type Config struct {
	Prefix  string
	Suffix  string
	Globals vars.Map

	// IncludesDir, when set, is the base of every relative include path
	// instead of the directory of the including file.
	IncludesDir string
	// Docroot is the directory that the injected docroot local points to.
	Docroot string

	UseMustache     bool
	AlwaysUnescaped bool

	ProcessIncludeContents ContentHook

	// MaxDepth bounds include nesting. Zero or less disables the bound.
	MaxDepth int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:      vars.DefaultPrefix,
		Suffix:      vars.DefaultSuffix,
		Globals:     vars.Map{},
		Docroot:     DefaultDocroot,
		UseMustache: true,
		MaxDepth:    DefaultMaxDepth,
	}
}
