package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used to construct the configuration and cache
// directory paths.
//
// It is the base name of the executable file with its extension removed,
// unless one of these rules applies:
//   - "__debug_bin<N>" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): the dot prefix is removed
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			return Name
		}

		return id
	},
)

// ConfigDir returns the per-user configuration directory of the command.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the per-user cache directory of the command.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir returns the directory reported by lookup, falling back to the named
// subdirectory of the user's home, and finally to the working directory.
func userDir(lookup func() (string, error), home string) string {
	if dir, err := lookup(); err == nil {
		return dir
	}

	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, home)
	}

	if dir, err := os.Getwd(); err == nil {
		return dir
	}

	return "."
}
