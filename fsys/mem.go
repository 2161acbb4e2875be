package fsys

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Mem is an in-memory [FS]. Paths are cleaned before use; directories exist
// implicitly when a file below them exists. Mem is safe for concurrent use.
type Mem struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMem returns a Mem holding files, keyed by path.
func NewMem(files map[string]string) *Mem {
	m := &Mem{files: make(map[string]string, len(files))}
	for path, text := range files {
		m.files[filepath.Clean(path)] = text
	}

	return m
}

// Files returns a copy of the current contents of m.
func (m *Mem) Files() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.files)
}

// Exists implements [FS].
func (m *Mem) Exists(path string) bool {
	path = filepath.Clean(path)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.files[path]; ok {
		return true
	}

	dir := path + string(filepath.Separator)
	if path == string(filepath.Separator) {
		dir = path
	}

	for name := range m.files {
		if strings.HasPrefix(name, dir) {
			return true
		}
	}

	return false
}

// IsFile implements [FS].
func (m *Mem) IsFile(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[filepath.Clean(path)]

	return ok
}

// Read implements [FS].
func (m *Mem) Read(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.files[filepath.Clean(path)]
	if !ok {
		return "", ErrRead.Wrap(ErrNotExist).With(slog.String("path", path))
	}

	return text, nil
}

// Glob implements [FS].
func (m *Mem) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, ErrGlob.With(slog.String("pattern", pattern))
	}

	pattern = filepath.Clean(pattern)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []string

	for name := range m.files {
		if ok, _ := doublestar.PathMatch(pattern, name); ok {
			matches = append(matches, name)
		}
	}

	slices.Sort(matches)

	return matches, nil
}

// Write implements [FS].
func (m *Mem) Write(path, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[filepath.Clean(path)] = text

	return nil
}
