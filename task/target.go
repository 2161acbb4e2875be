package task

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/includer/fsys"
)

// exclude marks a source pattern removing earlier matches.
const exclude = "!"

// Target is a source document and the path its output is written to. An empty
// Dest writes to the standard output.
type Target struct {
	Src  string
	Dest string
}

// Mapping describes how source patterns map to output paths.
type Mapping struct {
	// Sources are glob patterns, applied in order. A pattern starting with
	// "!" removes the files it matches from those selected so far.
	Sources []string
	// Cwd, when set, is the directory patterns are relative to. Output paths
	// are then formed from the path of each source relative to Cwd.
	Cwd string
	// Dest is the output file, or a directory if it ends in a path
	// separator.
	Dest string
}

// IsDir reports whether dest names a directory.
func IsDir(dest string) bool {
	return strings.HasSuffix(dest, "/") ||
		strings.HasSuffix(dest, string(filepath.Separator))
}

// warner receives warnings about source patterns.
type warner interface {
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
}

// Targets expands m into the list of documents to process, in pattern order.
func (m Mapping) Targets(ctx context.Context, fs fsys.FS, w warner) ([]Target, error) {
	var (
		order []string
		rel   = map[string]string{}
	)

	for _, pattern := range m.Sources {
		negate := strings.HasPrefix(pattern, exclude)
		glob := filepath.FromSlash(strings.TrimPrefix(pattern, exclude))

		if m.Cwd != "" && !filepath.IsAbs(glob) {
			glob = filepath.Join(m.Cwd, glob)
		}

		matches, err := fs.Glob(glob)
		if err != nil {
			return nil, ErrSourcePattern.Wrap(err).With(slog.String("pattern", pattern))
		}

		if negate {
			drop := make(map[string]bool, len(matches))
			for _, match := range matches {
				drop[match] = true
			}

			kept := order[:0]
			for _, src := range order {
				if drop[src] {
					delete(rel, src)

					continue
				}

				kept = append(kept, src)
			}

			order = kept

			continue
		}

		if len(matches) == 0 {
			if !hasMeta(glob) && fs.Exists(glob) && !fs.IsFile(glob) {
				w.Warn(ctx, "ignoring non-file matching source", slog.String("source", pattern))
			} else {
				w.Warn(ctx, "source file(s) not found", slog.String("source", pattern))
			}

			continue
		}

		for _, match := range matches {
			if _, ok := rel[match]; ok {
				continue
			}

			rel[match] = m.relative(match)
			order = append(order, match)
		}
	}

	if m.Dest == "" && len(order) > 1 {
		return nil, ErrStdoutMultiple.With(slog.Int("sources", len(order)))
	}

	targets := make([]Target, len(order))
	for i, src := range order {
		targets[i] = Target{Src: src, Dest: m.destFor(rel[src])}
	}

	return targets, nil
}

// relative returns the path of src used to form its output path.
func (m Mapping) relative(src string) string {
	if m.Cwd == "" {
		return src
	}

	r, err := filepath.Rel(m.Cwd, src)
	if err != nil {
		return src
	}

	return r
}

func (m Mapping) destFor(rel string) string {
	if m.Dest == "" || !IsDir(m.Dest) {
		return m.Dest
	}

	return filepath.Join(m.Dest, rel)
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
