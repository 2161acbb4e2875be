package vars

// This file defines the builtins visible to value expressions. They are built
// fresh for every ExprExpander so expressions cannot leak state across runs.

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ardnew/mung"
)

func builtins() map[string]any {
	return map[string]any{
		"env":   os.Getenv,
		"cwd":   getCwd,
		"today": today,

		"path": map[string]any{
			"abs":  pathAbs,
			"join": filepath.Join,
			"rel":  pathRel,
			"base": filepath.Base,
			"dir":  filepath.Dir,
			"ext":  filepath.Ext,
		},

		"file": map[string]any{
			"exists": fileExists,
			"isDir":  fileIsDir,
			"isFile": fileIsRegular,
		},

		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

// today formats the current local date with a Go time layout.
func today(layout ...string) string {
	l := time.DateOnly
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}

	return time.Now().Format(l)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return filepath.Join(from, to)
	}

	return filepath.ToSlash(p)
}

// mungPrefix prepends items to the path list subject, removing duplicates.
func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

// mungPrefixIf is like mungPrefix, keeping only items accepted by predicate.
func mungPrefixIf(
	subject string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
