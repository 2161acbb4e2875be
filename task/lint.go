package task

import (
	"log/slog"
	"regexp"

	"github.com/sahilm/fuzzy"
)

// Unresolved is a placeholder left in a rendered document.
type Unresolved struct {
	Name string
	// Suggestion is the closest known variable name, if any.
	Suggestion string
}

func (u Unresolved) attr() slog.Attr {
	attrs := []any{slog.String("name", u.Name)}
	if u.Suggestion != "" {
		attrs = append(attrs, slog.String("did_you_mean", u.Suggestion))
	}

	return slog.Group("placeholder", attrs...)
}

const placeholderName = `([A-Za-z_][A-Za-z0-9_.-]*)`

// Lint returns the distinct placeholders delimited by prefix and suffix that
// remain in text, in order of first appearance, each with the closest name
// from known.
func Lint(text, prefix, suffix string, known []string) []Unresolved {
	pattern := regexp.MustCompile(
		regexp.QuoteMeta(prefix) + placeholderName + regexp.QuoteMeta(suffix),
	)

	var (
		out  []Unresolved
		seen = map[string]bool{}
	)

	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[name] {
			continue
		}

		seen[name] = true

		out = append(out, Unresolved{Name: name, Suggestion: suggest(name, known)})
	}

	return out
}

// suggest returns the best fuzzy match for name among known. Abbreviations
// of a known name are tried first, then known names contained in name.
func suggest(name string, known []string) string {
	if matches := fuzzy.Find(name, known); len(matches) > 0 {
		return matches[0].Str
	}

	var best fuzzy.Match

	found := false

	for _, k := range known {
		matches := fuzzy.Find(k, []string{name})
		if len(matches) > 0 && (!found || matches[0].Score > best.Score) {
			best, found = fuzzy.Match{Str: k, Score: matches[0].Score}, true
		}
	}

	return best.Str
}
