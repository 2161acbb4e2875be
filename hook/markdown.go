package hook

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ardnew/includer/vars"
)

// Markdown converts the contents of included Markdown files to HTML. Files
// with other extensions pass through unchanged.
type Markdown struct {
	md   goldmark.Markdown
	exts []string
}

// NewMarkdown returns a Markdown hook for files ending in .md or .markdown.
// Raw HTML in the source is kept.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		exts: []string{".md", ".markdown"},
	}
}

// Process implements render.ContentHook.
func (m *Markdown) Process(
	_ context.Context, contents string, _ vars.Map, filePath string,
) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if !slices.Contains(m.exts, ext) {
		return contents, nil
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(contents), &buf); err != nil {
		return "", ErrHook.Wrap(err).With(
			slog.String("hook", "markdown"),
			slog.String("file", filePath),
		)
	}

	return buf.String(), nil
}
