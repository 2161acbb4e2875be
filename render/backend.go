package render

import (
	"github.com/cbroglie/mustache"

	"github.com/ardnew/includer/vars"
)

// Backend renders template syntax in a document using local variables.
type Backend interface {
	Render(text string, locals vars.Map, unescaped bool) (string, error)
}

// Mustache is the default [Backend].
type Mustache struct{}

// Render implements [Backend]. Missing variables render as empty text.
func (Mustache) Render(text string, locals vars.Map, unescaped bool) (string, error) {
	out, err := mustache.RenderRaw(text, unescaped, locals.Native())
	if err != nil {
		return "", ErrTemplate.Wrap(err)
	}

	return out, nil
}
