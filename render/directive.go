package render

import (
	"log/slog"
	"regexp"

	"github.com/ardnew/includer/vars"
)

// Directive is a parsed include directive.
type Directive struct {
	// Match is the exact text of the directive in the document.
	Match string
	// Path is the include path or glob as written.
	Path string
	// Locals are the variables given in the directive's JSON literal.
	Locals vars.Map
}

// HasLocal reports whether the directive's literal defines name.
func (d Directive) HasLocal(name string) bool { return d.Locals.Has(name) }

const directiveBody = `include\(\s*["'](.*?)["'](,\s*(\{[\s\S]*?\})){0,1}\s*\)`

// directivePattern returns the pattern matching an include directive
// surrounded by prefix and suffix.
func directivePattern(prefix, suffix string) *regexp.Regexp {
	return regexp.MustCompile(
		regexp.QuoteMeta(prefix) + directiveBody + regexp.QuoteMeta(suffix),
	)
}

// nextDirective returns the first directive in text, or false if text
// contains none.
func nextDirective(pattern *regexp.Regexp, text string) (Directive, bool, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Directive{}, false, nil
	}

	d := Directive{Match: m[0], Path: m[1], Locals: vars.Map{}}

	if m[3] != "" {
		locals, err := vars.ParseJSON([]byte(m[3]))
		if err != nil {
			return Directive{}, true, ErrLocalsJSON.Wrap(err).With(
				slog.String("directive", m[0]),
			)
		}

		d.Locals = locals
	}

	return d, true, nil
}
