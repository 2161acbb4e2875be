package vars

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
)

// Default placeholder delimiters.
const (
	DefaultPrefix = "@@"
	DefaultSuffix = ""
)

// Var is a normalized variable: its textual value and the compiled pattern
// matching its placeholder.
type Var struct {
	Name    string
	Text    string
	Pattern *regexp.Regexp
}

// Normalized is the textual form of a [Map], ready for substitution.
type Normalized struct {
	vars []Var
	raw  Map
}

// Vars returns the normalized variables in order.
func (n Normalized) Vars() []Var { return n.vars }

// Raw returns the Map n was normalized from.
func (n Normalized) Raw() Map { return n.raw }

// Len returns the number of variables in n.
func (n Normalized) Len() int { return len(n.vars) }

// Text returns the textual values of n as a Map, in order.
func (n Normalized) Text() Map {
	m := make(Map, len(n.vars))
	for i, v := range n.vars {
		m[i] = Entry{Name: v.Name, Value: v.Text}
	}

	return m
}

// Lookup returns the textual value of name.
func (n Normalized) Lookup(name string) (string, bool) {
	for _, v := range n.vars {
		if v.Name == name {
			return v.Text, true
		}
	}

	return "", false
}

// Replace substitutes every variable of n into text, in order. Each pattern
// is applied once over the whole text; replaced values are not rescanned for
// the same pattern.
func (n Normalized) Replace(text string) string {
	for _, v := range n.vars {
		text = v.Pattern.ReplaceAllLiteralString(text, v.Text)
	}

	return text
}

// Resolver normalizes variable mappings and owns the memo of compiled
// placeholder patterns. A Resolver is safe for concurrent use.
type Resolver struct {
	prefix   string
	suffix   string
	expander Expander
	patterns sync.Map // name -> *regexp.Regexp
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithDelimiters sets the text surrounding a name to form its placeholder.
func WithDelimiters(prefix, suffix string) Option {
	return func(r *Resolver) {
		r.prefix, r.suffix = prefix, suffix
	}
}

// WithExpander sets the expander applied to string values.
func WithExpander(e Expander) Option {
	return func(r *Resolver) {
		if e != nil {
			r.expander = e
		}
	}
}

// NewResolver returns a Resolver using [DefaultPrefix], [DefaultSuffix], and
// no value expansion unless overridden by opts.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		prefix:   DefaultPrefix,
		suffix:   DefaultSuffix,
		expander: Identity,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Prefix returns the placeholder prefix.
func (r *Resolver) Prefix() string { return r.prefix }

// Suffix returns the placeholder suffix.
func (r *Resolver) Suffix() string { return r.suffix }

// Pattern returns the memoized pattern matching the placeholder of name.
func (r *Resolver) Pattern(name string) *regexp.Regexp {
	if p, ok := r.patterns.Load(name); ok {
		return p.(*regexp.Regexp)
	}

	// Racing goroutines compile the same pattern; either result is fine.
	p, _ := r.patterns.LoadOrStore(name,
		regexp.MustCompile(regexp.QuoteMeta(r.prefix+name+r.suffix)))

	return p.(*regexp.Regexp)
}

// Normalize converts m to its textual form.
func (r *Resolver) Normalize(ctx context.Context, m Map) (Normalized, error) {
	n := Normalized{vars: make([]Var, 0, len(m)), raw: m}

	for _, e := range m {
		text, err := r.text(ctx, e.Value)
		if err != nil {
			return Normalized{}, ErrSerialize.Wrap(err).
				With(slog.String("name", e.Name))
		}

		n.vars = append(n.vars, Var{
			Name:    e.Name,
			Text:    text,
			Pattern: r.Pattern(e.Name),
		})
	}

	return n, nil
}

// text returns the textual form of a single value.
func (r *Resolver) text(ctx context.Context, v any) (string, error) {
	switch val := v.(type) {
	case string:
		return r.expander.Expand(ctx, val)

	case json.Number:
		return val.String(), nil

	default:
		b, err := encodeJSON(val)
		if err != nil {
			return "", fmt.Errorf("%T: %w", v, err)
		}

		return string(b), nil
	}
}
