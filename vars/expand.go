package vars

import (
	"context"
	"html"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expander rewrites a string value before it is substituted.
type Expander interface {
	Expand(ctx context.Context, s string) (string, error)
}

// ExpanderFunc adapts a function to the [Expander] interface.
type ExpanderFunc func(ctx context.Context, s string) (string, error)

// Expand implements [Expander].
func (f ExpanderFunc) Expand(ctx context.Context, s string) (string, error) {
	return f(ctx, s)
}

// Identity is an [Expander] returning its input unchanged.
//
//nolint:gochecknoglobals
var Identity Expander = ExpanderFunc(func(_ context.Context, s string) (string, error) {
	return s, nil
})

// Expression delimiters recognized by [ExprExpander].
const (
	OpenInterpolate = "<%="
	OpenEscape      = "<%-"
	Close           = "%>"
)

// ExprExpander evaluates expression segments embedded in string values.
// Compiled programs are cached by source, so an ExprExpander should be shared
// across a run. It is safe for concurrent use.
type ExprExpander struct {
	env      map[string]any
	programs sync.Map // source -> *vm.Program
}

// NewExprExpander returns an ExprExpander whose expressions can reference
// the values of data by name, in addition to the builtins.
func NewExprExpander(data Map) *ExprExpander {
	env := builtins()
	maps.Copy(env, data.Native())

	return &ExprExpander{env: env}
}

// Expand implements [Expander].
func (e *ExprExpander) Expand(ctx context.Context, s string) (string, error) {
	if !strings.Contains(s, "<%") {
		return s, nil
	}

	var sb strings.Builder

	for {
		start, escape := nextSegment(s)
		if start < 0 {
			break
		}

		end := strings.Index(s[start+len(OpenInterpolate):], Close)
		if end < 0 {
			break
		}

		end += start + len(OpenInterpolate)
		source := strings.TrimSpace(s[start+len(OpenInterpolate) : end])

		out, err := e.eval(ctx, source)
		if err != nil {
			return "", err
		}

		if escape {
			out = html.EscapeString(out)
		}

		sb.WriteString(s[:start])
		sb.WriteString(out)
		s = s[end+len(Close):]
	}

	sb.WriteString(s)

	return sb.String(), nil
}

// nextSegment returns the index of the next expression opener in s and
// whether it requests HTML escaping.
func nextSegment(s string) (int, bool) {
	i := strings.Index(s, OpenInterpolate)
	j := strings.Index(s, OpenEscape)

	switch {
	case j >= 0 && (i < 0 || j < i):
		return j, true
	default:
		return i, false
	}
}

func (e *ExprExpander) eval(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", nil
	}

	program, err := e.compile(source)
	if err != nil {
		return "", ErrExpand.Wrap(err).With(slog.String("expression", source))
	}

	result, err := expr.Run(program, e.env)
	if err != nil {
		return "", ErrExpand.Wrap(err).With(slog.String("expression", source))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch v := result.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		b, err := encodeJSON(v)
		if err != nil {
			return "", ErrExpand.Wrap(err).With(slog.String("expression", source))
		}

		return string(b), nil
	}
}

func (e *ExprExpander) compile(source string) (*vm.Program, error) {
	if p, ok := e.programs.Load(source); ok {
		return p.(*vm.Program), nil
	}

	program, err := expr.Compile(source, expr.Env(e.env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	e.programs.Store(source, program)

	return program, nil
}
