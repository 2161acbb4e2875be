package hook

import (
	"context"
	"log/slog"
	"path/filepath"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/includer/vars"
)

// exprEnv is the environment of an [Expr] hook.
type exprEnv struct {
	Contents string         `expr:"contents"`
	Locals   map[string]any `expr:"locals"`
	FilePath string         `expr:"filePath"`
	FileName string         `expr:"fileName"`
	FileExt  string         `expr:"fileExt"`
}

// Expr is a hook evaluating an expression that yields the new contents,
// for example:
//
//	fileExt == ".txt" ? trim(contents) : contents
type Expr struct {
	source  string
	program *vm.Program
}

// NewExpr compiles source into an Expr hook. The expression must yield a
// string.
func NewExpr(source string) (*Expr, error) {
	program, err := expr.Compile(source,
		expr.Env(exprEnv{}),
		expr.AsKind(reflect.String),
	)
	if err != nil {
		return nil, ErrHook.Wrap(err).With(
			slog.String("hook", "expr"),
			slog.String("source", source),
		)
	}

	return &Expr{source: source, program: program}, nil
}

// Process implements render.ContentHook.
func (e *Expr) Process(
	_ context.Context, contents string, locals vars.Map, filePath string,
) (string, error) {
	out, err := expr.Run(e.program, exprEnv{
		Contents: contents,
		Locals:   locals.Native(),
		FilePath: filePath,
		FileName: filepath.Base(filePath),
		FileExt:  filepath.Ext(filePath),
	})
	if err != nil {
		return "", ErrHook.Wrap(err).With(
			slog.String("hook", "expr"),
			slog.String("source", e.source),
			slog.String("file", filePath),
		)
	}

	s, _ := out.(string)

	return s, nil
}
