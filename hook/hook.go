package hook

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/includer/errs"
	"github.com/ardnew/includer/render"
	"github.com/ardnew/includer/vars"
)

//nolint:gochecknoglobals
var (
	ErrHook        = errs.New("content hook failed")
	ErrUnknownHook = errs.New("unknown content hook")
)

//nolint:gochecknoglobals
var registry = map[string]func() render.ContentHook{
	"markdown": func() render.ContentHook { return NewMarkdown() },
	"chomp":    func() render.ContentHook { return render.ContentHookFunc(chomp) },
	"trim":     func() render.ContentHook { return render.ContentHookFunc(trim) },
}

// Names returns the names accepted by [Lookup] in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Lookup returns a new instance of the hook registered as name.
func Lookup(name string) (render.ContentHook, error) {
	newHook, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrUnknownHook.With(
			slog.String("name", name),
			slog.String("known", strings.Join(Names(), ",")),
		)
	}

	return newHook(), nil
}

// Chain returns a hook running each of hooks in order, feeding the output of
// one to the next. Nil hooks are skipped. Chain returns nil if no hooks
// remain.
func Chain(hooks ...render.ContentHook) render.ContentHook {
	hooks = slices.DeleteFunc(slices.Clone(hooks), func(h render.ContentHook) bool {
		return h == nil
	})

	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	}

	return render.ContentHookFunc(func(
		ctx context.Context, contents string, locals vars.Map, filePath string,
	) (string, error) {
		var err error

		for _, h := range hooks {
			if contents, err = h.Process(ctx, contents, locals, filePath); err != nil {
				return "", err
			}
		}

		return contents, nil
	})
}

// chomp removes a single trailing line ending.
func chomp(_ context.Context, contents string, _ vars.Map, _ string) (string, error) {
	contents = strings.TrimSuffix(contents, "\n")

	return strings.TrimSuffix(contents, "\r"), nil
}

func trim(_ context.Context, contents string, _ vars.Map, _ string) (string, error) {
	return strings.TrimSpace(contents), nil
}
