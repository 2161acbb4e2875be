package render

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ardnew/includer/errs"
	"github.com/ardnew/includer/fsys"
	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/vars"
)

// Engine expands documents according to a [Config]. An Engine holds the
// normalized globals and pattern memo of a single run and is safe for
// concurrent use by multiple documents.
type Engine struct {
	cfg       Config
	fs        fsys.FS
	logger    log.Logger
	resolver  *vars.Resolver
	globals   vars.Normalized
	backend   Backend
	directive *regexp.Regexp
	docroot   string
	stats     *stats
}

// Option configures an [Engine].
type Option func(*Engine)

// WithFS sets the file collaborator. The default reads the host file system
// as UTF-8.
func WithFS(fs fsys.FS) Option {
	return func(e *Engine) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// WithLogger sets the logger receiving warnings and debug traces.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithBackend replaces the templating backend used when
// [Config.UseMustache] is set.
func WithBackend(b Backend) Option {
	return func(e *Engine) {
		if b != nil {
			e.backend = b
		}
	}
}

// WithExpander sets the expander applied to string variable values.
func WithExpander(x vars.Expander) Option {
	return func(e *Engine) {
		e.resolver = vars.NewResolver(
			vars.WithDelimiters(e.cfg.Prefix, e.cfg.Suffix),
			vars.WithExpander(x),
		)
	}
}

// NewEngine returns an Engine for cfg. The globals of cfg are normalized
// once, here.
func NewEngine(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Docroot == "" {
		cfg.Docroot = DefaultDocroot
	}

	docroot, err := filepath.Abs(cfg.Docroot)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		logger:    log.Default(),
		backend:   Mustache{},
		directive: directivePattern(cfg.Prefix, cfg.Suffix),
		docroot:   docroot,
		stats:     &stats{},
		resolver: vars.NewResolver(
			vars.WithDelimiters(cfg.Prefix, cfg.Suffix),
		),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.fs == nil {
		if e.fs, err = fsys.NewOS(fsys.DefaultEncoding); err != nil {
			return nil, err
		}
	}

	if e.globals, err = e.resolver.Normalize(ctx, cfg.Globals); err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "options",
		slog.String("prefix", cfg.Prefix),
		slog.String("suffix", cfg.Suffix),
		slog.Any("globals", cfg.Globals.Names()),
		slog.String("includes_dir", cfg.IncludesDir),
		slog.String("docroot", cfg.Docroot),
		slog.Bool("mustache", cfg.UseMustache),
		slog.Bool("always_unescaped", cfg.AlwaysUnescaped),
		slog.Int("max_depth", cfg.MaxDepth),
	)

	return e, nil
}

// Config returns the configuration of e.
func (e *Engine) Config() Config { return e.cfg }

// FS returns the file collaborator of e.
func (e *Engine) FS() fsys.FS { return e.fs }

// Resolver returns the variable resolver of e.
func (e *Engine) Resolver() *vars.Resolver { return e.resolver }

// Stats returns a snapshot of the counters of e.
func (e *Engine) Stats() Stats { return e.stats.snapshot() }

// Warn logs a warning and counts it in the statistics of e.
func (e *Engine) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	e.stats.warnings.Add(1)
	e.logger.WarnContext(ctx, msg, attrs...)
}

// Substitute runs the substitution pass over text: the templating backend
// with the raw locals, then each local placeholder, then each global
// placeholder. Substituted values are not rescanned.
func (e *Engine) Substitute(ctx context.Context, text string, locals vars.Map) (string, error) {
	normalized, err := e.resolver.Normalize(ctx, locals)
	if err != nil {
		return "", err
	}

	if e.cfg.UseMustache {
		if text, err = e.backend.Render(text, locals, e.cfg.AlwaysUnescaped); err != nil {
			return "", err
		}
	}

	e.stats.substitutions.Add(1)

	return e.globals.Replace(normalized.Replace(text)), nil
}

// DocrootFor returns the docroot local for a document in dir: the path from
// dir to the configured docroot with forward slashes and a trailing slash, or
// empty if dir is the docroot.
func (e *Engine) DocrootFor(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	rel, err := filepath.Rel(abs, e.docroot)
	if err != nil || rel == "." {
		return ""
	}

	return filepath.ToSlash(rel) + "/"
}

// Process flattens the top-level document text read from sourcePath.
func (e *Engine) Process(ctx context.Context, text, sourcePath string) (string, error) {
	dir := filepath.Dir(sourcePath)
	locals := vars.Map{{Name: "docroot", Value: e.DocrootFor(dir)}}

	e.logger.DebugContext(ctx, "locals",
		slog.String("source", sourcePath),
		slog.Any("locals", locals),
	)

	text, err := e.Substitute(ctx, text, locals)
	if err != nil {
		return "", err
	}

	e.stats.documents.Add(1)

	return e.expand(ctx, text, dir, []string{sourcePath})
}

// ExpandIncludes resolves every include directive in text, relative to
// workingDir, until none remain.
func (e *Engine) ExpandIncludes(ctx context.Context, text, workingDir string) (string, error) {
	return e.expand(ctx, text, workingDir, []string{workingDir})
}

func (e *Engine) expand(ctx context.Context, text, workingDir string, chain []string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		d, ok, err := nextDirective(e.directive, text)
		if err != nil {
			return "", errs.Wrap(err).With(chainAttr(chain))
		}

		if !ok {
			return text, nil
		}

		contents, err := e.include(ctx, d, workingDir, chain)
		if err != nil {
			return "", err
		}

		text = strings.Replace(text, d.Match, contents, 1)
	}
}

// include returns the expanded contents of every file matched by d.
func (e *Engine) include(
	ctx context.Context, d Directive, workingDir string, chain []string,
) (string, error) {
	path := e.resolvePath(ctx, d.Path, workingDir)

	locals := d.Locals
	if !d.HasLocal("docroot") {
		locals = locals.With("docroot", e.DocrootFor(filepath.Dir(path)))
	}

	if e.fs.Exists(path) {
		e.logger.DebugContext(ctx, "including", slog.String("path", path))
	}

	e.logger.DebugContext(ctx, "locals", slog.Any("locals", locals))

	// the hook sees every local in its substituted text form
	normalized, err := e.resolver.Normalize(ctx, locals)
	if err != nil {
		return "", err
	}

	hookLocals := normalized.Text()

	files, err := e.fs.Glob(path)
	if err != nil {
		return "", ErrReadInclude.Wrap(err).With(chainAttr(chain))
	}

	if len(files) == 0 {
		e.Warn(ctx, "include file(s) not found", slog.String("path", path))
	}

	var contents string

	for i, file := range files {
		// chain starts with the top-level document
		next := append(chain[:len(chain):len(chain)], file)
		if e.cfg.MaxDepth > 0 && len(next)-1 > e.cfg.MaxDepth {
			return "", ErrMaxDepthExceeded.With(
				slog.Int("max_depth", e.cfg.MaxDepth),
				chainAttr(next),
			)
		}

		text, err := e.fs.Read(file)
		if err != nil {
			return "", ErrReadInclude.Wrap(err).With(chainAttr(next))
		}

		e.stats.includes.Add(1)

		contents += text
		if i != len(files)-1 {
			contents += "\n"
		}

		// The accumulated contents are processed again for every file.
		if contents, err = e.Substitute(ctx, contents, locals); err != nil {
			return "", err
		}

		if contents, err = e.expand(ctx, contents, filepath.Dir(file), next); err != nil {
			return "", err
		}

		if hook := e.cfg.ProcessIncludeContents; hook != nil {
			if contents, err = hook.Process(ctx, contents, hookLocals, file); err != nil {
				return "", ErrContentHook.Wrap(err).With(chainAttr(next))
			}
		}
	}

	return contents, nil
}

// resolvePath returns the absolute include path or glob for path.
func (e *Engine) resolvePath(ctx context.Context, path, workingDir string) string {
	if filepath.IsAbs(path) {
		if e.cfg.IncludesDir != "" {
			e.Warn(ctx, "includes-dir works only with relative paths",
				slog.String("path", path),
				slog.String("includes_dir", e.cfg.IncludesDir),
			)
		}

		return filepath.Clean(path)
	}

	base := workingDir
	if e.cfg.IncludesDir != "" {
		base = e.cfg.IncludesDir
	}

	abs, err := filepath.Abs(filepath.Join(base, path))
	if err != nil {
		return filepath.Join(base, path)
	}

	return abs
}

func chainAttr(chain []string) slog.Attr {
	return slog.String("chain", strings.Join(chain, " -> "))
}
