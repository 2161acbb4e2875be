package task

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/includer/errs"
	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/render"
)

// DefaultJobs is the default number of documents processed concurrently.
const DefaultJobs = 1

// Runner processes the targets of a [Mapping] with a shared [render.Engine].
type Runner struct {
	engine  *render.Engine
	mapping Mapping
	jobs    int
	lint    bool
	stdout  io.Writer
	logger  log.Logger
}

// Option configures a [Runner].
type Option func(*Runner)

// WithJobs sets the number of documents processed concurrently.
func WithJobs(n int) Option {
	return func(r *Runner) { r.jobs = max(n, 1) }
}

// WithLint enables warnings for placeholders left in the output.
func WithLint(enable bool) Option {
	return func(r *Runner) { r.lint = enable }
}

// WithStdout sets the writer receiving output of targets without a
// destination.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.stdout = w
		}
	}
}

// WithLogger sets the logger receiving progress messages.
func WithLogger(l log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner returns a Runner processing the targets of m with engine.
func NewRunner(engine *render.Engine, m Mapping, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		mapping: m,
		jobs:    DefaultJobs,
		stdout:  os.Stdout,
		logger:  log.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run processes every target. The first failure cancels the documents still
// running; outputs already written are kept. The returned Report describes
// every document that was started.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	targets, err := r.mapping.Targets(ctx, r.engine.FS(), r.engine)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, t := range targets {
		g.Go(func() error {
			docs[i] = r.process(gctx, t)

			return docs[i].Err
		})
	}

	err = g.Wait()

	report := &Report{
		Stats:   r.engine.Stats(),
		Elapsed: time.Since(start),
	}

	for _, d := range docs {
		if d != nil {
			report.Documents = append(report.Documents, *d)
		}
	}

	return report, err
}

func (r *Runner) process(ctx context.Context, t Target) *Document {
	start := time.Now()
	doc := &Document{Target: t}

	defer func() { doc.Elapsed = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		doc.Err = err

		return doc
	}

	source := slog.String("source", t.Src)

	r.logger.InfoContext(ctx, "processing", source)

	fs := r.engine.FS()

	text, err := fs.Read(t.Src)
	if err != nil {
		doc.Err = ErrReadSource.Wrap(err).With(source)

		return doc
	}

	out, err := r.engine.Process(ctx, text, t.Src)
	if err != nil {
		doc.Err = errs.Wrap(err).With(source)

		return doc
	}

	doc.Bytes = len(out)

	if r.lint {
		cfg := r.engine.Config()
		known := append(cfg.Globals.Names(), "docroot")

		doc.Unresolved = Lint(out, cfg.Prefix, cfg.Suffix, known)
		for _, u := range doc.Unresolved {
			r.engine.Warn(ctx, "unresolved placeholder", source, u.attr())
		}
	}

	if t.Dest == "" {
		if _, err := io.WriteString(r.stdout, out); err != nil {
			doc.Err = ErrWriteOutput.Wrap(err).With(source, slog.String("dest", "stdout"))
		}

		return doc
	}

	r.logger.DebugContext(ctx, "saving to", slog.String("dest", t.Dest))

	if err := fs.Write(t.Dest, out); err != nil {
		doc.Err = ErrWriteOutput.Wrap(err).With(source, slog.String("dest", t.Dest))

		return doc
	}

	r.logger.InfoContext(ctx, "processed", source)

	return doc
}
