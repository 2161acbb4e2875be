package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/task"
)

// Run processes source documents.
type Run struct {
	Sources []string `arg:"" help:"Source files or glob patterns. A leading ! excludes matches." name:"source" optional:""`

	Cwd            string `help:"Directory the source patterns are relative to."`
	Dest           string `help:"Output file, or directory if it ends with a separator (default: stdout)." short:"o"`
	Jobs           int    `default:"1" help:"Number of documents processed concurrently."                short:"j"`
	WarnUnresolved bool   `help:"Warn about placeholders left in the output."`
	Report         bool   `help:"Print a summary table to stderr when done."`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	if len(r.Sources) == 0 {
		return ErrNoSources
	}

	engine, err := optionsFrom(ctx).Engine(ctx, configFileFrom(ctx))
	if err != nil {
		return err
	}

	runner := task.NewRunner(engine,
		task.Mapping{Sources: r.Sources, Cwd: r.Cwd, Dest: r.Dest},
		task.WithJobs(r.Jobs),
		task.WithLint(r.WarnUnresolved),
		task.WithStdout(stdout(ctx)),
		task.WithLogger(log.Default()),
	)

	report, err := runner.Run(ctx)

	if r.Report && report != nil {
		if rerr := report.Render(stderr(ctx)); rerr != nil {
			log.WarnContext(ctx, "report failed", slog.Any("error", rerr))
		}
	}

	if err != nil {
		return err
	}

	log.DebugContext(ctx, "run complete",
		slog.Int("documents", len(report.Documents)),
		slog.Int64("includes", report.Stats.Includes),
		slog.Int64("warnings", report.Stats.Warnings),
		slog.String("elapsed", report.Elapsed.Round(time.Millisecond).String()),
	)

	return nil
}
