package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/preview"
)

// Serve renders documents on request over HTTP.
type Serve struct {
	Root string `arg:"" default:"." help:"Directory of source documents." optional:"" type:"existingdir"`
	Addr string `default:"${addr}" help:"Address to listen on."`
}

// Run executes the serve command. It returns when ctx is done.
func (s *Serve) Run(ctx context.Context) error {
	engine, err := optionsFrom(ctx).Engine(ctx, configFileFrom(ctx))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "serving",
		slog.String("root", s.Root),
		slog.String("addr", s.Addr),
	)

	return preview.NewServer(engine, s.Root, log.Default()).ListenAndServe(ctx, s.Addr)
}
