package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/includer/config"
)

type (
	contextKey    struct{}
	optionsKey    struct{}
	configFileKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithOptions returns a new context.Context containing the parsed rendering
// options shared by every subcommand.
func WithOptions(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// optionsFrom returns the options stored by WithOptions, or the defaults.
func optionsFrom(ctx context.Context) *Options {
	opts, ok := ctx.Value(optionsKey{}).(*Options)
	if !ok || opts == nil {
		return DefaultOptions()
	}

	return opts
}

// WithConfigFile returns a new context.Context containing the loaded
// configuration file.
func WithConfigFile(ctx context.Context, conf *config.File) context.Context {
	return context.WithValue(ctx, configFileKey{}, conf)
}

func configFileFrom(ctx context.Context) *config.File {
	conf, _ := ctx.Value(configFileKey{}).(*config.File)

	return conf
}

// stdout returns the writer kong was configured with, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the error writer kong was configured with, or os.Stderr.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}
