package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/includer/config"
	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/profile"
)

// Init writes the configuration file from the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	confPath := i.path(ctx)

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	globals, err := optionsFrom(ctx).Globals(configFileFrom(ctx))
	if err != nil {
		return err
	}

	data, err := config.Marshal(i.options(ctx), globals)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := config.Write(confPath, data); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.InfoContext(ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// path returns the configuration file named by --config, falling back to
// the default.
func (i *Init) path(ctx context.Context) string {
	if conf := configFileFrom(ctx); conf != nil && conf.Path != "" {
		return conf.Path
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config file undefined")
	}

	return confPath
}

// ignored reports whether the flag named name is left out of the
// configuration file. Globals are written under their own key.
func ignored(name string) bool {
	if slices.Contains([]string{"help", "config", "global", "globals-file"}, name) {
		return true
	}

	return strings.HasPrefix(name, profile.Tag)
}

// options returns the application flags and their values in model order.
func (i *Init) options(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return nil
	}

	var out yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || ignored(flag.Name) {
			continue
		}

		if v, ok := flagValue(ktx, flag); ok {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return out
}

// flagValue returns the YAML value of a parsed flag. Empty strings and
// lists are omitted.
func flagValue(ktx *kong.Context, flag *kong.Flag) (any, bool) {
	val := ktx.FlagValue(flag)

	switch v := val.(type) {
	case nil:
		return nil, false

	case bool, int, int64, uint, uint64, float64:
		return v, true

	case string:
		return v, v != ""

	case []string:
		if len(v) == 0 {
			return nil, false
		}

		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}

		return out, true

	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
