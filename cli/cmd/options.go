package cmd

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/includer/config"
	"github.com/ardnew/includer/errs"
	"github.com/ardnew/includer/fsys"
	"github.com/ardnew/includer/hook"
	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/render"
	"github.com/ardnew/includer/vars"
)

// Options are the rendering options shared by every subcommand. They may be
// given as flags or as keys of the configuration file.
type Options struct {
	Prefix      string   `default:"${prefix}"   help:"Placeholder prefix."`
	Suffix      string   `default:""            help:"Placeholder suffix."`
	Global      []string `help:"Global variable (name=value), repeatable." placeholder:"NAME=VALUE" sep:"none" short:"g"`
	GlobalsFile []string `help:"YAML or JSON file of global variables."     placeholder:"FILE"`
	IncludesDir string   `default:""            help:"Base directory of relative include paths."`
	Docroot     string   `default:"${docroot}"  help:"Directory the docroot variable points to."`
	Encoding    string   `default:"${encoding}" help:"Encoding of source, include, and output files."`

	Mustache        bool `default:"true"  help:"Render mustache sections with the local variables." negatable:""`
	AlwaysUnescaped bool `default:"false" help:"Never HTML-escape mustache values."`

	Process     []string `help:"Content hooks applied to included files (${hookNames})." placeholder:"HOOK"`
	ProcessExpr string   `help:"Expression hook applied to included files."               placeholder:"EXPR"`
	MaxDepth    int      `default:"${maxDepth}" help:"Maximum include nesting (0 disables the bound)."`
}

// DefaultOptions returns the options in effect when no flag is given.
func DefaultOptions() *Options {
	cfg := render.DefaultConfig()

	return &Options{
		Prefix:   cfg.Prefix,
		Suffix:   cfg.Suffix,
		Docroot:  cfg.Docroot,
		Encoding: fsys.DefaultEncoding,
		Mustache: cfg.UseMustache,
		MaxDepth: cfg.MaxDepth,
	}
}

// Vars returns the kong variables referenced by the Options tags.
func (*Options) Vars() kong.Vars {
	return kong.Vars{
		"prefix":    vars.DefaultPrefix,
		"docroot":   render.DefaultDocroot,
		"encoding":  fsys.DefaultEncoding,
		"maxDepth":  strconv.Itoa(render.DefaultMaxDepth),
		"hookNames": strings.Join(hook.Names(), ", "),
	}
}

// Group returns the kong group of the Options flags.
func (*Options) Group() kong.Group {
	return kong.Group{Key: "render", Title: "Rendering options"}
}

// Globals returns the global variables of a run: those of conf, then each
// globals file, then each --global definition. Later definitions of a name
// replace earlier ones in place.
func (o *Options) Globals(conf *config.File) (vars.Map, error) {
	var base vars.Map
	if conf != nil {
		base = conf.Globals
	}

	overlays := make([]vars.Map, 0, len(o.GlobalsFile)+1)

	for _, path := range o.GlobalsFile {
		m, err := config.LoadGlobals(path)
		if err != nil {
			return nil, err
		}

		overlays = append(overlays, m)
	}

	var defs vars.Map

	for _, def := range o.Global {
		name, value, err := config.ParseGlobal(def)
		if err != nil {
			return nil, ErrOption.Wrap(err).With(slog.String("flag", "global"))
		}

		defs = defs.With(name, value)
	}

	return config.Merge(base, append(overlays, defs)...), nil
}

// Hook returns the content hook selected by --process and --process-expr,
// or nil if none is.
func (o *Options) Hook() (render.ContentHook, error) {
	hooks := make([]render.ContentHook, 0, len(o.Process)+1)

	for _, name := range o.Process {
		h, err := hook.Lookup(name)
		if err != nil {
			return nil, ErrOption.Wrap(err).With(slog.String("flag", "process"))
		}

		hooks = append(hooks, h)
	}

	if o.ProcessExpr != "" {
		h, err := hook.NewExpr(o.ProcessExpr)
		if err != nil {
			return nil, ErrOption.Wrap(err).With(slog.String("flag", "process-expr"))
		}

		hooks = append(hooks, h)
	}

	return hook.Chain(hooks...), nil
}

// Engine returns a rendering engine configured by o and conf. Options given
// in opts are applied last.
func (o *Options) Engine(
	ctx context.Context,
	conf *config.File,
	opts ...render.Option,
) (*render.Engine, error) {
	globals, err := o.Globals(conf)
	if err != nil {
		return nil, err
	}

	contentHook, err := o.Hook()
	if err != nil {
		return nil, err
	}

	fs, err := fsys.NewOS(o.Encoding)
	if err != nil {
		return nil, ErrOption.Wrap(err).With(slog.String("flag", "encoding"))
	}

	cfg := render.Config{
		Prefix:                 o.Prefix,
		Suffix:                 o.Suffix,
		Globals:                globals,
		IncludesDir:            o.IncludesDir,
		Docroot:                o.Docroot,
		UseMustache:            o.Mustache,
		AlwaysUnescaped:        o.AlwaysUnescaped,
		ProcessIncludeContents: contentHook,
		MaxDepth:               o.MaxDepth,
	}

	engine, err := render.NewEngine(ctx, cfg, append([]render.Option{
		render.WithFS(fs),
		render.WithLogger(log.Default()),
		render.WithExpander(vars.NewExprExpander(globals)),
	}, opts...)...)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	return engine, nil
}
