package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/includer/cli/cmd"
	"github.com/ardnew/includer/config"
	"github.com/ardnew/includer/pkg"
	"github.com/ardnew/includer/preview"
)

// CLI is the top-level command-line interface for includer.
type CLI struct {
	Log    logConfig   `embed:"" group:"log"    prefix:"log-"`
	Pprof  pprofConfig `embed:"" group:"pprof"  prefix:"pprof-"`
	Render cmd.Options `embed:"" group:"render"`

	Config string `default:"${configFile}" help:"Configuration file." short:"c" type:"path"`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Process source documents."`
	Serve   cmd.Serve   `cmd:""                    help:"Serve rendered documents over HTTP."`
	Init    cmd.Init    `cmd:""                    help:"Write the current options to the configuration file."`
	Version cmd.Version `cmd:""                    help:"Print the version."`
}

// Run executes the includer CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that configuration file errors and
	// parse errors are reported with the requested logger.
	cli.Log.scan(args)

	configFile := scanConfig(args, configPath())

	conf, err := config.Load(configFile)
	if err != nil {
		return err
	}

	kv := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		"addr":               preview.DefaultAddr,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Render.Vars())

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Render.Group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Resolvers(conf.Resolver()),
		kv,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOptions(ctx, &cli.Render)
	ctx = cmd.WithConfigFile(ctx, conf)

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// configPath returns the default configuration file path.
func configPath() string {
	if path, ok := os.LookupEnv(envConfig()); ok && path != "" {
		return path
	}

	return defaultConfigPath()
}
