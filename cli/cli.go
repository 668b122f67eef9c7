package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/cli/cmd"
	"github.com/ardnew/strargs/log"
	"github.com/ardnew/strargs/pkg"
	"github.com/ardnew/strargs/profile"
)

// pprofGroup is listed in help whether or not the pprof flags are built in.
var pprofGroup = kong.Group{Key: profile.Tag, Title: "Profiling (pprof)"}

// CLI is the top-level command-line interface for strargs.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Default []string `help:"Names given to positional arguments, in order." name:"default" sep:"," short:"d"`
	Append  []string `help:"Names whose values accumulate instead of being replaced." name:"append" sep:"," short:"a"`
	Source  []string `help:"Input source file(s) or '-' for stdin, one expression each." name:"source" short:"s" type:"existingfile"`

	Init    cmd.Init    `cmd:"" help:"Initialize configuration file."`
	Dialect cmd.Dialect `cmd:"" help:"Print the dialect of each expression."`
	Get     cmd.Get     `cmd:"" help:"Print the value of one argument."`
	Repl    cmd.Repl    `cmd:"" help:"Start an interactive session."`

	Parse cmd.Parse `cmd:"" default:"withargs" help:"Parse expressions and print their arguments."`
}

// config returns the naming policy selected by the global flags.
func (c *CLI) config() arg.Config {
	return arg.MakeConfig(c.Default, c.Append)
}

// Run executes the strargs CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:     configFilePath,
		cmd.CacheIdentifier:      cacheDir(),
		cmd.FormatEnumIdentifier: strings.Join(slices.Collect(arg.Formats()), ","),
		"version":                pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithConfig(ctx, cli.config())
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	log.DebugContext(ctx, "arguments configured",
		slog.Any("default", cli.Default),
		slog.Any("append", cli.Append),
		slog.Int("source_count", len(cli.Source)),
	)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
