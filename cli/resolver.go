package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

// resolve returns a [kong.ConfigurationLoader] for config files written as
// an argument expression in any dialect.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Each argument name is a flag name, and each value is the flag's text as it
// would appear on the command line. Names may use underscores in place of
// hyphens. List flags take comma-separated values.
//
// Example config file:
//
//	[
//	  'log-level' => 'debug',
//	  'log_format' => 'json',
//	  'default' => 'tag,class',
//	  'append' => 'class'
//	]
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug --log-format=json --default=tag,class --append=class
//
// Command-line flags override config file values. A config file that cannot
// be parsed is reported and then ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		args, err := arg.New(arg.WithLogger(log.Default())).Parse(ctx, string(data))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return config{}, nil
		}

		log.TraceContext(ctx, "configuration loaded",
			slog.Int("argument_count", args.Len()))

		return config{args}, nil
	}
}

// config implements [kong.Resolver] for argument expression configs.
type config struct {
	args arg.Arguments
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config names may use
	// underscores. Try both forms.
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c.args.Get(name); ok {
			return value, nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil //nolint:nilnil
}
