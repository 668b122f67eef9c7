//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/strargs/log"
	"github.com/ardnew/strargs/profile"
)

// pprofConfig selects one runtime profile and where it is written.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(cacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group { return pprofGroup }

// profiler returns the profile selected by the flags. Its own log output is
// suppressed in favor of the records written by start.
func (f pprofConfig) profiler() profile.Profiler {
	return profile.Make(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(true),
	)
}

// start begins profiling and returns the function that ends it. Without a
// mode both are no-ops.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	log.DebugContext(ctx, "pprof start", attrs...)

	running := f.profiler().Start()

	return func() {
		running.Stop()
		log.DebugContext(ctx, "pprof stop", attrs...)
	}
}
