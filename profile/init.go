package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Profiler holds the profiling mode, the output directory, and whether
// the profiler's own log output is suppressed.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option applies a configuration option to a Profiler.
type Option func(Profiler) Profiler

// Make returns a Profiler with the given options applied in order.
func Make(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

// Start initializes the profiler and returns an interface for stopping it.
//
// If build tag pprof or p.Mode are unset, or p.Mode is not one of [Modes],
// then Start returns a no-op implementation.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

type ignore struct{}

func (ignore) Stop() {}
