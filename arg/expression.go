package arg

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/strargs/log"
)

// Expression interprets argument expressions and accumulates the resulting
// arguments.
//
// An Expression is not safe for concurrent use. Its [Config] is usually set
// once before parsing; its arguments grow with every [Expression.Parse],
// [Expression.AddArgument] and [Expression.OverrideArgument] call and are
// only cleared by creating a new Expression.
type Expression struct {
	config  Config
	store   Arguments
	dialect Dialect
	parsed  bool
	logger  log.Logger
}

// Option configures an [Expression].
type Option func(*Expression)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(e *Expression) { e.logger = logger }
}

// WithConfig sets the naming policy of an Expression.
func WithConfig(cfg Config) Option {
	return func(e *Expression) { e.config = cfg }
}

// New returns an Expression with no arguments, no configured names, and no
// dialect.
func New(opts ...Option) *Expression {
	e := new(Expression)

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SetDefaultArgs sets the names substituted for positional arguments,
// replacing any previous names.
func (e *Expression) SetDefaultArgs(names ...string) *Expression {
	e.config = e.config.WithDefaults(names...)

	return e
}

// SetAppendArgs sets the names whose values are appended to rather than
// replaced, replacing any previous set.
func (e *Expression) SetAppendArgs(names ...string) *Expression {
	e.config = e.config.WithAppends(names...)

	return e
}

// Config returns the naming policy in effect.
func (e *Expression) Config() Config { return e.config }

// AddArgument registers value under param and returns the stored pair.
// See [Register] for the normalization and merge rules.
func (e *Expression) AddArgument(param string, value any) Argument {
	return Register(e.config, &e.store, param, value, false)
}

// OverrideArgument is like [Expression.AddArgument] but always replaces the
// previous value, even for names in the append set.
func (e *Expression) OverrideArgument(param string, value any) Argument {
	return Register(e.config, &e.store, param, value, true)
}

// HasArgument reports whether an argument named name exists.
func (e *Expression) HasArgument(name string) bool { return e.store.Has(name) }

// Argument returns the value of the named argument and whether it exists.
func (e *Expression) Argument(name string) (string, bool) {
	return e.store.Get(name)
}

// Arguments returns a copy of all arguments in registration order.
func (e *Expression) Arguments() Arguments { return e.store.Clone() }

// Dialect returns the dialect of the most recent [Expression.Parse] call.
// The second result is false if Parse has never been called.
func (e *Expression) Dialect() (Dialect, bool) { return e.dialect, e.parsed }

// Parse interprets expression, registers every argument it contains in
// order, and returns a copy of all arguments.
//
// The dialect is recorded before the expression is parsed, so it is
// observable even when Parse fails. A JSON-like or array-like expression
// that cannot be decoded returns an error matching [ErrInvalidSyntax], and
// no argument from that expression is registered.
func (e *Expression) Parse(ctx context.Context, expression string) (Arguments, error) {
	e.dialect, e.parsed = Detect(expression), true

	if e.dialect == DialectNone {
		e.logger.TraceContext(ctx, "empty expression")

		return e.Arguments(), nil
	}

	expression = strings.ReplaceAll(expression, "\n", "")

	e.logger.TraceContext(ctx, "dialect detected",
		slog.String("dialect", e.dialect.String()),
		slog.Int("length", len(expression)))

	var (
		raw Arguments
		err error
	)

	switch e.dialect {
	case DialectJSON, DialectArray:
		raw, err = parseStructured(e.dialect, expression)
	default:
		raw = parseInline(expression)
	}

	if err != nil {
		e.logger.DebugContext(ctx, "parse failed",
			slog.String("dialect", e.dialect.String()),
			slog.Any("error", err))

		return Arguments{}, err
	}

	e.logger.TraceContext(ctx, "raw arguments",
		slog.Int("count", raw.Len()))

	for key, value := range raw.All() {
		Register(e.config, &e.store, key, value, false)
	}

	e.logger.TraceContext(ctx, "parse complete",
		slog.Int("argument_count", e.store.Len()))

	return e.Arguments(), nil
}
