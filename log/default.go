package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the context used by the logging functions
// and methods that do not take one.
//
//nolint:gochecknoglobals
var DefaultContextProvider = context.TODO

//nolint:gochecknoglobals
var defaultLog = Make(os.Stderr)

// Config reconfigures the default logger with opts.
func Config(opts ...Option) { defaultLog = defaultLog.Wrap(opts...) }

// Default returns the default logger.
func Default() Logger { return defaultLog }

// With returns the default logger with attrs added to every record.
func With(attrs ...slog.Attr) Logger { return defaultLog.With(attrs...) }

// TraceContext logs at [LevelTrace] using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelTrace, msg, attrs)
}

// Trace logs at [LevelTrace] using the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelDebug, msg, attrs)
}

// Debug logs at [LevelDebug] using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelInfo, msg, attrs)
}

// Info logs at [LevelInfo] using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelWarn, msg, attrs)
}

// Warn logs at [LevelWarn] using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelError, msg, attrs)
}

// Error logs at [LevelError] using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelError, msg, attrs)
}
