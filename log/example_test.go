package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/strargs/log"
)

func Example() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("application started", slog.String("version", "1.0.0"))
	// Output:
	// {"level":"INFO","msg":"application started","version":"1.0.0"}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output:
	// {"level":"WARN","msg":"warning message","key":"value"}
}

func Example_text() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"))

	logger.With(slog.String("dialect", "inline")).
		TraceContext(context.Background(), "dialect detected", slog.Int("length", 12))
	// Output:
	// TRACE dialect detected dialect=inline length=12
}
