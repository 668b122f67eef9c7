// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are immutable values configured with functional options when
// they are made:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//	logger.Info("parsed", slog.Int("count", 3))
//
// [Logger.Wrap] derives a Logger with some options overridden and
// [Logger.With] one that adds attributes to every record. The zero Logger
// discards everything.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace sits below slog's debug level and is
// printed as "TRACE".
//
// # Formats
//
// [FormatJSON] uses [slog.JSONHandler]. [FormatText] uses a colorized
// key=value handler styled with lipgloss, or [slog.TextHandler] when pretty
// output is disabled with [WithPretty]. Color is emitted only when the
// output is a capable terminal.
//
// # Default logger
//
// The package-level functions ([Info], [DebugContext], ...) write to a
// default Logger on standard error, reconfigured with [Config]. Functions
// and methods without a context argument use [DefaultContextProvider].
package log
