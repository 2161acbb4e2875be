// Package log provides a concurrency-safe structured logger built on
// [log/slog].
//
// Loggers are immutable values configured with functional options. A
// package-level default logger backs the context-aware functions used
// throughout the command, and [Config] replaces it with a reconfigured copy.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("processed", slog.String("source", "index.html"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are rendered by the [log/slog]
// handlers. With [WithPretty] enabled, both formats are rendered by a
// colorized handler instead: text records on a single line, JSON records as
// indented objects.
package log
