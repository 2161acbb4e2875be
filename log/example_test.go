package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/includer/log"
)

func Example_textFormat() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"))

	logger.Info("processed", slog.String("source", "index.html"))
	// Output: level=INFO msg=processed source=index.html
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"))

	logger.Info("info message")
	logger.Warn("include file(s) not found", slog.String("path", "parts/*.html"))
	// Output: {"level":"WARN","msg":"include file(s) not found","path":"parts/*.html"}
}
