// Package logger exposes the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var levelVar = new(slog.LevelVar)

var L = newLogger(os.Stdout)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// SetLevel configures the global log level (debug, info, warn, error).
func SetLevel(lvl string) {
	switch strings.ToLower(lvl) {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "warn":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}
}

// SetOutput sends log records to w. The terminal UI owns stdout, so it
// points logs at a file or io.Discard.
func SetOutput(w io.Writer) {
	L = newLogger(w)
}
