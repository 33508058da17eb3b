// Package logger provides JSON structured logging for both Alder
// processes.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup returns a slog.Logger writing JSON records to w.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the process-wide default.
// The level is read from LOG_LEVEL; nil w defaults to stdout.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w, ParseLevel(os.Getenv("LOG_LEVEL"))))
}

// ParseLevel converts a level string to slog.Level. Unrecognized
// strings fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
