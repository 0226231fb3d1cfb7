package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Init installs the process logger. level is one of debug, info, warn, error.
func Init(level string) {
	InitWithWriter(os.Stdout, level)
}

func InitWithWriter(w io.Writer, level string) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
