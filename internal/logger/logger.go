package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup creates a JSON structured slog.Logger writing to w.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON structured logger as the global slog logger.
// The level is read from the LOG_LEVEL environment variable (debug, info,
// warn, error) and defaults to info.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w, LevelFromEnv()))
}

// LevelFromEnv parses LOG_LEVEL into a slog.Level, defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
