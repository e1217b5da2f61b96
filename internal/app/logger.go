package app

import (
	"fmt"
	"io"
	"log/slog"
)

// parseLogLevel maps a configured level name to its slog level. An empty
// name means info.
func parseLogLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level '%s'", levelStr)
}

// checkLogFormat accepts "text", "json" and empty, which means text.
func checkLogFormat(formatStr string) error {
	switch formatStr {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("unknown log format '%s'", formatStr)
}

// newLogger creates the host logger. It does not set the global logger, so
// every App owns an isolated one. Config validation has already rejected
// unknown names; anything left falls back to info and text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, _ := parseLogLevel(levelStr)
	handlerOpts := &slog.HandlerOptions{Level: level}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
