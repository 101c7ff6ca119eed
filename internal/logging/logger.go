package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Structured log field keys shared across packages.
const (
	FieldTeamID   = "team_id"
	FieldPlayer   = "player"
	FieldCategory = "category"
	FieldSource   = "source"
	FieldCount    = "count"
	FieldPath     = "path"
	FieldDuration = "duration_ms"
)

// NewLogger builds a slog logger writing to stdout. Format is "text" or
// "json"; unknown levels fall back to info.
func NewLogger(level, format string) *slog.Logger {
	return newLogger(os.Stdout, level, format)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func ParseLevel(level string) slog.Level {
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
