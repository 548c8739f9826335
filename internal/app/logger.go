package app

import (
	"io"
	"log/slog"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances. Text output
// goes through charm's handler, JSON through slog's own.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var (
		level    slog.Level
		charmLvl charmlog.Level
	)
	switch levelStr {
	case "debug":
		level, charmLvl = slog.LevelDebug, charmlog.DebugLevel
	case "warn":
		level, charmLvl = slog.LevelWarn, charmlog.WarnLevel
	case "error":
		level, charmLvl = slog.LevelError, charmlog.ErrorLevel
	default:
		level, charmLvl = slog.LevelInfo, charmlog.InfoLevel
	}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, &slog.HandlerOptions{Level: level}))
	}

	handler := charmlog.NewWithOptions(outW, charmlog.Options{
		Level:           charmLvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return slog.New(handler)
}
