// Package logging configures the operational slog loggers used across the
// module. Components accept a *slog.Logger and fall back to Nop() when none
// is provided; the request capture log is a separate concern (pkg/requestlog).
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format is the log output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger construction options.
type Config struct {
	// Level is the minimum level to emit. Defaults to slog.LevelInfo.
	Level slog.Level

	// Format selects text or JSON output.
	Format Format

	// Output is the destination writer. Defaults to os.Stderr.
	Output io.Writer
}

// New builds a *slog.Logger from cfg.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level string to a slog.Level. Unrecognized values
// (including empty) map to Info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN", "warning":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat maps a format string to a Format. Anything but "json" is text.
func ParseFormat(s string) Format {
	if s == "json" || s == "JSON" {
		return FormatJSON
	}
	return FormatText
}
