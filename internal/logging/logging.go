// Package logging sets up the process-wide slog logger for the milestones
// commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Configure installs a text logger on stderr as the slog default.
//
// Supported levels: debug, info, warn, error.
func Configure(level string) error {
	l, err := New(os.Stderr, FormatText, level)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}

// New builds a logger writing to w in the given format.
func New(w io.Writer, format Format, level string) (*slog.Logger, error) {
	parsed, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: parsed}

	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	case FormatText, "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return slog.New(h), nil
}

// ToFile points the default logger at path. The terminal UI owns stdout and
// stderr, so it logs here instead. The caller closes the returned file.
func ToFile(path, level string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, FormatText, level)
	if err != nil {
		f.Close()
		return nil, err
	}
	slog.SetDefault(l)
	return f, nil
}

// Discard silences the default logger.
func Discard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", LevelInfo:
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", level)
	}
}
