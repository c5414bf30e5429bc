package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tunnelcli/internal/config"
)

// NewLogger builds a logger writing to console, a file, or both. The
// returned file is nil for console-only output and must be closed by the
// caller otherwise.
func NewLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, *os.File, error) {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Level == "debug",
		Level:     ParseLogLevel(cfg.Level),
	}

	var (
		output io.Writer
		file   *os.File
		err    error
	)
	switch strings.ToLower(cfg.Output) {
	case "file":
		if file, err = openLogFile(cfg.FilePath); err != nil {
			return nil, nil, err
		}
		output = file
	case "both":
		if file, err = openLogFile(cfg.FilePath); err != nil {
			return nil, nil, err
		}
		output = io.MultiWriter(console, file)
	default:
		output = console
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	logger := slog.New(&traceHandler{Handler: handler}).With(
		slog.String("service", config.AppName),
	)
	return logger, file, nil
}

// traceHandler injects trace_id from the context into every record
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLogLevel converts a config level name to slog.Level; unknown names map to info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func openLogFile(filePath string) (*os.File, error) {
	if filePath == "" {
		filePath = config.DefaultLogFile
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}
	return file, nil
}
