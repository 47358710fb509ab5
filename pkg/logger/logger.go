package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	slogmulti "github.com/samber/slog-multi"
)

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

// Options selects the sinks of a logger built by New.
type Options struct {
	// Console receives human-readable records; nil disables it.
	Console io.Writer
	// File receives JSON records; empty disables it.
	File  string
	Level slog.Level
}

type slogLogger struct {
	l *slog.Logger
}

// New builds a logger fanning out to the configured sinks. The returned
// closer releases the log file, if any. With no sinks it returns NopLogger.
func New(opts Options) (Logger, io.Closer, error) {
	var handlers []slog.Handler
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, handlerOpts))
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return NopLogger{}, closer, fmt.Errorf("open log file: %w", err)
		}
		closer = f
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
	}

	if len(handlers) == 0 {
		return NopLogger{}, closer, nil
	}
	return newWithHandler(slogmulti.Fanout(handlers...)), closer, nil
}

// newWithHandler wraps an existing slog handler.
func newWithHandler(h slog.Handler) Logger {
	return slogLogger{l: slog.New(h)}
}

func (l slogLogger) log(level slog.Level, msg string, obj any) {
	l.l.LogAttrs(context.Background(), level, msg, attrs(obj)...)
}

func (l slogLogger) Info(msg string, obj any)  { l.log(slog.LevelInfo, msg, obj) }
func (l slogLogger) Warn(msg string, obj any)  { l.log(slog.LevelWarn, msg, obj) }
func (l slogLogger) Debug(msg string, obj any) { l.log(slog.LevelDebug, msg, obj) }
func (l slogLogger) Error(msg string, obj any) { l.log(slog.LevelError, msg, obj) }

// attrs flattens map payloads into sorted attributes; anything else is
// attached under "obj".
func attrs(obj any) []slog.Attr {
	switch v := obj.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]slog.Attr, 0, len(keys))
		for _, k := range keys {
			out = append(out, slog.Any(k, v[k]))
		}
		return out
	default:
		return []slog.Attr{slog.Any("obj", obj)}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Debug writes a debug log when logger is non-nil.
func Debug(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
