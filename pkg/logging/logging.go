package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level describes severity of log message.
type Level int

const (
	// LevelInfo is default log level.
	LevelInfo Level = iota
	// LevelDebug enables verbose output.
	LevelDebug
)

// ParseLevel converts string to Level.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

func (l Level) slogLevel() slog.Level {
	if l == LevelDebug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Logger is a thin printf-style wrapper around slog.
type Logger struct {
	logger *slog.Logger
	closer io.Closer
}

// Options tune the output format.
type Options struct {
	// JSON switches from the human-readable handler to JSON lines.
	JSON bool
}

// New creates a configured logger writing to path, or stderr when path is empty.
func New(path string, level Level, opts ...Options) (*Logger, error) {
	var (
		output io.Writer = os.Stderr
		closer io.Closer
		color  = isatty.IsTerminal(os.Stderr.Fd())
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output, closer, color = f, f, false
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return &Logger{logger: slog.New(newHandler(output, level, color, o)), closer: closer}, nil
}

// NewWriter creates a logger writing plain text to w.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{logger: slog.New(newHandler(w, level, false, Options{}))}
}

func newHandler(w io.Writer, level Level, color bool, o Options) slog.Handler {
	if o.JSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level.slogLevel(),
		TimeFormat: time.DateTime,
		NoColor:    !color,
	})
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	if l == nil {
		return slog.New(discard{})
	}
	return l.logger
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) logf(lvl slog.Level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	if !l.logger.Enabled(context.Background(), lvl) {
		return
	}
	l.logger.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// Infof logs informational messages.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(slog.LevelInfo, format, args...)
}

// Debugf logs verbose diagnostic messages.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(slog.LevelDebug, format, args...)
}

// Warnf logs recoverable problems.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(slog.LevelWarn, format, args...)
}

// Errorf logs errors.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(slog.LevelError, format, args...)
}

// Printf keeps compatibility with standard log API.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Infof(format, args...)
}

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }
