package log

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	if config.Output.Writer() == nil {
		config.Output = OutputStderr()
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	} else {
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	}

	base := slog.New(handler)
	if config.ServiceName != "" {
		base = base.With("service", config.ServiceName)
	}

	return &Logger{
		slog:   base,
		config: config,
	}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Verbose creates a logger with debug output enabled
func Verbose() *Logger {
	return New(VerboseConfig())
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *Logger {
	return New(Config{Level: LevelError, Output: NewOutput(io.Discard)})
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithGroup returns a new Logger with a group name that prefixes all attributes
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{
		slog:   l.slog.WithGroup(name),
		config: l.config,
	}
}

// WithError adds error details to the logger.
// Coded errors contribute error_code and suggestions.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With(errorArgs(err)...)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// InfoContext logs an info message with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// WarnContext logs a warning message with context
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.slog.WarnContext(ctx, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// ErrorContext logs an error message with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// LogError logs an error with its code, suggestions and docs when present
func (l *Logger) LogError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	l.slog.ErrorContext(ctx, "operation failed", errorArgs(err)...)
}

func errorArgs(err error) []any {
	var me *errors.MermaidError
	if !stderrors.As(err, &me) {
		return []any{"error", err.Error()}
	}

	args := []any{
		"error", me.Message,
		"error_code", string(me.Code),
	}
	if len(me.Suggestions) > 0 {
		args = append(args, "suggestions", me.Suggestions)
	}
	if me.DocsURL != "" {
		args = append(args, "docs_url", me.DocsURL)
	}
	if me.Cause != nil {
		args = append(args, "cause", me.Cause.Error())
	}
	return args
}

// Enabled returns whether the logger is enabled for the given level
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}

// Config returns the logger configuration
func (l *Logger) Config() Config {
	return l.config
}

// Close flushes and closes a file-backed output.
func (l *Logger) Close() error {
	return l.config.Output.Close()
}
