package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for per-block and per-probe detail
	LevelDebug Level = iota
	// LevelInfo is for run lifecycle messages
	LevelInfo
	// LevelWarn is for recoverable problems (ignored frontmatter, cleanup failures)
	LevelWarn
	// LevelError is for failures that end the run
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ToSlogLevel converts our Level to slog.Level
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error)", s)
	}
}

// Format represents the output format for logs
type Format int

const (
	// FormatText outputs logs in human-readable key=value form
	FormatText Format = iota
	// FormatJSON outputs logs as JSON lines
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "console", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (supported: text, json)", s)
	}
}

// Output represents where logs should be written
type Output struct {
	writer io.Writer
}

// Writer returns the underlying io.Writer
func (o Output) Writer() io.Writer {
	return o.writer
}

// Close releases file-backed outputs. Stream outputs are left open.
func (o Output) Close() error {
	if f, ok := o.writer.(*lumberjack.Logger); ok {
		return f.Close()
	}
	return nil
}

// NewOutput creates an Output from an io.Writer
func NewOutput(w io.Writer) Output {
	return Output{writer: w}
}

// OutputStderr creates an Output that writes to stderr
func OutputStderr() Output {
	return Output{writer: os.Stderr}
}

// OutputFile creates a size-rotated file Output.
func OutputFile(path string) Output {
	return Output{writer: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}}
}

// Config holds configuration for the logger
type Config struct {
	// Level is the minimum log level to output
	Level Level

	// Format is the output format (Text or JSON)
	Format Format

	// Output is where logs should be written
	Output Output

	// AddSource includes source file and line number in logs
	AddSource bool

	// ServiceName is attached to every record
	ServiceName string
}

// DefaultConfig keeps stderr quiet: only warnings and errors, as text.
// Stdout is reserved for the validation report.
func DefaultConfig() Config {
	return Config{
		Level:       LevelWarn,
		Format:      FormatText,
		Output:      OutputStderr(),
		ServiceName: "mermaidlint",
	}
}

// VerboseConfig logs every probe and render at debug level with source locations.
func VerboseConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = LevelDebug
	cfg.AddSource = true
	return cfg
}
