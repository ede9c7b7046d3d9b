package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formatter writes a command result in one output format.
type Formatter interface {
	Format(data interface{}) error
}

// TextPrinter is implemented by results that have a human-readable rendering.
type TextPrinter interface {
	PrintText(c *Console) error
}

// FormatterOptions contains configuration for formatters
type FormatterOptions struct {
	// Writer receives the primary output (defaults to os.Stdout)
	Writer io.Writer
	// ErrWriter receives diagnostics in text mode (defaults to os.Stderr)
	ErrWriter io.Writer
	// NoColor disables styling for the text formatter
	NoColor bool
	// Compact disables indentation for JSON/YAML
	Compact bool
}

// NewFormatter creates a formatter based on the format string
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}

	switch format {
	case "json":
		return &JSONFormatter{opts: opts}, nil
	case "yaml":
		return &YAMLFormatter{opts: opts}, nil
	case "text", "":
		return &TextFormatter{console: NewConsole(opts.Writer, opts.ErrWriter, opts.NoColor)}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	opts *FormatterOptions
}

// Format writes data as JSON
func (f *JSONFormatter) Format(data interface{}) error {
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	opts *FormatterOptions
}

// Format writes data as YAML
func (f *YAMLFormatter) Format(data interface{}) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent(2)
	}
	defer encoder.Close()
	return encoder.Encode(data)
}

// TextFormatter prints TextPrinters, strings and Stringers.
type TextFormatter struct {
	console *Console
}

// Format writes data as human-readable text
func (f *TextFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case TextPrinter:
		return v.PrintText(f.console)
	case string:
		f.console.Plain("%s", v)
		return nil
	case fmt.Stringer:
		f.console.Plain("%s", v.String())
		return nil
	default:
		return fmt.Errorf("text formatter cannot print %T", data)
	}
}

var _ Formatter = (*JSONFormatter)(nil)
var _ Formatter = (*YAMLFormatter)(nil)
var _ Formatter = (*TextFormatter)(nil)
