package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"Warning", LevelWarn, false},
		{"", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelToSlog(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"text", FormatText, false},
		{"console", FormatText, false},
		{"", FormatText, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	output := NewOutput(&buf)
	if output.Writer() != &buf {
		t.Error("NewOutput did not return the correct writer")
	}
	if err := output.Close(); err != nil {
		t.Errorf("Close on a stream output should be a no-op, got %v", err)
	}
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mermaidlint.log")
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: OutputFile(path)})

	logger.Info("file sink", "run_id", "abc")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !bytes.Contains(data, []byte(`"run_id":"abc"`)) {
		t.Errorf("log file missing record, got: %s", data)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Level != LevelWarn {
		t.Errorf("DefaultConfig.Level = %v, want %v", config.Level, LevelWarn)
	}
	if config.Format != FormatText {
		t.Errorf("DefaultConfig.Format = %v, want %v", config.Format, FormatText)
	}
	if config.Output.Writer() != os.Stderr {
		t.Error("DefaultConfig.Output should be stderr")
	}
	if config.ServiceName != "mermaidlint" {
		t.Errorf("DefaultConfig.ServiceName = %q, want %q", config.ServiceName, "mermaidlint")
	}
}

func TestVerboseConfig(t *testing.T) {
	config := VerboseConfig()

	if config.Level != LevelDebug {
		t.Errorf("VerboseConfig.Level = %v, want %v", config.Level, LevelDebug)
	}
	if !config.AddSource {
		t.Error("VerboseConfig.AddSource should be true")
	}
}
