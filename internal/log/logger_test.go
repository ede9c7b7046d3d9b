package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "default config", config: DefaultConfig()},
		{name: "verbose config", config: VerboseConfig()},
		{name: "missing output falls back to stderr", config: Config{Level: LevelInfo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.config)
			if logger == nil || logger.slog == nil {
				t.Fatal("expected logger, got nil")
			}
			if logger.Config().Output.Writer() == nil {
				t.Error("expected a writer to be configured")
			}
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: NewOutput(&buf)})

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("expected no output for debug/info at warn level, got: %s", buf.String())
	}

	logger.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("expected output for warn message")
	}

	buf.Reset()
	logger.Error("error message")
	if buf.Len() == 0 {
		t.Error("expected output for error message")
	}
}

func TestJSONFormatOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf), ServiceName: "mermaidlint"})

	logger.Info("block rendered", "block", 2, "runner", "npx")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}

	if entry["msg"] != "block rendered" {
		t.Errorf("expected msg 'block rendered', got %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("expected level 'INFO', got %v", entry["level"])
	}
	if entry["block"] != float64(2) {
		t.Errorf("expected block 2, got %v", entry["block"])
	}
	if entry["service"] != "mermaidlint" {
		t.Errorf("expected service attribute, got %v", entry["service"])
	}
}

func TestTextFormatOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: NewOutput(&buf)})

	logger.Info("probe", "command", "bunx")

	output := buf.String()
	if !strings.Contains(output, "msg=probe") {
		t.Errorf("expected output to contain 'msg=probe', got: %s", output)
	}
	if !strings.Contains(output, "command=bunx") {
		t.Errorf("expected output to contain 'command=bunx', got: %s", output)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

	logger.With("run_id", "r-1").WithGroup("block").Info("staged", "index", 1)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry["run_id"] != "r-1" {
		t.Errorf("expected run_id attribute, got %v", entry["run_id"])
	}
	group, ok := entry["block"].(map[string]interface{})
	if !ok || group["index"] != float64(1) {
		t.Errorf("expected grouped index attribute, got %v", entry["block"])
	}
}

func TestWithError(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

		err := errors.NewRunnerUnavailableError([]string{"npx"})
		logger.WithError(err).Warn("resolve failed")

		var entry map[string]interface{}
		if jerr := json.Unmarshal(buf.Bytes(), &entry); jerr != nil {
			t.Fatalf("failed to parse JSON output: %v", jerr)
		}
		if entry["error_code"] != "RUNNER-001" {
			t.Errorf("expected error_code RUNNER-001, got %v", entry["error_code"])
		}
		if _, ok := entry["suggestions"]; !ok {
			t.Error("expected suggestions attribute")
		}
	})

	t.Run("wrapped coded error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

		err := fmt.Errorf("run: %w", errors.NewRenderFailedError(1, 2))
		logger.LogError(context.Background(), err)

		if !strings.Contains(buf.String(), `"error_code":"RENDER-001"`) {
			t.Errorf("expected error_code in output, got: %s", buf.String())
		}
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

		logger.WithError(fmt.Errorf("boom")).Info("x")
		if !strings.Contains(buf.String(), `"error":"boom"`) {
			t.Errorf("expected error attribute, got: %s", buf.String())
		}
	})

	t.Run("nil error", func(t *testing.T) {
		logger := Discard()
		if logger.WithError(nil) != logger {
			t.Error("WithError(nil) should return the same logger")
		}
	})
}

func TestEnabled(t *testing.T) {
	logger := New(Config{Level: LevelInfo, Output: NewOutput(&bytes.Buffer{})})
	ctx := context.Background()

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at info level")
	}
}

func TestDefaultLogger(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	defaultLogger = nil
	first := DefaultLogger()
	if first == nil {
		t.Fatal("DefaultLogger returned nil")
	}
	if DefaultLogger() != first {
		t.Error("DefaultLogger should return the same instance on repeated calls")
	}

	custom := Verbose()
	SetDefaultLogger(custom)
	if DefaultLogger() != custom {
		t.Error("SetDefaultLogger did not replace the default logger")
	}
}
