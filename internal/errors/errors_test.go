package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeFileNotFound, "test error message")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeFileNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Code != ErrCodeFileReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeFileReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *MermaidError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeConfigInvalid, "invalid config"),
			wantCode: "CONFIG-002",
			wantMsg:  "invalid config",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrCodeFileNotFound, "file not found").
		WithSuggestion("Check the file path")

	if len(err.Suggestions) != 1 {
		t.Errorf("expected 1 suggestion, got %d", len(err.Suggestions))
	}

	if err.Suggestions[0] != "Check the file path" {
		t.Errorf("unexpected suggestion: %s", err.Suggestions[0])
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "Suggestions:") {
		t.Errorf("error string should contain suggestions section")
	}
}

func TestWithSuggestions(t *testing.T) {
	err := New(ErrCodeRenderFailed, "render failed").
		WithSuggestions("Suggestion 1", "Suggestion 2", "Suggestion 3")

	if len(err.Suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(err.Suggestions))
	}

	errStr := err.Error()
	for _, suggestion := range err.Suggestions {
		if !strings.Contains(errStr, suggestion) {
			t.Errorf("error string should contain suggestion: %s", suggestion)
		}
	}
}

func TestWithDocs(t *testing.T) {
	docsURL := "https://example.com/mermaidlint#docs"
	err := New(ErrCodeUsage, "bad usage").WithDocs(docsURL)

	if err.DocsURL != docsURL {
		t.Errorf("expected DocsURL %s, got %s", docsURL, err.DocsURL)
	}

	if !strings.Contains(err.Error(), "Documentation: "+docsURL) {
		t.Errorf("error string should contain documentation section")
	}
}

func TestNewRunnerUnavailableError(t *testing.T) {
	err := NewRunnerUnavailableError([]string{"npx", "bunx"})

	if err.Code != ErrCodeRunnerUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeRunnerUnavailable, err.Code)
	}
	if !strings.Contains(err.Message, "npx, bunx") {
		t.Errorf("message should list tried commands, got %q", err.Message)
	}
	if err.DocsURL == "" {
		t.Errorf("expected docs URL to point at the Mermaid CLI install guide")
	}
}

func TestNewRenderFailedError(t *testing.T) {
	err := NewRenderFailedError(2, 5)

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("expected code %s, got %s", ErrCodeRenderFailed, err.Code)
	}
	if !strings.Contains(err.Error(), "2 of 5") {
		t.Errorf("error should report failed and total counts, got %q", err.Error())
	}
}

func TestNewWorkspaceErrors(t *testing.T) {
	cause := fmt.Errorf("read-only file system")

	create := NewWorkspaceCreateError("/tmp", cause)
	if create.Code != ErrCodeWorkspaceCreate || !errors.Is(create, cause) {
		t.Errorf("unexpected workspace create error: %v", create)
	}

	write := NewWorkspaceWriteError("/tmp/x/diagram-1.mmd", cause)
	if write.Code != ErrCodeWorkspaceWrite || !strings.Contains(write.Message, "diagram-1.mmd") {
		t.Errorf("unexpected workspace write error: %v", write)
	}
}

func TestCodeOf(t *testing.T) {
	inner := NewRenderFailedError(1, 1)
	wrapped := fmt.Errorf("validate: %w", inner)

	if got := CodeOf(wrapped); got != ErrCodeRenderFailed {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ErrCodeRenderFailed)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "read failed", cause)

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap should return the cause")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeFileNotFound,
		ErrCodeFileReadFailed,
		ErrCodeFileWriteFailed,
		ErrCodeWorkspaceCreate,
		ErrCodeWorkspaceWrite,
		ErrCodeRunnerUnavailable,
		ErrCodeRenderFailed,
		ErrCodeConfigLoad,
		ErrCodeConfigInvalid,
		ErrCodeScaffoldKindInvalid,
		ErrCodeScaffoldIssueRef,
		ErrCodeUsage,
	}

	for _, code := range codes {
		parts := strings.Split(string(code), "-")
		if len(parts) != 2 {
			t.Errorf("error code %s should have format CATEGORY-NNN", code)
			continue
		}
		if len(parts[1]) != 3 {
			t.Errorf("error code %s should have 3-digit number", code)
		}
	}
}
