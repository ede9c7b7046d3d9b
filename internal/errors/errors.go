package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Document errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"

	// Workspace errors (WS-001 to WS-099)
	ErrCodeWorkspaceCreate ErrorCode = "WS-001"
	ErrCodeWorkspaceWrite  ErrorCode = "WS-002"

	// Runner errors (RUNNER-001 to RUNNER-099)
	ErrCodeRunnerUnavailable ErrorCode = "RUNNER-001"

	// Render errors (RENDER-001 to RENDER-099)
	ErrCodeRenderFailed ErrorCode = "RENDER-001"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoad    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"

	// Scaffold errors (SCAFFOLD-001 to SCAFFOLD-099)
	ErrCodeScaffoldKindInvalid ErrorCode = "SCAFFOLD-001"
	ErrCodeScaffoldIssueRef    ErrorCode = "SCAFFOLD-002"

	// Usage errors (USAGE-001 to USAGE-099)
	ErrCodeUsage ErrorCode = "USAGE-001"
)

const mermaidCLIDocs = "https://github.com/mermaid-js/mermaid-cli#installation"

// MermaidError represents an enhanced error with code, suggestions, and documentation
type MermaidError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *MermaidError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *MermaidError) Unwrap() error {
	return e.Cause
}

// New creates a new MermaidError
func New(code ErrorCode, message string) *MermaidError {
	return &MermaidError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new MermaidError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *MermaidError {
	return &MermaidError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *MermaidError) WithSuggestion(suggestion string) *MermaidError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *MermaidError) WithSuggestions(suggestions ...string) *MermaidError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *MermaidError) WithDocs(url string) *MermaidError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first MermaidError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	for err != nil {
		if me, ok := err.(*MermaidError); ok {
			return me.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// Common error constructors for frequently used errors

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *MermaidError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileReadError creates a document read error
func NewFileReadError(path string, cause error) *MermaidError {
	return Wrap(ErrCodeFileReadFailed, fmt.Sprintf("failed to read markdown file: %s", path), cause).
		WithSuggestion("Verify you have read permissions on the file")
}

// NewWorkspaceCreateError creates a temporary workspace creation error
func NewWorkspaceCreateError(parent string, cause error) *MermaidError {
	return Wrap(ErrCodeWorkspaceCreate, fmt.Sprintf("failed to create validation workspace under %s", parent), cause).
		WithSuggestion("Check that the temporary directory exists and is writable").
		WithSuggestion("Set workspace.dir in .mermaidlint.yaml or MERMAIDLINT_WORKSPACE_DIR to another location")
}

// NewWorkspaceWriteError creates an error for a failed write into the workspace
func NewWorkspaceWriteError(path string, cause error) *MermaidError {
	return Wrap(ErrCodeWorkspaceWrite, fmt.Sprintf("failed to write diagram source: %s", path), cause).
		WithSuggestion("Check free disk space and permissions of the temporary directory")
}

// NewRunnerUnavailableError creates an error for a missing Mermaid CLI runner
func NewRunnerUnavailableError(commands []string) *MermaidError {
	return New(ErrCodeRunnerUnavailable, fmt.Sprintf("no Mermaid CLI runner available (tried: %s)", strings.Join(commands, ", "))).
		WithSuggestion("Install Node tooling (npm) or Bun so that `npx` or `bunx` is on PATH").
		WithSuggestion("Or install the Mermaid CLI and list `mmdc` under runners in .mermaidlint.yaml").
		WithDocs(mermaidCLIDocs)
}

// NewRenderFailedError creates an aggregate render failure error
func NewRenderFailedError(failed, total int) *MermaidError {
	return New(ErrCodeRenderFailed, fmt.Sprintf("%d of %d Mermaid block(s) failed to render", failed, total)).
		WithSuggestion("Inspect the kept diagram sources and renderer output listed above")
}

// NewConfigLoadError creates an error for an unreadable or unparsable config file
func NewConfigLoadError(path string, cause error) *MermaidError {
	return Wrap(ErrCodeConfigLoad, fmt.Sprintf("failed to load configuration: %s", path), cause).
		WithSuggestion("Check the file exists and is valid YAML or TOML")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(path string, cause error) *MermaidError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", path), cause).
		WithSuggestion("Run 'mermaidlint config' to print the effective configuration")
}

// NewScaffoldKindError creates an unknown issue kind error
func NewScaffoldKindError(kind string) *MermaidError {
	return New(ErrCodeScaffoldKindInvalid, fmt.Sprintf("invalid --kind value: %s", kind)).
		WithSuggestion("Use one of: feature, bug, chore")
}
