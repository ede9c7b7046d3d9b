package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution, including "no blocks found"
	Success = 0

	// GeneralError indicates a general error condition (unreadable input, workspace failure)
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// RenderFailed indicates at least one diagram block failed to render
	RenderFailed = 3

	// RunnerUnavailable indicates no Mermaid CLI runner could be found
	RunnerUnavailable = 4

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.CodeOf(err) {
	case errors.ErrCodeRenderFailed:
		return RenderFailed
	case errors.ErrCodeRunnerUnavailable:
		return RunnerUnavailable
	case errors.ErrCodeUsage, errors.ErrCodeScaffoldKindInvalid, errors.ErrCodeScaffoldIssueRef:
		return UsageError
	case "":
	default:
		return GeneralError
	}

	// Errors raised by cobra itself carry no code
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg(s)") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case RenderFailed:
		return "Mermaid render failed"
	case RunnerUnavailable:
		return "No Mermaid CLI runner available"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
