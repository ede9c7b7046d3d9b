package cmd

import (
	stderrors "errors"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
)

// reportedError marks a failure whose details were already printed as part of
// the command's normal output. main only needs its exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

func usageError(err error) error {
	return errors.Wrap(errors.ErrCodeUsage, "invalid flag value", err)
}
