package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Execution is the captured outcome of one process run.
type Execution struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Executor runs an external command to completion.
// A non-nil error means the process could not be started at all.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (*Execution, error)
}

// SystemExecutor runs commands with os/exec, capturing stdout and stderr.
type SystemExecutor struct {
	// Env, when set, replaces the inherited environment.
	Env []string
}

// Run implements Executor.
func (e SystemExecutor) Run(ctx context.Context, name string, args ...string) (*Execution, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	if e.Env != nil {
		cmd.Env = e.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to execute %s: %w", name, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return &Execution{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}, nil
}
