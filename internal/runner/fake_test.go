package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeExecutor answers commands from a table keyed by the command name.
type fakeExecutor struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     [][]string
}

type fakeResponse struct {
	exitCode int
	stdout   string
	stderr   string
	startErr error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{responses: make(map[string]fakeResponse)}
}

func (f *fakeExecutor) on(command string, resp fakeResponse) *fakeExecutor {
	f.responses[command] = resp
	return f
}

func (f *fakeExecutor) Run(_ context.Context, name string, args ...string) (*Execution, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	resp, ok := f.responses[name]
	if !ok {
		return nil, fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	if resp.startErr != nil {
		return nil, resp.startErr
	}
	return &Execution{ExitCode: resp.exitCode, Stdout: resp.stdout, Stderr: resp.stderr}, nil
}

func (f *fakeExecutor) commandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		lines = append(lines, strings.Join(c, " "))
	}
	return lines
}
