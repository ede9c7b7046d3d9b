package runner

import (
	"context"
	"fmt"
)

// Runner is a resolved Mermaid CLI command bound to an executor.
type Runner struct {
	Command        string   `json:"command" yaml:"command"`
	ArgumentPrefix []string `json:"args,omitempty" yaml:"args,omitempty"`

	exec Executor
}

// New binds a candidate to an executor.
func New(c Candidate, exec Executor) *Runner {
	if exec == nil {
		exec = SystemExecutor{}
	}
	return &Runner{
		Command:        c.Command,
		ArgumentPrefix: append([]string(nil), c.ArgumentPrefix...),
		exec:           exec,
	}
}

// Args returns the full argument list for one render.
func (r *Runner) Args(inputPath, outputPath string) []string {
	args := make([]string, 0, len(r.ArgumentPrefix)+4)
	args = append(args, r.ArgumentPrefix...)
	return append(args, "-i", inputPath, "-o", outputPath)
}

// Render implements Renderer. A process that cannot be started is reported as
// a failed block, never as an error, so the remaining blocks still run.
func (r *Runner) Render(ctx context.Context, blockIndex int, inputPath, outputPath string) Result {
	res := Result{BlockIndex: blockIndex}

	out, err := r.exec.Run(ctx, r.Command, r.Args(inputPath, outputPath)...)
	if err != nil {
		res.ExitCode = -1
		res.Stderr = err.Error() + "\n"
		return res
	}

	res.ExitCode = out.ExitCode
	res.Succeeded = out.ExitCode == 0
	res.Stdout = out.Stdout
	res.Stderr = out.Stderr
	res.Duration = out.Duration
	return res
}

// String returns the command line prefix, e.g. "npx -y @mermaid-js/mermaid-cli".
func (r *Runner) String() string {
	s := r.Command
	for _, a := range r.ArgumentPrefix {
		s += " " + a
	}
	return s
}

// Probe reports whether the candidate's command answers "--version" with exit 0.
func Probe(ctx context.Context, exec Executor, c Candidate) error {
	out, err := exec.Run(ctx, c.Command, "--version")
	if err != nil {
		return err
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("%s --version exited with status %d", c.Command, out.ExitCode)
	}
	return nil
}
