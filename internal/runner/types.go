// Package runner resolves and invokes the external Mermaid CLI.
package runner

import (
	"context"
	"time"
)

// Candidate is a command that may be able to run the Mermaid CLI.
type Candidate struct {
	Command        string   `json:"command" yaml:"command" koanf:"command"`
	ArgumentPrefix []string `json:"args,omitempty" yaml:"args,omitempty" koanf:"args"`
}

// DefaultCandidates is the probe order: npx first, then bunx.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Command: "npx", ArgumentPrefix: []string{"-y", "@mermaid-js/mermaid-cli"}},
		{Command: "bunx", ArgumentPrefix: []string{"@mermaid-js/mermaid-cli"}},
	}
}

// Commands lists the command names of candidates, in order.
func Commands(candidates []Candidate) []string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Command)
	}
	return names
}

// Result is the outcome of rendering one block.
type Result struct {
	BlockIndex int           `json:"block" yaml:"block"`
	Succeeded  bool          `json:"succeeded" yaml:"succeeded"`
	ExitCode   int           `json:"exit_code" yaml:"exit_code"`
	Stdout     string        `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr     string        `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Renderer renders a single diagram source file to an output file.
type Renderer interface {
	Render(ctx context.Context, blockIndex int, inputPath, outputPath string) Result
}

// Resolver picks the Renderer for a validation session.
type Resolver interface {
	Resolve(ctx context.Context) (Renderer, error)
}
