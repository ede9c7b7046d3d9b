package validate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
	"github.com/felixgeelhaar/mermaidlint/internal/extract"
	"github.com/felixgeelhaar/mermaidlint/internal/runner"
	"github.com/felixgeelhaar/mermaidlint/internal/ux"
	"github.com/felixgeelhaar/mermaidlint/internal/workspace"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusNoBlocks    Status = "no_blocks"
	StatusNoRunner    Status = "no_runner"
	// StatusInterrupted is reported alongside the context error.
	StatusInterrupted Status = "interrupted"
)

// installHint is the manual command shown when no runner is available.
const installHint = "npx -y @mermaid-js/mermaid-cli -i diagram.mmd -o diagram.svg"

// Report is the result of one validation run. Results are in block order.
type Report struct {
	Status     Status               `json:"status" yaml:"status"`
	Document   string               `json:"document,omitempty" yaml:"document,omitempty"`
	RunID      string               `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Runner     string               `json:"runner,omitempty" yaml:"runner,omitempty"`
	Candidates []string             `json:"-" yaml:"-"`
	Blocks     []extract.Block      `json:"blocks" yaml:"blocks"`
	Results    []runner.Result      `json:"results,omitempty" yaml:"results,omitempty"`
	Workspace  string               `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Kept       bool                 `json:"kept" yaml:"kept"`
	KeepReason workspace.KeepReason `json:"keep_reason,omitempty" yaml:"keep_reason,omitempty"`
}

// FailedCount returns the number of blocks that did not render.
func (r *Report) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Succeeded {
			n++
		}
	}
	return n
}

// Err converts failure states into coded errors for exit status mapping.
func (r *Report) Err() error {
	switch r.Status {
	case StatusFailed:
		return errors.NewRenderFailedError(r.FailedCount(), len(r.Blocks))
	case StatusNoRunner:
		return errors.NewRunnerUnavailableError(r.Candidates)
	default:
		return nil
	}
}

// PrintText implements ux.TextPrinter.
func (r *Report) PrintText(c *ux.Console) error {
	if r.Status == StatusNoBlocks {
		c.Plain("No Mermaid blocks found.")
		return nil
	}

	if r.Status == StatusNoRunner {
		c.Failure("%s found on PATH.", notFoundPhrase(r.Candidates))
		c.Hint("Install Node tooling (npm) or Bun, then validate with:")
		c.Hint("  %s", installHint)
		c.Hint("Extracted Mermaid blocks were written to: %s", r.Workspace)
		return nil
	}

	for _, res := range r.Results {
		if res.Succeeded {
			continue
		}
		c.Failure("Mermaid render failed for block %d.", res.BlockIndex)
		c.Raw(res.Stderr)
		c.Raw(res.Stdout)
		c.Hint("")
	}

	if r.Status == StatusInterrupted {
		c.Failure("Validation interrupted after %d of %d Mermaid block(s).", len(r.Results), len(r.Blocks))
	}

	if r.Kept {
		switch r.KeepReason {
		case workspace.KeepRequested:
			c.Notice("Kept validation artifacts at: %s", r.Workspace)
		default:
			c.Notice("Validation artifacts kept at: %s", r.Workspace)
		}
	}

	if r.Status == StatusPassed {
		c.Success("Validated %d Mermaid block(s).", len(r.Blocks))
	}
	return nil
}

// notFoundPhrase reads "Neither `npx` nor `bunx`" for the default pair.
func notFoundPhrase(commands []string) string {
	quoted := make([]string, 0, len(commands))
	for _, c := range commands {
		quoted = append(quoted, "`"+c+"`")
	}
	switch len(quoted) {
	case 0:
		return "No Mermaid CLI runner"
	case 1:
		return quoted[0] + " not"
	case 2:
		return fmt.Sprintf("Neither %s nor %s", quoted[0], quoted[1])
	default:
		return "None of " + strings.Join(quoted, ", ")
	}
}
