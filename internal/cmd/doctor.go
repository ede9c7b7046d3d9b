package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mermaidlint/internal/gitrepo"
	"github.com/felixgeelhaar/mermaidlint/internal/runner"
	"github.com/felixgeelhaar/mermaidlint/internal/ux"
	"github.com/felixgeelhaar/mermaidlint/internal/workspace"
)

// DoctorReport is the result of all environment checks.
type DoctorReport struct {
	Runners   []*DoctorCheck `json:"runners" yaml:"runners"`
	Config    *DoctorCheck   `json:"config" yaml:"config"`
	Workspace *DoctorCheck   `json:"workspace" yaml:"workspace"`
	Git       *DoctorCheck   `json:"git" yaml:"git"`
	Issues    []string       `json:"issues" yaml:"issues"`
	NextSteps []string       `json:"next_steps" yaml:"next_steps"`
	Healthy   bool           `json:"healthy" yaml:"healthy"`
}

// DoctorCheck represents a single health check result
type DoctorCheck struct {
	Name    string `json:"name" yaml:"name"`
	Status  string `json:"status" yaml:"status"` // "ok", "warning", "error", "missing"
	Message string `json:"message" yaml:"message"`
}

func newDoctorCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that validation can run here",
		Long: `Run diagnostics for the current environment.

Checks include:
  - every configured Mermaid CLI runner (probed with --version)
  - the configuration file in use
  - the workspace parent directory
  - the enclosing git repository and its origin remote (used by scaffold)

Unlike validate, which stops at the first working runner, doctor probes them all.

Examples:
  mermaidlint doctor
  mermaidlint doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, yaml")
	return cmd
}

func runDoctor(cmd *cobra.Command, format string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	report := &DoctorReport{Issues: []string{}, NextSteps: []string{}}
	checkRunners(cmd.Context(), runner.SystemExecutor{}, cc.Config.Runners, report)
	checkConfig(cc.ConfigPath, report)
	checkWorkspace(workspace.NewManager(cc.Config.Workspace.Dir, cc.Config.Workspace.Prefix, cc.Config.Workspace.Extension, cc.Logger), report)
	checkGit(report)
	report.Healthy = len(report.Issues) == 0

	formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: cc.Out, ErrWriter: cc.Err, NoColor: cc.NoColor})
	if err != nil {
		return usageError(err)
	}
	if err := formatter.Format(report); err != nil {
		return err
	}
	if !report.Healthy {
		return reported(fmt.Errorf("%d doctor check(s) failed", len(report.Issues)))
	}
	return nil
}

func checkRunners(ctx context.Context, exec runner.Executor, candidates []runner.Candidate, report *DoctorReport) {
	available := 0
	for _, c := range candidates {
		check := &DoctorCheck{Name: strings.TrimSpace(c.Command + " " + strings.Join(c.ArgumentPrefix, " "))}
		if err := runner.Probe(ctx, exec, c); err != nil {
			check.Status = "missing"
			check.Message = err.Error()
		} else {
			check.Status = "ok"
			check.Message = "responds to --version"
			available++
		}
		report.Runners = append(report.Runners, check)
	}

	if available == 0 {
		report.Issues = append(report.Issues, "No Mermaid CLI runner is available")
		report.NextSteps = append(report.NextSteps,
			"Install Node tooling (npm) or Bun so that npx or bunx is on PATH",
			"Or list a locally installed mmdc under runners in .mermaidlint.yaml")
	}
}

func checkConfig(path string, report *DoctorReport) {
	if path == "" {
		report.Config = &DoctorCheck{Name: "Config", Status: "ok", Message: "no config file, using defaults"}
		return
	}
	report.Config = &DoctorCheck{Name: "Config", Status: "ok", Message: "loaded " + path}
}

func checkWorkspace(m *workspace.Manager, report *DoctorReport) {
	ws, err := m.Acquire()
	if err != nil {
		report.Workspace = &DoctorCheck{Name: "Workspace", Status: "error", Message: err.Error()}
		report.Issues = append(report.Issues, "Workspace directory is not writable")
		report.NextSteps = append(report.NextSteps, "Set workspace.dir or MERMAIDLINT_WORKSPACE_DIR to a writable directory")
		return
	}
	parent := m.Dir
	if parent == "" {
		parent = os.TempDir()
	}
	ws.Release(workspace.OutcomePassed, false)
	report.Workspace = &DoctorCheck{Name: "Workspace", Status: "ok", Message: "writable: " + parent}
}

func checkGit(report *DoctorReport) {
	wd, err := os.Getwd()
	if err != nil {
		report.Git = &DoctorCheck{Name: "Git", Status: "missing", Message: err.Error()}
		return
	}

	root, err := gitrepo.Root(wd)
	if err != nil {
		report.Git = &DoctorCheck{Name: "Git", Status: "missing", Message: "Not a Git repository"}
		return
	}

	origin, err := gitrepo.OriginURL(wd)
	if err != nil {
		report.Git = &DoctorCheck{Name: "Git", Status: "warning", Message: fmt.Sprintf("repository at %s has no origin remote; scaffold needs --repo", root)}
		return
	}
	report.Git = &DoctorCheck{Name: "Git", Status: "ok", Message: fmt.Sprintf("repository at %s, origin %s", root, origin)}
}

// PrintText implements ux.TextPrinter.
func (r *DoctorReport) PrintText(c *ux.Console) error {
	c.Plain("Mermaid CLI runners:")
	for _, check := range r.Runners {
		printCheck(c, check)
	}
	c.Plain("")
	c.Plain("Environment:")
	for _, check := range []*DoctorCheck{r.Config, r.Workspace, r.Git} {
		if check != nil {
			printCheck(c, check)
		}
	}

	if len(r.NextSteps) > 0 {
		c.Plain("")
		c.Plain("Next steps:")
		for i, step := range r.NextSteps {
			c.Plain("  %d. %s", i+1, step)
		}
	}

	c.Plain("")
	if r.Healthy {
		c.Success("Ready to validate Mermaid diagrams.")
	} else {
		c.Failure("Validation cannot run until the issues above are fixed.")
	}
	return nil
}

func printCheck(c *ux.Console, check *DoctorCheck) {
	icon := " "
	switch check.Status {
	case "ok":
		icon = "✓"
	case "warning":
		icon = "⚠"
	case "error":
		icon = "✗"
	case "missing":
		icon = "○"
	}
	c.Plain("  %s %s: %s", icon, check.Name, check.Message)
}
