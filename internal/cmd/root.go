package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Each call returns independent flag
// state, which keeps tests free of globals.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mermaidlint",
		Short: "Validate Mermaid diagrams embedded in Markdown",
		Long: `mermaidlint extracts every fenced Mermaid block from a Markdown document and
renders each one with the Mermaid CLI, so broken diagrams are caught before the
document is published.

The Mermaid CLI is run through npx or bunx; nothing is installed globally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: .mermaidlint.yaml or .mermaidlint.toml, searched upward to the git root, then $HOME)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text, json")
	pf.String("log-file", "", "write logs to this file instead of stderr (rotated)")
	pf.Bool("no-color", false, "disable styled output")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newValidateCmd(),
		newScaffoldCmd(),
		newConfigCmd(),
		newDoctorCmd(),
		newVersionCmd(),
		newCompletionCmd(root),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// SIGINT/SIGTERM by main.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
