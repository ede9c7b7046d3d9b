package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mermaidlint/internal/document"
	"github.com/felixgeelhaar/mermaidlint/internal/extract"
	"github.com/felixgeelhaar/mermaidlint/internal/runner"
	"github.com/felixgeelhaar/mermaidlint/internal/ux"
	"github.com/felixgeelhaar/mermaidlint/internal/validate"
	"github.com/felixgeelhaar/mermaidlint/internal/watch"
	"github.com/felixgeelhaar/mermaidlint/internal/workspace"
)

type validateOptions struct {
	keep   bool
	strict bool
	format string
	watch  bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <markdown-file>",
		Short: "Render every Mermaid block in a Markdown file",
		Long: `Extract the fenced Mermaid blocks of a Markdown file and render each one with
the Mermaid CLI (via npx, then bunx). Every block is rendered even when an
earlier one fails.

The temporary workspace is removed after a clean run. It is kept, and its path
printed, when a block fails, when no runner is available, or with --keep-tmp.

Exit codes:
  0  all blocks rendered, or no blocks found
  1  the file or workspace could not be used
  2  usage error
  3  at least one block failed to render
  4  neither npx nor bunx is available

Examples:
  mermaidlint validate README.md
  mermaidlint validate docs/design.md --keep-tmp
  mermaidlint validate docs/design.md --format json
  mermaidlint validate docs/design.md --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.keep, "keep-tmp", false, "keep the temporary workspace even when every block renders")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "find blocks with a CommonMark parser instead of the fence scanner")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-validate whenever the file changes")
	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts *validateOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(opts.format, &ux.FormatterOptions{
		Writer:    cc.Out,
		ErrWriter: cc.Err,
		NoColor:   cc.NoColor,
	})
	if err != nil {
		return usageError(err)
	}

	once := func(ctx context.Context) error {
		report, err := validateOnce(ctx, cc, path, opts)
		if report != nil {
			// An interrupted run still has a kept workspace to point at.
			if ferr := formatter.Format(report); ferr != nil {
				return fmt.Errorf("write report: %w", ferr)
			}
		}
		if err != nil {
			return err
		}
		return reported(report.Err())
	}

	if !opts.watch {
		return once(cmd.Context())
	}

	w := &watch.Watcher{
		Path:     path,
		Debounce: cc.Config.Watch.Debounce,
		Logger:   cc.Logger,
		Screen:   cc.Out,
	}
	return w.Run(cmd.Context(), func(ctx context.Context) error {
		err := once(ctx)
		if err != nil && !IsReported(err) {
			cc.Console.Failure("Error: %v", err)
		}
		return err
	})
}

// validateOnce loads the document fresh and runs one independent validation.
func validateOnce(ctx context.Context, cc *CommandContext, path string, opts *validateOptions) (*validate.Report, error) {
	doc, err := document.Load(path, cc.Logger)
	if err != nil {
		return nil, err
	}

	keep, strict := doc.Directives.Merge(opts.keep || cc.Config.Workspace.Keep, opts.strict || cc.Config.Extract.Strict)

	var extractor extract.Extractor = extract.NewFenceScanner(cc.Config.Extract.Language)
	if strict {
		extractor = extract.NewStrictParser(cc.Config.Extract.Language)
	}

	v := &validate.Validator{
		Extractor:  extractor,
		Resolver:   runner.NewProbeResolver(cc.Config.Runners, runner.SystemExecutor{}, cc.Logger),
		Workspaces: workspace.NewManager(cc.Config.Workspace.Dir, cc.Config.Workspace.Prefix, cc.Config.Workspace.Extension, cc.Logger),
		Candidates: runner.Commands(cc.Config.Runners),
		Logger:     cc.Logger,
	}
	return v.Run(ctx, doc.Text, validate.Options{Keep: keep, Document: path})
}
