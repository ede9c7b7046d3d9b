package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mermaidlint/internal/gitrepo"
	"github.com/felixgeelhaar/mermaidlint/internal/scaffold"
)

type scaffoldOptions struct {
	issue    string
	kind     string
	repo     string
	out      string
	stdout   bool
	noLookup bool
}

func newScaffoldCmd() *cobra.Command {
	opts := &scaffoldOptions{}

	cmd := &cobra.Command{
		Use:   "scaffold --issue <number|url>",
		Short: "Write an issue document skeleton with a Mermaid diagram stub",
		Long: `Render the issue document template for a GitHub issue. The title and URL are
looked up through the GitHub API (token from github.token, MERMAIDLINT_GITHUB_TOKEN
or GITHUB_TOKEN). When the lookup is not possible the placeholders
"[issue title]" and "[issue url]" are used instead.

The repository comes from --repo, the issue URL, or the origin remote of the
current git repository.

Examples:
  mermaidlint scaffold --issue 123 > /tmp/issue.md
  mermaidlint scaffold --issue 123 --kind bug
  mermaidlint scaffold --issue https://github.com/org/repo/issues/123
  mermaidlint scaffold --issue 123 --repo org/repo --out ./issue-123.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.issue, "issue", "", "issue number or URL")
	cmd.Flags().StringVar(&opts.kind, "kind", "feature", "template kind: feature, bug, chore")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "repository as OWNER/REPO")
	cmd.Flags().StringVar(&opts.out, "out", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write to stdout even when --out is set")
	cmd.Flags().BoolVar(&opts.noLookup, "no-lookup", false, "skip the GitHub API and use placeholders")
	_ = cmd.MarkFlagRequired("issue")
	return cmd
}

func runScaffold(cmd *cobra.Command, opts *scaffoldOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	s := &scaffold.Scaffolder{
		Remote: func() (string, error) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return gitrepo.OriginURL(wd)
		},
		Logger: cc.Logger,
	}
	if !opts.noLookup {
		src, err := scaffold.NewGitHubSource(ctx, cc.Config.GitHub.Token, cc.Config.GitHub.APIURL)
		if err != nil {
			cc.Logger.Warn("issue lookup disabled", "error", err.Error())
		} else {
			s.Source = src
		}
	}

	repo := firstNonEmpty(opts.repo, cc.Config.GitHub.Repo)
	content, err := s.Render(ctx, scaffold.Request{Issue: opts.issue, Kind: opts.kind, Repo: repo})
	if err != nil {
		return err
	}

	if opts.stdout || opts.out == "" {
		_, err := io.WriteString(cc.Out, content)
		return err
	}

	if err := scaffold.WriteFile(opts.out, content); err != nil {
		return err
	}
	fmt.Fprintf(cc.Err, "Wrote %s\n", opts.out)
	return nil
}
