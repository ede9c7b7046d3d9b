package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mermaidlint/internal/version"
)

func newVersionCmd() *cobra.Command {
	var verbose, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if verbose {
				fmt.Fprintln(out, info.String())
				return nil
			}

			fmt.Fprintf(out, "mermaidlint %s\n", info.Short())
			return nil
		},
	}

	// -v is taken by the persistent --verbose flag.
	cmd.Flags().BoolVar(&verbose, "long", false, "show detailed version information")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output version information as JSON")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("verbose"); err == nil && v {
			verbose = true
		}
	}
	return cmd
}
