package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/mermaidlint/internal/config"
	"github.com/felixgeelhaar/mermaidlint/internal/ux"
)

func newConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration mermaidlint would use in the current directory:
built-in defaults, overridden by the discovered (or --config) file, overridden
by MERMAIDLINT_* environment variables. Secrets are never printed.

Examples:
  # View effective configuration
  mermaidlint config

  # Get a specific value
  mermaidlint config get workspace.extension

  # Show which file was loaded
  mermaidlint config path
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigView(cmd, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, yaml")

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value using dot notation (e.g. log.level)",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})
	return cmd
}

func runConfigView(cmd *cobra.Command, format string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if format == "json" || format == "yaml" {
		formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: cc.Out, NoColor: cc.NoColor})
		if err != nil {
			return err
		}
		return formatter.Format(cc.Config)
	}
	if format != "text" && format != "" {
		return usageError(fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format))
	}

	fmt.Fprintf(cc.Out, "# Configuration file: %s\n", describeSource(cc.ConfigPath))
	data, err := config.Marshal(cc.Config)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(data)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	value, err := getNestedValue(cc.Config, args[0])
	if err != nil {
		return usageError(err)
	}
	fmt.Fprintln(cc.Out, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, describeSource(cc.ConfigPath))
	return nil
}

func describeSource(path string) string {
	if path == "" {
		return "(none, using defaults)"
	}
	return path
}

// getNestedValue resolves a dotted key against the YAML view of cfg, so keys
// match what `mermaidlint config` prints.
func getNestedValue(cfg *config.Config, key string) (string, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return "", err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return "", err
	}

	var cur interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("unknown configuration key: %s", key)
		}
		if cur, ok = m[part]; !ok {
			return "", fmt.Errorf("unknown configuration key: %s", key)
		}
	}

	switch v := cur.(type) {
	case map[string]interface{}, []interface{}:
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return fmt.Sprint(v), nil
	}
}
