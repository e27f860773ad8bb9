package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compasdx/gate"
)

func init() {
	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the repo's merged plugin/tool/gate configuration",
		Long: `describe loads and merges every plugin.toml under
.agents/mcp/compas/plugins without running any check, allowlist, or
baseline comparison. Use it to inspect what a repo's configuration
resolves to before running validate.`,
		RunE: runDescribe,
	}
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	desc := gate.Describe(cfg.RepoRoot)
	if err := renderOutput(cmd, cfg.Output, desc); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	if desc.Error != "" {
		return fmt.Errorf("%s", desc.Error)
	}
	return nil
}
