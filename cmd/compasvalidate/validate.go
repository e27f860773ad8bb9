package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/compasdx/gate"
	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/obslog"
)

var (
	validateWriteBaseline bool
	validateWrittenBy     string
	validateFilter        string
)

func init() {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the quality gate against the repo",
		Long: `validate loads the repo's .agents/mcp/compas configuration, runs
every configured check, applies the allowlist, compares against the
recorded quality baseline, and prints the schema-v3 result.

Examples:
  compasvalidate validate
  compasvalidate validate --mode strict
  compasvalidate validate --filter loc
  compasvalidate validate --write-baseline --written-by ci:nightly`,
		RunE: runValidate,
	}
	validateCmd.Flags().BoolVar(&validateWriteBaseline, "write-baseline", false, "record the current posture as the new quality baseline instead of comparing against it")
	validateCmd.Flags().StringVar(&validateWrittenBy, "written-by", "", "identity stamped on a written baseline")
	validateCmd.Flags().StringVar(&validateFilter, "filter", "", "restrict the check engine to a single check kind (e.g. loc, duplicates)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	mode := api.Mode(cfg.Mode)
	obslog.Logger().Info("running validate", "repo_root", cfg.RepoRoot, "mode", mode)

	var filter *string
	if validateFilter != "" {
		filter = &validateFilter
	}

	out := gate.Validate(cfg.RepoRoot, gate.Options{
		Mode:          mode,
		WriteBaseline: validateWriteBaseline,
		WrittenBy:     validateWrittenBy,
		Now:           time.Now(),
		Filter:        filter,
	})

	if err := renderOutput(cmd, cfg.Output, out); err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	if out.Error != "" {
		return fmt.Errorf("%s", out.Error)
	}
	if !out.OK {
		cmd.SilenceErrors = true
		return errValidationFailed
	}
	return nil
}
