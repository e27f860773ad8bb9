package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/compasdx/gate/internal/obslog"
	"github.com/compasdx/gate/internal/runconfig"
)

var (
	flagRepoRoot string
	flagMode     string
	flagOutput   string
	flagLogLevel string
	flagNoColor  bool

	cfg runconfig.Config
)

// rootCmd is the base command when compasvalidate is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "compasvalidate",
	Short: "Offline repository quality gate",
	Long: `compasvalidate checks a repository's .agents/mcp/compas configuration
against its source tree and reports rule violations, a risk summary, a
trust score, and a pass/blocked/retryable verdict.

Core Commands:
  validate    Run the quality gate and print the schema-v3 result
  describe    Print the merged plugin/tool/gate configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := runconfig.Load(flagRepoRoot, runconfig.Config{
			RepoRoot: flagRepoRoot,
			Mode:     flagMode,
			Output:   flagOutput,
			LogLevel: flagLogLevel,
			Color:    !flagNoColor,
		})
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		obslog.Configure(os.Stderr, obslog.ParseLevel(cfg.LogLevel), cfg.LogLevel == "debug")
		return nil
	},
}

// Execute runs the root command. Exit code 0 means the gate passed, 2
// means it ran to completion and blocked or asked for a retry, 1 means
// it could not run at all (bad flags, unreadable config, I/O failure).
func Execute() {
	err := rootCmd.Execute()
	if errors.Is(err, errValidationFailed) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "compasvalidate:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepoRoot, "repo-root", "", "repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "enforcement mode: warn, ratchet, or strict")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "set the CLI color setting to false (json and yaml output are never colored)")
}
