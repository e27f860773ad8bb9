package checks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// contractBaseline is the recorded shape of a baseline_path file: the
// sorted set of exported symbol names the last accepted run observed.
type contractBaseline struct {
	Symbols []string `json:"symbols"`
}

// runContractBreak compares the repo's current exported symbols against a
// recorded baseline and flags any symbol the baseline had that the current
// scan no longer finds — a public API removed without a matching version
// bump. A missing baseline is not itself a violation; write-baseline mode
// is what creates one.
func runContractBreak(repoRoot string, configs []manifest.ContractBreakCheckConfig) []api.Violation {
	var violations []api.Violation

	for _, cfg := range configs {
		baselinePath := filepath.Join(repoRoot, cfg.BaselinePath)
		data, err := os.ReadFile(baselinePath)
		if err != nil {
			continue
		}
		var baseline contractBaseline
		if err := json.Unmarshal(data, &baseline); err != nil {
			violations = append(violations, internalError("contract_break", err))
			continue
		}

		files, err := pathscan.Scan(repoRoot, nil, nil)
		if err != nil {
			violations = append(violations, internalError("contract_break", err))
			continue
		}
		current := map[string]bool{}
		for _, f := range files {
			if !pathscan.IsProbablyCodeFile(f.RelPath) {
				continue
			}
			content, err := os.ReadFile(f.AbsPath)
			if err != nil {
				continue
			}
			for _, name := range extractSymbols(string(content), exportedDeclarationPatterns, 1) {
				current[name] = true
			}
		}

		var removed []string
		for _, name := range baseline.Symbols {
			if !current[name] {
				removed = append(removed, name)
			}
		}
		sort.Strings(removed)
		for _, name := range removed {
			violations = append(violations, api.NewErrorViolation(
				"contract_break.symbol_removed",
				fmt.Sprintf("exported symbol %q present in the recorded contract baseline is no longer found in the repo", name),
				cfg.BaselinePath,
				map[string]any{"check_id": cfg.ID, "symbol": name},
			))
		}
	}
	return violations
}
