package checks

import (
	"fmt"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// runToolBudget is ported directly from original_source's
// run_tool_budget_check: every violation is observation-tier, since a
// budget overrun is a governance signal (gate sprawl), not a correctness
// defect, and the counters it checks come from the caller's BudgetContext
// rather than being recomputed here.
func runToolBudget(cfg manifest.ChecksConfig, budget BudgetContext) []api.Violation {
	var violations []api.Violation

	for _, check := range cfg.ToolBudget {
		if check.MaxToolsTotal > 0 && budget.TotalTools > check.MaxToolsTotal {
			violations = append(violations, api.NewObservationViolation(
				"tool_budget.max_tools_total_exceeded",
				fmt.Sprintf("tool count exceeds budget: total=%d > max=%d", budget.TotalTools, check.MaxToolsTotal),
				".agents/mcp/compas/plugins",
				map[string]any{"check_id": check.ID, "total": budget.TotalTools, "max": check.MaxToolsTotal},
			))
		}

		for pluginID, total := range budget.ToolsPerPlugin {
			if check.MaxToolsPerPlugin > 0 && total > check.MaxToolsPerPlugin {
				violations = append(violations, api.NewObservationViolation(
					"tool_budget.max_tools_per_plugin_exceeded",
					fmt.Sprintf("plugin %s exceeds tool budget: total=%d > max=%d", pluginID, total, check.MaxToolsPerPlugin),
					fmt.Sprintf(".agents/mcp/compas/plugins/%s/plugin.toml", pluginID),
					map[string]any{"check_id": check.ID, "plugin_id": pluginID, "total": total, "max": check.MaxToolsPerPlugin},
				))
			}
		}

		for _, tier := range []struct {
			kind  string
			total int
		}{
			{"ci_fast", budget.GateCIFast},
			{"ci", budget.GateCI},
			{"flagship", budget.GateFlagship},
		} {
			if check.MaxGateToolsPerKind > 0 && tier.total > check.MaxGateToolsPerKind {
				violations = append(violations, api.NewObservationViolation(
					"tool_budget.max_gate_tools_exceeded",
					fmt.Sprintf("gate %s exceeds budget: total=%d > max=%d", tier.kind, tier.total, check.MaxGateToolsPerKind),
					".agents/mcp/compas/plugins",
					map[string]any{"check_id": check.ID, "gate_kind": tier.kind, "total": tier.total, "max": check.MaxGateToolsPerKind},
				))
			}
		}

		if check.MaxChecksTotal > 0 && budget.TotalChecks > check.MaxChecksTotal {
			violations = append(violations, api.NewObservationViolation(
				"tool_budget.max_checks_total_exceeded",
				fmt.Sprintf("checks count exceeds budget: total=%d > max=%d", budget.TotalChecks, check.MaxChecksTotal),
				".agents/mcp/compas/plugins",
				map[string]any{"check_id": check.ID, "total": budget.TotalChecks, "max": check.MaxChecksTotal},
			))
		}
	}
	return violations
}
