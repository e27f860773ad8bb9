package verdict

import "github.com/compasdx/gate/internal/api"

// severityTable maps a violation code to its aggregated finding severity.
// quality_delta.* codes are handled separately (always critical) since
// they are a whole namespace rather than individual entries; everything
// else is looked up here, falling back to high for any check's generic
// <kind>.internal_error and to medium for unknown codes — fail-closed, so
// an unrecognized code must still surface rather than silently drop in
// severity.
var severityTable = map[string]api.Severity{
	"security.allow_any_policy":                 api.SeverityCritical,
	"config.threshold_weakened":                 api.SeverityCritical,
	"config.mandatory_check_removed":            api.SeverityCritical,
	"exception.allowlist_invalid":               api.SeverityHigh,
	"exception.max_exceptions_exceeded":         api.SeverityMedium,
	"exception.max_suppressed_ratio_exceeded":   api.SeverityMedium,
	"exception.window_exceeded":                 api.SeverityMedium,
	"loc.max_exceeded":                          api.SeverityMedium,
	"boundary.rule_violation":                   api.SeverityHigh,
	"boundary.invalid_deny_regex":                api.SeverityHigh,
	"duplicates.found":                          api.SeverityLow,
	"surface.max_exceeded":                      api.SeverityLow,
	"surface.invalid_regex":                     api.SeverityHigh,
	"env_registry.registry_missing":             api.SeverityMedium,
	"env_registry.unregistered_usage":           api.SeverityMedium,
	"env_registry.required_missing":             api.SeverityMedium,
	"supply_chain.lockfile_missing":             api.SeverityHigh,
	"supply_chain.prerelease_dependency":        api.SeverityMedium,
	"tool_budget.max_tools_total_exceeded":      api.SeverityLow,
	"tool_budget.max_tools_per_plugin_exceeded": api.SeverityLow,
	"tool_budget.max_gate_tools_exceeded":       api.SeverityLow,
	"tool_budget.max_checks_total_exceeded":     api.SeverityLow,
	"tools.duplicate_exact":                     api.SeverityMedium,
	"reuse_first.duplicate_block":               api.SeverityLow,
	"arch_layers.forbidden_dependency":          api.SeverityHigh,
	"dead_code.unreferenced_symbol":             api.SeverityLow,
	"orphan_api.no_caller":                      api.SeverityLow,
	"complexity_budget.function_too_long":       api.SeverityMedium,
	"complexity_budget.cyclomatic_exceeded":     api.SeverityMedium,
	"complexity_budget.cognitive_exceeded":      api.SeverityMedium,
	"contract_break.symbol_removed":             api.SeverityHigh,
}

const qualityDeltaPrefix = "quality_delta."

// SeverityForCode resolves a violation code to its aggregated severity.
func SeverityForCode(code string) api.Severity {
	if len(code) > len(qualityDeltaPrefix) && code[:len(qualityDeltaPrefix)] == qualityDeltaPrefix {
		return api.SeverityCritical
	}
	if sev, ok := severityTable[code]; ok {
		return sev
	}
	if isInternalErrorCode(code) {
		return api.SeverityHigh
	}
	return api.SeverityMedium
}

func isInternalErrorCode(code string) bool {
	const suffix = ".internal_error"
	return len(code) > len(suffix) && code[len(code)-len(suffix):] == suffix
}
