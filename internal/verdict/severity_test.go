package verdict

import (
	"testing"

	"github.com/compasdx/gate/internal/api"
)

func TestSeverityForCodeResolvesEveryEmittedCheckCode(t *testing.T) {
	cases := map[string]api.Severity{
		"security.allow_any_policy":          api.SeverityCritical,
		"config.threshold_weakened":          api.SeverityCritical,
		"config.mandatory_check_removed":     api.SeverityCritical,
		"loc.max_exceeded":                   api.SeverityMedium,
		"boundary.rule_violation":            api.SeverityHigh,
		"boundary.invalid_deny_regex":        api.SeverityHigh,
		"duplicates.found":                   api.SeverityLow,
		"surface.max_exceeded":               api.SeverityLow,
		"surface.invalid_regex":              api.SeverityHigh,
		"env_registry.registry_missing":      api.SeverityMedium,
		"env_registry.unregistered_usage":    api.SeverityMedium,
		"env_registry.required_missing":      api.SeverityMedium,
		"supply_chain.lockfile_missing":      api.SeverityHigh,
		"supply_chain.prerelease_dependency": api.SeverityMedium,
		"tool_budget.max_tools_total_exceeded": api.SeverityLow,
		"tools.duplicate_exact":              api.SeverityMedium,
		"reuse_first.duplicate_block":        api.SeverityLow,
		"arch_layers.forbidden_dependency":   api.SeverityHigh,
		"dead_code.unreferenced_symbol":      api.SeverityLow,
		"orphan_api.no_caller":               api.SeverityLow,
		"complexity_budget.function_too_long": api.SeverityMedium,
		"contract_break.symbol_removed":      api.SeverityHigh,
	}
	for code, want := range cases {
		if got := SeverityForCode(code); got != want {
			t.Errorf("SeverityForCode(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestSeverityForCodeTreatsQualityDeltaNamespaceAsCritical(t *testing.T) {
	for _, code := range []string{
		"quality_delta.trust_regression",
		"quality_delta.coverage_regression",
		"quality_delta.scope_narrowed",
	} {
		if got := SeverityForCode(code); got != api.SeverityCritical {
			t.Errorf("SeverityForCode(%q) = %q, want critical", code, got)
		}
	}
}

func TestSeverityForCodeFallsBackToHighForInternalErrors(t *testing.T) {
	if got := SeverityForCode("loc.internal_error"); got != api.SeverityHigh {
		t.Fatalf("expected internal_error codes to resolve high, got %q", got)
	}
}

func TestSeverityForCodeFallsBackToMediumForUnknownCode(t *testing.T) {
	if got := SeverityForCode("made_up.not_a_real_code"); got != api.SeverityMedium {
		t.Fatalf("expected an unrecognized code to fail closed to medium, got %q", got)
	}
}
