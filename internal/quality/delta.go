package quality

import (
	"fmt"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// ComputeDelta compares baseline against current under contract's
// thresholds and returns the anti-gaming violations this regression set
// names. Every returned violation is observation-tier: quality-delta
// findings are always reported and carry severity critical
// (internal/verdict's code table), but they block the decision only
// under ratchet/strict mode, not warn — VerdictComposer applies that
// escalation, not the tier itself.
func ComputeDelta(baseline, current Snapshot, contract manifest.QualityContract) []api.Violation {
	var out []api.Violation

	if current.TrustScore < baseline.TrustScore && !contract.Quality.AllowTrustDrop {
		out = append(out, api.NewObservationViolation("quality_delta.trust_regression",
			fmt.Sprintf("trust score dropped from %.1f to %.1f", baseline.TrustScore, current.TrustScore),
			"", map[string]any{"baseline": baseline.TrustScore, "current": current.TrustScore}))
	}

	if baseCov, curCov := baseline.CoverageRatio(), current.CoverageRatio(); curCov < baseCov && !contract.Quality.AllowCoverageDrop {
		out = append(out, api.NewObservationViolation("quality_delta.coverage_regression",
			fmt.Sprintf("coverage ratio dropped from %.4f to %.4f", baseCov, curCov),
			"", map[string]any{"baseline": baseCov, "current": curCov}))
	}

	riskIncrease := current.WeightedRisk - baseline.WeightedRisk
	highWorsened := current.RiskBySeverity["high"] > baseline.RiskBySeverity["high"] && riskIncrease > 0
	if riskIncrease > contract.Quality.MaxWeightedRiskIncrease || highWorsened {
		out = append(out, api.NewObservationViolation("quality_delta.risk_profile_regression",
			fmt.Sprintf("weighted risk increased by %.2f (max allowed %.2f)", riskIncrease, contract.Quality.MaxWeightedRiskIncrease),
			"", map[string]any{"baseline_weighted_risk": baseline.WeightedRisk, "current_weighted_risk": current.WeightedRisk}))
	}

	if narrowed, scope, baseRatio, curRatio := scopeNarrowing(baseline.FileUniverse, current.FileUniverse, contract.Baseline.MaxScopeNarrowing); narrowed {
		out = append(out, api.NewObservationViolation("quality_delta.scope_narrowed",
			fmt.Sprintf("%s scan coverage narrowed from %.4f to %.4f", scope, baseRatio, curRatio),
			"", map[string]any{"scope": scope, "baseline_ratio": baseRatio, "current_ratio": curRatio}))
	}

	if current.ConfigHash != baseline.ConfigHash {
		out = append(out, api.NewObservationViolation("quality_delta.config_changed",
			"the merged configuration hash differs from the baseline's",
			"", map[string]any{"baseline": baseline.ConfigHash, "current": current.ConfigHash}))
	}

	return out
}

// scopeNarrowing finds the first universe (in a stable check order) whose
// scanned/universe ratio dropped by more than maxDrop.
func scopeNarrowing(base, cur FileUniverse, maxDrop float64) (narrowed bool, scope string, baseRatio, curRatio float64) {
	scopes := []struct {
		name string
		base float64
		cur  float64
	}{
		{"loc", base.locRatio(), cur.locRatio()},
		{"surface", base.surfaceRatio(), cur.surfaceRatio()},
		{"boundary", base.boundaryRatio(), cur.boundaryRatio()},
		{"duplicates", base.duplicatesRatio(), cur.duplicatesRatio()},
	}
	for _, s := range scopes {
		if s.base-s.cur > maxDrop {
			return true, s.name, s.base, s.cur
		}
	}
	return false, "", 0, 0
}
