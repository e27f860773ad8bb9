// Package verdict aggregates a run's violations into findings, a risk
// summary, a trust score, and a final pass/blocked/retryable decision
// under the selected enforcement mode: severity escalation by rule code
// and weighted partial-credit scoring, generalized from per-repo health
// metrics to per-run violation aggregation.
package verdict

import (
	"sort"

	"github.com/compasdx/gate/internal/api"
)

// Compose runs the bucket/score/decide pipeline over one run's
// violations (already allowlist-filtered) and returns the pieces a
// Reporter assembles into schema v3 output.
func Compose(violations []api.Violation, mode api.Mode) ([]api.FindingV2, api.RiskSummary, api.TrustScore, api.Verdict) {
	findings := bucketFindings(violations)
	risk := computeRiskSummary(findings)
	trust := computeTrustScore(risk)
	decision := resolveDecision(violations, mode)
	return findings, risk, trust, api.Verdict{Decision: decision}
}

func bucketFindings(violations []api.Violation) []api.FindingV2 {
	findings := make([]api.FindingV2, 0, len(violations))
	for _, v := range violations {
		findings = append(findings, api.FindingV2{
			Code:     v.Code,
			Message:  v.Message,
			Path:     v.Path,
			Severity: SeverityForCode(v.Code),
			Details:  v.Details,
		})
	}
	return findings
}

func computeRiskSummary(findings []api.FindingV2) api.RiskSummary {
	bySeverity := map[api.Severity]int{}
	var weighted float64
	for _, f := range findings {
		bySeverity[f.Severity]++
		weighted += api.SeverityWeights[f.Severity]
	}
	return api.RiskSummary{BySeverity: bySeverity, WeightedTotal: weighted}
}

func computeTrustScore(risk api.RiskSummary) api.TrustScore {
	score := 100 - risk.WeightedTotal
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return api.TrustScore{Score: score}
}

// isQualityOrGovernanceCode reports whether code is one of the
// quality-delta namespace or the mandatory-governance removal code —
// the findings that only block under ratchet/strict mode, unlike
// security/config-tamper violations which block in every mode because
// they are always emitted at error tier.
func isQualityOrGovernanceCode(code string) bool {
	const prefix = "quality_delta."
	if len(code) > len(prefix) && code[:len(prefix)] == prefix {
		return true
	}
	return code == "config.mandatory_check_removed"
}

func isTransientCode(code string) bool {
	return isInternalErrorCode(code) || code == "env_registry.registry_missing"
}

func resolveDecision(violations []api.Violation, mode api.Mode) api.Decision {
	var blocking []api.Violation
	for _, v := range violations {
		switch {
		case mode == api.ModeStrict:
			blocking = append(blocking, v)
		case v.Tier == api.TierError:
			blocking = append(blocking, v)
		case mode == api.ModeRatchet && isQualityOrGovernanceCode(v.Code):
			blocking = append(blocking, v)
		}
	}

	if len(blocking) == 0 {
		return api.Decision{Status: api.DecisionPass}
	}

	allTransient := true
	for _, v := range blocking {
		if !isTransientCode(v.Code) {
			allTransient = false
			break
		}
	}
	if allTransient {
		return api.Decision{Status: api.DecisionRetryable}
	}
	return api.Decision{Status: api.DecisionBlocked}
}

// SortViolations orders violations deterministically by (path, code) so
// Reporter output is byte-identical across runs of the same inputs.
func SortViolations(violations []api.Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Path != violations[j].Path {
			return violations[i].Path < violations[j].Path
		}
		return violations[i].Code < violations[j].Code
	})
}
