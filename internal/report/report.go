// Package report assembles the final schema-v3 structured output from
// the pieces internal/verdict computes.
package report

import "github.com/compasdx/gate/internal/api"

// SchemaVersion is the wire schema version this package emits.
const SchemaVersion = "3"

// Build assembles a successful run's ValidateOutput. ok is true only when
// the decision is Pass — Retryable and Blocked both report ok=false so
// callers never have to inspect the verdict to decide their exit code.
func Build(violations, suppressed []api.Violation, findings []api.FindingV2, risk api.RiskSummary, trust api.TrustScore, verdict api.Verdict) api.ValidateOutput {
	if violations == nil {
		violations = []api.Violation{}
	}
	if suppressed == nil {
		suppressed = []api.Violation{}
	}
	if findings == nil {
		findings = []api.FindingV2{}
	}
	return api.ValidateOutput{
		SchemaVersion: SchemaVersion,
		OK:            verdict.Decision.Status == api.DecisionPass,
		Violations:    violations,
		Suppressed:    suppressed,
		FindingsV2:    findings,
		RiskSummary:   &risk,
		TrustScore:    &trust,
		Verdict:       &verdict,
	}
}

// BuildError assembles the output for a run that could not proceed at
// all (a RepoConfigError, an unreadable filesystem) — no violations,
// findings, or verdict, just the top-level error string.
func BuildError(message string) api.ValidateOutput {
	return api.ValidateOutput{
		SchemaVersion: SchemaVersion,
		OK:            false,
		Violations:    []api.Violation{},
		Suppressed:    []api.Violation{},
		FindingsV2:    []api.FindingV2{},
		Error:         message,
	}
}
