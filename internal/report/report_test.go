package report

import (
	"testing"

	"github.com/compasdx/gate/internal/api"
)

func TestBuildSetsOKFromVerdictStatus(t *testing.T) {
	v := api.Verdict{Decision: api.Decision{Status: api.DecisionPass}}
	out := Build(nil, nil, nil, api.RiskSummary{}, api.TrustScore{}, v)

	if !out.OK {
		t.Fatal("expected OK=true for a pass verdict")
	}
	if out.SchemaVersion != SchemaVersion {
		t.Errorf("expected schema version %q, got %q", SchemaVersion, out.SchemaVersion)
	}
	if out.Violations == nil || out.Suppressed == nil || out.FindingsV2 == nil {
		t.Fatal("expected nil slices to be normalized to empty, not left nil")
	}
	if out.Verdict == nil || out.Verdict.Decision.Status != api.DecisionPass {
		t.Fatalf("expected the verdict to be carried through, got %+v", out.Verdict)
	}
}

func TestBuildReportsNotOKForBlockedOrRetryable(t *testing.T) {
	for _, status := range []api.DecisionStatus{api.DecisionBlocked, api.DecisionRetryable} {
		v := api.Verdict{Decision: api.Decision{Status: status}}
		out := Build(nil, nil, nil, api.RiskSummary{}, api.TrustScore{}, v)
		if out.OK {
			t.Errorf("expected OK=false for decision status %q", status)
		}
	}
}

func TestBuildPreservesProvidedSlices(t *testing.T) {
	violations := []api.Violation{api.NewErrorViolation("loc.max_exceeded", "too long", "f.go", nil)}
	suppressed := []api.Violation{api.NewObservationViolation("loc.max_exceeded", "suppressed", "g.go", nil)}
	findings := []api.FindingV2{{Code: "loc.max_exceeded", Severity: api.SeverityLow}}
	v := api.Verdict{Decision: api.Decision{Status: api.DecisionBlocked}}

	out := Build(violations, suppressed, findings, api.RiskSummary{}, api.TrustScore{}, v)
	if len(out.Violations) != 1 || len(out.Suppressed) != 1 || len(out.FindingsV2) != 1 {
		t.Fatalf("expected the provided slices to pass through unchanged, got %+v", out)
	}
}

func TestBuildErrorCarriesNoVerdictOrFindings(t *testing.T) {
	out := BuildError("allowlist.toml: decode failed")
	if out.OK {
		t.Fatal("expected OK=false on a load-time error")
	}
	if out.Error != "allowlist.toml: decode failed" {
		t.Errorf("unexpected error message: %q", out.Error)
	}
	if out.Verdict != nil {
		t.Fatal("expected no verdict on a load-time error")
	}
	if out.RiskSummary != nil || out.TrustScore != nil {
		t.Fatal("expected no risk summary or trust score on a load-time error")
	}
	if len(out.Violations) != 0 || len(out.Suppressed) != 0 || len(out.FindingsV2) != 0 {
		t.Fatalf("expected empty, non-nil slices, got %+v", out)
	}
}
