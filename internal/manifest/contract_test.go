package manifest

import "testing"

func TestLoadQualityContractAppliesCoverageDefaultWhenOmitted(t *testing.T) {
	c, err := LoadQualityContract([]byte(`
[quality]
min_trust_score = 70
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Quality.MinTrustScore != 70 {
		t.Fatalf("expected min_trust_score 70, got %d", c.Quality.MinTrustScore)
	}
	if c.Quality.MinCoveragePercent != defaultMinCoveragePercent {
		t.Fatalf("expected the default coverage floor to be applied, got %v", c.Quality.MinCoveragePercent)
	}
}

func TestLoadQualityContractTreatsExplicitZeroCoverageAsOmitted(t *testing.T) {
	c, err := LoadQualityContract([]byte(`
[quality]
min_coverage_percent = 0.0
allow_coverage_drop = true
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Quality.MinCoveragePercent != defaultMinCoveragePercent {
		t.Fatalf("an explicit 0.0 is indistinguishable from omission in TOML decode, expected the default to apply, got %v", c.Quality.MinCoveragePercent)
	}
}

func TestLoadQualityContractRejectsUnknownField(t *testing.T) {
	_, err := LoadQualityContract([]byte(`
[quality]
min_trust_score = 70
made_up_field = true
`))
	if err == nil {
		t.Fatal("expected an unknown field to be rejected")
	}
}

func TestDefaultQualityContractCarriesDocumentedDefaults(t *testing.T) {
	c := DefaultQualityContract()
	if c.Quality.MinTrustScore != 60 {
		t.Errorf("expected default min_trust_score 60, got %d", c.Quality.MinTrustScore)
	}
	if c.Quality.MinCoveragePercent != defaultMinCoveragePercent {
		t.Errorf("expected default min_coverage_percent %v, got %v", defaultMinCoveragePercent, c.Quality.MinCoveragePercent)
	}
	if c.Exceptions.MaxExceptions != 10 {
		t.Errorf("expected default max_exceptions 10, got %d", c.Exceptions.MaxExceptions)
	}
	if c.Governance.MinFailureModes != 1 {
		t.Errorf("expected default min_failure_modes 1, got %d", c.Governance.MinFailureModes)
	}
	if c.Baseline.SnapshotPath == "" {
		t.Error("expected a non-empty default snapshot path")
	}
}

func TestWithDefaultsIsIdempotent(t *testing.T) {
	c := DefaultQualityContract()
	twice := c.WithDefaults().WithDefaults()
	if twice.Quality.MinCoveragePercent != c.Quality.MinCoveragePercent {
		t.Fatalf("expected WithDefaults to be idempotent, got %v vs %v", twice.Quality.MinCoveragePercent, c.Quality.MinCoveragePercent)
	}
}
