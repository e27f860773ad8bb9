package manifest

import "testing"

func TestTotalChecksCountsAcrossAllKinds(t *testing.T) {
	cfg := ChecksConfig{
		LOC:        []LOCCheckConfig{{ID: "loc-1"}, {ID: "loc-2"}},
		Duplicates: []DuplicatesCheckConfig{{ID: "dup-1"}},
	}
	if got := cfg.TotalChecks(); got != 3 {
		t.Fatalf("expected 3 total checks, got %d", got)
	}
}

func TestTotalChecksIsZeroForEmptyConfig(t *testing.T) {
	var cfg ChecksConfig
	if got := cfg.TotalChecks(); got != 0 {
		t.Fatalf("expected 0 total checks, got %d", got)
	}
}

func TestHasKindReflectsPopulatedAndEmptySlices(t *testing.T) {
	cfg := ChecksConfig{
		Boundary: []BoundaryCheckConfig{{ID: "boundary-1"}},
	}
	if !cfg.HasKind("boundary") {
		t.Error("expected HasKind(boundary) to be true")
	}
	if cfg.HasKind("loc") {
		t.Error("expected HasKind(loc) to be false for an empty slice")
	}
}

func TestHasKindRejectsUnknownKindName(t *testing.T) {
	var cfg ChecksConfig
	if cfg.HasKind("not_a_real_kind") {
		t.Error("expected an unrecognized kind name to report false")
	}
}

func TestCheckKindsListsAllThirteenKinds(t *testing.T) {
	if len(CheckKinds) != 13 {
		t.Fatalf("expected 13 check kinds, got %d: %v", len(CheckKinds), CheckKinds)
	}
	for _, kind := range CheckKinds {
		var cfg ChecksConfig
		if cfg.HasKind(kind) {
			t.Errorf("expected HasKind(%q) to be false on a zero-value config", kind)
		}
	}
}
