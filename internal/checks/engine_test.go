package checks

import (
	"strings"
	"testing"

	"github.com/compasdx/gate/internal/manifest"
)

func TestRunAggregatesAndSortsAcrossKinds(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "big.go", strings.Repeat("x\n", 10))
	writeCheckFile(t, dir, "dup_a.go", "same content\n")
	writeCheckFile(t, dir, "dup_b.go", "same content\n")

	cfg := manifest.ChecksConfig{
		LOC:        []manifest.LOCCheckConfig{{ID: "loc-main", MaxLOC: 5, IncludeGlobs: []string{"**/*.go"}}},
		Duplicates: []manifest.DuplicatesCheckConfig{{ID: "dup-main", IncludeGlobs: []string{"**/*.go"}}},
	}

	res := Run(dir, cfg, BudgetContext{}, nil)

	if res.LOCPerFile["big.go"] != 10 {
		t.Fatalf("expected LOCPerFile to carry through, got %+v", res.LOCPerFile)
	}
	if res.DuplicateGroups != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", res.DuplicateGroups)
	}
	if len(res.Violations) < 2 {
		t.Fatalf("expected violations from both loc and duplicates, got %+v", res.Violations)
	}
	for i := 1; i < len(res.Violations); i++ {
		prev, cur := res.Violations[i-1], res.Violations[i]
		if prev.Path > cur.Path || (prev.Path == cur.Path && prev.Code > cur.Code) {
			t.Fatalf("expected violations sorted by (path, code), got %+v then %+v", prev, cur)
		}
	}
}

func TestRunReportsFileUniverseCounters(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "a.go", "package a\n")
	writeCheckFile(t, dir, "README.md", "# docs\n")

	cfg := manifest.ChecksConfig{
		LOC: []manifest.LOCCheckConfig{{ID: "loc-main", MaxLOC: 1000, IncludeGlobs: []string{"**/*.go"}}},
	}
	res := Run(dir, cfg, BudgetContext{}, nil)

	if res.FileUniverse.LOCUniverse < 1 {
		t.Fatalf("expected at least 1 probably-code file counted in the universe, got %+v", res.FileUniverse)
	}
	if res.FileUniverse.LOCScanned != 1 {
		t.Fatalf("expected exactly 1 file scanned by the loc check's glob, got %d", res.FileUniverse.LOCScanned)
	}
}

func TestRunWithEmptyConfigProducesNoViolations(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "a.go", "package a\n")

	res := Run(dir, manifest.ChecksConfig{}, BudgetContext{}, nil)
	if len(res.Violations) != 0 {
		t.Fatalf("expected no violations with no configured checks, got %+v", res.Violations)
	}
}
