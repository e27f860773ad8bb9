package checks

import (
	"testing"

	"github.com/compasdx/gate/internal/manifest"
)

func TestRunSurfaceCollectsAndFlagsOverBudget(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "api.go", "func PublicOne() {}\nfunc PublicTwo() {}\n")

	violations, items, scanned := runSurface(dir, []manifest.SurfaceCheckConfig{
		{
			ID:           "surface-main",
			MaxItems:     1,
			IncludeGlobs: []string{"**/*.go"},
			Rules: []manifest.SurfaceRuleConfig{
				{Regex: `func Public\w+`},
			},
		},
	})

	if len(items) != 2 {
		t.Fatalf("expected 2 surface items, got %+v", items)
	}
	if scanned != 1 {
		t.Fatalf("expected 1 scanned file, got %d", scanned)
	}
	if len(violations) != 1 || violations[0].Code != "surface.max_exceeded" {
		t.Fatalf("expected max_exceeded violation, got %+v", violations)
	}
}

func TestRunSurfaceFlagsInvalidRegex(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "api.go", "func X() {}\n")

	violations, _, _ := runSurface(dir, []manifest.SurfaceCheckConfig{
		{
			ID:           "surface-main",
			IncludeGlobs: []string{"**/*.go"},
			Rules: []manifest.SurfaceRuleConfig{
				{Regex: `(unclosed`},
			},
		},
	})

	if len(violations) != 1 || violations[0].Code != "surface.invalid_regex" {
		t.Fatalf("expected invalid_regex violation, got %+v", violations)
	}
}
