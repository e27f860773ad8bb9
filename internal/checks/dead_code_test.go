package checks

import (
	"testing"

	"github.com/compasdx/gate/internal/manifest"
)

func TestRunDeadCodeFlagsUnreferencedSymbol(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "a.go", "package a\nfunc helperUnused() {}\n")

	violations := runDeadCode(dir, []manifest.DeadCodeCheckConfig{
		{ID: "dead-main", IncludeGlobs: []string{"**/*.go"}, MinSymbolLen: 3},
	})

	if len(violations) != 1 || violations[0].Code != "dead_code.unreferenced_symbol" {
		t.Fatalf("expected unreferenced_symbol violation, got %+v", violations)
	}
}

func TestRunDeadCodeIgnoresSymbolReferencedElsewhere(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "a.go", "package a\nfunc helperUsed() {}\n")
	writeCheckFile(t, dir, "b.go", "package a\nfunc caller() { helperUsed() }\n")

	violations := runDeadCode(dir, []manifest.DeadCodeCheckConfig{
		{ID: "dead-main", IncludeGlobs: []string{"**/*.go"}, MinSymbolLen: 3},
	})

	for _, v := range violations {
		if v.Details["symbol"] == "helperUsed" {
			t.Fatalf("a symbol referenced elsewhere must not be flagged dead: %+v", violations)
		}
	}
}
