package checks

import (
	"testing"

	"github.com/compasdx/gate/internal/manifest"
)

func TestRunOrphanAPIFlagsExportedSymbolWithNoOutsideCaller(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "a.go", "package a\nfunc PublicOrphan() {}\nfunc internalCaller() { PublicOrphan() }\n")

	violations := runOrphanAPI(dir, []manifest.OrphanAPICheckConfig{
		{ID: "orphan-main", IncludeGlobs: []string{"**/*.go"}, MinSymbolLen: 3},
	})

	found := false
	for _, v := range violations {
		if v.Code == "orphan_api.no_caller" && v.Details["symbol"] == "PublicOrphan" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PublicOrphan flagged as having no caller outside its own file, got %+v", violations)
	}
}

func TestRunOrphanAPIIgnoresSymbolCalledFromAnotherFile(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "a.go", "package a\nfunc PublicUsed() {}\n")
	writeCheckFile(t, dir, "b.go", "package a\nfunc caller() { PublicUsed() }\n")

	violations := runOrphanAPI(dir, []manifest.OrphanAPICheckConfig{
		{ID: "orphan-main", IncludeGlobs: []string{"**/*.go"}, MinSymbolLen: 3},
	})

	for _, v := range violations {
		if v.Details["symbol"] == "PublicUsed" {
			t.Fatalf("a symbol called from another file must not be flagged orphaned: %+v", violations)
		}
	}
}
