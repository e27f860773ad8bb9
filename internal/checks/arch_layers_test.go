package checks

import (
	"testing"

	"github.com/compasdx/gate/internal/manifest"
)

func TestRunArchLayersFlagsForbiddenDependency(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "internal/api/handler.go", `package api
import "myapp/internal/storage"
func Handle() { storage.Query() }
`)
	writeCheckFile(t, dir, "internal/storage/store.go", "package storage\nfunc Query() {}\n")

	violations := runArchLayers(dir, []manifest.ArchLayersCheckConfig{
		{
			ID: "layers-main",
			Layers: []manifest.ArchLayerDef{
				{ID: "api", IncludeGlobs: []string{"internal/api/**"}},
				{ID: "storage", IncludeGlobs: []string{"internal/storage/**"}, ModulePrefixes: []string{"myapp/internal/storage"}},
			},
			Rules: []manifest.ArchLayerRule{
				{FromLayer: "api", DenyToLayers: []string{"storage"}},
			},
		},
	})

	if len(violations) != 1 || violations[0].Code != "arch_layers.forbidden_dependency" {
		t.Fatalf("expected one forbidden_dependency violation, got %+v", violations)
	}
}

func TestRunArchLayersAllowsUndeniedDependency(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "internal/api/handler.go", `package api
import "myapp/internal/shared"
`)
	writeCheckFile(t, dir, "internal/shared/util.go", "package shared\n")

	violations := runArchLayers(dir, []manifest.ArchLayersCheckConfig{
		{
			ID: "layers-main",
			Layers: []manifest.ArchLayerDef{
				{ID: "api", IncludeGlobs: []string{"internal/api/**"}},
				{ID: "shared", IncludeGlobs: []string{"internal/shared/**"}, ModulePrefixes: []string{"myapp/internal/shared"}},
			},
			Rules: []manifest.ArchLayerRule{
				{FromLayer: "api", DenyToLayers: []string{}},
			},
		},
	})
	if len(violations) != 0 {
		t.Fatalf("expected no violations when nothing is denied, got %+v", violations)
	}
}
