// Package failuremodes loads the catalog of named failure-mode ids a repo's
// governance policy can require coverage for (governance.mandatory_failure_modes
// in internal/manifest.QualityContract). Grounded on
// original_source/.../failure_modes.rs: a fixed default catalog, optionally
// overridden wholesale by a repo-local TOML file, fail-closed on any
// malformed override.
package failuremodes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compasdx/gate/internal/manifest"
)

// CatalogPath is the repo-relative location of an optional override file.
const CatalogPath = ".agents/mcp/compas/failure_modes.toml"

// DefaultCatalog is used whenever a repo carries no failure_modes.toml.
var DefaultCatalog = []string{
	"policy_theater",
	"unplugged_iron",
	"fail_open",
	"env_sprawl",
	"public_surface_bloat",
	"god_module_cycles",
	"resilience_defaults",
	"security_baseline",
	"dependency_hygiene",
	"knowledge_continuity",
}

// CatalogFile is the decoded shape of failure_modes.toml.
type CatalogFile struct {
	Catalog []string `toml:"catalog" json:"catalog"`
}

// InvalidCatalogError reports a malformed failure_modes.toml override.
type InvalidCatalogError struct {
	Path   string
	Reason string
}

func (e *InvalidCatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Load reads repoRoot's failure_modes.toml if present, validating it
// fail-closed, or returns DefaultCatalog when the file is absent.
func Load(repoRoot string) ([]string, error) {
	path := filepath.Join(repoRoot, CatalogPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]string(nil), DefaultCatalog...), nil
		}
		return nil, err
	}

	var f CatalogFile
	if err := manifest.DecodeStrict(data, &f); err != nil {
		return nil, &InvalidCatalogError{Path: path, Reason: err.Error()}
	}

	if len(f.Catalog) == 0 {
		return nil, &InvalidCatalogError{Path: path, Reason: "catalog must not be empty"}
	}
	seen := make(map[string]bool, len(f.Catalog))
	for _, id := range f.Catalog {
		if !manifest.IsValidID(id) {
			return nil, &InvalidCatalogError{Path: path, Reason: fmt.Sprintf("invalid failure mode id %q", id)}
		}
		if seen[id] {
			return nil, &InvalidCatalogError{Path: path, Reason: fmt.Sprintf("duplicate failure mode id %q", id)}
		}
		seen[id] = true
	}
	return f.Catalog, nil
}
