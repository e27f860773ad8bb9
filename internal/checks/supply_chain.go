package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// manifestLockPairs names every package manifest this check knows about
// and the lockfile a disciplined repo pins alongside it.
var manifestLockPairs = []struct {
	manifest string
	lock     string
}{
	{"package.json", "package-lock.json"},
	{"package.json", "yarn.lock"},
	{"package.json", "pnpm-lock.yaml"},
	{"Cargo.toml", "Cargo.lock"},
	{"go.mod", "go.sum"},
	{"Pipfile", "Pipfile.lock"},
}

// prereleaseVersion matches a semver-ish prerelease tag in a dependency
// version string, the kind of thing a quality gate wants surfaced before it
// reaches a release branch.
var prereleaseVersion = regexp.MustCompile(`\d+\.\d+\.\d+-(alpha|beta|rc|dev|pre)`)

// runSupplyChain checks that every present package manifest has at least
// one matching lockfile, and flags any dependency version string
// containing a prerelease tag. A repo with no recognized manifest at all
// is out of scope and reported clean.
func runSupplyChain(repoRoot string, configs []manifest.SupplyChainCheckConfig) []api.Violation {
	if len(configs) == 0 {
		return nil
	}
	var violations []api.Violation

	for _, cfg := range configs {
		manifestsPresent := map[string]bool{}
		for _, pair := range manifestLockPairs {
			if isFile(filepath.Join(repoRoot, pair.manifest)) {
				manifestsPresent[pair.manifest] = true
			}
		}
		for m := range manifestsPresent {
			hasLock := false
			for _, pair := range manifestLockPairs {
				if pair.manifest == m && isFile(filepath.Join(repoRoot, pair.lock)) {
					hasLock = true
					break
				}
			}
			if !hasLock {
				violations = append(violations, api.NewErrorViolation(
					"supply_chain.lockfile_missing",
					fmt.Sprintf("%s is present but no matching lockfile was found", m),
					m, map[string]any{"check_id": cfg.ID},
				))
			}
		}

		for m := range manifestsPresent {
			data, err := os.ReadFile(filepath.Join(repoRoot, m))
			if err != nil {
				continue
			}
			if prereleaseVersion.Match(data) {
				violations = append(violations, api.NewObservationViolation(
					"supply_chain.prerelease_dependency",
					fmt.Sprintf("%s pins a prerelease dependency version", m),
					m, map[string]any{"check_id": cfg.ID},
				))
			}
		}
	}
	return violations
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
