package packs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

const (
	// PacksDir and PacksLockPath are the fixed repo-relative locations
	// for a repo's custom language packs and their lockfile.
	PacksDir      = ".agents/mcp/compas/packs"
	PacksLockPath = ".agents/mcp/compas/packs.lock"
)

var sha256HexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func isValidSHA256Hex(s string) bool { return sha256HexPattern.MatchString(s) }

// Validate checks presence parity between packs/ and packs.lock, pack id
// shape, lock sha256 requirements, canonical-tool wiring, and gate
// references. It is a no-op (nil, nil) when neither packs/ nor
// packs.lock exists — most repos carry no custom packs at all.
func Validate(repoRoot string) ([]api.Violation, error) {
	packsDir := filepath.Join(repoRoot, PacksDir)
	lockPath := filepath.Join(repoRoot, PacksLockPath)

	dirExists := isDir(packsDir)
	lockExists := isFile(lockPath)

	if !dirExists && !lockExists {
		return nil, nil
	}

	var violations []api.Violation

	if !lockExists {
		violations = append(violations, api.NewErrorViolation("packs.lock_missing",
			"packs/ is present but packs.lock is missing", "", nil))
		return violations, nil
	}
	if !dirExists {
		violations = append(violations, api.NewErrorViolation("packs.dir_missing",
			"packs.lock is present but packs/ is missing", "", nil))
		return violations, nil
	}

	lockData, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, err
	}
	lock, err := LoadPacksLock(lockData)
	if err != nil {
		return nil, err
	}
	for _, entry := range lock.Packs {
		if entry.Source != BuiltinSource && !isValidSHA256Hex(entry.SHA256) {
			violations = append(violations, api.NewErrorViolation("packs.lock_sha256_required",
				fmt.Sprintf("pack %q: non-builtin source %q requires a 64-hex sha256", entry.ID, entry.Source),
				"", map[string]any{"pack": entry.ID, "source": entry.Source}))
		}
	}

	entries, err := os.ReadDir(packsDir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if isFile(filepath.Join(packsDir, e.Name(), "pack.toml")) {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	for _, name := range dirs {
		data, err := os.ReadFile(filepath.Join(packsDir, name, "pack.toml"))
		if err != nil {
			return nil, err
		}
		m, err := LoadPackManifest(data)
		if err != nil {
			return nil, err
		}
		if !manifest.PackIDPattern.MatchString(m.Pack.ID) {
			violations = append(violations, api.NewErrorViolation("packs.invalid_id",
				fmt.Sprintf("pack directory %q: id %q does not match the required pattern", name, m.Pack.ID),
				"", nil))
		}
		violations = append(violations, ValidateCanonicalTools(m)...)
		violations = append(violations, ValidateGates(m)...)
	}

	return violations, nil
}

func ValidateCanonicalTools(m *PackManifestV1) []api.Violation {
	if m.CanonicalTools == nil {
		return nil
	}
	c := m.CanonicalTools
	disabled := disabledSet(c)

	var out []api.Violation
	for _, role := range canonicalRoles(c) {
		switch {
		case role.wired && disabled[role.id]:
			out = append(out, api.NewErrorViolation("packs.canonical_tools_invalid",
				fmt.Sprintf("pack %q: canonical role %q is both wired and disabled", m.Pack.ID, role.id),
				"", map[string]any{"pack": m.Pack.ID, "role": role.id}))
		case !role.wired && !disabled[role.id]:
			out = append(out, api.NewErrorViolation("packs.canonical_tools_invalid",
				fmt.Sprintf("pack %q: canonical role %q is neither wired nor disabled", m.Pack.ID, role.id),
				"", map[string]any{"pack": m.Pack.ID, "role": role.id}))
		}
	}
	return out
}

func ValidateGates(m *PackManifestV1) []api.Violation {
	if m.Gates == nil || m.CanonicalTools == nil {
		return nil
	}
	disabled := disabledSet(m.CanonicalTools)
	wired := map[api.CanonicalToolID]bool{}
	for _, role := range canonicalRoles(m.CanonicalTools) {
		if role.wired {
			wired[role.id] = true
		}
	}

	var out []api.Violation
	for _, tier := range []struct {
		name string
		ids  []string
	}{
		{"ci_fast", m.Gates.CIFast},
		{"ci", m.Gates.CI},
		{"flagship", m.Gates.Flagship},
	} {
		for _, id := range tier.ids {
			role := api.CanonicalToolID(id)
			if disabled[role] || !wired[role] {
				out = append(out, api.NewErrorViolation("packs.gate_invalid",
					fmt.Sprintf("pack %q: gate %q references disabled or unwired canonical role %q", m.Pack.ID, tier.name, id),
					"", map[string]any{"pack": m.Pack.ID, "gate": tier.name, "role": id}))
			}
		}
	}
	return out
}

type canonicalRole struct {
	id    api.CanonicalToolID
	wired bool
}

func canonicalRoles(c *api.CanonicalToolsConfig) []canonicalRole {
	return []canonicalRole{
		{api.CanonicalBuild, len(c.Build) > 0},
		{api.CanonicalTest, len(c.Test) > 0},
		{api.CanonicalLint, len(c.Lint) > 0},
		{api.CanonicalFmt, len(c.Fmt) > 0},
		{api.CanonicalDocs, len(c.Docs) > 0},
	}
}

func disabledSet(c *api.CanonicalToolsConfig) map[api.CanonicalToolID]bool {
	set := make(map[api.CanonicalToolID]bool, len(c.Disabled))
	for _, d := range c.Disabled {
		set[d] = true
	}
	return set
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
