package checks

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// runSurface captures every rule's regex matches across the check's scanned
// files as "file:match" surface items, deduplicates them, and flags the
// check whose unique item count exceeds max_items.
func runSurface(repoRoot string, configs []manifest.SurfaceCheckConfig) ([]api.Violation, []string, int) {
	var violations []api.Violation
	allItems := map[string]bool{}
	scannedSet := map[string]bool{}

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("surface", err))
			continue
		}

		checkItems := map[string]bool{}
		for _, rule := range cfg.Rules {
			re, err := regexp.Compile(rule.Regex)
			if err != nil {
				violations = append(violations, api.NewErrorViolation(
					"surface.invalid_regex",
					fmt.Sprintf("surface rule has an invalid regex: %v", err),
					"", map[string]any{"check_id": cfg.ID},
				))
				continue
			}
			for _, f := range files {
				if len(rule.FileGlobs) > 0 && !matchesGlobSet(rule.FileGlobs, f.RelPath) {
					continue
				}
				scannedSet[f.RelPath] = true
				data, err := os.ReadFile(f.AbsPath)
				if err != nil {
					violations = append(violations, internalError("surface", err))
					continue
				}
				for _, m := range re.FindAllString(string(data), -1) {
					item := f.RelPath + ":" + m
					checkItems[item] = true
					allItems[item] = true
				}
			}
		}

		if cfg.MaxItems > 0 && len(checkItems) > cfg.MaxItems {
			violations = append(violations, api.NewErrorViolation(
				"surface.max_exceeded",
				fmt.Sprintf("public surface has %d items, exceeding the %d-item budget", len(checkItems), cfg.MaxItems),
				"", map[string]any{"check_id": cfg.ID, "items": len(checkItems), "max_items": cfg.MaxItems},
			))
		}
	}

	items := make([]string, 0, len(allItems))
	for item := range allItems {
		items = append(items, item)
	}
	sort.Strings(items)
	return violations, items, len(scannedSet)
}

func matchesGlobSet(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}
