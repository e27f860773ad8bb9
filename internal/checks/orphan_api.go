package checks

import (
	"fmt"
	"os"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// runOrphanAPI flags exported/public symbols with no caller outside their
// own declaring file — the narrower, exported-only sibling of dead_code,
// since an orphaned *public* symbol is a contract nobody asked for.
func runOrphanAPI(repoRoot string, configs []manifest.OrphanAPICheckConfig) []api.Violation {
	var violations []api.Violation

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("orphan_api", err))
			continue
		}
		minLen := cfg.MinSymbolLen
		if minLen <= 0 {
			minLen = 3
		}

		contents := make(map[string]string, len(files))
		var exported []symbolLocation
		for _, f := range files {
			if !pathscan.IsProbablyCodeFile(f.RelPath) {
				continue
			}
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				continue
			}
			contents[f.RelPath] = string(data)
			for _, name := range extractSymbols(string(data), exportedDeclarationPatterns, minLen) {
				exported = append(exported, symbolLocation{Name: name, Path: f.RelPath})
			}
		}

		for _, sym := range exported {
			referencedElsewhere := false
			for path, content := range contents {
				if path == sym.Path {
					continue
				}
				if countOccurrences(content, sym.Name) > 0 {
					referencedElsewhere = true
					break
				}
			}
			if !referencedElsewhere {
				violations = append(violations, api.NewObservationViolation(
					"orphan_api.no_caller",
					fmt.Sprintf("exported symbol %q in %s has no caller in any other scanned file", sym.Name, sym.Path),
					sym.Path,
					map[string]any{"check_id": cfg.ID, "symbol": sym.Name},
				))
			}
		}
	}
	return violations
}
