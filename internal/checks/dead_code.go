package checks

import (
	"fmt"
	"os"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// runDeadCode flags any declared symbol (of any visibility) whose name
// appears exactly once across every scanned file's content — its own
// declaration and nowhere else, repo-wide.
func runDeadCode(repoRoot string, configs []manifest.DeadCodeCheckConfig) []api.Violation {
	var violations []api.Violation

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("dead_code", err))
			continue
		}
		minLen := cfg.MinSymbolLen
		if minLen <= 0 {
			minLen = 3
		}

		contents := make(map[string]string, len(files))
		var declared []symbolLocation
		for _, f := range files {
			if !pathscan.IsProbablyCodeFile(f.RelPath) {
				continue
			}
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				continue
			}
			contents[f.RelPath] = string(data)
			for _, name := range extractSymbols(string(data), declarationPatterns, minLen) {
				declared = append(declared, symbolLocation{Name: name, Path: f.RelPath})
			}
		}

		for _, sym := range declared {
			total := 0
			for _, content := range contents {
				total += countOccurrences(content, sym.Name)
			}
			if total <= 1 {
				violations = append(violations, api.NewObservationViolation(
					"dead_code.unreferenced_symbol",
					fmt.Sprintf("%q is declared in %s but never referenced elsewhere in the scanned files", sym.Name, sym.Path),
					sym.Path,
					map[string]any{"check_id": cfg.ID, "symbol": sym.Name},
				))
			}
		}
	}
	return violations
}
