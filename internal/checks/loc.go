package checks

import (
	"bytes"
	"fmt"
	"os"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// runLOC flags any file whose non-empty line count exceeds a check's
// max_loc, and returns the union of every scanned file's line count (for
// the baseline) plus how many distinct files were brought into scope.
func runLOC(repoRoot string, configs []manifest.LOCCheckConfig) ([]api.Violation, map[string]int, int) {
	var violations []api.Violation
	perFile := map[string]int{}
	scannedSet := map[string]bool{}

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("loc", err))
			continue
		}
		for _, f := range files {
			scannedSet[f.RelPath] = true
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				violations = append(violations, internalError("loc", err))
				continue
			}
			n := nonEmptyLineCount(data)
			perFile[f.RelPath] = n
			if cfg.MaxLOC > 0 && n > cfg.MaxLOC {
				violations = append(violations, api.NewErrorViolation(
					"loc.max_exceeded",
					fmt.Sprintf("%s has %d non-empty lines, exceeding the %d-line budget", f.RelPath, n, cfg.MaxLOC),
					f.RelPath,
					map[string]any{"check_id": cfg.ID, "lines": n, "max_loc": cfg.MaxLOC},
				))
			}
		}
	}
	return violations, perFile, len(scannedSet)
}

func nonEmptyLineCount(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
