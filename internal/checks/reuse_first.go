package checks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

type blockLocation struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// runReuseFirst slides a min_block_lines window of consecutive non-empty,
// whitespace-normalized lines over every scanned file and flags any window
// whose content repeats at a different location — the copy-paste-before-
// extracting-a-helper pattern this check is named for.
func runReuseFirst(repoRoot string, configs []manifest.ReuseFirstCheckConfig) []api.Violation {
	var violations []api.Violation

	for _, cfg := range configs {
		if cfg.MinBlockLines < 2 {
			continue
		}
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("reuse_first", err))
			continue
		}

		byHash := map[string][]blockLocation{}
		for _, f := range files {
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				continue
			}
			lines := normalizedNonBlankLines(data)
			for i := 0; i+cfg.MinBlockLines <= len(lines); i++ {
				window := strings.Join(lines[i:i+cfg.MinBlockLines], "\n")
				sum := sha256.Sum256([]byte(window))
				hash := hex.EncodeToString(sum[:])
				byHash[hash] = append(byHash[hash], blockLocation{Path: f.RelPath, Line: i + 1})
			}
		}

		hashes := make([]string, 0, len(byHash))
		for h, locs := range byHash {
			if distinctFileCount(locs) >= 2 {
				hashes = append(hashes, h)
			}
		}
		sort.Strings(hashes)
		for _, h := range hashes {
			locs := byHash[h]
			sort.Slice(locs, func(i, j int) bool {
				if locs[i].Path != locs[j].Path {
					return locs[i].Path < locs[j].Path
				}
				return locs[i].Line < locs[j].Line
			})
			violations = append(violations, api.NewObservationViolation(
				"reuse_first.duplicate_block",
				fmt.Sprintf("a %d-line block repeats across %d locations; consider extracting a shared helper", cfg.MinBlockLines, len(locs)),
				locs[0].Path,
				map[string]any{"check_id": cfg.ID, "locations": locs},
			))
		}
	}
	return violations
}

func normalizedNonBlankLines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func distinctFileCount(locs []blockLocation) int {
	seen := map[string]bool{}
	for _, l := range locs {
		seen[l.Path] = true
	}
	return len(seen)
}
