package checks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// fileHashConcurrency bounds how many files runDuplicates hashes at once;
// hashing is I/O-bound so a modest fan-out helps on large repos without
// exhausting file descriptors.
const fileHashConcurrency = 8

type fileHash struct {
	path string
	hash string
	err  error
}

// hashFilesConcurrently reads and SHA-256-hashes every file in parallel,
// writing into an index-addressed slice so the caller's iteration order
// never depends on which goroutine finishes first.
func hashFilesConcurrently(files []pathscan.FileRef) []fileHash {
	results := make([]fileHash, len(files))
	var g errgroup.Group
	g.SetLimit(fileHashConcurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				results[i] = fileHash{path: f.RelPath, err: err}
				return nil
			}
			sum := sha256.Sum256(data)
			results[i] = fileHash{path: f.RelPath, hash: hex.EncodeToString(sum[:])}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// runDuplicates hashes every scanned file's contents and flags groups of
// two or more files sharing a hash as exact copies, skipping files over
// max_file_bytes (too expensive to hash meaningfully as a "duplicate") and
// anything matching allowlist_globs (generated/vendored files expected to
// repeat verbatim).
func runDuplicates(repoRoot string, configs []manifest.DuplicatesCheckConfig) ([]api.Violation, int, int) {
	var violations []api.Violation
	totalGroups := 0
	scannedSet := map[string]bool{}

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("duplicates", err))
			continue
		}

		var eligible []pathscan.FileRef
		for _, f := range files {
			if allowlisted(cfg.AllowlistGlobs, f.RelPath) {
				continue
			}
			info, err := os.Stat(f.AbsPath)
			if err != nil {
				continue
			}
			if cfg.MaxFileBytes > 0 && info.Size() > int64(cfg.MaxFileBytes) {
				continue
			}
			eligible = append(eligible, f)
		}

		byHash := map[string][]string{}
		for _, fh := range hashFilesConcurrently(eligible) {
			if fh.err != nil {
				violations = append(violations, internalError("duplicates", fh.err))
				continue
			}
			scannedSet[fh.path] = true
			byHash[fh.hash] = append(byHash[fh.hash], fh.path)
		}

		hashes := make([]string, 0, len(byHash))
		for h := range byHash {
			hashes = append(hashes, h)
		}
		sort.Strings(hashes)
		for _, h := range hashes {
			paths := byHash[h]
			if len(paths) < 2 {
				continue
			}
			sort.Strings(paths)
			totalGroups++
			violations = append(violations, api.NewObservationViolation(
				"duplicates.found",
				fmt.Sprintf("%d files are byte-identical copies of one another", len(paths)),
				paths[0],
				map[string]any{"check_id": cfg.ID, "paths": paths},
			))
		}
	}
	return violations, totalGroups, len(scannedSet)
}

func allowlisted(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}
