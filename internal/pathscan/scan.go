// Package pathscan enumerates the files of a repository under an
// include/exclude glob pair, in deterministic sorted order, the way every
// check in internal/checks needs to. Glob matching runs on
// github.com/bmatcuk/doublestar/v4 for ** support.
package pathscan

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// prunedDirNames are directories PathScanner never descends into,
// regardless of include/exclude globs.
var prunedDirNames = map[string]bool{
	".git":         true,
	"target":       true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
}

// FileRef pairs a repo-relative path (forward-slash, for glob matching and
// display) with its absolute filesystem path (for reading).
type FileRef struct {
	RelPath string
	AbsPath string
}

// ValidateGlobs checks that every pattern in globs compiles, returning the
// first InvalidGlobError encountered.
func ValidateGlobs(globs []string) error {
	for _, pattern := range globs {
		if !doublestar.ValidatePattern(pattern) {
			return &InvalidGlobError{Pattern: pattern, Message: "malformed glob pattern"}
		}
	}
	return nil
}

// Scan walks repoRoot in lexicographic order, following no symlinks,
// pruning vendored/VCS directories, and returns the files whose
// repo-relative path matches includeGlobs (empty means match-all) and does
// not match excludeGlobs. Results are sorted by relative path.
func Scan(repoRoot string, includeGlobs, excludeGlobs []string) ([]FileRef, error) {
	if err := ValidateGlobs(includeGlobs); err != nil {
		return nil, err
	}
	if err := ValidateGlobs(excludeGlobs); err != nil {
		return nil, err
	}

	var out []FileRef
	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != repoRoot && prunedDirNames[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(repoRoot, path)
		if err != nil {
			return nil //nolint:nilerr // unreachable path outside root is simply excluded
		}
		rel = filepath.ToSlash(rel)

		if len(includeGlobs) > 0 && !matchesAny(includeGlobs, rel) {
			return nil
		}
		if matchesAny(excludeGlobs, rel) {
			return nil
		}
		out = append(out, FileRef{RelPath: rel, AbsPath: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

func matchesAny(globs []string, rel string) bool {
	for _, pattern := range globs {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// codeExtensions are the file extensions checks consider "probably code"
// when a check needs a language-agnostic default surface.
var codeExtensions = map[string]bool{
	".rs": true, ".py": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".go": true, ".c": true, ".h": true, ".cc": true,
	".cpp": true, ".cxx": true, ".hpp": true, ".cs": true,
}

// IsProbablyCodeFile reports whether path's extension is a recognized
// source-code extension.
func IsProbablyCodeFile(path string) bool {
	return codeExtensions[filepath.Ext(path)]
}
