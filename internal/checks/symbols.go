package checks

import (
	"regexp"
	"strings"
)

// symbolLocation pairs a declared symbol name with where it was declared.
type symbolLocation struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// declarationPatterns matches a top-level function/symbol declaration
// across the languages the pack's builtin packs target, capturing the
// symbol name in group 1. It is deliberately permissive (no full parser)
// since dead_code and orphan_api only need a name to search for elsewhere.
var declarationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*\(`),           // Go
	regexp.MustCompile(`(?m)^\s*(?:pub\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)\s*[<(]`),               // Rust
	regexp.MustCompile(`(?m)^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`),                           // Python
	regexp.MustCompile(`(?m)^\s*(?:export\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),      // JS/TS
}

// exportedDeclarationPatterns is the subset of declarationPatterns that
// only match symbols the language itself marks exported/public (Go's
// capitalized identifiers, Rust's `pub fn`, JS/TS's `export function`).
// Python has no syntactic export marker, so it is intentionally absent.
var exportedDeclarationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s*)?([A-Z][A-Za-z0-9_]*)\s*\(`),
	regexp.MustCompile(`(?m)^\s*pub\s+fn\s+([A-Za-z_][A-Za-z0-9_]*)\s*[<(]`),
	regexp.MustCompile(`(?m)^\s*export\s+function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
}

func extractSymbols(content string, patterns []*regexp.Regexp, minLen int) []string {
	seen := map[string]bool{}
	var names []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			name := m[1]
			if len(name) < minLen || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func countOccurrences(content, name string) int {
	return strings.Count(content, name)
}
