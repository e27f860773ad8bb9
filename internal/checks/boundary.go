package checks

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// rustCfgTestBlock strips `#[cfg(test)] mod tests { ... }` blocks before
// boundary matching, so a deny rule (e.g. "no println!") doesn't fire on
// test-only code that never ships. This is a best-effort brace match, not a
// real parser: it assumes the block's outer braces are balanced and takes
// the text up to the matching close brace.
var rustCfgTestBlock = regexp.MustCompile(`(?s)#\[cfg\(test\)\]\s*mod\s+\w+\s*\{`)

// runBoundary flags every match of any rule's deny_regex within the
// check's scanned files, one violation per match with its line number.
func runBoundary(repoRoot string, configs []manifest.BoundaryCheckConfig) ([]api.Violation, int) {
	var violations []api.Violation
	scannedSet := map[string]bool{}

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("boundary", err))
			continue
		}

		compiled := make([]*regexp.Regexp, 0, len(cfg.Rules))
		for _, r := range cfg.Rules {
			re, err := regexp.Compile(r.DenyRegex)
			if err != nil {
				violations = append(violations, api.NewErrorViolation(
					"boundary.invalid_deny_regex",
					fmt.Sprintf("boundary rule %q has an invalid deny_regex: %v", r.ID, err),
					"", map[string]any{"check_id": cfg.ID, "rule_id": r.ID},
				))
				compiled = append(compiled, nil)
				continue
			}
			compiled = append(compiled, re)
		}

		for _, f := range files {
			scannedSet[f.RelPath] = true
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				violations = append(violations, internalError("boundary", err))
				continue
			}
			content := string(data)
			if cfg.StripRustCfgTestBlocks {
				content = stripCfgTestBlocks(content)
			}
			for i, re := range compiled {
				if re == nil {
					continue
				}
				rule := cfg.Rules[i]
				for _, loc := range re.FindAllStringIndex(content, -1) {
					line := strings.Count(content[:loc[0]], "\n") + 1
					violations = append(violations, api.NewErrorViolation(
						"boundary.rule_violation",
						fmt.Sprintf("%s:%d matches boundary rule %q's denied pattern", f.RelPath, line, rule.ID),
						f.RelPath,
						map[string]any{"check_id": cfg.ID, "rule_id": rule.ID, "line": line},
					))
				}
			}
		}
	}
	return violations, len(scannedSet)
}

func stripCfgTestBlocks(content string) string {
	for {
		loc := rustCfgTestBlock.FindStringIndex(content)
		if loc == nil {
			return content
		}
		end := matchingBrace(content, loc[1]-1)
		if end < 0 {
			return content[:loc[0]]
		}
		content = content[:loc[0]] + content[end+1:]
	}
}

// matchingBrace returns the index of the brace matching the '{' at
// openIdx, or -1 if the braces never balance.
func matchingBrace(content string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
