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

// functionOpener matches the same function-declaration shapes as
// declarationPatterns in symbols.go, but anchors on the opening brace so
// runComplexityBudget can slice out each function's body text.
var functionOpener = regexp.MustCompile(`(?m)^(?:\s*)(?:pub\s+)?(?:export\s+)?(?:func|fn|def|function)\s+[A-Za-z_$][A-Za-z0-9_$]*\s*[<(][^{]*\{`)

// branchKeyword approximates cyclomatic/cognitive complexity by counting
// branching constructs; it is a heuristic; a function that nests deeply
// without any of these keywords (rare) under-counts.
var branchKeyword = regexp.MustCompile(`\b(if|else|for|while|case|catch|&&|\|\|)\b`)

// runComplexityBudget flags any function whose body exceeds max_function_lines
// or whose branch-keyword count exceeds max_cyclomatic/max_cognitive
// (scored identically here; the source leaves cognitive weighting
// unspecified, so this implementation treats both budgets as the same
// branch count until a richer scorer is warranted).
func runComplexityBudget(repoRoot string, configs []manifest.ComplexityBudgetCheckConfig) []api.Violation {
	var violations []api.Violation

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, cfg.IncludeGlobs, cfg.ExcludeGlobs)
		if err != nil {
			violations = append(violations, internalError("complexity_budget", err))
			continue
		}

		for _, f := range files {
			if !pathscan.IsProbablyCodeFile(f.RelPath) {
				continue
			}
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				continue
			}
			content := string(data)
			for _, loc := range functionOpener.FindAllStringIndex(content, -1) {
				openBrace := loc[1] - 1
				closeBrace := matchingBrace(content, openBrace)
				if closeBrace < 0 {
					continue
				}
				body := content[openBrace : closeBrace+1]
				lines := strings.Count(body, "\n") + 1
				branches := len(branchKeyword.FindAllString(body, -1))
				header := strings.TrimSpace(content[loc[0]:loc[1]])

				if cfg.MaxFunctionLines > 0 && lines > cfg.MaxFunctionLines {
					violations = append(violations, api.NewObservationViolation(
						"complexity_budget.function_too_long",
						fmt.Sprintf("%s: function has %d lines, exceeding the %d-line budget", f.RelPath, lines, cfg.MaxFunctionLines),
						f.RelPath,
						map[string]any{"check_id": cfg.ID, "lines": lines, "max_function_lines": cfg.MaxFunctionLines, "header": header},
					))
				}
				if cfg.MaxCyclomatic > 0 && branches > cfg.MaxCyclomatic {
					violations = append(violations, api.NewObservationViolation(
						"complexity_budget.cyclomatic_exceeded",
						fmt.Sprintf("%s: function has an estimated cyclomatic complexity of %d, exceeding %d", f.RelPath, branches+1, cfg.MaxCyclomatic),
						f.RelPath,
						map[string]any{"check_id": cfg.ID, "branches": branches + 1, "max_cyclomatic": cfg.MaxCyclomatic, "header": header},
					))
				}
				if cfg.MaxCognitive > 0 && branches > cfg.MaxCognitive {
					violations = append(violations, api.NewObservationViolation(
						"complexity_budget.cognitive_exceeded",
						fmt.Sprintf("%s: function has an estimated cognitive complexity of %d, exceeding %d", f.RelPath, branches, cfg.MaxCognitive),
						f.RelPath,
						map[string]any{"check_id": cfg.ID, "branches": branches, "max_cognitive": cfg.MaxCognitive, "header": header},
					))
				}
			}
		}
	}
	return violations
}
