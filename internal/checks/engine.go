// Package checks implements the thirteen check kinds ChecksConfig
// configures, dispatched from one Run over a RepoConfig's checks. Every
// kind returns []api.Violation plus, where relevant, the
// Snapshot-building counters internal/quality needs for
// scope-narrowing and duplicate-group tallies.
package checks

import (
	"sort"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// BudgetContext carries the repo-wide counters ToolBudget needs that live
// outside ChecksConfig itself (tool and gate counts from repoconfig.RepoConfig).
type BudgetContext struct {
	TotalTools     int
	ToolsPerPlugin map[string]int
	GateCIFast     int
	GateCI         int
	GateFlagship   int
	TotalChecks    int
}

// Result aggregates every check kind's output: the raw violations plus the
// counters quality.Snapshot needs to detect scope narrowing and regressions.
type Result struct {
	Violations      []api.Violation
	LOCPerFile      map[string]int
	SurfaceItems    []string
	DuplicateGroups int
	FileUniverse    FileUniverseCounts
	EnvRegistry     EnvRegistrySummary
}

// FileUniverseCounts is the file-count measure behind quality.FileUniverse:
// for each kind, how many of the repo's probably-code files were actually
// brought into scope by that kind's configured include/exclude globs versus
// how many exist in the repo at all.
type FileUniverseCounts struct {
	LOCUniverse, LOCScanned                 int
	SurfaceUniverse, SurfaceScanned         int
	BoundaryUniverse, BoundaryScanned       int
	DuplicatesUniverse, DuplicatesScanned   int
}

// Run dispatches every configured check of every kind against repoRoot and
// returns one aggregated, deterministically ordered Result. A glob error or
// filesystem failure on any single check is reported as that check's own
// fail-closed `<kind>.internal_error` violation rather than aborting the
// whole run, so one bad plugin config can't silently swallow every other
// check's findings.
func Run(repoRoot string, cfg manifest.ChecksConfig, budget BudgetContext, tools map[string]EnvToolRef) Result {
	codeUniverse, err := countProbablyCodeFiles(repoRoot)
	if err != nil {
		return Result{Violations: []api.Violation{internalError("checks", err)}}
	}

	var res Result
	res.LOCPerFile = map[string]int{}

	locViolations, locPerFile, locScanned := runLOC(repoRoot, cfg.LOC)
	res.Violations = append(res.Violations, locViolations...)
	for k, v := range locPerFile {
		res.LOCPerFile[k] = v
	}
	res.FileUniverse.LOCUniverse = codeUniverse
	res.FileUniverse.LOCScanned = locScanned

	envViolations, envSummary := runEnvRegistry(repoRoot, cfg.EnvRegistry, tools)
	res.Violations = append(res.Violations, envViolations...)
	res.EnvRegistry = envSummary

	boundaryViolations, boundaryScanned := runBoundary(repoRoot, cfg.Boundary)
	res.Violations = append(res.Violations, boundaryViolations...)
	res.FileUniverse.BoundaryUniverse = codeUniverse
	res.FileUniverse.BoundaryScanned = boundaryScanned

	surfaceViolations, surfaceItems, surfaceScanned := runSurface(repoRoot, cfg.Surface)
	res.Violations = append(res.Violations, surfaceViolations...)
	res.SurfaceItems = surfaceItems
	res.FileUniverse.SurfaceUniverse = codeUniverse
	res.FileUniverse.SurfaceScanned = surfaceScanned

	dupViolations, dupGroups, dupScanned := runDuplicates(repoRoot, cfg.Duplicates)
	res.Violations = append(res.Violations, dupViolations...)
	res.DuplicateGroups = dupGroups
	res.FileUniverse.DuplicatesUniverse = codeUniverse
	res.FileUniverse.DuplicatesScanned = dupScanned

	res.Violations = append(res.Violations, runSupplyChain(repoRoot, cfg.SupplyChain)...)
	res.Violations = append(res.Violations, runToolBudget(cfg, budget)...)
	res.Violations = append(res.Violations, runReuseFirst(repoRoot, cfg.ReuseFirst)...)
	res.Violations = append(res.Violations, runArchLayers(repoRoot, cfg.ArchLayers)...)
	res.Violations = append(res.Violations, runDeadCode(repoRoot, cfg.DeadCode)...)
	res.Violations = append(res.Violations, runOrphanAPI(repoRoot, cfg.OrphanAPI)...)
	res.Violations = append(res.Violations, runComplexityBudget(repoRoot, cfg.ComplexityBudget)...)
	res.Violations = append(res.Violations, runContractBreak(repoRoot, cfg.ContractBreak)...)

	sort.SliceStable(res.Violations, func(i, j int) bool {
		if res.Violations[i].Path != res.Violations[j].Path {
			return res.Violations[i].Path < res.Violations[j].Path
		}
		return res.Violations[i].Code < res.Violations[j].Code
	})
	sort.Strings(res.SurfaceItems)

	return res
}

func countProbablyCodeFiles(repoRoot string) (int, error) {
	files, err := pathscan.Scan(repoRoot, nil, nil)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range files {
		if pathscan.IsProbablyCodeFile(f.RelPath) {
			n++
		}
	}
	return n, nil
}

func internalError(kind string, err error) api.Violation {
	return api.NewErrorViolation(kind+".internal_error", err.Error(), "", nil)
}
