// Package gate is the library entry point for the repository quality
// gate: it wires pathscan, repoconfig, packs, checks, allowlist, quality,
// and verdict into the two operations a caller (the CLI, an MCP tool,
// a test) needs: Validate and Describe. Config load -> check dispatch ->
// output render lives here as a pure library function with zero CLI
// concerns of its own, so the CLI, a future MCP tool, or a test can all
// call the same entry point.
package gate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/compasdx/gate/internal/allowlist"
	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/checks"
	"github.com/compasdx/gate/internal/failuremodes"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/packs"
	"github.com/compasdx/gate/internal/quality"
	"github.com/compasdx/gate/internal/repoconfig"
	"github.com/compasdx/gate/internal/report"
	"github.com/compasdx/gate/internal/verdict"
)

// Options configures one Validate call.
type Options struct {
	// Mode selects the enforcement posture (warn/ratchet/strict).
	Mode api.Mode
	// WriteBaseline, when true, persists the run's freshly computed
	// posture as the new quality snapshot instead of comparing against
	// the existing one — the "accepted the regression" escape hatch.
	WriteBaseline bool
	// WrittenBy is stamped on a written baseline for audit display; the
	// CLI passes something like "user:alice" or "ci:nightly".
	WrittenBy string
	// Now is injected so repeated calls in tests are deterministic;
	// production callers leave it zero and Validate uses time.Now().
	Now time.Time
	// Filter, when non-nil, narrows CheckEngine to the single named check
	// kind (one of manifest.CheckKinds, e.g. "loc") so a fast dev-loop
	// re-run doesn't pay for the full thirteen-kind scan. Loader-stage
	// violations (allow_any policy, config hash drift, mandatory check
	// removal, pack validation) and the quality-delta comparison still
	// run in full regardless of Filter, since those aren't CheckEngine
	// kinds and a partial check run must never silently widen what the
	// gate accepts.
	Filter *string
}

// Validate runs the full nine-stage load/check/allowlist/quality/verdict
// pipeline over repoRoot and returns the schema-v3 structured result. A
// RepoConfigError or any other load-time failure short-circuits into
// report.BuildError rather than panicking or returning a Go error, so
// every caller gets one uniform shape back regardless of where the run
// stopped.
func Validate(repoRoot string, opts Options) api.ValidateOutput {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	mode := opts.Mode
	if mode == "" {
		mode = api.ModeWarn
	}

	rc, err := repoconfig.LoadRepoConfig(repoRoot)
	if err != nil {
		return report.BuildError(err.Error())
	}

	contract, err := loadQualityContract(repoRoot)
	if err != nil {
		return report.BuildError(err.Error())
	}

	mandatoryModes, err := failuremodes.Load(repoRoot)
	if err != nil {
		return report.BuildError(err.Error())
	}
	if err := checkMandatoryFailureModes(contract, mandatoryModes); err != nil {
		return report.BuildError(err.Error())
	}

	violations := append([]api.Violation{}, rc.Violations...)

	if drift := repoconfig.DetectConfigHashDrift(rc.ConfigHash, contract); drift != nil {
		violations = append(violations, *drift)
	}
	violations = append(violations, repoconfig.DetectMandatoryCheckRemoval(rc.Checks, contract.Governance.MandatoryChecks)...)

	packViolations, err := packs.Validate(repoRoot)
	if err != nil {
		return report.BuildError(err.Error())
	}
	violations = append(violations, packViolations...)

	checksConfig := rc.Checks
	if opts.Filter != nil {
		checksConfig = filterChecksConfig(checksConfig, *opts.Filter)
	}

	budget := buildBudgetContext(rc)
	checkResult := checks.Run(repoRoot, checksConfig, budget, envToolRefs(rc))
	violations = append(violations, checkResult.Violations...)

	exceptions, err := loadAllowlist(repoRoot)
	if err != nil {
		return report.BuildError(err.Error())
	}
	allowed := allowlist.Apply(violations, exceptions, contract.Exceptions, now)

	current := buildCurrentSnapshot(checkResult, rc.ConfigHash, allowed.Remaining)
	snapshotPath := filepath.Join(repoRoot, snapshotRelPath(contract))

	if opts.WriteBaseline {
		current.WrittenBy = opts.WrittenBy
		if err := quality.Save(snapshotPath, current); err != nil {
			return report.BuildError(err.Error())
		}
	} else if baseline, err := quality.Load(snapshotPath); err == nil {
		allowed.Remaining = append(allowed.Remaining, quality.ComputeDelta(*baseline, current, contract)...)
	} else if err != quality.ErrSnapshotMissing {
		return report.BuildError(err.Error())
	}

	verdict.SortViolations(allowed.Remaining)
	verdict.SortViolations(allowed.Suppressed)

	findings, risk, trust, v := verdict.Compose(allowed.Remaining, mode)
	return report.Build(allowed.Remaining, allowed.Suppressed, findings, risk, trust, v)
}

// RepoDescription is the read-only introspection view Describe returns:
// every plugin's resolved tools and gate tiers, with no violation or
// verdict machinery run at all.
type RepoDescription struct {
	Plugins    []api.PluginSpec `json:"plugins"`
	ConfigHash string           `json:"config_hash"`
	Error      string           `json:"error,omitempty"`
}

// Describe loads and merges repoRoot's plugin configuration the same way
// Validate does, but skips checks/allowlist/quality/verdict entirely: it
// answers "what does this repo's compas configuration resolve to", not
// "does it pass".
func Describe(repoRoot string) RepoDescription {
	rc, err := repoconfig.LoadRepoConfig(repoRoot)
	if err != nil {
		return RepoDescription{Error: err.Error()}
	}

	specs := make([]api.PluginSpec, 0, len(rc.Plugins))
	for _, p := range rc.Plugins {
		tools := make([]api.ProjectToolSpec, 0, len(p.ToolIDs))
		for _, id := range p.ToolIDs {
			t := rc.Tools[p.ID+"/"+id]
			tools = append(tools, api.ProjectToolSpec{
				ID:             t.ID,
				PluginID:       p.ID,
				Description:    t.Description,
				Command:        t.Command,
				Args:           t.Args,
				Cwd:            derefOrEmpty(t.Cwd),
				TimeoutMS:      t.EffectiveTimeoutMS(),
				MaxStdoutBytes: t.EffectiveMaxStdoutBytes(),
				MaxStderrBytes: t.EffectiveMaxStderrBytes(),
			})
		}
		specs = append(specs, api.PluginSpec{
			ID:           p.ID,
			Description:  p.Description,
			Tools:        tools,
			GateCIFast:   p.Gate.CIFast,
			GateCI:       p.Gate.CI,
			GateFlagship: p.Gate.Flagship,
		})
	}

	return RepoDescription{Plugins: specs, ConfigHash: rc.ConfigHash}
}

func loadQualityContract(repoRoot string) (manifest.QualityContract, error) {
	data, err := readOptional(filepath.Join(repoRoot, repoconfig.QualityContractPath))
	if err != nil {
		return manifest.QualityContract{}, err
	}
	if data == nil {
		return manifest.DefaultQualityContract(), nil
	}
	c, err := manifest.LoadQualityContract(data)
	if err != nil {
		return manifest.QualityContract{}, fmt.Errorf("quality_contract.toml: %w", err)
	}
	return *c, nil
}

func loadAllowlist(repoRoot string) ([]manifest.Exception, error) {
	data, err := readOptional(filepath.Join(repoRoot, repoconfig.AllowlistPath))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	f, err := manifest.LoadAllowlistFile(data)
	if err != nil {
		return nil, fmt.Errorf("allowlist.toml: %w", err)
	}
	for i := range f.Exceptions {
		if f.Exceptions[i].ID == "" {
			f.Exceptions[i].ID = uuid.NewString()
		}
	}
	return f.Exceptions, nil
}

func checkMandatoryFailureModes(contract manifest.QualityContract, catalog []string) error {
	if len(contract.Governance.MandatoryFailureModes) == 0 {
		return nil
	}
	available := make(map[string]bool, len(catalog))
	for _, id := range catalog {
		available[id] = true
	}
	for _, id := range contract.Governance.MandatoryFailureModes {
		if !available[id] {
			return fmt.Errorf("governance.mandatory_failure_modes references unknown failure mode %q", id)
		}
	}
	return nil
}

func snapshotRelPath(contract manifest.QualityContract) string {
	if contract.Baseline.SnapshotPath != "" {
		return contract.Baseline.SnapshotPath
	}
	return repoconfig.SnapshotPath
}

// filterChecksConfig returns a ChecksConfig carrying only the named kind's
// configured checks, leaving every other kind empty. An unrecognized kind
// name yields an all-empty config rather than an error: Filter is a scoping
// convenience, not a validated input, so a typo degrades to "nothing ran"
// instead of aborting the whole validate() call.
func filterChecksConfig(cfg manifest.ChecksConfig, kind string) manifest.ChecksConfig {
	var out manifest.ChecksConfig
	switch kind {
	case "loc":
		out.LOC = cfg.LOC
	case "env_registry":
		out.EnvRegistry = cfg.EnvRegistry
	case "boundary":
		out.Boundary = cfg.Boundary
	case "surface":
		out.Surface = cfg.Surface
	case "duplicates":
		out.Duplicates = cfg.Duplicates
	case "supply_chain":
		out.SupplyChain = cfg.SupplyChain
	case "tool_budget":
		out.ToolBudget = cfg.ToolBudget
	case "reuse_first":
		out.ReuseFirst = cfg.ReuseFirst
	case "arch_layers":
		out.ArchLayers = cfg.ArchLayers
	case "dead_code":
		out.DeadCode = cfg.DeadCode
	case "orphan_api":
		out.OrphanAPI = cfg.OrphanAPI
	case "complexity_budget":
		out.ComplexityBudget = cfg.ComplexityBudget
	case "contract_break":
		out.ContractBreak = cfg.ContractBreak
	}
	return out
}

func buildBudgetContext(rc *repoconfig.RepoConfig) checks.BudgetContext {
	budget := checks.BudgetContext{
		ToolsPerPlugin: map[string]int{},
	}
	for _, p := range rc.Plugins {
		budget.TotalTools += len(p.ToolIDs)
		budget.ToolsPerPlugin[p.ID] += len(p.ToolIDs)
		budget.GateCIFast += len(p.Gate.CIFast)
		budget.GateCI += len(p.Gate.CI)
		budget.GateFlagship += len(p.Gate.Flagship)
	}
	budget.TotalChecks = len(rc.CheckOwners)
	return budget
}

// envToolRefs narrows every resolved tool down to what the env registry
// check needs: its id and declared env map.
func envToolRefs(rc *repoconfig.RepoConfig) map[string]checks.EnvToolRef {
	refs := make(map[string]checks.EnvToolRef, len(rc.Tools))
	for key, t := range rc.Tools {
		refs[key] = checks.EnvToolRef{ID: t.ID, Env: t.Env}
	}
	return refs
}

// readOptional reads path and returns (nil, nil) when it does not exist,
// the standard "file is absent" outcome throughout the loader chain.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func buildCurrentSnapshot(result checks.Result, configHash string, violations []api.Violation) quality.Snapshot {
	findings, risk, trust, _ := verdict.Compose(violations, api.ModeWarn)
	snap := quality.NewSnapshot(configHash, "")
	snap.TrustScore = trust.Score
	snap.WeightedRisk = risk.WeightedTotal
	snap.FindingsTotal = len(findings)
	for sev, count := range risk.BySeverity {
		snap.RiskBySeverity[string(sev)] = count
	}
	snap.LOCPerFile = result.LOCPerFile
	snap.SurfaceItems = result.SurfaceItems
	snap.DuplicateGroups = result.DuplicateGroups
	snap.FileUniverse = quality.FileUniverse{
		LOCUniverse:        result.FileUniverse.LOCUniverse,
		LOCScanned:         result.FileUniverse.LOCScanned,
		SurfaceUniverse:    result.FileUniverse.SurfaceUniverse,
		SurfaceScanned:     result.FileUniverse.SurfaceScanned,
		BoundaryUniverse:   result.FileUniverse.BoundaryUniverse,
		BoundaryScanned:    result.FileUniverse.BoundaryScanned,
		DuplicatesUniverse: result.FileUniverse.DuplicatesUniverse,
		DuplicatesScanned:  result.FileUniverse.DuplicatesScanned,
	}
	return snap
}
