package manifest

// ChecksConfig holds one ordered sequence of check configs per kind. A
// plugin.toml's [[checks.<kind>]] arrays decode directly into this shape,
// and internal/repoconfig concatenates every plugin's ChecksConfig into
// one merged set while enforcing global id uniqueness.
type ChecksConfig struct {
	LOC               []LOCCheckConfig               `toml:"loc" json:"loc,omitempty"`
	EnvRegistry       []EnvRegistryCheckConfig       `toml:"env_registry" json:"env_registry,omitempty"`
	Boundary          []BoundaryCheckConfig          `toml:"boundary" json:"boundary,omitempty"`
	Surface           []SurfaceCheckConfig           `toml:"surface" json:"surface,omitempty"`
	Duplicates        []DuplicatesCheckConfig        `toml:"duplicates" json:"duplicates,omitempty"`
	SupplyChain       []SupplyChainCheckConfig       `toml:"supply_chain" json:"supply_chain,omitempty"`
	ToolBudget        []ToolBudgetCheckConfig        `toml:"tool_budget" json:"tool_budget,omitempty"`
	ReuseFirst        []ReuseFirstCheckConfig        `toml:"reuse_first" json:"reuse_first,omitempty"`
	ArchLayers        []ArchLayersCheckConfig        `toml:"arch_layers" json:"arch_layers,omitempty"`
	DeadCode          []DeadCodeCheckConfig          `toml:"dead_code" json:"dead_code,omitempty"`
	OrphanAPI         []OrphanAPICheckConfig         `toml:"orphan_api" json:"orphan_api,omitempty"`
	ComplexityBudget  []ComplexityBudgetCheckConfig  `toml:"complexity_budget" json:"complexity_budget,omitempty"`
	ContractBreak     []ContractBreakCheckConfig     `toml:"contract_break" json:"contract_break,omitempty"`
}

// CheckKinds lists every kind name in a stable order, used for iterating
// the ChecksConfig container generically (budget counting, id collision
// detection) without reflection.
var CheckKinds = []string{
	"loc", "env_registry", "boundary", "surface", "duplicates",
	"supply_chain", "tool_budget", "reuse_first", "arch_layers",
	"dead_code", "orphan_api", "complexity_budget", "contract_break",
}

// TotalChecks counts every configured check across all 13 kinds.
func (c ChecksConfig) TotalChecks() int {
	return len(c.LOC) + len(c.EnvRegistry) + len(c.Boundary) + len(c.Surface) +
		len(c.Duplicates) + len(c.SupplyChain) + len(c.ToolBudget) +
		len(c.ReuseFirst) + len(c.ArchLayers) + len(c.DeadCode) +
		len(c.OrphanAPI) + len(c.ComplexityBudget) + len(c.ContractBreak)
}

// HasKind reports whether the merged config carries at least one check of
// the named kind, used to detect governance.mandatory_checks removal.
func (c ChecksConfig) HasKind(kind string) bool {
	switch kind {
	case "loc":
		return len(c.LOC) > 0
	case "env_registry":
		return len(c.EnvRegistry) > 0
	case "boundary":
		return len(c.Boundary) > 0
	case "surface":
		return len(c.Surface) > 0
	case "duplicates":
		return len(c.Duplicates) > 0
	case "supply_chain":
		return len(c.SupplyChain) > 0
	case "tool_budget":
		return len(c.ToolBudget) > 0
	case "reuse_first":
		return len(c.ReuseFirst) > 0
	case "arch_layers":
		return len(c.ArchLayers) > 0
	case "dead_code":
		return len(c.DeadCode) > 0
	case "orphan_api":
		return len(c.OrphanAPI) > 0
	case "complexity_budget":
		return len(c.ComplexityBudget) > 0
	case "contract_break":
		return len(c.ContractBreak) > 0
	default:
		return false
	}
}

// LOCCheckConfig flags files whose non-empty line count exceeds MaxLOC.
type LOCCheckConfig struct {
	ID            string   `toml:"id" json:"id"`
	MaxLOC        int      `toml:"max_loc" json:"max_loc"`
	IncludeGlobs  []string `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs  []string `toml:"exclude_globs" json:"exclude_globs"`
	BaselinePath  string   `toml:"baseline_path" json:"baseline_path"`
}

// EnvRegistryCheckConfig points at the repo's env var registry document.
type EnvRegistryCheckConfig struct {
	ID           string `toml:"id" json:"id"`
	RegistryPath string `toml:"registry_path" json:"registry_path"`
}

// BoundaryRuleConfig denies a regex pattern within matching files.
type BoundaryRuleConfig struct {
	ID         string `toml:"id" json:"id"`
	DenyRegex  string `toml:"deny_regex" json:"deny_regex"`
}

// BoundaryCheckConfig scans include_globs for any rule's deny_regex.
type BoundaryCheckConfig struct {
	ID                        string                `toml:"id" json:"id"`
	IncludeGlobs              []string              `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs              []string              `toml:"exclude_globs" json:"exclude_globs"`
	Rules                     []BoundaryRuleConfig  `toml:"rules" json:"rules"`
	StripRustCfgTestBlocks    bool                  `toml:"strip_rust_cfg_test_blocks" json:"strip_rust_cfg_test_blocks,omitempty"`
}

// SurfaceRuleConfig captures one regex's matches as public-surface items.
type SurfaceRuleConfig struct {
	FileGlobs   []string `toml:"file_globs" json:"file_globs"`
	Regex       string   `toml:"regex" json:"regex"`
	Description *string  `toml:"description" json:"description,omitempty"`
}

// SurfaceCheckConfig counts unique surface items captured across rules.
type SurfaceCheckConfig struct {
	ID           string              `toml:"id" json:"id"`
	MaxItems     int                 `toml:"max_items" json:"max_items"`
	IncludeGlobs []string            `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs []string            `toml:"exclude_globs" json:"exclude_globs"`
	Rules        []SurfaceRuleConfig `toml:"rules" json:"rules"`
	BaselinePath string              `toml:"baseline_path" json:"baseline_path"`
}

// DuplicatesCheckConfig groups files by content hash to find exact copies.
type DuplicatesCheckConfig struct {
	ID             string   `toml:"id" json:"id"`
	IncludeGlobs   []string `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs   []string `toml:"exclude_globs" json:"exclude_globs"`
	MaxFileBytes   int      `toml:"max_file_bytes" json:"max_file_bytes"`
	AllowlistGlobs []string `toml:"allowlist_globs" json:"allowlist_globs"`
	BaselinePath   string   `toml:"baseline_path" json:"baseline_path"`
}

// SupplyChainCheckConfig has no tunables; it always looks for lockfiles
// and prerelease dependency tags in known manifest formats.
type SupplyChainCheckConfig struct {
	ID string `toml:"id" json:"id"`
}

// ToolBudgetCheckConfig caps tool and check counts to resist gate sprawl.
type ToolBudgetCheckConfig struct {
	ID                    string `toml:"id" json:"id"`
	MaxToolsTotal         int    `toml:"max_tools_total" json:"max_tools_total"`
	MaxToolsPerPlugin     int    `toml:"max_tools_per_plugin" json:"max_tools_per_plugin"`
	MaxGateToolsPerKind   int    `toml:"max_gate_tools_per_kind" json:"max_gate_tools_per_kind"`
	MaxChecksTotal        int    `toml:"max_checks_total" json:"max_checks_total"`
}

// ReuseFirstCheckConfig flags near-duplicate code blocks below a line floor.
type ReuseFirstCheckConfig struct {
	ID            string   `toml:"id" json:"id"`
	IncludeGlobs  []string `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs  []string `toml:"exclude_globs" json:"exclude_globs"`
	MinBlockLines int      `toml:"min_block_lines" json:"min_block_lines"`
}

// ArchLayerDef names one architectural layer by its file globs and import prefixes.
type ArchLayerDef struct {
	ID             string   `toml:"id" json:"id"`
	IncludeGlobs   []string `toml:"include_globs" json:"include_globs"`
	ModulePrefixes []string `toml:"module_prefixes" json:"module_prefixes"`
}

// ArchLayerRule forbids one layer from importing a set of other layers.
type ArchLayerRule struct {
	FromLayer     string   `toml:"from_layer" json:"from_layer"`
	DenyToLayers  []string `toml:"deny_to_layers" json:"deny_to_layers"`
}

// ArchLayersCheckConfig enforces a directed layering policy.
type ArchLayersCheckConfig struct {
	ID     string          `toml:"id" json:"id"`
	Layers []ArchLayerDef  `toml:"layers" json:"layers"`
	Rules  []ArchLayerRule `toml:"rules" json:"rules"`
}

// DeadCodeCheckConfig flags symbols with no detected reference.
type DeadCodeCheckConfig struct {
	ID            string   `toml:"id" json:"id"`
	IncludeGlobs  []string `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs  []string `toml:"exclude_globs" json:"exclude_globs"`
	MinSymbolLen  int      `toml:"min_symbol_len" json:"min_symbol_len"`
}

// OrphanAPICheckConfig flags exported symbols with no in-repo caller.
type OrphanAPICheckConfig struct {
	ID            string   `toml:"id" json:"id"`
	IncludeGlobs  []string `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs  []string `toml:"exclude_globs" json:"exclude_globs"`
	MinSymbolLen  int      `toml:"min_symbol_len" json:"min_symbol_len"`
}

// ComplexityBudgetCheckConfig caps function size and branching complexity.
type ComplexityBudgetCheckConfig struct {
	ID               string   `toml:"id" json:"id"`
	IncludeGlobs     []string `toml:"include_globs" json:"include_globs"`
	ExcludeGlobs     []string `toml:"exclude_globs" json:"exclude_globs"`
	MaxFunctionLines int      `toml:"max_function_lines" json:"max_function_lines"`
	MaxCyclomatic    int      `toml:"max_cyclomatic" json:"max_cyclomatic"`
	MaxCognitive     int      `toml:"max_cognitive" json:"max_cognitive"`
}

// ContractBreakCheckConfig diffs a recorded public-contract baseline.
type ContractBreakCheckConfig struct {
	ID           string `toml:"id" json:"id"`
	BaselinePath string `toml:"baseline_path" json:"baseline_path"`
}
