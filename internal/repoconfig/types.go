package repoconfig

import (
	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// PluginsDir and friends are the fixed repo-relative filesystem layout
// a gated repository is expected to carry.
const (
	PluginsDir          = ".agents/mcp/compas/plugins"
	FailureModesPath    = ".agents/mcp/compas/failure_modes.toml"
	QualityContractPath = ".agents/mcp/compas/quality_contract.toml"
	AllowlistPath       = ".agents/mcp/compas/allowlist.toml"
	PacksDir            = ".agents/mcp/compas/packs"
	PacksLockPath       = ".agents/mcp/compas/packs.lock"
	SnapshotPath        = ".agents/mcp/compas/baselines/quality_snapshot.json"
)

// ResolvedTool is a tool merged into the repo-wide view, tagged with the
// plugin that owns it (static declaration or tool_import_globs import).
type ResolvedTool struct {
	manifest.ProjectTool
	PluginID string
	Imported bool
}

// ResolvedPlugin is one plugin.toml after its own tools (static + imported)
// have been resolved and validated, but before cross-plugin merging.
type ResolvedPlugin struct {
	ID          string
	Description string
	Dir         string
	Policy      manifest.ToolExecutionPolicy
	ToolIDs     []string // this plugin's own tools, in declaration-then-import order
	Gate        manifest.GateConfig
	Checks      manifest.ChecksConfig
}

// RepoConfig is the fully merged, validated configuration model: every
// plugin's tools and checks combined into one namespace, with the
// assembly-time violations and config hash attached.
type RepoConfig struct {
	Plugins     []ResolvedPlugin
	Tools       map[string]ResolvedTool // keyed by "pluginID/toolID"
	ToolOrder   []string                // same keys, deterministic order
	Checks      manifest.ChecksConfig   // every plugin's checks concatenated, in plugin order
	CheckOwners map[string]string       // check id -> owning plugin id
	Violations  []api.Violation         // assembly-time violations (security.allow_any_policy, tools.duplicate_exact)
	ConfigHash  string
}

func toolKey(pluginID, toolID string) string { return pluginID + "/" + toolID }
