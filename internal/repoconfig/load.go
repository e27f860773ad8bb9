package repoconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// LoadRepoConfig discovers every plugin under PluginsDir, validates and
// merges them into one RepoConfig, and computes the config hash. Plugin
// directories are discovered in sorted order; each is decoded, its plugin
// and tool ids validated, its tool execution policy applied, its gate
// tiers resolved against its own tools, and its checks merged. Exact
// duplicate tools are then detected and the hash computed. It returns the first RepoConfigError
// encountered; a repo with no plugins directory at all is valid and yields
// an empty RepoConfig.
func LoadRepoConfig(repoRoot string) (*RepoConfig, error) {
	pluginDirs, err := discoverPluginDirs(repoRoot)
	if err != nil {
		return nil, err
	}

	rc := &RepoConfig{
		Tools:       map[string]ResolvedTool{},
		CheckOwners: map[string]string{},
	}
	seenPluginIDs := map[string]string{}
	seenCheckIDs := map[string]string{}

	for _, dir := range pluginDirs {
		pf, err := loadPluginFileFrom(dir)
		if err != nil {
			return nil, err
		}

		pluginID := pf.Plugin.ID
		if !manifest.IsValidID(pluginID) {
			return nil, &InvalidPluginID{PluginDir: dir, ID: pluginID}
		}
		if prevDir, ok := seenPluginIDs[pluginID]; ok {
			return nil, &DuplicatePluginID{ID: pluginID, FirstDir: prevDir, SecondDir: dir}
		}
		seenPluginIDs[pluginID] = dir

		toolIDs, err := resolveStaticTools(rc, pluginID, pf.Tools)
		if err != nil {
			return nil, err
		}

		importedIDs, err := resolveToolImports(repoRoot, rc, pluginID, pf.ToolImportGlobs)
		if err != nil {
			return nil, err
		}
		toolIDs = append(toolIDs, importedIDs...)

		policy := pf.EffectivePolicy()
		if policy.Mode == manifest.PolicyModeAllowAny {
			rc.Violations = append(rc.Violations,
				api.NewObservationViolation("security.allow_any_policy",
					fmt.Sprintf("plugin %q runs with an unrestricted (allow_any) tool execution policy", pluginID),
					dir, map[string]any{"plugin_id": pluginID}),
				api.NewErrorViolation("security.allow_any_policy",
					fmt.Sprintf("plugin %q runs with an unrestricted (allow_any) tool execution policy", pluginID),
					dir, map[string]any{"plugin_id": pluginID}),
			)
		} else {
			for _, cmd := range policy.AllowCommands {
				if !manifest.CommandLikePattern.MatchString(cmd) {
					return nil, &InvalidToolPolicyCommand{PluginID: pluginID, Command: cmd}
				}
			}
			allowed := allowedCommandSet(policy.AllowCommands)
			for _, id := range toolIDs {
				tool := rc.Tools[toolKey(pluginID, id)]
				base := manifest.CommandBasename(tool.Command)
				if !allowed[base] {
					return nil, &ToolCommandPolicyViolation{PluginID: pluginID, ToolID: id, Command: tool.Command}
				}
			}
		}

		if err := resolveGate(pluginID, pf.Gate, toolIDs); err != nil {
			return nil, err
		}

		if err := mergeCheckIDs(pluginID, pf.Checks, seenCheckIDs, rc.CheckOwners); err != nil {
			return nil, err
		}
		rc.Checks = mergeChecks(rc.Checks, pf.Checks)

		rc.Plugins = append(rc.Plugins, ResolvedPlugin{
			ID:          pluginID,
			Description: pf.Plugin.Description,
			Dir:         dir,
			Policy:      policy,
			ToolIDs:     toolIDs,
			Gate:        pf.Gate,
			Checks:      pf.Checks,
		})
		for _, id := range toolIDs {
			rc.ToolOrder = append(rc.ToolOrder, toolKey(pluginID, id))
		}
	}

	rc.Violations = append(rc.Violations, detectDuplicateExactTools(rc)...)

	hash, err := ComputeConfigHash(rc.Plugins, rc.Tools)
	if err != nil {
		return nil, err
	}
	rc.ConfigHash = hash

	return rc, nil
}

// DetectConfigHashDrift compares the freshly computed config hash against
// governance.config_hash (declared in quality_contract.toml, loaded
// separately from the plugin set) and reports tampering. Returns nil when
// there is nothing to report.
func DetectConfigHashDrift(computedHash string, contract manifest.QualityContract) *api.Violation {
	if contract.Governance.ConfigHash == nil {
		return nil
	}
	declared := *contract.Governance.ConfigHash
	if declared == computedHash {
		return nil
	}
	v := api.NewErrorViolation("config.threshold_weakened",
		"the declared governance.config_hash no longer matches the merged configuration",
		"", map[string]any{"declared": declared, "computed": computedHash})
	return &v
}

func discoverPluginDirs(repoRoot string) ([]string, error) {
	root := filepath.Join(repoRoot, PluginsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "plugin.toml")); err != nil {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func loadPluginFileFrom(dir string) (*manifest.PluginFile, error) {
	data, err := os.ReadFile(filepath.Join(dir, "plugin.toml"))
	if err != nil {
		return nil, err
	}
	return manifest.LoadPluginFile(data)
}

func validateTool(pluginID string, t manifest.ProjectTool) error {
	if !manifest.IsValidID(t.ID) {
		return &InvalidToolID{PluginID: pluginID, ToolID: t.ID}
	}
	trimmed := t.TrimmedDescription()
	if len(trimmed) < 12 || len(trimmed) > 220 {
		return &InvalidDescription{PluginID: pluginID, ToolID: t.ID}
	}
	if strings.TrimSpace(t.Command) == "" {
		return &InvalidToolCommand{PluginID: pluginID, ToolID: t.ID}
	}
	return nil
}

func resolveStaticTools(rc *RepoConfig, pluginID string, tools []manifest.ProjectTool) ([]string, error) {
	ids := make([]string, 0, len(tools))
	for _, t := range tools {
		if err := validateTool(pluginID, t); err != nil {
			return nil, err
		}
		rc.Tools[toolKey(pluginID, t.ID)] = ResolvedTool{ProjectTool: t, PluginID: pluginID}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func resolveToolImports(repoRoot string, rc *RepoConfig, pluginID string, globs []string) ([]string, error) {
	var ids []string
	fsys := os.DirFS(repoRoot)
	for _, pattern := range globs {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &InvalidImportGlob{PluginID: pluginID, Pattern: pattern}
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, &InvalidImportGlob{PluginID: pluginID, Pattern: pattern}
		}
		sort.Strings(matches)
		for _, rel := range matches {
			abs := filepath.Join(repoRoot, rel)
			data, err := os.ReadFile(abs)
			if err != nil {
				return nil, &ReadImportedTool{PluginID: pluginID, Path: rel, Cause: err.Error()}
			}
			imported, err := manifest.LoadImportedToolFile(data)
			if err != nil {
				return nil, &ParseImportedTool{PluginID: pluginID, Path: rel, Cause: err.Error()}
			}
			if err := validateTool(pluginID, imported.Tool); err != nil {
				return nil, err
			}
			rc.Tools[toolKey(pluginID, imported.Tool.ID)] = ResolvedTool{
				ProjectTool: imported.Tool, PluginID: pluginID, Imported: true,
			}
			ids = append(ids, imported.Tool.ID)
		}
	}
	return ids, nil
}

func allowedCommandSet(extra []string) map[string]bool {
	set := make(map[string]bool, len(manifest.DefaultAllowedCommands)+len(extra))
	for _, c := range manifest.DefaultAllowedCommands {
		set[strings.ToLower(c)] = true
	}
	for _, c := range extra {
		set[strings.ToLower(c)] = true
	}
	return set
}

type gateTier struct {
	name string
	ids  []string
}

func resolveGate(pluginID string, gate manifest.GateConfig, ownedToolIDs []string) error {
	owned := make(map[string]bool, len(ownedToolIDs))
	for _, id := range ownedToolIDs {
		owned[id] = true
	}
	for _, tier := range []gateTier{
		{"ci_fast", gate.CIFast},
		{"ci", gate.CI},
		{"flagship", gate.Flagship},
	} {
		for _, id := range tier.ids {
			if !owned[id] {
				return &UnknownGateTool{PluginID: pluginID, GateTier: tier.name, ToolID: id}
			}
		}
	}
	return nil
}

func checkIDsForKind(c manifest.ChecksConfig, kind string) []string {
	switch kind {
	case "loc":
		ids := make([]string, len(c.LOC))
		for i, x := range c.LOC {
			ids[i] = x.ID
		}
		return ids
	case "env_registry":
		ids := make([]string, len(c.EnvRegistry))
		for i, x := range c.EnvRegistry {
			ids[i] = x.ID
		}
		return ids
	case "boundary":
		ids := make([]string, len(c.Boundary))
		for i, x := range c.Boundary {
			ids[i] = x.ID
		}
		return ids
	case "surface":
		ids := make([]string, len(c.Surface))
		for i, x := range c.Surface {
			ids[i] = x.ID
		}
		return ids
	case "duplicates":
		ids := make([]string, len(c.Duplicates))
		for i, x := range c.Duplicates {
			ids[i] = x.ID
		}
		return ids
	case "supply_chain":
		ids := make([]string, len(c.SupplyChain))
		for i, x := range c.SupplyChain {
			ids[i] = x.ID
		}
		return ids
	case "tool_budget":
		ids := make([]string, len(c.ToolBudget))
		for i, x := range c.ToolBudget {
			ids[i] = x.ID
		}
		return ids
	case "reuse_first":
		ids := make([]string, len(c.ReuseFirst))
		for i, x := range c.ReuseFirst {
			ids[i] = x.ID
		}
		return ids
	case "arch_layers":
		ids := make([]string, len(c.ArchLayers))
		for i, x := range c.ArchLayers {
			ids[i] = x.ID
		}
		return ids
	case "dead_code":
		ids := make([]string, len(c.DeadCode))
		for i, x := range c.DeadCode {
			ids[i] = x.ID
		}
		return ids
	case "orphan_api":
		ids := make([]string, len(c.OrphanAPI))
		for i, x := range c.OrphanAPI {
			ids[i] = x.ID
		}
		return ids
	case "complexity_budget":
		ids := make([]string, len(c.ComplexityBudget))
		for i, x := range c.ComplexityBudget {
			ids[i] = x.ID
		}
		return ids
	case "contract_break":
		ids := make([]string, len(c.ContractBreak))
		for i, x := range c.ContractBreak {
			ids[i] = x.ID
		}
		return ids
	default:
		return nil
	}
}

func mergeCheckIDs(pluginID string, checks manifest.ChecksConfig, seen map[string]string, owners map[string]string) error {
	for _, kind := range manifest.CheckKinds {
		for _, id := range checkIDsForKind(checks, kind) {
			if !manifest.IsValidID(id) {
				return &InvalidCheckID{PluginID: pluginID, Kind: kind, CheckID: id}
			}
			if prevPlugin, ok := seen[id]; ok {
				return &DuplicateCheckID{Kind: kind, CheckID: id, PluginID: pluginID, PreviousPluginID: prevPlugin}
			}
			seen[id] = pluginID
			owners[id] = pluginID
		}
	}
	return nil
}

func mergeChecks(dst, src manifest.ChecksConfig) manifest.ChecksConfig {
	dst.LOC = append(dst.LOC, src.LOC...)
	dst.EnvRegistry = append(dst.EnvRegistry, src.EnvRegistry...)
	dst.Boundary = append(dst.Boundary, src.Boundary...)
	dst.Surface = append(dst.Surface, src.Surface...)
	dst.Duplicates = append(dst.Duplicates, src.Duplicates...)
	dst.SupplyChain = append(dst.SupplyChain, src.SupplyChain...)
	dst.ToolBudget = append(dst.ToolBudget, src.ToolBudget...)
	dst.ReuseFirst = append(dst.ReuseFirst, src.ReuseFirst...)
	dst.ArchLayers = append(dst.ArchLayers, src.ArchLayers...)
	dst.DeadCode = append(dst.DeadCode, src.DeadCode...)
	dst.OrphanAPI = append(dst.OrphanAPI, src.OrphanAPI...)
	dst.ComplexityBudget = append(dst.ComplexityBudget, src.ComplexityBudget...)
	dst.ContractBreak = append(dst.ContractBreak, src.ContractBreak...)
	return dst
}

// toolSignature captures the fields that define two tools as "identical":
// command, args, and the *effective* (default-filled) resource limits and
// env. Two tools differing only by id or plugin membership collide here;
// differing timeout or byte caps do not.
func toolSignature(t manifest.ProjectTool) string {
	type sig struct {
		Command string            `json:"command"`
		Args    []string          `json:"args"`
		Timeout int               `json:"timeout_ms"`
		Stdout  int               `json:"max_stdout_bytes"`
		Stderr  int               `json:"max_stderr_bytes"`
		Env     map[string]string `json:"env"`
	}
	data, _ := json.Marshal(sig{
		Command: t.Command,
		Args:    t.Args,
		Timeout: t.EffectiveTimeoutMS(),
		Stdout:  t.EffectiveMaxStdoutBytes(),
		Stderr:  t.EffectiveMaxStderrBytes(),
		Env:     t.Env,
	})
	return string(data)
}

func detectDuplicateExactTools(rc *RepoConfig) []api.Violation {
	groups := map[string][]string{}
	var order []string
	for _, key := range rc.ToolOrder {
		sig := toolSignature(rc.Tools[key].ProjectTool)
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], key)
	}

	var violations []api.Violation
	for _, sig := range order {
		keys := groups[sig]
		if len(keys) < 2 {
			continue
		}
		violations = append(violations, api.NewObservationViolation(
			"tools.duplicate_exact",
			fmt.Sprintf("%d tools share an identical command signature", len(keys)),
			"",
			map[string]any{"tools": keys},
		))
	}
	return violations
}
