package repoconfig

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// canonicalConfig is the top-level hash-stable document: the plugin set
// plus the published severity weight table, so reweighting severities to
// game the trust score changes the hash too.
type canonicalConfig struct {
	Plugins         []canonicalPlugin      `json:"plugins"`
	SeverityWeights map[api.Severity]float64 `json:"severity_weights"`
}

// canonicalPlugin is the hash-stable projection of one plugin: field order
// is fixed by the struct declaration and encoding/json sorts map keys, so
// two processes loading the same manifests always produce the same bytes.
type canonicalPlugin struct {
	ID          string                `json:"id"`
	Description string                `json:"description"`
	Policy      manifest.ToolExecutionPolicy `json:"policy"`
	Tools       []manifest.ProjectTool `json:"tools"`
	Gate        manifest.GateConfig   `json:"gate"`
	Checks      manifest.ChecksConfig `json:"checks"`
}

// ComputeConfigHash canonicalizes the merged configuration (stable key
// order, no timestamps, no filesystem paths) and returns a
// "sha256:<hex>" digest. It is computed over the
// ResolvedPlugins directly rather than over RepoConfig as a whole, so that
// assembly-time Violations (which are themselves derived from the
// config and would otherwise make the hash depend on itself) never enter
// the hashed bytes.
func ComputeConfigHash(plugins []ResolvedPlugin, tools map[string]ResolvedTool) (string, error) {
	canon := make([]canonicalPlugin, 0, len(plugins))
	for _, p := range plugins {
		toolList := make([]manifest.ProjectTool, 0, len(p.ToolIDs))
		for _, id := range p.ToolIDs {
			toolList = append(toolList, tools[toolKey(p.ID, id)].ProjectTool)
		}
		sort.Slice(toolList, func(i, j int) bool { return toolList[i].ID < toolList[j].ID })
		canon = append(canon, canonicalPlugin{
			ID:          p.ID,
			Description: p.Description,
			Policy:      p.Policy,
			Tools:       toolList,
			Gate:        p.Gate,
			Checks:      p.Checks,
		})
	}
	sort.Slice(canon, func(i, j int) bool { return canon[i].ID < canon[j].ID })

	data, err := json.Marshal(canonicalConfig{Plugins: canon, SeverityWeights: api.SeverityWeights})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
