package manifest

// PluginMeta is the required [plugin] table of a plugin.toml.
type PluginMeta struct {
	ID          string `toml:"id" json:"id"`
	Description string `toml:"description" json:"description"`
}

// GateConfig lists the tool ids triggered at each CI tier.
type GateConfig struct {
	CIFast   []string `toml:"ci_fast" json:"ci_fast"`
	CI       []string `toml:"ci" json:"ci"`
	Flagship []string `toml:"flagship" json:"flagship"`
}

// PluginFile is the full decoded shape of one plugin.toml document.
type PluginFile struct {
	Plugin           PluginMeta            `toml:"plugin" json:"plugin"`
	ToolPolicy       *ToolExecutionPolicy  `toml:"tool_policy" json:"tool_policy,omitempty"`
	Tools            []ProjectTool         `toml:"tools" json:"tools"`
	Gate             GateConfig            `toml:"gate" json:"gate"`
	Checks           ChecksConfig          `toml:"checks" json:"checks"`
	ToolImportGlobs  []string              `toml:"tool_import_globs" json:"tool_import_globs"`
}

// DefaultToolPolicy returns the allowlist-mode default when a plugin omits
// [tool_policy] entirely.
func DefaultToolPolicy() ToolExecutionPolicy {
	return ToolExecutionPolicy{Mode: PolicyModeAllowlist}
}

// EffectivePolicy returns the plugin's configured policy, or the default.
func (p PluginFile) EffectivePolicy() ToolExecutionPolicy {
	if p.ToolPolicy != nil {
		return *p.ToolPolicy
	}
	return DefaultToolPolicy()
}

// LoadPluginFile decodes and strictly validates the raw shape of one
// plugin.toml's bytes. It does not perform cross-plugin checks (id
// uniqueness, check id collisions) — those live in internal/repoconfig,
// which has visibility across every plugin.
func LoadPluginFile(data []byte) (*PluginFile, error) {
	var pf PluginFile
	if err := DecodeStrict(data, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}

// ImportedToolFile is the shape of a file referenced by tool_import_globs:
// a single `[tool]` table, identical to one [[tools]] entry.
type ImportedToolFile struct {
	Tool ProjectTool `toml:"tool" json:"tool"`
}

// LoadImportedToolFile decodes one imported tool document.
func LoadImportedToolFile(data []byte) (*ImportedToolFile, error) {
	var f ImportedToolFile
	if err := DecodeStrict(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
