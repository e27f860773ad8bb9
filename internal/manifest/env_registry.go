package manifest

// EnvVarEntry documents one environment variable a tool is allowed to read.
type EnvVarEntry struct {
	Name      string  `toml:"name" json:"name"`
	Required  bool    `toml:"required" json:"required"`
	Sensitive bool    `toml:"sensitive" json:"sensitive,omitempty"`
	Default   *string `toml:"default" json:"default,omitempty"`
}

// EnvRegistry is the decoded shape of env_registry.toml.
type EnvRegistry struct {
	Vars []EnvVarEntry `toml:"vars" json:"vars"`
}

// LoadEnvRegistry decodes an env_registry.toml document.
func LoadEnvRegistry(data []byte) (*EnvRegistry, error) {
	var r EnvRegistry
	if err := DecodeStrict(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
