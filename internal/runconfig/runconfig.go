// Package runconfig loads the CLI's own settings (default repo root,
// default enforcement mode, output format, log level), layered
// defaults > project file > environment > flags. It is deliberately
// separate from internal/repoconfig, which resolves the domain
// RepoConfig (plugins/checks/policy) fresh on every Validate call and
// carries no process-wide state at all.
package runconfig

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectConfigPath is the project-level override file's fixed location.
const ProjectConfigPath = ".agents/mcp/compas/cli.yaml"

// Config holds CLI-level settings.
type Config struct {
	RepoRoot  string `yaml:"repo_root" json:"repo_root"`
	Mode      string `yaml:"mode" json:"mode"`
	Output    string `yaml:"output" json:"output"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	Color     bool   `yaml:"color" json:"color"`
}

const (
	defaultMode     = "warn"
	defaultOutput   = "json"
	defaultLogLevel = "info"
)

// Default returns the CLI's built-in defaults.
func Default() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		RepoRoot: cwd,
		Mode:     defaultMode,
		Output:   defaultOutput,
		LogLevel: defaultLogLevel,
		Color:    true,
	}
}

// Load resolves the effective Config: defaults, then the project file
// (if present under repoRoot), then environment (COMPAS_*), then
// flagOverrides (only non-zero fields of flagOverrides are applied).
func Load(repoRoot string, flagOverrides Config) (Config, error) {
	cfg := Default()
	if repoRoot != "" {
		cfg.RepoRoot = repoRoot
	}

	projectPath := filepath.Join(cfg.RepoRoot, ProjectConfigPath)
	if data, err := os.ReadFile(projectPath); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fileCfg)
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	cfg = applyEnv(cfg)
	cfg = merge(cfg, flagOverrides)
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("COMPAS_REPO_ROOT")); v != "" {
		cfg.RepoRoot = v
	}
	if v := strings.TrimSpace(os.Getenv("COMPAS_MODE")); v != "" {
		cfg.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv("COMPAS_OUTPUT")); v != "" {
		cfg.Output = v
	}
	if v := strings.TrimSpace(os.Getenv("COMPAS_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("COMPAS_NO_COLOR"); v == "1" || v == "true" {
		cfg.Color = false
	}
	return cfg
}

// merge overlays every non-zero field of override onto base.
func merge(base, override Config) Config {
	if override.RepoRoot != "" {
		base.RepoRoot = override.RepoRoot
	}
	if override.Mode != "" {
		base.Mode = override.Mode
	}
	if override.Output != "" {
		base.Output = override.Output
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.Color {
		base.Color = override.Color
	}
	return base
}
