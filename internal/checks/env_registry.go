package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// readOptionalFile reads path and returns (nil, nil) when it does not
// exist, distinguishing "not configured" from a real read failure.
func readOptionalFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// EnvToolRef is the slice of a resolved tool runEnvRegistry needs: its id
// and the environment variables it declares, keyed by name.
type EnvToolRef struct {
	ID  string
	Env map[string]string
}

// EnvRegistryEntrySummary is one registry var's resolved display value,
// with sensitive defaults redacted.
type EnvRegistryEntrySummary struct {
	Name   string
	Source api.EffectiveConfigSource
	Value  *string
}

// EnvRegistrySummary is runEnvRegistry's read-only view of the repo's
// declared environment surface, independent of whether any violation
// was raised.
type EnvRegistrySummary struct {
	UsedVars []string
	Entries  []EnvRegistryEntrySummary
}

// runEnvRegistry cross-checks every tool's declared env map against
// registry_path's declared vars: a tool env var the registry does not
// document is flagged env_registry.unregistered_usage, and a registry var
// marked required with no default and no tool supplying it is flagged
// env_registry.required_missing. The returned summary reports each
// registry var's effective source, redacting sensitive defaults.
func runEnvRegistry(repoRoot string, configs []manifest.EnvRegistryCheckConfig, tools map[string]EnvToolRef) ([]api.Violation, EnvRegistrySummary) {
	var violations []api.Violation
	var summary EnvRegistrySummary

	usedSet := map[string]bool{}
	var toolIDs []string
	for id := range tools {
		toolIDs = append(toolIDs, id)
	}
	sort.Strings(toolIDs)
	for _, id := range toolIDs {
		for name := range tools[id].Env {
			usedSet[name] = true
		}
	}
	for name := range usedSet {
		summary.UsedVars = append(summary.UsedVars, name)
	}
	sort.Strings(summary.UsedVars)

	for _, cfg := range configs {
		registryPath := filepath.Join(repoRoot, cfg.RegistryPath)
		data, err := readOptionalFile(registryPath)
		if err != nil {
			violations = append(violations, internalError("env_registry", err))
			continue
		}
		if data == nil {
			violations = append(violations, api.NewErrorViolation(
				"env_registry.registry_missing",
				fmt.Sprintf("env registry %q is configured but missing", cfg.RegistryPath),
				cfg.RegistryPath,
				map[string]any{"check_id": cfg.ID},
			))
			continue
		}
		registry, err := manifest.LoadEnvRegistry(data)
		if err != nil {
			violations = append(violations, internalError("env_registry", err))
			continue
		}

		byName := map[string]manifest.EnvVarEntry{}
		for _, v := range registry.Vars {
			byName[v.Name] = v
		}

		for _, key := range toolIDs {
			toolID := tools[key].ID
			var names []string
			for name := range tools[key].Env {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if _, ok := byName[name]; ok {
					continue
				}
				violations = append(violations, api.NewErrorViolation(
					"env_registry.unregistered_usage",
					fmt.Sprintf("tool %q reads environment variable %q, which is not declared in %s", toolID, name, cfg.RegistryPath),
					"", map[string]any{"check_id": cfg.ID, "tool_id": toolID, "var": name},
				))
			}
		}

		var names []string
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entry := byName[name]
			source, value := resolveEnvVar(entry, toolIDs, tools)
			if entry.Required && source == api.SourceUnset {
				violations = append(violations, api.NewErrorViolation(
					"env_registry.required_missing",
					fmt.Sprintf("environment variable %q is required by %s but has no default and no tool supplies it", name, cfg.RegistryPath),
					cfg.RegistryPath,
					map[string]any{"check_id": cfg.ID, "var": name},
				))
			}
			summary.Entries = append(summary.Entries, EnvRegistryEntrySummary{
				Name: name, Source: source, Value: value,
			})
		}
	}
	return violations, summary
}

// resolveEnvVar reports where a registry var's effective value comes
// from: the first tool that declares it, the registry's own default, or
// unset when neither supplies one. A sensitive default's displayed value
// is redacted.
func resolveEnvVar(entry manifest.EnvVarEntry, toolIDs []string, tools map[string]EnvToolRef) (api.EffectiveConfigSource, *string) {
	for _, id := range toolIDs {
		if v, ok := tools[id].Env[entry.Name]; ok {
			value := v
			return api.SourceTool, &value
		}
	}
	if entry.Default != nil {
		value := *entry.Default
		if entry.Sensitive {
			redacted := "<redacted>"
			value = redacted
		}
		return api.SourceDefault, &value
	}
	return api.SourceUnset, nil
}
