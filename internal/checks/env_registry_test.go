package checks

import (
	"testing"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

func TestRunEnvRegistryFlagsUnregisteredUsage(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "env_registry.toml", `
[[vars]]
name = "REGISTERED_ONLY"
required = false
`)

	tools := map[string]EnvToolRef{
		"core/t1": {ID: "t1", Env: map[string]string{"UNREGISTERED_VAR": "x"}},
	}

	violations, summary := runEnvRegistry(dir, []manifest.EnvRegistryCheckConfig{
		{ID: "env-main", RegistryPath: "env_registry.toml"},
	}, tools)

	found := false
	for _, v := range violations {
		if v.Code == "env_registry.unregistered_usage" && v.Details["var"] == "UNREGISTERED_VAR" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UNREGISTERED_VAR to be flagged unregistered_usage, got %+v", violations)
	}
	if len(summary.UsedVars) != 1 || summary.UsedVars[0] != "UNREGISTERED_VAR" {
		t.Fatalf("expected summary to report the used var, got %+v", summary)
	}
}

func TestRunEnvRegistryDoesNotFlagRegisteredUsage(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "env_registry.toml", `
[[vars]]
name = "KNOWN_VAR"
required = false
`)

	tools := map[string]EnvToolRef{
		"core/t1": {ID: "t1", Env: map[string]string{"KNOWN_VAR": "x"}},
	}

	violations, _ := runEnvRegistry(dir, []manifest.EnvRegistryCheckConfig{
		{ID: "env-main", RegistryPath: "env_registry.toml"},
	}, tools)

	for _, v := range violations {
		if v.Code == "env_registry.unregistered_usage" {
			t.Fatalf("a registered var must never be flagged: %+v", v)
		}
	}
}

func TestRunEnvRegistryFlagsRequiredMissingWithoutDefault(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "env_registry.toml", `
[[vars]]
name = "REQ_VAR"
required = true
`)

	violations, summary := runEnvRegistry(dir, []manifest.EnvRegistryCheckConfig{
		{ID: "env-main", RegistryPath: "env_registry.toml"},
	}, nil)

	found := false
	for _, v := range violations {
		if v.Code == "env_registry.required_missing" && v.Details["var"] == "REQ_VAR" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected REQ_VAR to be flagged required_missing, got %+v", violations)
	}

	var entry *EnvRegistryEntrySummary
	for i := range summary.Entries {
		if summary.Entries[i].Name == "REQ_VAR" {
			entry = &summary.Entries[i]
		}
	}
	if entry == nil || entry.Source != api.SourceUnset {
		t.Fatalf("expected REQ_VAR to resolve as unset, got %+v", entry)
	}
}

func TestRunEnvRegistryRequiredIsSatisfiedByToolEnv(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "env_registry.toml", `
[[vars]]
name = "REQ_VAR"
required = true
`)
	tools := map[string]EnvToolRef{
		"core/t1": {ID: "t1", Env: map[string]string{"REQ_VAR": "set"}},
	}

	violations, _ := runEnvRegistry(dir, []manifest.EnvRegistryCheckConfig{
		{ID: "env-main", RegistryPath: "env_registry.toml"},
	}, tools)

	for _, v := range violations {
		if v.Code == "env_registry.required_missing" {
			t.Fatalf("a tool-supplied required var must not be flagged missing: %+v", v)
		}
	}
}

func TestRunEnvRegistryRedactsSensitiveDefault(t *testing.T) {
	dir := t.TempDir()
	writeCheckFile(t, dir, "env_registry.toml", `
[[vars]]
name = "TOKEN_VAR"
required = false
sensitive = true
default = "super-secret"
`)

	_, summary := runEnvRegistry(dir, []manifest.EnvRegistryCheckConfig{
		{ID: "env-main", RegistryPath: "env_registry.toml"},
	}, nil)

	var entry *EnvRegistryEntrySummary
	for i := range summary.Entries {
		if summary.Entries[i].Name == "TOKEN_VAR" {
			entry = &summary.Entries[i]
		}
	}
	if entry == nil || entry.Source != api.SourceDefault {
		t.Fatalf("expected TOKEN_VAR to resolve from its default, got %+v", entry)
	}
	if entry.Value == nil || *entry.Value != "<redacted>" {
		t.Fatalf("expected a sensitive default to render redacted, got %+v", entry.Value)
	}
}

func TestRunEnvRegistryFlagsMissingRegistryAsTransient(t *testing.T) {
	dir := t.TempDir()

	violations, _ := runEnvRegistry(dir, []manifest.EnvRegistryCheckConfig{
		{ID: "env-main", RegistryPath: "does_not_exist.toml"},
	}, nil)

	if len(violations) != 1 || violations[0].Code != "env_registry.registry_missing" {
		t.Fatalf("expected registry_missing violation, got %+v", violations)
	}
	if violations[0].Tier != "error" {
		t.Fatalf("expected error tier, got %s", violations[0].Tier)
	}
}
