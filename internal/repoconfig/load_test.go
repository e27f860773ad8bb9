package repoconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writePlugin(t *testing.T, repoRoot, id, content string) {
	t.Helper()
	dir := filepath.Join(repoRoot, PluginsDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugin.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRepoConfigAllowAnyPolicy(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "core", `
[plugin]
id = "core"
description = "core build and test plugin"

[tool_policy]
mode = "allow_any"

[[tools]]
id = "build-tool"
description = "builds the project for ci"
command = "rm"
args = ["-rf", "build"]
`)

	rc, err := LoadRepoConfig(root)
	if err != nil {
		t.Fatalf("LoadRepoConfig: %v", err)
	}

	var sawError, sawObservation bool
	for _, v := range rc.Violations {
		if v.Code != "security.allow_any_policy" {
			continue
		}
		if v.Tier == "error" {
			sawError = true
		}
		if v.Tier == "observation" {
			sawObservation = true
		}
	}
	if !sawError || !sawObservation {
		t.Fatalf("expected both error and observation tier security.allow_any_policy violations, got %+v", rc.Violations)
	}
}

func TestLoadRepoConfigDuplicateCheckID(t *testing.T) {
	root := t.TempDir()
	body := `
[plugin]
id = %q
description = "plugin declaring a shared check id"

[[checks.boundary]]
id = "boundary-main"
include_globs = ["src/**/*.rs"]

[[checks.boundary.rules]]
id = "no-unwrap"
deny_regex = "\\.unwrap\\("
`
	writePlugin(t, root, "alpha", fmt.Sprintf(body, "alpha"))
	writePlugin(t, root, "beta", fmt.Sprintf(body, "beta"))

	_, err := LoadRepoConfig(root)
	if err == nil {
		t.Fatal("expected DuplicateCheckID error")
	}
	dup, ok := err.(*DuplicateCheckID)
	if !ok {
		t.Fatalf("expected *DuplicateCheckID, got %T: %v", err, err)
	}
	if dup.CheckID != "boundary-main" || dup.Kind != "boundary" {
		t.Fatalf("unexpected duplicate: %+v", dup)
	}
}

func TestLoadRepoConfigUnknownGateTool(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "core", `
[plugin]
id = "core"
description = "core build and test plugin"

[[tools]]
id = "build-tool"
description = "builds the project for ci"
command = "cargo"
args = ["build"]

[gate]
ci_fast = ["nonexistent-tool"]
`)

	_, err := LoadRepoConfig(root)
	if err == nil {
		t.Fatal("expected UnknownGateTool error")
	}
	if _, ok := err.(*UnknownGateTool); !ok {
		t.Fatalf("expected *UnknownGateTool, got %T: %v", err, err)
	}
}

func TestLoadRepoConfigDuplicateExactTools(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "alpha", `
[plugin]
id = "alpha"
description = "alpha plugin running the test suite"

[[tools]]
id = "run-tests"
description = "runs the cargo test suite"
command = "cargo"
args = ["test"]

[gate]
ci = ["run-tests"]
`)
	writePlugin(t, root, "beta", `
[plugin]
id = "beta"
description = "beta plugin also running the test suite"

[[tools]]
id = "test-again"
description = "runs the cargo test suite a second time"
command = "cargo"
args = ["test"]

[gate]
flagship = ["test-again"]
`)

	rc, err := LoadRepoConfig(root)
	if err != nil {
		t.Fatalf("LoadRepoConfig: %v", err)
	}
	found := false
	for _, v := range rc.Violations {
		if v.Code == "tools.duplicate_exact" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected tools.duplicate_exact violation, got %+v", rc.Violations)
	}
}

func TestLoadRepoConfigDuplicateExactToolsExemptOnDifferentTimeout(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "alpha", `
[plugin]
id = "alpha"
description = "alpha plugin running the test suite"

[[tools]]
id = "run-tests"
description = "runs the cargo test suite"
command = "cargo"
args = ["test"]
timeout_ms = 1000
`)
	writePlugin(t, root, "beta", `
[plugin]
id = "beta"
description = "beta plugin also running the test suite"

[[tools]]
id = "test-again"
description = "runs the cargo test suite a second time"
command = "cargo"
args = ["test"]
timeout_ms = 5000
`)

	rc, err := LoadRepoConfig(root)
	if err != nil {
		t.Fatalf("LoadRepoConfig: %v", err)
	}
	for _, v := range rc.Violations {
		if v.Code == "tools.duplicate_exact" {
			t.Fatalf("did not expect tools.duplicate_exact when timeouts differ, got %+v", rc.Violations)
		}
	}
}

func TestComputeConfigHashIsStableAcrossLoads(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "core", `
[plugin]
id = "core"
description = "core build and test plugin"

[[tools]]
id = "build-tool"
description = "builds the project for ci"
command = "cargo"
args = ["build"]
`)

	first, err := LoadRepoConfig(root)
	if err != nil {
		t.Fatalf("LoadRepoConfig: %v", err)
	}
	second, err := LoadRepoConfig(root)
	if err != nil {
		t.Fatalf("LoadRepoConfig: %v", err)
	}
	if first.ConfigHash != second.ConfigHash {
		t.Fatalf("expected stable config hash, got %q vs %q", first.ConfigHash, second.ConfigHash)
	}
}

func TestLoadRepoConfigNoPluginsDirIsEmpty(t *testing.T) {
	root := t.TempDir()
	rc, err := LoadRepoConfig(root)
	if err != nil {
		t.Fatalf("LoadRepoConfig: %v", err)
	}
	if len(rc.Plugins) != 0 {
		t.Fatalf("expected no plugins, got %+v", rc.Plugins)
	}
}
