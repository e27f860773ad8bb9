package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/compasdx/gate/internal/repoconfig"
)

func writeFixturePlugin(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, repoconfig.PluginsDir, "core")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `
[plugin]
id = "core"
description = "core build plugin"

[[tools]]
id = "build-tool"
description = "builds the project for continuous integration"
command = "go"
args = ["build", "./..."]
`
	if err := os.WriteFile(filepath.Join(dir, "plugin.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateCommandPassesOnAWellFormedRepo(t *testing.T) {
	root := t.TempDir()
	writeFixturePlugin(t, root)

	out, err := execRoot(t, "validate", "--repo-root", root, "--mode", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v, output: %s", err, out)
	}
	if !bytes.Contains([]byte(out), []byte(`"ok": true`)) {
		t.Fatalf("expected ok:true in rendered output, got %s", out)
	}
}

func TestValidateCommandExitsWithErrorOnBlockedVerdict(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, repoconfig.PluginsDir, "core")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `
[plugin]
id = "core"
description = "plugin running with an open tool policy"

[tool_policy]
mode = "allow_any"

[[tools]]
id = "build-tool"
description = "builds the project for continuous integration"
command = "go"
args = ["build", "./..."]
`
	if err := os.WriteFile(filepath.Join(dir, "plugin.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execRoot(t, "validate", "--repo-root", root, "--mode", "warn")
	if err == nil {
		t.Fatal("expected an error exit for a blocked verdict")
	}
}

func TestDescribeCommandResolvesPluginsWithoutError(t *testing.T) {
	root := t.TempDir()
	writeFixturePlugin(t, root)

	out, err := execRoot(t, "describe", "--repo-root", root)
	if err != nil {
		t.Fatalf("unexpected error: %v, output: %s", err, out)
	}
	if !bytes.Contains([]byte(out), []byte("build-tool")) {
		t.Fatalf("expected build-tool in rendered output, got %s", out)
	}
}

func TestValidateCommandSupportsYAMLOutput(t *testing.T) {
	root := t.TempDir()
	writeFixturePlugin(t, root)

	out, err := execRoot(t, "validate", "--repo-root", root, "--output", "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v, output: %s", err, out)
	}
	if bytes.Contains([]byte(out), []byte("{")) {
		t.Fatalf("expected YAML, not JSON braces, got %s", out)
	}
}
