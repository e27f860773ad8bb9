package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRenderOutputWritesIndentedJSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := renderOutput(cmd, "", map[string]int{"a": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\"a\": 1") {
		t.Fatalf("expected indented JSON, got %q", out)
	}
}

func TestRenderOutputWritesYAMLWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := renderOutput(cmd, "yaml", map[string]int{"a": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "a: 1") {
		t.Fatalf("expected YAML output, got %q", buf.String())
	}
}
