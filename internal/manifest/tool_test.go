package manifest

import "testing"

func TestProjectToolEffectiveDefaultsApplyWhenUnset(t *testing.T) {
	tool := ProjectTool{ID: "build", Command: "go"}
	if tool.EffectiveTimeoutMS() != DefaultTimeoutMS {
		t.Errorf("expected default timeout, got %d", tool.EffectiveTimeoutMS())
	}
	if tool.EffectiveMaxStdoutBytes() != DefaultMaxStdoutBytes {
		t.Errorf("expected default max stdout bytes, got %d", tool.EffectiveMaxStdoutBytes())
	}
	if tool.EffectiveMaxStderrBytes() != DefaultMaxStderrBytes {
		t.Errorf("expected default max stderr bytes, got %d", tool.EffectiveMaxStderrBytes())
	}
}

func TestProjectToolEffectiveDefaultsRespectOverrides(t *testing.T) {
	timeout := 1000
	tool := ProjectTool{ID: "build", Command: "go", TimeoutMS: &timeout}
	if tool.EffectiveTimeoutMS() != 1000 {
		t.Errorf("expected overridden timeout, got %d", tool.EffectiveTimeoutMS())
	}
}

func TestTrimmedDescriptionStripsWhitespace(t *testing.T) {
	tool := ProjectTool{Description: "  builds the project  "}
	if tool.TrimmedDescription() != "builds the project" {
		t.Errorf("unexpected trimmed description: %q", tool.TrimmedDescription())
	}
}

func TestCommandBasenameStripsPathAndLowercases(t *testing.T) {
	cases := map[string]string{
		"/usr/bin/Go":     "go",
		`C:\tools\Cargo`:  "cargo",
		"python3":         "python3",
		"  npm  ":         "npm",
	}
	for in, want := range cases {
		if got := CommandBasename(in); got != want {
			t.Errorf("CommandBasename(%q) = %q, want %q", in, got, want)
		}
	}
}
