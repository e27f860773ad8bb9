package manifest

import "testing"

func TestIsValidIDAcceptsLowercaseAlphanumericWithSeparators(t *testing.T) {
	for _, id := range []string{"ab", "core-build", "lint_pack", "a1-b2_c3"} {
		if !IsValidID(id) {
			t.Errorf("expected %q to be a valid id", id)
		}
	}
}

func TestIsValidIDRejectsInvalidShapes(t *testing.T) {
	for _, id := range []string{"", "a", "-leading-dash", "Upper", "has space"} {
		if IsValidID(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}

func TestPackIDPatternAllowsNamespacedIDs(t *testing.T) {
	if !PackIDPattern.MatchString("org/custom-pack") {
		t.Error("expected a namespaced pack id to match")
	}
	if !PackIDPattern.MatchString("go") {
		t.Error("expected an unnamespaced pack id to match")
	}
	if PackIDPattern.MatchString("Org/Custom") {
		t.Error("expected an uppercase namespaced id to be rejected")
	}
}

func TestCommandLikePatternAcceptsCommonBasenames(t *testing.T) {
	for _, cmd := range []string{"go", "cargo-nextest", "python3", "g++"} {
		if !CommandLikePattern.MatchString(cmd) {
			t.Errorf("expected %q to match CommandLikePattern", cmd)
		}
	}
	if CommandLikePattern.MatchString("../etc/passwd") {
		t.Error("expected a path-like string to be rejected")
	}
}
