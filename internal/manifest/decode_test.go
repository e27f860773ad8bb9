package manifest

import "testing"

func TestDecodeStrictRejectsUnknownField(t *testing.T) {
	var reg EnvRegistry
	err := DecodeStrict([]byte(`
[[vars]]
name = "FOO"
unknown_field = true
`), &reg)
	if err == nil {
		t.Fatal("expected an unknown field to be rejected")
	}
}

func TestDecodeStrictAcceptsKnownFields(t *testing.T) {
	var reg EnvRegistry
	err := DecodeStrict([]byte(`
[[vars]]
name = "FOO"
required = true
`), &reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Vars) != 1 || reg.Vars[0].Name != "FOO" || !reg.Vars[0].Required {
		t.Fatalf("unexpected decode result: %+v", reg)
	}
}
