package manifest

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// DecodeStrict decodes TOML bytes into v, rejecting any key the target
// struct does not declare. Every manifest document in this module is
// decoded this way: unknown keys anywhere must be rejected rather than
// silently ignored.
func DecodeStrict(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode toml: %w", err)
	}
	return nil
}
