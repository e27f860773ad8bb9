package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errValidationFailed is returned by runValidate when the run completed
// but the verdict is not a pass, so Execute exits non-zero without
// printing a duplicate error line — the rendered output already carries
// the verdict.
var errValidationFailed = errors.New("quality gate did not pass")

// renderOutput writes v to cmd's stdout as indented JSON (the default) or
// YAML, selected by the --output flag.
func renderOutput(cmd *cobra.Command, format string, v any) error {
	w := cmd.OutOrStdout()
	switch format {
	case "yaml":
		return writeYAML(w, v)
	default:
		return writeJSON(w, v)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}
