// Package manifest parses and validates the individual declarative TOML
// documents that make up a repo's compas configuration: plugin
// descriptors, the quality contract, the env var registry, and the
// allowlist. It does not merge plugins together — that is
// internal/repoconfig's job — it only knows how to turn one file's bytes
// into a validated Go value.
package manifest

import "regexp"

// IDPattern matches plugin ids, tool ids, and check ids: lowercase
// alphanumeric plus dash/underscore, 2-64 chars, not leading with a
// separator.
var IDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

// CommandLikePattern matches an allowlisted command basename.
var CommandLikePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._+\-]{0,63}$`)

// PackIDPattern allows namespaced pack ids like "org/custom".
var PackIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}(?:/[a-z0-9][a-z0-9_-]{1,63})*$`)

// IsValidID reports whether id matches the shared plugin/tool/check id shape.
func IsValidID(id string) bool {
	return IDPattern.MatchString(id)
}
