// Package builtin embeds the ten language packs shipped with the engine,
// grounded on original_source/.../packs/builtin.rs's include_str! table.
// Go's build-time file embedding (go:embed) is the direct analogue of
// Rust's include_str!, so this package keeps the same "load every
// embedded pack.toml into a map, fail on a duplicate id" shape.
package builtin

import (
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/compasdx/gate/internal/packs"
)

//go:embed */pack.toml
var packFS embed.FS

// DuplicateBuiltinIDError reports two embedded pack.toml files declaring
// the same [pack].id — a packaging bug, not a user-facing config error.
type DuplicateBuiltinIDError struct {
	ID string
}

func (e *DuplicateBuiltinIDError) Error() string {
	return fmt.Sprintf("builtin pack id %q is declared by more than one embedded manifest", e.ID)
}

// Load parses every embedded pack.toml and returns them keyed by pack id,
// in the same manner as original_source's load_builtin_pack_manifests.
func Load() (map[string]packs.PackManifestV1, error) {
	entries, err := packFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make(map[string]packs.PackManifestV1, len(names))
	for _, name := range names {
		data, err := packFS.ReadFile(path.Join(name, "pack.toml"))
		if err != nil {
			return nil, err
		}
		m, err := packs.LoadPackManifest(data)
		if err != nil {
			return nil, fmt.Errorf("builtin pack %s: %w", name, err)
		}
		if _, exists := out[m.Pack.ID]; exists {
			return nil, &DuplicateBuiltinIDError{ID: m.Pack.ID}
		}
		out[m.Pack.ID] = *m
	}
	return out, nil
}

// IDs returns every builtin pack id in sorted order, for CLI listing and tests.
func IDs() ([]string, error) {
	manifests, err := Load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(manifests))
	for id := range manifests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
