//go:build !external_packs

package packs

import "errors"

// ErrExternalPacksDisabled is returned by VendorPackArchive in the default
// build. original_source/.../packs/mod.rs gates archive vendoring behind a
// Cargo feature (external_packs) and fails closed without it; Go's build
// tags are the direct analogue, so the default build of this module never
// links code that downloads or extracts third-party archives.
var ErrExternalPacksDisabled = errors.New(
	"external_packs feature is disabled (compas-lite); rebuild with the external_packs build tag")

// VendorPackArchive extracts a pack archive into .agents/mcp/compas/packs/
// and returns its manifest plus the lock entry to upsert. The default build
// always fails closed; a build tagged with external_packs provides the real
// implementation.
func VendorPackArchive(repoRoot, source, expectedSHA256 string, archiveBytes []byte) (*PackManifestV1, *PackLockEntryV1, error) {
	return nil, nil, ErrExternalPacksDisabled
}
