//go:build external_packs

package packs

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// VendorPackArchive extracts a gzipped tar archive (pack.toml at its root)
// into .agents/mcp/compas/packs/<id>/, verifying archiveBytes against
// expectedSHA256 before touching disk. Only linked when the module is built
// with the external_packs tag; the default build uses the stub in
// external.go and never reaches this code.
func VendorPackArchive(repoRoot, source, expectedSHA256 string, archiveBytes []byte) (*PackManifestV1, *PackLockEntryV1, error) {
	sum := sha256.Sum256(archiveBytes)
	got := hex.EncodeToString(sum[:])
	if !strings.EqualFold(got, expectedSHA256) {
		return nil, nil, fmt.Errorf("pack archive sha256 mismatch: want %s, got %s", expectedSHA256, got)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archiveBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("pack archive is not gzip-compressed: %w", err)
	}
	defer gz.Close()

	var manifestData []byte
	files := map[string][]byte{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading pack archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name := filepath.Clean(hdr.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return nil, nil, fmt.Errorf("pack archive entry %q escapes the extraction root", hdr.Name)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, fmt.Errorf("reading pack archive entry %q: %w", hdr.Name, err)
		}
		files[name] = data
		if name == "pack.toml" {
			manifestData = data
		}
	}
	if manifestData == nil {
		return nil, nil, fmt.Errorf("pack archive does not contain a root pack.toml")
	}

	m, err := LoadPackManifest(manifestData)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing vendored pack.toml: %w", err)
	}

	destDir := filepath.Join(repoRoot, PacksDir, m.Pack.ID)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, nil, err
	}
	for name, data := range files {
		destPath := filepath.Join(destDir, name)
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return nil, nil, err
		}
		if err := os.WriteFile(destPath, data, 0o644); err != nil {
			return nil, nil, err
		}
	}

	entry := &PackLockEntryV1{
		ID:           m.Pack.ID,
		Source:       source,
		SHA256:       got,
		ResolvedPath: filepath.Join(PacksDir, m.Pack.ID),
		Version:      m.Pack.Version,
	}
	return m, entry, nil
}
