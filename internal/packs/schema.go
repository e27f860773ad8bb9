// Package packs implements the data-only language pack schema and its
// validator. Packs describe a language or toolchain's detectors, tool
// templates, canonical-tool wiring, and gate membership; the packs
// themselves never execute code, only the schema and its validation
// rules live here.
package packs

import (
	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// PackMetaV1 is the required [pack] table of a pack.toml.
type PackMetaV1 struct {
	ID          string   `toml:"id" json:"id"`
	Version     string   `toml:"version" json:"version"`
	Description string   `toml:"description" json:"description"`
	Languages   []string `toml:"languages" json:"languages,omitempty"`
}

// PackDetectorV1 is a file-presence rule identifying whether a pack applies.
type PackDetectorV1 struct {
	ID        string   `toml:"id" json:"id"`
	AnyPaths  []string `toml:"any_paths" json:"any_paths,omitempty"`
	AllPaths  []string `toml:"all_paths" json:"all_paths,omitempty"`
	NonePaths []string `toml:"none_paths" json:"none_paths,omitempty"`
}

// PackToolTemplateV1 is a tool declaration a pack contributes, in the same
// shape as a plugin's own [[tools]] entries.
type PackToolTemplateV1 struct {
	Tool manifest.ProjectTool `toml:"tool" json:"tool"`
}

// PackGatesV1 lists the canonical tool ids a pack wires into each gate tier.
type PackGatesV1 struct {
	CIFast   []string `toml:"ci_fast" json:"ci_fast,omitempty"`
	CI       []string `toml:"ci" json:"ci,omitempty"`
	Flagship []string `toml:"flagship" json:"flagship,omitempty"`
}

// PackManifestV1 is the full decoded shape of one pack.toml document.
type PackManifestV1 struct {
	Pack           PackMetaV1                    `toml:"pack" json:"pack"`
	Detectors      []PackDetectorV1              `toml:"detectors" json:"detectors,omitempty"`
	Tools          []PackToolTemplateV1          `toml:"tools" json:"tools,omitempty"`
	CanonicalTools *api.CanonicalToolsConfig     `toml:"canonical_tools" json:"canonical_tools,omitempty"`
	Gates          *PackGatesV1                  `toml:"gates" json:"gates,omitempty"`
	ChecksV2       manifest.ChecksConfig         `toml:"checks_v2" json:"checks_v2,omitempty"`
}

// LoadPackManifest decodes and strictly validates one pack.toml's bytes.
func LoadPackManifest(data []byte) (*PackManifestV1, error) {
	var m PackManifestV1
	if err := manifest.DecodeStrict(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// PackLockEntryV1 is one packs.lock entry recording how a pack was resolved.
type PackLockEntryV1 struct {
	ID           string `toml:"id" json:"id"`
	Source       string `toml:"source" json:"source"`
	SHA256       string `toml:"sha256" json:"sha256,omitempty"`
	ResolvedPath string `toml:"resolved_path" json:"resolved_path,omitempty"`
	Version      string `toml:"version" json:"version"`
}

// PacksLockV1 is the decoded shape of packs.lock.
type PacksLockV1 struct {
	Version int               `toml:"version" json:"version"`
	Packs   []PackLockEntryV1 `toml:"packs" json:"packs"`
}

// LoadPacksLock decodes and strictly validates packs.lock's bytes.
func LoadPacksLock(data []byte) (*PacksLockV1, error) {
	var l PacksLockV1
	if err := manifest.DecodeStrict(data, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// BuiltinSource is the packs.lock source value meaning "shipped with the
// engine", the only source exempt from the sha256 requirement.
const BuiltinSource = "builtin"
