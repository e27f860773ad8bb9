// Package quality holds the repository posture snapshot (the signed
// baseline) and the delta computation that compares two snapshots to
// detect anti-gaming regressions: a read-modify-write JSON baseline and
// a compare-two-points-emit-typed-deltas structure.
package quality

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileUniverse records, for each scope a check can narrow, how much of the
// theoretical universe was actually scanned this run. QualityDelta uses
// the scanned/universe ratio to catch scope narrowing.
type FileUniverse struct {
	LOCUniverse         int `json:"loc_universe"`
	LOCScanned          int `json:"loc_scanned"`
	SurfaceUniverse     int `json:"surface_universe"`
	SurfaceScanned      int `json:"surface_scanned"`
	BoundaryUniverse    int `json:"boundary_universe"`
	BoundaryScanned     int `json:"boundary_scanned"`
	DuplicatesUniverse  int `json:"duplicates_universe"`
	DuplicatesScanned   int `json:"duplicates_scanned"`
}

// Snapshot is the signed posture recorded by a write-baseline run and
// compared against on every later run.
type Snapshot struct {
	Version          int            `json:"version"`
	TrustScore       float64        `json:"trust_score"`
	CoverageCovered  float64        `json:"coverage_covered"`
	CoverageTotal    float64        `json:"coverage_total"`
	WeightedRisk     float64        `json:"weighted_risk"`
	FindingsTotal    int            `json:"findings_total"`
	RiskBySeverity   map[string]int `json:"risk_by_severity"`
	LOCPerFile       map[string]int `json:"loc_per_file"`
	SurfaceItems     []string       `json:"surface_items"`
	DuplicateGroups  int            `json:"duplicate_groups"`
	FileUniverse     FileUniverse   `json:"file_universe"`
	WrittenAt        string         `json:"written_at"`
	WrittenBy        string         `json:"written_by,omitempty"`
	ConfigHash       string         `json:"config_hash"`
}

// NewSnapshot stamps a freshly computed posture with the current time and
// the config hash it was measured against.
func NewSnapshot(configHash, writtenBy string) Snapshot {
	return Snapshot{
		Version:        1,
		RiskBySeverity: map[string]int{},
		LOCPerFile:     map[string]int{},
		WrittenAt:      time.Now().UTC().Format(time.RFC3339),
		WrittenBy:      writtenBy,
		ConfigHash:     configHash,
	}
}

// Save writes snap to path as indented, stably-keyed JSON, via a
// write-to-temp-then-rename so a crash mid-write never leaves a partial
// baseline.
func Save(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("quality: create baseline dir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("quality: marshal snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("quality: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("quality: commit snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot at path, or ErrSnapshotMissing if absent.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("quality: read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("quality: parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// CoverageRatio returns covered/total, or 1.0 when total is zero (no
// coverage data collected means nothing to regress against).
func (s Snapshot) CoverageRatio() float64 {
	if s.CoverageTotal == 0 {
		return 1.0
	}
	return s.CoverageCovered / s.CoverageTotal
}

func (u FileUniverse) locRatio() float64        { return ratio(u.LOCScanned, u.LOCUniverse) }
func (u FileUniverse) surfaceRatio() float64    { return ratio(u.SurfaceScanned, u.SurfaceUniverse) }
func (u FileUniverse) boundaryRatio() float64   { return ratio(u.BoundaryScanned, u.BoundaryUniverse) }
func (u FileUniverse) duplicatesRatio() float64 { return ratio(u.DuplicatesScanned, u.DuplicatesUniverse) }

func ratio(scanned, universe int) float64 {
	if universe == 0 {
		return 1.0
	}
	return float64(scanned) / float64(universe)
}
