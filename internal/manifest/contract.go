package manifest

// ImpactUnmappedPathPolicy controls how a diff-impact path with no owning
// check is treated. The core only parses and exposes this value — its
// consumer lives outside the engine.
type ImpactUnmappedPathPolicy string

const (
	UnmappedBlock   ImpactUnmappedPathPolicy = "block"
	UnmappedIgnore  ImpactUnmappedPathPolicy = "ignore"
	UnmappedObserve ImpactUnmappedPathPolicy = "observe"
)

// QualityThresholds are the regression gates QualityDelta evaluates.
type QualityThresholds struct {
	MinTrustScore            int     `toml:"min_trust_score" json:"min_trust_score"`
	MinCoveragePercent       float64 `toml:"min_coverage_percent" json:"min_coverage_percent"`
	AllowTrustDrop           bool    `toml:"allow_trust_drop" json:"allow_trust_drop"`
	AllowCoverageDrop        bool    `toml:"allow_coverage_drop" json:"allow_coverage_drop"`
	MaxWeightedRiskIncrease  float64 `toml:"max_weighted_risk_increase" json:"max_weighted_risk_increase"`
}

// defaultMinCoveragePercent lets TOML omission fall back to the documented
// 60.0 default instead of zero; go-toml/v2 leaves the field at its Go
// zero value when the key is absent, so callers must call
// WithDefaults after decoding.
const defaultMinCoveragePercent = 60.0

// ExceptionPolicy bounds how many allowlist exceptions a repo may carry.
type ExceptionPolicy struct {
	MaxExceptions          int     `toml:"max_exceptions" json:"max_exceptions"`
	MaxSuppressedRatio     float64 `toml:"max_suppressed_ratio" json:"max_suppressed_ratio"`
	MaxExceptionWindowDays int     `toml:"max_exception_window_days" json:"max_exception_window_days"`
}

// GovernancePolicy names checks and failure modes a repo must carry, plus
// the expected config hash for weakening detection.
type GovernancePolicy struct {
	MandatoryChecks       []string `toml:"mandatory_checks" json:"mandatory_checks"`
	MandatoryFailureModes []string `toml:"mandatory_failure_modes" json:"mandatory_failure_modes"`
	MinFailureModes       int      `toml:"min_failure_modes" json:"min_failure_modes"`
	ConfigHash            *string  `toml:"config_hash" json:"config_hash,omitempty"`
}

// BaselinePolicy points at the quality snapshot and bounds scope narrowing.
type BaselinePolicy struct {
	SnapshotPath       string  `toml:"snapshot_path" json:"snapshot_path"`
	MaxScopeNarrowing  float64 `toml:"max_scope_narrowing" json:"max_scope_narrowing"`
}

// ImpactPolicy configures diff-impact mapping (parsed, not interpreted here).
type ImpactPolicy struct {
	DiffBase             string                    `toml:"diff_base" json:"diff_base"`
	UnmappedPathPolicy   ImpactUnmappedPathPolicy  `toml:"unmapped_path_policy" json:"unmapped_path_policy"`
}

// ReceiptDefaults are the repo-wide fallback receipt requirements a tool
// can omit its own receipt_contract and still inherit.
type ReceiptDefaults struct {
	MinDurationMS  *int `toml:"min_duration_ms" json:"min_duration_ms,omitempty"`
	MinStdoutBytes *int `toml:"min_stdout_bytes" json:"min_stdout_bytes,omitempty"`
}

// QualityContract is the decoded shape of quality_contract.toml.
type QualityContract struct {
	Quality         QualityThresholds `toml:"quality" json:"quality"`
	Exceptions      ExceptionPolicy   `toml:"exceptions" json:"exceptions"`
	Governance      GovernancePolicy  `toml:"governance" json:"governance"`
	Baseline        BaselinePolicy    `toml:"baseline" json:"baseline"`
	Impact          ImpactPolicy      `toml:"impact" json:"impact"`
	ReceiptDefaults ReceiptDefaults   `toml:"receipt_defaults" json:"receipt_defaults"`
}

// WithDefaults fills in documented defaults for fields TOML omission would
// otherwise leave at the Go zero value.
func (c QualityContract) WithDefaults() QualityContract {
	if c.Quality.MinCoveragePercent == 0 {
		c.Quality.MinCoveragePercent = defaultMinCoveragePercent
	}
	return c
}

// LoadQualityContract decodes and defaults a quality_contract.toml document.
func LoadQualityContract(data []byte) (*QualityContract, error) {
	var c QualityContract
	if err := DecodeStrict(data, &c); err != nil {
		return nil, err
	}
	c = c.WithDefaults()
	return &c, nil
}

// DefaultQualityContract is used when a repo carries no quality_contract.toml.
func DefaultQualityContract() QualityContract {
	return QualityContract{
		Quality: QualityThresholds{
			MinTrustScore:      60,
			MinCoveragePercent: defaultMinCoveragePercent,
		},
		Exceptions: ExceptionPolicy{
			MaxExceptions:          10,
			MaxSuppressedRatio:     0.3,
			MaxExceptionWindowDays: 90,
		},
		Governance: GovernancePolicy{
			MinFailureModes: 1,
		},
		Baseline: BaselinePolicy{
			SnapshotPath:      ".agents/mcp/compas/baselines/quality_snapshot.json",
			MaxScopeNarrowing: 0.10,
		},
	}
}
