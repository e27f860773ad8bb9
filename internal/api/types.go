// Package api holds the wire types shared across the validation pipeline:
// violations, findings, risk summaries, and the final verdict. These are
// the types that cross component boundaries, so they carry json tags for
// schema v3 serialization.
package api

// ViolationTier classifies whether a violation counts toward blocking.
type ViolationTier string

const (
	TierError       ViolationTier = "error"
	TierObservation ViolationTier = "observation"
)

// Violation is a single rule hit produced by a check or a loader step.
type Violation struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Tier    ViolationTier  `json:"tier"`
}

// NewErrorViolation builds an error-tier violation.
func NewErrorViolation(code, message, path string, details map[string]any) Violation {
	return Violation{Code: code, Message: message, Path: path, Details: details, Tier: TierError}
}

// NewObservationViolation builds an observation-tier violation.
func NewObservationViolation(code, message, path string, details map[string]any) Violation {
	return Violation{Code: code, Message: message, Path: path, Details: details, Tier: TierObservation}
}

// Severity is the aggregated finding severity, derived from a violation
// code rather than carried on the violation itself.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// FindingV2 is the aggregated view of a violation with resolved severity.
type FindingV2 struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Path     string         `json:"path,omitempty"`
	Severity Severity       `json:"severity"`
	Details  map[string]any `json:"details,omitempty"`
}

// RiskSummary tallies findings by severity and a single weighted total.
type RiskSummary struct {
	BySeverity   map[Severity]int `json:"by_severity"`
	WeightedTotal float64         `json:"weighted_total"`
}

// TrustScore is the 0-100 display score derived from the risk summary.
type TrustScore struct {
	Score float64 `json:"score"`
}

// DecisionStatus is the final pass/block/retry verdict.
type DecisionStatus string

const (
	DecisionPass      DecisionStatus = "pass"
	DecisionBlocked   DecisionStatus = "blocked"
	DecisionRetryable DecisionStatus = "retryable"
)

// Decision wraps the status so the wire shape matches verdict.decision.status.
type Decision struct {
	Status DecisionStatus `json:"status"`
}

// Verdict is the top-level decision envelope.
type Verdict struct {
	Decision Decision `json:"decision"`
}

// Mode selects the enforcement posture for a validation run.
type Mode string

const (
	ModeWarn   Mode = "warn"
	ModeRatchet Mode = "ratchet"
	ModeStrict Mode = "strict"
)

// EffectiveConfigSource records where an env registry entry's effective
// value came from, for display purposes.
type EffectiveConfigSource string

const (
	SourceUnset   EffectiveConfigSource = "unset"
	SourceDefault EffectiveConfigSource = "default"
	SourceTool    EffectiveConfigSource = "tool"
)

// ValidateOutput is the schema-v3 structured result of a validate() call.
type ValidateOutput struct {
	SchemaVersion string         `json:"schema_version"`
	OK            bool           `json:"ok"`
	Violations    []Violation    `json:"violations"`
	Suppressed    []Violation    `json:"suppressed"`
	FindingsV2    []FindingV2    `json:"findings_v2"`
	RiskSummary   *RiskSummary   `json:"risk_summary,omitempty"`
	TrustScore    *TrustScore    `json:"trust_score,omitempty"`
	Verdict       *Verdict       `json:"verdict,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// ProjectToolSpec is the public, owner-resolved view of a tool.
type ProjectToolSpec struct {
	ID             string            `json:"id"`
	PluginID       string            `json:"plugin_id"`
	Description    string            `json:"description"`
	Command        string            `json:"command"`
	Args           []string          `json:"args"`
	Cwd            string            `json:"cwd,omitempty"`
	TimeoutMS      int               `json:"timeout_ms"`
	MaxStdoutBytes int               `json:"max_stdout_bytes"`
	MaxStderrBytes int               `json:"max_stderr_bytes"`
}

// PluginInfo is a summary view of a plugin (id, description, tool ids).
type PluginInfo struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

// PluginSpec is the full public view of a plugin with resolved tool specs.
type PluginSpec struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Tools       []ProjectToolSpec `json:"tools"`
	GateCIFast  []string          `json:"gate_ci_fast"`
	GateCI      []string          `json:"gate_ci"`
	GateFlagship []string         `json:"gate_flagship"`
}

// SeverityWeights is the published per-severity weight used to compute
// TrustScore from a RiskSummary. This table is folded into RepoConfig's
// config hash (internal/repoconfig.ComputeConfigHash) so that silently
// reweighting severities to inflate trust scores is detectable as
// config.threshold_weakened, the same anti-gaming guarantee
// governance.config_hash gives the rest of the merged configuration.
var SeverityWeights = map[Severity]float64{
	SeverityCritical: 20,
	SeverityHigh:      10,
	SeverityMedium:    5,
	SeverityLow:       2,
	SeverityInfo:      0,
}

// CanonicalToolID is one of the five canonical roles a pack can wire.
type CanonicalToolID string

const (
	CanonicalBuild CanonicalToolID = "build"
	CanonicalTest  CanonicalToolID = "test"
	CanonicalLint  CanonicalToolID = "lint"
	CanonicalFmt   CanonicalToolID = "fmt"
	CanonicalDocs  CanonicalToolID = "docs"
)

// CanonicalToolsConfig maps canonical roles to wired tool ids, with an
// explicit disabled list for roles a pack deliberately does not wire.
type CanonicalToolsConfig struct {
	Build    []string          `toml:"build" json:"build,omitempty"`
	Test     []string          `toml:"test" json:"test,omitempty"`
	Lint     []string          `toml:"lint" json:"lint,omitempty"`
	Fmt      []string          `toml:"fmt" json:"fmt,omitempty"`
	Docs     []string          `toml:"docs" json:"docs,omitempty"`
	Disabled []CanonicalToolID `toml:"disabled" json:"disabled,omitempty"`
}
