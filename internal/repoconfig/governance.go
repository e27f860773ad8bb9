package repoconfig

import (
	"fmt"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// DetectMandatoryCheckRemoval reports, as an observation-tier violation per
// plugin-config.RepoConfig merged checks, any governance.mandatory_checks
// kind the merged configuration no longer carries. Observation tier
// because — like quality-delta findings — it only blocks the decision
// under ratchet/strict mode (internal/verdict composes that escalation);
// see DESIGN.md, Open Question resolutions item 2, for the reasoning.
func DetectMandatoryCheckRemoval(checks manifest.ChecksConfig, mandatoryChecks []string) []api.Violation {
	var out []api.Violation
	for _, kind := range mandatoryChecks {
		if !checks.HasKind(kind) {
			out = append(out, api.NewObservationViolation("config.mandatory_check_removed",
				fmt.Sprintf("mandatory check kind %q is no longer configured by any plugin", kind),
				"", map[string]any{"kind": kind}))
		}
	}
	return out
}
