// Package allowlist applies time-bounded exceptions to violations. An
// exception without a valid future expires_at must never suppress
// anything, and the rejection itself becomes a visible, non-suppressible
// violation alongside the one it failed to suppress.
package allowlist

import (
	"fmt"
	"time"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

// Result is the outcome of applying a repo's allowlist to one run's violations.
type Result struct {
	Remaining  []api.Violation // violations that were not suppressed
	Suppressed []api.Violation // violations an exception legitimately suppressed
}

// Apply matches each violation against the allowlist's exceptions and
// enforces the exception policy's bounds. now is injected so callers get
// deterministic tests; production callers pass time.Now().
func Apply(violations []api.Violation, exceptions []manifest.Exception, policy manifest.ExceptionPolicy, now time.Time) Result {
	valid := make([]manifest.Exception, 0, len(exceptions))
	var policyViolations []api.Violation

	for _, exc := range exceptions {
		if ok, reason := isValidTTL(exc, now); !ok {
			policyViolations = append(policyViolations, api.NewErrorViolation(
				"exception.allowlist_invalid",
				fmt.Sprintf("exception %q for rule %q: %s", exc.ID, exc.Rule, reason),
				derefOrEmpty(exc.Path),
				map[string]any{"exception_id": exc.ID, "rule": exc.Rule},
			))
			continue
		}
		valid = append(valid, exc)
	}

	var remaining, suppressed []api.Violation
	for _, v := range violations {
		if exc, ok := matchException(v, valid); ok {
			suppressed = append(suppressed, v)
			_ = exc
			continue
		}
		remaining = append(remaining, v)
	}
	remaining = append(remaining, policyViolations...)

	if policy.MaxExceptions > 0 && len(exceptions) > policy.MaxExceptions {
		remaining = append(remaining, api.NewErrorViolation("exception.max_exceptions_exceeded",
			fmt.Sprintf("%d exceptions declared, exceeding max_exceptions=%d", len(exceptions), policy.MaxExceptions),
			"", map[string]any{"count": len(exceptions), "max": policy.MaxExceptions}))
	}

	total := len(remaining) + len(suppressed)
	if policy.MaxSuppressedRatio > 0 && total > 0 {
		ratio := float64(len(suppressed)) / float64(total)
		if ratio > policy.MaxSuppressedRatio {
			remaining = append(remaining, api.NewErrorViolation("exception.max_suppressed_ratio_exceeded",
				fmt.Sprintf("suppressed ratio %.2f exceeds max_suppressed_ratio=%.2f", ratio, policy.MaxSuppressedRatio),
				"", map[string]any{"ratio": ratio, "max": policy.MaxSuppressedRatio}))
		}
	}

	if policy.MaxExceptionWindowDays > 0 {
		for _, exc := range valid {
			expiresAt, _ := time.Parse(time.RFC3339, *exc.ExpiresAt)
			if expiresAt.Sub(now) > time.Duration(policy.MaxExceptionWindowDays)*24*time.Hour {
				remaining = append(remaining, api.NewErrorViolation("exception.window_exceeded",
					fmt.Sprintf("exception %q expires further out than max_exception_window_days=%d", exc.ID, policy.MaxExceptionWindowDays),
					"", map[string]any{"exception_id": exc.ID}))
			}
		}
	}

	return Result{Remaining: remaining, Suppressed: suppressed}
}

func isValidTTL(exc manifest.Exception, now time.Time) (bool, string) {
	if exc.ExpiresAt == nil || *exc.ExpiresAt == "" {
		return false, "missing expires_at"
	}
	expiresAt, err := time.Parse(time.RFC3339, *exc.ExpiresAt)
	if err != nil {
		return false, "expires_at is not a valid RFC3339 timestamp"
	}
	if !expiresAt.After(now) {
		return false, "expires_at is in the past"
	}
	return true, ""
}

func matchException(v api.Violation, exceptions []manifest.Exception) (manifest.Exception, bool) {
	for _, exc := range exceptions {
		if exc.Rule != v.Code {
			continue
		}
		if exc.Path != nil && *exc.Path != v.Path {
			continue
		}
		return exc, true
	}
	return manifest.Exception{}, false
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
