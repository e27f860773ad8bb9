package allowlist

import (
	"testing"
	"time"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
)

func str(s string) *string { return &s }

func TestApplyMissingExpiresAtKeepsOriginalVisible(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	violations := []api.Violation{
		api.NewErrorViolation("loc.max_exceeded", "file exceeds max_loc", "src/main.rs", nil),
	}
	exceptions := []manifest.Exception{
		{ID: "exc-1", Rule: "loc.max_exceeded", Owner: "alice", Reason: "temporary"},
	}

	result := Apply(violations, exceptions, manifest.ExceptionPolicy{}, now)

	if len(result.Suppressed) != 0 {
		t.Fatalf("expected nothing suppressed, got %+v", result.Suppressed)
	}
	var sawOriginal, sawInvalid bool
	for _, v := range result.Remaining {
		if v.Code == "loc.max_exceeded" {
			sawOriginal = true
		}
		if v.Code == "exception.allowlist_invalid" {
			sawInvalid = true
		}
	}
	if !sawOriginal || !sawInvalid {
		t.Fatalf("expected both loc.max_exceeded and exception.allowlist_invalid, got %+v", result.Remaining)
	}
}

func TestApplyValidExceptionSuppresses(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	violations := []api.Violation{
		api.NewObservationViolation("duplicates.found", "duplicate group", "src/a.rs", nil),
	}
	exceptions := []manifest.Exception{
		{ID: "exc-1", Rule: "duplicates.found", Path: str("src/a.rs"), Owner: "alice", Reason: "known", ExpiresAt: str("2099-01-01T00:00:00Z")},
	}

	result := Apply(violations, exceptions, manifest.ExceptionPolicy{}, now)
	if len(result.Suppressed) != 1 || len(result.Remaining) != 0 {
		t.Fatalf("expected suppression, got remaining=%+v suppressed=%+v", result.Remaining, result.Suppressed)
	}
}

func TestApplyExpiredExceptionDoesNotSuppress(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	violations := []api.Violation{
		api.NewObservationViolation("duplicates.found", "duplicate group", "src/a.rs", nil),
	}
	exceptions := []manifest.Exception{
		{ID: "exc-1", Rule: "duplicates.found", Owner: "alice", Reason: "known", ExpiresAt: str("2020-01-01T00:00:00Z")},
	}

	result := Apply(violations, exceptions, manifest.ExceptionPolicy{}, now)
	if len(result.Suppressed) != 0 {
		t.Fatalf("expected no suppression for expired exception, got %+v", result.Suppressed)
	}
}

func TestApplyMaxExceptionsExceeded(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	exceptions := []manifest.Exception{
		{ID: "exc-1", Rule: "loc.max_exceeded", Owner: "a", Reason: "r", ExpiresAt: str("2099-01-01T00:00:00Z")},
		{ID: "exc-2", Rule: "surface.max_exceeded", Owner: "a", Reason: "r", ExpiresAt: str("2099-01-01T00:00:00Z")},
	}
	policy := manifest.ExceptionPolicy{MaxExceptions: 1}

	result := Apply(nil, exceptions, policy, now)
	found := false
	for _, v := range result.Remaining {
		if v.Code == "exception.max_exceptions_exceeded" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected max_exceptions_exceeded, got %+v", result.Remaining)
	}
}
