/*
errors.go - Centralized error types for the claim-count engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers classify failures with errors.Is against the sentinels.

ERROR CATEGORIES:
  1. Criteria errors - invalid caller input, rejected before any source
     is consulted
  2. Lookup errors - the subject directory collaborator is unavailable
     (distinct from "driver not found", which is a normal empty result)
  3. Source errors - a claim source collaborator failed; the whole
     invocation aborts rather than returning a partial count

USAGE:
  count, err := eng.CountClaims(ctx, criteria)
  if engine.IsClientError(err) {
      // 400-class: bad criteria
  }

SEE ALSO:
  - criteria.go: Produces CriteriaError
  - resolver.go: Produces LookupError
  - aggregate.go: Produces SourceError
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidCriteria is returned when caller input fails validation:
	// a required field is missing, the window duration is negative, or an
	// enum field holds an unrecognized value.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrLookupUnavailable is returned when the subject directory itself
	// fails. "Driver not found" is NOT this error; it is a normal outcome.
	ErrLookupUnavailable = errors.New("subject lookup unavailable")

	// ErrSourceUnavailable is returned when either claim source fails.
	// No partial or degraded count is ever returned in its place.
	ErrSourceUnavailable = errors.New("claim source unavailable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CriteriaError identifies which criteria field was rejected and why.
type CriteriaError struct {
	Field  string
	Reason string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid criteria: %s %s", e.Field, e.Reason)
}

func (e *CriteriaError) Unwrap() error {
	return ErrInvalidCriteria
}

// LookupError wraps a subject directory failure.
type LookupError struct {
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("subject lookup failed: %v", e.Err)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupUnavailable
}

// SourceError wraps a claim source failure with the source's name.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q failed: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidCriteria)
}

// IsUnavailable returns true if a collaborator failed and the invocation
// was aborted. Retrying may succeed; the engine itself never retries.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrLookupUnavailable) ||
		errors.Is(err, ErrSourceUnavailable)
}
