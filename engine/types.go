/*
Package engine provides the core claim-count query engine.

PURPOSE:
  This package contains the types and algorithms for counting insurance
  claims that match a variable set of optional filter criteria, a relative
  time window, and a ternary at-fault classification. The same composed
  predicate serves every call site regardless of which subset of filters
  is populated, replacing ad hoc per-field null checks.

KEY CONCEPTS IN THIS FILE (types.go):
  - Typed identifiers: PolicyID, SubjectID, DriverID, etc.
  - RecordView: the source-neutral shape a claim record is tested against
  - AtFault / WindowDirection: the two enumerated criteria fields
  - Config: process-wide classification constants, injected at construction

DESIGN PRINCIPLES:
  1. Immutability: Criteria and TimeWindow are value objects, built once
     per query and never mutated
  2. Type Safety: Strong typing for IDs prevents mixing a caller-facing
     driver reference with the canonical subject identifier
  3. Optional-equality: an omitted filter is the identity element of the
     conjunction, never a restriction

SEE ALSO:
  - criteria.go: Criteria validation and normalization
  - predicate.go: Predicate composition
  - aggregate.go: Multi-source counting
*/
package engine

// =============================================================================
// IDENTIFIERS
// =============================================================================

type PolicyID string

// SubjectID is the canonical subject identifier used by predicates.
// Callers never supply one directly; a DriverID resolves to it.
type SubjectID string

// DriverID is the caller-facing driver reference. It is distinct from
// SubjectID and must be resolved through a SubjectDirectory before any
// record comparison.
type DriverID string

type LocationID string
type ClaimTypeCode string
type PlanCode string

// =============================================================================
// ENUMERATED CRITERIA FIELDS
// =============================================================================

// AtFault selects which classification of claims to count.
type AtFault string

const (
	OnlyAtFault    AtFault = "only_at_fault"     // classification == chargeable
	OnlyNotAtFault AtFault = "only_not_at_fault" // classification != chargeable
	AnyFault       AtFault = "any"               // no classification restriction
)

// WindowDirection selects which side of the window boundary to count.
type WindowDirection string

const (
	WindowDuring WindowDirection = "during" // lossDate >= boundary
	WindowBefore WindowDirection = "before" // lossDate < boundary
)

// =============================================================================
// RECORD VIEW - Source-neutral shape tested by the composed predicate
// =============================================================================

// RecordView is the normalized projection of a claim record. Each source
// adapter maps its native row shape onto this view; the non-GIS source
// fills SubjectID through its party join.
type RecordView struct {
	PolicyID           PolicyID
	PolicyVersionDate  Date
	SubjectID          SubjectID
	LocationID         LocationID
	ClassificationCode int
	ClaimTypeCode      ClaimTypeCode
	PlanCode           PlanCode
	LossDate           Date
}

// RecordPredicate is the composed "matches" test. One predicate is built
// per query and evaluated against every candidate record from every source.
type RecordPredicate func(RecordView) bool

// =============================================================================
// CONFIG - Process-wide classification constants
// =============================================================================

// Config carries the classification constants shared by every query.
// These are deployment-wide values, injected once at engine construction
// rather than hard-coded in predicate logic.
type Config struct {
	// ChargeableCode is the classification code denoting an at-fault claim.
	ChargeableCode int

	// ApplicationOverridden and ApplicationAutomatic are the two
	// classification-application flags a claim must carry to be counted.
	// Claims with any other flag are excluded by every source adapter.
	ApplicationOverridden string
	ApplicationAutomatic  string
}

// DefaultConfig returns the standard production constants.
func DefaultConfig() Config {
	return Config{
		ChargeableCode:        100,
		ApplicationOverridden: "O",
		ApplicationAutomatic:  "A",
	}
}

// CountedApplication reports whether a classification-application flag is
// one of the two counted values.
func (c Config) CountedApplication(flag string) bool {
	return flag == c.ApplicationOverridden || flag == c.ApplicationAutomatic
}
