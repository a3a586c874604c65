/*
criteria.go - The filter criteria value object

PURPOSE:
  Criteria is the immutable input to a claim-count query. Required fields
  anchor the query to one policy version and one time window; optional
  fields narrow it. The invariant for every optional field: when absent
  (zero value), it must not restrict the result.

VALIDATION:
  NewCriteria normalizes defaults (AtFault -> any, Direction -> during)
  and rejects missing required fields, negative window durations, and
  unrecognized enum values with a CriteriaError, before any source or
  directory is consulted.

SEE ALSO:
  - predicate.go: How optional fields become identity clauses
  - resolver.go: How DriverID becomes a SubjectID
*/
package engine

// Criteria describes one claim-count query.
type Criteria struct {
	// Required.
	PolicyID          PolicyID
	PolicyVersionDate Date
	AnchorDate        Date
	WindowYears       int

	// Enumerated. Zero values normalize to AnyFault and WindowDuring.
	AtFault   AtFault
	Direction WindowDirection

	// Optional. Zero value means "no restriction".
	LocationID    LocationID
	DriverID      DriverID
	ClaimTypeCode ClaimTypeCode
	PlanCode      PlanCode
}

// NewCriteria returns a normalized copy of c, or a CriteriaError if a
// required field is missing, WindowYears is negative, or an enum field
// holds an unrecognized value.
func NewCriteria(c Criteria) (Criteria, error) {
	c = c.normalized()
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// normalized fills enum defaults. It never touches optional fields: their
// zero values are meaningful ("no restriction") and must survive as-is.
func (c Criteria) normalized() Criteria {
	if c.AtFault == "" {
		c.AtFault = AnyFault
	}
	if c.Direction == "" {
		c.Direction = WindowDuring
	}
	return c
}

// Validate checks a normalized Criteria. Pure; no side effects.
func (c Criteria) Validate() error {
	if c.PolicyID == "" {
		return &CriteriaError{Field: "policy_id", Reason: "is required"}
	}
	if c.PolicyVersionDate.IsZero() {
		return &CriteriaError{Field: "policy_version_date", Reason: "is required"}
	}
	if c.AnchorDate.IsZero() {
		return &CriteriaError{Field: "anchor_date", Reason: "is required"}
	}
	if c.WindowYears < 0 {
		return &CriteriaError{Field: "window_years", Reason: "must be non-negative"}
	}
	switch c.AtFault {
	case OnlyAtFault, OnlyNotAtFault, AnyFault:
	default:
		return &CriteriaError{Field: "at_fault", Reason: "has unrecognized value " + string(c.AtFault)}
	}
	switch c.Direction {
	case WindowDuring, WindowBefore:
	default:
		return &CriteriaError{Field: "window_direction", Reason: "has unrecognized value " + string(c.Direction)}
	}
	return nil
}
