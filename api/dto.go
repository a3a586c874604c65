/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response types returned to clients

VALIDATION:
  DTOs are pure data carriers; semantic validation happens in the engine.
  Only syntactic conversion (date parsing) happens here, and it reports
  failures in the same CriteriaError shape the engine uses.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/criteria.go: The domain-side criteria object
*/
package api

import (
	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CountClaimsRequest carries raw query criteria. Dates are YYYY-MM-DD.
// Omitted optional fields impose no restriction.
type CountClaimsRequest struct {
	PolicyID          string `json:"policy_id"`
	PolicyVersionDate string `json:"policy_version_date"`
	AnchorDate        string `json:"anchor_date"`
	WindowYears       int    `json:"window_years"`
	AtFault           string `json:"at_fault,omitempty"`
	WindowDirection   string `json:"window_direction,omitempty"`
	LocationID        string `json:"location_id,omitempty"`
	DriverID          string `json:"driver_id,omitempty"`
	ClaimTypeCode     string `json:"claim_type_code,omitempty"`
	PlanCode          string `json:"plan_code,omitempty"`
}

// CountClaimsResponse is the combined count across all sources.
type CountClaimsResponse struct {
	Count int `json:"count"`
}

// ErrorResponse is the standard error shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// toCriteria converts the wire shape into engine.Criteria. Unparseable
// dates are reported as criteria errors so handlers map them to 400
// uniformly; the engine re-validates everything else.
func (r CountClaimsRequest) toCriteria() (engine.Criteria, error) {
	c := engine.Criteria{
		PolicyID:      engine.PolicyID(r.PolicyID),
		WindowYears:   r.WindowYears,
		AtFault:       engine.AtFault(r.AtFault),
		Direction:     engine.WindowDirection(r.WindowDirection),
		LocationID:    engine.LocationID(r.LocationID),
		DriverID:      engine.DriverID(r.DriverID),
		ClaimTypeCode: engine.ClaimTypeCode(r.ClaimTypeCode),
		PlanCode:      engine.PlanCode(r.PlanCode),
	}

	var err error
	if c.PolicyVersionDate, err = parseDate("policy_version_date", r.PolicyVersionDate); err != nil {
		return engine.Criteria{}, err
	}
	if c.AnchorDate, err = parseDate("anchor_date", r.AnchorDate); err != nil {
		return engine.Criteria{}, err
	}
	return c, nil
}

func parseDate(field, value string) (engine.Date, error) {
	if value == "" {
		// Leave zero; the engine reports the missing required field.
		return engine.Date{}, nil
	}
	d, err := engine.ParseDate(value)
	if err != nil {
		return engine.Date{}, &engine.CriteriaError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return d, nil
}
