/*
predicate.go - Optional-equality predicate composition

PURPOSE:
  Combines the resolved criteria into ONE reusable RecordPredicate,
  independent of storage shape. This replaces the historically duplicated
  "field = param OR param IS NULL" clauses scattered across query text:
  every call site gets the same composed predicate regardless of which
  subset of filters is populated.

COMPOSITION RULE:
  A clause list combined by logical AND. For every optional filter field
  the rule is optional-equality: an absent criterion contributes no
  clause at all, making it the identity element of the conjunction. The
  window test and the classification test are always present, as are the
  required policy-version equality clauses.

DRIVER FILTER:
  A resolved subject appends an equality clause on SubjectID. An
  UNRESOLVED driver (supplied but not found) appends a match-nothing
  clause: the deterministic policy chosen over ambiguous null-comparison
  behavior.
*/
package engine

// clause is one independent AND-term of the composed predicate.
type clause func(RecordView) bool

// optionalEq returns an equality clause for a present criterion, or nil
// for an absent one. A nil clause is simply not appended: absence is the
// neutral element, never a restriction.
func optionalEq[T comparable](criterion T, field func(RecordView) T) clause {
	var zero T
	if criterion == zero {
		return nil
	}
	return func(r RecordView) bool { return field(r) == criterion }
}

func matchNothing(RecordView) bool { return false }

// Compose assembles the final record predicate from the normalized
// criteria, the resolved driver subject (nil when no driver filter), the
// computed time window, and the classification predicate.
func Compose(c Criteria, subject *ResolvedSubject, window TimeWindow, classified ClassificationPredicate) RecordPredicate {
	clauses := []clause{
		func(r RecordView) bool { return r.PolicyID == c.PolicyID },
		func(r RecordView) bool { return r.PolicyVersionDate.Equal(c.PolicyVersionDate) },
		func(r RecordView) bool { return window.Contains(r.LossDate) },
		func(r RecordView) bool { return classified(r.ClassificationCode) },
	}

	for _, opt := range []clause{
		optionalEq(c.LocationID, func(r RecordView) LocationID { return r.LocationID }),
		optionalEq(c.ClaimTypeCode, func(r RecordView) ClaimTypeCode { return r.ClaimTypeCode }),
		optionalEq(c.PlanCode, func(r RecordView) PlanCode { return r.PlanCode }),
	} {
		if opt != nil {
			clauses = append(clauses, opt)
		}
	}

	if subject != nil {
		if !subject.Found {
			clauses = append(clauses, matchNothing)
		} else {
			clauses = append(clauses, func(r RecordView) bool { return r.SubjectID == subject.ID })
		}
	}

	return func(r RecordView) bool {
		for _, match := range clauses {
			if !match(r) {
				return false
			}
		}
		return true
	}
}
