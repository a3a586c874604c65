/*
resolver.go - Dependent-parameter resolution for the driver filter

PURPOSE:
  A caller filters by DriverID, but records carry the canonical SubjectID.
  The resolver turns one into the other through the SubjectDirectory
  collaborator before any predicate is composed.

SHORT-CIRCUIT:
  When no driver filter is present, resolution returns nil without
  consulting the directory at all.

NOT-FOUND POLICY:
  "Driver not found" is a normal outcome, not an error. The resolved
  marker records it, and the composed predicate turns it into a
  match-nothing clause: a filter on an unknown driver counts zero claims,
  never all of them.
*/
package engine

import "context"

// SubjectKey identifies one driver on one policy version.
type SubjectKey struct {
	PolicyID          PolicyID
	PolicyVersionDate Date
	DriverID          DriverID
}

// SubjectDirectory is the read-only lookup collaborator mapping a driver
// reference to its canonical subject identifier.
type SubjectDirectory interface {
	// Lookup returns (id, true, nil) when the driver resolves,
	// ("", false, nil) when it does not, and a non-nil error only when
	// the directory itself is unavailable.
	Lookup(ctx context.Context, key SubjectKey) (SubjectID, bool, error)
}

// ResolvedSubject is the outcome of driver resolution. It exists only
// when a DriverID was supplied.
type ResolvedSubject struct {
	ID    SubjectID
	Found bool
}

// ResolveSubject resolves the criteria's driver filter, if any.
// Returns nil when no driver filter is present, and a LookupError when
// the directory fails.
func ResolveSubject(ctx context.Context, dir SubjectDirectory, c Criteria) (*ResolvedSubject, error) {
	if c.DriverID == "" {
		return nil, nil
	}
	id, found, err := dir.Lookup(ctx, SubjectKey{
		PolicyID:          c.PolicyID,
		PolicyVersionDate: c.PolicyVersionDate,
		DriverID:          c.DriverID,
	})
	if err != nil {
		return nil, &LookupError{Err: err}
	}
	return &ResolvedSubject{ID: id, Found: found}, nil
}
