package engine

import "fmt"

// =============================================================================
// CLASSIFICATION PREDICATE - Ternary at-fault selector over one code
// =============================================================================

// ClassificationPredicate tests a record's classification code.
type ClassificationPredicate func(code int) bool

// NewClassificationPredicate converts the ternary at-fault selector into
// a predicate against the configured chargeable code:
//
//	OnlyAtFault    => code == chargeable
//	OnlyNotAtFault => code != chargeable
//	AnyFault       => always true
//
// The function is total over the three valid values. Anything else must
// already have been rejected by Criteria validation, so reaching the
// final branch is a programming error, not an input error.
func NewClassificationPredicate(chargeable int, fault AtFault) ClassificationPredicate {
	switch fault {
	case OnlyAtFault:
		return func(code int) bool { return code == chargeable }
	case OnlyNotAtFault:
		return func(code int) bool { return code != chargeable }
	case AnyFault:
		return func(int) bool { return true }
	}
	panic(fmt.Sprintf("unvalidated at-fault selector %q", fault))
}
