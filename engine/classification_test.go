package engine_test

import (
	"testing"

	"github.com/warp/claims-engine/engine"
)

const chargeable = 100

func TestClassificationPredicate_OnlyAtFault(t *testing.T) {
	// GIVEN: chargeable code 100
	// THEN: code 100 included, code 50 excluded

	p := engine.NewClassificationPredicate(chargeable, engine.OnlyAtFault)

	if !p(100) {
		t.Error("code 100 should match only-at-fault")
	}
	if p(50) {
		t.Error("code 50 should not match only-at-fault")
	}
}

func TestClassificationPredicate_AnyAcceptsEverything(t *testing.T) {
	p := engine.NewClassificationPredicate(chargeable, engine.AnyFault)

	for _, code := range []int{-1, 0, 50, 100, 999} {
		if !p(code) {
			t.Errorf("any-fault must accept code %d", code)
		}
	}
}

func TestClassificationPredicate_PartitionLaw(t *testing.T) {
	// GIVEN: the two restrictive selectors
	// THEN: they partition all codes - disjoint and covering

	atFault := engine.NewClassificationPredicate(chargeable, engine.OnlyAtFault)
	notAtFault := engine.NewClassificationPredicate(chargeable, engine.OnlyNotAtFault)

	for _, code := range []int{-1, 0, 50, 99, 100, 101, 999} {
		a, n := atFault(code), notAtFault(code)
		if a == n {
			t.Errorf("code %d: at-fault=%v not-at-fault=%v, expected exactly one", code, a, n)
		}
	}
}

func TestClassificationPredicate_UnvalidatedSelectorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a selector that skipped validation")
		}
	}()
	engine.NewClassificationPredicate(chargeable, engine.AtFault("maybe"))
}
