package engine_test

import (
	"testing"
	"time"

	"github.com/warp/claims-engine/engine"
)

func TestComputeWindow_BoundaryIsAnchorMinusCalendarYears(t *testing.T) {
	// GIVEN: anchor 2020-01-01 and a 3-year window
	// WHEN: Computing the window
	// THEN: Boundary is 2017-01-01, month and day preserved

	w := engine.ComputeWindow(engine.NewDate(2020, time.January, 1), 3, engine.WindowDuring)

	if !w.Boundary.Equal(engine.NewDate(2017, time.January, 1)) {
		t.Errorf("expected boundary 2017-01-01, got %s", w.Boundary)
	}
}

func TestComputeWindow_MonthAndDayPreserved(t *testing.T) {
	w := engine.ComputeWindow(engine.NewDate(2023, time.September, 15), 5, engine.WindowBefore)

	if !w.Boundary.Equal(engine.NewDate(2018, time.September, 15)) {
		t.Errorf("expected boundary 2018-09-15, got %s", w.Boundary)
	}
}

func TestComputeWindow_ZeroYears_BoundaryIsAnchor(t *testing.T) {
	anchor := engine.NewDate(2024, time.June, 1)
	w := engine.ComputeWindow(anchor, 0, engine.WindowDuring)

	if !w.Boundary.Equal(anchor) {
		t.Errorf("expected boundary %s, got %s", anchor, w.Boundary)
	}
	if !w.Contains(anchor) {
		t.Error("DURING window must include the boundary itself")
	}
}

func TestWindow_DuringScenario(t *testing.T) {
	// GIVEN: anchor 2020-01-01, 3 years, DURING => boundary 2017-01-01
	// THEN: loss 2017-06-01 included, loss 2016-12-31 excluded

	w := engine.ComputeWindow(engine.NewDate(2020, time.January, 1), 3, engine.WindowDuring)

	if !w.Contains(engine.NewDate(2017, time.June, 1)) {
		t.Error("loss 2017-06-01 should be inside the DURING window")
	}
	if w.Contains(engine.NewDate(2016, time.December, 31)) {
		t.Error("loss 2016-12-31 should be outside the DURING window")
	}
}

func TestWindow_DuringAndBeforePartitionTheTimeline(t *testing.T) {
	// GIVEN: a fixed boundary
	// THEN: every date satisfies exactly one of DURING/BEFORE

	anchor := engine.NewDate(2020, time.January, 1)
	during := engine.ComputeWindow(anchor, 3, engine.WindowDuring)
	before := engine.ComputeWindow(anchor, 3, engine.WindowBefore)

	dates := []engine.Date{
		engine.NewDate(2000, time.January, 1),
		engine.NewDate(2016, time.December, 31),
		engine.NewDate(2017, time.January, 1), // the boundary itself
		engine.NewDate(2017, time.January, 2),
		engine.NewDate(2019, time.July, 4),
		engine.NewDate(2020, time.January, 1),
		engine.NewDate(2025, time.March, 9),
	}
	for _, d := range dates {
		in, out := during.Contains(d), before.Contains(d)
		if in == out {
			t.Errorf("date %s: during=%v before=%v, expected exactly one", d, in, out)
		}
	}
}

func TestParseDate_RejectsNonDates(t *testing.T) {
	if _, err := engine.ParseDate("01/02/2020"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	d, err := engine.ParseDate("2020-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(engine.NewDate(2020, time.February, 29)) {
		t.Errorf("expected 2020-02-29, got %s", d)
	}
}
