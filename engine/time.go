package engine

import (
	"time"
)

// =============================================================================
// DATE - Calendar date (day granularity, UTC)
// =============================================================================

// Date is a calendar date normalized to UTC midnight. Loss dates, anchor
// dates, and window boundaries are all day-granular.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// AddYears shifts the year and preserves month/day, following the
// platform's calendar arithmetic (time.Time.AddDate normalization).
func (d Date) AddYears(n int) Date { return Date{t: d.t.AddDate(n, 0, 0)} }

func (d Date) String() string { return d.t.Format(dateLayout) }

// =============================================================================
// TIME WINDOW - Boundary plus comparison direction
// =============================================================================

// TimeWindow is the concrete lookback window derived from an anchor date,
// a duration in calendar years, and a before/during flag. Computed once
// per query, immutable.
type TimeWindow struct {
	Boundary  Date
	Direction WindowDirection
}

// ComputeWindow derives the window boundary as anchor minus windowYears
// calendar years. DURING and BEFORE are mutually exclusive and jointly
// exhaustive over the timeline relative to the boundary.
func ComputeWindow(anchor Date, windowYears int, direction WindowDirection) TimeWindow {
	return TimeWindow{
		Boundary:  anchor.AddYears(-windowYears),
		Direction: direction,
	}
}

// Contains reports whether a record date falls on the window's side of
// the boundary: DURING means date >= boundary, BEFORE means date < boundary.
func (w TimeWindow) Contains(d Date) bool {
	if w.Direction == WindowBefore {
		return d.Before(w.Boundary)
	}
	return !d.Before(w.Boundary)
}
