package engine

import "time"

// =============================================================================
// DAY - Local calendar date, time-of-day stripped
// =============================================================================

// Day is a calendar date normalized to local midnight. All engine date
// comparisons happen at Day granularity; normalizing up front is what keeps
// timezone-shifted timestamps from producing off-by-one-day buckets.
type Day struct {
	Time time.Time
}

// NewDay constructs a Day in the local location.
func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DayOf truncates an instant to its local calendar date.
func DayOf(t time.Time) Day {
	local := t.Local()
	return NewDay(local.Year(), local.Month(), local.Day())
}

// Comparison
func (d Day) Before(other Day) bool        { return d.Time.Before(other.Time) }
func (d Day) After(other Day) bool         { return d.Time.After(other.Time) }
func (d Day) Equal(other Day) bool         { return d.Time.Equal(other.Time) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

// Arithmetic
func (d Day) AddDays(n int) Day { return DayOf(d.Time.AddDate(0, 0, n)) }

// Properties
func (d Day) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Day) IsZero() bool { return d.Time.IsZero() }

// String renders the ISO date used as a key everywhere downstream.
func (d Day) String() string { return d.Time.Format("2006-01-02") }

// ParseDay parses an ISO date in the local location.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// =============================================================================
// WINDOW - Inclusive analysis range
// =============================================================================

// Window is the inclusive [Start, End] range under analysis.
type Window struct {
	Start Day
	End   Day
}

// NewWindow normalizes two instants into a Window.
func NewWindow(start, end time.Time) Window {
	return Window{Start: DayOf(start), End: DayOf(end)}
}

// Valid reports whether the window is well-formed (end not before start).
func (w Window) Valid() bool { return !w.End.Before(w.Start) }

// Contains reports whether a day falls inside the window.
func (w Window) Contains(d Day) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

// Days enumerates every calendar day in the window, both ends inclusive.
// An inverted window enumerates to nil: the engine stays total and lets the
// caller surface the misuse however it likes.
func (w Window) Days() []Day {
	if !w.Valid() {
		return nil
	}
	var days []Day
	for current := w.Start; current.BeforeOrEqual(w.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

func (w Window) String() string { return "[" + w.Start.String() + ", " + w.End.String() + "]" }
