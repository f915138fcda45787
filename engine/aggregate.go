package engine

import "sort"

// =============================================================================
// AGGREGATOR - Totals classifier output across the window
// =============================================================================

// accumulator folds DayClassifications into per-category totals, parallel
// per-category date sets (for tooltips and audits), window day counts, and
// the holiday warning list. One accumulator per employee per invocation.
type accumulator struct {
	totals   map[Category]CategoryCount
	dates    map[Category]map[string]bool
	warnings []HolidayWarning

	totalWeekdays float64
	totalWeekends float64
}

func newAccumulator() *accumulator {
	return &accumulator{
		totals: make(map[Category]CategoryCount),
		dates:  make(map[Category]map[string]bool),
	}
}

// add folds one classified day into the running totals. Skipped
// (pre-enrollment) days contribute to nothing, not even the day counts.
func (a *accumulator) add(dc DayClassification) {
	if dc.Skip {
		return
	}

	if dc.Weekend {
		a.totalWeekends++
	} else {
		a.totalWeekdays++
	}

	for category, fraction := range dc.Shares {
		count := a.totals[category]
		if dc.Weekend {
			count.Weekend += fraction
		} else {
			count.Weekday += fraction
		}
		a.totals[category] = count
		a.markDate(category, dc.Date.String())
	}

	if dc.Warning != nil {
		a.warnings = append(a.warnings, *dc.Warning)
	}
}

// markDate records a concrete date under a category. Fractional shares on
// the same date land the date in several categories, which is intended: the
// date lists answer "which days contributed here", not "how much".
func (a *accumulator) markDate(category Category, date string) {
	set, ok := a.dates[category]
	if !ok {
		set = make(map[string]bool)
		a.dates[category] = set
	}
	set[date] = true
}

// forceUnknown retroactively moves a date into the unknown bucket with a
// whole-day weekday fraction. Used by the validator's self-healing pass.
func (a *accumulator) forceUnknown(date string) {
	count := a.totals[CategoryUnknown]
	count.Weekday++
	a.totals[CategoryUnknown] = count
	a.markDate(CategoryUnknown, date)
}

// hasDate reports whether any category's date set contains the date.
func (a *accumulator) hasDate(date string) bool {
	for _, set := range a.dates {
		if set[date] {
			return true
		}
	}
	return false
}

// hasWarning reports whether the date was flagged as a holiday warning.
func (a *accumulator) hasWarning(date string) bool {
	for _, w := range a.warnings {
		if w.Date == date {
			return true
		}
	}
	return false
}

// weekdaySum returns Σ category.weekday over every category, unknown
// included. The validator compares this against totalWeekdays.
func (a *accumulator) weekdaySum() float64 {
	var sum float64
	for _, count := range a.totals {
		sum += count.Weekday
	}
	return sum
}

// categoryDates freezes the date sets into sorted slices.
func (a *accumulator) categoryDates() map[Category][]string {
	out := make(map[Category][]string, len(a.dates))
	for category, set := range a.dates {
		dates := make([]string, 0, len(set))
		for date := range set {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		out[category] = dates
	}
	return out
}

// categoryTotals freezes the totals map.
func (a *accumulator) categoryTotals() CategoryTotals {
	out := make(CategoryTotals, len(a.totals))
	for category, count := range a.totals {
		out[category] = count
	}
	return out
}
