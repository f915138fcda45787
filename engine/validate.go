package engine

import "math"

// =============================================================================
// VALIDATOR - Self-healing consistency pass
// =============================================================================
//
// The classifier is supposed to place every post-enrollment weekday into
// exactly one bucket. The validator does not trust it: it re-scans the window
// for weekdays that landed nowhere, heals them into unknown, and then checks
// that the weekday category fractions reconcile with the weekday count. Kept
// as a distinct always-run pass so the invariant stays enforced even as the
// classification rules evolve.

// validate runs the consistency pass for one employee and returns the report.
// It mutates the accumulator: unaccounted weekdays are retroactively added to
// the unknown bucket before the reconciliation check.
func validate(a *accumulator, days []CalendarDay, exempt bool) ValidationReport {
	report := ValidationReport{UnaccountedDates: []string{}}

	if exempt {
		// Exempt employees deliberately accrue no unknown, so their buckets
		// can never cover every weekday. Reconciliation is meaningless for
		// them; report the sums and call it consistent.
		report.CategorySum = a.weekdaySum()
		report.TotalWeekdays = a.totalWeekdays
		report.Difference = report.CategorySum - report.TotalWeekdays
		report.IsValid = true
		return report
	}

	for _, cd := range days {
		if cd.Weekend || cd.BeforeEnrollment {
			continue
		}
		date := cd.Date.String()
		if a.hasDate(date) || a.hasWarning(date) {
			continue
		}
		a.forceUnknown(date)
		report.UnaccountedDates = append(report.UnaccountedDates, date)
	}

	report.CategorySum = a.weekdaySum()
	report.TotalWeekdays = a.totalWeekdays
	report.Difference = report.CategorySum - report.TotalWeekdays
	report.IsValid = math.Abs(report.Difference) <= Epsilon
	return report
}
