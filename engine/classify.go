/*
classify.go - The category-resolution decision table

PURPOSE:
  Turns one CalendarDay into category day-fractions. This is the heart of the
  engine; every other component exists to feed it or to total its output.

RESOLUTION POLICY (priority order):
   1. "tech on call" events never contribute a status (enforced upstream in
      the mapper, noted here because it is rule one of the policy).
   2. Days before enrollment are excluded from every count.
   3. Weekend, no statuses: counts toward the weekend-day total only.
   4. Weekend with "vacation": vacation.weekend += 1/N over the N statuses
      active that day; co-occurring statuses are otherwise ignored.
   5. Weekend with any non-vacation status: overtime.weekend += 1, whole day.
   6. Weekday holiday with "vacation": holiday.weekday += 1 (vacation is
      suppressed in favor of the observed holiday).
   7. Weekday holiday with field or office: overtime.weekday += 1 (worked
      through the holiday).
   8. Weekday holiday with only other statuses: no category; emits a
      HolidayWarning and the day stays unknown.
   9. Weekday holiday with no statuses: holiday.weekday += 1.
  10. Plain weekday with N >= 1 statuses: each status gets 1/N of the day.
  11. Plain weekday with no statuses: unknown.weekday += 1.

  Utilization-exempt employees never accrue unknown: their weekday still
  counts toward the window total, but empty or warned days are suppressed
  instead of bucketed.

SEE ALSO:
  - mapper.go: builds the CalendarDay inputs
  - aggregate.go: totals the DayClassification outputs
*/
package engine

// DayClassification is the classifier's verdict for one employee-day.
type DayClassification struct {
	Date    Day
	Weekend bool

	// Skip marks a pre-enrollment day: excluded from every total.
	Skip bool

	// Shares distributes the day across categories. For a counted day the
	// values sum to 1.0 (within Epsilon); an excluded weekend or a warned
	// holiday carries no shares at all.
	Shares map[Category]float64

	Warning *HolidayWarning
}

// classifyDay applies the resolution policy to a single CalendarDay.
func classifyDay(cd CalendarDay, exempt bool) DayClassification {
	dc := DayClassification{Date: cd.Date, Weekend: cd.Weekend}

	if cd.BeforeEnrollment {
		dc.Skip = true
		return dc
	}

	if cd.Weekend {
		dc.Shares = classifyWeekend(cd)
		return dc
	}

	if cd.Holiday {
		dc.Shares, dc.Warning = classifyWeekdayHoliday(cd, exempt)
		return dc
	}

	dc.Shares = classifyPlainWeekday(cd, exempt)
	return dc
}

// classifyWeekend resolves rules 3-5. Weekends are never unknown: an empty
// weekend contributes to the weekend-day total and nothing else.
func classifyWeekend(cd CalendarDay) map[Category]float64 {
	if len(cd.Statuses) == 0 {
		return nil
	}
	if containsStatus(cd.Statuses, CategoryVacation) {
		// Vacation on a weekend splits across however many statuses were
		// active; the non-vacation co-statuses themselves are ignored.
		return map[Category]float64{CategoryVacation: 1.0 / float64(len(cd.Statuses))}
	}
	// Any other weekend activity is a full overtime day regardless of how
	// many statuses co-occur.
	return map[Category]float64{CategoryOvertime: 1}
}

// classifyWeekdayHoliday resolves rules 6-9.
func classifyWeekdayHoliday(cd CalendarDay, exempt bool) (map[Category]float64, *HolidayWarning) {
	switch {
	case containsStatus(cd.Statuses, CategoryVacation):
		return map[Category]float64{CategoryHoliday: 1}, nil

	case containsStatus(cd.Statuses, CategoryField) || containsStatus(cd.Statuses, CategoryOffice):
		return map[Category]float64{CategoryOvertime: 1}, nil

	case len(cd.Statuses) > 0:
		// Something happened on the holiday that is neither time off nor
		// work: keep it out of every category and flag it for review.
		warning := &HolidayWarning{Date: cd.Date.String(), Statuses: cd.Statuses}
		if exempt {
			return nil, warning
		}
		return map[Category]float64{CategoryUnknown: 1}, warning

	default:
		return map[Category]float64{CategoryHoliday: 1}, nil
	}
}

// classifyPlainWeekday resolves rules 10-11: an even 1/N split across the
// unique statuses, or unknown when nothing was recorded.
func classifyPlainWeekday(cd CalendarDay, exempt bool) map[Category]float64 {
	if len(cd.Statuses) == 0 {
		if exempt {
			return nil
		}
		return map[Category]float64{CategoryUnknown: 1}
	}
	shares := make(map[Category]float64, len(cd.Statuses))
	fraction := 1.0 / float64(len(cd.Statuses))
	for _, status := range cd.Statuses {
		shares[status] = fraction
	}
	return shares
}

func containsStatus(statuses []Category, c Category) bool {
	for _, s := range statuses {
		if s == c {
			return true
		}
	}
	return false
}
