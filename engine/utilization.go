package engine

import "github.com/shopspring/decimal"

// =============================================================================
// UTILIZATION SUMMARIZER - Percentages derived from category totals
// =============================================================================

// summarize fills in the utilization numbers on a Result. Weekday utilization
// counts field, office, and work-from-home fractions; exempt employees count
// only work-from-home and always show zero weekend utilization.
func summarize(r *Result) {
	var weekdayUtilized float64
	if r.Exempt {
		weekdayUtilized = r.Totals.WeekdayCount(CategoryWorkFromHome)
	} else {
		weekdayUtilized = r.Totals.WeekdayCount(CategoryField) +
			r.Totals.WeekdayCount(CategoryOffice) +
			r.Totals.WeekdayCount(CategoryWorkFromHome)
	}

	var weekendUtilized float64
	if !r.Exempt {
		weekendUtilized = r.Totals.WeekendCount(CategoryOvertime)
	}

	r.WeekdayUtilization = percent(weekdayUtilized, r.TotalWeekdays)
	r.WeekendUtilization = percent(weekendUtilized, r.TotalWeekends)
	r.WeekdayUtilizationLabel = percentLabel(r.WeekdayUtilization)
	r.WeekendUtilizationLabel = percentLabel(r.WeekendUtilization)
}

func percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

// percentLabel renders a percentage to exactly one decimal place. Decimal
// rounding keeps artifacts like "33.300000000000004" out of the API.
func percentLabel(p float64) string {
	return decimal.NewFromFloat(p).Round(1).StringFixed(1)
}
