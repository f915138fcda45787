/*
Package engine implements the day-classification and aggregation core of the
utilization dashboard.

PURPOSE:
  Given a window of calendar days, the raw events that fall inside it, and the
  roster of employees, the engine classifies every employee-day into exactly
  one work category (possibly split fractionally across simultaneous
  statuses), aggregates per-category totals, cross-checks its own arithmetic,
  and derives utilization percentages.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: An open string type for work classifications. Canonical
    categories are constants; unrecognized statuses become new categories
    at runtime rather than errors.
  - Event: An immutable calendar event supplied by the fetch layer.
  - Employee: A subcalendar owner, with an optional enrollment date.
  - CalendarDay: The atomic unit of classification (derived, never stored).
  - Result: The per-employee output record consumed by charts and tables.

DESIGN PRINCIPLES:
  1. Totality: malformed-but-present data never raises; it surfaces as data
     (unknown buckets, validation reports, holiday warnings).
  2. Statelessness: every invocation computes from its inputs alone. There is
     no cache and no mutable package state.
  3. Openness: the status vocabulary is not closed. New labels grow new
     category buckets.

SEE ALSO:
  - time.go: Day and Window calendar primitives
  - classify.go: the category-resolution decision table
  - engine.go: ComputeUtilization entry point
*/
package engine

import "time"

// =============================================================================
// CATEGORY - Open classification vocabulary
// =============================================================================

// Category is a normalized work classification. The constants below are the
// canonical vocabulary; any other normalized status string is a valid ad-hoc
// Category as well.
type Category string

const (
	CategoryField        Category = "field"
	CategoryOffice       Category = "office"
	CategoryWorkFromHome Category = "work from home"
	CategoryVacation     Category = "vacation"
	CategorySick         Category = "sick"
	CategoryOvertime     Category = "overtime"
	CategoryHoliday      Category = "holiday"
	CategoryUnknown      Category = "unknown"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// EmployeeID identifies a subcalendar in the scheduling API.
type EmployeeID string

// =============================================================================
// INPUT TYPES - Supplied by the fetch layer, never mutated
// =============================================================================

// Event is a calendar event as delivered by the scheduling API. An event
// spans every local calendar date from Start through End inclusive.
type Event struct {
	Start          time.Time
	End            time.Time
	Status         string // raw free-text status label from event metadata
	Title          string
	SubcalendarIDs []EmployeeID
}

// Employee is a roster entry. A nil EnrollmentDate means "always enrolled":
// every day of the analysis window counts for this employee.
type Employee struct {
	ID             EmployeeID
	Name           string
	EnrollmentDate *Day
}

// =============================================================================
// CALENDAR DAY - Derived unit of classification
// =============================================================================

// CalendarDay carries everything the classifier needs to know about one
// employee-day. Built by the mapper, consumed by the classifier, discarded.
type CalendarDay struct {
	Date             Day
	Weekend          bool
	Holiday          bool
	BeforeEnrollment bool
	Statuses         []Category // unique normalized statuses active, sorted
}

// =============================================================================
// TOTALS AND RESULTS
// =============================================================================

// CategoryCount holds the accumulated day-fractions for one category.
type CategoryCount struct {
	Weekday float64 `json:"weekday"`
	Weekend float64 `json:"weekend"`
}

// CategoryTotals maps every category that received at least one day-fraction
// to its counts. Keys appear on demand; absent key means zero.
type CategoryTotals map[Category]CategoryCount

// WeekdayCount returns the weekday total for a category (zero when absent).
func (t CategoryTotals) WeekdayCount(c Category) float64 { return t[c].Weekday }

// WeekendCount returns the weekend total for a category (zero when absent).
func (t CategoryTotals) WeekendCount(c Category) float64 { return t[c].Weekend }

// HolidayWarning records a weekday holiday whose events were neither
// vacation nor field/office work: the day was deliberately left out of the
// holiday bucket and needs a human look.
type HolidayWarning struct {
	Date     string     `json:"date"`
	Statuses []Category `json:"statuses"`
}

// ValidationReport is the output of the reconciliation pass.
type ValidationReport struct {
	IsValid          bool     `json:"is_valid"`
	CategorySum      float64  `json:"category_sum"`      // Σ weekday fractions over all categories
	TotalWeekdays    float64  `json:"total_weekdays"`    // post-enrollment weekdays in window
	Difference       float64  `json:"difference"`        // CategorySum - TotalWeekdays
	UnaccountedDates []string `json:"unaccounted_dates"` // weekdays found in no bucket
}

// Result is the complete per-employee record returned by the engine.
type Result struct {
	Employee        Employee
	Totals          CategoryTotals
	CategoryDates   map[Category][]string // sorted ISO dates per category
	UnknownDates    []string              // convenience view of CategoryDates[CategoryUnknown]
	HolidayWarnings []HolidayWarning
	Validation      ValidationReport

	TotalWeekdays float64
	TotalWeekends float64

	// Utilization percentages (0-100) and their one-decimal render.
	WeekdayUtilization      float64
	WeekendUtilization      float64
	WeekdayUtilizationLabel string
	WeekendUtilizationLabel string

	// Exempt marks a utilization-exempt employee: only work-from-home counts
	// toward weekday utilization and weekend utilization is pinned to zero.
	Exempt bool
}

// =============================================================================
// TOLERANCE
// =============================================================================

// Epsilon is the tolerance for all fractional-day reconciliation checks.
// Day fractions are float64 (1/3 is not exact); never compare them exactly.
const Epsilon = 0.01
