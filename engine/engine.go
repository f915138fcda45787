/*
engine.go - ComputeUtilization, the engine's sole public entry point

PURPOSE:
  Wires the pipeline together for every employee in the roster:

    mapper -> classifier -> aggregator -> validator -> summarizer

  The function is pure and synchronous. It performs no I/O, holds no state
  between calls, and touches nothing shared: identical inputs produce
  identical output, and callers may shard the roster across goroutines
  themselves if they ever need to.

CONFIGURATION AS DATA:
  The exclusion lists and synonym overrides arrive through Options rather
  than package-level variables, so the engine stays side-effect-free and
  independently testable.

SEE ALSO:
  - classify.go: the decision table this pipeline exists to apply
  - validate.go: the consistency pass run on every result
*/
package engine

import "sort"

// Options carries the static configuration for one computation.
type Options struct {
	// FullyExcluded lists employee display names dropped from the
	// computation entirely. Matched case-insensitively.
	FullyExcluded []string

	// UtilizationExempt lists employee display names that stay visible but
	// are excluded from field/office/overtime accounting. Matched
	// case-insensitively.
	UtilizationExempt []string

	// SynonymOverrides extends the built-in status synonym table.
	SynonymOverrides map[string]string
}

// ComputeUtilization classifies every calendar day of the window for every
// employee and returns one Result per employee, ordered by display name.
// Fully-excluded employees are absent from the output. An inverted window
// yields results with zero-day totals rather than an error.
func ComputeUtilization(events, holidayEvents []Event, employees []Employee, window Window, opts Options) []Result {
	normalizer := NewNormalizer(opts.SynonymOverrides)
	holidays := buildHolidaySet(holidayEvents, window)
	excluded := nameSet(opts.FullyExcluded)
	exempt := nameSet(opts.UtilizationExempt)

	results := make([]Result, 0, len(employees))
	for _, emp := range employees {
		if excluded[normalizeLabel(emp.Name)] {
			continue
		}
		results = append(results, computeEmployee(emp, events, holidays, window, normalizer, exempt[normalizeLabel(emp.Name)]))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Employee.Name < results[j].Employee.Name
	})
	return results
}

// computeEmployee runs the full pipeline for a single employee.
func computeEmployee(emp Employee, events []Event, holidays map[string]bool, window Window, normalizer *Normalizer, exempt bool) Result {
	days := buildCalendarDays(emp, events, holidays, window, normalizer)

	acc := newAccumulator()
	for _, cd := range days {
		acc.add(classifyDay(cd, exempt))
	}

	validation := validate(acc, days, exempt)

	result := Result{
		Employee:        emp,
		Totals:          acc.categoryTotals(),
		CategoryDates:   acc.categoryDates(),
		HolidayWarnings: acc.warnings,
		Validation:      validation,
		TotalWeekdays:   acc.totalWeekdays,
		TotalWeekends:   acc.totalWeekends,
		Exempt:          exempt,
	}
	if result.HolidayWarnings == nil {
		result.HolidayWarnings = []HolidayWarning{}
	}
	result.UnknownDates = result.CategoryDates[CategoryUnknown]
	if result.UnknownDates == nil {
		result.UnknownDates = []string{}
	}

	summarize(&result)
	return result
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[normalizeLabel(name)] = true
	}
	return set
}
