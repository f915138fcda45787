package engine

import (
	"sort"
	"strings"
)

// =============================================================================
// EVENT-TO-DAY MAPPER - Expands events across the days they span
// =============================================================================

// ignoredTitleMarker: events carrying this phrase in their title are rotation
// placeholders, not attendance, and never contribute a status to any day.
const ignoredTitleMarker = "tech on call"

// holidayPartyTitle: the one calendar entry on the holiday subcalendar that
// is a party, not a day off. Matched on the normalized title.
const holidayPartyTitle = "holiday party"

// dayActivity collects what happened on a single calendar date for one
// employee before classification: the set of statuses active that date.
type dayActivity struct {
	statuses map[Category]bool
}

// eventDays returns every day of the window the event covers. Both the start
// and end dates are inclusive, on local calendar dates.
func eventDays(ev Event, w Window) []Day {
	first := DayOf(ev.Start)
	last := DayOf(ev.End)
	if last.Before(first) {
		last = first
	}
	if first.Before(w.Start) {
		first = w.Start
	}
	if last.After(w.End) {
		last = w.End
	}
	if last.Before(first) {
		return nil
	}
	return Window{Start: first, End: last}.Days()
}

// buildDayIndex groups an employee's events by the calendar dates they cover.
// Same-day events merge: their normalized statuses form one de-duplicated set
// per day, which is how simultaneous statuses are later detected.
func buildDayIndex(events []Event, id EmployeeID, w Window, n *Normalizer) map[string]*dayActivity {
	index := make(map[string]*dayActivity)
	for _, ev := range events {
		if !eventBelongsTo(ev, id) {
			continue
		}
		if strings.Contains(normalizeLabel(ev.Title), ignoredTitleMarker) {
			continue
		}
		status := n.Normalize(ev.Status)
		for _, day := range eventDays(ev, w) {
			key := day.String()
			act, ok := index[key]
			if !ok {
				act = &dayActivity{statuses: make(map[Category]bool)}
				index[key] = act
			}
			act.statuses[status] = true
		}
	}
	return index
}

func eventBelongsTo(ev Event, id EmployeeID) bool {
	for _, sub := range ev.SubcalendarIDs {
		if sub == id {
			return true
		}
	}
	return false
}

// buildHolidaySet expands designated holiday events into the set of dates
// they cover inside the window, keyed by ISO date. "Holiday Party" entries
// are social events, not observed holidays, and are skipped.
func buildHolidaySet(holidayEvents []Event, w Window) map[string]bool {
	set := make(map[string]bool)
	for _, ev := range holidayEvents {
		if normalizeLabel(ev.Title) == holidayPartyTitle {
			continue
		}
		for _, day := range eventDays(ev, w) {
			set[day.String()] = true
		}
	}
	return set
}

// buildCalendarDays assembles the classified-day inputs for one employee:
// one CalendarDay per window date, carrying weekend/holiday/enrollment flags
// and the sorted set of statuses active that date.
func buildCalendarDays(emp Employee, events []Event, holidays map[string]bool, w Window, n *Normalizer) []CalendarDay {
	index := buildDayIndex(events, emp.ID, w, n)

	var days []CalendarDay
	for _, date := range w.Days() {
		cd := CalendarDay{
			Date:    date,
			Weekend: date.IsWeekend(),
			Holiday: holidays[date.String()],
		}
		if emp.EnrollmentDate != nil && date.Before(*emp.EnrollmentDate) {
			cd.BeforeEnrollment = true
		}
		if act, ok := index[date.String()]; ok {
			cd.Statuses = sortedStatuses(act.statuses)
		}
		days = append(days, cd)
	}
	return days
}

func sortedStatuses(set map[Category]bool) []Category {
	statuses := make([]Category, 0, len(set))
	for s := range set {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	return statuses
}
