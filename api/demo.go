/*
demo.go - Synthetic dataset for running the dashboard without credentials

PURPOSE:
  Loads a deterministic month of events for a three-person roster into the
  event cache, so the dashboard renders real engine output with no scheduling
  API configured. The dataset deliberately exercises the interesting policy
  branches: fractional multi-status days, weekend overtime, a designated
  holiday worked through, a holiday social event, and an ignored on-call
  rotation entry.
*/
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/warp/utilization-engine/engine"
	"github.com/warp/utilization-engine/store"
)

// demo roster IDs
const (
	demoAlice engine.EmployeeID = "101"
	demoBob   engine.EmployeeID = "102"
	demoCarol engine.EmployeeID = "103"
)

// LoadDemo fills the cache with the synthetic dataset for the current month.
func (h *Handler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	window := engine.Window{
		Start: engine.NewDay(now.Year(), now.Month(), 1),
		End:   engine.DayOf(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1)),
	}

	employees, cw := DemoDataset(window)
	ctx := r.Context()

	if err := h.Store.SaveEmployees(ctx, employees); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load demo roster", err)
		return
	}
	if err := h.Store.SaveWindow(ctx, cw); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load demo events", err)
		return
	}

	log.Printf("demo dataset loaded for %s", window)
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "loaded",
		"start":  window.Start.String(),
		"end":    window.End.String(),
	})
}

// DemoDataset builds the synthetic roster and cached window. Exported so
// tests and the -demo startup path can reuse it.
func DemoDataset(window engine.Window) ([]engine.Employee, store.CachedWindow) {
	enrollment := window.Start.AddDays(3)
	employees := []engine.Employee{
		{ID: demoAlice, Name: "Alice Demo"},
		{ID: demoBob, Name: "Bob Demo"},
		{ID: demoCarol, Name: "Carol Demo", EnrollmentDate: &enrollment},
	}

	var events []engine.Event
	statuses := []string{"office", "field", "wfh"}

	weekdayIdx := 0
	for _, d := range window.Days() {
		if d.IsWeekend() {
			continue
		}
		// Alice rotates through the productive statuses; Bob works from
		// home twice a week and leaves the rest unrecorded.
		events = append(events, demoEvent(d, statuses[weekdayIdx%3], "Scheduled work", demoAlice))
		if weekdayIdx%5 < 2 {
			events = append(events, demoEvent(d, "wfh", "Remote work", demoBob))
		}
		weekdayIdx++
	}

	days := window.Days()
	if len(days) >= 21 {
		// A vacation span for Bob, weekend overtime for Alice, an ignored
		// on-call rotation entry, and a two-status day for Carol.
		events = append(events,
			engine.Event{
				Start:          days[14].Time,
				End:            days[18].Time,
				Status:         "vacation",
				Title:          "Annual leave",
				SubcalendarIDs: []engine.EmployeeID{demoBob},
			},
			demoEvent(firstWeekend(days), "field", "Emergency deploy", demoAlice),
			demoEvent(days[7], "field", "Tech on call - rotation", demoCarol),
			demoEvent(days[8], "office", "Morning meetings", demoCarol),
			demoEvent(days[8], "field", "Afternoon site visit", demoCarol),
		)
	}

	var holidays []engine.Event
	if len(days) >= 11 {
		holidayDay := firstWeekdayAt(days, 10)
		holidays = append(holidays, engine.Event{
			Start: holidayDay.Time,
			End:   holidayDay.Time.Add(23 * time.Hour),
			Title: "Company Holiday",
		})
		// Alice works through the holiday; Carol only attends the lunch.
		events = append(events,
			demoEvent(holidayDay, "office", "Quarter close", demoAlice),
			demoEvent(holidayDay, "social", "Team Lunch", demoCarol),
		)
	}

	cw := store.CachedWindow{
		Window:    window,
		Events:    events,
		Holidays:  holidays,
		FetchedAt: time.Now(),
	}
	return employees, cw
}

func demoEvent(d engine.Day, status, title string, id engine.EmployeeID) engine.Event {
	return engine.Event{
		Start:          d.Time.Add(9 * time.Hour),
		End:            d.Time.Add(17 * time.Hour),
		Status:         status,
		Title:          title,
		SubcalendarIDs: []engine.EmployeeID{id},
	}
}

func firstWeekend(days []engine.Day) engine.Day {
	for _, d := range days {
		if d.IsWeekend() {
			return d
		}
	}
	return days[0]
}

func firstWeekdayAt(days []engine.Day, offset int) engine.Day {
	seen := 0
	for _, d := range days {
		if d.IsWeekend() {
			continue
		}
		if seen == offset {
			return d
		}
		seen++
	}
	return days[len(days)-1]
}
