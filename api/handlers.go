/*
handlers.go - HTTP handlers for the utilization dashboard

PURPOSE:
  Exposes the engine via REST. This layer owns everything the engine refuses
  to: fetching from the scheduling API, caching fetched windows, request
  parsing, and HTTP error mapping.

ENDPOINTS:
  GET  /api/health                         Liveness probe
  GET  /api/employees                      Roster (cached, fetch on miss)
  GET  /api/utilization?start=&end=        Per-employee utilization breakdown
  POST /api/demo/load                      Load the synthetic demo dataset

REQUEST FLOW (utilization):
  1. Parse and validate the window
  2. Resolve the roster (cache, then upstream)
  3. Resolve the window's events (cache within TTL, then upstream;
     stale cache serves as fallback when upstream fails)
  4. Split designated-holiday events from attendance events
  5. Run the engine, serialize the response

ERROR HANDLING:
  - 400: malformed dates, inverted range
  - 502: upstream fetch failed with no cache to fall back on
  - 500: cache/database failures
  Engine-level data problems (unknown buckets, invalid reconciliation,
  holiday warnings) are DATA in the 200 response, never HTTP errors.

SEE ALSO:
  - dto.go: response shapes
  - server.go: routing and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/warp/utilization-engine/engine"
	"github.com/warp/utilization-engine/store"
)

// Fetcher is the upstream scheduling-API surface the handlers depend on.
// *teamup.Client implements it; tests substitute fakes.
type Fetcher interface {
	FetchEvents(ctx context.Context, window engine.Window) ([]engine.Event, error)
	FetchSubcalendars(ctx context.Context) ([]engine.Employee, error)
}

// Handler holds the handler dependencies.
type Handler struct {
	Store   store.EventStore
	Fetcher Fetcher // nil in demo mode: cache only

	// Options is the engine configuration (exclusions, synonyms).
	Options engine.Options

	// HolidaySubcalendar is the roster name whose events are designated
	// holidays rather than attendance.
	HolidaySubcalendar string

	// CacheTTL bounds how old a cached window may be before a refetch.
	CacheTTL time.Duration
}

// NewHandler creates a handler with the default cache TTL.
func NewHandler(st store.EventStore, fetcher Fetcher, opts engine.Options, holidaySubcalendar string) *Handler {
	return &Handler{
		Store:              st,
		Fetcher:            fetcher,
		Options:            opts,
		HolidaySubcalendar: holidaySubcalendar,
		CacheTTL:           15 * time.Minute,
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

// GetHealth is the liveness probe.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListEmployees returns the roster, minus the holiday subcalendar.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	roster, err := h.resolveRoster(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to resolve roster", err)
		return
	}

	employees, _ := h.splitHolidayCalendar(roster)
	dtos := make([]EmployeeDTO, len(employees))
	for i, emp := range employees {
		dtos[i] = toEmployeeDTO(emp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUtilization computes the per-employee breakdown for the requested
// window.
func (h *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	roster, err := h.resolveRoster(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to resolve roster", err)
		return
	}
	employees, holidayID := h.splitHolidayCalendar(roster)

	cw, err := h.resolveWindow(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to resolve events", err)
		return
	}

	events, holidays := partitionEvents(cw, holidayID)
	results := engine.ComputeUtilization(events, holidays, employees, window, h.Options)
	writeJSON(w, http.StatusOK, toUtilizationResponse(window, results))
}

// =============================================================================
// RESOLUTION - cache first, upstream second
// =============================================================================

// resolveRoster returns the cached roster, fetching it on a miss.
func (h *Handler) resolveRoster(ctx context.Context) ([]engine.Employee, error) {
	cached, err := h.Store.LoadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 || h.Fetcher == nil {
		return cached, nil
	}

	fetched, err := h.Fetcher.FetchSubcalendars(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.Store.SaveEmployees(ctx, fetched); err != nil {
		log.Printf("warning: failed to cache roster: %v", err)
	}
	return fetched, nil
}

// resolveWindow returns the window's events, preferring a fresh cache entry,
// then upstream, then a stale cache entry as a last resort.
func (h *Handler) resolveWindow(ctx context.Context, window engine.Window) (store.CachedWindow, error) {
	cw, hit, err := h.Store.LoadWindow(ctx, window)
	if err != nil {
		return store.CachedWindow{}, err
	}
	fresh := hit && time.Since(cw.FetchedAt) <= h.CacheTTL
	if fresh || h.Fetcher == nil {
		if hit {
			return cw, nil
		}
		return store.CachedWindow{Window: window}, nil
	}

	events, err := h.Fetcher.FetchEvents(ctx, window)
	if err != nil {
		if hit {
			log.Printf("warning: upstream fetch failed, serving stale cache for %s: %v", window, err)
			return cw, nil
		}
		return store.CachedWindow{}, err
	}

	fetched := store.CachedWindow{Window: window, Events: events, FetchedAt: time.Now()}
	if err := h.Store.SaveWindow(ctx, fetched); err != nil {
		log.Printf("warning: failed to cache window %s: %v", window, err)
	}
	return fetched, nil
}

// splitHolidayCalendar removes the designated-holiday subcalendar from the
// roster and returns its ID for event partitioning.
func (h *Handler) splitHolidayCalendar(roster []engine.Employee) ([]engine.Employee, engine.EmployeeID) {
	var holidayID engine.EmployeeID
	employees := make([]engine.Employee, 0, len(roster))
	for _, emp := range roster {
		if strings.EqualFold(emp.Name, h.HolidaySubcalendar) {
			holidayID = emp.ID
			continue
		}
		employees = append(employees, emp)
	}
	return employees, holidayID
}

// partitionEvents splits a cached window into attendance events and
// designated-holiday events. Cached windows store holidays separately
// already (demo mode); live fetches carry them inline on the holiday
// subcalendar.
func partitionEvents(cw store.CachedWindow, holidayID engine.EmployeeID) (events, holidays []engine.Event) {
	holidays = append(holidays, cw.Holidays...)
	for _, ev := range cw.Events {
		if holidayID != "" && belongsTo(ev, holidayID) {
			holidays = append(holidays, ev)
			continue
		}
		events = append(events, ev)
	}
	return events, holidays
}

func belongsTo(ev engine.Event, id engine.EmployeeID) bool {
	for _, sub := range ev.SubcalendarIDs {
		if sub == id {
			return true
		}
	}
	return false
}

// =============================================================================
// REQUEST PARSING AND RESPONSE HELPERS
// =============================================================================

// parseWindow reads start/end query parameters. Missing parameters default
// to the current calendar month.
func parseWindow(r *http.Request) (engine.Window, error) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	if startParam == "" && endParam == "" {
		now := time.Now()
		first := engine.NewDay(now.Year(), now.Month(), 1)
		last := engine.DayOf(first.Time.AddDate(0, 1, -1))
		return engine.Window{Start: first, End: last}, nil
	}

	start, err := engine.ParseDay(startParam)
	if err != nil {
		return engine.Window{}, err
	}
	end, err := engine.ParseDay(endParam)
	if err != nil {
		return engine.Window{}, err
	}

	window := engine.Window{Start: start, End: end}
	if !window.Valid() {
		return engine.Window{}, &engine.WindowError{Window: window}
	}
	return window, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
		message = message + ": " + err.Error()
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}
