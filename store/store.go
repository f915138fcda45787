// Package store defines the event-cache contract sitting between the Teamup
// client and the HTTP handlers, so the dashboard does not refetch the same
// window from the scheduling API on every render. The cache holds fetched
// INPUTS only; engine output is never persisted.
package store

import (
	"context"
	"time"

	"github.com/warp/utilization-engine/engine"
)

// CachedWindow is one fetched analysis window: the employee events, the
// designated holiday events, and when the fetch happened. Callers decide for
// themselves how stale is too stale.
type CachedWindow struct {
	Window    engine.Window
	Events    []engine.Event
	Holidays  []engine.Event
	FetchedAt time.Time
}

// EventStore caches fetched windows and the employee roster.
type EventStore interface {
	// SaveWindow replaces the cached contents for a window.
	SaveWindow(ctx context.Context, cw CachedWindow) error

	// LoadWindow returns the cached contents for a window. ok is false on a
	// cache miss; a miss is not an error.
	LoadWindow(ctx context.Context, w engine.Window) (cw CachedWindow, ok bool, err error)

	// SaveEmployees replaces the cached roster.
	SaveEmployees(ctx context.Context, employees []engine.Employee) error

	// LoadEmployees returns the cached roster (nil when never saved).
	LoadEmployees(ctx context.Context) ([]engine.Employee, error)
}

// WindowKey is the canonical cache key for a window.
func WindowKey(w engine.Window) string {
	return w.Start.String() + ".." + w.End.String()
}
