/*
Package sqlite provides the SQLite-backed event cache.

PURPOSE:
  Implements store.EventStore on SQLite so fetched scheduling-API windows
  survive process restarts. The cache is disposable by design: dropping the
  file only costs a refetch, never data the engine produced.

KEY TABLES:
  cached_windows: one row per fetched window (key, bounds, fetch time)
  cached_events:  the events of a window, flagged holiday or attendance
  employees:      the subcalendar roster

CONCURRENCY:
  A sync.RWMutex serializes writers; SQLite runs in WAL mode so readers do
  not block behind the single writer.

SEE ALSO:
  - store/store.go: the interface definition
  - store/memory.go: in-memory implementation for tests and demo mode
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/utilization-engine/engine"
	"github.com/warp/utilization-engine/store"
)

// Store implements store.EventStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store implements store.EventStore.
var _ store.EventStore = (*Store)(nil)

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cached_windows (
		window_key TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cached_events (
		window_key      TEXT NOT NULL,
		start_at        TEXT NOT NULL,
		end_at          TEXT NOT NULL,
		status          TEXT,
		title           TEXT,
		subcalendar_ids TEXT NOT NULL,
		is_holiday      INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (window_key) REFERENCES cached_windows(window_key) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_cached_events_window
		ON cached_events(window_key);

	CREATE TABLE IF NOT EXISTS employees (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		enrollment_date TEXT,
		updated_at      TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WINDOWS
// =============================================================================

// SaveWindow replaces the cached contents for a window atomically.
func (s *Store) SaveWindow(ctx context.Context, cw store.CachedWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	key := store.WindowKey(cw.Window)

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_events WHERE window_key = ?`, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cached_windows (window_key, start_date, end_date, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(window_key) DO UPDATE SET fetched_at = excluded.fetched_at`,
		key, cw.Window.Start.String(), cw.Window.End.String(), cw.FetchedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	if err := insertEvents(ctx, tx, key, cw.Events, false); err != nil {
		return err
	}
	if err := insertEvents(ctx, tx, key, cw.Holidays, true); err != nil {
		return err
	}

	return tx.Commit()
}

func insertEvents(ctx context.Context, tx *sql.Tx, key string, events []engine.Event, holiday bool) error {
	for _, ev := range events {
		ids, err := json.Marshal(ev.SubcalendarIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cached_events (window_key, start_at, end_at, status, title, subcalendar_ids, is_holiday)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			key, ev.Start.Format(time.RFC3339), ev.End.Format(time.RFC3339),
			ev.Status, ev.Title, string(ids), boolToInt(holiday),
		); err != nil {
			return err
		}
	}
	return nil
}

// LoadWindow returns the cached contents for a window; ok=false on a miss.
func (s *Store) LoadWindow(ctx context.Context, w engine.Window) (store.CachedWindow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := store.WindowKey(w)
	cw := store.CachedWindow{Window: w}

	var fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM cached_windows WHERE window_key = ?`, key,
	).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return store.CachedWindow{}, false, nil
	}
	if err != nil {
		return store.CachedWindow{}, false, err
	}
	if t, perr := time.Parse(time.RFC3339, fetchedAt); perr == nil {
		cw.FetchedAt = t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT start_at, end_at, status, title, subcalendar_ids, is_holiday
		FROM cached_events WHERE window_key = ?`, key)
	if err != nil {
		return store.CachedWindow{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var startAt, endAt, idsJSON string
		var status, title sql.NullString
		var isHoliday int
		if err := rows.Scan(&startAt, &endAt, &status, &title, &idsJSON, &isHoliday); err != nil {
			return store.CachedWindow{}, false, err
		}

		ev := engine.Event{Status: status.String, Title: title.String}
		if ev.Start, err = time.Parse(time.RFC3339, startAt); err != nil {
			return store.CachedWindow{}, false, fmt.Errorf("corrupt cached start_at %q: %w", startAt, err)
		}
		if ev.End, err = time.Parse(time.RFC3339, endAt); err != nil {
			return store.CachedWindow{}, false, fmt.Errorf("corrupt cached end_at %q: %w", endAt, err)
		}
		if err := json.Unmarshal([]byte(idsJSON), &ev.SubcalendarIDs); err != nil {
			return store.CachedWindow{}, false, fmt.Errorf("corrupt subcalendar_ids %q: %w", idsJSON, err)
		}

		if isHoliday != 0 {
			cw.Holidays = append(cw.Holidays, ev)
		} else {
			cw.Events = append(cw.Events, ev)
		}
	}
	if err := rows.Err(); err != nil {
		return store.CachedWindow{}, false, err
	}

	return cw, true, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployees replaces the cached roster.
func (s *Store) SaveEmployees(ctx context.Context, employees []engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, emp := range employees {
		var enrollment any
		if emp.EnrollmentDate != nil {
			enrollment = emp.EnrollmentDate.String()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO employees (id, name, enrollment_date, updated_at)
			VALUES (?, ?, ?, ?)`,
			string(emp.ID), emp.Name, enrollment, now,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadEmployees returns the cached roster, nil when never saved.
func (s *Store) LoadEmployees(ctx context.Context) ([]engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, enrollment_date FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []engine.Employee
	for rows.Next() {
		var id, name string
		var enrollment sql.NullString
		if err := rows.Scan(&id, &name, &enrollment); err != nil {
			return nil, err
		}
		emp := engine.Employee{ID: engine.EmployeeID(id), Name: name}
		if enrollment.Valid {
			if d, perr := engine.ParseDay(enrollment.String); perr == nil {
				emp.EnrollmentDate = &d
			}
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
