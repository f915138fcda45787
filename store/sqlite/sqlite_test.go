package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/utilization-engine/engine"
	"github.com/warp/utilization-engine/store"
	"github.com/warp/utilization-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func marchWindow() engine.Window {
	return engine.Window{
		Start: engine.NewDay(2025, time.March, 3),
		End:   engine.NewDay(2025, time.March, 7),
	}
}

func TestSaveLoadWindow_RoundTrips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	w := marchWindow()

	cw := store.CachedWindow{
		Window:    w,
		FetchedAt: time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC),
		Events: []engine.Event{{
			Start:          engine.NewDay(2025, time.March, 3).Time.Add(9 * time.Hour),
			End:            engine.NewDay(2025, time.March, 3).Time.Add(17 * time.Hour),
			Status:         "office",
			Title:          "Office",
			SubcalendarIDs: []engine.EmployeeID{"42"},
		}},
		Holidays: []engine.Event{{
			Start: engine.NewDay(2025, time.March, 5).Time,
			End:   engine.NewDay(2025, time.March, 5).Time.Add(23 * time.Hour),
			Title: "Spring Holiday",
		}},
	}

	require.NoError(t, s.SaveWindow(ctx, cw))

	loaded, ok, err := s.LoadWindow(ctx, w)
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, loaded.Events, 1)
	assert.Equal(t, "office", loaded.Events[0].Status)
	assert.Equal(t, []engine.EmployeeID{"42"}, loaded.Events[0].SubcalendarIDs)
	require.Len(t, loaded.Holidays, 1)
	assert.Equal(t, "Spring Holiday", loaded.Holidays[0].Title)
	assert.Equal(t, cw.FetchedAt, loaded.FetchedAt.UTC())
}

func TestLoadWindow_MissIsNotAnError(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.LoadWindow(context.Background(), marchWindow())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveWindow_ReplacesPreviousContents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	w := marchWindow()

	first := store.CachedWindow{Window: w, FetchedAt: time.Now(), Events: []engine.Event{
		{Start: w.Start.Time, End: w.Start.Time, Status: "office", SubcalendarIDs: []engine.EmployeeID{"1"}},
		{Start: w.Start.Time, End: w.Start.Time, Status: "field", SubcalendarIDs: []engine.EmployeeID{"1"}},
	}}
	require.NoError(t, s.SaveWindow(ctx, first))

	second := store.CachedWindow{Window: w, FetchedAt: time.Now(), Events: []engine.Event{
		{Start: w.Start.Time, End: w.Start.Time, Status: "wfh", SubcalendarIDs: []engine.EmployeeID{"1"}},
	}}
	require.NoError(t, s.SaveWindow(ctx, second))

	loaded, ok, err := s.LoadWindow(ctx, w)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded.Events, 1)
	assert.Equal(t, "wfh", loaded.Events[0].Status)
}

func TestEmployees_RoundTripWithEnrollment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	enrolled := engine.NewDay(2024, time.June, 1)
	require.NoError(t, s.SaveEmployees(ctx, []engine.Employee{
		{ID: "42", Name: "Alice", EnrollmentDate: &enrolled},
		{ID: "43", Name: "Bob"},
	}))

	employees, err := s.LoadEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "Alice", employees[0].Name)
	require.NotNil(t, employees[0].EnrollmentDate)
	assert.Equal(t, "2024-06-01", employees[0].EnrollmentDate.String())
	assert.Nil(t, employees[1].EnrollmentDate)
}
