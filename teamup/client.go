/*
Package teamup is the HTTP collaborator that feeds the engine.

PURPOSE:
  Fetches calendar events and the subcalendar roster from the Teamup-style
  scheduling API and converts the wire shapes into engine inputs. This layer
  owns everything the engine refuses to: I/O, authentication headers,
  request-level failures. The engine only ever sees resolved slices.

ERROR MODEL:
  Every failure here is a request-level error (network, auth, decode) and
  propagates as a wrapped error distinct from engine output. Data-quality
  problems inside successfully fetched events are NOT errors; the engine
  reports those as validation data.

SEE ALSO:
  - engine/engine.go: consumer of the fetched slices
  - store/: the cache that sits between this client and the handlers
*/
package teamup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/warp/utilization-engine/engine"
)

// tokenHeader carries the API key on every request.
const tokenHeader = "Teamup-Token"

var (
	// ErrUnauthorized is returned when the API rejects the token.
	ErrUnauthorized = errors.New("teamup: api key rejected")

	// ErrUnexpectedStatus is returned for any other non-200 response.
	ErrUnexpectedStatus = errors.New("teamup: unexpected response status")
)

// Client talks to one Teamup calendar.
type Client struct {
	baseURL     string
	calendarKey string
	apiKey      string
	httpClient  *http.Client
}

// NewClient builds a client for the given calendar key. A nil httpClient
// falls back to a default with a conservative timeout.
func NewClient(baseURL, calendarKey, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:     baseURL,
		calendarKey: calendarKey,
		apiKey:      apiKey,
		httpClient:  httpClient,
	}
}

// FetchEvents returns every event intersecting the window, converted to the
// engine's model.
func (c *Client) FetchEvents(ctx context.Context, window engine.Window) ([]engine.Event, error) {
	query := url.Values{}
	query.Set("startDate", window.Start.String())
	query.Set("endDate", window.End.String())

	var payload eventsResponse
	if err := c.get(ctx, "/events", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch events %s: %w", window, err)
	}

	events := make([]engine.Event, 0, len(payload.Events))
	for _, we := range payload.Events {
		ev, err := we.toEngine()
		if err != nil {
			return nil, fmt.Errorf("fetch events %s: event %s: %w", window, we.ID, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// FetchSubcalendars returns the roster: one employee per subcalendar, with
// the subcalendar creation date as the enrollment date when present.
func (c *Client) FetchSubcalendars(ctx context.Context) ([]engine.Employee, error) {
	var payload subcalendarsResponse
	if err := c.get(ctx, "/subcalendars", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch subcalendars: %w", err)
	}

	employees := make([]engine.Employee, 0, len(payload.Subcalendars))
	for _, sc := range payload.Subcalendars {
		employees = append(employees, sc.toEngine())
	}
	return employees, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s%s", c.baseURL, c.calendarKey, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type eventsResponse struct {
	Events []wireEvent `json:"events"`
}

type wireEvent struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	StartDt        string  `json:"start_dt"`
	EndDt          string  `json:"end_dt"`
	AllDay         bool    `json:"all_day"`
	SubcalendarIDs []int64 `json:"subcalendar_ids"`
	Custom         struct {
		Status string `json:"status"`
	} `json:"custom"`
}

func (we wireEvent) toEngine() (engine.Event, error) {
	start, err := parseWireTime(we.StartDt)
	if err != nil {
		return engine.Event{}, fmt.Errorf("bad start_dt %q: %w", we.StartDt, err)
	}
	end, err := parseWireTime(we.EndDt)
	if err != nil {
		return engine.Event{}, fmt.Errorf("bad end_dt %q: %w", we.EndDt, err)
	}
	// All-day events end at midnight of the following day on the wire; pull
	// the end back so the inclusive day span is correct.
	if we.AllDay && end.After(start) {
		end = end.Add(-time.Second)
	}

	ids := make([]engine.EmployeeID, len(we.SubcalendarIDs))
	for i, id := range we.SubcalendarIDs {
		ids[i] = engine.EmployeeID(strconv.FormatInt(id, 10))
	}

	return engine.Event{
		Start:          start,
		End:            end,
		Status:         we.Custom.Status,
		Title:          we.Title,
		SubcalendarIDs: ids,
	}, nil
}

// parseWireTime accepts the API's RFC3339 timestamps and the date-only form
// used by some all-day events.
func parseWireTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

type subcalendarsResponse struct {
	Subcalendars []wireSubcalendar `json:"subcalendars"`
}

type wireSubcalendar struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CreationDt string `json:"creation_dt"`
}

func (sc wireSubcalendar) toEngine() engine.Employee {
	emp := engine.Employee{
		ID:   engine.EmployeeID(strconv.FormatInt(sc.ID, 10)),
		Name: sc.Name,
	}
	// A missing or malformed creation date means "always enrolled".
	if t, err := parseWireTime(sc.CreationDt); err == nil {
		enrolled := engine.DayOf(t)
		emp.EnrollmentDate = &enrolled
	}
	return emp
}
