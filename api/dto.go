/*
dto.go - Data Transfer Objects for the dashboard API

PURPOSE:
  Defines the JSON structures returned to the dashboard frontend. These
  types decouple the engine's internal model from the API contract: engine
  fields can be renamed or reorganized without breaking the charts and the
  table that consume this JSON.

SHAPES:
  UtilizationResponse: everything one dashboard render needs - per-employee
  results (table rows + tooltips), a cross-employee chart aggregate, and the
  window echo.

SEE ALSO:
  - handlers.go: builds these from engine.Result values
*/
package api

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/utilization-engine/engine"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents a roster entry.
type EmployeeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EnrollmentDate string `json:"enrollment_date,omitempty"`
}

// CategoryCountDTO mirrors engine.CategoryCount with rounded values.
type CategoryCountDTO struct {
	Weekday float64 `json:"weekday"`
	Weekend float64 `json:"weekend"`
}

// UtilizationDTO pairs a percentage with its one-decimal display string.
type UtilizationDTO struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ValidationDTO mirrors engine.ValidationReport.
type ValidationDTO struct {
	IsValid          bool     `json:"is_valid"`
	CategorySum      float64  `json:"category_sum"`
	TotalWeekdays    float64  `json:"total_weekdays"`
	Difference       float64  `json:"difference"`
	UnaccountedDates []string `json:"unaccounted_dates"`
}

// HolidayWarningDTO mirrors engine.HolidayWarning.
type HolidayWarningDTO struct {
	Date     string   `json:"date"`
	Statuses []string `json:"statuses"`
}

// EmployeeUtilizationDTO is one table row plus its tooltip payload.
type EmployeeUtilizationDTO struct {
	Employee        EmployeeDTO                 `json:"employee"`
	Exempt          bool                        `json:"exempt"`
	Totals          map[string]CategoryCountDTO `json:"totals"`
	CategoryDates   map[string][]string         `json:"category_dates"`
	UnknownDates    []string                    `json:"unknown_dates"`
	HolidayWarnings []HolidayWarningDTO         `json:"holiday_warnings"`
	Validation      ValidationDTO               `json:"validation"`
	TotalWeekdays   float64                     `json:"total_weekdays"`
	TotalWeekends   float64                     `json:"total_weekends"`
	Weekday         UtilizationDTO              `json:"weekday_utilization"`
	Weekend         UtilizationDTO              `json:"weekend_utilization"`
}

// ChartSliceDTO is one category's aggregate across all employees.
type ChartSliceDTO struct {
	Category string  `json:"category"`
	Weekday  float64 `json:"weekday"`
	Weekend  float64 `json:"weekend"`
}

// UtilizationResponse is the full payload for one dashboard render.
type UtilizationResponse struct {
	Start       string                   `json:"start"`
	End         string                   `json:"end"`
	GeneratedAt string                   `json:"generated_at"`
	Results     []EmployeeUtilizationDTO `json:"results"`
	Chart       []ChartSliceDTO          `json:"chart"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// round2 trims float noise (0.16666... day fractions accumulate) to two
// decimals for display; the engine keeps full precision internally.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func toEmployeeDTO(emp engine.Employee) EmployeeDTO {
	dto := EmployeeDTO{ID: string(emp.ID), Name: emp.Name}
	if emp.EnrollmentDate != nil {
		dto.EnrollmentDate = emp.EnrollmentDate.String()
	}
	return dto
}

func toResultDTO(r engine.Result) EmployeeUtilizationDTO {
	totals := make(map[string]CategoryCountDTO, len(r.Totals))
	for category, count := range r.Totals {
		totals[string(category)] = CategoryCountDTO{
			Weekday: round2(count.Weekday),
			Weekend: round2(count.Weekend),
		}
	}

	dates := make(map[string][]string, len(r.CategoryDates))
	for category, list := range r.CategoryDates {
		dates[string(category)] = list
	}

	warnings := make([]HolidayWarningDTO, len(r.HolidayWarnings))
	for i, w := range r.HolidayWarnings {
		statuses := make([]string, len(w.Statuses))
		for j, s := range w.Statuses {
			statuses[j] = string(s)
		}
		warnings[i] = HolidayWarningDTO{Date: w.Date, Statuses: statuses}
	}

	return EmployeeUtilizationDTO{
		Employee:        toEmployeeDTO(r.Employee),
		Exempt:          r.Exempt,
		Totals:          totals,
		CategoryDates:   dates,
		UnknownDates:    r.UnknownDates,
		HolidayWarnings: warnings,
		Validation: ValidationDTO{
			IsValid:          r.Validation.IsValid,
			CategorySum:      round2(r.Validation.CategorySum),
			TotalWeekdays:    r.Validation.TotalWeekdays,
			Difference:       round2(r.Validation.Difference),
			UnaccountedDates: r.Validation.UnaccountedDates,
		},
		TotalWeekdays: r.TotalWeekdays,
		TotalWeekends: r.TotalWeekends,
		Weekday:       UtilizationDTO{Value: round2(r.WeekdayUtilization), Label: r.WeekdayUtilizationLabel},
		Weekend:       UtilizationDTO{Value: round2(r.WeekendUtilization), Label: r.WeekendUtilizationLabel},
	}
}

// toChart aggregates category totals across all employees, sorted by
// category name for a stable chart legend.
func toChart(results []engine.Result) []ChartSliceDTO {
	type agg struct{ weekday, weekend float64 }
	byCategory := make(map[engine.Category]agg)
	for _, r := range results {
		for category, count := range r.Totals {
			a := byCategory[category]
			a.weekday += count.Weekday
			a.weekend += count.Weekend
			byCategory[category] = a
		}
	}

	slices := make([]ChartSliceDTO, 0, len(byCategory))
	for category, a := range byCategory {
		slices = append(slices, ChartSliceDTO{
			Category: string(category),
			Weekday:  round2(a.weekday),
			Weekend:  round2(a.weekend),
		})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].Category < slices[j].Category })
	return slices
}

func toUtilizationResponse(window engine.Window, results []engine.Result) UtilizationResponse {
	dtos := make([]EmployeeUtilizationDTO, len(results))
	for i, r := range results {
		dtos[i] = toResultDTO(r)
	}
	return UtilizationResponse{
		Start:       window.Start.String(),
		End:         window.End.String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Results:     dtos,
		Chart:       toChart(results),
	}
}
