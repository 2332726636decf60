// Package apperrors defines the typed failures surfaced by the revenue
// pipeline. The core never prints these; callers match them with errors.As
// and own the presentation.
package apperrors

import (
	"fmt"
	"time"
)

// InvalidDateError signals a malformed or unparsable calendar date.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Input)
}

// NotFoundError signals that geocoding produced no candidate for a city.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no coordinates found for city %q", e.City)
}

// ServiceUnavailableError signals a transport- or status-level failure of
// an external provider call. StatusCode is zero when the request never got
// a response.
type ServiceUnavailableError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s request returned status %d", e.Service, e.StatusCode)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// NoDataError signals that the weather provider had no data point for the
// requested instant.
type NoDataError struct {
	Instant time.Time
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no weather data available for %s", e.Instant.UTC().Format(time.RFC3339))
}

// IncompleteDataError signals a weather data point missing one of its
// required fields.
type IncompleteDataError struct {
	Field string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("weather data missing value for %s", e.Field)
}

// DuplicateError signals that a record for the (date, city) pair already
// exists.
type DuplicateError struct {
	Date string
	City string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("record for date %s and city %q already exists", e.Date, e.City)
}
