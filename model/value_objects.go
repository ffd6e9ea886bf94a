// Package model provides value objects for API parameter validation.
package model

import (
	"fmt"
	"strings"
	"time"
)

// WindowWeeks represents the calendar window length in complete weeks.
type WindowWeeks struct {
	value int
}

// DefaultWindowWeeks is the trailing window rendered when the caller does
// not ask for a specific length.
const DefaultWindowWeeks = 26

// maxWindowWeeks caps the window at two years of columns.
const maxWindowWeeks = 104

// NewWindowWeeks creates a window length value object from a query string.
func NewWindowWeeks(s string) (*WindowWeeks, error) {
	if s == "" {
		return &WindowWeeks{value: DefaultWindowWeeks}, nil
	}
	weeks, err := parseInt(s)
	if err != nil {
		return nil, fmt.Errorf("invalid weeks parameter: must be a positive integer")
	}
	if weeks < 1 {
		return nil, fmt.Errorf("weeks must be greater than 0")
	}
	if weeks > maxWindowWeeks {
		weeks = maxWindowWeeks
	}
	return &WindowWeeks{value: weeks}, nil
}

// NewWindowWeeksWithDefault behaves like NewWindowWeeks but substitutes
// def when the caller passes no value. The default is subject to the
// same bounds as an explicit value.
func NewWindowWeeksWithDefault(s string, def int) (*WindowWeeks, error) {
	if s != "" {
		return NewWindowWeeks(s)
	}
	if def < 1 {
		return nil, fmt.Errorf("weeks must be greater than 0")
	}
	if def > maxWindowWeeks {
		def = maxWindowWeeks
	}
	return &WindowWeeks{value: def}, nil
}

// Int returns the window length in weeks.
func (w *WindowWeeks) Int() int {
	return w.value
}

// Lookback represents the trailing day count inspected for the
// most-frequent-recent-emotion highlight.
type Lookback struct {
	value int
}

// DefaultLookback is the product default for highlight computation.
const DefaultLookback = 15

// NewLookback creates a lookback value object from a query string.
func NewLookback(s string) (*Lookback, error) {
	if s == "" {
		return &Lookback{value: DefaultLookback}, nil
	}
	n, err := parseInt(s)
	if err != nil {
		return nil, fmt.Errorf("invalid lookback parameter: must be a positive integer")
	}
	if n < 1 {
		return nil, fmt.Errorf("lookback must be greater than 0")
	}
	return &Lookback{value: n}, nil
}

// Int returns the lookback length in days.
func (l *Lookback) Int() int {
	return l.value
}

// TimezoneMode selects the calendar-day convention used when collapsing
// timestamps to date keys. The product has not settled on one convention,
// so both are supported and the choice is explicit configuration.
type TimezoneMode string

const (
	// TimezoneUTC collapses timestamps to UTC calendar days.
	TimezoneUTC TimezoneMode = "utc"
	// TimezoneLocal collapses timestamps to server-local calendar days.
	TimezoneLocal TimezoneMode = "local"
)

// NewTimezoneMode creates a timezone mode from a configuration string.
func NewTimezoneMode(s string) (TimezoneMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(TimezoneUTC):
		return TimezoneUTC, nil
	case string(TimezoneLocal):
		return TimezoneLocal, nil
	default:
		return "", fmt.Errorf("invalid timezone mode %q: use %q or %q", s, TimezoneUTC, TimezoneLocal)
	}
}

// Location returns the time.Location the mode resolves days in.
func (m TimezoneMode) Location() *time.Location {
	if m == TimezoneLocal {
		return time.Local
	}
	return time.UTC
}

// UserID represents a dashboard user identifier value object.
type UserID struct {
	value string
}

// NewUserID creates a user ID value object from a path parameter.
func NewUserID(s string) (*UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if strings.ContainsAny(s, " /") {
		return nil, fmt.Errorf("user ID cannot contain spaces or slashes")
	}
	return &UserID{value: s}, nil
}

// String returns the user ID string.
func (u *UserID) String() string {
	return u.value
}

// parseInt converts a string to an integer and handles errors.
func parseInt(s string) (int, error) {
	var value int
	if _, err := fmt.Sscanf(s, "%d", &value); err != nil {
		return 0, err
	}
	return value, nil
}
