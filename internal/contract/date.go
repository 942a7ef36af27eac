package contract

import (
	"fmt"
	"time"
)

// DateLayout is the registry's wire format for contract dates
const DateLayout = "2006-01-02"

// DateParseError reports a contract date that is not YYYY-MM-DD text
type DateParseError struct {
	Field string
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// ParseDate parses YYYY-MM-DD text into a civil date (midnight UTC)
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &DateParseError{Field: field, Value: value, Err: err}
	}
	return t, nil
}

// Date builds a civil date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a civil date in the registry's format
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a civil date by whole days
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func minDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
