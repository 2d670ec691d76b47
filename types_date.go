package foliotrack

import "github.com/PhDFlo/foliotrack/date"

// Date is the calendar-date type used throughout the engine.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a Date from an ISO-8601 string like "2025-07-01".
func ParseDate(s string) (Date, error) { return date.Parse(s) }
