package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// OnDate reports whether t falls on the YYYY-MM-DD date in loc.
func OnDate(t time.Time, date string, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(t.In(loc)) == date
}

// ResolveLocation returns the location for tz, falling back to UTC when empty or unknown.
func ResolveLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
