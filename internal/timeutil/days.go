package timeutil

import "time"

// Day is one entry of the date tabs above the board.
type Day struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// Days returns count consecutive days starting at today in loc, labelled Today, Tomorrow,
// then by weekday.
func Days(now time.Time, loc *time.Location, count int) []Day {
	if loc == nil {
		loc = time.UTC
	}
	if count <= 0 {
		return []Day{}
	}
	today := StartOfDay(now.In(loc))
	out := make([]Day, 0, count)
	for i := 0; i < count; i++ {
		d := today.AddDate(0, 0, i)
		label := d.Weekday().String()
		switch i {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		}
		out = append(out, Day{Date: FormatDate(d), Label: label})
	}
	return out
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ShiftDate moves a YYYY-MM-DD date by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, days)), nil
}

// NotBefore reports whether date is on or after today in loc. Past dates cannot be selected.
func NotBefore(date string, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return false
	}
	return !parsed.Before(StartOfDay(now.In(loc)))
}
