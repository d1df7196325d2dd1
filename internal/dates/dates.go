package dates

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Layouts accepted after the relative tokens, tried in order. Month-first
// wins when a slash date is ambiguous.
var (
	dateTimeLayouts = []string{
		"2006-1-2 15:04",
		"1/2/2006 15:04",
		"2/1/2006 15:04",
	}
	dateLayouts = []string{
		"2006-1-2",
		"1/2/2006",
		"2/1/2006",
	}
)

// EndOfDay returns 23:59:59 local time on t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return now.With(t.In(time.Local)).EndOfDay().Truncate(time.Second)
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return now.With(t.In(time.Local)).BeginningOfDay()
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// DaysBetween counts calendar days from `from` to `to` in local time.
// Negative when `to` is earlier.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.In(time.Local).Date()
	ty, tm, td := to.In(time.Local).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Parse interprets free-form due date input relative to ref. It returns
// false when nothing matches.
func Parse(input string, ref time.Time) (time.Time, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, false
	}

	switch input {
	case "today":
		return EndOfDay(ref), true
	case "tomorrow":
		return EndOfDay(ref.AddDate(0, 0, 1)), true
	case "next week":
		return EndOfDay(ref.AddDate(0, 0, 7)), true
	case "next month":
		return EndOfDay(ref.AddDate(0, 0, 30)), true
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return EndOfDay(t), true
		}
	}
	return time.Time{}, false
}
