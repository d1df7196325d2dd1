package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownFrequency = errors.New("unknown recurring frequency")

// Frequency is the recurrence rule of a task. The zero value means the task
// does not repeat.
type Frequency int

const (
	FrequencyNone Frequency = iota
	Daily
	Weekdays
	Weekly
	Monthly
	Yearly
)

var frequencyNames = map[Frequency]string{
	Daily:    "Daily",
	Weekdays: "Weekdays",
	Weekly:   "Weekly",
	Monthly:  "Monthly",
	Yearly:   "Yearly",
}

// String returns the persisted literal, or "" for FrequencyNone.
func (f Frequency) String() string {
	return frequencyNames[f]
}

// ParseFrequency reads the persisted literal. An empty string is
// FrequencyNone; anything unrecognised is an error.
func ParseFrequency(s string) (Frequency, error) {
	if s == "" {
		return FrequencyNone, nil
	}
	for f, name := range frequencyNames {
		if name == s {
			return f, nil
		}
	}
	return FrequencyNone, fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
}

// Next returns the due date of the instance following one due at from.
// Monthly and Yearly are fixed 30 and 365 day offsets.
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekdays:
		next := from
		for {
			next = next.AddDate(0, 0, 1)
			if wd := next.Weekday(); wd != time.Saturday && wd != time.Sunday {
				return next
			}
		}
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Monthly:
		return from.AddDate(0, 0, 30)
	case Yearly:
		return from.AddDate(0, 0, 365)
	default:
		return from
	}
}
