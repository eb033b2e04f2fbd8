package domain

import (
	"fmt"
	"time"
)

// Weekday represents a day of the week as stored in the database
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays all days of the week in ISO order (Monday first)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday converts a string into a Weekday
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday: %q", s)
}

// WeekdayFromTime converts time.Weekday into a Weekday
func WeekdayFromTime(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ToTimeWeekday converts a Weekday into time.Weekday
func (w Weekday) ToTimeWeekday() time.Weekday {
	switch w {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// DatesBetween returns every date within [from, to] (inclusive) that falls
// on this weekday. Dates are normalized to midnight UTC.
func (w Weekday) DatesBetween(from, to time.Time) []time.Time {
	dates := make([]time.Time, 0)
	if to.Before(from) {
		return dates
	}

	current := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	// Advance to the first occurrence of the weekday
	for current.Weekday() != w.ToTimeWeekday() {
		current = current.AddDate(0, 0, 1)
		if current.After(end) {
			return dates
		}
	}

	for !current.After(end) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 7)
	}
	return dates
}
