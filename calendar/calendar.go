package calendar

import (
	"fmt"
	"time"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	NONE   CalendarID = "NONE"
	TARGET CalendarID = "TARGET"
	USD    CalendarID = "USD"
	GBP    CalendarID = "GBP"
)

type monthDay struct {
	month time.Month
	day   int
}

// Fixed-date holidays only. Moveable feasts and weekday rules (Easter, Thanksgiving,
// bank holiday Mondays) are not modelled.
var fixedHolidays = map[CalendarID][]monthDay{
	TARGET: {{time.January, 1}, {time.May, 1}, {time.December, 25}, {time.December, 26}},
	USD:    {{time.January, 1}, {time.June, 19}, {time.July, 4}, {time.November, 11}, {time.December, 25}},
	GBP:    {{time.January, 1}, {time.December, 25}, {time.December, 26}},
}

// Parse maps a calendar name to its ID. The empty string is NONE.
func Parse(s string) (CalendarID, error) {
	switch id := CalendarID(s); id {
	case "":
		return NONE, nil
	case NONE, TARGET, USD, GBP:
		return id, nil
	default:
		return "", fmt.Errorf("unknown calendar %q", s)
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	for _, h := range fixedHolidays[cal] {
		if t.Month() == h.month && t.Day() == h.day {
			return true
		}
	}
	return false
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	adjusted := AdjustFollowing(cal, t)
	if adjusted.Month() == origMonth {
		return adjusted
	}
	return AddBusinessDays(cal, t, -1)
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}
