package utils

import (
	"fmt"
	"time"
)

// DayCount names a day count convention.
type DayCount string

const (
	Act360  DayCount = "ACT/360"
	Act365F DayCount = "ACT/365F"
	Thirty  DayCount = "30/360"
	ThirtyE DayCount = "30E/360"
)

// ParseDayCount validates a convention name.
func ParseDayCount(s string) (DayCount, error) {
	switch dc := DayCount(s); dc {
	case Act360, Act365F, Thirty, ThirtyE:
		return dc, nil
	case "":
		return Act365F, nil
	default:
		return "", fmt.Errorf("unsupported day count %q", s)
	}
}

// YearFraction computes year fraction between two dates using the specified day count convention.
// Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention DayCount) float64 {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case Thirty, ThirtyE:
		// D1 and D2 are capped at 30
		d1 := min(start.Day(), 30)
		d2 := min(end.Day(), 30)
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return Days(start, end) / 365.0
	}
}
