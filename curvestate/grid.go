package curvestate

import (
	"fmt"
	"time"

	"github.com/meenmo/curvestate/calendar"
	"github.com/meenmo/curvestate/utils"
)

// GenerateRateDates returns periods+1 node dates: start followed by its
// freqMonths rolls, each adjusted Modified Following on cal.
func GenerateRateDates(start time.Time, freqMonths, periods int, cal calendar.CalendarID) ([]time.Time, error) {
	if freqMonths <= 0 {
		return nil, fmt.Errorf("GenerateRateDates: freqMonths must be positive, got %d", freqMonths)
	}
	if periods <= 0 {
		return nil, fmt.Errorf("GenerateRateDates: periods must be positive, got %d", periods)
	}

	dates := make([]time.Time, 0, periods+1)
	dates = append(dates, start)
	for i := 1; i <= periods; i++ {
		dates = append(dates, calendar.Adjust(cal, utils.AddMonth(start, freqMonths*i)))
	}
	return dates, nil
}

// AccrualFractions returns the year fraction of each period between consecutive
// node dates. Dates must be strictly increasing.
func AccrualFractions(dates []time.Time, dayCount utils.DayCount) ([]float64, error) {
	if err := checkDates("AccrualFractions", dates); err != nil {
		return nil, err
	}
	taus := make([]float64, len(dates)-1)
	for i := range taus {
		taus[i] = utils.YearFraction(dates[i], dates[i+1], dayCount)
	}
	return taus, nil
}

// RateTimesFromDates measures each node date from settlement in years.
func RateTimesFromDates(settlement time.Time, dates []time.Time, dayCount utils.DayCount) ([]float64, error) {
	if err := checkDates("RateTimesFromDates", dates); err != nil {
		return nil, err
	}
	times := make([]float64, len(dates))
	for i, d := range dates {
		times[i] = utils.YearFraction(settlement, d, dayCount)
	}
	return times, nil
}

// DiscountSource provides discount factors by date.
type DiscountSource interface {
	DF(t time.Time) float64
}

// DiscountRatios samples src at every node date.
func DiscountRatios(src DiscountSource, dates []time.Time) []float64 {
	ds := make([]float64, len(dates))
	for i, d := range dates {
		ds[i] = src.DF(d)
	}
	return ds
}

func checkDates(op string, dates []time.Time) error {
	if len(dates) < 2 {
		return fmt.Errorf("%s: %w: need at least 2 dates, got %d", op, ErrInvalidRateTimes, len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return fmt.Errorf("%s: %w: %s does not follow %s", op, ErrInvalidRateTimes,
				utils.FormatDate(dates[i]), utils.FormatDate(dates[i-1]))
		}
	}
	return nil
}
