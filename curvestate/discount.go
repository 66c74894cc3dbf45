package curvestate

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvestate/utils"
)

// LogLinearDiscount interpolates given discount-factor pillars log-linearly in
// time measured from settlement. Outside the pillar range it extrapolates the
// nearest segment's flat continuously-compounded forward.
type LogLinearDiscount struct {
	settlement time.Time
	dayCount   utils.DayCount
	pillars    []time.Time
	dfs        map[time.Time]float64
}

// NewLogLinearDiscount copies the pillars; at least one is required and every
// DF must be positive.
func NewLogLinearDiscount(settlement time.Time, pillars map[time.Time]float64, dayCount utils.DayCount) (*LogLinearDiscount, error) {
	if len(pillars) == 0 {
		return nil, fmt.Errorf("NewLogLinearDiscount: no pillars")
	}
	c := &LogLinearDiscount{
		settlement: settlement,
		dayCount:   dayCount,
		pillars:    make([]time.Time, 0, len(pillars)),
		dfs:        make(map[time.Time]float64, len(pillars)),
	}
	for t, df := range pillars {
		if !(df > 0) {
			return nil, fmt.Errorf("NewLogLinearDiscount: non-positive DF %g at %s", df, utils.FormatDate(t))
		}
		c.pillars = append(c.pillars, t)
		c.dfs[t] = df
	}
	utils.SortDates(c.pillars)
	return c, nil
}

// DF implements DiscountSource.
func (c *LogLinearDiscount) DF(t time.Time) float64 {
	if df, ok := c.dfs[t]; ok {
		return df
	}
	if len(c.pillars) == 1 {
		return c.dfs[c.pillars[0]]
	}

	d1, d2 := utils.AdjacentDates(t, c.pillars)
	df1, df2 := c.dfs[d1], c.dfs[d2]
	t1 := utils.YearFraction(c.settlement, d1, c.dayCount)
	t2 := utils.YearFraction(c.settlement, d2, c.dayCount)
	if t2 == t1 {
		return df1
	}

	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-forwardRate*(utils.YearFraction(c.settlement, t, c.dayCount)-t1))
}
