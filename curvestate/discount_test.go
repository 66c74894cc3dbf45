package curvestate_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/curvestate/curvestate"
	"github.com/meenmo/curvestate/utils"
)

func TestLogLinearDiscount(t *testing.T) {
	t.Parallel()

	settlement := date(2025, 1, 1)
	oneYear := date(2026, 1, 1)
	twoYear := date(2027, 1, 1)
	src, err := curvestate.NewLogLinearDiscount(settlement, map[time.Time]float64{
		settlement: 1.0,
		oneYear:    0.97,
		twoYear:    0.93,
	}, utils.Act365F)
	require.NoError(t, err)

	assert.Equal(t, 0.97, src.DF(oneYear))

	// Halfway in time between pillars is the geometric mean.
	mid := settlement.AddDate(0, 0, 365+365/2)
	t1 := 365.0 / 365
	t2 := 730.0 / 365
	tm := float64(365+365/2) / 365
	want := 0.97 * math.Pow(0.93/0.97, (tm-t1)/(t2-t1))
	assert.InDelta(t, want, src.DF(mid), 1e-14)

	// Beyond the last pillar the last segment's forward is extended.
	far := date(2028, 1, 1)
	assert.Less(t, src.DF(far), 0.93)

	ds := curvestate.DiscountRatios(src, []time.Time{settlement, oneYear, twoYear})
	assert.Equal(t, []float64{1.0, 0.97, 0.93}, ds)
}

func TestNewLogLinearDiscount_Errors(t *testing.T) {
	t.Parallel()

	settlement := date(2025, 1, 1)
	_, err := curvestate.NewLogLinearDiscount(settlement, nil, utils.Act365F)
	require.Error(t, err)

	_, err = curvestate.NewLogLinearDiscount(settlement, map[time.Time]float64{settlement: 0}, utils.Act365F)
	require.Error(t, err)

	single, err := curvestate.NewLogLinearDiscount(settlement, map[time.Time]float64{settlement: 0.99}, utils.Act365F)
	require.NoError(t, err)
	assert.Equal(t, 0.99, single.DF(date(2030, 1, 1)))
}
