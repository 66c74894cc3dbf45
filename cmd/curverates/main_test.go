package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/curvestate/logger"
)

func TestProcess_DirectCurve(t *testing.T) {
	out, err := process(ratesInput{
		TaskID:           "example",
		SpanningForwards: 2,
		DiscountFactors:  []float64{1.00, 0.99, 0.97, 0.94},
		AccrualFractions: []float64{1, 1, 1},
	}, false, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "example", out.TaskID)
	require.Len(t, out.ForwardRates, 3)
	assert.InDelta(t, 0.01010, out.ForwardRates[0], 1e-5)
	assert.InDelta(t, 2.90, out.CoterminalAnnuities[0], 1e-12)
	assert.InDelta(t, 0.02069, out.CoterminalRates[0], 1e-5)
	assert.InDelta(t, 1.96, out.CMSAnnuities[0], 1e-12)
	assert.InDelta(t, 0.01531, out.CMSRates[0], 1e-5)
	assert.Less(t, out.MaxRoundTripError, 1e-14)
}

func TestProcess_SkipsCMSWithoutWindow(t *testing.T) {
	out, err := process(ratesInput{
		DiscountFactors:  []float64{1.00, 0.99, 0.97, 0.94},
		AccrualFractions: []float64{1, 1, 1},
		FirstValidIndex:  1,
	}, true, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, out.CMSRates)
	assert.Zero(t, out.ForwardRates[0])
	assert.InDelta(t, 1.91, out.CoterminalAnnuities[1], 1e-12)
}

func TestProcess_ShapeError(t *testing.T) {
	_, err := process(ratesInput{
		DiscountFactors:  []float64{1.00, 0.99},
		AccrualFractions: []float64{1, 1, 1},
	}, false, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestProcess_DegenerateCurve(t *testing.T) {
	_, err := process(ratesInput{
		DiscountFactors:  []float64{1.00, 0},
		AccrualFractions: []float64{1},
	}, false, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not finite")
}

func TestProcess_PillarsOnRateDates(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Level: "debug"}, &buf)

	out, err := process(ratesInput{
		TaskID:         "dates",
		SettlementDate: "2025-01-02",
		RateDates:      []string{"2025-01-02", "2025-07-02", "2026-01-02"},
		DayCount:       "ACT/365F",
		Pillars: map[string]float64{
			"2025-01-02": 1.0,
			"2026-01-02": 0.96,
		},
	}, false, log)
	require.NoError(t, err)
	require.Len(t, out.ForwardRates, 2)
	assert.Greater(t, out.ForwardRates[0], 0.0)
	assert.InDelta(t, out.ForwardRates[0], out.ForwardRates[1], 1e-3)
	assert.Contains(t, buf.String(), "rates computed")
}

func TestProcess_GeneratedSchedule(t *testing.T) {
	out, err := process(ratesInput{
		SettlementDate:   "2025-01-02",
		FreqMonths:       6,
		Periods:          4,
		Calendar:         "TARGET",
		DayCount:         "ACT/360",
		SpanningForwards: 2,
		DiscountFactors:  []float64{1, 0.99, 0.98, 0.97, 0.96},
	}, false, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, out.CMSRates, 4)

	_, err = process(ratesInput{
		SettlementDate:  "2025-01-02",
		FreqMonths:      6,
		Periods:         4,
		Calendar:        "MARS",
		DiscountFactors: []float64{1, 0.99, 0.98, 0.97, 0.96},
	}, false, zerolog.Nop())
	require.Error(t, err)
}

func TestProcess_MissingInputs(t *testing.T) {
	_, err := process(ratesInput{}, false, zerolog.Nop())
	require.Error(t, err)

	_, err = process(ratesInput{RateDates: []string{"2025-01-02", "2025-07-02"}}, false, zerolog.Nop())
	require.Error(t, err)
}

func TestParseInputs(t *testing.T) {
	inputs, isArray, err := parseInputs([]byte(`  {"task_id":"a","discount_factors":[1,0.99],"accrual_fractions":[1]}`))
	require.NoError(t, err)
	assert.False(t, isArray)
	require.Len(t, inputs, 1)
	assert.Equal(t, "a", inputs[0].TaskID)

	inputs, isArray, err = parseInputs([]byte(`[{"task_id":"a"},{"task_id":"b","spanning_forwards":3}]`))
	require.NoError(t, err)
	assert.True(t, isArray)
	require.Len(t, inputs, 2)
	assert.Equal(t, 3, inputs[1].SpanningForwards)

	_, _, err = parseInputs([]byte("   "))
	require.Error(t, err)
	_, _, err = parseInputs([]byte("[]"))
	require.Error(t, err)
}
