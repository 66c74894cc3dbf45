package curvestate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/curvestate/curvestate"
)

func TestCoterminalFromDiscountRatios_Example(t *testing.T) {
	t.Parallel()

	cot, err := curvestate.CoterminalRates(0, exampleDS, exampleTaus)
	require.NoError(t, err)

	assert.InDelta(t, 0.94, cot.Annuities[2], 1e-12)
	assert.InDelta(t, 1.91, cot.Annuities[1], 1e-12)
	assert.InDelta(t, 2.90, cot.Annuities[0], 1e-12)

	assert.InDelta(t, 0.03191, cot.Rates[2], 1e-5)
	assert.InDelta(t, 0.05/1.91, cot.Rates[1], 1e-12)
	assert.InDelta(t, 0.06/2.90, cot.Rates[0], 1e-12)
	assert.InDelta(t, 0.02618, cot.Rates[1], 1e-5)
	assert.InDelta(t, 0.02069, cot.Rates[0], 1e-5)
}

func TestCoterminalFromDiscountRatios_TerminalIsForward(t *testing.T) {
	t.Parallel()

	ds, taus := longCurve(40)
	n := len(taus)

	fwds, err := curvestate.ForwardRates(0, ds, taus)
	require.NoError(t, err)
	cot, err := curvestate.CoterminalRates(0, ds, taus)
	require.NoError(t, err)

	assert.InDelta(t, fwds[n-1], cot.Rates[n-1], 1e-14)
	assert.InDelta(t, taus[n-1]*ds[n], cot.Annuities[n-1], 1e-15)
}

func TestCoterminalFromDiscountRatios_MatchesDirectSum(t *testing.T) {
	t.Parallel()

	ds, taus := longCurve(60)
	n := len(taus)
	cot, err := curvestate.CoterminalRates(0, ds, taus)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		annuity := 0.0
		for j := i; j < n; j++ {
			annuity += taus[j] * ds[j+1]
		}
		assert.InDelta(t, annuity, cot.Annuities[i], 1e-12, "annuity %d", i)
		assert.InDelta(t, (ds[i]-ds[n])/annuity, cot.Rates[i], 1e-12, "rate %d", i)
		if i > 0 {
			assert.Greater(t, cot.Annuities[i-1], cot.Annuities[i])
		}
	}
}

func TestCoterminalFromDiscountRatios_FirstValidIndex(t *testing.T) {
	t.Parallel()

	ds, taus := longCurve(12)
	full, err := curvestate.CoterminalRates(0, ds, taus)
	require.NoError(t, err)

	rates := make([]float64, 12)
	annuities := make([]float64, 12)
	for i := range rates {
		rates[i], annuities[i] = -1, -1
	}
	// Prefix values must neither be written nor read.
	ds = append([]float64(nil), ds...)
	for i := 0; i < 5; i++ {
		ds[i] = -100
	}
	require.NoError(t, curvestate.CoterminalFromDiscountRatios(5, ds, taus, rates, annuities))

	for i := 0; i < 5; i++ {
		assert.Equal(t, -1.0, rates[i])
		assert.Equal(t, -1.0, annuities[i])
	}
	for i := 5; i < 12; i++ {
		assert.Equal(t, full.Rates[i], rates[i], "rate %d", i)
		assert.Equal(t, full.Annuities[i], annuities[i], "annuity %d", i)
	}
}

func TestCoterminalFromDiscountRatios_EmptyRange(t *testing.T) {
	t.Parallel()

	rates := []float64{7, 7, 7}
	annuities := []float64{7, 7, 7}
	require.NoError(t, curvestate.CoterminalFromDiscountRatios(3, exampleDS, exampleTaus, rates, annuities))
	assert.Equal(t, []float64{7, 7, 7}, rates)
	assert.Equal(t, []float64{7, 7, 7}, annuities)

	_, err := curvestate.CoterminalRates(0, []float64{1}, nil)
	require.NoError(t, err)
}

func TestCoterminalFromDiscountRatios_ShapeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ds        []float64
		taus      []float64
		rates     []float64
		annuities []float64
		want      string
	}{
		{
			name:      "taus",
			ds:        exampleDS,
			taus:      []float64{1, 1},
			rates:     make([]float64, 3),
			annuities: make([]float64, 3),
			want:      "len(taus)=2 != n=3",
		},
		{
			name:      "annuities",
			ds:        exampleDS,
			taus:      exampleTaus,
			rates:     make([]float64, 3),
			annuities: make([]float64, 4),
			want:      "len(annuities)=4 != len(rates)=3",
		},
		{
			name:      "ds",
			ds:        exampleDS[:3],
			taus:      exampleTaus,
			rates:     make([]float64, 3),
			annuities: make([]float64, 3),
			want:      "len(ds)=3 != n+1=4",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := curvestate.CoterminalFromDiscountRatios(0, tt.ds, tt.taus, tt.rates, tt.annuities)
			require.ErrorIs(t, err, curvestate.ErrShapeMismatch)
			assert.Contains(t, err.Error(), "CoterminalFromDiscountRatios")
			assert.Contains(t, err.Error(), tt.want)
			for i := range tt.rates {
				assert.Zero(t, tt.rates[i])
			}
			for i := range tt.annuities {
				assert.Zero(t, tt.annuities[i])
			}
		})
	}
}
