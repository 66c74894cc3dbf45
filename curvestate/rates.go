package curvestate

import "math"

// SwapRates holds par swap rates and their annuities, indexed by start period.
type SwapRates struct {
	Rates     []float64
	Annuities []float64
}

func newSwapRates(n int) SwapRates {
	return SwapRates{
		Rates:     make([]float64, n),
		Annuities: make([]float64, n),
	}
}

// ForwardRates allocates and returns the forward rates implied by ds and taus.
// Entries below firstValidIndex are zero.
func ForwardRates(firstValidIndex int, ds, taus []float64) ([]float64, error) {
	fwds := make([]float64, len(taus))
	if err := ForwardsFromDiscountRatios(firstValidIndex, ds, taus, fwds); err != nil {
		return nil, err
	}
	return fwds, nil
}

// CoterminalRates allocates and returns the coterminal swap rates and annuities.
func CoterminalRates(firstValidIndex int, ds, taus []float64) (SwapRates, error) {
	out := newSwapRates(len(taus))
	if err := CoterminalFromDiscountRatios(firstValidIndex, ds, taus, out.Rates, out.Annuities); err != nil {
		return SwapRates{}, err
	}
	return out, nil
}

// ConstantMaturityRates allocates and returns the constant-maturity swap rates
// and annuities for windows of spanningForwards periods.
func ConstantMaturityRates(spanningForwards, firstValidIndex int, ds, taus []float64) (SwapRates, error) {
	out := newSwapRates(len(taus))
	if err := ConstantMaturityFromDiscountRatios(spanningForwards, firstValidIndex, ds, taus, out.Rates, out.Annuities); err != nil {
		return SwapRates{}, err
	}
	return out, nil
}

// RoundTripDiscounts rebuilds the discount factors from ds0 and the forwards,
// ds[i+1] = ds[i] / (1 + fwds[i]*taus[i]). The result has len(fwds)+1 entries.
func RoundTripDiscounts(ds0 float64, fwds, taus []float64) ([]float64, error) {
	if err := checkLen("RoundTripDiscounts", "taus", len(taus), "len(fwds)", len(fwds)); err != nil {
		return nil, err
	}
	ds := make([]float64, len(fwds)+1)
	ds[0] = ds0
	for i, f := range fwds {
		ds[i+1] = ds[i] / (1 + f*taus[i])
	}
	return ds, nil
}

// MaxRoundTripError reports the largest relative difference between ds[i+1] and
// the value rebuilt node by node from ds[i], taus[i] and fwds[i], for i >= firstValidIndex.
func MaxRoundTripError(firstValidIndex int, ds, taus, fwds []float64) (float64, error) {
	const op = "MaxRoundTripError"
	n := len(fwds)
	if err := checkCurve(op, ds, taus, n); err != nil {
		return 0, err
	}
	if err := checkFirstValidIndex(op, firstValidIndex, n); err != nil {
		return 0, err
	}

	worst := 0.0
	for i := firstValidIndex; i < n; i++ {
		rebuilt := ds[i] / (1 + fwds[i]*taus[i])
		worst = math.Max(worst, math.Abs(rebuilt-ds[i+1])/ds[i+1])
	}
	return worst, nil
}
