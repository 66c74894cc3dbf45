package curvestate

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ConstantMaturityFromDiscountRatios fills rates[i] and annuities[i], for i in
// [firstValidIndex, n), with the par rate and annuity of the swap covering the
// spanningForwards periods that start at i. Near the end of the curve the window
// is clipped at n rather than padded.
//
// The first annuity is summed directly; every later one slides the window by a
// period, dropping taus[i-1]*ds[i] and, while the window still fits in the curve,
// adding the period that enters it:
//
//	last         = min(i+spanningForwards, n)
//	annuities[i] = annuities[i-1] - taus[i-1]*ds[i] + taus[last-1]*ds[last]  (if i+spanningForwards <= n)
//	rates[i]     = (ds[i] - ds[last]) / annuities[i]
//
// spanningForwards == 0 is not rejected; it produces an empty annuity and NaN rates.
func ConstantMaturityFromDiscountRatios(spanningForwards, firstValidIndex int, ds, taus, rates, annuities []float64) error {
	const op = "ConstantMaturityFromDiscountRatios"
	n := len(rates)
	if err := checkCurve(op, ds, taus, n); err != nil {
		return err
	}
	if err := checkLen(op, "annuities", len(annuities), "len(rates)", n); err != nil {
		return err
	}
	if err := checkFirstValidIndex(op, firstValidIndex, n); err != nil {
		return err
	}
	if spanningForwards < 0 {
		return fmt.Errorf("%s: %w: spanningForwards=%d", op, ErrIndexOutOfRange, spanningForwards)
	}
	if firstValidIndex == n {
		return nil
	}

	k := firstValidIndex
	last := min(k+spanningForwards, n)
	annuity := floats.Dot(taus[k:last], ds[k+1:last+1])
	annuities[k] = annuity
	rates[k] = (ds[k] - ds[last]) / annuity

	for i := k + 1; i < n; i++ {
		end := i + spanningForwards
		last = min(end, n)
		annuity -= taus[i-1] * ds[i]
		if end <= n {
			annuity += taus[end-1] * ds[end]
		}
		annuities[i] = annuity
		rates[i] = (ds[i] - ds[last]) / annuity
	}
	return nil
}
