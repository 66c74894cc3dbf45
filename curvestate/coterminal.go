package curvestate

// CoterminalFromDiscountRatios fills rates[i] and annuities[i], for i in
// [firstValidIndex, n), with the par rate and annuity of the swap running from
// period i to the last period n-1, where n = len(rates).
//
// The annuity is built backwards from the one-period swap at n-1:
//
//	annuities[n-1] = taus[n-1] * ds[n]
//	annuities[i]   = annuities[i+1] + taus[i] * ds[i+1]
//	rates[i]       = (ds[i] - ds[n]) / annuities[i]
//
// The loop runs in strictly decreasing index order.
func CoterminalFromDiscountRatios(firstValidIndex int, ds, taus, rates, annuities []float64) error {
	const op = "CoterminalFromDiscountRatios"
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
	if firstValidIndex == n {
		return nil
	}

	terminal := ds[n]
	annuity := taus[n-1] * terminal
	annuities[n-1] = annuity
	rates[n-1] = (ds[n-1] - terminal) / annuity

	for i := n - 2; i >= firstValidIndex; i-- {
		annuity += taus[i] * ds[i+1]
		annuities[i] = annuity
		rates[i] = (ds[i] - terminal) / annuity
	}
	return nil
}
