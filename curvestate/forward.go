// Package curvestate turns a discretized discount-factor curve into the market
// rates consumed by term-structure evolution models: simple forwards, coterminal
// swap rates and constant-maturity swap rates, together with their annuities.
//
// All extractors write into caller-owned buffers and touch only the suffix
// starting at firstValidIndex, so a caller can keep the already fixed prefix of
// a previous evaluation and recompute the tail as the curve evolves.
package curvestate

import (
	"golang.org/x/sync/errgroup"
)

// ForwardsFromDiscountRatios fills fwds[i] for i in [firstValidIndex, n), where
// n = len(fwds), with the simply-compounded forward rate between curve nodes i
// and i+1:
//
//	fwds[i] = (ds[i] - ds[i+1]) / (ds[i+1] * taus[i])
//
// so that ds[i+1] = ds[i] / (1 + fwds[i]*taus[i]) and a one-period coterminal
// swap rate equals the forward of its period. It requires len(taus) == n and
// len(ds) == n+1; on a shape error nothing is written.
func ForwardsFromDiscountRatios(firstValidIndex int, ds, taus, fwds []float64) error {
	const op = "ForwardsFromDiscountRatios"
	n := len(fwds)
	if err := checkCurve(op, ds, taus, n); err != nil {
		return err
	}
	if err := checkFirstValidIndex(op, firstValidIndex, n); err != nil {
		return err
	}

	forwardRange(firstValidIndex, n, ds, taus, fwds)
	return nil
}

// ForwardsFromDiscountRatiosParallel has the same contract as
// ForwardsFromDiscountRatios but splits [firstValidIndex, n) into disjoint chunks
// evaluated by at most workers goroutines. workers <= 1 runs sequentially.
func ForwardsFromDiscountRatiosParallel(firstValidIndex int, ds, taus, fwds []float64, workers int) error {
	const op = "ForwardsFromDiscountRatiosParallel"
	n := len(fwds)
	if err := checkCurve(op, ds, taus, n); err != nil {
		return err
	}
	if err := checkFirstValidIndex(op, firstValidIndex, n); err != nil {
		return err
	}

	span := n - firstValidIndex
	if workers <= 1 || span < 2 {
		forwardRange(firstValidIndex, n, ds, taus, fwds)
		return nil
	}
	if workers > span {
		workers = span
	}
	chunk := (span + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := firstValidIndex; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			forwardRange(lo, hi, ds, taus, fwds)
			return nil
		})
	}
	return g.Wait()
}

func forwardRange(lo, hi int, ds, taus, fwds []float64) {
	for i := lo; i < hi; i++ {
		fwds[i] = (ds[i] - ds[i+1]) / (ds[i+1] * taus[i])
	}
}
