package curvestate

import (
	"fmt"
)

// CurveState holds the discount ratios of a curve on a fixed rate-time grid and
// the forwards and coterminal swap rates derived from them.
//
// The grid is immutable. Each SetDiscountRatios call recomputes only the periods
// from firstValidIndex onward, so entries before it keep the values of the call
// that last wrote them. A CurveState is not safe for concurrent use.
type CurveState struct {
	rateTimes []float64
	taus      []float64

	ds              []float64
	fwds            []float64
	cot             SwapRates
	firstValidIndex int
	set             bool
}

// NewCurveState builds a state on rateTimes, which must hold at least two
// strictly increasing times. Accrual fractions are the gaps between them.
func NewCurveState(rateTimes []float64) (*CurveState, error) {
	if len(rateTimes) < 2 {
		return nil, fmt.Errorf("NewCurveState: %w: need at least 2 rate times, got %d", ErrInvalidRateTimes, len(rateTimes))
	}
	taus := make([]float64, len(rateTimes)-1)
	for i := range taus {
		taus[i] = rateTimes[i+1] - rateTimes[i]
		if taus[i] <= 0 {
			return nil, fmt.Errorf("NewCurveState: %w: rateTimes[%d]=%g >= rateTimes[%d]=%g",
				ErrInvalidRateTimes, i, rateTimes[i], i+1, rateTimes[i+1])
		}
	}

	n := len(taus)
	return &CurveState{
		rateTimes: append([]float64(nil), rateTimes...),
		taus:      taus,
		ds:        make([]float64, n+1),
		fwds:      make([]float64, n),
		cot:       newSwapRates(n),
	}, nil
}

// NumberOfRates returns the number of accrual periods on the grid.
func (cs *CurveState) NumberOfRates() int { return len(cs.taus) }

// RateTimes returns a copy of the rate-time grid.
func (cs *CurveState) RateTimes() []float64 { return append([]float64(nil), cs.rateTimes...) }

// RateTaus returns a copy of the accrual fractions.
func (cs *CurveState) RateTaus() []float64 { return append([]float64(nil), cs.taus...) }

// FirstValidIndex returns the index passed to the last SetDiscountRatios call.
func (cs *CurveState) FirstValidIndex() int { return cs.firstValidIndex }

// SetDiscountRatios stores ds[firstValidIndex:] and recomputes forwards and
// coterminal swap rates from firstValidIndex onward. ds must have
// NumberOfRates()+1 entries; entries below firstValidIndex are ignored.
func (cs *CurveState) SetDiscountRatios(ds []float64, firstValidIndex int) error {
	const op = "CurveState.SetDiscountRatios"
	n := len(cs.taus)
	if err := checkLen(op, "ds", len(ds), "n+1", n+1); err != nil {
		return err
	}
	if err := checkFirstValidIndex(op, firstValidIndex, n); err != nil {
		return err
	}

	copy(cs.ds[firstValidIndex:], ds[firstValidIndex:])
	if err := ForwardsFromDiscountRatios(firstValidIndex, cs.ds, cs.taus, cs.fwds); err != nil {
		return err
	}
	if err := CoterminalFromDiscountRatios(firstValidIndex, cs.ds, cs.taus, cs.cot.Rates, cs.cot.Annuities); err != nil {
		return err
	}
	cs.firstValidIndex = firstValidIndex
	cs.set = true
	return nil
}

// DiscountRatio returns the stored discount factor of node i, 0 <= i <= n.
func (cs *CurveState) DiscountRatio(i int) (float64, error) {
	if err := cs.checkAccess("DiscountRatio", i, len(cs.ds)); err != nil {
		return 0, err
	}
	return cs.ds[i], nil
}

// Forward returns the forward rate of period i.
func (cs *CurveState) Forward(i int) (float64, error) {
	if err := cs.checkAccess("Forward", i, len(cs.fwds)); err != nil {
		return 0, err
	}
	return cs.fwds[i], nil
}

// CoterminalSwapRate returns the par rate of the swap from period i to the end.
func (cs *CurveState) CoterminalSwapRate(i int) (float64, error) {
	if err := cs.checkAccess("CoterminalSwapRate", i, len(cs.cot.Rates)); err != nil {
		return 0, err
	}
	return cs.cot.Rates[i], nil
}

// CoterminalSwapAnnuity returns the annuity of the swap from period i to the end.
func (cs *CurveState) CoterminalSwapAnnuity(i int) (float64, error) {
	if err := cs.checkAccess("CoterminalSwapAnnuity", i, len(cs.cot.Annuities)); err != nil {
		return 0, err
	}
	return cs.cot.Annuities[i], nil
}

// Forwards returns a copy of the forward rates; entries below FirstValidIndex
// are whatever an earlier call left there.
func (cs *CurveState) Forwards() ([]float64, error) {
	if !cs.set {
		return nil, fmt.Errorf("CurveState.Forwards: %w", ErrNoDiscountRatios)
	}
	return append([]float64(nil), cs.fwds...), nil
}

// ConstantMaturitySwapRates computes constant-maturity swap rates over windows
// of spanningForwards periods from the current discount ratios. Unlike forwards
// and coterminal rates they are not cached, since they depend on the window.
func (cs *CurveState) ConstantMaturitySwapRates(spanningForwards int) (SwapRates, error) {
	if !cs.set {
		return SwapRates{}, fmt.Errorf("CurveState.ConstantMaturitySwapRates: %w", ErrNoDiscountRatios)
	}
	return ConstantMaturityRates(spanningForwards, cs.firstValidIndex, cs.ds, cs.taus)
}

func (cs *CurveState) checkAccess(name string, i, size int) error {
	op := "CurveState." + name
	if !cs.set {
		return fmt.Errorf("%s: %w", op, ErrNoDiscountRatios)
	}
	if i < cs.firstValidIndex || i >= size {
		return fmt.Errorf("%s: %w: i=%d not in [%d, %d)", op, ErrIndexOutOfRange, i, cs.firstValidIndex, size)
	}
	return nil
}
