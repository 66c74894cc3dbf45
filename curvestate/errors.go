package curvestate

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when input and output sequences disagree in length.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIndexOutOfRange is returned for a negative or past-the-end firstValidIndex,
	// or a negative window width.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoDiscountRatios is returned by CurveState accessors before SetDiscountRatios.
	ErrNoDiscountRatios = errors.New("discount ratios not set")

	// ErrInvalidRateTimes is returned when rate times are too few or not strictly increasing.
	ErrInvalidRateTimes = errors.New("invalid rate times")
)

// checkLen fails with ErrShapeMismatch naming both quantities when got != want.
func checkLen(op, gotName string, got int, wantName string, want int) error {
	if got != want {
		return fmt.Errorf("%s: %w: len(%s)=%d != %s=%d", op, ErrShapeMismatch, gotName, got, wantName, want)
	}
	return nil
}

// checkCurve validates the ds/taus pair against n output slots.
func checkCurve(op string, ds, taus []float64, n int) error {
	if err := checkLen(op, "taus", len(taus), "n", n); err != nil {
		return err
	}
	return checkLen(op, "ds", len(ds), "n+1", n+1)
}

func checkFirstValidIndex(op string, firstValidIndex, n int) error {
	if firstValidIndex < 0 || firstValidIndex > n {
		return fmt.Errorf("%s: %w: firstValidIndex=%d not in [0, %d]", op, ErrIndexOutOfRange, firstValidIndex, n)
	}
	return nil
}
