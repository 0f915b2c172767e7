package gyro

import "fmt"

// DimensionMismatchError indicates operands of unequal length passed to a
// binary operation. It always signals a caller bug: the engine never infers
// or coerces dimensions, so this error is fatal and must not be retried.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
