package solve

import (
	"errors"
	"fmt"
)

// Domain errors for solve operations.
var (
	// ErrUnknownMethod indicates a method name not present in the registry.
	ErrUnknownMethod = errors.New("solve: unknown method")

	// ErrInvalidSpan indicates a time span with non-positive length.
	ErrInvalidSpan = errors.New("solve: invalid time span")

	// ErrInvalidState indicates a state with NaN or Inf entries.
	ErrInvalidState = errors.New("solve: invalid state (NaN or Inf detected)")

	// ErrTEvalOutOfRange indicates evaluation times outside the span or out
	// of order.
	ErrTEvalOutOfRange = errors.New("solve: evaluation times out of range")

	// ErrStepTooSmall indicates the adaptive step size fell below the
	// useful minimum.
	ErrStepTooSmall = errors.New("solve: adaptive step size below minimum")

	// ErrMaxDtRequired indicates a method that needs an explicit MaxDt.
	ErrMaxDtRequired = errors.New("solve: method requires MaxDt")

	// ErrDimensionMismatch indicates a state incompatible with the
	// generator dimension.
	ErrDimensionMismatch = errors.New("solve: dimension mismatch")
)

// StepError wraps an error with the step context it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
