package rk

import (
	"errors"
	"fmt"
)

// Domain errors for integrator construction and runs.
var (
	// ErrDimensionMismatch indicates len(equations) != len(y0).
	ErrDimensionMismatch = errors.New("rk: equation and state dimensions differ")

	// ErrEmptySystem indicates a system with no equations.
	ErrEmptySystem = errors.New("rk: empty equation system")

	// ErrStepSize indicates a non-positive or non-finite step size.
	ErrStepSize = errors.New("rk: step size must be positive and finite")

	// ErrInterval indicates a final instant not after the initial one.
	ErrInterval = errors.New("rk: final instant must exceed initial instant")

	// ErrInvalidState indicates a NaN or Inf in a state vector.
	ErrInvalidState = errors.New("rk: invalid state (NaN or Inf detected)")

	// ErrNilTableau indicates a missing method configuration.
	ErrNilTableau = errors.New("rk: tableau must not be nil")
)

// StepError wraps a failure during one integration step.
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
