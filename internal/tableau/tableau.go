package tableau

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for tableau construction.
var (
	// ErrStages indicates a non-positive stage count.
	ErrStages = errors.New("tableau: stage count must be positive")

	// ErrShape indicates coefficient dimensions inconsistent with the stage count.
	ErrShape = errors.New("tableau: coefficient shape mismatch")

	// ErrNotExplicit indicates a nonzero coupling at or above the diagonal.
	ErrNotExplicit = errors.New("tableau: coupling matrix not strictly lower-triangular")

	// ErrNotFinite indicates a NaN or Inf coefficient.
	ErrNotFinite = errors.New("tableau: coefficient not finite")
)

// Tableau holds the Butcher coefficients of an explicit Runge-Kutta method.
// A is the stage coupling matrix, B the combination weights, and C the
// stage abscissas derived as the row sums of A. Immutable after New.
type Tableau struct {
	Name   string
	Stages int
	Order  int
	A      [][]float64
	B      []float64
	C      []float64
}

// New validates the coefficients and derives the abscissas.
// The coupling matrix must be stages x stages and strictly lower-triangular:
// stage r may depend only on stages s < r. Order is informational and may be 0.
func New(name string, stages, order int, a [][]float64, b []float64) (*Tableau, error) {
	if stages < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrStages, stages)
	}
	if len(b) != stages {
		return nil, fmt.Errorf("%w: len(b)=%d, want %d", ErrShape, len(b), stages)
	}
	if len(a) != stages {
		return nil, fmt.Errorf("%w: a has %d rows, want %d", ErrShape, len(a), stages)
	}

	t := &Tableau{
		Name:   name,
		Stages: stages,
		Order:  order,
		A:      make([][]float64, stages),
		B:      make([]float64, stages),
		C:      make([]float64, stages),
	}
	copy(t.B, b)
	for _, w := range b {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %v", ErrNotFinite, w)
		}
	}

	for r := 0; r < stages; r++ {
		if len(a[r]) != stages {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, r, len(a[r]), stages)
		}
		row := make([]float64, stages)
		copy(row, a[r])
		sum := 0.0
		for s, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: a[%d][%d]=%v", ErrNotFinite, r, s, v)
			}
			if s >= r && v != 0 {
				return nil, fmt.Errorf("%w: a[%d][%d]=%v", ErrNotExplicit, r, s, v)
			}
			sum += v
		}
		t.A[r] = row
		t.C[r] = sum
	}

	return t, nil
}

// WeightSum returns the sum of the combination weights. A consistent
// method has weights summing to 1; this is reported, not enforced.
func (t *Tableau) WeightSum() float64 {
	sum := 0.0
	for _, w := range t.B {
		sum += w
	}
	return sum
}
