package rk

import (
	"context"
	"fmt"
	"math"

	"github.com/lpaiva/kutta/internal/tableau"
)

// timeDecimals bounds floating-point drift in the termination check:
// the current instant is rounded to this many decimal places before
// comparison with the final instant.
const timeDecimals = 10

// Integrator advances a first-order ODE system with a fixed-step
// explicit Runge-Kutta method. The equation vector, tableau, initial
// conditions, and step size are fixed at construction.
//
// Not safe for concurrent use: the stage cache is shared across steps.
type Integrator struct {
	eqs []Equation
	tab *tableau.Tableau
	t0  float64
	y0  State
	h   float64

	k       []State // stage derivatives, k[r][i], reused every step
	shifted State   // shifted-state scratch, reused every stage
}

// New validates the configuration and returns a ready integrator.
func New(eqs []Equation, t0 float64, y0 State, h float64, tab *tableau.Tableau) (*Integrator, error) {
	if len(eqs) == 0 {
		return nil, ErrEmptySystem
	}
	if len(eqs) != len(y0) {
		return nil, fmt.Errorf("%w: %d equations, %d initial values", ErrDimensionMismatch, len(eqs), len(y0))
	}
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrStepSize, h)
	}
	if tab == nil {
		return nil, ErrNilTableau
	}
	if math.IsNaN(t0) || math.IsInf(t0, 0) {
		return nil, fmt.Errorf("%w: t0=%v", ErrInvalidState, t0)
	}
	if !y0.IsValid() {
		return nil, fmt.Errorf("%w: in y0", ErrInvalidState)
	}

	n := len(y0)
	in := &Integrator{
		eqs:     eqs,
		tab:     tab,
		t0:      t0,
		y0:      y0.Clone(),
		h:       h,
		k:       make([]State, tab.Stages),
		shifted: make(State, n),
	}
	for r := range in.k {
		in.k[r] = make(State, n)
	}
	return in, nil
}

// T0 returns the initial instant.
func (in *Integrator) T0() float64 { return in.t0 }

// Y0 returns a copy of the initial state.
func (in *Integrator) Y0() State { return in.y0.Clone() }

// StepSize returns the fixed step size.
func (in *Integrator) StepSize() float64 { return in.h }

// Tableau returns the method configuration.
func (in *Integrator) Tableau() *tableau.Tableau { return in.tab }

// stages fills the cache k[r][i] for every stage and equation.
// Stage r evaluates each equation at t + h*c[r] with every component
// shifted by h * sum over s < r of a[r][s]*k[s][i]. All n shifted
// components are built before any equation is evaluated, so every
// equation of a stage sees the same snapshot.
func (in *Integrator) stages(t float64, y State) {
	n := len(y)
	for r := 0; r < in.tab.Stages; r++ {
		tr := t + in.h*in.tab.C[r]
		for i := 0; i < n; i++ {
			acc := 0.0
			for s := 0; s < r; s++ {
				acc += in.tab.A[r][s] * in.k[s][i]
			}
			in.shifted[i] = y[i] + in.h*acc
		}
		for i := 0; i < n; i++ {
			in.k[r][i] = in.eqs[i](tr, in.shifted)
		}
	}
}

// Step advances one step from (t, y) and returns the next instant and
// a freshly allocated next state. Inputs are never mutated. A NaN or
// Inf anywhere in the result aborts the step: a single corrupted step
// invalidates everything after it.
func (in *Integrator) Step(t float64, y State) (float64, State, error) {
	in.stages(t, y)

	next := make(State, len(y))
	for i := range y {
		phi := 0.0
		for r := 0; r < in.tab.Stages; r++ {
			phi += in.tab.B[r] * in.k[r][i]
		}
		next[i] = y[i] + in.h*phi
	}

	if !next.IsValid() {
		return 0, nil, ErrInvalidState
	}
	return t + in.h, next, nil
}

// Run integrates from t0 until the current instant, rounded to absorb
// floating-point drift, reaches tf. The trajectory starts with the
// unmodified (t0, y0) record and may overshoot tf by at most one step;
// it never stops short of tf. On any step failure the partial
// trajectory is discarded and only the error is returned.
func (in *Integrator) Run(ctx context.Context, tf float64) (Trajectory, error) {
	if math.IsNaN(tf) || math.IsInf(tf, 0) || tf <= in.t0 {
		return nil, fmt.Errorf("%w: t0=%v, tf=%v", ErrInterval, in.t0, tf)
	}

	// One extra step covers the tolerated overshoot past tf.
	maxSteps := int(math.Ceil((tf-in.t0)/in.h)) + 1

	traj := make(Trajectory, 0, maxSteps+1)
	traj = append(traj, Point{T: in.t0, Y: in.y0.Clone()})

	t := in.t0
	y := in.y0.Clone()

	for step := 1; step <= maxSteps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		tNext, yNext, err := in.Step(t, y)
		if err != nil {
			return nil, &StepError{Step: step, Time: t + in.h, Wrapped: err}
		}
		t, y = tNext, yNext
		traj = append(traj, Point{T: t, Y: y})

		if roundTo(t, timeDecimals) >= tf {
			return traj, nil
		}
	}

	// Unreachable with a finite positive h, kept as a hard bound
	// against a loop that never crosses tf.
	return nil, &StepError{Step: maxSteps, Time: t, Wrapped: fmt.Errorf("%w: tf not reached in %d steps", ErrInterval, maxSteps)}
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
