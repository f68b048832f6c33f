package rk

import "math"

// State is the flat vector of dynamical variables at one instant.
// Index meaning is assigned by the caller and fixed for a whole run.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Equation is one scalar component of the right-hand side dy_i/dt = f_i(t, y).
// It must read y only; the engine passes a shared snapshot per stage.
type Equation func(t float64, y State) float64

// Point is one trajectory record.
type Point struct {
	T float64
	Y State
}

// Trajectory is the ordered, time-increasing result of a run.
type Trajectory []Point

// Times returns the instants of every record.
func (tr Trajectory) Times() []float64 {
	ts := make([]float64, len(tr))
	for i, p := range tr {
		ts[i] = p.T
	}
	return ts
}

// Component returns the i-th state component of every record.
func (tr Trajectory) Component(i int) []float64 {
	vs := make([]float64, len(tr))
	for j, p := range tr {
		vs[j] = p.Y[i]
	}
	return vs
}

// Every returns every k-th record (always including the first).
// Used to thin dense runs for display.
func (tr Trajectory) Every(k int) Trajectory {
	if k <= 1 {
		return tr
	}
	out := make(Trajectory, 0, len(tr)/k+1)
	for i := 0; i < len(tr); i += k {
		out = append(out, tr[i])
	}
	return out
}

// Final returns the last record.
func (tr Trajectory) Final() Point {
	return tr[len(tr)-1]
}
