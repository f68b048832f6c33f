// Package metrics provides conserved-quantity monitors used to judge
// integration quality after (or during) a run. The engine itself never
// depends on them.
package metrics

import (
	"math"

	"github.com/lpaiva/kutta/internal/gravity"
	"github.com/lpaiva/kutta/internal/rk"
)

// Metric observes states over a run and reduces them to one value.
type Metric interface {
	Name() string
	Observe(t float64, y rk.State)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total energy
// from the first observed sample.
type EnergyDrift struct {
	model   *gravity.Model
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(m *gravity.Model) *EnergyDrift {
	return &EnergyDrift{model: m}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(t float64, y rk.State) {
	energy := e.model.Energy(y)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum absolute deviation of total
// momentum magnitude from the first observed sample.
type MomentumDrift struct {
	model   *gravity.Model
	initial float64
	max     float64
	samples int
}

func NewMomentumDrift(m *gravity.Model) *MomentumDrift {
	return &MomentumDrift{model: m}
}

func (d *MomentumDrift) Name() string { return "momentum_drift" }

func (d *MomentumDrift) Observe(t float64, y rk.State) {
	px, py := d.model.Momentum(y)
	mag := math.Hypot(px, py)
	if d.samples == 0 {
		d.initial = mag
	}
	d.samples++

	d.max = math.Max(d.max, math.Abs(mag-d.initial))
}

func (d *MomentumDrift) Value() float64 { return d.max }

func (d *MomentumDrift) Reset() {
	d.initial = 0
	d.max = 0
	d.samples = 0
}

// OverTrajectory runs each metric over every record and returns the
// final values keyed by metric name.
func OverTrajectory(traj rk.Trajectory, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, p := range traj {
		for _, m := range ms {
			m.Observe(p.T, p.Y)
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
