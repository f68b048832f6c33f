// Package gravity models planar gravitational N-body dynamics in
// Hamiltonian form, producing the equation vector and flat state
// layout consumed by the rk engine.
package gravity

import (
	"errors"
	"fmt"
	"math"

	"github.com/lpaiva/kutta/internal/rk"
)

// Domain errors for model construction.
var (
	ErrNoBodies = errors.New("gravity: at least one body required")
	ErrMass     = errors.New("gravity: body mass must be positive and finite")
)

// Flat-state layout: four slots per body, position and momentum
// interleaved per axis.
const (
	slotX  = 0 // x position
	slotPX = 1 // x momentum
	slotY  = 2 // y position
	slotPY = 3 // y momentum

	slotsPerBody = 4
)

// offset maps a body index to its first slot in the flat state.
func offset(body int) int { return body * slotsPerBody }

// Body is one point mass with planar position and momentum.
type Body struct {
	Name     string
	Mass     float64
	Position [2]float64
	Momentum [2]float64
}

// Model is an immutable N-body configuration. Equations built from it
// close over a private copy, never over shared mutable state.
type Model struct {
	g         float64
	softening float64
	bodies    []Body
}

// New validates the bodies and returns a model. G scales the pairwise
// force; softening (squared length added to r²) guards near-coincident
// positions and is zero for the pure Newtonian law.
func New(g, softening float64, bodies []Body) (*Model, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	for i, b := range bodies {
		if b.Mass <= 0 || math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) {
			return nil, fmt.Errorf("%w: body %d has mass %v", ErrMass, i, b.Mass)
		}
	}

	own := make([]Body, len(bodies))
	copy(own, bodies)
	return &Model{g: g, softening: softening, bodies: own}, nil
}

// NumBodies returns the body count.
func (m *Model) NumBodies() int { return len(m.bodies) }

// Bodies returns a copy of the configured bodies.
func (m *Model) Bodies() []Body {
	out := make([]Body, len(m.bodies))
	copy(out, m.bodies)
	return out
}

// StateDim returns the flat state length, four slots per body.
func (m *Model) StateDim() int { return len(m.bodies) * slotsPerBody }

// InitialState packs the configured positions and momenta into the
// flat layout [x, px, y, py] per body.
func (m *Model) InitialState() rk.State {
	y := make(rk.State, m.StateDim())
	for i, b := range m.bodies {
		o := offset(i)
		y[o+slotX] = b.Position[0]
		y[o+slotPX] = b.Momentum[0]
		y[o+slotY] = b.Position[1]
		y[o+slotPY] = b.Momentum[1]
	}
	return y
}

// Equations builds the 4n scalar equations of motion in slot order:
//
//	x_a'  = px_a / m_a
//	px_a' = G m_a Σ_{b≠a} m_b (x_b - x_a) / r_ab³
//
// and likewise for the y axis. The closures capture the model's own
// immutable body list.
func (m *Model) Equations() []rk.Equation {
	eqs := make([]rk.Equation, 0, m.StateDim())
	for i := range m.bodies {
		a := i
		eqs = append(eqs,
			func(t float64, y rk.State) float64 { return y[offset(a)+slotPX] / m.bodies[a].Mass },
			func(t float64, y rk.State) float64 { return m.force(a, slotX, y) },
			func(t float64, y rk.State) float64 { return y[offset(a)+slotPY] / m.bodies[a].Mass },
			func(t float64, y rk.State) float64 { return m.force(a, slotY, y) },
		)
	}
	return eqs
}

// force sums the gravitational pull on body a along one axis
// (slotX or slotY).
func (m *Model) force(a, axis int, y rk.State) float64 {
	oa := offset(a)
	xa, ya := y[oa+slotX], y[oa+slotY]

	f := 0.0
	for b := range m.bodies {
		if b == a {
			continue
		}
		ob := offset(b)
		dx := y[ob+slotX] - xa
		dy := y[ob+slotY] - ya
		r2 := dx*dx + dy*dy + m.softening*m.softening
		r3 := r2 * math.Sqrt(r2)

		d := dx
		if axis == slotY {
			d = dy
		}
		f += m.bodies[b].Mass * d / r3
	}
	return m.g * m.bodies[a].Mass * f
}

// Momentum returns the total momentum of the system in the given
// state. With no external forces it is conserved exactly by the
// continuous dynamics; drift measures integration error.
func (m *Model) Momentum(y rk.State) (px, py float64) {
	for i := range m.bodies {
		o := offset(i)
		px += y[o+slotPX]
		py += y[o+slotPY]
	}
	return px, py
}

// Energy returns kinetic plus pairwise potential energy of the state.
func (m *Model) Energy(y rk.State) float64 {
	ke := 0.0
	for i, b := range m.bodies {
		o := offset(i)
		px, py := y[o+slotPX], y[o+slotPY]
		ke += (px*px + py*py) / (2 * b.Mass)
	}

	pe := 0.0
	for i := range m.bodies {
		oi := offset(i)
		for j := i + 1; j < len(m.bodies); j++ {
			oj := offset(j)
			dx := y[oj+slotX] - y[oi+slotX]
			dy := y[oj+slotY] - y[oi+slotY]
			r := math.Sqrt(dx*dx + dy*dy + m.softening*m.softening)
			pe -= m.g * m.bodies[i].Mass * m.bodies[j].Mass / r
		}
	}

	return ke + pe
}

// BodyPosition extracts body i's position from a flat state.
func (m *Model) BodyPosition(y rk.State, i int) (x, yy float64) {
	o := offset(i)
	return y[o+slotX], y[o+slotY]
}

// PositionSlots returns each body's (x, y) slot indices in the flat
// layout, for consumers that hold a raw trajectory without the model.
func PositionSlots(numBodies int) [][2]int {
	slots := make([][2]int, numBodies)
	for i := range slots {
		o := offset(i)
		slots[i] = [2]int{o + slotX, o + slotY}
	}
	return slots
}
