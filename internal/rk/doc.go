// Package rk implements a fixed-step explicit Runge-Kutta engine for
// first-order ODE systems dy/dt = f(t, y).
//
// The method is configured by a Butcher tableau ([tableau.Tableau]);
// the system is an ordered vector of scalar [Equation] closures whose
// index order matches the state vector. One [Integrator.Run] produces
// a [Trajectory] of time-stamped states from t0 to (at most one step
// past) tf.
//
//	tab := tableau.Ralston2()
//	integ, _ := rk.New(eqs, 0, y0, 0.025, tab)
//	traj, err := integ.Run(ctx, 500)
//
// The engine is deliberately fixed-step: no adaptive control, no
// stiffness detection, no error estimation. Divergence is reported
// only when the state stops being finite.
//
// Integrator instances are NOT safe for concurrent use; the per-step
// stage cache is shared between calls.
package rk
