package rk

import (
	"testing"

	"github.com/lpaiva/kutta/internal/tableau"
)

func benchSystem() []Equation {
	// Five uncoupled harmonic pairs.
	eqs := make([]Equation, 0, 20)
	for b := 0; b < 5; b++ {
		pos, vel := 4*b, 4*b+2
		eqs = append(eqs,
			func(t float64, y State) float64 { return y[vel] },
			func(t float64, y State) float64 { return y[vel+1] },
			func(t float64, y State) float64 { return -0.1 * y[pos] },
			func(t float64, y State) float64 { return -0.1 * y[pos+1] },
		)
	}
	return eqs
}

func benchStep(b *testing.B, tab *tableau.Tableau) {
	y0 := make(State, 20)
	for i := range y0 {
		y0[i] = float64(i) * 0.1
	}

	integ, err := New(benchSystem(), 0, y0, 0.001, tab)
	if err != nil {
		b.Fatal(err)
	}

	t, y := 0.0, y0.Clone()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t, y, err = integ.Step(t, y)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStep_Euler(b *testing.B)    { benchStep(b, tableau.ForwardEuler()) }
func BenchmarkStep_Ralston2(b *testing.B) { benchStep(b, tableau.Ralston2()) }
func BenchmarkStep_Classic4(b *testing.B) { benchStep(b, tableau.Classic4()) }
