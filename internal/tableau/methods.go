package tableau

import (
	"fmt"
	"sort"
)

// mustNew backs the named constructors; their coefficients are fixed,
// so a validation failure is a programming error.
func mustNew(name string, stages, order int, a [][]float64, b []float64) *Tableau {
	t, err := New(name, stages, order, a, b)
	if err != nil {
		panic(err)
	}
	return t
}

// ForwardEuler is the one-stage first-order method.
func ForwardEuler() *Tableau {
	return mustNew("euler", 1, 1,
		[][]float64{{0}},
		[]float64{1})
}

// ExplicitMidpoint is the two-stage second-order midpoint method.
func ExplicitMidpoint() *Tableau {
	return mustNew("midpoint", 2, 2,
		[][]float64{
			{0, 0},
			{1.0 / 2.0, 0},
		},
		[]float64{0, 1})
}

// Heun2 is the two-stage second-order trapezoidal method.
func Heun2() *Tableau {
	return mustNew("heun2", 2, 2,
		[][]float64{
			{0, 0},
			{1, 0},
		},
		[]float64{1.0 / 2.0, 1.0 / 2.0})
}

// Ralston2 is the two-stage second-order method with minimal local
// truncation error bound (b = [1/4, 3/4], a21 = 2/3).
func Ralston2() *Tableau {
	return mustNew("ralston2", 2, 2,
		[][]float64{
			{0, 0},
			{2.0 / 3.0, 0},
		},
		[]float64{1.0 / 4.0, 3.0 / 4.0})
}

// Kutta3 is the classic three-stage third-order method.
func Kutta3() *Tableau {
	return mustNew("kutta3", 3, 3,
		[][]float64{
			{0, 0, 0},
			{1.0 / 2.0, 0, 0},
			{-1, 2, 0},
		},
		[]float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0})
}

// Classic4 is the classic four-stage fourth-order Runge-Kutta method.
func Classic4() *Tableau {
	return mustNew("rk4", 4, 4,
		[][]float64{
			{0, 0, 0, 0},
			{1.0 / 2.0, 0, 0, 0},
			{0, 1.0 / 2.0, 0, 0},
			{0, 0, 1, 0},
		},
		[]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0})
}

// ThreeEighths4 is the fourth-order 3/8-rule variant.
func ThreeEighths4() *Tableau {
	return mustNew("rk38", 4, 4,
		[][]float64{
			{0, 0, 0, 0},
			{1.0 / 3.0, 0, 0, 0},
			{-1.0 / 3.0, 1, 0, 0},
			{1, -1, 1, 0},
		},
		[]float64{1.0 / 8.0, 3.0 / 8.0, 3.0 / 8.0, 1.0 / 8.0})
}

var registry = map[string]func() *Tableau{
	"euler":    ForwardEuler,
	"midpoint": ExplicitMidpoint,
	"heun2":    Heun2,
	"ralston2": Ralston2,
	"kutta3":   Kutta3,
	"rk4":      Classic4,
	"rk38":     ThreeEighths4,
}

// FromName returns the named method or an error listing the known names.
func FromName(name string) (*Tableau, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("tableau: unknown method %q (known: %v)", name, Names())
	}
	return ctor(), nil
}

// Names lists the registered method names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
