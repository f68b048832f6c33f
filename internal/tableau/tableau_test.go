package tableau

import (
	"errors"
	"math"
	"testing"
)

func TestNew_DerivesAbscissas(t *testing.T) {
	tab, err := New("ralston2", 2, 2,
		[][]float64{{0, 0}, {2.0 / 3.0, 0}},
		[]float64{0.25, 0.75})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tab.C[0] != 0 {
		t.Errorf("c[0] should be 0, got %f", tab.C[0])
	}
	if math.Abs(tab.C[1]-2.0/3.0) > 1e-15 {
		t.Errorf("c[1] should be 2/3, got %f", tab.C[1])
	}
	if math.Abs(tab.WeightSum()-1.0) > 1e-15 {
		t.Errorf("weights should sum to 1, got %f", tab.WeightSum())
	}
}

func TestNew_RejectsNonExplicit(t *testing.T) {
	cases := []struct {
		name string
		a    [][]float64
	}{
		{"diagonal", [][]float64{{0.5, 0}, {0.5, 0}}},
		{"upper", [][]float64{{0, 0.5}, {0.5, 0}}},
		{"last diagonal", [][]float64{{0, 0}, {0.5, 0.5}}},
	}

	for _, tc := range cases {
		_, err := New(tc.name, 2, 0, tc.a, []float64{0.5, 0.5})
		if !errors.Is(err, ErrNotExplicit) {
			t.Errorf("%s: expected ErrNotExplicit, got %v", tc.name, err)
		}
	}
}

func TestNew_RejectsBadShapes(t *testing.T) {
	if _, err := New("x", 0, 0, nil, nil); !errors.Is(err, ErrStages) {
		t.Errorf("expected ErrStages, got %v", err)
	}
	if _, err := New("x", 2, 0, [][]float64{{0, 0}, {0.5, 0}}, []float64{1}); !errors.Is(err, ErrShape) {
		t.Errorf("short weights: expected ErrShape, got %v", err)
	}
	if _, err := New("x", 2, 0, [][]float64{{0, 0}}, []float64{0.5, 0.5}); !errors.Is(err, ErrShape) {
		t.Errorf("missing row: expected ErrShape, got %v", err)
	}
	if _, err := New("x", 2, 0, [][]float64{{0}, {0.5, 0}}, []float64{0.5, 0.5}); !errors.Is(err, ErrShape) {
		t.Errorf("ragged row: expected ErrShape, got %v", err)
	}
	if _, err := New("x", 1, 0, [][]float64{{0}}, []float64{math.NaN()}); !errors.Is(err, ErrNotFinite) {
		t.Errorf("NaN weight: expected ErrNotFinite, got %v", err)
	}
}

func TestNew_CopiesCoefficients(t *testing.T) {
	a := [][]float64{{0, 0}, {2.0 / 3.0, 0}}
	b := []float64{0.25, 0.75}
	tab, err := New("ralston2", 2, 2, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a[1][0] = 99
	b[0] = 99

	if tab.A[1][0] != 2.0/3.0 {
		t.Error("tableau aliases caller's coupling matrix")
	}
	if tab.B[0] != 0.25 {
		t.Error("tableau aliases caller's weights")
	}
}

func TestFromName(t *testing.T) {
	for _, name := range Names() {
		tab, err := FromName(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if tab.Stages < 1 {
			t.Errorf("%s: bad stage count %d", name, tab.Stages)
		}
		if math.Abs(tab.WeightSum()-1.0) > 1e-12 {
			t.Errorf("%s: weights sum to %f, want 1", name, tab.WeightSum())
		}
	}

	if _, err := FromName("rk99"); err == nil {
		t.Error("expected error for unknown method")
	}
}
