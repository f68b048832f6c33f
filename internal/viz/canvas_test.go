package viz

import (
	"strings"
	"testing"

	"github.com/lpaiva/kutta/internal/rk"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected cell (0,0) to be lit")
	}

	// Out-of-range coordinates must be ignored.
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100)

	c.Clear()
	for i, row := range c.Grid {
		for j, cell := range row {
			if cell != 0x2800 {
				t.Errorf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestCanvas_String(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()

	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("line %d: expected 3 runes, got %d", i, len([]rune(line)))
		}
	}
}

func TestPlotOrbits_CoversTrajectory(t *testing.T) {
	traj := rk.Trajectory{
		{T: 0, Y: rk.State{0, 0, 0, 0}},
		{T: 1, Y: rk.State{10, 0, 5, 0}},
		{T: 2, Y: rk.State{-10, 0, -5, 0}},
	}

	out := PlotOrbits(traj, [][2]int{{0, 2}}, 10, 5)
	if out == "" {
		t.Fatal("expected non-empty rendering")
	}

	lit := 0
	for _, r := range out {
		if r > 0x2800 && r <= 0x28FF {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected at least one lit cell")
	}
}

func TestPlotComponents(t *testing.T) {
	traj := rk.Trajectory{
		{T: 0, Y: rk.State{1, 2}},
		{T: 1, Y: rk.State{2, 3}},
		{T: 2, Y: rk.State{3, 4}},
	}

	out := PlotComponents(traj, []int{0, 1}, []string{"x", ""})
	if !strings.Contains(out, "x") {
		t.Error("expected custom caption in output")
	}
	if !strings.Contains(out, "y1") {
		t.Error("expected default caption in output")
	}
}
