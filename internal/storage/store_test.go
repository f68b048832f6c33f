package storage

import (
	"testing"

	"github.com/lpaiva/kutta/internal/rk"
)

func sampleTrajectory() rk.Trajectory {
	return rk.Trajectory{
		{T: 0, Y: rk.State{1, 2, 3, 4}},
		{T: 0.1, Y: rk.State{1.5, 2.5, 3.5, 4.5}},
		{T: 0.2, Y: rk.State{2, 3, 4, 5}},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	traj := sampleTrajectory()
	runID, err := s.Save(RunMetadata{
		Method: "ralston2",
		Stages: 2,
		Dt:     0.1,
		TF:     0.2,
		Bodies: 1,
		Metrics: map[string]float64{
			"energy_drift": 1e-9,
		},
	}, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.LoadMetadata(runID)
	if err != nil {
		t.Fatalf("load metadata failed: %v", err)
	}
	if meta.Method != "ralston2" || meta.Records != 3 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Metrics["energy_drift"] != 1e-9 {
		t.Errorf("metrics not preserved: %v", meta.Metrics)
	}

	loaded, err := s.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(loaded) != len(traj) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(traj))
	}
	for i := range traj {
		if loaded[i].T != traj[i].T {
			t.Errorf("record %d: t=%v, want %v", i, loaded[i].T, traj[i].T)
		}
		for j := range traj[i].Y {
			if loaded[i].Y[j] != traj[i].Y[j] {
				t.Errorf("record %d component %d: got %v, want %v", i, j, loaded[i].Y[j], traj[i].Y[j])
			}
		}
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Save(RunMetadata{Method: "rk4"}, sampleTrajectory()); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoad_MissingRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LoadMetadata("nope"); err == nil {
		t.Error("expected error for missing metadata")
	}
	if _, err := s.LoadTrajectory("nope"); err == nil {
		t.Error("expected error for missing trajectory")
	}
}
