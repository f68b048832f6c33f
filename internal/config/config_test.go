package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Method != "ralston2" {
		t.Errorf("expected method ralston2, got %s", cfg.Method)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.TF <= cfg.T0 {
		t.Error("tf should exceed t0")
	}
	if len(cfg.Gravity.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(cfg.Gravity.Bodies))
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("three_body")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Gravity.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(cfg.Gravity.Bodies))
	}
	if cfg.Gravity.Bodies[2].Mass != 500 {
		t.Errorf("expected heavy body mass 500, got %f", cfg.Gravity.Bodies[2].Mass)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) < 2 {
		t.Fatalf("expected at least 2 presets, got %d", len(names))
	}
	for _, name := range names {
		if GetPreset(name) == nil {
			t.Errorf("listed preset %q not retrievable", name)
		}
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	cfg := GetPreset("three_body")
	cfg.Method = "rk4"
	cfg.Dt = 0.001

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Method != "rk4" {
		t.Errorf("method: got %s, want rk4", loaded.Method)
	}
	if loaded.Dt != 0.001 {
		t.Errorf("dt: got %f, want 0.001", loaded.Dt)
	}
	if len(loaded.Gravity.Bodies) != 3 {
		t.Fatalf("bodies: got %d, want 3", len(loaded.Gravity.Bodies))
	}
	if loaded.Gravity.Bodies[0].Momentum != [2]float64{100, 0} {
		t.Errorf("body 0 momentum: got %v", loaded.Gravity.Bodies[0].Momentum)
	}
}

func TestTableau_Resolution(t *testing.T) {
	cfg := Default()
	tab, err := cfg.Tableau()
	if err != nil {
		t.Fatalf("named tableau failed: %v", err)
	}
	if tab.Stages != 2 {
		t.Errorf("ralston2 should have 2 stages, got %d", tab.Stages)
	}

	cfg.Custom = &TableauSpec{
		Stages: 1,
		Order:  1,
		A:      [][]float64{{0}},
		B:      []float64{1},
	}
	tab, err = cfg.Tableau()
	if err != nil {
		t.Fatalf("custom tableau failed: %v", err)
	}
	if tab.Stages != 1 || tab.Name != "custom" {
		t.Errorf("custom tableau not used: %+v", tab)
	}

	cfg.Custom = &TableauSpec{Stages: 2, A: [][]float64{{0, 1}, {0, 0}}, B: []float64{1, 0}}
	if _, err := cfg.Tableau(); err == nil {
		t.Error("expected error for non-explicit custom tableau")
	}
}

func TestModel_Resolution(t *testing.T) {
	cfg := Default()
	m, err := cfg.Model()
	if err != nil {
		t.Fatalf("model failed: %v", err)
	}
	if m.NumBodies() != 2 {
		t.Errorf("expected 2 bodies, got %d", m.NumBodies())
	}

	cfg.Gravity.Bodies = nil
	if _, err := cfg.Model(); err == nil {
		t.Error("expected error with no bodies")
	}
}
