// Package storage persists integration runs: JSON metadata plus the
// full trajectory as CSV, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lpaiva/kutta/internal/rk"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one saved run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Method    string             `json:"method"`
	Stages    int                `json:"stages"`
	Dt        float64            `json:"dt"`
	T0        float64            `json:"t0"`
	TF        float64            `json:"tf"`
	Bodies    int                `json:"bodies"`
	Records   int                `json:"records"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes metadata.json and trajectory.csv under a fresh run
// directory and returns the run ID.
func (s *Store) Save(meta RunMetadata, traj rk.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Method, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Records = len(traj)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	n := 0
	if len(traj) > 0 {
		n = len(traj[0].Y)
	}
	header := make([]string, 0, n+1)
	header = append(header, "t")
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	row := make([]string, n+1)
	for _, p := range traj {
		row[0] = strconv.FormatFloat(p.T, 'g', -1, 64)
		for i, v := range p.Y {
			row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// List returns the metadata of every saved run, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue // skip unreadable runs
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// LoadMetadata reads one run's metadata.
func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// LoadTrajectory reads one run's trajectory back from CSV.
func (s *Store) LoadTrajectory(runID string) (rk.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("storage: empty trajectory for run %s", runID)
	}

	traj := make(rk.Trajectory, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 2 {
			return nil, fmt.Errorf("storage: malformed row in run %s", runID)
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, err
		}
		y := make(rk.State, len(row)-1)
		for i, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
			y[i] = v
		}
		traj = append(traj, rk.Point{T: t, Y: y})
	}
	return traj, nil
}
