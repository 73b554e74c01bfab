package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/popsim/internal/popdyn"
)

// RunMetadata describes one saved simulation run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Samples   int                `json:"samples"`
	Params    map[string]float64 `json:"params"`
	Variables []string           `json:"variables"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json and samples.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultDir resolves the user-level run directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".popsim/runs"
	}
	return filepath.Join(home, ".popsim", "runs")
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes a finished trajectory and returns the generated run ID.
func (s *Store) Save(modelKey string, dt, duration float64, params map[string]float64, varNames []string, traj popdyn.Trajectory, metrics map[string]float64) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s_%d", modelKey, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        id,
		Model:     modelKey,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Samples:   len(traj),
		Params:    params,
		Variables: varNames,
		Metrics:   metrics,
	}
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "metadata.json"), metaData, 0644); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, varNames, traj); err != nil {
		return "", err
	}
	return id, nil
}

// List returns metadata of all saved runs, newest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	meta := &RunMetadata{}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// LoadSamples reads a run's trajectory back. Malformed rows are skipped.
func (s *Store) LoadSamples(id string) (popdyn.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("run %s: no samples", id)
	}

	traj := make(popdyn.Trajectory, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		x := make(popdyn.State, 0, len(rec)-1)
		ok := true
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			x = append(x, v)
		}
		if !ok {
			continue
		}
		traj = append(traj, popdyn.Sample{T: t, X: x})
	}
	return traj, nil
}

// Delete removes a saved run.
func (s *Store) Delete(id string) error {
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
