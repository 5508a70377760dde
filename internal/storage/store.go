package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/odekit/internal/ode"
)

// Store persists integration runs under a base directory, one subdirectory
// per run with a metadata JSON and a trajectory CSV.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	System    string    `json:"system"`
	Scheme    string    `json:"scheme"`
	Timestamp time.Time `json:"timestamp"`
	T0        float64   `json:"t0"`
	TFinal    float64   `json:"t_final"`
	Steps     int       `json:"steps"`
}

// Save writes one run. Column headers carry partition names when the
// trajectory is partitioned.
func (s *Store) Save(system, scheme string, view ode.View) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", system, scheme, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	times := view.Times()
	states := view.States()

	meta := RunMetadata{
		ID:        runID,
		System:    system,
		Scheme:    scheme,
		Timestamp: time.Now(),
		Steps:     len(times) - 1,
	}
	if len(times) > 0 {
		meta.T0 = times[0]
		meta.TFinal = times[len(times)-1]
	}

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

	if err := w.Write(header(view)); err != nil {
		return "", err
	}
	for i, t := range times {
		row := make([]string, 0, 1+len(states[i]))
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, v := range states[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func header(view ode.View) []string {
	cols := []string{"t"}
	parts := view.Partitions()
	if len(parts) == 0 {
		_, u := view.Last()
		for i := range u {
			cols = append(cols, fmt.Sprintf("u%d", i))
		}
		return cols
	}
	for _, p := range parts {
		for i := 0; i < p.Size; i++ {
			if p.Size == 1 {
				cols = append(cols, p.Name)
			} else {
				cols = append(cols, fmt.Sprintf("%s%d", p.Name, i))
			}
		}
	}
	return cols
}

// List returns the metadata of every stored run, newest last.
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}
