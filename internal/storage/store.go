// Package storage persists simulation runs to disk. Each run gets a
// directory with metadata.json and a states.csv holding real and imaginary
// columns per state component.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/qs-lab/qdyn/internal/solver"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Method     string             `json:"method"`
	TSpan      [2]float64         `json:"t_span"`
	Dim        int                `json:"dim"`
	OpenSystem bool               `json:"open_system"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(name, method string, span [2]float64, open bool, result *solver.Result, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	dim := 0
	if len(result.States) > 0 {
		dim = len(result.States[0])
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		Method:     method,
		TSpan:      span,
		Dim:        dim,
		OpenSystem: open,
		Steps:      result.StepsTaken,
		Metrics:    metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("re%d", i), fmt.Sprintf("im%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, y := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'g', 17, 64)}
		for _, v := range y {
			row = append(row,
				strconv.FormatFloat(real(v), 'g', 17, 64),
				strconv.FormatFloat(imag(v), 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the recorded trajectory of a run.
func (s *Store) LoadStates(runID string) ([]float64, [][]complex128, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]complex128{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]complex128, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 3 || len(record)%2 == 0 {
			return nil, nil, fmt.Errorf("storage: malformed row with %d fields", len(record))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)

		y := make([]complex128, (len(record)-1)/2)
		for j := range y {
			re, err := strconv.ParseFloat(record[1+2*j], 64)
			if err != nil {
				return nil, nil, err
			}
			im, err := strconv.ParseFloat(record[2+2*j], 64)
			if err != nil {
				return nil, nil, err
			}
			y[j] = complex(re, im)
		}
		states = append(states, y)
	}

	return times, states, nil
}
