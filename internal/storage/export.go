package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/qs-lab/qdyn/internal/solver"
)

// ExportData is the JSON export of a run. States hold [re, im] pairs per
// component.
type ExportData struct {
	Name    string             `json:"name"`
	Method  string             `json:"method"`
	TSpan   [2]float64         `json:"t_span"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	States  [][][2]float64     `json:"states"`
	Metrics map[string]float64 `json:"metrics"`
}

func exportData(name, method string, span [2]float64, result *solver.Result, metrics map[string]float64) ExportData {
	data := ExportData{
		Name:    name,
		Method:  method,
		TSpan:   span,
		Steps:   result.StepsTaken,
		Times:   result.Times,
		States:  make([][][2]float64, len(result.States)),
		Metrics: metrics,
	}
	for i, y := range result.States {
		row := make([][2]float64, len(y))
		for j, v := range y {
			row[j] = [2]float64{real(v), imag(v)}
		}
		data.States[i] = row
	}
	return data
}

func ExportJSON(w io.Writer, name, method string, span [2]float64, result *solver.Result, metrics map[string]float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(name, method, span, result, metrics))
}

func ExportJSONFile(path, name, method string, span [2]float64, result *solver.Result, metrics map[string]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, name, method, span, result, metrics)
}
