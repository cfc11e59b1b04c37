package config

import (
	"errors"
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
name: test_run
static_hamiltonian:
  - [1, 0]
  - [0, -1]
hamiltonian_operators:
  - - [0, [0, -1]]
    - [[0, 1], 0]
frame: [1, -1]
signals:
  - type: sinusoidal
    amp: 0.5
    freq: 2.0
y0: [1, 0]
t_span: [0, 5]
method: rk4
max_dt: 0.01
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Name != "test_run" {
		t.Errorf("expected name test_run, got %s", cfg.Name)
	}
	if cfg.Method != "rk4" {
		t.Errorf("expected method rk4, got %s", cfg.Method)
	}
	if cfg.TSpan != [2]float64{0, 5} {
		t.Errorf("unexpected t_span %v", cfg.TSpan)
	}
	// defaults survive fields the file omits
	if cfg.Tol != DefaultTol {
		t.Errorf("expected default tol, got %g", cfg.Tol)
	}

	op := cfg.HamiltonianOperators[0]
	if op[0][1].Im != -1 || op[1][0].Im != 1 {
		t.Errorf("unexpected operator entries %+v", op)
	}
}

func TestLoadRejectsBadComplex(t *testing.T) {
	_, err := Load(writeConfig(t, "y0: [[1, 2, 3]]\n"))
	if !errors.Is(err, ErrBadComplex) {
		t.Errorf("expected ErrBadComplex, got %v", err)
	}
}

func TestOperatorMatrixRejectsRagged(t *testing.T) {
	op := Operator{
		{{Re: 1}, {Re: 2}},
		{{Re: 3}},
	}
	if _, err := op.Matrix(); !errors.Is(err, ErrBadOperator) {
		t.Errorf("expected ErrBadOperator, got %v", err)
	}
}

func TestSignalBuild(t *testing.T) {
	s, err := SignalConfig{Type: "gaussian", Amp: Complex{Re: 2}, T0: 1, Sigma: 0.5}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if cmplx.Abs(s.Envelope(1)-2) > 1e-12 {
		t.Errorf("expected peak envelope 2, got %v", s.Envelope(1))
	}

	if _, err := (SignalConfig{Type: "sawtooth"}).Build(); !errors.Is(err, ErrUnknownSignal) {
		t.Errorf("expected ErrUnknownSignal, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("driven_qubit")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != cfg.Name {
		t.Errorf("expected name %s, got %s", cfg.Name, loaded.Name)
	}
	if loaded.RWACutoff != cfg.RWACutoff {
		t.Errorf("expected cutoff %g, got %g", cfg.RWACutoff, loaded.RWACutoff)
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		s, err := cfg.BuildSolver()
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if _, err := cfg.BuildOptions(); err != nil {
			t.Fatalf("preset %s options: %v", name, err)
		}
		y0, err := cfg.InitialState()
		if err != nil {
			t.Fatalf("preset %s y0: %v", name, err)
		}
		if len(y0) != s.Dim() {
			t.Errorf("preset %s: y0 length %d, solver dim %d", name, len(y0), s.Dim())
		}
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}
