package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestExpectationStateVector(t *testing.T) {
	z := mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})
	m := NewExpectation("sigma_z", z)

	// equal superposition has <Z> = 0
	s := complex(1/math.Sqrt2, 0)
	m.Observe(0, []complex128{s, s})
	if math.Abs(m.Value()) > 1e-12 {
		t.Errorf("expected 0, got %f", m.Value())
	}

	m.Observe(1, []complex128{1, 0})
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected 1, got %f", m.Value())
	}
}

func TestExpectationDensityMatrix(t *testing.T) {
	z := mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})
	m := NewExpectation("sigma_z", z)

	// maximally mixed state: Tr(Z rho) = 0
	m.Observe(0, []complex128{0.5, 0, 0, 0.5})
	if math.Abs(m.Value()) > 1e-12 {
		t.Errorf("expected 0, got %f", m.Value())
	}

	// excited state rho = |1><1|
	m.Observe(1, []complex128{0, 0, 0, 1})
	if math.Abs(m.Value()+1) > 1e-12 {
		t.Errorf("expected -1, got %f", m.Value())
	}
}

func TestPopulation(t *testing.T) {
	p := NewPopulation(1, 2)

	p.Observe(0, []complex128{complex(0.6, 0), complex(0, 0.8)})
	if math.Abs(p.Value()-0.64) > 1e-12 {
		t.Errorf("expected 0.64, got %f", p.Value())
	}

	p.Observe(1, []complex128{0.25, 0, 0, 0.75})
	if math.Abs(p.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", p.Value())
	}
}

func TestPurity(t *testing.T) {
	p := NewPurity(2)

	p.Observe(0, []complex128{1, 0, 0, 0})
	if math.Abs(p.Value()-1) > 1e-12 {
		t.Errorf("expected pure state purity 1, got %f", p.Value())
	}

	p.Observe(1, []complex128{0.5, 0, 0, 0.5})
	if math.Abs(p.Value()-0.5) > 1e-12 {
		t.Errorf("expected mixed state purity 0.5, got %f", p.Value())
	}
}

func TestNormDriftTracksMaximum(t *testing.T) {
	d := NewNormDrift()

	d.Observe(0, []complex128{1, 0})
	d.Observe(1, []complex128{complex(1.001, 0), 0})
	d.Observe(2, []complex128{1, 0})

	if math.Abs(d.Value()-0.001) > 1e-9 {
		t.Errorf("expected drift 0.001, got %g", d.Value())
	}

	d.Reset()
	if d.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestTraceDrift(t *testing.T) {
	d := NewTraceDrift(2)

	d.Observe(0, []complex128{0.5, 0, 0, 0.5})
	if d.Value() != 0 {
		t.Errorf("expected zero drift, got %g", d.Value())
	}

	d.Observe(1, []complex128{0.5, 0, 0, 0.49})
	if math.Abs(d.Value()-0.01) > 1e-12 {
		t.Errorf("expected drift 0.01, got %g", d.Value())
	}
}

func TestProfile(t *testing.T) {
	p := NewPopulation(0, 2)
	times := []float64{0, 1}
	states := [][]complex128{{1, 0}, {0, 1}}

	vals := Profile(p, times, states)
	if len(vals) != 2 {
		t.Fatalf("expected 2 values, got %d", len(vals))
	}
	if vals[0] != 1 || vals[1] != 0 {
		t.Errorf("unexpected profile %v", vals)
	}
}
