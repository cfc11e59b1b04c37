package signals

import (
	"math"
	"testing"
)

func TestConstant(t *testing.T) {
	s := Constant(2.5)
	if s.Value(0) != 2.5 || s.Value(17.3) != 2.5 {
		t.Error("constant signal should not vary in time")
	}
	if s.Carrier() != 0 {
		t.Error("constant signal should have zero carrier")
	}
}

func TestSinusoidalValue(t *testing.T) {
	// amp=1, nu=1, phi=0: value(t) = cos(2 pi t)
	s := NewSinusoidal(1, 1.0, 0)

	if math.Abs(s.Value(0)-1) > 1e-12 {
		t.Errorf("value at t=0: got %f, want 1", s.Value(0))
	}
	if math.Abs(s.Value(0.25)) > 1e-12 {
		t.Errorf("value at quarter period: got %f, want 0", s.Value(0.25))
	}
	if math.Abs(s.Value(0.5)+1) > 1e-12 {
		t.Errorf("value at half period: got %f, want -1", s.Value(0.5))
	}
}

func TestSinusoidalPhase(t *testing.T) {
	s := NewSinusoidal(1, 1.0, math.Pi/2)
	// cos(2 pi t + pi/2) = -sin(2 pi t)
	if math.Abs(s.Value(0)) > 1e-12 {
		t.Errorf("phase-shifted value at t=0: got %f, want 0", s.Value(0))
	}
}

func TestGaussianEnvelope(t *testing.T) {
	g := NewGaussian(2, 1.0, 0.5, 0, 0)
	if math.Abs(real(g.Envelope(1.0))-2) > 1e-12 {
		t.Error("gaussian peak should equal amplitude")
	}
	// one sigma out: amp * exp(-1/2)
	want := 2 * math.Exp(-0.5)
	if math.Abs(real(g.Envelope(1.5))-want) > 1e-12 {
		t.Errorf("gaussian at one sigma: got %f, want %f", real(g.Envelope(1.5)), want)
	}
}

func TestSquareWindow(t *testing.T) {
	s := NewSquare(3, 1.0, 2.0, 0, 0)
	if s.Value(0.5) != 0 {
		t.Error("square should be zero before start")
	}
	if s.Value(1.5) != 3 {
		t.Error("square should equal amp inside window")
	}
	if s.Value(3.5) != 0 {
		t.Error("square should be zero after window")
	}
}

func TestDiscreteSamples(t *testing.T) {
	d := NewDiscrete([]complex128{1, 2, 3}, 0.5, 0, 0, 0)

	cases := []struct {
		t    float64
		want float64
	}{
		{0.0, 1}, {0.49, 1}, {0.5, 2}, {1.2, 3}, {1.6, 0}, {-0.1, 0},
	}
	for _, c := range cases {
		if got := d.Value(c.t); got != c.want {
			t.Errorf("discrete value at t=%.2f: got %f, want %f", c.t, got, c.want)
		}
	}
}

func TestListValues(t *testing.T) {
	l := List{Constant(1), NewSinusoidal(2, 0, 0)}
	vals := l.Values(0)
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
		t.Errorf("list values wrong: %v", vals)
	}
}

func TestOnes(t *testing.T) {
	l := Ones(3)
	if len(l) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(l))
	}
	for i, s := range l {
		if s.Value(1.0) != 1 {
			t.Errorf("signal %d should be constant 1", i)
		}
	}
}
