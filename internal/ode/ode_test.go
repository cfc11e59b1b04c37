package ode

import (
	"math"
	"math/cmplx"
	"testing"
)

// dy/dt = -i*y has exact solution y(t) = y0 * exp(-i*t).
func phaseRotation(t float64, y []complex128) []complex128 {
	out := make([]complex128, len(y))
	for i := range y {
		out[i] = -1i * y[i]
	}
	return out
}

func TestEulerConverges(t *testing.T) {
	integ := NewEuler()
	y := []complex128{1}
	dt := 1e-4
	steps := 10000

	for i := 0; i < steps; i++ {
		y = integ.Step(phaseRotation, float64(i)*dt, y, dt)
	}

	want := cmplx.Exp(-1i * complex(float64(steps)*dt, 0))
	if cmplx.Abs(y[0]-want) > 1e-3 {
		t.Errorf("euler error too large: got %v, want %v", y[0], want)
	}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()
	y := []complex128{1}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		y = integ.Step(phaseRotation, float64(i)*dt, y, dt)
	}

	want := cmplx.Exp(-1i * complex(float64(steps)*dt, 0))
	if cmplx.Abs(y[0]-want) > 1e-8 {
		t.Errorf("rk4 error too large: got %v, want %v", y[0], want)
	}
}

func TestRK4NormPreservation(t *testing.T) {
	integ := NewRK4()
	y := []complex128{complex(1/math.Sqrt2, 0), complex(0, 1/math.Sqrt2)}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		y = integ.Step(phaseRotation, float64(i)*dt, y, dt)
	}

	norm := math.Sqrt(real(y[0])*real(y[0]) + imag(y[0])*imag(y[0]) +
		real(y[1])*real(y[1]) + imag(y[1])*imag(y[1]))
	if math.Abs(norm-1) > 1e-8 {
		t.Errorf("norm drifted: %f", norm)
	}
}

func TestDP54Step(t *testing.T) {
	integ := NewDP54()
	y := []complex128{1}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		y = integ.Step(phaseRotation, float64(i)*dt, y, dt)
	}

	want := cmplx.Exp(-1i * complex(10.0, 0))
	if cmplx.Abs(y[0]-want) > 1e-8 {
		t.Errorf("dp54 error too large: got %v, want %v", y[0], want)
	}
}

func TestDP54Adaptive(t *testing.T) {
	integ := NewDP54()
	y0 := []complex128{1}

	y, dtNew, err := integ.StepAdaptive(phaseRotation, 0, y0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if dtNew <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", dtNew)
	}

	want := cmplx.Exp(-1i * complex(0.1, 0))
	if cmplx.Abs(y[0]-want) > 1e-6 {
		t.Errorf("adaptive step inaccurate: got %v, want %v", y[0], want)
	}
}

func TestDP54ShrinksOnStiffStep(t *testing.T) {
	// dy/dt = -50*y over a huge step should force the controller to
	// propose a smaller dt.
	stiff := func(t float64, y []complex128) []complex128 {
		return []complex128{-50 * y[0]}
	}

	integ := NewDP54()
	_, dtNew, _ := integ.StepAdaptive(stiff, 0, []complex128{1}, 1.0, 1e-10)
	if dtNew >= 1.0 {
		t.Errorf("expected step size reduction, got dt=%f", dtNew)
	}
}
